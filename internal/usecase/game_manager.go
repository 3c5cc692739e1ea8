package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/mindgames-backend/internal/apperror"
	"github.com/rocketscienceinc/mindgames-backend/internal/entity"
	"github.com/rocketscienceinc/mindgames-backend/internal/pkg"
	"github.com/rocketscienceinc/mindgames-backend/internal/service"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type resultRepo interface {
	Save(ctx context.Context, result *entity.Result) error
	BestByPlayer(ctx context.Context, playerID string) ([]entity.Best, error)
}

// EngineFactory builds the engine for a new session. onAsync must be called
// whenever the engine changes on its own, outside of Apply.
type EngineFactory func(kind entity.Kind, sessionID string, onAsync func()) (service.Engine, error)

type liveSession struct {
	mu sync.Mutex

	session  *entity.Session
	engine   service.Engine
	recorded bool
	closed   bool
}

func (that *liveSession) copy() *entity.Session {
	session := *that.session
	return &session
}

type GameManager struct {
	logger *slog.Logger

	playerRepo  playerRepo
	sessionRepo sessionRepo
	resultRepo  resultRepo
	newEngine   EngineFactory

	// players serialises session changes of one player
	players keyedMutex

	mu          sync.RWMutex
	sessions    map[string]*liveSession
	subscribers []func(*entity.Session)
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, sessionRepo sessionRepo, resultRepo resultRepo, newEngine EngineFactory) *GameManager {
	return &GameManager{
		logger: logger,

		playerRepo:  playerRepo,
		sessionRepo: sessionRepo,
		resultRepo:  resultRepo,
		newEngine:   newEngine,

		sessions: make(map[string]*liveSession),
	}
}

// Subscribe registers fn for sessions that changed without a player action,
// such as a memory board turning a mismatched pair back over.
func (that *GameManager) Subscribe(fn func(*entity.Session)) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.subscribers = append(that.subscribers, fn)
}

// StartSession opens a new game for the player and discards the one they were in.
func (that *GameManager) StartSession(ctx context.Context, playerID string, kind entity.Kind) (*entity.Session, error) {
	unlock := that.players.Lock(playerID)
	defer unlock()

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if player.InSession() {
		that.discardSession(ctx, player.SessionID)
	}

	sessionID := pkg.GenerateSessionID()

	engine, err := that.newEngine(kind, sessionID, func() { that.onAsyncChange(sessionID) })
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	now := time.Now().UTC()
	live := &liveSession{
		session: &entity.Session{
			ID:        sessionID,
			PlayerID:  player.ID,
			Kind:      kind,
			CreatedAt: now,
		},
		engine: engine,
	}

	live.mu.Lock()
	defer live.mu.Unlock()

	if err = that.syncSession(ctx, live); err != nil {
		engine.Close()
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	player.SessionID = sessionID
	if err = that.updatePlayer(ctx, player); err != nil {
		engine.Close()
		return nil, fmt.Errorf("failed update player: %w", err)
	}

	that.mu.Lock()
	that.sessions[sessionID] = live
	that.mu.Unlock()

	return live.copy(), nil
}

// Move applies one player intent. A rejected intent returns the unchanged
// session together with the error. An accepted intent is committed even when
// the store write fails; the next sync stores it.
func (that *GameManager) Move(ctx context.Context, sessionID string, intent entity.Intent) (*entity.Session, error) {
	live, err := that.getLiveSession(sessionID)
	if err != nil {
		return nil, err
	}

	live.mu.Lock()
	defer live.mu.Unlock()

	if live.closed {
		return nil, apperror.ErrSessionNotFound
	}

	if err = live.engine.Apply(intent); err != nil {
		// a rejected checkers target drops the selection, keep the store in step
		if syncErr := that.syncSession(ctx, live); syncErr != nil {
			that.logger.With("method", "Move").Error("failed to update session", "error", syncErr)
		}

		return live.copy(), fmt.Errorf("failed to make move: %w", err)
	}

	if err = that.syncSession(ctx, live); err != nil {
		that.logger.With("method", "Move").Error("failed to update session", "session_id", sessionID, "error", err)
	}

	return live.copy(), nil
}

func (that *GameManager) Reset(ctx context.Context, sessionID string) (*entity.Session, error) {
	live, err := that.getLiveSession(sessionID)
	if err != nil {
		return nil, err
	}

	live.mu.Lock()
	defer live.mu.Unlock()

	if live.closed {
		return nil, apperror.ErrSessionNotFound
	}

	if err = live.engine.Reset(); err != nil {
		return nil, fmt.Errorf("failed to reset game: %w", err)
	}

	if err = that.syncSession(ctx, live); err != nil {
		that.logger.With("method", "Reset").Error("failed to update session", "session_id", sessionID, "error", err)
	}

	return live.copy(), nil
}

// Close ends the session, cancels its pending work and detaches the player.
func (that *GameManager) Close(ctx context.Context, sessionID string) error {
	playerID, err := that.sessionOwner(ctx, sessionID)
	if err != nil {
		return err
	}

	if playerID == "" {
		that.discardSession(ctx, sessionID)
		return nil
	}

	unlock := that.players.Lock(playerID)
	defer unlock()

	that.discardSession(ctx, sessionID)

	return that.detachPlayer(ctx, playerID, sessionID)
}

// EvictIdle closes the live sessions that have not changed for longer than
// idle and returns how many were closed. Their store entries expire on the
// same schedule, so a missing player is not an error.
func (that *GameManager) EvictIdle(ctx context.Context, idle time.Duration) int {
	log := that.logger.With("method", "EvictIdle")

	cutoff := time.Now().UTC().Add(-idle)

	that.mu.RLock()
	lives := make([]*liveSession, 0, len(that.sessions))
	for _, live := range that.sessions {
		lives = append(lives, live)
	}
	that.mu.RUnlock()

	evicted := 0
	for _, live := range lives {
		live.mu.Lock()
		sessionID, playerID := live.session.ID, live.session.PlayerID
		stale := !live.closed && !live.session.UpdatedAt.After(cutoff)
		live.mu.Unlock()

		if !stale {
			continue
		}

		unlock := that.players.Lock(playerID)
		that.discardSession(ctx, sessionID)
		err := that.detachPlayer(ctx, playerID, sessionID)
		unlock()

		if err != nil && !errors.Is(err, apperror.ErrPlayerNotFound) {
			log.Error("failed to detach player", "session_id", sessionID, "error", err)
		}

		evicted++
	}

	if evicted > 0 {
		log.Info("idle sessions evicted", "count", evicted)
	}

	return evicted
}

// SweepIdle runs EvictIdle every interval until ctx is done.
func (that *GameManager) SweepIdle(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			that.EvictIdle(ctx, idle)
		}
	}
}

// GetSession returns the last stored snapshot of a session.
func (that *GameManager) GetSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

func (that *GameManager) Scores(ctx context.Context, playerID string) ([]entity.Best, error) {
	scores, err := that.resultRepo.BestByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scores: %w", err)
	}

	return scores, nil
}

// Shutdown closes every live session.
func (that *GameManager) Shutdown() {
	that.mu.Lock()
	sessions := that.sessions
	that.sessions = make(map[string]*liveSession)
	that.mu.Unlock()

	for _, live := range sessions {
		live.mu.Lock()
		live.closed = true
		live.engine.Close()
		live.mu.Unlock()
	}
}

func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		player, err := that.createPlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create new player %w", err)
		}

		return player, nil
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id %w", err)
	}

	return player, nil
}

// syncSession copies the engine snapshot into the session and stores it. The
// first time a game ends its result is recorded. Must hold live.mu.
func (that *GameManager) syncSession(ctx context.Context, live *liveSession) error {
	snapshot := live.engine.Snapshot()

	state, err := json.Marshal(snapshot.State)
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}

	live.session.Status = snapshot.Status
	live.session.Winner = snapshot.Winner
	live.session.State = state
	live.session.UpdatedAt = time.Now().UTC()

	if err = that.sessionRepo.CreateOrUpdate(ctx, live.session); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	if snapshot.Status != entity.StatusFinished {
		live.recorded = false
		return nil
	}

	if !live.recorded {
		that.recordResult(ctx, live)
		live.recorded = true
	}

	return nil
}

func (that *GameManager) recordResult(ctx context.Context, live *liveSession) {
	log := that.logger.With("method", "recordResult", "session_id", live.session.ID)

	result := live.engine.Result()
	if result == nil {
		return
	}

	result.SessionID = live.session.ID
	result.PlayerID = live.session.PlayerID
	result.FinishedAt = live.session.UpdatedAt

	if err := that.resultRepo.Save(ctx, result); err != nil {
		log.Error("failed to save result", "error", err)
		return
	}

	log.Info("result saved", "kind", result.Kind, "winner", result.Winner)
}

func (that *GameManager) onAsyncChange(sessionID string) {
	log := that.logger.With("method", "onAsyncChange", "session_id", sessionID)

	live, err := that.getLiveSession(sessionID)
	if err != nil {
		return
	}

	live.mu.Lock()
	if live.closed {
		live.mu.Unlock()
		return
	}

	err = that.syncSession(context.Background(), live)
	session := live.copy()
	live.mu.Unlock()

	if err != nil {
		log.Error("failed to sync session", "error", err)
	}

	that.mu.RLock()
	subscribers := append([]func(*entity.Session){}, that.subscribers...)
	that.mu.RUnlock()

	for _, fn := range subscribers {
		fn(session)
	}
}

func (that *GameManager) discardSession(ctx context.Context, sessionID string) {
	log := that.logger.With("method", "discardSession")

	that.mu.Lock()
	live, ok := that.sessions[sessionID]
	delete(that.sessions, sessionID)
	that.mu.Unlock()

	if ok {
		live.mu.Lock()
		live.closed = true
		live.engine.Close()
		live.mu.Unlock()
	}

	if err := that.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		log.Error("failed to delete session", "error", err)
	}

	log.Info("session deleted", "session_id", sessionID)
}

// sessionOwner returns the player of a live or stored session, or "" when
// neither exists.
func (that *GameManager) sessionOwner(ctx context.Context, sessionID string) (string, error) {
	if live, err := that.getLiveSession(sessionID); err == nil {
		live.mu.Lock()
		defer live.mu.Unlock()

		return live.session.PlayerID, nil
	}

	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperror.ErrSessionNotFound) {
			return "", nil
		}

		return "", fmt.Errorf("failed get session: %w", err)
	}

	return session.PlayerID, nil
}

// detachPlayer clears the player's session if it still points at sessionID.
func (that *GameManager) detachPlayer(ctx context.Context, playerID, sessionID string) error {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed get player by id: %w", err)
	}

	if player.SessionID != sessionID {
		return nil
	}

	player.SessionID = ""
	if err = that.updatePlayer(ctx, player); err != nil {
		return fmt.Errorf("failed update player: %w", err)
	}

	return nil
}

func (that *GameManager) getLiveSession(sessionID string) (*liveSession, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	live, ok := that.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, sessionID)
	}

	return live, nil
}

func (that *GameManager) createPlayer(ctx context.Context) (*entity.Player, error) {
	player := &entity.Player{
		ID: pkg.GeneratePlayerID(),
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}
