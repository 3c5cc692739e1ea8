package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	gorilla "github.com/gorilla/websocket"

	"github.com/rocketscienceinc/mindgames-backend/internal/entity"
)

const (
	actionConnect = "connect"
	actionNew     = "game:new"
	actionMove    = "game:move"
	actionReset   = "game:reset"
	actionLeave   = "game:leave"
	actionState   = "game:state"
	actionScores  = "scores"
	actionError   = "error"

	shutdownTimeout = 5 * time.Second

	// largest frame a client may send; intents are a few dozen bytes
	maxMessageSize = 4096
)

type gameUseCase interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)

	StartSession(ctx context.Context, playerID string, kind entity.Kind) (*entity.Session, error)
	Move(ctx context.Context, sessionID string, intent entity.Intent) (*entity.Session, error)
	Reset(ctx context.Context, sessionID string) (*entity.Session, error)
	Close(ctx context.Context, sessionID string) error

	Scores(ctx context.Context, playerID string) ([]entity.Best, error)
	Subscribe(fn func(*entity.Session))
}

type handlerFunc func(ctx context.Context, msg *Message, c *client) error

type Server struct {
	logger   *slog.Logger
	uGame    gameUseCase
	upgrader gorilla.Upgrader

	handlers map[string]handlerFunc

	connectionsMutex sync.RWMutex
	connections      map[string]*client
}

func New(logger *slog.Logger, uGame gameUseCase) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,
		upgrader: gorilla.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers:    make(map[string]handlerFunc),
		connections: make(map[string]*client),
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionNew] = server.handleNewGame
	server.handlers[actionMove] = server.handleMove
	server.handlers[actionReset] = server.handleReset
	server.handlers[actionLeave] = server.handleLeave
	server.handlers[actionScores] = server.handleScores

	uGame.Subscribe(server.pushState)

	return server
}

func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(ctx),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serveWebSocket(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWebSocket")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)

	c := &client{conn: conn}

	defer func() {
		that.handleDisconnect(c)
		_ = conn.Close()
	}()

	log.Info("WebSocket connection established")

	that.handleMessages(ctx, c)
}

// handleMessages - processes messages from the client until it goes away.
func (that *Server) handleMessages(ctx context.Context, c *client) {
	log := that.logger.With("method", "handleMessages")

	for {
		_, body, err := c.conn.ReadMessage()
		if err != nil {
			if !gorilla.IsCloseError(err, gorilla.CloseNormalClosure, gorilla.CloseGoingAway) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(body, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			if err = c.sendError(actionError, "malformed message"); err != nil {
				return
			}
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err = c.sendError(message.Action, "unknown action"); err != nil {
				return
			}
			continue
		}

		if err = handler(ctx, &message, c); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) register(playerID string, c *client) {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	that.connections[playerID] = c
}

func (that *Server) handleDisconnect(c *client) {
	log := that.logger.With("method", "handleDisconnect")

	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	for playerID, conn := range that.connections {
		if conn == c {
			delete(that.connections, playerID)
			log.Info("player disconnected", "playerID", playerID)
		}
	}
}

// pushState sends a session that changed on its own to its player.
func (that *Server) pushState(session *entity.Session) {
	log := that.logger.With("method", "pushState", "playerID", session.PlayerID)

	that.connectionsMutex.RLock()
	c, ok := that.connections[session.PlayerID]
	that.connectionsMutex.RUnlock()

	if !ok {
		log.Warn("connection not found for player")
		return
	}

	if err := c.send(actionState, Payload{Session: session}); err != nil {
		log.Error("failed to send game update", "error", err)
	}
}
