package usecase

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/mindgames-backend/internal/apperror"
	"github.com/rocketscienceinc/mindgames-backend/internal/entity"
)

type mockPlayerRepo struct {
	mock.Mock
}

func (that *mockPlayerRepo) CreateOrUpdate(ctx context.Context, player *entity.Player) error {
	args := that.Called(ctx, player)
	return args.Error(0)
}

func (that *mockPlayerRepo) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	args := that.Called(ctx, id)
	player, _ := args.Get(0).(*entity.Player)
	return player, args.Error(1)
}

type mockSessionRepo struct {
	mock.Mock
}

func (that *mockSessionRepo) CreateOrUpdate(ctx context.Context, session *entity.Session) error {
	args := that.Called(ctx, session)
	return args.Error(0)
}

func (that *mockSessionRepo) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	args := that.Called(ctx, id)
	session, _ := args.Get(0).(*entity.Session)
	return session, args.Error(1)
}

func (that *mockSessionRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

type mockResultRepo struct {
	mock.Mock
}

func (that *mockResultRepo) Save(ctx context.Context, result *entity.Result) error {
	args := that.Called(ctx, result)
	return args.Error(0)
}

func (that *mockResultRepo) BestByPlayer(ctx context.Context, playerID string) ([]entity.Best, error) {
	args := that.Called(ctx, playerID)
	scores, _ := args.Get(0).([]entity.Best)
	return scores, args.Error(1)
}

// memPlayerRepo keeps players in memory so concurrent callers see each
// other's writes.
type memPlayerRepo struct {
	mu      sync.Mutex
	players map[string]entity.Player
}

func newMemPlayerRepo(players ...entity.Player) *memPlayerRepo {
	repo := &memPlayerRepo{players: make(map[string]entity.Player)}
	for _, player := range players {
		repo.players[player.ID] = player
	}

	return repo
}

func (that *memPlayerRepo) CreateOrUpdate(_ context.Context, player *entity.Player) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.players[player.ID] = *player
	return nil
}

func (that *memPlayerRepo) GetByID(_ context.Context, id string) (*entity.Player, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	player, ok := that.players[id]
	if !ok {
		return nil, apperror.ErrPlayerNotFound
	}

	return &player, nil
}
