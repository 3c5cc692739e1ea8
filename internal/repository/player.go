package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/mindgames-backend/internal/apperror"
	"github.com/rocketscienceinc/mindgames-backend/internal/entity"
)

const playerPrefix = "player:"

type PlayerRepository interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type dbPlayer struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPlayerRepository stores players in redis. A zero ttl keeps them forever.
func NewPlayerRepository(client *redis.Client, ttl time.Duration) PlayerRepository {
	return &dbPlayer{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbPlayer) CreateOrUpdate(ctx context.Context, player *entity.Player) error {
	playerJSON, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	err = that.client.Set(ctx, playerPrefix+player.ID, playerJSON, that.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set player: %w", err)
	}

	return nil
}

func (that *dbPlayer) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	response, err := that.client.Get(ctx, playerPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrPlayerNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by ID: %w", err)
	}

	var existingPlayer entity.Player
	if err = json.Unmarshal(response, &existingPlayer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player: %w", err)
	}

	return &existingPlayer, nil
}
