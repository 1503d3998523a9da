package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/omok-backend/internal/entity"
)

const (
	finishedGamesKey = "games:finished"
	finishedGamesCap = 100
)

var ErrGameNotFound = errors.New("game not found")

type GameRepository interface {
	Save(ctx context.Context, state *entity.GameState) error
	GetByID(ctx context.Context, id string) (*entity.GameState, error)
	ListFinished(ctx context.Context, limit int64) ([]string, error)
}

type dbGame struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGameRepository - archive of finished games. Records expire after ttl, zero keeps them forever.
func NewGameRepository(client *redis.Client, ttl time.Duration) GameRepository {
	return &dbGame{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbGame) Save(ctx context.Context, state *entity.GameState) error {
	gameJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	pipe := that.client.TxPipeline()
	pipe.Set(ctx, gameKey(state.ID), gameJSON, that.ttl)
	pipe.LPush(ctx, finishedGamesKey, state.ID)
	pipe.LTrim(ctx, finishedGamesKey, 0, finishedGamesCap-1)

	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.GameState, error) {
	response, err := that.client.Get(ctx, gameKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var state entity.GameState
	if err = json.Unmarshal([]byte(response), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &state, nil
}

// ListFinished - returns IDs of the most recently finished games, newest first.
func (that *dbGame) ListFinished(ctx context.Context, limit int64) ([]string, error) {
	if limit <= 0 || limit > finishedGamesCap {
		limit = finishedGamesCap
	}

	ids, err := that.client.LRange(ctx, finishedGamesKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list finished games: %w", err)
	}

	return ids, nil
}

func gameKey(id string) string {
	return "game:" + id
}
