package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/omok-backend/internal/entity"
)

const saveTimeout = 5 * time.Second

type archiveRepo interface {
	Save(ctx context.Context, state *entity.GameState) error
}

// Archiver writes finished games to storage on its own goroutine, so the game loop never waits for I/O.
type Archiver struct {
	logger *slog.Logger
	repo   archiveRepo
	queue  chan entity.GameState
}

func NewArchiver(logger *slog.Logger, repo archiveRepo, buffer int) *Archiver {
	return &Archiver{
		logger: logger.With("component", "archiver"),
		repo:   repo,
		queue:  make(chan entity.GameState, buffer),
	}
}

// Submit - queues a finished game. Games are dropped when the queue is full.
func (that *Archiver) Submit(state entity.GameState) {
	select {
	case that.queue <- state:
	default:
		that.logger.Warn("archive queue is full, game dropped", "gameID", state.ID)
	}
}

// Run - saves queued games until the context is canceled.
func (that *Archiver) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case state := <-that.queue:
			that.save(ctx, state)
		}
	}
}

func (that *Archiver) save(ctx context.Context, state entity.GameState) {
	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()

	if err := that.repo.Save(ctx, &state); err != nil {
		that.logger.Error("failed to archive game", "gameID", state.ID, "error", err)
		return
	}

	that.logger.Debug("game archived", "gameID", state.ID)
}

// NopArchive is used when no storage is configured.
type NopArchive struct{}

func (NopArchive) Submit(entity.GameState) {}
