package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/omok-backend/internal/entity"
	"github.com/rocketscienceinc/omok-backend/internal/repository"
	"github.com/rocketscienceinc/omok-backend/internal/usecase"
)

const defaultListLimit = 20

type gameArchive interface {
	GetByID(ctx context.Context, id string) (*entity.GameState, error)
	ListFinished(ctx context.Context, limit int64) ([]string, error)
}

type statsSource interface {
	Stats(ctx context.Context) (usecase.Stats, error)
}

type handlers struct {
	logger  *slog.Logger
	archive gameArchive
	stats   statsSource
}

// NewHandlers - archive may be nil when no storage is configured.
func NewHandlers(logger *slog.Logger, archive gameArchive, stats statsSource) http.Handler {
	that := &handlers{
		logger:  logger.With("component", "rest"),
		archive: archive,
		stats:   stats,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", that.pingHandler)
	mux.HandleFunc("GET /stats", that.statsHandler)
	mux.HandleFunc("GET /games", that.listGamesHandler)
	mux.HandleFunc("GET /games/{id}", that.getGameHandler)

	return mux
}

func (that *handlers) pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) statsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := that.stats.Stats(r.Context())
	if err != nil {
		that.logger.Error("failed to get stats", "error", err)
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	that.writeJSON(w, stats)
}

func (that *handlers) listGamesHandler(w http.ResponseWriter, r *http.Request) {
	if that.archive == nil {
		http.Error(w, "Archive is disabled", http.StatusServiceUnavailable)
		return
	}

	limit := int64(defaultListLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	ids, err := that.archive.ListFinished(r.Context(), limit)
	if err != nil {
		that.logger.Error("failed to list games", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if ids == nil {
		ids = []string{}
	}

	that.writeJSON(w, ids)
}

func (that *handlers) getGameHandler(w http.ResponseWriter, r *http.Request) {
	if that.archive == nil {
		http.Error(w, "Archive is disabled", http.StatusServiceUnavailable)
		return
	}

	state, err := that.archive.GetByID(r.Context(), r.PathValue("id"))
	if errors.Is(err, repository.ErrGameNotFound) {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	if err != nil {
		that.logger.Error("failed to get game", "gameID", r.PathValue("id"), "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, state)
}

func (that *handlers) writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
