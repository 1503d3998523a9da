package usecase

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/omok-backend/internal/apperror"
	"github.com/rocketscienceinc/omok-backend/internal/entity"
)

type gameArchive interface {
	Submit(state entity.GameState)
}

// Settings configures the rules of new games and the lobby.
type Settings struct {
	BoardSize       int
	WinLength       int
	RequireNickname bool
	Nickname        entity.NicknamePolicy
}

func DefaultSettings() Settings {
	return Settings{
		BoardSize:       entity.DefaultBoardSize,
		WinLength:       entity.DefaultWinLength,
		RequireNickname: true,
		Nickname:        entity.DefaultNicknamePolicy(),
	}
}

// Stats is a point-in-time view of the lobby. Finished games still held by their players are not active.
type Stats struct {
	Connections int  `json:"connections"`
	Waiting     bool `json:"waiting"`
	ActiveGames int  `json:"activeGames"`
}

// GameManager owns matchmaking, the registry of running games and every connected player.
// All methods must be called from a single goroutine; it holds no locks.
type GameManager struct {
	logger   *slog.Logger
	settings Settings
	archive  gameArchive

	matchmaker  *Matchmaker
	registry    *Registry
	connections map[string]*entity.Player
}

func NewGameManager(logger *slog.Logger, settings Settings, archive gameArchive) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		settings: settings,
		archive:  archive,

		matchmaker:  NewMatchmaker(),
		registry:    NewRegistry(),
		connections: make(map[string]*entity.Player),
	}
}

// Connect - registers a new connection. Without the nickname requirement the player enters matchmaking at once.
func (that *GameManager) Connect(playerID string) ([]Notification, error) {
	if _, ok := that.connections[playerID]; ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrAlreadyConnected, playerID)
	}

	that.connections[playerID] = &entity.Player{ID: playerID}

	if !that.settings.RequireNickname {
		return that.SetNickname(playerID, "")
	}

	return nil, nil
}

// SetNickname - stores the sanitized nickname and sends the player to matchmaking.
func (that *GameManager) SetNickname(playerID, nickname string) ([]Notification, error) {
	log := that.logger.With("method", "SetNickname", "playerID", playerID)

	player, ok := that.connections[playerID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrPlayerNotFound, playerID)
	}

	if game, _, err := that.registry.Lookup(playerID); err == nil {
		if !game.IsGameOver {
			return nil, fmt.Errorf("%w: game %s", apperror.ErrAlreadyInGame, game.ID)
		}

		// a finished game no longer holds the player
		that.registry.Leave(playerID)
	}

	player.Nickname = that.settings.Nickname.Sanitize(nickname, playerID)

	result, err := that.matchmaker.Arrive(player)
	if err != nil {
		return nil, fmt.Errorf("failed to arrive at matchmaker: %w", err)
	}

	if !result.Paired {
		log.Info("player is waiting for an opponent", "nickname", player.Nickname)
		return []Notification{messageTo(playerID, waitingMessage)}, nil
	}

	return that.startGame(result.First, result.Second), nil
}

func (that *GameManager) startGame(first, second *entity.Player) []Notification {
	game := entity.NewGame(
		uuid.NewString(),
		entity.NewBoard(that.settings.BoardSize, that.settings.WinLength),
		first,
		second,
	)
	that.registry.Register(game)

	that.logger.Info("game started",
		"gameID", game.ID,
		"first", first.Nickname,
		"second", second.Nickname,
	)

	notifications := []Notification{
		assignmentTo(first, entity.SlotOne),
		assignmentTo(second, entity.SlotTwo),
	}

	return append(notifications, stateTo(that.registry.Members(game.ID), game)...)
}

// PlaceStone - applies a move of the player and returns the new state for both participants.
// A rejected move returns an error and no notifications.
func (that *GameManager) PlaceStone(playerID string, row, col int) ([]Notification, error) {
	log := that.logger.With("method", "PlaceStone", "playerID", playerID)

	game, _, err := that.registry.Lookup(playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find game of player: %w", err)
	}

	if err = game.MakeTurn(playerID, row, col); err != nil {
		log.Debug("move rejected", "gameID", game.ID, "row", row, "col", col, "error", err)
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	notifications := stateTo(that.registry.Members(game.ID), game)

	if game.IsGameOver {
		log.Info("game finished", "gameID", game.ID, "outcome", game.Outcome, "message", game.Message)
		that.archive.Submit(game.State())
	}

	return notifications, nil
}

// Disconnect - forgets the connection. A running game is ended and the remaining player is told so.
func (that *GameManager) Disconnect(playerID string) []Notification {
	log := that.logger.With("method", "Disconnect", "playerID", playerID)

	delete(that.connections, playerID)

	if that.matchmaker.CancelIfPending(playerID) {
		log.Info("waiting player left")
		return nil
	}

	game, _, err := that.registry.Lookup(playerID)
	if err != nil {
		if !errors.Is(err, apperror.ErrPlayerNotFound) {
			log.Error("failed to find game of player", "error", err)
		}
		return nil
	}

	if game.IsGameOver {
		that.registry.Leave(playerID)
		return nil
	}

	if err = game.Abandon(playerID); err != nil {
		log.Error("failed to abandon game", "gameID", game.ID, "error", err)
		return nil
	}

	var remaining []string
	for _, id := range that.registry.Members(game.ID) {
		if id != playerID {
			remaining = append(remaining, id)
		}
	}

	notifications := stateTo(remaining, game)

	that.registry.Remove(game.ID)
	that.archive.Submit(game.State())

	log.Info("game abandoned", "gameID", game.ID)

	return notifications
}

func (that *GameManager) Stats() Stats {
	return Stats{
		Connections: len(that.connections),
		Waiting:     that.matchmaker.HasPending(),
		ActiveGames: that.registry.Active(),
	}
}
