package usecase

import (
	"github.com/rocketscienceinc/omok-backend/internal/apperror"
	"github.com/rocketscienceinc/omok-backend/internal/entity"
)

type membership struct {
	gameID string
	slot   int
}

// Registry maps player IDs to the games they play in.
// It is not safe for concurrent use, callers serialize access.
type Registry struct {
	games   map[string]*entity.Game
	members map[string]membership
}

func NewRegistry() *Registry {
	return &Registry{
		games:   make(map[string]*entity.Game),
		members: make(map[string]membership),
	}
}

// Register - adds the game and both of its players.
func (that *Registry) Register(game *entity.Game) {
	that.games[game.ID] = game

	for i, player := range game.Players {
		that.members[player.ID] = membership{gameID: game.ID, slot: i + 1}
	}
}

// Lookup - returns the game and slot of the player.
func (that *Registry) Lookup(playerID string) (*entity.Game, int, error) {
	member, ok := that.members[playerID]
	if !ok {
		return nil, 0, apperror.ErrPlayerNotFound
	}

	game, ok := that.games[member.gameID]
	if !ok {
		return nil, 0, apperror.ErrGameNotFound
	}

	return game, member.slot, nil
}

// Members - returns the IDs of all players registered to the game, in slot order.
func (that *Registry) Members(gameID string) []string {
	game, ok := that.games[gameID]
	if !ok {
		return nil
	}

	ids := make([]string, 0, len(game.Players))
	for _, player := range game.Players {
		if member, ok := that.members[player.ID]; ok && member.gameID == gameID {
			ids = append(ids, player.ID)
		}
	}

	return ids
}

// Remove - forgets the game and every player still registered to it.
func (that *Registry) Remove(gameID string) {
	game, ok := that.games[gameID]
	if !ok {
		return
	}

	for _, player := range game.Players {
		if member, ok := that.members[player.ID]; ok && member.gameID == gameID {
			delete(that.members, player.ID)
		}
	}

	delete(that.games, gameID)
}

func (that *Registry) Len() int {
	return len(that.games)
}

// Active - counts registered games that are still being played.
func (that *Registry) Active() int {
	active := 0
	for _, game := range that.games {
		if !game.IsGameOver {
			active++
		}
	}

	return active
}

// Leave - detaches a single player; the game is forgotten once nobody is left in it.
func (that *Registry) Leave(playerID string) {
	member, ok := that.members[playerID]
	if !ok {
		return
	}

	delete(that.members, playerID)

	if len(that.Members(member.gameID)) == 0 {
		delete(that.games, member.gameID)
	}
}
