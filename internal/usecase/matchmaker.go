package usecase

import (
	"github.com/rocketscienceinc/omok-backend/internal/apperror"
	"github.com/rocketscienceinc/omok-backend/internal/entity"
)

// MatchResult is the outcome of a player arriving at the matchmaker.
type MatchResult struct {
	Paired bool
	First  *entity.Player
	Second *entity.Player
}

// Matchmaker holds at most one player waiting for an opponent.
// It is not safe for concurrent use, callers serialize access.
type Matchmaker struct {
	pending *entity.Player
}

func NewMatchmaker() *Matchmaker {
	return &Matchmaker{}
}

// Arrive - queues the player or pairs it with the waiting one.
// The waiting player takes slot one, the arriving player slot two.
func (that *Matchmaker) Arrive(player *entity.Player) (MatchResult, error) {
	if player == nil || player.Nickname == "" {
		return MatchResult{}, apperror.ErrNicknameRequired
	}

	if that.pending == nil || that.pending.ID == player.ID {
		that.pending = player
		return MatchResult{}, nil
	}

	first := that.pending
	that.pending = nil

	return MatchResult{
		Paired: true,
		First:  first,
		Second: player,
	}, nil
}

// CancelIfPending - removes the player from the queue if it is the waiting one.
func (that *Matchmaker) CancelIfPending(playerID string) bool {
	if that.pending == nil || that.pending.ID != playerID {
		return false
	}

	that.pending = nil

	return true
}

func (that *Matchmaker) IsPending(playerID string) bool {
	return that.pending != nil && that.pending.ID == playerID
}

func (that *Matchmaker) HasPending() bool {
	return that.pending != nil
}
