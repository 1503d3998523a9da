package entity

import (
	"fmt"

	"github.com/rocketscienceinc/omok-backend/internal/apperror"
)

const (
	SlotOne = 1
	SlotTwo = 2
)

type Outcome string

const (
	OutcomeNone      Outcome = ""
	OutcomeWin       Outcome = "win"
	OutcomeDraw      Outcome = "draw"
	OutcomeAbandoned Outcome = "abandoned"
)

const drawMessage = "Draw!"

// Game is one match between two players. Slot one always moves first.
type Game struct {
	ID            string
	Board         *Board
	Players       [2]*Player
	CurrentPlayer int
	IsGameOver    bool
	Outcome       Outcome
	Winner        int
	Message       string
}

// GameState is the wire form of a game sent to both participants.
type GameState struct {
	ID            string         `json:"gameId"`
	Board         [][]Cell       `json:"board"`
	CurrentPlayer int            `json:"currentPlayer"`
	IsGameOver    bool           `json:"isGameOver"`
	WinnerNumber  *int           `json:"winnerNumber"`
	Outcome       Outcome        `json:"outcome,omitempty"`
	Message       string         `json:"message"`
	Players       map[int]Player `json:"players"`
}

// NewGame - the game keeps its own copies of the players, later nickname changes do not reach it.
func NewGame(id string, board *Board, first, second *Player) *Game {
	one, two := *first, *second

	return &Game{
		ID:            id,
		Board:         board,
		Players:       [2]*Player{&one, &two},
		CurrentPlayer: SlotOne,
	}
}

// SlotOf - returns the slot of the player or 0 when the player is not in the game.
func (that *Game) SlotOf(playerID string) int {
	for i, player := range that.Players {
		if player != nil && player.ID == playerID {
			return i + 1
		}
	}

	return 0
}

func (that *Game) Player(slot int) *Player {
	if slot != SlotOne && slot != SlotTwo {
		return nil
	}

	return that.Players[slot-1]
}

func Opponent(slot int) int {
	return SlotOne + SlotTwo - slot
}

// MakeTurn - validates and applies a move of the player.
// Checks run in order: participant, game not finished, turn, bounds, empty cell.
// A rejected move leaves the game untouched.
func (that *Game) MakeTurn(playerID string, row, col int) error {
	slot := that.SlotOf(playerID)
	if slot == 0 {
		return apperror.ErrNotParticipant
	}

	if that.IsGameOver {
		return apperror.ErrGameFinished
	}

	if that.CurrentPlayer != slot {
		return apperror.ErrNotYourTurn
	}

	if !that.Board.InBounds(row, col) {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrCellOutOfBounds, row, col)
	}

	if that.Board.At(row, col) != EmptyCell {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrCellOccupied, row, col)
	}

	that.Board.Place(row, col, Cell(slot))
	that.updateGameState(slot, row, col)

	return nil
}

// updateGameState - a win is checked before a draw, so a full board with a winning line is a win.
func (that *Game) updateGameState(slot, row, col int) {
	switch {
	case that.Board.CheckWin(row, col):
		that.IsGameOver = true
		that.Outcome = OutcomeWin
		that.Winner = slot
		that.Message = fmt.Sprintf("%s wins!", that.Player(slot).Nickname)
	case that.Board.CheckDraw():
		that.IsGameOver = true
		that.Outcome = OutcomeDraw
		that.Message = drawMessage
	default:
		that.CurrentPlayer = Opponent(slot)
	}
}

// Abandon - ends the game without a winner because the player left.
func (that *Game) Abandon(playerID string) error {
	slot := that.SlotOf(playerID)
	if slot == 0 {
		return apperror.ErrNotParticipant
	}

	if that.IsGameOver {
		return apperror.ErrGameFinished
	}

	that.IsGameOver = true
	that.Outcome = OutcomeAbandoned
	that.Winner = 0
	that.Message = fmt.Sprintf("%s has left the game.", that.Player(slot).Nickname)

	return nil
}

// State - returns a detached snapshot of the game.
func (that *Game) State() GameState {
	state := GameState{
		ID:            that.ID,
		Board:         that.Board.Snapshot(),
		CurrentPlayer: that.CurrentPlayer,
		IsGameOver:    that.IsGameOver,
		Outcome:       that.Outcome,
		Message:       that.Message,
		Players:       make(map[int]Player, len(that.Players)),
	}

	if that.Winner != 0 {
		winner := that.Winner
		state.WinnerNumber = &winner
	}

	for i, player := range that.Players {
		if player != nil {
			state.Players[i+1] = *player
		}
	}

	return state
}
