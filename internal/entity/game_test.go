package entity

import (
	"testing"

	"github.com/rocketscienceinc/omok-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame() *Game {
	return NewGame(
		"game-1",
		NewBoard(DefaultBoardSize, DefaultWinLength),
		&Player{ID: "alice-id", Nickname: "alice"},
		&Player{ID: "bob-id", Nickname: "bob"},
	)
}

func TestNewGame(t *testing.T) {
	game := newTestGame()

	assert.Equal(t, SlotOne, game.CurrentPlayer)
	assert.False(t, game.IsGameOver)
	assert.Equal(t, OutcomeNone, game.Outcome)
	assert.Equal(t, SlotOne, game.SlotOf("alice-id"))
	assert.Equal(t, SlotTwo, game.SlotOf("bob-id"))
	assert.Zero(t, game.SlotOf("carol-id"))
}

func TestNewGame_CopiesPlayers(t *testing.T) {
	// Given: a game created from two players
	alice := &Player{ID: "alice-id", Nickname: "alice"}
	game := NewGame("game-1", NewBoard(DefaultBoardSize, DefaultWinLength), alice, &Player{ID: "bob-id", Nickname: "bob"})

	// When: the original player is renamed
	alice.Nickname = "renamed"

	// Then: the game keeps the name it was created with
	assert.Equal(t, "alice", game.Player(SlotOne).Nickname)
}

func TestGame_MakeTurn(t *testing.T) {
	t.Run("Turn alternates after every non-terminal move", func(t *testing.T) {
		// Given: a new game
		game := newTestGame()
		moves := []struct {
			playerID string
			row, col int
		}{
			{"alice-id", 7, 7},
			{"bob-id", 7, 8},
			{"alice-id", 8, 7},
			{"bob-id", 8, 8},
			{"alice-id", 0, 0},
		}

		for _, move := range moves {
			moved := game.SlotOf(move.playerID)

			// When: the player in turn makes a move
			err := game.MakeTurn(move.playerID, move.row, move.col)
			require.NoError(t, err)

			// Then: the other player is in turn
			assert.Equal(t, 3-moved, game.CurrentPlayer)
			assert.Equal(t, Cell(moved), game.Board.At(move.row, move.col))
		}
	})

	t.Run("Error on Cell Already Occupied", func(t *testing.T) {
		// Given: a game where (7,7) is taken by player one
		game := newTestGame()
		require.NoError(t, game.MakeTurn("alice-id", 7, 7))
		before := game.State()

		// When: player two plays the same cell
		err := game.MakeTurn("bob-id", 7, 7)

		// Then: the move is rejected and nothing changes
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before, game.State())
	})

	t.Run("Error on Playing Out of Turn", func(t *testing.T) {
		game := newTestGame()
		before := game.State()

		err := game.MakeTurn("bob-id", 0, 0)

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, before, game.State())
	})

	t.Run("Error on Out of Range coordinates", func(t *testing.T) {
		game := newTestGame()

		for _, cell := range [][2]int{{-1, 0}, {0, -1}, {15, 0}, {0, 15}} {
			err := game.MakeTurn("alice-id", cell[0], cell[1])
			require.ErrorIs(t, err, apperror.ErrCellOutOfBounds)
		}
		assert.Equal(t, SlotOne, game.CurrentPlayer)
	})

	t.Run("Error on unknown player", func(t *testing.T) {
		game := newTestGame()

		err := game.MakeTurn("carol-id", 0, 0)

		require.ErrorIs(t, err, apperror.ErrNotParticipant)
	})

	t.Run("Turn is checked before bounds", func(t *testing.T) {
		game := newTestGame()

		err := game.MakeTurn("bob-id", 99, 99)

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Fifth stone in a row wins the game", func(t *testing.T) {
		// Given: player one has four stones in row 0, player two plays row 1
		game := newTestGame()
		for col := 0; col < 4; col++ {
			require.NoError(t, game.MakeTurn("alice-id", 0, col))
			require.NoError(t, game.MakeTurn("bob-id", 1, col))
		}

		// When: player one places the fifth stone
		err := game.MakeTurn("alice-id", 0, 4)

		// Then: the game is over with player one as the winner
		require.NoError(t, err)
		state := game.State()
		assert.True(t, state.IsGameOver)
		assert.Equal(t, OutcomeWin, state.Outcome)
		require.NotNil(t, state.WinnerNumber)
		assert.Equal(t, SlotOne, *state.WinnerNumber)
		assert.Equal(t, "alice wins!", state.Message)
	})

	t.Run("No move is accepted after the game is finished", func(t *testing.T) {
		game := newTestGame()
		for col := 0; col < 4; col++ {
			require.NoError(t, game.MakeTurn("alice-id", 0, col))
			require.NoError(t, game.MakeTurn("bob-id", 1, col))
		}
		require.NoError(t, game.MakeTurn("alice-id", 0, 4))
		before := game.State()

		err := game.MakeTurn("bob-id", 1, 4)

		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, before, game.State())
	})
}

func TestGame_DrawAndWinOnFullBoard(t *testing.T) {
	t.Run("Last move filling the board without a line is a draw", func(t *testing.T) {
		// Given: a 3x3 game with win length 3 and one empty cell left
		game := NewGame("small", NewBoard(3, 3),
			&Player{ID: "p1", Nickname: "one"},
			&Player{ID: "p2", Nickname: "two"})
		pattern := [3][3]Cell{
			{PlayerOne, PlayerTwo, PlayerOne},
			{PlayerOne, PlayerTwo, PlayerTwo},
			{PlayerTwo, PlayerOne, EmptyCell},
		}
		for row := range pattern {
			for col := range pattern[row] {
				game.Board.Place(row, col, pattern[row][col])
			}
		}

		// When: player one fills the last cell
		err := game.MakeTurn("p1", 2, 2)

		// Then: the game ends in a draw
		require.NoError(t, err)
		assert.True(t, game.IsGameOver)
		assert.Equal(t, OutcomeDraw, game.Outcome)
		assert.Nil(t, game.State().WinnerNumber)
		assert.Equal(t, "Draw!", game.Message)
	})

	t.Run("Last move filling the board with a line is a win", func(t *testing.T) {
		game := NewGame("small", NewBoard(3, 3),
			&Player{ID: "p1", Nickname: "one"},
			&Player{ID: "p2", Nickname: "two"})
		pattern := [3][3]Cell{
			{PlayerOne, PlayerTwo, PlayerTwo},
			{PlayerTwo, PlayerOne, PlayerOne},
			{PlayerOne, PlayerTwo, EmptyCell},
		}
		for row := range pattern {
			for col := range pattern[row] {
				game.Board.Place(row, col, pattern[row][col])
			}
		}

		err := game.MakeTurn("p1", 2, 2)

		require.NoError(t, err)
		assert.Equal(t, OutcomeWin, game.Outcome)
		assert.Equal(t, SlotOne, game.Winner)
	})
}

func TestGame_Abandon(t *testing.T) {
	t.Run("Ends an ongoing game without a winner", func(t *testing.T) {
		game := newTestGame()

		err := game.Abandon("bob-id")

		require.NoError(t, err)
		assert.True(t, game.IsGameOver)
		assert.Equal(t, OutcomeAbandoned, game.Outcome)
		assert.Nil(t, game.State().WinnerNumber)
		assert.Equal(t, "bob has left the game.", game.Message)
	})

	t.Run("Returns ErrGameFinished for a finished game", func(t *testing.T) {
		game := newTestGame()
		require.NoError(t, game.Abandon("alice-id"))

		err := game.Abandon("bob-id")

		assert.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, "alice has left the game.", game.Message)
	})
}

func TestGame_State(t *testing.T) {
	game := newTestGame()
	require.NoError(t, game.MakeTurn("alice-id", 3, 4))

	state := game.State()

	assert.Equal(t, "game-1", state.ID)
	assert.Equal(t, PlayerOne, state.Board[3][4])
	assert.Equal(t, SlotTwo, state.CurrentPlayer)
	assert.Equal(t, "alice", state.Players[SlotOne].Nickname)
	assert.Equal(t, "bob", state.Players[SlotTwo].Nickname)
	assert.Nil(t, state.WinnerNumber)
}
