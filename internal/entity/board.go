package entity

const (
	DefaultBoardSize = 15
	DefaultWinLength = 5
)

// Cell is a single intersection of the board. Occupied cells hold the slot number of the player.
type Cell int

const (
	EmptyCell Cell = iota
	PlayerOne
	PlayerTwo
)

var directions = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal
	{1, -1}, // anti-diagonal
}

type Board struct {
	cells     [][]Cell
	winLength int
}

// NewBoard - creates an empty square board.
func NewBoard(size, winLength int) *Board {
	cells := make([][]Cell, size)
	for i := range cells {
		cells[i] = make([]Cell, size)
	}

	return &Board{
		cells:     cells,
		winLength: winLength,
	}
}

func (that *Board) Size() int {
	return len(that.cells)
}

func (that *Board) InBounds(row, col int) bool {
	return row >= 0 && row < len(that.cells) && col >= 0 && col < len(that.cells)
}

func (that *Board) At(row, col int) Cell {
	return that.cells[row][col]
}

// Place - writes the stone without any validation, callers check bounds and emptiness.
func (that *Board) Place(row, col int, stone Cell) {
	that.cells[row][col] = stone
}

// CheckWin - reports whether the stone at (row, col) completes a line of winLength or more.
// It must be called with the coordinates of the stone that was just placed.
func (that *Board) CheckWin(row, col int) bool {
	stone := that.cells[row][col]
	if stone == EmptyCell {
		return false
	}

	for _, dir := range directions {
		count := 1
		count += that.run(row, col, dir[0], dir[1], stone)
		count += that.run(row, col, -dir[0], -dir[1], stone)

		if count >= that.winLength {
			return true
		}
	}

	return false
}

// run counts same-valued stones from (row, col) in one direction, excluding the origin.
func (that *Board) run(row, col, dr, dc int, stone Cell) int {
	count := 0
	for i := 1; i < that.winLength; i++ {
		r, c := row+dr*i, col+dc*i
		if !that.InBounds(r, c) || that.cells[r][c] != stone {
			break
		}
		count++
	}

	return count
}

// CheckDraw - reports whether no empty cell remains.
func (that *Board) CheckDraw() bool {
	for _, row := range that.cells {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

// Snapshot - returns a deep copy of the cells, safe to hand to other goroutines.
func (that *Board) Snapshot() [][]Cell {
	out := make([][]Cell, len(that.cells))
	for i, row := range that.cells {
		out[i] = make([]Cell, len(row))
		copy(out[i], row)
	}

	return out
}
