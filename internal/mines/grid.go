package mines

import "fmt"

type Position struct {
	Row, Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

type CellState int8

const (
	CellHidden CellState = iota
	CellRevealed
	CellFlagged
)

func (s CellState) String() string {
	switch s {
	case CellHidden:
		return "hidden"
	case CellRevealed:
		return "revealed"
	case CellFlagged:
		return "flagged"
	default:
		return fmt.Sprintf("CellState(%d)", int8(s))
	}
}

type cell struct {
	mine     bool
	adjacent uint8
	state    CellState
}

// CellInfo is what a player is allowed to know about a cell. Mine and
// Adjacent are zero for cells that are not revealed, unless the grid was
// unmasked because the game is over.
type CellInfo struct {
	Position
	State    CellState
	Mine     bool
	Adjacent int
}

// Grid is a row-major snapshot of a board.
type Grid []CellInfo

func (g Grid) At(width int, p Position) CellInfo {
	return g[p.Row*width+p.Col]
}
