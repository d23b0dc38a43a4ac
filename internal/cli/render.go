package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper/internal/mines"
)

const (
	glyphHidden    = "-"
	glyphFlag      = "F"
	glyphMine      = "*"
	glyphExploded  = "X"
	glyphWrongFlag = "!"
)

// glyph draws one cell of a snapshot. Mines and wrong flags only show up
// once the game is over and the snapshot is unmasked.
func glyph(ci mines.CellInfo, over bool) string {
	switch ci.State {
	case mines.CellFlagged:
		if over && !ci.Mine {
			return glyphWrongFlag
		}
		return glyphFlag
	case mines.CellRevealed:
		if ci.Mine {
			return glyphExploded
		}
		return strconv.Itoa(ci.Adjacent)
	default:
		if ci.Mine {
			return glyphMine
		}
		return glyphHidden
	}
}

// Render writes the board with row and column labels followed by a status
// line. Column labels wrap at 10 to keep one character per cell.
func Render(w io.Writer, g *mines.Game) error {
	height, width := g.Height(), g.Width()
	grid, over := g.Snapshot(), g.State().Over()
	lw := len(strconv.Itoa(height - 1))

	var b strings.Builder
	cols := make([]string, width)
	for col := range width {
		cols[col] = strconv.Itoa(col % 10)
	}
	fmt.Fprintf(&b, "%s %s\n", strings.Repeat(" ", lw), strings.Join(cols, " "))

	row := make([]string, width)
	for r := range height {
		for c := range width {
			row[c] = glyph(grid.At(width, mines.Position{Row: r, Col: c}), over)
		}
		fmt.Fprintf(&b, "%*d %s\n", lw, r, strings.Join(row, " "))
	}
	fmt.Fprintf(&b, "%s  mines: %d  flags: %d\n", g.State(), g.MineCount(), g.FlagsPlaced())

	_, err := io.WriteString(w, b.String())
	return err
}
