package mines

import "iter"

// Table owns the cells of one board. It knows nothing about turns or
// game state; [Game] drives it.
type Table struct {
	height, width int
	mineCount     int
	cells         []cell
	placed        bool
	revealed      int // revealed cells without a mine
	flags         int
}

func NewTable(info FieldInfo) *Table {
	return &Table{
		height:    info.Height,
		width:     info.Width,
		mineCount: info.MineCount,
		cells:     make([]cell, info.Height*info.Width),
	}
}

func (t *Table) Height() int    { return t.height }
func (t *Table) Width() int     { return t.width }
func (t *Table) MineCount() int { return t.mineCount }
func (t *Table) Placed() bool   { return t.placed }
func (t *Table) Revealed() int  { return t.revealed }
func (t *Table) Flags() int     { return t.flags }

func (t *Table) Contains(p Position) bool {
	return 0 <= p.Row && p.Row < t.height && 0 <= p.Col && p.Col < t.width
}

func (t *Table) index(p Position) int {
	return p.Row*t.width + p.Col
}

func (t *Table) position(i int) Position {
	return Position{Row: i / t.width, Col: i % t.width}
}

func (t *Table) checkPosition(p Position) error {
	if !t.Contains(p) {
		return positionError(ErrInvalidPosition, p)
	}
	return nil
}

// neighbors yields the indices around i, clipped at the edges, row by row.
func (t *Table) neighbors(i int) iter.Seq[int] {
	return func(yield func(int) bool) {
		row, col := i/t.width, i%t.width
		for r := max(0, row-1); r <= min(row+1, t.height-1); r++ {
			for c := max(0, col-1); c <= min(col+1, t.width-1); c++ {
				if r == row && c == col {
					continue
				}
				if !yield(r*t.width + c) {
					return
				}
			}
		}
	}
}

// HiddenSafeCount is the number of cells without a mine that are still
// waiting to be revealed. The game is won when it reaches zero.
func (t *Table) HiddenSafeCount() int {
	return len(t.cells) - t.mineCount - t.revealed
}

// revealable reports why p cannot be revealed, if it cannot.
func (t *Table) revealable(p Position) error {
	if err := t.checkPosition(p); err != nil {
		return err
	}
	switch t.cells[t.index(p)].state {
	case CellRevealed:
		return positionError(ErrCellAlreadyRevealed, p)
	case CellFlagged:
		return positionError(ErrCellFlagged, p)
	}
	return nil
}

// Reveal opens the cell at p. A mine is reported through boom and never
// cascades. A cell with no adjacent mines opens its whole zero region
// together with the numbered cells bordering it.
func (t *Table) Reveal(p Position) (cells []RevealedCell, boom bool, err error) {
	if err := t.revealable(p); err != nil {
		return nil, false, err
	}
	if !t.placed {
		return nil, false, ErrNotStarted
	}

	i := t.index(p)
	if t.cells[i].mine {
		t.cells[i].state = CellRevealed
		return []RevealedCell{{Position: p, Mine: true}}, true, nil
	}
	return t.open(i), false, nil
}

// RevealNeighbors opens every hidden neighbour of a revealed number once as
// many neighbours are flagged as the number says. Otherwise nothing happens.
func (t *Table) RevealNeighbors(p Position) (cells []RevealedCell, boom bool, err error) {
	if err := t.checkPosition(p); err != nil {
		return nil, false, err
	}
	if !t.placed {
		return nil, false, ErrNotStarted
	}

	i := t.index(p)
	c := t.cells[i]
	if c.state != CellRevealed || c.mine || c.adjacent == 0 {
		return nil, false, nil
	}

	flagged := 0
	targets := make([]int, 0, 8)
	for j := range t.neighbors(i) {
		switch t.cells[j].state {
		case CellFlagged:
			flagged++
		case CellHidden:
			targets = append(targets, j)
		}
	}
	if flagged != int(c.adjacent) || len(targets) == 0 {
		return nil, false, nil
	}

	for _, j := range targets {
		if t.cells[j].mine {
			t.cells[j].state = CellRevealed
			return []RevealedCell{{Position: t.position(j), Mine: true}}, true, nil
		}
	}
	return t.open(targets...), false, nil
}

// open reveals the safe cells in start and flood fills from every zero cell
// it reaches. Each cell is queued at most once.
func (t *Table) open(start ...int) []RevealedCell {
	todo := newCelltodo(len(t.cells))
	queued := make([]bool, len(t.cells))
	for _, i := range start {
		queued[i] = true
		todo.add(i)
	}

	var opened []RevealedCell
	for i, ok := todo.pop(); ok; i, ok = todo.pop() {
		c := &t.cells[i]
		if c.state != CellHidden || c.mine {
			continue
		}
		c.state = CellRevealed
		t.revealed++
		opened = append(opened, RevealedCell{
			Position: t.position(i),
			Adjacent: int(c.adjacent),
		})
		if c.adjacent != 0 {
			continue
		}
		for j := range t.neighbors(i) {
			if !queued[j] && t.cells[j].state == CellHidden {
				queued[j] = true
				todo.add(j)
			}
		}
	}
	return opened
}

// ToggleFlag flips a hidden cell to flagged and back, and reports whether
// the cell ended up flagged.
func (t *Table) ToggleFlag(p Position) (flagged bool, err error) {
	if err := t.checkPosition(p); err != nil {
		return false, err
	}
	c := &t.cells[t.index(p)]
	switch c.state {
	case CellHidden:
		c.state = CellFlagged
		t.flags++
		return true, nil
	case CellFlagged:
		c.state = CellHidden
		t.flags--
		return false, nil
	default:
		return false, positionError(ErrCellAlreadyFlaggedOrRevealed, p)
	}
}

func (t *Table) info(i int, unmask bool) CellInfo {
	c := t.cells[i]
	ci := CellInfo{Position: t.position(i), State: c.state}
	if c.state == CellRevealed || unmask {
		ci.Mine = c.mine
		if !c.mine {
			ci.Adjacent = int(c.adjacent)
		}
	}
	return ci
}

func (t *Table) Cell(p Position, unmask bool) (CellInfo, error) {
	if err := t.checkPosition(p); err != nil {
		return CellInfo{}, err
	}
	return t.info(t.index(p), unmask), nil
}

func (t *Table) Snapshot(unmask bool) Grid {
	grid := make(Grid, len(t.cells))
	for i := range t.cells {
		grid[i] = t.info(i, unmask)
	}
	return grid
}

func (t *Table) MinePositions() []Position {
	positions := make([]Position, 0, t.mineCount)
	for i, c := range t.cells {
		if c.mine {
			positions = append(positions, t.position(i))
		}
	}
	return positions
}
