package mines

import (
	"fmt"
	"math/rand/v2"
)

// PlaceMines puts count mines on distinct cells chosen uniformly at random,
// never on exclude when it is given, then computes adjacency counts.
// Mines can only be placed once per table.
func (t *Table) PlaceMines(count int, exclude *Position, r *rand.Rand) error {
	if t.placed {
		return ErrMinesPlaced
	}
	if exclude != nil {
		if err := t.checkPosition(*exclude); err != nil {
			return err
		}
	}

	/*
	 * Write down the list of possible mine locations.
	 */
	candidates := make([]int, 0, len(t.cells))
	for i := range t.cells {
		if exclude != nil && i == t.index(*exclude) {
			continue
		}
		candidates = append(candidates, i)
	}
	if count < 0 || count > len(candidates) || count >= len(t.cells) {
		return fmt.Errorf(
			"%w: cannot place %d mines on %d cells",
			ErrInvalidConfiguration, count, len(candidates),
		)
	}

	/*
	 * Now pick count off the list at random.
	 */
	k := len(candidates)
	for range count {
		i := r.IntN(k)
		t.cells[candidates[i]].mine = true
		k--
		candidates[i] = candidates[k]
	}

	t.mineCount = count
	t.countAdjacent()
	t.placed = true
	return nil
}

// PlaceMinesAt puts mines exactly on positions.
func (t *Table) PlaceMinesAt(positions []Position) error {
	if t.placed {
		return ErrMinesPlaced
	}
	if len(positions) >= len(t.cells) {
		return fmt.Errorf(
			"%w: cannot place %d mines on %d cells",
			ErrInvalidConfiguration, len(positions), len(t.cells),
		)
	}

	seen := make(map[Position]struct{}, len(positions))
	for _, p := range positions {
		if err := t.checkPosition(p); err != nil {
			return err
		}
		if _, dup := seen[p]; dup {
			return fmt.Errorf("%w: duplicate mine at %s", ErrInvalidConfiguration, p)
		}
		seen[p] = struct{}{}
	}

	for _, p := range positions {
		t.cells[t.index(p)].mine = true
	}

	t.mineCount = len(positions)
	t.countAdjacent()
	t.placed = true
	return nil
}

func (t *Table) countAdjacent() {
	for i := range t.cells {
		t.cells[i].adjacent = 0
	}
	for i, c := range t.cells {
		if !c.mine {
			continue
		}
		for j := range t.neighbors(i) {
			t.cells[j].adjacent++
		}
	}
}
