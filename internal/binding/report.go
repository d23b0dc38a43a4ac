package binding

import "github.com/vancomm/minesweeper/internal/mines"

// CellRecord is a cell flattened for callers outside Go. Its layout matches
// the C struct ms_cell.
type CellRecord struct {
	Row, Col int64
	State    int32
	Adjacent int32
	Mine     int32
}

func RecordOf(ci mines.CellInfo) CellRecord {
	rec := CellRecord{
		Row:      int64(ci.Row),
		Col:      int64(ci.Col),
		State:    int32(ci.State),
		Adjacent: int32(ci.Adjacent),
	}
	if ci.Mine {
		rec.Mine = 1
	}
	return rec
}

// Report is a move result flattened for callers outside Go. Mines is only
// filled once the game is over.
type Report struct {
	Outcome int32
	Cells   []CellRecord
	Mines   []CellRecord
}

// Buffers holds the capacities of caller-owned output buffers. A negative
// capacity means the caller does not want that list.
type Buffers struct {
	Cells, Mines int
}

// NoBuffers asks for the outcome only.
var NoBuffers = Buffers{Cells: -1, Mines: -1}

// MinBuffers is the smallest capacity that holds any single move on info.
func MinBuffers(info mines.FieldInfo) Buffers {
	return Buffers{
		Cells: info.Cells() - info.MineCount,
		Mines: info.MineCount,
	}
}

// check rejects buffers that could be too small for a move on info. It runs
// before the move, so a rejected call never changes the game.
func (b Buffers) check(info mines.FieldInfo) error {
	least := MinBuffers(info)
	if b.Cells >= 0 && b.Cells < least.Cells {
		return ErrBufferTooSmall
	}
	if b.Mines >= 0 && b.Mines < least.Mines {
		return ErrBufferTooSmall
	}
	return nil
}

func report(g *mines.Game, res mines.Result, b Buffers) Report {
	rep := Report{Outcome: OutcomeCode(res.Outcome)}
	if b.Cells >= 0 {
		rep.Cells = make([]CellRecord, 0, len(res.Cells))
		for _, c := range res.Cells {
			rep.Cells = append(rep.Cells, RecordOf(mines.CellInfo{
				Position: c.Position,
				State:    mines.CellRevealed,
				Mine:     c.Mine,
				Adjacent: c.Adjacent,
			}))
		}
	}
	if b.Mines >= 0 {
		rep.Mines = make([]CellRecord, 0, len(res.Mines))
		for _, p := range res.Mines {
			ci, err := g.Cell(p)
			if err != nil {
				continue
			}
			rep.Mines = append(rep.Mines, RecordOf(ci))
		}
	}
	return rep
}

func (r *Registry) apply(h Handle, b Buffers, move func(*mines.Game) (mines.Result, error)) (rep Report, err error) {
	err = r.with(h, func(g *mines.Game) error {
		if err := b.check(g.FieldInfo()); err != nil {
			return err
		}
		res, err := move(g)
		if err != nil {
			return err
		}
		rep = report(g, res, b)
		return nil
	})
	return rep, err
}

// Open reveals p and reports the result into buffers of the given
// capacities. Buffers smaller than [MinBuffers] are rejected up front.
func (r *Registry) Open(h Handle, p mines.Position, b Buffers) (Report, error) {
	return r.apply(h, b, func(g *mines.Game) (mines.Result, error) {
		return g.Reveal(p)
	})
}

func (r *Registry) OpenNeighbors(h Handle, p mines.Position, b Buffers) (Report, error) {
	return r.apply(h, b, func(g *mines.Game) (mines.Result, error) {
		return g.RevealNeighbors(p)
	})
}

func (r *Registry) Mines(h Handle) (recs []CellRecord, err error) {
	err = r.with(h, func(g *mines.Game) error {
		if !g.State().Over() {
			return nil
		}
		for _, ci := range g.Snapshot() {
			if ci.Mine {
				recs = append(recs, RecordOf(ci))
			}
		}
		return nil
	})
	return recs, err
}
