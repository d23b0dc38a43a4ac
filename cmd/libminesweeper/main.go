// Command libminesweeper exposes the game engine as a C shared library.
//
//	go build -buildmode=c-shared -o libminesweeper.so ./cmd/libminesweeper
//
// Every function returns a status code (0 on success) and writes results
// through out pointers. Games are addressed by handles from ms_new_game.
package main

/*
#include <stdint.h>

typedef struct ms_cell {
	int64_t row;
	int64_t col;
	int32_t state;
	int32_t adjacent;
	int32_t mine;
} ms_cell;
*/
import "C"

import (
	"unsafe"

	"github.com/vancomm/minesweeper/internal/binding"
	"github.com/vancomm/minesweeper/internal/mines"
)

var registry = binding.NewRegistry()

func status(err error) C.int {
	return C.int(binding.StatusOf(err))
}

//export ms_new_game
func ms_new_game(height, width, mineCount C.int64_t, seed C.uint64_t, out *C.uint64_t) C.int {
	if out == nil {
		return status(binding.ErrBufferTooSmall)
	}
	info := mines.FieldInfo{Height: int(height), Width: int(width), MineCount: int(mineCount)}
	h, err := registry.Create(info, uint64(seed))
	if err != nil {
		return status(err)
	}
	*out = C.uint64_t(h)
	return status(nil)
}

//export ms_new_level_game
func ms_new_level_game(level C.int32_t, seed C.uint64_t, out *C.uint64_t) C.int {
	l := mines.Level(level)
	if !l.Valid() {
		return status(mines.ErrInvalidConfiguration)
	}
	info := l.FieldInfo()
	return ms_new_game(C.int64_t(info.Height), C.int64_t(info.Width), C.int64_t(info.MineCount), seed, out)
}

//export ms_destroy
func ms_destroy(h C.uint64_t) C.int {
	return status(registry.Destroy(binding.Handle(h)))
}

func capacity(buf *C.ms_cell, n C.int64_t) int {
	if buf == nil {
		return -1
	}
	return int(n)
}

func copyRecords(dst *C.ms_cell, recs []binding.CellRecord, count *C.int64_t) {
	if count != nil {
		*count = C.int64_t(len(recs))
	}
	if dst == nil || len(recs) == 0 {
		return
	}
	buf := unsafe.Slice(dst, len(recs))
	for i, r := range recs {
		buf[i] = C.ms_cell{
			row:      C.int64_t(r.Row),
			col:      C.int64_t(r.Col),
			state:    C.int32_t(r.State),
			adjacent: C.int32_t(r.Adjacent),
			mine:     C.int32_t(r.Mine),
		}
	}
}

type openFunc func(binding.Handle, mines.Position, binding.Buffers) (binding.Report, error)

// open runs a reveal move. cells must hold at least height*width-mines
// entries and mineCells at least mines entries; either may be nil. Buffers
// are checked before the move is applied.
func open(fn openFunc, h C.uint64_t, row, col C.int64_t, outcome *C.int32_t,
	cells *C.ms_cell, cellCap C.int64_t, cellCount *C.int64_t,
	mineCells *C.ms_cell, mineCap C.int64_t, mineCount *C.int64_t,
) C.int {
	bufs := binding.Buffers{Cells: capacity(cells, cellCap), Mines: capacity(mineCells, mineCap)}
	rep, err := fn(binding.Handle(h), mines.Position{Row: int(row), Col: int(col)}, bufs)
	if err != nil {
		return status(err)
	}
	if outcome != nil {
		*outcome = C.int32_t(rep.Outcome)
	}
	copyRecords(cells, rep.Cells, cellCount)
	copyRecords(mineCells, rep.Mines, mineCount)
	return status(nil)
}

//export ms_open
func ms_open(h C.uint64_t, row, col C.int64_t, outcome *C.int32_t,
	cells *C.ms_cell, cellCap C.int64_t, cellCount *C.int64_t,
	mineCells *C.ms_cell, mineCap C.int64_t, mineCount *C.int64_t,
) C.int {
	return open(registry.Open, h, row, col, outcome, cells, cellCap, cellCount, mineCells, mineCap, mineCount)
}

//export ms_open_neighbors
func ms_open_neighbors(h C.uint64_t, row, col C.int64_t, outcome *C.int32_t,
	cells *C.ms_cell, cellCap C.int64_t, cellCount *C.int64_t,
	mineCells *C.ms_cell, mineCap C.int64_t, mineCount *C.int64_t,
) C.int {
	return open(registry.OpenNeighbors, h, row, col, outcome, cells, cellCap, cellCount, mineCells, mineCap, mineCount)
}

//export ms_toggle_flag
func ms_toggle_flag(h C.uint64_t, row, col C.int64_t, outcome *C.int32_t) C.int {
	res, err := registry.ToggleFlag(binding.Handle(h), mines.Position{Row: int(row), Col: int(col)})
	if err != nil {
		return status(err)
	}
	if outcome != nil {
		*outcome = C.int32_t(binding.OutcomeCode(res.Outcome))
	}
	return status(nil)
}

//export ms_restart
func ms_restart(h C.uint64_t) C.int {
	return status(registry.Restart(binding.Handle(h)))
}

//export ms_get_cell
func ms_get_cell(h C.uint64_t, row, col C.int64_t, out *C.ms_cell) C.int {
	if out == nil {
		return status(binding.ErrBufferTooSmall)
	}
	ci, err := registry.Cell(binding.Handle(h), mines.Position{Row: int(row), Col: int(col)})
	if err != nil {
		return status(err)
	}
	copyRecords(out, []binding.CellRecord{binding.RecordOf(ci)}, nil)
	return status(nil)
}

// ms_get_mines lists every mine once the game is over. Before that it
// reports a count of zero.
//
//export ms_get_mines
func ms_get_mines(h C.uint64_t, out *C.ms_cell, n C.int64_t, count *C.int64_t) C.int {
	recs, err := registry.Mines(binding.Handle(h))
	if err != nil {
		return status(err)
	}
	if out != nil && int(n) < len(recs) {
		return status(binding.ErrBufferTooSmall)
	}
	copyRecords(out, recs, count)
	return status(nil)
}

//export ms_get_height
func ms_get_height(h C.uint64_t, out *C.int64_t) C.int {
	height, _, err := registry.Size(binding.Handle(h))
	if err == nil && out != nil {
		*out = C.int64_t(height)
	}
	return status(err)
}

//export ms_get_width
func ms_get_width(h C.uint64_t, out *C.int64_t) C.int {
	_, width, err := registry.Size(binding.Handle(h))
	if err == nil && out != nil {
		*out = C.int64_t(width)
	}
	return status(err)
}

//export ms_get_state
func ms_get_state(h C.uint64_t, out *C.int32_t) C.int {
	s, err := registry.State(binding.Handle(h))
	if err == nil && out != nil {
		*out = C.int32_t(binding.StateCode(s))
	}
	return status(err)
}

//export ms_get_elapsed_seconds
func ms_get_elapsed_seconds(h C.uint64_t, out *C.uint64_t) C.int {
	d, err := registry.Elapsed(binding.Handle(h))
	if err == nil && out != nil {
		*out = C.uint64_t(d.Seconds())
	}
	return status(err)
}

func main() {}
