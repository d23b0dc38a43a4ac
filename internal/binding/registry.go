// Package binding keeps live games behind opaque integer handles so they can
// be driven from outside Go.
package binding

import (
	"errors"
	"sync"
	"time"

	"github.com/vancomm/minesweeper/internal/mines"
)

type Handle uint64

var ErrUnknownHandle = errors.New("unknown game handle")

type slot struct {
	mu   sync.Mutex
	game *mines.Game
}

// Registry owns every game created through it. Handles are never reused, so
// a stale handle is reported instead of touching someone else's game.
// Calls on different handles do not block each other.
type Registry struct {
	mu    sync.RWMutex
	next  Handle
	games map[Handle]*slot
}

func NewRegistry() *Registry {
	return &Registry{games: make(map[Handle]*slot)}
}

// Create starts a new game and returns its handle. A zero seed picks a
// random layout.
func (r *Registry) Create(info mines.FieldInfo, seed uint64) (Handle, error) {
	var opts []mines.Option
	if seed != 0 {
		opts = append(opts, mines.WithSeed(seed))
	}
	game, err := mines.NewGame(info, opts...)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	r.games[r.next] = &slot{game: game}
	mines.Log.Debug("game registered", "handle", uint64(r.next), "field", info.String())
	return r.next, nil
}

// Destroy forgets h. Destroying an unknown handle is an error.
func (r *Registry) Destroy(h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.games[h]; !ok {
		return ErrUnknownHandle
	}
	delete(r.games, h)
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}

// with runs fn on the game behind h while holding that game's lock.
func (r *Registry) with(h Handle, fn func(*mines.Game) error) error {
	r.mu.RLock()
	s, ok := r.games[h]
	r.mu.RUnlock()
	if !ok {
		return ErrUnknownHandle
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.game)
}

func (r *Registry) Reveal(h Handle, p mines.Position) (res mines.Result, err error) {
	err = r.with(h, func(g *mines.Game) error {
		res, err = g.Reveal(p)
		return err
	})
	return res, err
}

func (r *Registry) RevealNeighbors(h Handle, p mines.Position) (res mines.Result, err error) {
	err = r.with(h, func(g *mines.Game) error {
		res, err = g.RevealNeighbors(p)
		return err
	})
	return res, err
}

func (r *Registry) ToggleFlag(h Handle, p mines.Position) (res mines.Result, err error) {
	err = r.with(h, func(g *mines.Game) error {
		res, err = g.ToggleFlag(p)
		return err
	})
	return res, err
}

// Restart deals a new layout on the same field behind h.
func (r *Registry) Restart(h Handle) error {
	return r.with(h, func(g *mines.Game) error {
		return g.Restart()
	})
}

func (r *Registry) Cell(h Handle, p mines.Position) (ci mines.CellInfo, err error) {
	err = r.with(h, func(g *mines.Game) error {
		ci, err = g.Cell(p)
		return err
	})
	return ci, err
}

func (r *Registry) State(h Handle) (s mines.State, err error) {
	err = r.with(h, func(g *mines.Game) error {
		s = g.State()
		return nil
	})
	return s, err
}

func (r *Registry) Size(h Handle) (height, width int, err error) {
	err = r.with(h, func(g *mines.Game) error {
		height, width = g.Height(), g.Width()
		return nil
	})
	return height, width, err
}

func (r *Registry) Elapsed(h Handle) (d time.Duration, err error) {
	err = r.with(h, func(g *mines.Game) error {
		d = g.Elapsed()
		return nil
	})
	return d, err
}
