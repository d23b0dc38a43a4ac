package binding

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/mines"
)

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()

	h, err := r.Create(mines.Beginner.FieldInfo(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	height, width, err := r.Size(h)
	require.NoError(t, err)
	assert.Equal(t, 10, height)
	assert.Equal(t, 10, width)

	s, err := r.State(h)
	require.NoError(t, err)
	assert.Equal(t, mines.NotStarted, s)

	res, err := r.Reveal(h, mines.Position{Row: 4, Col: 4})
	require.NoError(t, err)
	assert.NotEqual(t, mines.OutcomeLost, res.Outcome)

	ci, err := r.Cell(h, mines.Position{Row: 4, Col: 4})
	require.NoError(t, err)
	assert.Equal(t, mines.CellRevealed, ci.State)

	_, err = r.Elapsed(h)
	require.NoError(t, err)

	require.NoError(t, r.Destroy(h))
	assert.Zero(t, r.Len())
}

func TestRegistryUnknownHandle(t *testing.T) {
	r := NewRegistry()
	h, err := r.Create(mines.Beginner.FieldInfo(), 0)
	require.NoError(t, err)
	require.NoError(t, r.Destroy(h))

	p := mines.Position{}
	for name, call := range map[string]func() error{
		"destroy": func() error { return r.Destroy(h) },
		"reveal":  func() error { _, err := r.Reveal(h, p); return err },
		"chord":   func() error { _, err := r.RevealNeighbors(h, p); return err },
		"flag":    func() error { _, err := r.ToggleFlag(h, p); return err },
		"cell":    func() error { _, err := r.Cell(h, p); return err },
		"restart": func() error { return r.Restart(h) },
		"mines":   func() error { _, err := r.Mines(h); return err },
		"open":    func() error { _, err := r.Open(h, p, NoBuffers); return err },
		"state":   func() error { _, err := r.State(h); return err },
		"size":    func() error { _, _, err := r.Size(h); return err },
		"elapsed": func() error { _, err := r.Elapsed(h); return err },
		"never":   func() error { _, err := r.State(Handle(99)); return err },
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, call(), ErrUnknownHandle)
		})
	}
}

func TestRegistryRestart(t *testing.T) {
	r := NewRegistry()
	h, err := r.Create(mines.Beginner.FieldInfo(), 5)
	require.NoError(t, err)

	_, err = r.Reveal(h, mines.Position{Row: 0, Col: 0})
	require.NoError(t, err)
	require.NoError(t, r.Restart(h))

	s, err := r.State(h)
	require.NoError(t, err)
	assert.Equal(t, mines.NotStarted, s)
	ci, err := r.Cell(h, mines.Position{Row: 0, Col: 0})
	require.NoError(t, err)
	assert.Equal(t, mines.CellHidden, ci.State)
}

func TestRegistryHandlesAreNotReused(t *testing.T) {
	r := NewRegistry()
	info := mines.Beginner.FieldInfo()

	a, err := r.Create(info, 0)
	require.NoError(t, err)
	require.NoError(t, r.Destroy(a))
	b, err := r.Create(info, 0)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NotZero(t, b)
}

func TestRegistryCreateInvalid(t *testing.T) {
	r := NewRegistry()
	_, err := r.Create(mines.FieldInfo{Height: 2, Width: 2, MineCount: 4}, 0)
	assert.ErrorIs(t, err, mines.ErrInvalidConfiguration)
	assert.Zero(t, r.Len())
}

func TestRegistrySeedIsDeterministic(t *testing.T) {
	r := NewRegistry()
	info := mines.Expert.FieldInfo()
	start := mines.Position{Row: 8, Col: 15}

	a, err := r.Create(info, 99)
	require.NoError(t, err)
	b, err := r.Create(info, 99)
	require.NoError(t, err)

	ra, err := r.Reveal(a, start)
	require.NoError(t, err)
	rb, err := r.Reveal(b, start)
	require.NoError(t, err)
	assert.Equal(t, ra, rb)
}

func TestRegistryConcurrentGames(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	info := mines.Intermediate.FieldInfo()

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := r.Create(info, uint64(i+1))
			if err != nil {
				errs <- err
				return
			}
			for row := range info.Height {
				_, err := r.Reveal(h, mines.Position{Row: row, Col: row})
				if errors.Is(err, mines.ErrGameOver) || errors.Is(err, mines.ErrCellAlreadyRevealed) {
					continue
				}
				if err != nil {
					errs <- fmt.Errorf("game %d: %w", h, err)
					return
				}
			}
			if err := r.Destroy(h); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
	assert.Zero(t, r.Len())
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want Status
	}{
		{nil, StatusOK},
		{ErrUnknownHandle, StatusUnknownHandle},
		{fmt.Errorf("wrapped: %w", mines.ErrInvalidPosition), StatusInvalidPosition},
		{mines.ErrInvalidConfiguration, StatusInvalidConfiguration},
		{mines.ErrCellAlreadyRevealed, StatusCellAlreadyRevealed},
		{mines.ErrCellFlagged, StatusCellFlagged},
		{mines.ErrCellAlreadyFlaggedOrRevealed, StatusCellAlreadyFlaggedOrRevealed},
		{mines.ErrGameOver, StatusGameOver},
		{mines.ErrNotStarted, StatusNotStarted},
		{ErrBufferTooSmall, StatusBufferTooSmall},
		{errors.New("boom"), StatusInternal},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.err), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}

func TestOutcomeCode(t *testing.T) {
	assert.Equal(t, int32(1), OutcomeCode(mines.OutcomeRevealed))
	assert.Equal(t, int32(5), OutcomeCode(mines.OutcomeLost))
	assert.Equal(t, int32(2), StateCode(mines.Won))
}
