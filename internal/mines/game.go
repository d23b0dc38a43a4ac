package mines

import (
	"fmt"
	"hash/maphash"
	"log/slog"
	"math/rand/v2"
	"time"
)

var Log *slog.Logger = slog.Default()

type State int

const (
	NotStarted State = iota
	InProgress
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Over reports whether s is terminal.
func (s State) Over() bool {
	return s == Won || s == Lost
}

// Game is the only way callers mutate a board. It is not safe for
// concurrent use.
type Game struct {
	info  FieldInfo
	table *Table
	state State

	rnd   *rand.Rand
	mines []Position // fixed layout, nil for random placement
	now   func() time.Time

	startedAt, endedAt time.Time
}

type Option func(*Game)

// WithRand sets the source used for mine placement.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) {
		g.rnd = r
	}
}

func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

// WithMines fixes the mine layout. Mines are placed when the game is
// created, so it starts in progress and the first click is not protected.
func WithMines(positions ...Position) Option {
	return func(g *Game) {
		g.mines = append(make([]Position, 0, len(positions)), positions...)
	}
}

func WithClock(now func() time.Time) Option {
	return func(g *Game) {
		g.now = now
	}
}

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func NewGame(info FieldInfo, opts ...Option) (*Game, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	g := &Game{info: info, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	if g.rnd == nil {
		g.rnd = createRand()
	}
	if g.mines != nil && len(g.mines) != info.MineCount {
		return nil, fmt.Errorf(
			"%w: %d mine positions given for %d mines",
			ErrInvalidConfiguration, len(g.mines), info.MineCount,
		)
	}
	if err := g.reset(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) reset() error {
	g.table = NewTable(g.info)
	g.state = NotStarted
	g.startedAt, g.endedAt = time.Time{}, time.Time{}
	if g.mines == nil {
		return nil
	}
	if err := g.table.PlaceMinesAt(g.mines); err != nil {
		return err
	}
	g.state = InProgress
	return nil
}

// Restart throws the board away and deals a new one with the same field.
func (g *Game) Restart() error {
	return g.reset()
}

func (g *Game) FieldInfo() FieldInfo { return g.info }
func (g *Game) State() State         { return g.state }
func (g *Game) Height() int          { return g.info.Height }
func (g *Game) Width() int           { return g.info.Width }
func (g *Game) MineCount() int       { return g.info.MineCount }
func (g *Game) Revealed() int        { return g.table.Revealed() }
func (g *Game) FlagsPlaced() int     { return g.table.Flags() }

// Elapsed is the time since the first accepted move, frozen once the game
// is over.
func (g *Game) Elapsed() time.Duration {
	switch {
	case g.startedAt.IsZero():
		return 0
	case !g.endedAt.IsZero():
		return g.endedAt.Sub(g.startedAt)
	default:
		return g.now().Sub(g.startedAt)
	}
}

func (g *Game) startClock() {
	if g.startedAt.IsZero() {
		g.startedAt = g.now()
	}
}

// Reveal opens the cell at p. The first reveal of a game places the mines
// around p, so it never hits one.
func (g *Game) Reveal(p Position) (Result, error) {
	if g.state.Over() {
		return Result{}, ErrGameOver
	}
	if err := g.table.revealable(p); err != nil {
		return Result{}, err
	}

	if g.state == NotStarted {
		if err := g.table.PlaceMines(g.info.MineCount, &p, g.rnd); err != nil {
			return Result{}, err
		}
		g.state = InProgress
		Log.Debug("mines placed", "field", g.info.String(), "start", p.String())
	}
	g.startClock()

	cells, boom, err := g.table.Reveal(p)
	if err != nil {
		return Result{}, err
	}
	return g.settle(cells, boom), nil
}

// RevealNeighbors opens the neighbours of a satisfied number at p.
func (g *Game) RevealNeighbors(p Position) (Result, error) {
	if g.state.Over() {
		return Result{}, ErrGameOver
	}
	if err := g.table.checkPosition(p); err != nil {
		return Result{}, err
	}
	if g.state == NotStarted {
		return Result{}, ErrNotStarted
	}
	g.startClock()

	cells, boom, err := g.table.RevealNeighbors(p)
	if err != nil {
		return Result{}, err
	}
	return g.settle(cells, boom), nil
}

func (g *Game) settle(cells []RevealedCell, boom bool) Result {
	switch {
	case boom:
		g.finish(Lost)
		return Result{Outcome: OutcomeLost, Cells: cells, Mines: g.table.MinePositions()}
	case g.table.HiddenSafeCount() == 0:
		g.finish(Won)
		return Result{Outcome: OutcomeWon, Cells: cells, Mines: g.table.MinePositions()}
	default:
		return Result{Outcome: OutcomeRevealed, Cells: cells}
	}
}

func (g *Game) finish(s State) {
	g.state = s
	g.endedAt = g.now()
	Log.Debug("game over",
		"field", g.info.String(),
		"state", s.String(),
		"elapsed", g.Elapsed().String(),
	)
}

// ToggleFlag flags or unflags the hidden cell at p. Flags never decide the
// outcome of a game.
func (g *Game) ToggleFlag(p Position) (Result, error) {
	if g.state.Over() {
		return Result{}, ErrGameOver
	}
	flagged, err := g.table.ToggleFlag(p)
	if err != nil {
		return Result{}, err
	}
	g.startClock()
	if flagged {
		return Result{Outcome: OutcomeFlagged}, nil
	}
	return Result{Outcome: OutcomeUnflagged}, nil
}

// Cell returns what the player may see at p. Everything is visible once
// the game is over.
func (g *Game) Cell(p Position) (CellInfo, error) {
	return g.table.Cell(p, g.state.Over())
}

func (g *Game) Snapshot() Grid {
	return g.table.Snapshot(g.state.Over())
}
