package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/schema"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/journal"
	"github.com/vancomm/minesweeper/internal/mines"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrNargs          = errors.New("invalid number of arguments")

	errSessionEnd = errors.New("session ended")
)

// Maps known commands to number of arguments, -1 for any.
var commandNargs = map[string]int{
	"o": 2, // open
	"f": 2, // flag
	"c": 2, // chord
	"n": -1,
	"l": 1,
	"r": 0,
	"g": 0,
	"h": 0,
	"q": 0,
}

const help = `commands:
  o ROW COL                      open a cell
  f ROW COL                      flag or unflag a cell
  c ROW COL                      open around a satisfied number
  n [height=H width=W mines=M]   new game, same field if no options
  l LEVEL                        new game on beginner, intermediate or expert
  r                              restart with a new layout
  g                              show the board
  q                              quit
`

type NewGameDTO struct {
	Height    int `schema:"height,required"`
	Width     int `schema:"width,required"`
	MineCount int `schema:"mines,required"`
}

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// ParseNewGameDTO reads "key=value" options.
func ParseNewGameDTO(args []string) (NewGameDTO, error) {
	src := make(map[string][]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return NewGameDTO{}, fmt.Errorf("option %q is not key=value", arg)
		}
		src[key] = append(src[key], value)
	}
	var dto NewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

func parseRowCol(args []string) (p mines.Position, err error) {
	if p.Row, err = strconv.Atoi(args[0]); err != nil {
		return p, errors.New("row must be an int")
	}
	if p.Col, err = strconv.Atoi(args[1]); err != nil {
		return p, errors.New("column must be an int")
	}
	return p, nil
}

// Session is one player at a terminal. It owns its journal and closes it
// when Run returns.
type Session struct {
	out     io.Writer
	logger  *slog.Logger
	journal *journal.Journal
	rnd     *rand.Rand

	game  *mines.Game
	match uuid.UUID
}

// NewSession starts a game on info. A non-zero seed makes the sequence of
// layouts reproducible. Every match draws its own seed from the session and
// journals it.
func NewSession(
	out io.Writer,
	logger *slog.Logger,
	j *journal.Journal,
	info mines.FieldInfo,
	seed uint64,
) (*Session, error) {
	s := &Session{
		out:     out,
		logger:  logger,
		journal: j,
	}
	if seed != 0 {
		s.rnd = rand.New(rand.NewPCG(seed, seed))
	}
	if err := s.newGame(info); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) Game() *mines.Game { return s.game }

// nextSeed is never zero, zero marks a fixed layout in the journal.
func (s *Session) nextSeed() uint64 {
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	for {
		if seed := s.rnd.Uint64(); seed != 0 {
			return seed
		}
	}
}

func (s *Session) newGame(info mines.FieldInfo) error {
	seed := s.nextSeed()
	game, err := mines.NewGame(info, mines.WithSeed(seed))
	if err != nil {
		return err
	}
	s.begin(game, seed)
	return nil
}

func (s *Session) begin(game *mines.Game, seed uint64) {
	s.game = game
	s.match = uuid.New()
	s.journal.Start(s.match, game.FieldInfo(), seed)
	s.logger.Debug("match started", "match", s.match, "field", game.FieldInfo().String())
}

// Execute runs one command line. Errors are the player's mistakes and leave
// the session usable; quit is set once the player asks to leave.
func (s *Session) Execute(line string) (quit bool, err error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false, nil
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return false, fmt.Errorf("%w %q, h for help", ErrUnknownCommand, parts[0])
	}
	args := parts[1:]
	if nargs >= 0 && nargs != len(args) {
		return false, fmt.Errorf("%w: %s takes %d", ErrNargs, parts[0], nargs)
	}

	switch parts[0] {
	case "o", "f", "c":
		p, err := parseRowCol(args)
		if err != nil {
			return false, err
		}
		return false, s.move(parts[0], p)
	case "n":
		info := s.game.FieldInfo()
		if len(args) > 0 {
			dto, err := ParseNewGameDTO(args)
			if err != nil {
				return false, err
			}
			if info, err = mines.NewFieldInfo(dto.Height, dto.Width, dto.MineCount); err != nil {
				return false, err
			}
		}
		s.abandon()
		if err := s.newGame(info); err != nil {
			return false, err
		}
		return false, Render(s.out, s.game)
	case "l":
		level, err := mines.ParseLevel(args[0])
		if err != nil {
			return false, err
		}
		s.abandon()
		if err := s.newGame(level.FieldInfo()); err != nil {
			return false, err
		}
		return false, Render(s.out, s.game)
	case "r":
		s.abandon()
		if err := s.newGame(s.game.FieldInfo()); err != nil {
			return false, err
		}
		return false, Render(s.out, s.game)
	case "g":
		return false, Render(s.out, s.game)
	case "h":
		_, err := io.WriteString(s.out, help)
		return false, err
	case "q":
		s.abandon()
		return true, nil
	}
	return false, ErrUnknownCommand
}

// abandon closes the journal entry of a match left unfinished.
func (s *Session) abandon() {
	if !s.game.State().Over() {
		s.journal.End(s.match, s.game.State(), s.game.Elapsed())
	}
}

func (s *Session) move(action string, p mines.Position) error {
	var (
		res mines.Result
		err error
	)
	switch action {
	case "o":
		res, err = s.game.Reveal(p)
	case "f":
		res, err = s.game.ToggleFlag(p)
	case "c":
		res, err = s.game.RevealNeighbors(p)
	}
	s.journal.Move(s.match, action, p, res, err)
	if err != nil {
		return err
	}

	if err := Render(s.out, s.game); err != nil {
		return err
	}
	switch res.Outcome {
	case mines.OutcomeWon:
		fmt.Fprintln(s.out, "you won")
	case mines.OutcomeLost:
		fmt.Fprintln(s.out, "boom, you lost")
	default:
		return nil
	}
	s.journal.End(s.match, s.game.State(), s.game.Elapsed())
	s.logger.Info("match over",
		"match", s.match,
		"state", s.game.State().String(),
		"elapsed", s.game.Elapsed().String(),
	)
	return nil
}

// Run reads commands from in until the player quits, in runs dry or ctx is
// cancelled.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	if err := Render(s.out, s.game); err != nil {
		return err
	}

	// Scan cannot be interrupted, so the reader lives outside the group and
	// is abandoned on cancellation.
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			s.logger.Error("unable to read input", "error", err)
		}
	}()

	g, gCtx := errgroup.WithContext(ctx)
	loopDone := make(chan struct{})
	g.Go(func() error {
		defer close(loopDone)
		for {
			select {
			case <-gCtx.Done():
				s.abandon()
				return gCtx.Err()
			case line, ok := <-lines:
				if !ok {
					s.abandon()
					return errSessionEnd
				}
				quit, err := s.Execute(line)
				if err != nil {
					fmt.Fprintf(s.out, "error: %v\n", err)
				}
				if quit {
					return errSessionEnd
				}
			}
		}
	})
	// The journal is closed only after the loop has written its last record.
	g.Go(func() error {
		<-gCtx.Done()
		<-loopDone
		return s.journal.Close()
	})

	err := g.Wait()
	if errors.Is(err, errSessionEnd) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
