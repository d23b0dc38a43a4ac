package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/journal"
	"github.com/vancomm/minesweeper/internal/mines"
)

func newTestSession(t *testing.T, out io.Writer, j *journal.Journal, game *mines.Game) *Session {
	t.Helper()
	if j == nil {
		j = journal.Discard()
	}
	s := &Session{
		out:     out,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		journal: j,
	}
	s.begin(game, 0)
	return s
}

func fixedGame(t *testing.T, height, width int, positions ...mines.Position) *mines.Game {
	t.Helper()
	info, err := mines.NewFieldInfo(height, width, len(positions))
	require.NoError(t, err)
	g, err := mines.NewGame(info, mines.WithMines(positions...))
	require.NoError(t, err)
	return g
}

func TestSessionGolden(t *testing.T) {
	tests := []struct {
		name  string
		game  func(t *testing.T) *mines.Game
		input string
	}{
		{
			name: "win_after_flag",
			game: func(t *testing.T) *mines.Game {
				return fixedGame(t, 3, 3, mines.Position{Row: 0, Col: 0})
			},
			input: "f 0 0\no 2 2\no 1 1\nq\n",
		},
		{
			name: "lose_with_wrong_flag",
			game: func(t *testing.T) *mines.Game {
				return fixedGame(t, 3, 4, mines.Position{Row: 0, Col: 0}, mines.Position{Row: 2, Col: 3})
			},
			input: "f 1 1\no 0 0\n",
		},
		{
			name: "labels_wrap",
			game: func(t *testing.T) *mines.Game {
				g, err := mines.NewGame(mines.FieldInfo{Height: 11, Width: 12})
				require.NoError(t, err)
				return g
			},
			input: "o 0 0\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			s := newTestSession(t, &out, nil, tt.game(t))

			require.NoError(t, s.Run(context.Background(), strings.NewReader(tt.input)))

			g := goldie.New(t,
				goldie.WithFixtureDir("testdata"),
				goldie.WithNameSuffix(".golden"),
			)
			g.Assert(t, tt.name, out.Bytes())
		})
	}
}

func TestSessionJournal(t *testing.T) {
	var out, moves bytes.Buffer
	s := newTestSession(t, &out, journal.New(&moves), fixedGame(t, 3, 3, mines.Position{Row: 0, Col: 0}))

	require.NoError(t, s.Run(context.Background(), strings.NewReader("f 0 0\no 2 2\no 1 1\nq\n")))

	lines := strings.Split(strings.TrimSpace(moves.String()), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], `"msg":"start"`)
	assert.Contains(t, lines[1], `"action":"f"`)
	assert.Contains(t, lines[2], `"outcome":"won"`)
	assert.Contains(t, lines[3], `"msg":"end"`)
	assert.Contains(t, lines[4], `"msg":"rejected"`)
	for _, line := range lines {
		assert.Contains(t, line, s.match.String())
	}
}

func TestSessionExecuteErrors(t *testing.T) {
	tests := []struct {
		line    string
		wantErr error
	}{
		{"x", ErrUnknownCommand},
		{"o 1", ErrNargs},
		{"q now", ErrNargs},
		{"o 9 9", mines.ErrInvalidPosition},
		{"n height=2 width=2 mines=4", mines.ErrInvalidConfiguration},
		{"l nightmare", mines.ErrInvalidConfiguration},
		{"o a 1", nil},
		{"n height=2", nil},
		{"n height", nil},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			s := newTestSession(t, io.Discard, nil, fixedGame(t, 3, 3, mines.Position{Row: 0, Col: 0}))
			before := s.Game()

			quit, err := s.Execute(tt.line)
			require.Error(t, err)
			assert.False(t, quit)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Same(t, before, s.Game())
		})
	}
}

func TestSessionNewGames(t *testing.T) {
	var out bytes.Buffer
	info := mines.Beginner.FieldInfo()
	s, err := NewSession(&out, slog.New(slog.NewTextHandler(io.Discard, nil)), journal.Discard(), info, 7)
	require.NoError(t, err)
	assert.Equal(t, info, s.Game().FieldInfo())
	first := s.match

	_, err = s.Execute("n height=4 width=5 mines=2")
	require.NoError(t, err)
	assert.Equal(t, mines.FieldInfo{Height: 4, Width: 5, MineCount: 2}, s.Game().FieldInfo())
	assert.Equal(t, mines.NotStarted, s.Game().State())
	assert.NotEqual(t, first, s.match)

	_, err = s.Execute("l expert")
	require.NoError(t, err)
	assert.Equal(t, mines.Expert.FieldInfo(), s.Game().FieldInfo())

	_, err = s.Execute("o 0 0")
	require.NoError(t, err)
	assert.NotEqual(t, mines.NotStarted, s.Game().State())

	_, err = s.Execute("r")
	require.NoError(t, err)
	assert.Equal(t, mines.NotStarted, s.Game().State())
	assert.Zero(t, s.Game().Revealed())

	_, err = s.Execute("n")
	require.NoError(t, err)
	assert.Equal(t, mines.Expert.FieldInfo(), s.Game().FieldInfo())

	out.Reset()
	_, err = s.Execute("h")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "open around a satisfied number")

	quit, err := s.Execute("q")
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestSessionRunStopsOnCancel(t *testing.T) {
	var moves bytes.Buffer
	s := newTestSession(t, io.Discard, journal.New(&moves), fixedGame(t, 3, 3, mines.Position{Row: 0, Col: 0}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, w := io.Pipe()
	defer w.Close()
	assert.NoError(t, s.Run(ctx, r))

	lines := strings.Split(strings.TrimSpace(moves.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"msg":"start"`)
	assert.Contains(t, lines[1], `"msg":"end"`)
	assert.Contains(t, lines[1], `"state":"in progress"`)
}

func TestSessionJournalsMatchSeed(t *testing.T) {
	var moves bytes.Buffer
	info := mines.Beginner.FieldInfo()
	s, err := NewSession(io.Discard, slog.New(slog.NewTextHandler(io.Discard, nil)), journal.New(&moves), info, 11)
	require.NoError(t, err)

	_, err = s.Execute("o 4 4")
	require.NoError(t, err)

	var start struct {
		Seed uint64 `json:"seed"`
	}
	first, _, _ := strings.Cut(moves.String(), "\n")
	require.NoError(t, json.Unmarshal([]byte(first), &start))
	require.NotZero(t, start.Seed)

	replay, err := mines.NewGame(info, mines.WithSeed(start.Seed))
	require.NoError(t, err)
	_, err = replay.Reveal(mines.Position{Row: 4, Col: 4})
	require.NoError(t, err)

	assert.Equal(t, s.Game().State(), replay.State())
	assert.Equal(t, s.Game().Snapshot(), replay.Snapshot())
}

func TestParseNewGameDTO(t *testing.T) {
	dto, err := ParseNewGameDTO([]string{"height=5", "width=6", "mines=7", "color=red"})
	require.NoError(t, err)
	assert.Equal(t, NewGameDTO{Height: 5, Width: 6, MineCount: 7}, dto)

	_, err = ParseNewGameDTO([]string{"height=5", "width=6"})
	assert.Error(t, err)

	_, err = ParseNewGameDTO([]string{"height=tall", "width=6", "mines=7"})
	assert.Error(t, err)
}
