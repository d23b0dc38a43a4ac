package mines

import (
	"fmt"
	"math"
	"strings"
)

// FieldInfo describes the board a game is played on. Build it with
// [NewFieldInfo] or take one from a [Level].
type FieldInfo struct {
	Height, Width, MineCount int
}

func NewFieldInfo(height, width, mineCount int) (FieldInfo, error) {
	f := FieldInfo{Height: height, Width: width, MineCount: mineCount}
	if err := f.Validate(); err != nil {
		return FieldInfo{}, err
	}
	return f, nil
}

// Validate reports ErrInvalidConfiguration unless the board has at least one
// cell and at least one cell is left free of mines.
func (f FieldInfo) Validate() error {
	if f.Height <= 0 || f.Width <= 0 {
		return fmt.Errorf("%w: %dx%d board", ErrInvalidConfiguration, f.Height, f.Width)
	}
	if f.Height > math.MaxInt32/f.Width {
		return fmt.Errorf("%w: %dx%d board is too large", ErrInvalidConfiguration, f.Height, f.Width)
	}
	if f.MineCount < 0 || f.MineCount >= f.Height*f.Width {
		return fmt.Errorf(
			"%w: %d mines on %d cells", ErrInvalidConfiguration, f.MineCount, f.Height*f.Width,
		)
	}
	return nil
}

func (f FieldInfo) Unpack() (h int, w int, mc int) {
	return f.Height, f.Width, f.MineCount
}

func (f FieldInfo) Cells() int {
	return f.Height * f.Width
}

func (f FieldInfo) Contains(p Position) bool {
	return 0 <= p.Row && p.Row < f.Height && 0 <= p.Col && p.Col < f.Width
}

// Key encodes the field as "height:width:mines", the format [ParseKey] reads.
func (f FieldInfo) Key() string {
	return fmt.Sprintf("%d:%d:%d", f.Height, f.Width, f.MineCount)
}

func (f FieldInfo) String() string {
	return fmt.Sprintf("%dx%d(%d)", f.Height, f.Width, f.MineCount)
}

func ParseKey(key string) (FieldInfo, error) {
	var h, w, mc int
	skey := strings.ReplaceAll(key, ":", " ")
	n, err := fmt.Sscanf(skey, "%d %d %d", &h, &w, &mc)
	if n != 3 || err != nil {
		return FieldInfo{}, fmt.Errorf(
			`%w: malformed field key "%s" (n = %d, err = %v)`,
			ErrInvalidConfiguration, key, n, err,
		)
	}
	return NewFieldInfo(h, w, mc)
}

type Level int

const (
	Beginner Level = iota
	Intermediate
	Expert
)

var levelFields = [...]FieldInfo{
	Beginner:     {Height: 10, Width: 10, MineCount: 10},
	Intermediate: {Height: 16, Width: 16, MineCount: 25},
	Expert:       {Height: 16, Width: 30, MineCount: 99},
}

var levelNames = [...]string{
	Beginner:     "beginner",
	Intermediate: "intermediate",
	Expert:       "expert",
}

func Levels() []Level {
	return []Level{Beginner, Intermediate, Expert}
}

func (l Level) Valid() bool {
	return Beginner <= l && l <= Expert
}

func (l Level) FieldInfo() FieldInfo {
	if !l.Valid() {
		return levelFields[Beginner]
	}
	return levelFields[l]
}

func (l Level) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, l := range Levels() {
		if levelNames[l] == name {
			return l, nil
		}
	}
	return Beginner, fmt.Errorf("%w: unknown level %q", ErrInvalidConfiguration, s)
}
