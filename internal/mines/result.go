package mines

import "fmt"

type Outcome int

const (
	OutcomeRevealed Outcome = iota
	OutcomeFlagged
	OutcomeUnflagged
	OutcomeWon
	OutcomeLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRevealed:
		return "revealed"
	case OutcomeFlagged:
		return "flagged"
	case OutcomeUnflagged:
		return "unflagged"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

type RevealedCell struct {
	Position
	Adjacent int
	Mine     bool
}

// Result reports what a successful move did. Cells lists the cells that
// changed to revealed, in the order the reveal reached them. Mines is filled
// once the game ends.
type Result struct {
	Outcome Outcome
	Cells   []RevealedCell
	Mines   []Position
}

func (r Result) Over() bool {
	return r.Outcome == OutcomeWon || r.Outcome == OutcomeLost
}
