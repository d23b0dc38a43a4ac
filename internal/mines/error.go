package mines

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfiguration         = errors.New("invalid field configuration")
	ErrInvalidPosition              = errors.New("invalid cell position")
	ErrCellAlreadyRevealed          = errors.New("cell already revealed")
	ErrCellFlagged                  = errors.New("cell is flagged")
	ErrCellAlreadyFlaggedOrRevealed = errors.New("cell already flagged or revealed")
	ErrGameOver                     = errors.New("game is already over")
	ErrNotStarted                   = errors.New("game has not started")
	ErrMinesPlaced                  = errors.New("mines already placed")
)

func positionError(err error, p Position) error {
	return fmt.Errorf("%w: %s", err, p)
}
