package binding

import (
	"errors"

	"github.com/vancomm/minesweeper/internal/mines"
)

// Status is the numeric result handed across the C boundary. Values are
// part of the ABI; append only.
type Status int32

const (
	StatusOK Status = iota
	StatusUnknownHandle
	StatusInvalidConfiguration
	StatusInvalidPosition
	StatusCellAlreadyRevealed
	StatusCellFlagged
	StatusCellAlreadyFlaggedOrRevealed
	StatusGameOver
	StatusNotStarted
	StatusBufferTooSmall
	StatusInternal
)

var ErrBufferTooSmall = errors.New("buffer too small")

var statuses = []struct {
	err    error
	status Status
}{
	{ErrUnknownHandle, StatusUnknownHandle},
	{mines.ErrInvalidConfiguration, StatusInvalidConfiguration},
	{mines.ErrInvalidPosition, StatusInvalidPosition},
	{mines.ErrCellAlreadyRevealed, StatusCellAlreadyRevealed},
	{mines.ErrCellFlagged, StatusCellFlagged},
	{mines.ErrCellAlreadyFlaggedOrRevealed, StatusCellAlreadyFlaggedOrRevealed},
	{mines.ErrGameOver, StatusGameOver},
	{mines.ErrNotStarted, StatusNotStarted},
	{ErrBufferTooSmall, StatusBufferTooSmall},
}

func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	for _, s := range statuses {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return StatusInternal
}

// OutcomeCode flattens an outcome for callers that only see integers.
// Zero is left for "nothing happened".
func OutcomeCode(o mines.Outcome) int32 {
	return int32(o) + 1
}

func StateCode(s mines.State) int32 {
	return int32(s)
}
