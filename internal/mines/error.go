package mines

import "errors"

var (
	ErrInvalidConfiguration = errors.New("invalid board configuration")
	ErrOutOfBounds          = errors.New("cell position out of bounds")
	ErrOutOfRange           = errors.New("cell value out of range")
	ErrGameAlreadyEnded     = errors.New("game already ended")
)

// AssertionError is raised with panic when the engine breaks one of its own
// invariants. It never escapes a correctly working board.
type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}
