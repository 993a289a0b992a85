package mines

import (
	"fmt"
	"strings"
)

type CellStatus int8

const (
	Hidden CellStatus = iota
	Revealed
	Flagged
	FlagIncorrect
	FlagCorrect
	Exploded
)

var statusNames = [...]string{
	Hidden:        "hidden",
	Revealed:      "revealed",
	Flagged:       "flagged",
	FlagIncorrect: "flag_incorrect",
	FlagCorrect:   "flag_correct",
	Exploded:      "exploded",
}

func (s CellStatus) Valid() bool {
	return Hidden <= s && s <= Exploded
}

func (s CellStatus) String() string {
	if !s.Valid() {
		return fmt.Sprintf("CellStatus(%d)", int8(s))
	}
	return statusNames[s]
}

// [CellStatus] implements [encoding.TextMarshaler]
func (s CellStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: status %d", ErrOutOfRange, int8(s))
	}
	return []byte(statusNames[s]), nil
}

func (s *CellStatus) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for i, n := range statusNames {
		if n == name {
			*s = CellStatus(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown status %q", ErrOutOfRange, text)
}

// Mine is the mine count value stored in a cell that holds a mine.
const Mine = -1

const maxNeighbours = 8

// Cell is a single grid position: its mine count (or [Mine]) and what the
// player currently sees there. The zero value is an empty hidden cell.
type Cell struct {
	mineCount int8
	status    CellStatus
}

func NewCell(mineCount int, status CellStatus) (Cell, error) {
	var c Cell
	if err := c.SetMineCount(mineCount); err != nil {
		return Cell{}, err
	}
	if err := c.SetStatus(status); err != nil {
		return Cell{}, err
	}
	return c, nil
}

func (c Cell) MineCount() int {
	return int(c.mineCount)
}

func (c Cell) Status() CellStatus {
	return c.status
}

func (c Cell) IsMine() bool {
	return c.mineCount == Mine
}

func (c *Cell) SetMineCount(v int) error {
	if v < Mine || v > maxNeighbours {
		return fmt.Errorf("%w: mine count %d not in [-1, 8]", ErrOutOfRange, v)
	}
	c.mineCount = int8(v)
	return nil
}

func (c *Cell) SetStatus(s CellStatus) error {
	if !s.Valid() {
		return fmt.Errorf("%w: status %d not in [0, 5]", ErrOutOfRange, int8(s))
	}
	c.status = s
	return nil
}

// mustSetMineCount and mustSetStatus are used by the board, where an out of
// range value can only come from a bug in the engine itself.
func (c *Cell) mustSetMineCount(v int) {
	if err := c.SetMineCount(v); err != nil {
		panic(AssertionError{err.Error()})
	}
}

func (c *Cell) mustSetStatus(s CellStatus) {
	if err := c.SetStatus(s); err != nil {
		panic(AssertionError{err.Error()})
	}
}

func (c Cell) Equal(o Cell) bool {
	return c == o
}

// Compare orders cells by mine count only, so it can be passed to
// [slices.SortFunc].
func (c Cell) Compare(o Cell) int {
	switch {
	case c.mineCount < o.mineCount:
		return -1
	case c.mineCount > o.mineCount:
		return 1
	default:
		return 0
	}
}

func (c Cell) String() string {
	return fmt.Sprintf("Cell{value=%d, status=%s}", c.mineCount, c.status)
}
