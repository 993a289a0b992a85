// Package mines is a minesweeper engine. A [Board] owns the whole game: mine
// placement deferred to the first move, neighbour counting, flood reveal,
// flag bookkeeping and the end of game sweep. Renderers only read it.
package mines

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Point struct {
	X, Y int
}

// Board is not safe for concurrent use; callers serialize calls to Play.
type Board struct {
	width, height, mines int

	// cells is a (width+2)x(height+2) row-major grid. The outer ring is a
	// sentinel border that never holds a mine and is never shown, so
	// neighbour scans need no bounds checks.
	stride     int
	cells      []Cell
	neighbours [8]int

	usedFlags      int
	cellsRemaining int
	started, ended bool

	rnd *rand.Rand
}

// New creates an unstarted board. Mines are placed on the first call to
// [Board.Play], never on the cell being played. A nil r gets a freshly
// seeded source.
func New(width, height, mineCount int, r *rand.Rand) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf(
			"%w: dimensions must be positive (width = %d, height = %d)",
			ErrInvalidConfiguration, width, height,
		)
	}
	if mineCount < 0 || mineCount >= width*height {
		return nil, fmt.Errorf(
			"%w: mine count must be in [0, %d) (mine count = %d)",
			ErrInvalidConfiguration, width*height, mineCount,
		)
	}
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	stride := width + 2
	b := &Board{
		width:          width,
		height:         height,
		mines:          mineCount,
		stride:         stride,
		cells:          make([]Cell, stride*(height+2)),
		neighbours:     [8]int{-stride - 1, -stride, -stride + 1, -1, 1, stride - 1, stride, stride + 1},
		cellsRemaining: width*height - mineCount,
		rnd:            r,
	}
	return b, nil
}

// index maps bordered grid coordinates to a cell index.
func (b *Board) index(x, y int) int {
	return y*b.stride + x
}

func (b *Board) interior(i int) bool {
	x, y := i%b.stride, i/b.stride
	return 1 <= x && x <= b.width && 1 <= y && y <= b.height
}

func (b *Board) InBounds(x, y int) bool {
	return 0 <= x && x < b.width && 0 <= y && y < b.height
}

func (b *Board) checkBounds(x, y int) error {
	if !b.InBounds(x, y) {
		return fmt.Errorf(
			"%w: (%d, %d) on a %dx%d board",
			ErrOutOfBounds, x, y, b.width, b.height,
		)
	}
	return nil
}

// Play reveals the cell at x, y or, when flag is set, toggles a flag on it.
// The first call places the mines around x, y.
func (b *Board) Play(x, y int, flag bool) error {
	if b.ended {
		return ErrGameAlreadyEnded
	}
	if err := b.checkBounds(x, y); err != nil {
		return err
	}

	i := b.index(x+1, y+1)
	if !b.started {
		b.generate(i)
	}

	if flag {
		b.toggleFlag(i)
		return nil
	}

	c := &b.cells[i]
	switch {
	case c.status == Flagged:
		return nil
	case c.IsMine():
		c.mustSetStatus(Exploded)
		Log.WithFields(logrus.Fields{"x": x, "y": y}).Debug("mine exploded")
		b.end()
	default:
		b.reveal(i)
		if b.cellsRemaining == 0 {
			b.end()
		}
	}
	return nil
}

func (b *Board) toggleFlag(i int) {
	c := &b.cells[i]
	switch c.status {
	case Flagged:
		c.mustSetStatus(Hidden)
		b.usedFlags--
	case Hidden:
		c.mustSetStatus(Flagged)
		b.usedFlags++
	}
}

func (b *Board) end() {
	b.ended = true
	b.finalize()
	Log.WithFields(logrus.Fields{
		"won":       b.Won(),
		"flagsUsed": b.usedFlags,
	}).Debug("game ended")
}

// finalize uncovers the whole grid for the end of game display, keeping the
// exploded cell and telling right flags from wrong ones.
func (b *Board) finalize() {
	for i := range b.cells {
		c := &b.cells[i]
		switch {
		case c.status == Flagged && c.IsMine():
			c.mustSetStatus(FlagCorrect)
		case c.status == Flagged:
			c.mustSetStatus(FlagIncorrect)
		case c.status != Exploded:
			c.mustSetStatus(Revealed)
		}
	}
}

func (b *Board) CellAt(x, y int) (Cell, error) {
	if err := b.checkBounds(x, y); err != nil {
		return Cell{}, err
	}
	return b.cells[b.index(x+1, y+1)], nil
}

// MineCountAt returns the number of mines around x, y, or [Mine]. Before the
// first move every cell reads 0.
func (b *Board) MineCountAt(x, y int) (int, error) {
	c, err := b.CellAt(x, y)
	if err != nil {
		return 0, err
	}
	return c.MineCount(), nil
}

func (b *Board) StatusAt(x, y int) (CellStatus, error) {
	c, err := b.CellAt(x, y)
	if err != nil {
		return Hidden, err
	}
	return c.Status(), nil
}

func (b *Board) Width() int          { return b.width }
func (b *Board) Height() int         { return b.height }
func (b *Board) MinesTotal() int     { return b.mines }
func (b *Board) FlagsUsed() int      { return b.usedFlags }
func (b *Board) CellsRemaining() int { return b.cellsRemaining }
func (b *Board) Started() bool       { return b.started }
func (b *Board) Ended() bool         { return b.ended }

// Won reports whether the game ended with every safe cell revealed.
func (b *Board) Won() bool {
	return b.ended && b.cellsRemaining == 0
}

func (b *Board) Lost() bool {
	return b.ended && b.cellsRemaining != 0
}

// All yields the playable cells in row-major order.
func (b *Board) All() iter.Seq2[Point, Cell] {
	return func(yield func(Point, Cell) bool) {
		for y := range b.height {
			for x := range b.width {
				if !yield(Point{x, y}, b.cells[b.index(x+1, y+1)]) {
					return
				}
			}
		}
	}
}

func (c Cell) symbol() string {
	switch c.status {
	case Hidden:
		return "-"
	case Flagged, FlagCorrect:
		return "F"
	case FlagIncorrect:
		return "X"
	case Exploded:
		return "!"
	}
	switch {
	case c.IsMine():
		return "*"
	case c.mineCount == 0:
		return "."
	default:
		return strconv.Itoa(int(c.mineCount))
	}
}

// String draws the board the way the player sees it, one row per line.
func (b *Board) String() string {
	var sb strings.Builder
	for p, c := range b.All() {
		sb.WriteString(c.symbol())
		if p.X == b.width-1 {
			sb.WriteByte('\n')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
