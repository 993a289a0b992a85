package mines

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCell(t *testing.T) {
	tests := []struct {
		name      string
		mineCount int
		status    CellStatus
		wantErr   bool
	}{
		{"mine", Mine, Hidden, false},
		{"empty", 0, Revealed, false},
		{"eight", 8, Exploded, false},
		{"below mine", -2, Hidden, true},
		{"nine", 9, Hidden, true},
		{"negative status", 0, CellStatus(-1), true},
		{"status past exploded", 0, Exploded + 1, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, err := NewCell(test.mineCount, test.status)
			if test.wantErr {
				require.ErrorIs(t, err, ErrOutOfRange)
				assert.Equal(t, Cell{}, c)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.mineCount, c.MineCount())
			assert.Equal(t, test.status, c.Status())
			assert.Equal(t, test.mineCount == Mine, c.IsMine())
		})
	}
}

func TestCellSettersKeepValueOnError(t *testing.T) {
	c, err := NewCell(3, Flagged)
	require.NoError(t, err)

	assert.ErrorIs(t, c.SetMineCount(42), ErrOutOfRange)
	assert.ErrorIs(t, c.SetStatus(CellStatus(6)), ErrOutOfRange)
	assert.Equal(t, 3, c.MineCount())
	assert.Equal(t, Flagged, c.Status())
}

func TestCellMustSetPanics(t *testing.T) {
	var c Cell
	assert.PanicsWithValue(t,
		AssertionError{"cell value out of range: mine count 10 not in [-1, 8]"},
		func() { c.mustSetMineCount(10) },
	)
}

func TestCellEqualAndCompare(t *testing.T) {
	a, _ := NewCell(2, Hidden)
	b, _ := NewCell(2, Revealed)
	c, _ := NewCell(2, Hidden)

	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(c))
	assert.Equal(t, 0, a.Compare(b))

	cells := []Cell{}
	for _, n := range []int{5, Mine, 0, 8, 1} {
		cell, err := NewCell(n, Hidden)
		require.NoError(t, err)
		cells = append(cells, cell)
	}
	slices.SortFunc(cells, Cell.Compare)

	var got []int
	for _, cell := range cells {
		got = append(got, cell.MineCount())
	}
	assert.Equal(t, []int{Mine, 0, 1, 5, 8}, got)
}

func TestCellString(t *testing.T) {
	c, _ := NewCell(Mine, Exploded)
	assert.Equal(t, "Cell{value=-1, status=exploded}", c.String())
}

func TestCellStatusText(t *testing.T) {
	for s := Hidden; s <= Exploded; s++ {
		text, err := s.MarshalText()
		require.NoError(t, err)

		var got CellStatus
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, s, got)
	}

	_, err := CellStatus(9).MarshalText()
	assert.ErrorIs(t, err, ErrOutOfRange)

	var s CellStatus
	assert.ErrorIs(t, s.UnmarshalText([]byte("boom")), ErrOutOfRange)
	assert.Equal(t, "CellStatus(9)", CellStatus(9).String())
}
