package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mineTotal(b *Board) (n int) {
	for _, c := range b.All() {
		if c.IsMine() {
			n++
		}
	}
	return
}

func TestFirstMoveIsSafe(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	tests := []struct {
		name                     string
		width, height, mineCount int
	}{
		{"3x3(8)", 3, 3, 8},
		{"9x9(10)", 9, 9, 10},
		{"9x9(80)", 9, 9, 80},
		{"16x16(99)", 16, 16, 99},
		{"1x2(1)", 1, 2, 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			for sx := range test.width {
				for sy := range test.height {
					b, err := New(test.width, test.height, test.mineCount, r)
					require.NoError(t, err)

					require.NoError(t, b.Play(sx, sy, false))

					n, err := b.MineCountAt(sx, sy)
					require.NoError(t, err)
					require.NotEqual(t, Mine, n, "%s @ %d:%d", test.name, sx, sy)
					require.Equal(t, test.mineCount, mineTotal(b))
					s, _ := b.StatusAt(sx, sy)
					require.Equal(t, Revealed, s)
				}
			}
		})
	}
}

func TestSameSafeCellManyTimes(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for range 500 {
		b, err := New(4, 4, 15, r)
		require.NoError(t, err)
		require.NoError(t, b.Play(2, 1, false))

		n, _ := b.MineCountAt(2, 1)
		require.NotEqual(t, Mine, n)
		require.True(t, b.Won(), "the only safe cell was opened")
	}
}

func TestCountFixedLayout(t *testing.T) {
	b := fixedBoard(t, 4, 3, Point{0, 0}, Point{2, 1}, Point{3, 2})

	want := [][]int{
		{Mine, 2, 1, 1},
		{1, 2, Mine, 2},
		{0, 1, 2, Mine},
	}
	for y, row := range want {
		for x, n := range row {
			got, err := b.MineCountAt(x, y)
			require.NoError(t, err)
			assert.Equal(t, n, got, "%d:%d", x, y)
		}
	}
}

func TestCountMatchesNeighbours(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	b, err := New(30, 16, 99, r)
	require.NoError(t, err)
	require.NoError(t, b.Play(0, 0, false))

	isMine := func(x, y int) bool {
		c, err := b.CellAt(x, y)
		return err == nil && c.IsMine()
	}
	for p, c := range b.All() {
		if c.IsMine() {
			continue
		}
		n := 0
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				if (dx != 0 || dy != 0) && isMine(p.X+dx, p.Y+dy) {
					n++
				}
			}
		}
		assert.Equal(t, n, c.MineCount(), "%v", p)
	}
}

func TestBorderStaysEmpty(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 8))
	b, err := New(5, 4, 19, r)
	require.NoError(t, err)
	require.NoError(t, b.Play(4, 3, false))

	for i, c := range b.cells {
		if !b.interior(i) {
			assert.False(t, c.IsMine(), "border cell %d", i)
		}
	}
}

func TestGenerateTwicePanics(t *testing.T) {
	b := fixedBoard(t, 2, 2)
	assert.Panics(t, func() { b.generate(b.index(1, 1)) })
}
