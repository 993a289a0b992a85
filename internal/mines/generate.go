package mines

import "github.com/sirupsen/logrus"

// generate places the mines, never on safe, then counts neighbours. It runs
// once, on the first move.
func (b *Board) generate(safe int) {
	if b.started {
		panic(AssertionError{"board generated twice"})
	}

	for placed := 0; placed < b.mines; {
		i := b.index(b.rnd.IntN(b.width)+1, b.rnd.IntN(b.height)+1)
		if i == safe || b.cells[i].IsMine() {
			continue
		}
		b.cells[i].mustSetMineCount(Mine)
		placed++
	}

	b.count()
	b.started = true

	Log.WithFields(logrus.Fields{
		"width":  b.width,
		"height": b.height,
		"mines":  b.mines,
		"safeX":  safe%b.stride - 1,
		"safeY":  safe/b.stride - 1,
	}).Debug("board generated")
}

// count stores in every safe interior cell the number of mines among its 8
// neighbours. Border cells hold no mines, so edges need no special care.
func (b *Board) count() {
	for y := 1; y <= b.height; y++ {
		for x := 1; x <= b.width; x++ {
			i := b.index(x, y)
			if b.cells[i].IsMine() {
				continue
			}
			n := 0
			for _, d := range b.neighbours {
				if b.cells[i+d].IsMine() {
					n++
				}
			}
			b.cells[i].mustSetMineCount(n)
		}
	}
}
