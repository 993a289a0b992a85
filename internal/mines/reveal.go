package mines

// celltodo is a FIFO of cell indices threaded through next, so each cell can
// be queued at most once without extra allocation per push.
type celltodo struct {
	next       []int
	head, tail int
}

func newCelltodo(size int) *celltodo {
	return &celltodo{next: make([]int, size), head: -1, tail: -1}
}

func (std *celltodo) add(i int) {
	if std.tail >= 0 {
		std.next[std.tail] = i
	} else {
		std.head = i
	}
	std.tail = i
	std.next[i] = -1
}

func (std *celltodo) pop() (i int, ok bool) {
	if std.head < 0 {
		return -1, false
	}
	i = std.head
	std.head = std.next[i]
	if std.head < 0 {
		std.tail = -1
	}
	return i, true
}

// open turns a hidden cell into a revealed one. It reports whether the cell
// changed.
func (b *Board) open(i int) bool {
	c := &b.cells[i]
	if c.status != Hidden {
		return false
	}
	c.mustSetStatus(Revealed)
	b.cellsRemaining--
	return true
}

// reveal opens the cell at i and, if it has no neighbouring mines, the
// whole connected zero region around it together with its numbered rim.
// Cells are revealed at most once: only hidden cells are ever queued and
// they are opened before being queued.
func (b *Board) reveal(i int) {
	if b.cells[i].IsMine() {
		panic(AssertionError{"flood reveal started on a mine"})
	}
	b.open(i)
	if b.cells[i].mineCount != 0 {
		return
	}

	todo := newCelltodo(len(b.cells))
	todo.add(i)
	for {
		j, ok := todo.pop()
		if !ok {
			break
		}
		for _, d := range b.neighbours {
			k := j + d
			if !b.interior(k) || b.cells[k].IsMine() {
				continue
			}
			if b.open(k) && b.cells[k].mineCount == 0 {
				todo.add(k)
			}
		}
	}
}
