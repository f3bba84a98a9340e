package bf

// DefaultTapeSize is the conventional brainfuck tape length.
const DefaultTapeSize = 30000

// Tape is a fixed length array of byte cells with a data pointer.
type Tape struct {
	cells []byte
	ptr   int
	high  int
}

func NewTape(size int) *Tape {
	if size <= 0 {
		size = DefaultTapeSize
	}
	return &Tape{cells: make([]byte, size)}
}

// Move shifts the pointer by delta. A move that would leave the tape
// returns ErrBounds and leaves the pointer where it was.
func (t *Tape) Move(delta int) error {
	next := t.ptr + delta
	if next < 0 || next >= len(t.cells) {
		return ErrBounds
	}
	t.ptr = next
	t.touch()
	return nil
}

// byte arithmetic wraps at 0 and 255
func (t *Tape) Inc() {
	t.cells[t.ptr]++
	t.touch()
}

func (t *Tape) Dec() {
	t.cells[t.ptr]--
	t.touch()
}

func (t *Tape) Read() byte {
	return t.cells[t.ptr]
}

func (t *Tape) Write(v byte) {
	t.cells[t.ptr] = v
	t.touch()
}

func (t *Tape) touch() {
	if t.ptr > t.high {
		t.high = t.ptr
	}
}

func (t *Tape) Pointer() int {
	return t.ptr
}

// HighWater is the furthest cell the pointer has reached.
func (t *Tape) HighWater() int {
	return t.high
}

func (t *Tape) Len() int {
	return len(t.cells)
}

func (t *Tape) Cell(i int) byte {
	return t.cells[i]
}

// Cells returns a copy of the cells up to and including the high-water mark.
func (t *Tape) Cells() []byte {
	out := make([]byte, t.high+1)
	copy(out, t.cells)
	return out
}
