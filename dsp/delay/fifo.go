package delay

import "fmt"

const minGrowth = 16

// FIFO is the sample history of one delay channel. Samples enter at the
// tail and leave from the head; nothing in between is ever addressed.
//
// The backing store is a ring. Reserve sizes it ahead of time so that the
// audio path never allocates while the history stays within the reservation.
type FIFO struct {
	buf  []float32
	head int
	n    int
}

// NewFIFO returns an empty FIFO with room for capacity samples.
func NewFIFO(capacity int) (*FIFO, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("fifo capacity must be >= 0: %d", capacity)
	}
	return &FIFO{buf: make([]float32, capacity)}, nil
}

// Len returns the number of buffered samples.
func (f *FIFO) Len() int {
	return f.n
}

// Cap returns the number of samples the FIFO holds without growing.
func (f *FIFO) Cap() int {
	return len(f.buf)
}

// Push appends x at the tail.
func (f *FIFO) Push(x float32) {
	if f.n == len(f.buf) {
		f.resize(growCap(len(f.buf), f.n+1))
	}
	f.buf[f.wrap(f.head+f.n)] = x
	f.n++
}

// Front returns the oldest sample. It panics on an empty FIFO.
func (f *FIFO) Front() float32 {
	if f.n == 0 {
		panic("delay: Front on empty FIFO")
	}
	return f.buf[f.head]
}

// PopFront removes and returns the oldest sample. It panics on an empty
// FIFO; callers push before they pop.
func (f *FIFO) PopFront() float32 {
	if f.n == 0 {
		panic("delay: PopFront on empty FIFO")
	}
	x := f.buf[f.head]
	f.head = f.wrap(f.head + 1)
	f.n--
	return x
}

// TrimToAtMost drops samples from the head until Len()-1 <= n and returns
// how many were dropped. The tail is never touched.
func (f *FIFO) TrimToAtMost(n int) int {
	drop := f.n - 1 - n
	if drop <= 0 {
		return 0
	}
	if drop > f.n {
		drop = f.n
	}
	f.head = f.wrap(f.head + drop)
	f.n -= drop
	return drop
}

// Reserve grows the ring so it holds at least capacity samples.
func (f *FIFO) Reserve(capacity int) {
	if capacity > len(f.buf) {
		f.resize(capacity)
	}
}

// Reset empties the FIFO and keeps its storage.
func (f *FIFO) Reset() {
	f.head = 0
	f.n = 0
}

// AppendTo appends the buffered samples, oldest first, to dst.
func (f *FIFO) AppendTo(dst []float32) []float32 {
	for i := 0; i < f.n; i++ {
		dst = append(dst, f.buf[f.wrap(f.head+i)])
	}
	return dst
}

func (f *FIFO) wrap(i int) int {
	if i >= len(f.buf) {
		i -= len(f.buf)
	}
	return i
}

func (f *FIFO) resize(capacity int) {
	grown := make([]float32, capacity)
	f.AppendTo(grown[:0])
	f.buf = grown
	f.head = 0
}

func growCap(current, need int) int {
	next := current * 2
	if next < minGrowth {
		next = minGrowth
	}
	if next < need {
		next = need
	}
	return next
}
