package ringbuffer

import "errors"

// RingBuffer is a fixed-capacity FIFO. Writes never allocate; when the
// buffer is full the oldest element is overwritten and counted as dropped.
type RingBuffer[T any] struct {
	buffer  []T
	begin   int
	end     int
	full    bool
	dropped uint64
}

var (
	errBufferIsEmpty = errors.New("buffer is empty")
)

const (
	defaultBufferSz = 256
)

func New[T any](sz int) *RingBuffer[T] {
	if sz <= 0 {
		sz = defaultBufferSz
	}

	return &RingBuffer[T]{
		buffer: make([]T, sz),
	}
}

func (r *RingBuffer[T]) Write(v T) {
	if r.full {
		// Overwrite the oldest element
		r.begin = r.next(r.begin)
		r.dropped++
	}

	// Set the current element
	r.buffer[r.end] = v

	// Advance the end iterator
	r.end = r.next(r.end)

	// Check if the next element is the begin iterator
	r.full = r.end == r.begin
}

func (r *RingBuffer[T]) Read() (T, error) {
	var v T
	if !r.full && r.end == r.begin {
		return v, errBufferIsEmpty
	}

	v = r.buffer[r.begin]
	r.begin = r.next(r.begin)

	// The buffer would no longer be full
	r.full = false
	return v, nil
}

func (r *RingBuffer[T]) Len() int {
	if r.full {
		return len(r.buffer)
	} else if r.end >= r.begin {
		return r.end - r.begin
	} else {
		return (len(r.buffer) - r.begin) + r.end
	}
}

// Dropped is the number of elements overwritten before they were read.
func (r *RingBuffer[T]) Dropped() uint64 {
	return r.dropped
}

func (r *RingBuffer[T]) Reset() {
	r.begin, r.end, r.full, r.dropped = 0, 0, false, 0
}

func (r *RingBuffer[T]) next(i int) int {
	i++
	if i == len(r.buffer) {
		i = 0
	}
	return i
}
