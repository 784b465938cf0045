package buffer

import (
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/algo-spectrogram/dsp/core"
)

// Ring is a fixed-capacity circular store of mono float32 samples.
//
// Write is for the single producer goroutine only. Read and WritePosition
// may be called from any goroutine, concurrently with Write.
type Ring struct {
	cursor atomic.Uint64
	_      [56]byte

	storage  []float32
	capacity uint64
}

// NewRing allocates a ring holding capacity samples. No further allocation
// happens after construction.
func NewRing(capacity int) (*Ring, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: ring capacity must be > 0: %d", core.ErrConfiguration, capacity)
	}

	return &Ring{
		storage:  make([]float32, capacity),
		capacity: uint64(capacity),
	}, nil
}

// Capacity returns the number of samples the ring retains.
func (r *Ring) Capacity() int {
	return int(r.capacity)
}

// Write copies samples at the current write position, wrapping as needed,
// then publishes the new cursor. If len(samples) exceeds the capacity only
// the trailing Capacity samples are stored, but the cursor still advances by
// the full count so absolute indices stay consistent with the stream.
func (r *Ring) Write(samples []float32) {
	n := uint64(len(samples))
	if n == 0 {
		return
	}

	w := r.cursor.Load()

	src := samples
	start := w
	if n > r.capacity {
		skip := n - r.capacity
		src = samples[skip:]
		start = w + skip
	}

	r.copyIn(start%r.capacity, src)
	r.cursor.Store(w + n)
}

// Read copies len(dst) samples starting at absolute index offset into dst.
// The cursor is not modified. Reading more than Capacity samples yields
// wrapped, repeated data.
func (r *Ring) Read(offset uint64, dst []float32) {
	if len(dst) == 0 {
		return
	}

	pos := offset % r.capacity
	for done := 0; done < len(dst); {
		n := copy(dst[done:], r.storage[pos:])
		done += n
		pos = 0
	}
}

// WritePosition returns the total number of samples written so far.
// Samples at absolute indices below the returned value are fully written.
func (r *Ring) WritePosition() uint64 {
	return r.cursor.Load()
}

func (r *Ring) copyIn(pos uint64, src []float32) {
	first := r.capacity - pos
	if uint64(len(src)) <= first {
		copy(r.storage[pos:], src)
		return
	}

	copy(r.storage[pos:], src[:first])
	copy(r.storage, src[first:])
}
