// Package symbol implements the symbol-to-frame layer of §4.2: the symbol
// history ring, the cross-protocol sync-pattern correlator registry, CQPSK
// constellation-permutation recovery, and warm-start slicer threshold
// calibration.
//
// Grounded on the teacher's pkg/ysf FICH/sync-pattern matching style
// (defines.go's fixed sync bytes, fich.go's field extraction), generalized
// from YSF's single protocol sync table into the cross-protocol registry
// this layer requires.
package symbol

import "github.com/dbehnke/trunkcore/pkg/ringbuf"

// Symbol is a single discriminator output paired with an 8-bit reliability,
// per §3's data model ("a real value after discrimination ... paired with
// an 8-bit reliability").
type Symbol struct {
	Value       float64
	Reliability byte
}

// History is the single-producer/single-consumer symbol ring used by both
// sync correlators and "resample on sync" re-digitisation.
type History struct {
	ring *ringbuf.Ring[Symbol]
}

// NewHistory builds a symbol history ring of at least the given capacity
// (rounded up to a power of two, per §3's invariant), defaulting to 128 if
// capacity is below the documented minimum.
func NewHistory(capacity int) *History {
	if capacity < 128 {
		capacity = 128
	}
	return &History{ring: ringbuf.NewRing[Symbol](capacity)}
}

// Push appends a symbol, dropping the oldest one when the ring is full. It
// keeps no rolling envelope statistics.
func (h *History) Push(value float64, reliability byte) {
	h.ring.Push(Symbol{Value: value, Reliability: reliability})
}

// Len returns the number of symbols currently held.
func (h *History) Len() int {
	return h.ring.Len()
}

// GetBack returns the n-th most recent symbol (0 = most recent), per §3's
// "get_back(0) is most recent" invariant.
func (h *History) GetBack(n int) (Symbol, bool) {
	return h.ring.GetBack(n)
}

// Window returns the most recent n symbols in chronological order (oldest
// first), used by correlators scanning the last 8-24 entries.
func (h *History) Window(n int) []Symbol {
	if n > h.Len() {
		n = h.Len()
	}
	out := make([]Symbol, n)
	for i := 0; i < n; i++ {
		sym, _ := h.GetBack(n - 1 - i)
		out[i] = sym
	}
	return out
}

// Reset empties the ring without resizing it.
func (h *History) Reset() {
	h.ring.Reset()
}
