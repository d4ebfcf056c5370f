package dsp

import "math/cmplx"

// EqStrength selects the CMA tap-weight profile.
type EqStrength int

const (
	EqLight EqStrength = iota
	EqMedium
	EqStrong
)

// CMAEqualizer is a blind constant-modulus smoother: a 3- or 5-tap
// symmetric FIR for FM/FSK modes (CQPSK uses the longer adaptive
// CQPSKEqualizer instead). Strength selects the tap count/weights.
type CMAEqualizer struct {
	taps    []float64
	history []complex128
}

// NewCMAEqualizer builds the smoother for the given strength.
func NewCMAEqualizer(strength EqStrength) CMAEqualizer {
	var taps []float64
	switch strength {
	case EqStrong:
		taps = []float64{0.1, 0.2, 0.4, 0.2, 0.1}
	case EqMedium:
		taps = []float64{0.15, 0.2, 0.3, 0.2, 0.15}
	default: // EqLight
		taps = []float64{0.25, 0.5, 0.25}
	}
	return CMAEqualizer{taps: taps, history: make([]complex128, len(taps))}
}

// Process runs one sample through the symmetric FIR smoother.
func (c *CMAEqualizer) Process(s complex128) complex128 {
	copy(c.history[1:], c.history[:len(c.history)-1])
	c.history[0] = s
	var acc complex128
	for i, w := range c.taps {
		acc += complex(w, 0) * c.history[i]
	}
	return acc
}

// Reset clears filter history. Part of ResetCarrier (CQPSK warm-up is
// retune-sensitive; FM smoothing history is cheap to rebuild too).
func (c *CMAEqualizer) Reset() {
	for i := range c.history {
		c.history[i] = 0
	}
}

// CQPSKEqualizer is a decision-directed LMS equalizer for CQPSK, with a
// configurable tap count, fixed-point step size, and update stride (only
// every update_stride-th symbol adapts, trading convergence speed for CPU).
type CQPSKEqualizer struct {
	taps         []complex128
	history      []complex128
	mu           float64
	stride       int
	sampleCount  int
	warmupLength int
}

// NewCQPSKEqualizer builds an LMS equalizer with `taps` filter length.
func NewCQPSKEqualizer(taps int, muQ15, updateStride int) CQPSKEqualizer {
	if taps < 3 {
		taps = 3
	}
	if updateStride < 1 {
		updateStride = 1
	}
	w := make([]complex128, taps)
	w[taps/2] = 1 // centre tap starts as identity
	return CQPSKEqualizer{
		taps:         w,
		history:      make([]complex128, taps),
		mu:           float64(muQ15) / 32768.0,
		stride:       updateStride,
		warmupLength: taps * 4,
	}
}

// nearestQPSK slices to the nearest of {1+1i,1-1i,-1+1i,-1-1i} scaled to
// unit magnitude per axis — the decision-directed error reference.
func nearestQPSK(s complex128) complex128 {
	re, im := 1.0, 1.0
	if real(s) < 0 {
		re = -1
	}
	if imag(s) < 0 {
		im = -1
	}
	return complex(re, im)
}

// Process filters one sample and, every stride-th call past warm-up, adapts
// taps against the decision-directed error.
func (e *CQPSKEqualizer) Process(s complex128) complex128 {
	copy(e.history[1:], e.history[:len(e.history)-1])
	e.history[0] = s

	var out complex128
	for i, w := range e.taps {
		out += w * e.history[i]
	}

	e.sampleCount++
	if e.sampleCount > e.warmupLength && e.sampleCount%e.stride == 0 {
		decision := nearestQPSK(out)
		err := decision - out
		for i := range e.taps {
			e.taps[i] += complex(e.mu, 0) * err * cmplxConj(e.history[i])
		}
	}
	return out
}

func cmplxConj(c complex128) complex128 { return cmplx.Conj(c) }

// Reset clears adaptation history and re-seeds taps to the identity filter,
// as required on retune.
func (e *CQPSKEqualizer) Reset() {
	for i := range e.taps {
		e.taps[i] = 0
	}
	if len(e.taps) > 0 {
		e.taps[len(e.taps)/2] = 1
	}
	for i := range e.history {
		e.history[i] = 0
	}
	e.sampleCount = 0
}
