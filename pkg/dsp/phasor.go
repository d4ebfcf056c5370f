package dsp

import "math/cmplx"

// DifferentialPhasor computes y[n] = x[n]*conj(x[n-1]), the differential
// decoding step used ahead of the Costas loop in CQPSK mode.
type DifferentialPhasor struct {
	prev complex128
}

// Process differentially decodes the interpolated symbol against the
// mid-symbol sample (used as x[n-1] for the Gardner-recovered pair).
func (d *DifferentialPhasor) Process(symbol, mid complex128) complex128 {
	y := symbol * cmplx.Conj(mid)
	d.prev = symbol
	return y
}

// Reset clears the held previous sample.
func (d *DifferentialPhasor) Reset() {
	d.prev = 0
}
