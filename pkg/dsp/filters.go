package dsp

import (
	"fmt"
	"math"
)

// MatchedFilter is the fixed 5-tap symmetric CQPSK matched filter that
// preserves DC gain.
type MatchedFilter struct {
	history [5]complex128
}

var matchedFilterTaps = [5]float64{0.05, 0.2, 0.5, 0.2, 0.05}

// NewMatchedFilter builds the fixed-tap filter.
func NewMatchedFilter() MatchedFilter { return MatchedFilter{} }

// Process runs one sample through the symmetric filter.
func (m *MatchedFilter) Process(s complex128) complex128 {
	copy(m.history[1:], m.history[:len(m.history)-1])
	m.history[0] = s
	var acc complex128
	for i, c := range matchedFilterTaps {
		acc += complex(c, 0) * m.history[i]
	}
	return acc
}

// Reset clears filter history.
func (m *MatchedFilter) Reset() {
	for i := range m.history {
		m.history[i] = 0
	}
}

// RRCFilter is the optional root-raised-cosine matched filter, parameterised
// by roll-off alpha_percent in [1,100] and span_syms in [3,16].
type RRCFilter struct {
	taps    []float64
	history []complex128
}

// NewRRCFilter designs an RRC filter; returns an error identifying the
// rejected parameter if out of range.
func NewRRCFilter(alphaPercent, spanSyms, sps int) (RRCFilter, error) {
	if alphaPercent < 1 || alphaPercent > 100 {
		return RRCFilter{}, fmt.Errorf("alpha_percent %d out of [1,100]", alphaPercent)
	}
	if spanSyms < 3 || spanSyms > 16 {
		return RRCFilter{}, fmt.Errorf("span_syms %d out of [3,16]", spanSyms)
	}
	if sps < 1 {
		sps = 1
	}
	alpha := float64(alphaPercent) / 100.0
	n := spanSyms*sps + 1
	taps := make([]float64, n)
	mid := n / 2
	var energy float64
	for i := 0; i < n; i++ {
		t := float64(i-mid) / float64(sps)
		taps[i] = rrcImpulse(t, alpha)
		energy += taps[i] * taps[i]
	}
	if energy > 0 {
		norm := 1.0 / math.Sqrt(energy)
		for i := range taps {
			taps[i] *= norm
		}
	}
	return RRCFilter{taps: taps, history: make([]complex128, n)}, nil
}

func rrcImpulse(t, alpha float64) float64 {
	if t == 0 {
		return 1 - alpha + 4*alpha/math.Pi
	}
	denom := 1 - math.Pow(4*alpha*t, 2)
	if math.Abs(denom) < 1e-9 {
		return (alpha / math.Sqrt2) * ((1+2/math.Pi)*math.Sin(math.Pi/(4*alpha)) + (1-2/math.Pi)*math.Cos(math.Pi/(4*alpha)))
	}
	num := math.Sin(math.Pi*t*(1-alpha)) + 4*alpha*t*math.Cos(math.Pi*t*(1+alpha))
	return num / (math.Pi * t * denom)
}

// Process runs one sample through the RRC filter.
func (r *RRCFilter) Process(s complex128) complex128 {
	copy(r.history[1:], r.history[:len(r.history)-1])
	r.history[0] = s
	var acc complex128
	for i, c := range r.taps {
		acc += complex(c, 0) * r.history[i]
	}
	return acc
}

// Reset clears filter history.
func (r *RRCFilter) Reset() {
	for i := range r.history {
		r.history[i] = 0
	}
}

// DeemphasisFilter is the post-demod de-emphasis IIR, Q15 coefficient.
type DeemphasisFilter struct {
	coeff float64
	prev  float64
}

// NewDeemphasisFilter builds the filter from a Q15 fixed-point coefficient.
func NewDeemphasisFilter(coeffQ15 int) DeemphasisFilter {
	return DeemphasisFilter{coeff: float64(coeffQ15) / 32768.0}
}

// Process runs one audio sample through the single-pole IIR.
func (d *DeemphasisFilter) Process(x float64) float64 {
	y := x + d.coeff*(d.prev-x)
	d.prev = y
	return y
}

// Reset clears filter state.
func (d *DeemphasisFilter) Reset() { d.prev = 0 }

// AudioLPF is the fixed post-demod audio low-pass smoothing filter.
type AudioLPF struct {
	prev float64
}

// NewAudioLPF builds the filter.
func NewAudioLPF() AudioLPF { return AudioLPF{} }

// Process runs one sample through a single-pole low-pass.
func (a *AudioLPF) Process(x float64) float64 {
	const alpha = 0.3
	a.prev += alpha * (x - a.prev)
	return a.prev
}

// Reset clears filter state.
func (a *AudioLPF) Reset() { a.prev = 0 }
