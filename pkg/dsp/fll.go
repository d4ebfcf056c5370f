package dsp

import "math"

// FLL is a band-edge frequency-lock loop used during CQPSK acquisition. It
// designs upper/lower band-edge filters for the configured samples-per-symbol
// (2*sps+1 taps, alpha=0.2) and rotates the input by an NCO whose frequency
// is driven by the power difference between the two band-edge filter
// outputs.
type FLL struct {
	upperTaps, lowerTaps []float64
	upperHist, lowerHist []complex128

	freq      float64 // rad/sample, clamped to [-1,1]
	phase     float64
	loopAlpha float64
	loopBeta  float64
}

// NewFLL designs the band-edge filters and loop coefficients for the given
// samples-per-symbol.
func NewFLL(sps int) FLL {
	n := 2*sps + 1
	upper := make([]float64, n)
	lower := make([]float64, n)
	const rolloffAlpha = 0.2
	for i := 0; i < n; i++ {
		t := float64(i-sps) / float64(sps)
		// Band-edge filters: cosine-modulated sinc approximations offset
		// to the upper/lower Nyquist edges of the symbol-rate passband.
		sinc := sincFunc(t)
		upper[i] = sinc * math.Cos(math.Pi*rolloffAlpha*t)
		lower[i] = sinc * math.Cos(-math.Pi*rolloffAlpha*t)
	}
	bl := 2 * math.Pi / (float64(sps) * 350.0)
	zeta := math.Sqrt2 / 2
	theta := bl / (zeta + 1/(4*zeta))
	alpha := 2 * zeta * theta
	beta := theta * theta

	return FLL{
		upperTaps: upper, lowerTaps: lower,
		upperHist: make([]complex128, n), lowerHist: make([]complex128, n),
		loopAlpha: alpha, loopBeta: beta,
	}
}

func sincFunc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

func fir(taps []float64, hist []complex128, s complex128) complex128 {
	copy(hist[1:], hist[:len(hist)-1])
	hist[0] = s
	var acc complex128
	for i, c := range taps {
		acc += complex(c, 0) * hist[i]
	}
	return acc
}

// Process rotates s by the current NCO phase and updates the loop from the
// upper/lower band-edge power difference.
func (f *FLL) Process(s complex128) complex128 {
	rotated := s * complex(math.Cos(-f.phase), math.Sin(-f.phase))

	upperOut := fir(f.upperTaps, f.upperHist, rotated)
	lowerOut := fir(f.lowerTaps, f.lowerHist, rotated)

	err := (real(upperOut)*real(upperOut) + imag(upperOut)*imag(upperOut)) -
		(real(lowerOut)*real(lowerOut) + imag(lowerOut)*imag(lowerOut))

	f.freq += f.loopBeta * err
	if f.freq > 1 {
		f.freq = 1
	} else if f.freq < -1 {
		f.freq = -1
	}
	f.phase += f.freq + f.loopAlpha*err
	f.phase = wrapPhase(f.phase)

	return rotated
}

func wrapPhase(p float64) float64 {
	for p > math.Pi {
		p -= 2 * math.Pi
	}
	for p < -math.Pi {
		p += 2 * math.Pi
	}
	return p
}

// ResidualFreq reports the current NCO frequency in rad/sample, clamped to
// [-1,1].
func (f *FLL) ResidualFreq() float64 { return f.freq }

// Reset clears NCO state and band-edge filter history. Part of
// ResetCarrier.
func (f *FLL) Reset() {
	f.freq, f.phase = 0, 0
	for i := range f.upperHist {
		f.upperHist[i] = 0
	}
	for i := range f.lowerHist {
		f.lowerHist[i] = 0
	}
}
