package dsp

// GardnerTED is a Gardner timing-error detector: a symbol-rate accumulator
// mu in [0,1) and symbol period omega are driven by an error computed from
// a mid-symbol and current-symbol interpolated sample pair. Typical gains
// per §4.1: gain_mu=0.025, gain_omega=0.1*gain_mu^2.
type GardnerTED struct {
	omega float64
	mu    float64

	gainMu    float64
	gainOmega float64

	lastSymbol complex128
	midSymbol  complex128
	haveLast   bool

	buf    []complex128
	bufPos int
}

// NewGardnerTED builds a detector seeded with the nominal samples-per-symbol
// period.
func NewGardnerTED(samplesPerSymbol float64) GardnerTED {
	return GardnerTED{
		omega:     samplesPerSymbol,
		gainMu:    0.025,
		gainOmega: 0.1 * 0.025 * 0.025,
		buf:       make([]complex128, 0, 8),
	}
}

// Step feeds one incoming sample into the running interpolation buffer.
// When mu crosses 1 a new symbol has been located: it interpolates the
// current and mid-symbol samples, reports them, and updates omega/mu from
// the Gardner error (last-current)*mid.
func (g *GardnerTED) Step(s complex128) (found bool, symbol complex128, mid complex128) {
	g.buf = append(g.buf, s)
	g.mu += 1.0 / g.omega
	if g.mu < 1.0 {
		return false, 0, 0
	}
	g.mu -= 1.0

	n := len(g.buf)
	if n == 0 {
		return false, 0, 0
	}
	current := g.buf[n-1]
	midIdx := n / 2
	if midIdx >= n {
		midIdx = n - 1
	}
	midSample := g.buf[midIdx]
	g.buf = g.buf[:0]

	if g.haveLast {
		err := real((g.lastSymbol - current) * midSample)
		g.omega += g.gainOmega * err
		// omega is only kept from falling below one sample; no tolerance
		// band around the nominal period is enforced
		if g.omega < 1 {
			g.omega = 1
		}
		g.mu += g.gainMu * err
		for g.mu >= 1 {
			g.mu -= 1
		}
		for g.mu < 0 {
			g.mu += 1
		}
	}
	g.lastSymbol = current
	g.midSymbol = midSample
	g.haveLast = true

	return true, current, midSample
}

// Mu reports the current fractional symbol-timing accumulator.
func (g *GardnerTED) Mu() float64 { return g.mu }

// Omega reports the current estimated symbol period in samples.
func (g *GardnerTED) Omega() float64 { return g.omega }

// Reset clears the timing accumulator, the held last symbol and the
// interpolation buffer. The period estimate omega is not reset: it keeps
// its current value.
func (g *GardnerTED) Reset() {
	g.mu = 0
	g.haveLast = false
	g.buf = g.buf[:0]
}
