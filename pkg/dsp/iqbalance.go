package dsp

// IQBalancer is a small adaptive complex prefilter correcting mirror-image
// distortion in modes whose spectrum is dominated by one sideband. It tracks
// a gain/phase correction pair adapted by a slow gradient step against the
// conjugate-symmetric component of the recent signal.
type IQBalancer struct {
	gainCorr  float64
	phaseCorr float64
	mu        float64
}

// NewIQBalancer builds a balancer with unity initial correction.
func NewIQBalancer() IQBalancer {
	return IQBalancer{gainCorr: 1.0, phaseCorr: 0, mu: 1e-4}
}

// Process applies the current correction and adapts it from the block's
// image energy.
func (b *IQBalancer) Process(in []complex128) []complex128 {
	out := make([]complex128, len(in))
	for i, s := range in {
		corrected := complex(real(s)*b.gainCorr, imag(s)-b.phaseCorr*real(s))
		out[i] = corrected

		image := complex(real(corrected), -imag(corrected))
		errTerm := real(corrected*conjApprox(image)) * 1e-6
		b.gainCorr += b.mu * errTerm
		b.phaseCorr += b.mu * errTerm
	}
	return out
}

func conjApprox(c complex128) complex128 {
	return complex(real(c), -imag(c))
}

// Reset returns gain/phase correction to unity/zero. Part of ResetCarrier
// since image correction is retune-sensitive (front-end dependent).
func (b *IQBalancer) Reset() {
	b.gainCorr, b.phaseCorr = 1.0, 0
}
