package dsp

import "math"

// Discriminator recovers the raw symbol value from the carrier/timing
// recovered sample. FM mode uses the classic four-quadrant arctangent
// discriminator against the previous sample; CQPSK mode slices the
// differential+Costas-corrected phasor to a 4-level dibit using decision
// boundaries {-2,0,+2}.
type Discriminator struct{}

// DiscriminateFM computes atan2(I*Q'-Q*I', I*I'+Q*Q') between the current
// and previous complex sample.
func (Discriminator) DiscriminateFM(cur, prev complex128) float64 {
	i, q := real(cur), imag(cur)
	ip, qp := real(prev), imag(prev)
	num := i*qp - q*ip
	den := i*ip + q*qp
	return math.Atan2(num, den)
}

// DiscriminateCQPSK slices the corrected phasor's real axis to a {0,1,2,3}
// dibit using decision boundaries {-2,0,+2}.
func (Discriminator) DiscriminateCQPSK(s complex128) int {
	v := real(s)
	switch {
	case v < -2:
		return 0
	case v < 0:
		return 1
	case v < 2:
		return 2
	default:
		return 3
	}
}

// Reset is a no-op; Discriminator carries no state between samples beyond
// what the caller threads through explicitly (DiscriminateFM's prev arg).
func (Discriminator) Reset() {}
