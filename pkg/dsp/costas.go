package dsp

import "math"

// CostasLoop is a QPSK decision-directed carrier-phase recovery loop. Loop
// gains (alpha, beta) ~= (0.0223, 0.000253) derive from B_L=0.008,
// zeta=sqrt(2)/2. Phase is clamped (not wrapped) to +-pi/2; frequency is
// clamped to +-1 rad/sample.
type CostasLoop struct {
	phase float64
	freq  float64

	alpha, beta float64

	errSum   float64
	errCount int
}

// NewCostasLoop builds a loop with the standard §4.1 gains.
func NewCostasLoop() CostasLoop {
	return CostasLoop{alpha: 0.0223, beta: 0.000253}
}

// Process rotates s by the current phase estimate, computes the QPSK phase
// error, and updates phase/frequency.
func (c *CostasLoop) Process(s complex128) complex128 {
	rotated := s * complex(math.Cos(-c.phase), math.Sin(-c.phase))

	re, im := real(rotated), imag(rotated)
	err := sign(re)*im - sign(im)*re

	c.freq += c.beta * err
	if c.freq > 1 {
		c.freq = 1
	} else if c.freq < -1 {
		c.freq = -1
	}
	c.phase += c.freq + c.alpha*err
	if c.phase > math.Pi/2 {
		c.phase = math.Pi / 2
	} else if c.phase < -math.Pi/2 {
		c.phase = -math.Pi / 2
	}

	c.errSum += math.Abs(err)
	c.errCount++

	return rotated
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

// MeanError reports the running mean absolute phase-detector error, used by
// the carrier-lock state machine.
func (c *CostasLoop) MeanError() float64 {
	if c.errCount == 0 {
		return 0
	}
	return c.errSum / float64(c.errCount)
}

// Reset clears phase/frequency and the running error average. Called on
// retune.
func (c *CostasLoop) Reset() {
	c.phase, c.freq, c.errSum = 0, 0, 0
	c.errCount = 0
}
