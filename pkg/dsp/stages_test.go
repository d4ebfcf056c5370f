package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCostasLoop_PhaseStaysClampedToHalfPi(t *testing.T) {
	c := NewCostasLoop()
	for i := 0; i < 2000; i++ {
		c.Process(complex(1, 3)) // strong phase error input
	}
	require.LessOrEqual(t, c.phase, math.Pi/2+1e-9)
	require.GreaterOrEqual(t, c.phase, -math.Pi/2-1e-9)
}

func TestCostasLoop_ResetClearsMeanError(t *testing.T) {
	c := NewCostasLoop()
	c.Process(complex(1, 2))
	require.NotZero(t, c.MeanError())
	c.Reset()
	require.Zero(t, c.MeanError())
}

func TestGardnerTED_ReportsSymbolEveryOmegaSamples(t *testing.T) {
	g := NewGardnerTED(4)
	found := 0
	for i := 0; i < 40; i++ {
		ok, _, _ := g.Step(complex(float64(i), 0))
		if ok {
			found++
		}
	}
	require.Greater(t, found, 0)
}

func TestGardnerTED_ResetClearsAccumulatorNotOmega(t *testing.T) {
	g := NewGardnerTED(4)
	for i := 0; i < 10; i++ {
		g.Step(complex(float64(i), 0))
	}
	omegaBefore := g.Omega()
	g.Reset()
	require.Zero(t, g.Mu())
	require.Equal(t, omegaBefore, g.Omega())
}

// Before warm-up, the centre tap is the only nonzero weight, so the filter
// is a pure delay line of length taps/2: feeding the same sample taps/2+1
// times must make it appear, unmodified, at the output.
func TestCQPSKEqualizer_IdentityTapsBeforeWarmup(t *testing.T) {
	e := NewCQPSKEqualizer(5, 100, 1)
	var out complex128
	for i := 0; i < 3; i++ {
		out = e.Process(complex(1, 1))
	}
	require.InDelta(t, 1.0, real(out), 1e-9)
	require.InDelta(t, 1.0, imag(out), 1e-9)
}

func TestCQPSKEqualizer_ResetRestoresIdentityTaps(t *testing.T) {
	e := NewCQPSKEqualizer(5, 2000, 1)
	for i := 0; i < 200; i++ {
		e.Process(complex(float64(i%3), float64(-(i % 2))))
	}
	e.Reset()
	var out complex128
	for i := 0; i < 3; i++ {
		out = e.Process(complex(2, -2))
	}
	require.InDelta(t, 2.0, real(out), 1e-9)
	require.InDelta(t, -2.0, imag(out), 1e-9)
}

func TestCarrierLockSM_AcquiresAfterSustainedGoodMetrics(t *testing.T) {
	sm := NewCarrierLockSM()
	for i := 0; i < acquireHoldSymbols; i++ {
		sm.Observe(10, 0.01, 10)
	}
	require.Equal(t, Track, sm.State())
}

func TestCarrierLockSM_LosesLockAfterSustainedBadMetrics(t *testing.T) {
	sm := NewCarrierLockSM()
	for i := 0; i < acquireHoldSymbols; i++ {
		sm.Observe(10, 0.01, 10)
	}
	require.Equal(t, Track, sm.State())

	for i := 0; i < lossHoldSymbols; i++ {
		sm.Observe(5000, 1, -10)
	}
	require.Equal(t, Loss, sm.State())
	require.True(t, sm.NeedsReengage())
}

func TestCarrierLockSM_NeverLocksOnIntermittentGoodMetrics(t *testing.T) {
	sm := NewCarrierLockSM()
	for i := 0; i < acquireHoldSymbols*2; i++ {
		if i%2 == 0 {
			sm.Observe(10, 0.01, 10)
		} else {
			sm.Observe(5000, 1, -10)
		}
	}
	require.Equal(t, Acquire, sm.State())
}

func TestImpulseBlanker_ZeroThresholdAcceptsEverything(t *testing.T) {
	b := NewImpulseBlanker(0, 2)
	in := []complex128{1, 100, 1}
	out, accepts, rejects := b.Process(in)
	require.Equal(t, in, out)
	require.EqualValues(t, 3, accepts)
	require.Zero(t, rejects)
}

func TestImpulseBlanker_BlanksWindowAroundSpike(t *testing.T) {
	b := NewImpulseBlanker(5, 1)
	in := []complex128{1, 1, 100, 1, 1}
	out, _, rejects := b.Process(in)
	require.EqualValues(t, 1, rejects)
	require.Equal(t, complex128(0), out[1])
	require.Equal(t, complex128(0), out[2])
	require.Equal(t, complex128(0), out[3])
	require.NotEqual(t, complex128(0), out[0])
}
