package dsp

import "math"

// CarrierState is a node of the carrier-lock state machine.
type CarrierState int

const (
	Acquire CarrierState = iota
	Track
	Loss
)

func (s CarrierState) String() string {
	switch s {
	case Track:
		return "track"
	case Loss:
		return "loss"
	default:
		return "acquire"
	}
}

// Carrier-lock thresholds per §4.1.
const (
	cfoThresholdHz     = 200.0
	costasErrThreshold = 0.05 * math.Pi
	snrThresholdDB     = 6.0
	acquireHoldSymbols = 200
	lossHoldSymbols    = 500
)

// CarrierLockSM implements ACQUIRE -> TRACK -> LOSS. ACQUIRE transitions to
// TRACK when residual CFO, mean Costas error, and SNR all clear their
// thresholds for >= N consecutive symbols (N~200). TRACK transitions to
// LOSS when any condition fails to hold for >= M consecutive symbols
// (M~500). A loss re-engages the FLL (signalled via NeedsReengage).
type CarrierLockSM struct {
	state CarrierState

	goodStreak int
	badStreak  int

	needsReengage bool
}

// NewCarrierLockSM starts in ACQUIRE.
func NewCarrierLockSM() CarrierLockSM {
	return CarrierLockSM{state: Acquire}
}

// Observe feeds one symbol's worth of lock-quality measurements and advances
// the state machine.
func (c *CarrierLockSM) Observe(residualCFOHz float64, meanCostasErr, snrDB float64) {
	good := math.Abs(residualCFOHz) < cfoThresholdHz &&
		meanCostasErr < costasErrThreshold &&
		snrDB > snrThresholdDB

	switch c.state {
	case Acquire:
		if good {
			c.goodStreak++
			c.badStreak = 0
			if c.goodStreak >= acquireHoldSymbols {
				c.state = Track
				c.goodStreak = 0
			}
		} else {
			c.goodStreak = 0
		}
	case Track:
		if good {
			c.badStreak = 0
		} else {
			c.badStreak++
			if c.badStreak >= lossHoldSymbols {
				c.state = Loss
				c.badStreak = 0
				c.needsReengage = true
			}
		}
	case Loss:
		// A loss requires an explicit Reset (FLL re-engagement) to
		// return to ACQUIRE; it does not self-recover.
	}
}

// State reports the current carrier-lock state.
func (c *CarrierLockSM) State() CarrierState { return c.state }

// NeedsReengage reports, and clears, whether a TRACK->LOSS transition
// occurred since the last call — the caller's cue to re-engage the FLL.
func (c *CarrierLockSM) NeedsReengage() bool {
	v := c.needsReengage
	c.needsReengage = false
	return v
}

// Reset returns the state machine to ACQUIRE, called on retune or after a
// loss has been handled.
func (c *CarrierLockSM) Reset() {
	c.state = Acquire
	c.goodStreak, c.badStreak = 0, 0
	c.needsReengage = false
}
