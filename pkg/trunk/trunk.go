// Package trunk implements the P25 trunking state machine (§4.5): a
// 4-state control-channel follower with hangtime/grant/backoff
// timers, CC candidate cooldown, neighbour tracking, and per-slot
// encryption lockout for TDMA voice channels.
//
// Grounded on the teacher's pkg/bridge package: stream.go's map-keyed
// tracker shape (StreamTracker) generalizes here into the candidate
// cooldown and neighbour-freshness maps, and timer.go's "set/clear/refresh
// a named timeout" shape generalizes into the state machine's monotonic
// deadline fields, driven by an explicit Tick(now) rather than time.AfterFunc
// callbacks — the trunking SM's tick() must be non-blocking and
// side-effect-free except for emitting callbacks (§5), which rules out
// background timer goroutines.
package trunk

import (
	"time"

	"github.com/dbehnke/trunkcore/pkg/frame"
	"github.com/google/uuid"
)

// State is one of the trunking SM's 4 states.
type State int

const (
	StateIdle State = iota
	StateOnCC
	StateTuned
	StateHunting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateOnCC:
		return "ON_CC"
	case StateTuned:
		return "TUNED"
	case StateHunting:
		return "HUNTING"
	default:
		return "UNKNOWN"
	}
}

// EventKind discriminates the trunking SM's input events.
type EventKind int

const (
	EventCCKnown EventKind = iota
	EventGrant
	EventPTT
	EventActive
	EventEnd
	EventIdle
	EventNoSync
	EventNeighborUpdate
	EventForcedRelease
	EventEncIndicator
)

// SvcEncrypted is this decoder's service-options bit convention for "call is
// encrypted" on a GRANT's Svc field — no original_source reference pins the
// exact P25 service-options bit layout (0 files kept), so this follows the
// widely-used bit 6 convention as a self-consistent, round-trip choice, not
// an assertion of bit-exact TIA-102 compliance.
const SvcEncrypted byte = 0x40

// Event is one trunking-SM input, carrying a monotonic timestamp per §4.5.
// ID opaquely correlates a dispatched event with the StateChange hook calls
// it triggers, for trace correlation in the logger and status feed; it is
// stamped by Dispatch with uuid.NewString() when left empty by the caller.
type Event struct {
	Kind      EventKind
	ID        string
	Timestamp time.Time

	Channel uint16 // GRANT: IDEN nibble in bits 12-15, channel number in bits 0-11
	Svc     byte   // GRANT: service-options bitmask (SvcEncrypted et al.)
	TG      uint32
	Src     uint32

	Slot int // PTT/ACTIVE/END/IDLE/EncIndicator

	Freqs []int64 // NEIGHBOR_UPDATE

	Reason string // FORCED_RELEASE
}

// Config holds the trunking SM's configurable timers and policy switches,
// defaulted per §4.5.
type Config struct {
	HangtimeS          float64
	VCGraceS           float64
	MinFollowDwellS    float64
	GrantVoiceTimeoutS float64
	RetuneBackoffS     float64
	MacHoldS           float64

	// NosyncTimeoutS bounds how long ON_CC tolerates NOSYNC before hunting.
	// Not named among §4.5's listed timer defaults; chosen here as a
	// reasonable decoder default and documented rather than guessed into
	// one of the named constants.
	NosyncTimeoutS float64

	// EvalS/CandidateCooldownS govern HUNTING's per-candidate evaluation
	// window and cooldown TTL per §4.5's candidate-cooldown paragraph.
	EvalS              float64
	CandidateCooldownS float64

	// BasicMode skips the MAC-activity gate and releases immediately after
	// hangtime, per §9's basic_mode policy decision.
	BasicMode bool

	// TrunkTuneEncCalls, when false, enables ENC lockout per §4.5.
	TrunkTuneEncCalls bool
}

// DefaultConfig returns the §4.5 timer defaults.
func DefaultConfig() Config {
	return Config{
		HangtimeS:          1.0,
		VCGraceS:           1.5,
		MinFollowDwellS:    0.7,
		GrantVoiceTimeoutS: 2.0,
		RetuneBackoffS:     3.0,
		MacHoldS:           3.0,
		NosyncTimeoutS:     5.0,
		EvalS:              5.0,
		CandidateCooldownS: 10.0,
		TrunkTuneEncCalls:  true,
	}
}

// Hooks is the trunking SM's collaborator boundary (§9 design notes: "model
// as a small TrunkHooks interface with injected implementations for test
// and production"), replacing void-pointer callbacks/vtables.
type Hooks interface {
	TuneVC(freq int64, channel uint16)
	ReturnCC()
	StateChange(old, new State, reason string, eventID string)
}

// newEventID returns a fresh opaque event-trace identifier, used by
// Dispatch to stamp events that arrive without one.
func newEventID() string { return uuid.NewString() }

// SlotState is the per-slot TDMA bookkeeping §4.5's trunking-SM context
// names: voice_active, audio_allowed, enc_pending, last_mac_active.
type SlotState struct {
	VoiceActive          bool
	AudioAllowed         bool
	EncPending           bool
	LastMACActiveMonotonic time.Time
}

// IDENResolver resolves a logical channel number to a frequency, matching
// frame.IDENTable's exact §3 formula.
type IDENResolver interface {
	FrequencyHz(id int, ch uint16) (freqHz int64, slot int, ok bool)
}

var _ IDENResolver = (*frame.IDENTable)(nil)
