package trunk

import "time"

func secs(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// StateMachine is the P25 trunking SM (§4.5): IDLE/ON_CC/TUNED/HUNTING with
// hangtime, grant-voice-timeout and retune-backoff timers, candidate
// cooldown, neighbour tracking, and per-slot ENC lockout. Config's VCGraceS
// and MinFollowDwellS are not read by the state machine: it has no VC grace
// period and no minimum follow dwell. Dispatch(event) applies a single
// discrete event; Tick(now) evaluates the purely time-driven transitions
// (hangtime release, grant-voice timeout, candidate evaluation windows) and
// must stay non-blocking and side-effect-free beyond emitting Hooks calls,
// per §5.
type StateMachine struct {
	cfg   Config
	hooks Hooks
	idens IDENResolver

	state State
	slots [2]SlotState

	vcFreq     int64
	vcChannel  uint16
	activeSlot int

	tLastTune      time.Time
	tLastVCSync    time.Time
	tLastReturn    time.Time
	lastReturnFreq int64

	ccNosyncSince time.Time

	candidates       *CandidateList
	neighbours       *NeighbourList
	currentCandidate int64
	huntEvalDeadline time.Time

	currentEventID string
}

// NewStateMachine constructs a trunking SM starting in IDLE, seeded with an
// initial CC candidate list (typically the configured control channel plus
// any cached candidates from pkg/cache).
func NewStateMachine(cfg Config, hooks Hooks, idens IDENResolver, candidateSeed []int64) *StateMachine {
	return &StateMachine{
		cfg:        cfg,
		hooks:      hooks,
		idens:      idens,
		state:      StateIdle,
		candidates: NewCandidateList(candidateSeed),
		neighbours: NewNeighbourList(),
	}
}

// State returns the SM's current state.
func (sm *StateMachine) State() State { return sm.state }

// Slot returns the tracked per-slot state for slot 0 or 1.
func (sm *StateMachine) Slot(i int) SlotState {
	if i != 0 && i != 1 {
		return SlotState{}
	}
	return sm.slots[i]
}

// Neighbours returns the current neighbour-frequency list.
func (sm *StateMachine) Neighbours(now time.Time) []int64 {
	return sm.neighbours.List(now)
}

func (sm *StateMachine) setState(next State, reason string) {
	old := sm.state
	sm.state = next
	if sm.hooks != nil {
		sm.hooks.StateChange(old, next, reason, sm.currentEventID)
	}
}

// Dispatch applies one event to the state machine. Events arriving without
// an ID are stamped with a fresh one, correlating the StateChange hook calls
// they trigger.
func (sm *StateMachine) Dispatch(ev Event) {
	if ev.ID == "" {
		ev.ID = newEventID()
	}
	sm.currentEventID = ev.ID

	switch ev.Kind {
	case EventCCKnown:
		sm.onCCKnown(ev)
	case EventGrant:
		sm.onGrant(ev)
	case EventPTT:
		sm.onPTT(ev)
	case EventActive:
		sm.onActive(ev)
	case EventEnd:
		sm.onEnd(ev)
	case EventIdle:
		sm.onIdle(ev)
	case EventNoSync:
		sm.onNoSync(ev)
	case EventNeighborUpdate:
		sm.onNeighborUpdate(ev)
	case EventForcedRelease:
		sm.onForcedRelease(ev)
	case EventEncIndicator:
		sm.onEncIndicator(ev)
	}
}

func (sm *StateMachine) onCCKnown(ev Event) {
	switch sm.state {
	case StateIdle:
		sm.tLastVCSync = ev.Timestamp
		sm.setState(StateOnCC, "cc_known")
	case StateHunting:
		sm.ccNosyncSince = time.Time{}
		sm.huntEvalDeadline = time.Time{}
		sm.tLastVCSync = ev.Timestamp
		sm.setState(StateOnCC, "cc_sync")
	}
}

func (sm *StateMachine) onGrant(ev Event) {
	if sm.state != StateOnCC && sm.state != StateTuned {
		return
	}
	if sm.idens == nil {
		return
	}
	iden := int(ev.Channel>>12) & 0xF
	freq, slot, ok := sm.idens.FrequencyHz(iden, ev.Channel)
	if !ok {
		return // mapping failed: stay on CC, caller counts the rejection
	}

	if ev.Svc&SvcEncrypted != 0 && !sm.cfg.TrunkTuneEncCalls {
		return // ENC-call filtering denies the grant: stay on CC
	}

	if sm.state == StateTuned && freq == sm.vcFreq {
		return // idempotent: repeated grant for the same freq/slot while TUNED
	}

	if !sm.tLastReturn.IsZero() && freq == sm.lastReturnFreq &&
		ev.Timestamp.Sub(sm.tLastReturn) < secs(sm.cfg.RetuneBackoffS) {
		return // suppressed: same frequency within retune_backoff_s of a recent return
	}

	sm.vcFreq = freq
	sm.vcChannel = ev.Channel
	sm.activeSlot = slot
	sm.tLastTune = ev.Timestamp
	sm.tLastVCSync = ev.Timestamp
	sm.slots[0] = SlotState{}
	sm.slots[1] = SlotState{}

	sm.setState(StateTuned, "grant")
	if sm.hooks != nil {
		sm.hooks.TuneVC(freq, ev.Channel)
	}
}

func (sm *StateMachine) onPTT(ev Event) {
	if sm.state != StateTuned || (ev.Slot != 0 && ev.Slot != 1) {
		return
	}
	sm.slots[ev.Slot].VoiceActive = true
	sm.slots[ev.Slot].AudioAllowed = true
	sm.slots[ev.Slot].LastMACActiveMonotonic = ev.Timestamp
	sm.tLastVCSync = ev.Timestamp
}

func (sm *StateMachine) onActive(ev Event) {
	if sm.state != StateTuned || (ev.Slot != 0 && ev.Slot != 1) {
		return
	}
	sm.slots[ev.Slot].LastMACActiveMonotonic = ev.Timestamp
	sm.tLastVCSync = ev.Timestamp
}

func (sm *StateMachine) onEnd(ev Event) {
	if sm.state != StateTuned || (ev.Slot != 0 && ev.Slot != 1) {
		return
	}
	sm.slots[ev.Slot].VoiceActive = false
	sm.slots[ev.Slot].AudioAllowed = false
}

func (sm *StateMachine) onIdle(ev Event) {
	if sm.state != StateTuned || (ev.Slot != 0 && ev.Slot != 1) {
		return
	}
	sm.slots[ev.Slot].VoiceActive = false
}

func (sm *StateMachine) onNoSync(ev Event) {
	if sm.state == StateOnCC && sm.ccNosyncSince.IsZero() {
		sm.ccNosyncSince = ev.Timestamp
	}
}

func (sm *StateMachine) onNeighborUpdate(ev Event) {
	sm.neighbours.Update(ev.Freqs, ev.Timestamp)
	for _, f := range ev.Freqs {
		sm.candidates.Add(f)
	}
}

func (sm *StateMachine) onForcedRelease(ev Event) {
	if sm.state != StateTuned {
		return
	}
	sm.release(ev.Timestamp, "forced_release")
}

func (sm *StateMachine) onEncIndicator(ev Event) {
	if sm.cfg.TrunkTuneEncCalls || sm.state != StateTuned {
		return
	}
	if ev.Slot != 0 && ev.Slot != 1 {
		return
	}
	other := 1 - ev.Slot
	if sm.slots[other].AudioAllowed {
		sm.slots[ev.Slot].VoiceActive = false
		sm.slots[ev.Slot].AudioAllowed = false
		sm.slots[ev.Slot].EncPending = true
		return
	}
	sm.release(ev.Timestamp, "enc_lockout")
}

// Tick evaluates time-driven transitions: hangtime release, grant-voice
// timeout, ON_CC nosync timeout, and HUNTING's per-candidate evaluation
// window.
func (sm *StateMachine) Tick(now time.Time) {
	switch sm.state {
	case StateOnCC:
		if !sm.ccNosyncSince.IsZero() && now.Sub(sm.ccNosyncSince) > secs(sm.cfg.NosyncTimeoutS) {
			sm.ccNosyncSince = time.Time{}
			sm.enterHunting(now, "nosync_timeout")
		}
	case StateTuned:
		if sm.tLastVCSync.IsZero() {
			return
		}
		if now.Sub(sm.tLastTune) > secs(sm.cfg.GrantVoiceTimeoutS) &&
			now.Sub(sm.tLastVCSync) > secs(sm.cfg.GrantVoiceTimeoutS) {
			sm.enterHunting(now, "grant_timeout")
			return
		}
		if sm.releaseDue(now) {
			sm.release(now, "hangtime")
		}
	case StateHunting:
		if !sm.huntEvalDeadline.IsZero() && now.After(sm.huntEvalDeadline) {
			sm.candidates.Cooldown(sm.currentCandidate, now, secs(sm.cfg.CandidateCooldownS))
			sm.tryNextCandidate(now)
		}
	}
}

func (sm *StateMachine) releaseDue(now time.Time) bool {
	if now.Sub(sm.tLastVCSync) <= secs(sm.cfg.HangtimeS) {
		return false
	}
	if sm.cfg.BasicMode {
		return true
	}
	for i := 0; i < 2; i++ {
		if sm.slots[i].AudioAllowed || sm.slots[i].VoiceActive {
			return false
		}
		if !sm.slots[i].LastMACActiveMonotonic.IsZero() &&
			now.Sub(sm.slots[i].LastMACActiveMonotonic) <= secs(sm.cfg.MacHoldS) {
			return false
		}
	}
	return true
}

func (sm *StateMachine) release(now time.Time, reason string) {
	sm.tLastReturn = now
	sm.lastReturnFreq = sm.vcFreq
	sm.setState(StateOnCC, reason)
	if sm.hooks != nil {
		sm.hooks.ReturnCC()
	}
}

func (sm *StateMachine) enterHunting(now time.Time, reason string) {
	sm.setState(StateHunting, reason)
	sm.tryNextCandidate(now)
}

func (sm *StateMachine) tryNextCandidate(now time.Time) {
	freq, ok := sm.candidates.Next(now)
	if !ok {
		sm.currentCandidate = 0
		sm.huntEvalDeadline = time.Time{}
		return
	}
	sm.currentCandidate = freq
	sm.huntEvalDeadline = now.Add(secs(sm.cfg.EvalS))
	if sm.hooks != nil {
		sm.hooks.TuneVC(freq, 0)
	}
}
