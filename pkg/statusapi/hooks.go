package statusapi

import "github.com/dbehnke/trunkcore/pkg/trunk"

// TrunkHooks adapts a trunk.Hooks implementation into one that also
// broadcasts each significant event over the status websocket feed,
// wrapping the caller's real tune/return-to-CC implementation rather than
// replacing it — this decoder's status surface is observational only.
type TrunkHooks struct {
	inner trunk.Hooks
	hub   *Hub
}

// NewTrunkHooks wraps inner so its tune/return/state-change calls also
// broadcast to hub.
func NewTrunkHooks(inner trunk.Hooks, hub *Hub) *TrunkHooks {
	return &TrunkHooks{inner: inner, hub: hub}
}

// TuneVC forwards to inner, then reports the retune on the status feed.
func (h *TrunkHooks) TuneVC(freq int64, channel uint16) {
	h.inner.TuneVC(freq, channel)
	h.hub.GrantTuned(freq, uint32(channel))
}

// ReturnCC forwards to inner, then reports the CC return on the status
// feed.
func (h *TrunkHooks) ReturnCC() {
	h.inner.ReturnCC()
	h.hub.CCReturn("release")
}

// StateChange forwards to inner, then reports sync-acquired/lost style
// transitions on the status feed (HUNTING<->ON_CC carries the sync-acquired/
// lost semantics; TUNED<->ON_CC carries grant/release, already reported by
// TuneVC/ReturnCC).
func (h *TrunkHooks) StateChange(old, new trunk.State, reason string, eventID string) {
	h.inner.StateChange(old, new, reason, eventID)
	switch {
	case new == trunk.StateOnCC && old == trunk.StateHunting:
		h.hub.SyncAcquired("cc")
	case new == trunk.StateHunting:
		h.hub.SyncLost("cc")
	}
}
