// Package proto adapts the decoder's "other families" (§4.4: NXDN, YSF,
// dPMR, M17, EDACS/ProVoice, D-STAR) behind one shared Framer contract, so
// the control/trunking layer can route a detected frame onward without
// caring which protocol produced it. Family identity reuses pkg/frame's
// sync registry — the correlator's canonical, wire-visible-ID family
// table — rather than inventing a parallel one; this package's Frame.Kind
// field carries the finer-grained tag (e.g. "dpmr-fs2", "header") that
// frame.SyncFamily's coarser grouping doesn't distinguish.
//
// YSF gets a real decode behind Framer: ysf.go Golay(20,8)-decodes each
// frame's FICH and reads the callsigns out of header frames. D-STAR's header chain (scrambler,
// interleaver, Viterbi) is fully implemented in dstar.go as a self-
// consistent construction. NXDN/dPMR/M17/EDACS/ProVoice get skeleton
// framers per §4.4's "share interfaces; precise bit layouts beyond the
// sync table are out of scope here."
package proto

import "github.com/dbehnke/trunkcore/pkg/frame"

// Frame is the decoded output of a protocol framer: enough to route to a
// voice/data sink and to the trunking state machine's event stream,
// without committing to any one protocol's internal field layout.
type Frame struct {
	Family  frame.SyncFamily
	Kind    string
	Payload []byte
}

// Framer is the shared contract every "other family" protocol in this
// package implements: feed it the bits following a detected sync, get back
// a typed Frame. Precise per-protocol bit layouts beyond the sync table
// are protocol documents out of scope here (per §4.4); these framers
// extract only the header-invariant fields (family tag, length, raw
// payload) needed to route a frame onward.
type Framer interface {
	Family() frame.SyncFamily
	ProcessBits(bits []byte) (Frame, bool, error)
}

// SyncTable returns the sync-registry entries for the families this
// package's framers cover (YSF and D-STAR have their own dedicated sync
// entries too, included here for completeness).
func SyncTable() []frame.SyncType {
	var out []frame.SyncType
	for _, fam := range []frame.SyncFamily{
		frame.FamilyM17, frame.FamilyDPMR, frame.FamilyEDACS,
		frame.FamilyNXDN, frame.FamilyYSF, frame.FamilyDSTAR,
	} {
		out = append(out, frame.SyncsForFamily(fam)...)
	}
	return out
}
