package proto

import (
	"fmt"

	"github.com/dbehnke/trunkcore/pkg/frame"
)

// skeletonFramer implements the shared Framer contract for the protocol
// families whose precise bit layouts are, per §4.4, protocol documents out
// of scope beyond the sync table: NXDN, dPMR (FS1-FS4), M17, and
// EDACS/ProVoice. Each still validates frame length against its known
// minimum and tags the frame by family/kind so it can be routed to a sink
// or counted, without asserting a specific interior field layout.
type skeletonFramer struct {
	family frame.SyncFamily
	kind   string
	minLen int
}

// NewNXDNFramer returns a framer for NXDN frames (48-bit minimum per its
// sync-plus-LICH header span).
func NewNXDNFramer() Framer {
	return &skeletonFramer{family: frame.FamilyNXDN, kind: "nxdn", minLen: 48}
}

// NewM17Framer returns a framer for M17 stream/LSF/packet frames (M17's
// shortest frame, the LSF, runs 240 bits).
func NewM17Framer() Framer {
	return &skeletonFramer{family: frame.FamilyM17, kind: "m17", minLen: 240}
}

// NewDPMRFramer returns a framer for one of dPMR's four frame sync types
// (FS1-FS4); fs selects which kind tag is reported (family is the single
// frame.FamilyDPMR grouping; FS1-FS4 is a Kind-level distinction).
func NewDPMRFramer(fs int) Framer {
	return &skeletonFramer{family: frame.FamilyDPMR, kind: fmt.Sprintf("dpmr-fs%d", fs), minLen: 72}
}

// NewEDACSFramer returns a framer for EDACS control/voice frames.
func NewEDACSFramer() Framer {
	return &skeletonFramer{family: frame.FamilyEDACS, kind: "edacs", minLen: 64}
}

// NewProVoiceFramer returns a framer for ProVoice frames (ProVoice and
// EDACS share frame.FamilyEDACS; Kind distinguishes them).
func NewProVoiceFramer() Framer {
	return &skeletonFramer{family: frame.FamilyEDACS, kind: "provoice", minLen: 64}
}

// Family reports the family this framer was constructed for.
func (s *skeletonFramer) Family() frame.SyncFamily { return s.family }

// ProcessBits validates the frame meets its family's minimum length and
// returns it tagged by kind, carrying the raw bits onward for a sink or a
// future full decode to consume.
func (s *skeletonFramer) ProcessBits(bits []byte) (Frame, bool, error) {
	if len(bits) < s.minLen {
		return Frame{}, false, fmt.Errorf("%s: payload too short: %d (want >= %d)", s.kind, len(bits), s.minLen)
	}
	return Frame{Family: s.family, Kind: s.kind, Payload: bits}, true, nil
}
