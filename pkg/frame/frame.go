// Package frame defines the protocol-agnostic decoded-frame data model: the
// Frame variant carrying voice/control/data payloads, the sync-identity
// registry (~40 named sync patterns with family/polarity), and the P25
// channel-identifier table used to resolve logical channel numbers to
// frequencies.
//
// Grounded on the teacher's pkg/protocol/dmrd.go (wire-field struct) and
// constants.go (offset/mask tables), generalized from a single DMR wire
// layout into a carrier shared by every protocol framer in pkg/p25,
// pkg/dmr, and pkg/proto.
package frame

import "time"

// Protocol identifies which air interface produced a Frame.
type Protocol int

const (
	ProtocolUnknown Protocol = iota
	ProtocolP25P1
	ProtocolP25P2
	ProtocolDMR
	ProtocolNXDN
	ProtocolDSTAR
	ProtocolYSF
	ProtocolDPMR
	ProtocolM17
	ProtocolEDACS
	ProtocolProVoice
	ProtocolAnalog
)

func (p Protocol) String() string {
	switch p {
	case ProtocolP25P1:
		return "P25P1"
	case ProtocolP25P2:
		return "P25P2"
	case ProtocolDMR:
		return "DMR"
	case ProtocolNXDN:
		return "NXDN"
	case ProtocolDSTAR:
		return "DSTAR"
	case ProtocolYSF:
		return "YSF"
	case ProtocolDPMR:
		return "DPMR"
	case ProtocolM17:
		return "M17"
	case ProtocolEDACS:
		return "EDACS"
	case ProtocolProVoice:
		return "ProVoice"
	case ProtocolAnalog:
		return "Analog"
	default:
		return "Unknown"
	}
}

// Kind discriminates which variant of Frame's payload is populated.
type Kind int

const (
	KindVoice Kind = iota
	KindTrunkingControl
	KindLinkControl
	KindData
	KindLinkSetup
)

// VoicePayload carries one or more decoded vocoder codec frames for a slot.
type VoicePayload struct {
	Slot        int
	CodecFrames [][]byte
}

// TrunkingControlPayload carries a decoded control-channel opcode and its
// raw payload bits plus the CRC verdict.
type TrunkingControlPayload struct {
	Opcode     int
	PayloadBits []byte
	CRCOK      bool
}

// LinkControlPayload carries decoded link-control fields as a flat map,
// mirroring the teacher's pkg/protocol/lc.go field layout generalized away
// from DMR-only fields.
type LinkControlPayload struct {
	Fields map[string]uint64
}

// DataPayload carries a data-service-access-point block sequence.
type DataPayload struct {
	SAP    int
	Blocks [][]byte
}

// LinkSetupPayload carries M17/D-STAR-style link setup frames.
type LinkSetupPayload struct {
	CallID uint64
	Src    string
	Dst    string
	Flags  uint16
}

// FECStats summarizes per-frame FEC outcomes for metrics/logging.
type FECStats struct {
	CorrectedBits int
	Irrecoverable bool
}

// Frame is the protocol-agnostic decoded unit emitted by every framer.
// Exactly one of the payload pointers is non-nil, selected by Kind.
type Frame struct {
	Protocol  Protocol
	Slot      int
	Timestamp time.Time
	FEC       FECStats

	Kind    Kind
	Voice   *VoicePayload
	Trunk   *TrunkingControlPayload
	Link    *LinkControlPayload
	Data    *DataPayload
	Setup   *LinkSetupPayload
}
