package p2

import (
	"github.com/dbehnke/trunkcore/pkg/fec"
	"github.com/dbehnke/trunkcore/pkg/frame"
)

// reliabilityErasureThreshold marks a received symbol as an erasure when
// every dibit composing it was below this per-dibit confidence value
// (0-255 scale, 0 = least reliable), letting the slicer's soft decisions
// feed directly into RS63_35's combined error-and-erasure decode.
const reliabilityErasureThreshold = 32

// DecodeFACCH RS(63,35)-decodes a Facch/SACCH/ESS block's 63 GF(64) symbols,
// treating any symbol whose source dibits were all below
// reliabilityErasureThreshold as a known erasure rather than spending one of
// the code's error-correction budget on it.
func DecodeFACCH(symbols []int, reliability []byte) (data []int, errorsFixed int, err error) {
	var erasures []int
	for i, rel := range reliability {
		if i >= len(symbols) {
			break
		}
		if rel < reliabilityErasureThreshold {
			erasures = append(erasures, i)
		}
	}
	return fec.RS63_35.Decode(symbols, erasures)
}

// EncodeFACCH packs 35 GF(64) data symbols into a full RS(63,35) codeword.
func EncodeFACCH(data []int) []int {
	return fec.RS63_35.Encode(data)
}

// symbolsToBytes packs a slice of 6-bit GF(64) symbols MSB-first into bytes,
// for handing a decoded FACCH/SACCH payload to the protocol-agnostic Frame
// carrier.
func symbolsToBytes(symbols []int) []byte {
	out := make([]byte, 0, (len(symbols)*6+7)/8)
	var acc uint32
	var bits int
	for _, sym := range symbols {
		acc = acc<<6 | uint32(sym&0x3F)
		bits += 6
		for bits >= 8 {
			bits -= 8
			out = append(out, byte(acc>>uint(bits)))
		}
	}
	if bits > 0 {
		out = append(out, byte(acc<<uint(8-bits)))
	}
	return out
}

// BuildControlFrame wraps a decoded FACCH/SACCH payload in the
// protocol-agnostic Frame type for the trunking state machine to consume.
func BuildControlFrame(slot int, opcode int, data []int, errorsFixed int, irrecoverable bool) frame.Frame {
	return frame.Frame{
		Protocol: frame.ProtocolP25P2,
		Slot:     slot,
		Kind:     frame.KindTrunkingControl,
		Trunk: &frame.TrunkingControlPayload{
			Opcode:      opcode,
			PayloadBits: symbolsToBytes(data),
			CRCOK:       !irrecoverable,
		},
		FEC: frame.FECStats{CorrectedBits: errorsFixed, Irrecoverable: irrecoverable},
	}
}
