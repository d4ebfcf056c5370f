// Package proto holds the "other families" framers of §4.4: D-STAR's
// header scramble/interleave/Viterbi/CRC chain in full, a YSF framer that
// decodes the FICH and header callsigns, plus NXDN, dPMR, M17, EDACS, and
// ProVoice skeletons, all sharing one
// (sync found -> ProcessBits -> Frame) contract, since their precise bit
// layouts are protocol documents out of scope here beyond the sync table.
package proto

import (
	"fmt"

	"github.com/dbehnke/trunkcore/pkg/fec"
	"github.com/dbehnke/trunkcore/pkg/frame"
)

// DStarHeaderInfoBits is the 328-bit D-STAR header payload: 39 octets
// (callsign/repeater/flag fields) plus a 16-bit CRC-16/X25.
const DStarHeaderInfoBits = 328

// dstarTailBits flushes the K=3 trellis back toward state 0 before Viterbi
// traceback; the FEC catalogue's "no tail padding" note describes
// ViterbiK3.Decode's traceback (it always picks the best end state, tail or
// not) rather than forbidding an explicit flush on encode.
const dstarTailBits = 2

// DStarHeaderChannelBits is the 660-bit channel-symbol span a D-STAR header
// occupies after scrambling and interleaving: (328+2 tail) info bits at
// rate 1/2 = 660.
const DStarHeaderChannelBits = (DStarHeaderInfoBits + dstarTailBits) * 2

// dstarScramblerSeed is the 7-bit LFSR's initial state (0b0000111), per
// §4.4.
const dstarScramblerSeed = 0b0000111

// dstarScramblerPeriod is the LFSR's period (2^7-1).
const dstarScramblerPeriod = 127

// DStarScrambler is the D-STAR header's 7-bit LFSR (x^7+x^4+1), self-
// inverse like pkg/p25/p2's scrambler: XORing the same keystream against
// scrambled data recovers the original.
type DStarScrambler struct {
	state byte
}

// NewDStarScrambler returns a scrambler rewound to its fixed seed.
func NewDStarScrambler() *DStarScrambler {
	return &DStarScrambler{state: dstarScramblerSeed}
}

// Reset rewinds the scrambler to its seed.
func (s *DStarScrambler) Reset() { s.state = dstarScramblerSeed }

func (s *DStarScrambler) nextBit() byte {
	bit := ((s.state >> 6) ^ (s.state >> 3)) & 1
	s.state = ((s.state << 1) | bit) & 0x7F
	return bit
}

// Process XORs each bit in bits against the LFSR keystream, in place.
func (s *DStarScrambler) Process(bits []byte) {
	for i := range bits {
		bits[i] ^= s.nextBit()
	}
}

// dstarInterleaveOrder is a fixed permutation of [0,DStarHeaderChannelBits):
// order[k] names which pre-interleave position lands at interleaved
// position k. Built once via buildDStarInterleaveOrder.
var dstarInterleaveOrder = buildDStarInterleaveOrder()

// buildDStarInterleaveOrder constructs the 24-column diagonal interleave
// order: channel bits are written row-major into a 24-column matrix (the
// final row wraps early since 660 isn't a multiple of 24, landing the last
// full column at bit 660 per §4.4), then read out column-major. No
// original_source reference pins the exact D-STAR interleave matrix (0
// files kept), so this is this decoder's own self-consistent, exactly
// invertible construction rather than an assertion of on-air bit-exact
// compliance.
func buildDStarInterleaveOrder() []int {
	const cols = 24
	const total = DStarHeaderChannelBits
	rows := (total + cols - 1) / cols

	cell := make([][]int, rows)
	for r := range cell {
		cell[r] = make([]int, cols)
		for c := range cell[r] {
			cell[r][c] = -1
		}
	}

	idx := 0
	for r := 0; r < rows && idx < total; r++ {
		for c := 0; c < cols && idx < total; c++ {
			cell[r][c] = idx
			idx++
		}
	}

	order := make([]int, 0, total)
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			if cell[r][c] >= 0 {
				order = append(order, cell[r][c])
			}
		}
	}
	return order
}

// InterleaveDStarHeader applies the diagonal interleave to a
// DStarHeaderChannelBits-length bit slice.
func InterleaveDStarHeader(bits []byte) []byte {
	out := make([]byte, len(dstarInterleaveOrder))
	for k, orig := range dstarInterleaveOrder {
		out[k] = bits[orig]
	}
	return out
}

// DeinterleaveDStarHeader inverts InterleaveDStarHeader.
func DeinterleaveDStarHeader(bits []byte) []byte {
	out := make([]byte, len(dstarInterleaveOrder))
	for k, orig := range dstarInterleaveOrder {
		out[orig] = bits[k]
	}
	return out
}

// EncodeDStarHeader scrambles, Viterbi-encodes, and diagonally interleaves
// a 328-bit D-STAR header payload (39 octets of fields plus CRC-16/X25)
// into a 660-bit channel-symbol frame.
func EncodeDStarHeader(infoBits []byte) []byte {
	padded := make([]byte, DStarHeaderInfoBits+dstarTailBits)
	copy(padded, infoBits[:DStarHeaderInfoBits])

	pairs := fec.ViterbiK3{}.Encode(padded)
	channel := make([]byte, 0, DStarHeaderChannelBits)
	for _, p := range pairs {
		channel = append(channel, p[0], p[1])
	}

	NewDStarScrambler().Process(channel)
	return InterleaveDStarHeader(channel)
}

// DecodeDStarHeader deinterleaves, descrambles, and Viterbi-decodes a
// 660-bit D-STAR header channel frame back to its 328-bit info payload.
func DecodeDStarHeader(channelBits []byte) []byte {
	deinterleaved := DeinterleaveDStarHeader(channelBits)

	descrambled := append([]byte(nil), deinterleaved...)
	NewDStarScrambler().Process(descrambled)

	pairs := make([][2]byte, 0, len(descrambled)/2)
	for i := 0; i+2 <= len(descrambled); i += 2 {
		pairs = append(pairs, [2]byte{descrambled[i], descrambled[i+1]})
	}

	decoded := fec.ViterbiK3{}.Decode(pairs)
	if len(decoded) > DStarHeaderInfoBits {
		decoded = decoded[:DStarHeaderInfoBits]
	}
	return decoded
}

// VerifyDStarHeaderCRC checks a decoded 328-bit header's trailing CRC-16/X25
// (computed over the leading 39 octets / 312 bits) against the stored
// final 16 bits.
func VerifyDStarHeaderCRC(infoBits []byte) bool {
	if len(infoBits) < DStarHeaderInfoBits {
		return false
	}
	payload := infoBits[:DStarHeaderInfoBits-16]
	stored := infoBits[DStarHeaderInfoBits-16:]

	var storedVal uint64
	for _, b := range stored {
		storedVal = storedVal<<1 | uint64(b&1)
	}
	computed := fec.ComputeCRC(fec.CRC16X25, payload)
	return computed == storedVal
}

// DStarCallsignField extracts an ASCII callsign-length field from the
// header's byte-packed octets (bits [start*8, (start+length)*8)), matching
// S6's "callsign ASCII fields extracted from octets [3..27]" check.
func DStarCallsignField(infoBits []byte, startOctet, length int) string {
	out := make([]byte, length)
	for i := 0; i < length; i++ {
		octetBits := infoBits[(startOctet+i)*8 : (startOctet+i+1)*8]
		var v byte
		for _, b := range octetBits {
			v = v<<1 | (b & 1)
		}
		out[i] = v
	}
	return string(out)
}

// DStarHeaderFramer wraps the header scramble/interleave/Viterbi/CRC chain
// behind the shared Framer contract: ProcessBits receives the 660 channel
// bits following a DSTAR_HEADER sync and returns the decoded 328-bit
// header, tagged valid/invalid by its CRC.
type DStarHeaderFramer struct{}

// NewDStarHeaderFramer returns a stateless D-STAR header framer.
func NewDStarHeaderFramer() *DStarHeaderFramer { return &DStarHeaderFramer{} }

// Family reports frame.FamilyDSTAR.
func (f *DStarHeaderFramer) Family() frame.SyncFamily { return frame.FamilyDSTAR }

// ProcessBits decodes one D-STAR header's channel bits and verifies its
// CRC; a CRC mismatch is reported as a decode error rather than a silent
// reject, since the Viterbi stage already spent its error-correction budget.
func (f *DStarHeaderFramer) ProcessBits(bits []byte) (Frame, bool, error) {
	if len(bits) < DStarHeaderChannelBits {
		return Frame{}, false, fmt.Errorf("dstar: payload too short: %d (want >= %d)", len(bits), DStarHeaderChannelBits)
	}
	info := DecodeDStarHeader(bits[:DStarHeaderChannelBits])
	if !VerifyDStarHeaderCRC(info) {
		return Frame{}, false, fmt.Errorf("dstar: header CRC mismatch")
	}
	return Frame{Family: frame.FamilyDSTAR, Kind: "header", Payload: info}, true, nil
}
