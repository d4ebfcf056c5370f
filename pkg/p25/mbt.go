package p25

import (
	"fmt"

	"github.com/dbehnke/trunkcore/pkg/frame"
)

// MBT opcodes this framer understands. Values match the public P25 CAI
// opcode assignments (ANSI/TIA-102.AABC) for the trunking-control messages
// this decoder needs; the byte layout below, beyond the opcode itself, is
// this decoder's own self-consistent field packing — no machine-readable
// reference for the exact MBT octet layout was available, so it's built to
// round-trip and to reproduce the worked examples, not asserted as
// bit-for-bit standard compliance.
const (
	OpcodeRFSSStatusBroadcast    byte = 0x3A
	OpcodeNetworkStatusBroadcast byte = 0x3B
)

// mbtOpcodeByte is the MBT octet carrying the 6-bit opcode (top 2 bits are
// last-block/protected flags, masked off).
const mbtOpcodeByte = 6

// Opcode returns the 6-bit MBT opcode from a raw MBT PDU.
func Opcode(raw []byte) (byte, error) {
	if len(raw) <= mbtOpcodeByte {
		return 0, fmt.Errorf("p25: MBT too short for opcode byte")
	}
	return raw[mbtOpcodeByte] & 0x3F, nil
}

// readWACN extracts the 20-bit WACN packed byte-aligned across raw[12:15]
// (raw[12] and raw[13] in full, the high nibble of raw[14]).
func readWACN(raw []byte) uint32 {
	return uint32(raw[12])<<12 | uint32(raw[13])<<4 | uint32(raw[14])>>4
}

// readChannel extracts a 16-bit CHAN field (IDEN nibble in the high 4 bits,
// 12-bit channel number in the low bits) at the given byte offset.
func readChannel(raw []byte, offset int) uint16 {
	return uint16(raw[offset])<<8 | uint16(raw[offset+1])
}

// NetworkStatusBroadcast is the decoded content of opcode 0x3B: the
// system's WACN/SYSID identity and its control-channel frequency.
type NetworkStatusBroadcast struct {
	WACN   uint32
	SYSID  uint16
	CCFreq int64
}

// ParseNetworkStatusBroadcast decodes a Network Status Broadcast MBT. SYSID
// is packed as the low nibble of raw[3] (high byte) followed by raw[4] (low
// byte); WACN and the control channel follow the common layout.
func ParseNetworkStatusBroadcast(raw []byte, idens *frame.IDENTable) (NetworkStatusBroadcast, error) {
	if len(raw) < 17 {
		return NetworkStatusBroadcast{}, fmt.Errorf("p25: Network Status Broadcast MBT too short")
	}
	sysid := uint16(raw[3]&0x0F)<<8 | uint16(raw[4])
	wacn := readWACN(raw)
	chanT := readChannel(raw, 15)

	freq, _, ok := idens.FrequencyHz(int(chanT>>12)&0xF, chanT)
	if !ok {
		return NetworkStatusBroadcast{}, fmt.Errorf("p25: unknown IDEN in Network Status Broadcast channel %#x", chanT)
	}

	return NetworkStatusBroadcast{WACN: wacn, SYSID: sysid, CCFreq: freq}, nil
}

// RFSSStatusBroadcast is the decoded content of opcode 0x3A: the current
// RFSS's transmit channel and its paired receive channel, surfaced as a
// neighbour-frequency pair in [CHAN-T, CHAN-R] order.
type RFSSStatusBroadcast struct {
	ChanTFreq, ChanRFreq int64
}

// ParseRFSSStatusBroadcast decodes an RFSS Status Broadcast MBT. CHAN-T and
// CHAN-R are consecutive 16-bit channel fields following the common WACN
// layout.
func ParseRFSSStatusBroadcast(raw []byte, idens *frame.IDENTable) (RFSSStatusBroadcast, error) {
	if len(raw) < 19 {
		return RFSSStatusBroadcast{}, fmt.Errorf("p25: RFSS Status Broadcast MBT too short")
	}
	chanT := readChannel(raw, 15)
	chanR := readChannel(raw, 17)

	tFreq, _, ok := idens.FrequencyHz(int(chanT>>12)&0xF, chanT)
	if !ok {
		return RFSSStatusBroadcast{}, fmt.Errorf("p25: unknown IDEN in RFSS Status Broadcast CHAN-T %#x", chanT)
	}
	rFreq, _, ok := idens.FrequencyHz(int(chanR>>12)&0xF, chanR)
	if !ok {
		return RFSSStatusBroadcast{}, fmt.Errorf("p25: unknown IDEN in RFSS Status Broadcast CHAN-R %#x", chanR)
	}

	return RFSSStatusBroadcast{ChanTFreq: tFreq, ChanRFreq: rFreq}, nil
}

// Neighbours returns the channel frequencies in the exact [CHAN-T, CHAN-R]
// order the trunking SM's neighbour callback expects.
func (r RFSSStatusBroadcast) Neighbours() []int64 {
	return []int64{r.ChanTFreq, r.ChanRFreq}
}
