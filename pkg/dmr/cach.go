package dmr

import "github.com/dbehnke/trunkcore/pkg/fec"

// LCSS identifies a CACH short-link-control fragment's position within a
// 4-burst superframe.
type LCSS int

const (
	LCSSSingleFragment LCSS = iota
	LCSSFirstFragment
	LCSSLastFragment
	LCSSContinuation
)

// CACH is the 24-bit common-announcement channel field preceding every DMR
// burst: talker-change flag, slot-access-type bit, the 2-bit LCSS fragment
// position, and a 20-bit short-LC payload protected by Hamming(17,12,3). No
// original_source reference pins the exact CACH bit ordering (0 files kept),
// so this follows the field breakdown the teacher's pkg/protocol/sync.go
// uses for embedded signalling as a self-consistent convention.
type CACH struct {
	TalkerChange bool
	AccessType   bool
	LCSS         LCSS
	Payload      [20]byte // bit-per-byte, MSB-first
}

// DecodeCACH unpacks a 24-bit CACH field from its bit-per-byte
// representation (bits[0] is the MSB, sync-adjacent bit).
func DecodeCACH(bits []byte) (CACH, error) {
	if len(bits) < 24 {
		return CACH{}, errTooShort("CACH", 24, len(bits))
	}
	c := CACH{
		TalkerChange: bits[0] == 1,
		AccessType:   bits[1] == 1,
		LCSS:         LCSS(bits[2]<<1 | bits[3]),
	}
	copy(c.Payload[:], bits[4:24])
	return c, nil
}

// DecodeSLCO decodes a single-fragment (LCSS==LCSSSingleFragment) short link
// control opcode from a CACH's 20-bit payload via Hamming(17,12,3): the
// first 17 payload bits carry the Hamming codeword, yielding a corrected
// 12-bit field split as a 4-bit opcode followed by 8 bits of argument.
func DecodeSLCO(c CACH) (opcode, arg byte, errorsFixed int, err error) {
	if c.LCSS != LCSSSingleFragment {
		return 0, 0, 0, errWrongFragment("SLCO", c.LCSS)
	}
	data, fixed, decErr := fec.Hamming1712.Decode(c.Payload[:17])
	if decErr != nil {
		return 0, 0, fixed, decErr
	}
	opcode = bitsToByte(data[0:4])
	arg = bitsToByte(data[4:12])
	return opcode, arg, fixed, nil
}

// bitsToByte packs up to 8 bit-per-byte values (0/1) MSB-first into a byte.
func bitsToByte(bits []byte) byte {
	var v byte
	for _, b := range bits {
		v = v<<1 | (b & 1)
	}
	return v
}
