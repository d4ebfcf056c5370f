package dmr

import "github.com/dbehnke/trunkcore/pkg/fec"

// FLCO is the Full Link Control Opcode identifying a Full LC PDU's meaning.
type FLCO byte

const (
	FLCOGroupVoice     FLCO = 0x00
	FLCOUnitToUnit     FLCO = 0x03
	FLCOTalkerAlias    FLCO = 0x04
	FLCOTalkerAliasCont FLCO = 0x05
	FLCOGPSInfo        FLCO = 0x06
)

// FullLC is a decoded 9-byte Full Link Control PDU: FLCO, 24-bit
// destination, 24-bit source, carried (after BPTC(196,96) correction and
// deinterleave) in a voice LC header/terminator or a data PDU.
//
// Field layout generalizes the teacher's ParseVoiceLCHeader byte breakdown
// (FLCO in bits 5-0 of byte 0, 24-bit big-endian dest, 24-bit big-endian
// src) from its clear-payload simplification into a real BPTC-196-protected
// decode.
type FullLC struct {
	FLCO   FLCO
	DstID  uint32
	SrcID  uint32
	Option byte // teacher's reserved bytes 7-8, carried as a single option byte
}

// DecodeFullLC deinterleaves and BPTC(196,96)-decodes a 196-bit Full LC
// burst payload into its 9-byte (72-bit) field, then parses the FLCO/dest/
// src layout.
func DecodeFullLC(bits []byte) (FullLC, int, error) {
	if len(bits) < 196 {
		return FullLC{}, 0, errTooShort("Full LC", 196, len(bits))
	}
	data, errorsFixed, err := fec.DecodeBPTC196(bits[:196])
	if err != nil {
		return FullLC{}, errorsFixed, err
	}
	if len(data) < 72 {
		return FullLC{}, errorsFixed, errTooShort("Full LC payload", 72, len(data))
	}

	b := bitsToBytes9(data)
	lc := FullLC{
		FLCO:  FLCO(b[0] & 0x3F),
		DstID: uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]),
		SrcID: uint32(b[4])<<16 | uint32(b[5])<<8 | uint32(b[6]),
		Option: b[7],
	}
	return lc, errorsFixed, nil
}

// EncodeFullLC packs a FullLC into its 9-byte wire layout, interleaves, and
// BPTC(196,96)-encodes it into a 196-bit burst payload.
func EncodeFullLC(lc FullLC) []byte {
	b := [9]byte{
		byte(lc.FLCO) & 0x3F,
		byte(lc.DstID >> 16), byte(lc.DstID >> 8), byte(lc.DstID),
		byte(lc.SrcID >> 16), byte(lc.SrcID >> 8), byte(lc.SrcID),
		lc.Option,
		0,
	}
	data := bytes9ToBits(b)
	return fec.EncodeBPTC196(data)
}

// bitsToBytes9 packs 72 bit-per-byte values MSB-first into 9 bytes.
func bitsToBytes9(bits []byte) [9]byte {
	var out [9]byte
	for i := 0; i < 9 && (i+1)*8 <= len(bits); i++ {
		out[i] = bitsToByte(bits[i*8 : i*8+8])
	}
	return out
}

// bytes9ToBits unpacks 9 bytes into 72 bit-per-byte values MSB-first.
func bytes9ToBits(b [9]byte) []byte {
	out := make([]byte, 72)
	for i, v := range b {
		for bit := 0; bit < 8; bit++ {
			out[i*8+bit] = (v >> (7 - bit)) & 1
		}
	}
	return out
}
