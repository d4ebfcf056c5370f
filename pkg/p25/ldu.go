package p25

import (
	"github.com/dbehnke/trunkcore/pkg/fec"
	"github.com/dbehnke/trunkcore/pkg/frame"
)

// LDUVoiceFrame is one of the 9 IMBE voice frames (A-I) a LDU1/LDU2
// superframe carries, plus the hex-word error count accumulated decoding
// it.
type LDUVoiceFrame struct {
	IMBE         []byte // raw vocoder codeword bits, packed MSB-first per byte
	ErrorsFixed  int
	Irrecoverable bool
}

// DecodeLDUVoiceFrame Hamming(10,6,3)-decodes each hex-word block making up
// one IMBE voice frame and reassembles the corrected data bits.
func DecodeLDUVoiceFrame(blocks [][8]byte) LDUVoiceFrame {
	var out LDUVoiceFrame
	bits := make([]byte, 0, len(blocks)*6)
	for _, block := range blocks {
		data, errorsFixed, err := ExtractHexWord(block)
		if err == fec.ErrIrrecoverable {
			out.Irrecoverable = true
			continue
		}
		out.ErrorsFixed += errorsFixed
		bits = append(bits, data...)
	}
	out.IMBE = bitsToBytes(bits)
	return out
}

func bitsToBytes(bits []byte) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b != 0 {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

// BuildVoiceFrame wraps 9 decoded hex-word voice blocks for one slot in the
// protocol-agnostic Frame type.
func BuildVoiceFrame(slot int, voiceFrames []LDUVoiceFrame) frame.Frame {
	codecFrames := make([][]byte, len(voiceFrames))
	irrecoverable := false
	correctedBits := 0
	for i, vf := range voiceFrames {
		codecFrames[i] = vf.IMBE
		correctedBits += vf.ErrorsFixed
		if vf.Irrecoverable {
			irrecoverable = true
		}
	}
	return frame.Frame{
		Protocol: frame.ProtocolP25P1,
		Slot:     slot,
		Kind:     frame.KindVoice,
		Voice:    &frame.VoicePayload{Slot: slot, CodecFrames: codecFrames},
		FEC:      frame.FECStats{CorrectedBits: correctedBits, Irrecoverable: irrecoverable},
	}
}
