package proto

import (
	"fmt"
	"strings"

	"github.com/dbehnke/trunkcore/pkg/fec"
	"github.com/dbehnke/trunkcore/pkg/frame"
)

// ysfHeaderLength is the byte span of a YSF frame's FICH-plus-data-channel
// area following its 5-byte sync word, matching MMDVM_CM's YSFDefines.h
// frame layout.
const ysfHeaderLength = 120

// ysfCallsignLength is the fixed width of a YSF callsign field.
const ysfCallsignLength = 10

// Frame Information (FI) values, carried in the FICH's low 2 bits.
const (
	ysfFIHeader        = 0x00
	ysfFICommunication = 0x01
	ysfFITerminator    = 0x02
	ysfFITestFrame     = 0x03
)

// ysfFICH is the decoded Frame Information Channel Header: the FI/CS/CM/BN/BT
// fields that tag what a YSF frame carries and where it sits in a multi-block
// transfer.
type ysfFICH struct {
	FI byte
	CS byte
	CM byte
	BN byte
	BT byte
}

// decode extracts and Golay(20,8)-corrects the FICH from payload, which must
// be at least 48 bytes. The 20-bit codeword lives at a fixed
// byte offset in the FICH area; correction capacity (up to 3 bit errors) is
// fec.DecodeGolay20Shortened8's.
func (f *ysfFICH) decode(payload []byte) (bool, error) {
	if len(payload) < 48 {
		return false, fmt.Errorf("ysf: payload too short for FICH decode: %d", len(payload))
	}

	codeword := uint32(payload[4])<<12 | uint32(payload[5])<<4 | uint32(payload[6])>>4
	data, _, err := fec.DecodeGolay20Shortened8(codeword & 0xFFFFF)
	if err != nil {
		return false, nil
	}

	f.FI = byte(data & 0x03)
	f.CS = byte((data >> 2) & 0x03)
	f.CM = byte((data >> 4) & 0x03)
	f.BN = byte((data >> 6) & 0x01)
	f.BT = byte((data >> 7) & 0x01)
	return true, nil
}

// encode writes f's fields into payload's FICH area, the inverse of decode.
// Used only by tests to build synthetic frames.
func (f *ysfFICH) encode(payload []byte) error {
	if len(payload) < 48 {
		return fmt.Errorf("ysf: payload too short for FICH encode: %d", len(payload))
	}
	data := uint32(f.FI&0x03) | uint32(f.CS&0x03)<<2 | uint32(f.CM&0x03)<<4 |
		uint32(f.BN&0x01)<<6 | uint32(f.BT&0x01)<<7
	codeword := fec.EncodeGolay20Shortened8(data)
	payload[4] = byte(codeword >> 12)
	payload[5] = byte(codeword >> 4)
	payload[6] = byte(codeword<<4) & 0xF0
	return nil
}

// decodeYSFHeaderCallsigns reads the source and destination callsigns out of
// a YSF header frame's CSD1/CSD2 data-channel fields (bytes 20-59 of the
// payload, following MMDVM_CM's YSFPayload.cpp layout), trimming trailing
// pad spaces.
func decodeYSFHeaderCallsigns(payload []byte) (source, dest string, ok bool) {
	if len(payload) < 60 {
		return "", "", false
	}
	csd1 := payload[20:40]
	csd2 := payload[40:60]

	source = strings.TrimRight(string(csd1[10:20]), " ")
	dest = strings.TrimRight(string(csd2[0:10]), " ")
	return source, dest, source != ""
}

// YSFFramer implements the shared Framer contract for YSF (§4.4): it
// decodes each frame's FICH to classify it by Frame Information type, and
// for header frames also recovers the source/destination callsigns.
type YSFFramer struct {
	fich ysfFICH
}

// NewYSFFramer returns a YSFFramer ready to process consecutive frames; a
// single instance carries no cross-frame state beyond its decode scratch
// buffer, so it is safe to reuse across a session.
func NewYSFFramer() *YSFFramer {
	return &YSFFramer{}
}

// Family reports frame.FamilyYSF.
func (f *YSFFramer) Family() frame.SyncFamily { return frame.FamilyYSF }

// ProcessBits decodes one YSF frame's FICH and, for header frames, its
// source/destination callsigns, returning a Frame tagged by YSF's own
// Frame Information (FI) field.
func (f *YSFFramer) ProcessBits(bits []byte) (Frame, bool, error) {
	if len(bits) < ysfHeaderLength {
		return Frame{}, false, fmt.Errorf("ysf: payload too short: %d", len(bits))
	}

	ok, err := f.fich.decode(bits)
	if err != nil {
		return Frame{}, false, err
	}
	if !ok {
		return Frame{}, false, nil
	}

	fr := Frame{Family: frame.FamilyYSF, Kind: ysfFrameKind(f.fich.FI), Payload: bits}

	if f.fich.FI == ysfFIHeader {
		if source, dest, valid := decodeYSFHeaderCallsigns(bits); valid {
			fr.Kind = fmt.Sprintf("header src=%s dst=%s", source, dest)
		}
	}

	return fr, true, nil
}

func ysfFrameKind(fi byte) string {
	switch fi {
	case ysfFIHeader:
		return "header"
	case ysfFICommunication:
		return "voice"
	case ysfFITerminator:
		return "terminator"
	case ysfFITestFrame:
		return "test"
	default:
		return "unknown"
	}
}
