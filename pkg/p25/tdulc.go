package p25

import (
	"fmt"

	"github.com/dbehnke/trunkcore/pkg/fec"
)

// LCWFields is the decoded Link Control Word carried by a TDULC (or an
// LDU2's embedded LC).
type LCWFields struct {
	Opcode byte
	Data   [11]byte
}

// DecodeLCW RS(24,12,13)-decodes the 24 GF(256) symbols of a TDULC/LDU2
// Link Control Word.
func DecodeLCW(symbols []int) (LCWFields, int, error) {
	data, errorsFixed, err := fec.RS24_12.Decode(symbols, nil)
	if err != nil {
		return LCWFields{}, 0, err
	}
	if len(data) < 12 {
		return LCWFields{}, 0, fmt.Errorf("p25: LCW short data payload (%d symbols)", len(data))
	}

	var f LCWFields
	f.Opcode = byte(data[0])
	for i := 0; i < 11; i++ {
		f.Data[i] = byte(data[i+1])
	}
	return f, errorsFixed, nil
}

// EncodeLCW packs Opcode/Data into the 12 RS data symbols and returns the
// full 24-symbol RS(24,12,13) codeword.
func EncodeLCW(f LCWFields) []int {
	data := make([]int, 12)
	data[0] = int(f.Opcode)
	for i := 0; i < 11; i++ {
		data[i+1] = int(f.Data[i])
	}
	return fec.RS24_12.Encode(data)
}

// CallState tracks the per-channel encryption/call-identity state a TDU
// resets and a TDULC's LCW updates.
type CallState struct {
	AlgID    byte
	KeyID    uint16
	MI       [9]byte
	SrcID    uint32
	DstID    uint32
	CallOpen bool
}

// OnHDU seeds call state from a decoded HDU at the start of a voice
// superframe.
func (c *CallState) OnHDU(f HDUFields) {
	c.AlgID, c.KeyID, c.MI = f.AlgID, f.KeyID, f.MI
	c.CallOpen = true
}

// OnTDU blanks the call-string and resets ALG/KEY/MI, per §4.4: "On TDU
// the call-strings are blanked and ALG/KEY/MI reset."
func (c *CallState) OnTDU() {
	c.AlgID = 0
	c.KeyID = 0
	c.MI = [9]byte{}
	c.SrcID, c.DstID = 0, 0
	c.CallOpen = false
}

// OnTDULC marks the call closed; the LCW's fields are not copied into the
// call state. Per §4.4 it does not force a CC return
// even when LCW decoding failed — callers should invoke this only when
// decode succeeded, and otherwise leave trunking-SM behaviour untouched by
// simply not calling it.
func (c *CallState) OnTDULC(f LCWFields) {
	c.CallOpen = false
}
