package p25

import (
	"fmt"

	"github.com/dbehnke/trunkcore/pkg/fec"
)

// HDUFields is the decoded content of a Header Data Unit: the encryption
// algorithm, key, and message indicator seeding the voice superframe that
// follows.
type HDUFields struct {
	AlgID byte
	KeyID uint16
	MI    [9]byte
}

// DecodeHDU RS(24,16,9)-decodes the HDU's 24 GF(256) symbols and unpacks
// the 16 data symbols into AlgID/KeyID/MI.
func DecodeHDU(symbols []int) (HDUFields, int, error) {
	data, errorsFixed, err := fec.RS24_16.Decode(symbols, nil)
	if err != nil {
		return HDUFields{}, 0, err
	}
	if len(data) < 16 {
		return HDUFields{}, 0, fmt.Errorf("p25: HDU short data payload (%d symbols)", len(data))
	}

	var f HDUFields
	for i := 0; i < 9; i++ {
		f.MI[i] = byte(data[i])
	}
	f.AlgID = byte(data[9])
	f.KeyID = uint16(data[10])<<8 | uint16(data[11])
	return f, errorsFixed, nil
}

// EncodeHDU packs AlgID/KeyID/MI into the 16 RS data symbols and returns
// the full 24-symbol RS(24,16,9) codeword.
func EncodeHDU(f HDUFields) []int {
	data := make([]int, 16)
	for i := 0; i < 9; i++ {
		data[i] = int(f.MI[i])
	}
	data[9] = int(f.AlgID)
	data[10] = int(f.KeyID >> 8)
	data[11] = int(f.KeyID & 0xFF)
	return fec.RS24_16.Encode(data)
}
