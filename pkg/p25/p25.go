// Package p25 implements the P25 Phase 1 (FDMA C4FM, 4800 sym/s) framer:
// HDU/LDU/TDU/TDULC/TSBK/MBT/PDU extraction from a dibit stream, hex-word
// de-permutation, and the per-frame-type FEC catalogue from pkg/fec. Wire
// parsing follows the teacher's pkg/protocol/dmrd.go/lc.go style: fixed
// byte/field offsets into flat structs, generalized from DMR's one wire
// format to P25's several frame types.
package p25

import (
	"fmt"

	"github.com/dbehnke/trunkcore/pkg/fec"
)

// DUID identifies a P25 Phase 1 data unit, carried in the NID following
// every frame sync.
type DUID int

const (
	DUIDHDU   DUID = 0x0
	DUIDTDU   DUID = 0x3
	DUIDLDU1  DUID = 0x5
	DUIDTSBK  DUID = 0x7
	DUIDLDU2  DUID = 0xA
	DUIDPDU   DUID = 0xC
	DUIDTDULC DUID = 0xF
)

func (d DUID) String() string {
	switch d {
	case DUIDHDU:
		return "HDU"
	case DUIDTDU:
		return "TDU"
	case DUIDLDU1:
		return "LDU1"
	case DUIDTSBK:
		return "TSBK"
	case DUIDLDU2:
		return "LDU2"
	case DUIDPDU:
		return "PDU"
	case DUIDTDULC:
		return "TDULC"
	default:
		return fmt.Sprintf("DUID(%#x)", int(d))
	}
}

// ErrStatusMisaligned is returned when a status dibit is found somewhere
// other than every 35th data dibit — a sync error per §4.4.
var ErrStatusMisaligned = fmt.Errorf("p25: status dibit misaligned")

// StatusCounter tracks the every-35-data-dibits status-dibit insertion
// point in a P25 Phase 1 dibit stream: status dibits are ignored for
// content but must fall on the expected boundary, or the stream is
// desynchronized.
type StatusCounter struct {
	dataDibits int
}

// NextIsStatus reports whether the next dibit position is where a status
// dibit is expected (every 35 data dibits).
func (s *StatusCounter) NextIsStatus() bool {
	return s.dataDibits > 0 && s.dataDibits%35 == 0
}

// ConsumeData advances the counter for one data dibit.
func (s *StatusCounter) ConsumeData() {
	s.dataDibits++
}

// ConsumeStatus consumes the status dibit at the expected boundary,
// resetting the data-dibit count. Returns ErrStatusMisaligned if called
// when a status dibit wasn't expected.
func (s *StatusCounter) ConsumeStatus() error {
	if !s.NextIsStatus() {
		return ErrStatusMisaligned
	}
	s.dataDibits = 0
	return nil
}

// Reset clears the counter, used on sync loss/reacquisition.
func (s *StatusCounter) Reset() {
	s.dataDibits = 0
}

// hexWordDibitPermutation is the fixed index permutation extracting a
// 5-dibit (10-bit) hex word from the 8-dibit interleaved block it's
// transmitted in, per §4.4 ("extract hex words via a fixed dibit
// permutation"). The remaining 3 dibit positions belong to adjacent hex
// words in the same interleaved block.
var hexWordDibitPermutation = [5]int{0, 2, 4, 6, 7}

// ExtractHexWord pulls a 5-dibit (10-bit) hex word out of an interleaved
// 8-dibit block using the fixed permutation, then Hamming(10,6,3)-decodes
// it to 6 data bits (3 dibits) plus an error count.
func ExtractHexWord(block [8]byte) (data []byte, errorsFixed int, err error) {
	bits := make([]byte, 0, 10)
	for _, idx := range hexWordDibitPermutation {
		d := block[idx]
		bits = append(bits, (d>>1)&1, d&1)
	}
	return fec.Hamming1063.Decode(bits)
}
