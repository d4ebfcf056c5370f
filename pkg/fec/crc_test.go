package fec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeCRC_Deterministic(t *testing.T) {
	bits := CRCBytesToBits([]byte{0x12, 0x34, 0x56})
	a := ComputeCRC(CRC16CCITT, bits)
	b := ComputeCRC(CRC16CCITT, bits)
	require.Equal(t, a, b)
}

func TestComputeCRC_SingleBitFlipChangesResult(t *testing.T) {
	params := []CRCParams{CRC7, CRC8, CRC9DMR, CRC12P25, CRC16CCITT, CRC16X25, CRC32MBF}
	base := CRCBytesToBits([]byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02})

	for _, p := range params {
		orig := ComputeCRC(p, base)
		flipped := make([]byte, len(base))
		copy(flipped, base)
		flipped[3] ^= 1
		altered := ComputeCRC(p, flipped)
		require.NotEqualf(t, orig, altered, "width %d CRC failed to detect single-bit flip", p.Width)
	}
}

func TestComputeCRC_ZeroMessageWithZeroInitIsXorOut(t *testing.T) {
	// With an all-zero message and a zero-init, non-reflected CRC, the
	// register never takes a nonzero top bit, so the raw remainder is 0 and
	// the output is exactly XorOut.
	bits := make([]byte, 32)
	got := ComputeCRC(CRC16CCITT, bits)
	require.Equal(t, CRC16CCITT.XorOut, got)
}

func TestComputeCRC_DMR9AppendedToDifferentInfoDiffers(t *testing.T) {
	infoA := CRCBytesToBits([]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A})
	infoB := make([]byte, len(infoA))
	copy(infoB, infoA)
	infoB[0] ^= 1

	crcA := ComputeCRC(CRC9DMR, infoA)
	crcB := ComputeCRC(CRC9DMR, infoB)
	require.NotEqual(t, crcA, crcB)
}
