package p25

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHDU_RoundTripNoErrors(t *testing.T) {
	f := HDUFields{AlgID: 0xAA, KeyID: 0x1234, MI: [9]byte{1, 2, 3, 4, 5, 6, 7, 8, 9}}
	codeword := EncodeHDU(f)

	decoded, errorsFixed, err := DecodeHDU(codeword)
	require.NoError(t, err)
	require.Zero(t, errorsFixed)
	require.Equal(t, f, decoded)
}

func TestHDU_CorrectsSymbolErrors(t *testing.T) {
	f := HDUFields{AlgID: 0x01, KeyID: 0xBEEF, MI: [9]byte{9, 8, 7, 6, 5, 4, 3, 2, 1}}
	codeword := EncodeHDU(f)
	codeword[0] ^= 0x5A
	codeword[5] ^= 0x11

	decoded, errorsFixed, err := DecodeHDU(codeword)
	require.NoError(t, err)
	require.Positive(t, errorsFixed)
	require.Equal(t, f, decoded)
}

func TestLCW_RoundTripNoErrors(t *testing.T) {
	f := LCWFields{Opcode: 0x44, Data: [11]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}}
	codeword := EncodeLCW(f)

	decoded, errorsFixed, err := DecodeLCW(codeword)
	require.NoError(t, err)
	require.Zero(t, errorsFixed)
	require.Equal(t, f, decoded)
}

func TestCallState_TDUBlanksCallIdentity(t *testing.T) {
	var c CallState
	c.OnHDU(HDUFields{AlgID: 0xAA, KeyID: 1, MI: [9]byte{1}})
	c.SrcID, c.DstID = 100, 200
	require.True(t, c.CallOpen)

	c.OnTDU()
	require.False(t, c.CallOpen)
	require.Zero(t, c.AlgID)
	require.Zero(t, c.KeyID)
	require.Zero(t, c.SrcID)
	require.Zero(t, c.DstID)
}
