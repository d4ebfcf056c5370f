package fec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrellis34_RoundTripNoErrors(t *testing.T) {
	tribits := make([]byte, 49)
	for i := range tribits {
		tribits[i] = byte(i % 8)
	}
	var codec Trellis34
	dibits := codec.EncodeBlock(tribits)
	require.Len(t, dibits, 98)

	got, err := codec.DecodeBlock(dibits)
	require.NoError(t, err)
	require.Equal(t, tribits, got)
}

func TestTrellis34_OddLengthDibitsRejected(t *testing.T) {
	var codec Trellis34
	_, err := codec.DecodeBlock(make([]byte, 3))
	require.ErrorIs(t, err, ErrIrrecoverable)
}

func TestMBF34_RoundTripValidCRC(t *testing.T) {
	payload := make([]byte, 16)
	for i := range payload {
		payload[i] = byte(i * 17)
	}
	block := MBF34Block{DBSN: 0x55 & 0x7F, Payload: payload}

	dibits := EncodeMBF34(block)
	require.Len(t, dibits, 98)

	got, err := DecodeMBF34(dibits)
	require.NoError(t, err)
	require.Equal(t, block.DBSN, got.DBSN)
	require.Equal(t, block.Payload, got.Payload)
}

func TestMBF34_TailFillerTribitIsZero(t *testing.T) {
	// Regression test for the documented open-question decision: the 49th
	// tribit (index 48) beyond info+CRC's 144 bits (48 tribits) carries no
	// payload and must always encode as zero.
	payload := make([]byte, 16)
	block := MBF34Block{DBSN: 0, Payload: payload}
	dibits := EncodeMBF34(block)

	tribits, err := Trellis34{}.DecodeBlock(dibits)
	require.NoError(t, err)
	require.Equal(t, byte(0), tribits[48])
}

func TestMBF34_CorruptedCRCIsRejected(t *testing.T) {
	payload := make([]byte, 16)
	for i := range payload {
		payload[i] = byte(i + 1)
	}
	block := MBF34Block{DBSN: 12, Payload: payload}
	dibits := EncodeMBF34(block)

	// Flip a payload dibit to invalidate the CRC.
	dibits[20] ^= 1

	_, err := DecodeMBF34(dibits)
	require.ErrorIs(t, err, ErrIrrecoverable)
}
