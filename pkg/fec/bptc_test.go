package fec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBPTC196_RoundTripNoErrors(t *testing.T) {
	data := make([]byte, 96)
	for i := range data {
		data[i] = byte((i * 3) % 2)
	}
	encoded := EncodeBPTC196(data)
	require.Len(t, encoded, 196)

	got, errs, err := DecodeBPTC196(encoded)
	require.NoError(t, err)
	require.Equal(t, 0, errs)
	require.Equal(t, data, got)
}

func TestBPTC196_CorrectsSingleRowError(t *testing.T) {
	data := make([]byte, 96)
	for i := range data {
		data[i] = byte((i + 1) % 2)
	}
	encoded := EncodeBPTC196(data)

	matrix := DeinterleaveBPTC196(encoded)
	matrix[2][5] ^= 1
	corrupted := InterleaveBPTC196(matrix)

	got, errs, err := DecodeBPTC196(corrupted)
	require.NoError(t, err)
	require.GreaterOrEqual(t, errs, 1)
	require.Equal(t, data, got)
}

func TestBPTC196_RejectsWrongLength(t *testing.T) {
	_, _, err := DecodeBPTC196(make([]byte, 10))
	require.ErrorIs(t, err, ErrIrrecoverable)
}
