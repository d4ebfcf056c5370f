package fec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHamming_RoundTripNoErrors(t *testing.T) {
	for _, code := range []HammingCode{Hamming1063, Hamming1712} {
		data := make([]byte, code.K)
		for i := range data {
			data[i] = byte(i % 2)
		}
		cw := code.Encode(data)
		require.Len(t, cw, code.N)

		out, errs, err := code.Decode(cw)
		require.NoError(t, err)
		require.Equal(t, 0, errs)
		require.Equal(t, data, out)
	}
}

func TestHamming_CorrectsSingleBitError(t *testing.T) {
	for _, code := range []HammingCode{Hamming1063, Hamming1712} {
		data := make([]byte, code.K)
		for i := range data {
			data[i] = byte((i + 1) % 2)
		}
		cw := code.Encode(data)

		for flip := 0; flip < code.N; flip++ {
			corrupted := make([]byte, len(cw))
			copy(corrupted, cw)
			corrupted[flip] ^= 1

			out, errs, err := code.Decode(corrupted)
			require.NoError(t, err)
			require.Equal(t, 1, errs)
			require.Equal(t, data, out)
		}
	}
}
