package fec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestViterbiK3_RoundTripNoErrors(t *testing.T) {
	data := []byte{1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 1, 0, 0, 0, 1}
	var v ViterbiK3
	pairs := v.Encode(data)
	got := v.Decode(pairs)
	require.Equal(t, data, got)
}

func TestViterbiK3_CorrectsIsolatedSymbolError(t *testing.T) {
	data := []byte{0, 1, 1, 0, 1, 0, 0, 1, 1, 0, 1, 1, 0, 0, 1, 1, 0}
	var v ViterbiK3
	pairs := v.Encode(data)

	// Flip one bit of one symbol to simulate a single demod error.
	pairs[5][0] ^= 1

	got := v.Decode(pairs)
	require.Equal(t, data, got)
}

func TestViterbiK5_StreamingRoundTripNoErrors(t *testing.T) {
	data := []byte{1, 1, 0, 0, 1, 0, 1, 1, 0, 0, 0, 1, 1, 0, 1, 0, 1, 1, 0, 0}
	symbols := EncodeK5(data)

	var v ViterbiK5
	for i, sym := range symbols {
		v.DecodeBit(sym[0], sym[1], i)
	}
	got := v.Chainback(len(data))
	require.Equal(t, data, got)
}

func TestViterbiK5_ResetClearsState(t *testing.T) {
	data := []byte{1, 0, 1, 0, 1, 0}
	symbols := EncodeK5(data)

	var v ViterbiK5
	for i, sym := range symbols {
		v.DecodeBit(sym[0], sym[1], i)
	}
	v.Reset()
	require.Empty(t, v.Chainback(5))
}
