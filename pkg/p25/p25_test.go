package p25

import (
	"testing"

	"github.com/dbehnke/trunkcore/pkg/fec"
	"github.com/stretchr/testify/require"
)

func encodeHexWordForTest(data []byte) []byte {
	return fec.Hamming1063.Encode(data)
}

func TestStatusCounter_ExpectsStatusEvery35DataDibits(t *testing.T) {
	var s StatusCounter
	for i := 0; i < 35; i++ {
		require.False(t, s.NextIsStatus())
		s.ConsumeData()
	}
	require.True(t, s.NextIsStatus())
	require.NoError(t, s.ConsumeStatus())
	require.False(t, s.NextIsStatus())
}

func TestStatusCounter_ConsumeStatusOffBoundaryErrors(t *testing.T) {
	var s StatusCounter
	s.ConsumeData()
	err := s.ConsumeStatus()
	require.ErrorIs(t, err, ErrStatusMisaligned)
}

func TestExtractHexWord_RoundTripNoErrors(t *testing.T) {
	data := []byte{1, 0, 1, 1, 0, 1}
	codeword := encodeHexWordForTest(data)
	var block [8]byte
	for i, idx := range hexWordDibitPermutation {
		bitHi, bitLo := codeword[i*2], codeword[i*2+1]
		block[idx] = bitHi<<1 | bitLo
	}
	out, errorsFixed, err := ExtractHexWord(block)
	require.NoError(t, err)
	require.Zero(t, errorsFixed)
	require.Equal(t, data, out)
}

func TestDUID_StringsAreDistinct(t *testing.T) {
	names := map[string]bool{}
	for _, d := range []DUID{DUIDHDU, DUIDTDU, DUIDLDU1, DUIDTSBK, DUIDLDU2, DUIDPDU, DUIDTDULC} {
		require.False(t, names[d.String()])
		names[d.String()] = true
	}
}
