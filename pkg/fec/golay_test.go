package fec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGolay23_RoundTripNoErrors(t *testing.T) {
	for data := uint32(0); data < 4096; data += 137 {
		cw := EncodeGolay23(data)
		got, errs, err := DecodeGolay23(cw)
		require.NoError(t, err)
		require.Equal(t, 0, errs)
		require.Equal(t, data, got)
	}
}

func TestGolay23_CorrectsUpToThreeErrors(t *testing.T) {
	data := uint32(0xABC)
	cw := EncodeGolay23(data)

	for w := 1; w <= 3; w++ {
		corrupted := cw
		for i := 0; i < w; i++ {
			corrupted ^= 1 << uint(i*5%23)
		}
		got, errs, err := DecodeGolay23(corrupted)
		require.NoErrorf(t, err, "weight %d", w)
		require.Equal(t, w, errs)
		require.Equal(t, data, got)
	}
}

func TestGolay23_FourErrorsEitherMiscorrectsOrFails(t *testing.T) {
	data := uint32(0x0F0)
	cw := EncodeGolay23(data)
	corrupted := cw
	for i := 0; i < 4; i++ {
		corrupted ^= 1 << uint(i*3)
	}
	got, _, err := DecodeGolay23(corrupted)
	if err == nil {
		require.NotEqual(t, data, got)
	}
}

func TestGolay24_RoundTripNoErrors(t *testing.T) {
	for data := uint32(0); data < 4096; data += 211 {
		cw := EncodeGolay24(data)
		require.Equal(t, 0, popcount32(cw)%2)
		got, errs, err := DecodeGolay24(cw)
		require.NoError(t, err)
		require.Equal(t, 0, errs)
		require.Equal(t, data, got)
	}
}

func TestGolay24_CorrectsThreeErrors(t *testing.T) {
	data := uint32(0x321)
	cw := EncodeGolay24(data)

	corrupted := cw ^ (1 << 0) ^ (1 << 6) ^ (1 << 13)
	got, errs, err := DecodeGolay24(corrupted)
	require.NoError(t, err)
	require.Equal(t, 3, errs)
	require.Equal(t, data, got)
}

func TestGolay24_SingleErrorInAppendedParityBit(t *testing.T) {
	data := uint32(0x777)
	cw := EncodeGolay24(data)
	corrupted := cw ^ 1 // flip the appended parity bit only
	got, errs, err := DecodeGolay24(corrupted)
	require.NoError(t, err)
	require.Equal(t, 1, errs)
	require.Equal(t, data, got)
}

func TestGolay24Shortened6_RoundTrip(t *testing.T) {
	for data6 := uint32(0); data6 < 64; data6++ {
		cw := EncodeGolay24Shortened6(data6)
		got, errs, err := DecodeGolay24Shortened6(cw)
		require.NoError(t, err)
		require.Equal(t, 0, errs)
		require.Equal(t, data6, got)
	}
}

func TestGolay20Shortened8_RoundTrip(t *testing.T) {
	for data8 := uint32(0); data8 < 256; data8++ {
		cw := EncodeGolay20Shortened8(data8)
		require.Equal(t, cw, cw&0xFFFFF, "codeword must fit in 20 bits")
		got, errs, err := DecodeGolay20Shortened8(cw)
		require.NoError(t, err)
		require.Equal(t, 0, errs)
		require.Equal(t, data8, got)
	}
}

func TestGolay20Shortened8_CorrectsThreeErrors(t *testing.T) {
	data8 := uint32(0xB5)
	cw := EncodeGolay20Shortened8(data8)

	corrupted := cw ^ (1 << 0) ^ (1 << 5) ^ (1 << 11)
	got, errs, err := DecodeGolay20Shortened8(corrupted)
	require.NoError(t, err)
	require.Equal(t, 3, errs)
	require.Equal(t, data8, got)
}

func TestSoftDecodeGolay23_PrefersLowReliabilityErrorExplanation(t *testing.T) {
	data := uint32(0x5A5)
	cw := EncodeGolay23(data)

	var reliability [23]byte
	for i := range reliability {
		reliability[i] = 200
	}
	// Flip a bit at a position we mark as low-reliability (likely the error).
	flipIdx := 10
	corrupted := cw ^ (1 << uint(22-flipIdx))
	reliability[flipIdx] = 10

	got, _, err := SoftDecodeGolay23(corrupted, reliability)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestSoftDecodeGolay24_NoErrorsReturnsSameData(t *testing.T) {
	data := uint32(0x123)
	cw := EncodeGolay24(data)
	var reliability [24]byte
	for i := range reliability {
		reliability[i] = 255
	}
	got, errs, err := SoftDecodeGolay24(cw, reliability)
	require.NoError(t, err)
	require.Equal(t, 0, errs)
	require.Equal(t, data, got)
}
