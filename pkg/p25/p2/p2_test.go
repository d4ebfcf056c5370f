package p2

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuperframe_PushDibitStopsAtCaptureDibits(t *testing.T) {
	var sf Superframe
	for i := 0; i < SuperframeCaptureDibits; i++ {
		require.True(t, sf.PushDibit(byte(i%4), 200))
	}
	require.True(t, sf.Full())
	require.False(t, sf.PushDibit(1, 200))
	require.Equal(t, SuperframeCaptureDibits, sf.CaptureLen())
}

func TestSuperframe_ResetClearsCaptureAndBuffers(t *testing.T) {
	var sf Superframe
	sf.PushDibit(3, 10)
	sf.Descrambled[0] = 1
	sf.Reset()
	require.Zero(t, sf.CaptureLen())
	require.False(t, sf.Full())
	require.Zero(t, sf.Descrambled[0])
}

func TestScrambler_DescrambleInvertsScramble(t *testing.T) {
	enc := NewScrambler(0xABCDE, 0x123, 0x293)
	dec := NewScrambler(0xABCDE, 0x123, 0x293)

	plain := make([]byte, 64)
	for i := range plain {
		plain[i] = byte(i % 2)
	}

	scrambled := make([]byte, len(plain))
	enc.Process(plain, scrambled)

	descrambled := make([]byte, len(plain))
	dec.Process(scrambled, descrambled)

	require.Equal(t, plain, descrambled)
}

func TestScrambler_DistinctSeedsProduceDistinctKeystreams(t *testing.T) {
	a := NewScrambler(0xABCDE, 0x123, 0x293)
	b := NewScrambler(0xABCDE, 0x123, 0x294)

	plain := make([]byte, 32)
	outA := make([]byte, len(plain))
	outB := make([]byte, len(plain))
	a.Process(plain, outA)
	b.Process(plain, outB)

	require.NotEqual(t, outA, outB)
}

func TestMACState_SignalOnOneSlotDoesNotClearOtherSlotVoiceActive(t *testing.T) {
	m := NewMACState()
	m.Observe(0, MACOpcodePTTGrant)
	require.True(t, m.Slot(0).VoiceActive)

	m.Observe(1, MACOpcodeSignal)
	require.Equal(t, 1, m.ActiveSlot)
	require.True(t, m.Slot(0).VoiceActive, "slot 0 voice_active must survive a MAC_SIGNAL on slot 1")
	require.False(t, m.Slot(1).VoiceActive)
}

func TestMACState_EndPTTClearsOnlyItsOwnSlot(t *testing.T) {
	m := NewMACState()
	m.Observe(0, MACOpcodePTTGrant)
	m.Observe(1, MACOpcodePTTGrant)

	m.Observe(0, MACOpcodeEndPTT)
	require.False(t, m.Slot(0).VoiceActive)
	require.True(t, m.Slot(1).VoiceActive)
}

func TestDecodeFACCH_RoundTripNoErrors(t *testing.T) {
	data := make([]int, 35)
	for i := range data {
		data[i] = i % 64
	}
	codeword := EncodeFACCH(data)

	decoded, errorsFixed, err := DecodeFACCH(codeword, nil)
	require.NoError(t, err)
	require.Zero(t, errorsFixed)
	require.Equal(t, data, decoded)
}

func TestDecodeFACCH_UsesReliabilityAsErasures(t *testing.T) {
	data := make([]int, 35)
	for i := range data {
		data[i] = (i * 3) % 64
	}
	codeword := EncodeFACCH(data)

	// Corrupt one symbol, but mark it unreliable so it is treated as an
	// erasure instead of burning the error-correction budget.
	codeword[4] ^= 0x3F
	reliability := make([]byte, len(codeword))
	for i := range reliability {
		reliability[i] = 255
	}
	reliability[4] = 0

	decoded, _, err := DecodeFACCH(codeword, reliability)
	require.NoError(t, err)
	require.Equal(t, data, decoded)
}

func TestBuildControlFrame_CarriesOpcodeAndFECStats(t *testing.T) {
	f := BuildControlFrame(1, 0x3B, []int{1, 2, 3}, 2, false)
	require.Equal(t, 1, f.Slot)
	require.Equal(t, 0x3B, f.Trunk.Opcode)
	require.True(t, f.Trunk.CRCOK)
	require.Equal(t, 2, f.FEC.CorrectedBits)
}
