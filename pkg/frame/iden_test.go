package frame

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestIDENTable_S1_NetworkStatus reproduces spec scenario S1: IDEN(1) =
// (FDMA, base=851000000/5, spacing=100), channel 10 resolves to
// 851125000 Hz.
func TestIDENTable_S1_NetworkStatus(t *testing.T) {
	table := NewIDENTable()
	table.Set(1, IDENEntry{BaseFreqUnits: 851000000 / 5, SpacingUnits: 100})

	freq, _, ok := table.FrequencyHz(1, 10)
	require.True(t, ok)
	require.Equal(t, int64(851125000), freq)
}

// TestIDENTable_S2_RFSSNeighbourUpdate reproduces spec scenario S2:
// CHAN-T=0x1001, CHAN-R=0x1002 against the same IDEN(1) resolve to
// [851012500, 851025000].
func TestIDENTable_S2_RFSSNeighbourUpdate(t *testing.T) {
	table := NewIDENTable()
	table.Set(1, IDENEntry{BaseFreqUnits: 851000000 / 5, SpacingUnits: 100})

	chanT := uint16(0x1001)
	chanR := uint16(0x1002)

	freqT, _, ok := table.FrequencyHz(1, chanT)
	require.True(t, ok)
	freqR, _, ok := table.FrequencyHz(1, chanR)
	require.True(t, ok)

	require.Equal(t, []int64{851012500, 851025000}, []int64{freqT, freqR})
}

func TestIDENTable_TDMASlotFromLowBit(t *testing.T) {
	table := NewIDENTable()
	table.Set(2, IDENEntry{BaseFreqUnits: 851000000 / 5, SpacingUnits: 100, TDMA: true})

	_, slot0, ok := table.FrequencyHz(2, 0x000A)
	require.True(t, ok)
	require.Equal(t, 0, slot0)

	_, slot1, ok := table.FrequencyHz(2, 0x000B)
	require.True(t, ok)
	require.Equal(t, 1, slot1)
}

func TestIDENTable_UnknownIdentifierFails(t *testing.T) {
	table := NewIDENTable()
	_, _, ok := table.FrequencyHz(5, 1)
	require.False(t, ok)
}
