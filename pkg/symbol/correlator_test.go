package symbol

import (
	"testing"

	"github.com/dbehnke/trunkcore/pkg/frame"
	"github.com/stretchr/testify/require"
)

func TestCorrelator_ScanFindsMatchingPattern(t *testing.T) {
	p25sync, _ := frame.SyncByID(0)
	dmrSync, _ := frame.SyncByID(10)

	entries := []CorrelatorEntry{
		{Vector: IdealVector{Sync: p25sync, Levels: []float64{3, -3, 3, -3}}, Threshold: 2.5},
		{Vector: IdealVector{Sync: dmrSync, Levels: []float64{3, 3, -3, -3}}, Threshold: 2.5},
	}
	c := NewCorrelator(entries)

	h := NewHistory(128)
	for _, v := range []float64{3, -3, 3, -3} {
		h.Push(v, 255)
	}

	found, ok := c.Scan(h)
	require.True(t, ok)
	require.Equal(t, p25sync.ID, found.Sync.ID)
}

func TestCorrelator_NoMatchBelowThreshold(t *testing.T) {
	p25sync, _ := frame.SyncByID(0)
	entries := []CorrelatorEntry{
		{Vector: IdealVector{Sync: p25sync, Levels: []float64{3, -3, 3, -3}}, Threshold: 2.5},
	}
	c := NewCorrelator(entries)

	h := NewHistory(128)
	for _, v := range []float64{0.1, -0.1, 0.2, -0.2} {
		h.Push(v, 255)
	}

	_, ok := c.Scan(h)
	require.False(t, ok)
}

func TestCorrelator_ResetModulationStateClearsPriority(t *testing.T) {
	c := NewCorrelator(nil)
	c.priority = []frame.SyncFamily{frame.FamilyDMR}
	c.ResetModulationState()
	require.Nil(t, c.priority)
}
