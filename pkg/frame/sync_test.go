package frame

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSyncByID_KnownIDsResolve(t *testing.T) {
	s, ok := SyncByID(0)
	require.True(t, ok)
	require.Equal(t, FamilyP25P1, s.Family)
	require.Equal(t, PolarityPositive, s.Polarity)

	inv, ok := SyncByID(1)
	require.True(t, ok)
	require.Equal(t, FamilyP25P1, inv.Family)
	require.Equal(t, PolarityNegative, inv.Polarity)
}

func TestSyncByID_NoneSentinel(t *testing.T) {
	none, ok := SyncByID(-1)
	require.True(t, ok)
	require.Equal(t, FamilyNone, none.Family)
}

func TestSyncsForFamily_DMRHasBothPolaritiesAcrossBSAndMS(t *testing.T) {
	dmrSyncs := SyncsForFamily(FamilyDMR)
	require.NotEmpty(t, dmrSyncs)

	var sawPositive, sawNegative bool
	for _, s := range dmrSyncs {
		if s.Polarity == PolarityPositive {
			sawPositive = true
		} else {
			sawNegative = true
		}
	}
	require.True(t, sawPositive)
	require.True(t, sawNegative)
}

func TestSyncRegistry_IDsAreUnique(t *testing.T) {
	seen := map[int]bool{}
	for _, s := range SyncRegistry {
		require.Falsef(t, seen[s.ID], "duplicate sync ID %d", s.ID)
		seen[s.ID] = true
	}
}
