package p25

import (
	"testing"

	"github.com/dbehnke/trunkcore/pkg/frame"
	"github.com/stretchr/testify/require"
)

func testIdenTable() *frame.IDENTable {
	t := frame.NewIDENTable()
	t.Set(1, frame.IDENEntry{BaseFreqUnits: 851000000 / 5, SpacingUnits: 100})
	return t
}

// S1. P25P1 MBT Network-Status decode.
func TestParseNetworkStatusBroadcast_S1(t *testing.T) {
	raw := []byte{
		0x17, 0x00, 0x01, 0x01, 0x23, 0x02, 0x3B, 0x00,
		0x00, 0x00, 0x00, 0x00, 0xAB, 0xCD, 0xE0, 0x10,
		0x0A,
	}
	op, err := Opcode(raw)
	require.NoError(t, err)
	require.Equal(t, OpcodeNetworkStatusBroadcast, op)

	nsb, err := ParseNetworkStatusBroadcast(raw, testIdenTable())
	require.NoError(t, err)
	require.Equal(t, uint32(0xABCDE), nsb.WACN)
	require.Equal(t, uint16(0x123), nsb.SYSID)
	require.EqualValues(t, 851125000, nsb.CCFreq)
}

// S2. P25P1 MBT RFSS-Status neighbour update.
func TestParseRFSSStatusBroadcast_S2(t *testing.T) {
	raw := make([]byte, 19)
	raw[6] = OpcodeRFSSStatusBroadcast
	raw[15], raw[16] = 0x10, 0x01 // CHAN-T = 0x1001
	raw[17], raw[18] = 0x10, 0x02 // CHAN-R = 0x1002

	op, err := Opcode(raw)
	require.NoError(t, err)
	require.Equal(t, OpcodeRFSSStatusBroadcast, op)

	rfss, err := ParseRFSSStatusBroadcast(raw, testIdenTable())
	require.NoError(t, err)
	require.Equal(t, []int64{851012500, 851025000}, rfss.Neighbours())
}

func TestParseNetworkStatusBroadcast_RejectsUnknownIden(t *testing.T) {
	raw := []byte{
		0x17, 0x00, 0x01, 0x01, 0x23, 0x02, 0x3B, 0x00,
		0x00, 0x00, 0x00, 0x00, 0xAB, 0xCD, 0xE0, 0x20,
		0x0A,
	}
	_, err := ParseNetworkStatusBroadcast(raw, testIdenTable())
	require.Error(t, err)
}
