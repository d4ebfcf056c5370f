package dmr

import "github.com/dbehnke/trunkcore/pkg/fec"

// MBCMaxBlocks bounds Tier-III Multi-Block CSBK aggregation, per §4.4: an
// MBC PDU spans at most 4 blocks before the aggregate is considered
// complete or malformed.
const MBCMaxBlocks = 4

// MBCAggregator accumulates CSBK blocks belonging to one Multi-Block CSBK
// PDU until the last-block flag (LB) arrives, bounded to MBCMaxBlocks.
type MBCAggregator struct {
	blocks [][]byte
}

// Reset discards any partially-accumulated aggregate.
func (m *MBCAggregator) Reset() {
	m.blocks = m.blocks[:0]
}

// AddBlock appends a CSBK block. When lastBlock (LB) is set, the aggregate
// is flattened and CRC-16 checked; the aggregator resets regardless of the
// outcome so a malformed tail doesn't wedge subsequent PDUs.
func (m *MBCAggregator) AddBlock(data []byte, lastBlock bool) (complete bool, aggregated []byte, crcOK bool) {
	if len(m.blocks) >= MBCMaxBlocks {
		m.Reset()
		return false, nil, false
	}
	m.blocks = append(m.blocks, data)
	if !lastBlock {
		return false, nil, false
	}

	aggregated = make([]byte, 0)
	for _, b := range m.blocks {
		aggregated = append(aggregated, b...)
	}
	crcOK = checkAggregateCRC16(aggregated)
	m.Reset()
	return true, aggregated, crcOK
}

// checkAggregateCRC16 validates an MBC aggregate's trailing 16-bit CRC
// (last 16 bits of the aggregate, bit-per-byte) against the preceding
// payload. No original_source reference names the exact MBC CRC variant (0
// files kept); this reuses fec.CRC16CCITT, the catalogue's one generic
// CRC-16, rather than inventing new polynomial parameters.
func checkAggregateCRC16(aggregate []byte) bool {
	if len(aggregate) < 16 {
		return false
	}
	payload := aggregate[:len(aggregate)-16]
	stored := aggregate[len(aggregate)-16:]

	var storedVal uint64
	for _, b := range stored {
		storedVal = storedVal<<1 | uint64(b&1)
	}
	computed := fec.ComputeCRC(fec.CRC16CCITT, payload)
	return computed == storedVal
}
