package symbol

import "github.com/dbehnke/trunkcore/pkg/frame"

// IdealVector is the expected symbol-level vector for one sync pattern,
// expanded from its bit pattern to the DSP's 4-level (or 2-level,
// outer-only) symbol alphabet, per §4.2's "expanded to its ideal symbol
// vector (±3 for outer-only DMR; ±3,±1 for P25P2)".
type IdealVector struct {
	Sync   frame.SyncType
	Levels []float64
}

// CorrelatorEntry pairs a sync pattern with its ideal vector and
// per-protocol acceptance threshold.
type CorrelatorEntry struct {
	Vector    IdealVector
	Threshold float64
}

// SyncFound is the result of a successful correlation: the matched sync,
// its score, and the symbol offset within the history (oldest first) where
// it starts.
type SyncFound struct {
	Sync   frame.SyncType
	Score  float64
	Offset int
}

// Correlator tries protocol-specific sync patterns in a priority order
// driven by recently seen families (locality bias), per §4.2's scan().
type Correlator struct {
	entries  []CorrelatorEntry
	priority []frame.SyncFamily // families tried first, most-recent-first
}

// NewCorrelator builds a correlator over the given entries.
func NewCorrelator(entries []CorrelatorEntry) *Correlator {
	return &Correlator{entries: entries}
}

// Scan walks the configured sync patterns against the tail of hist,
// trying families bumped to the front by locality bias (each successful
// Scan bumps its family; ResetModulationState clears the bias) first, and
// returns the best-scoring pattern that clears its threshold
// with no other-family pattern scoring within a small margin.
func (c *Correlator) Scan(hist *History) (SyncFound, bool) {
	ordered := c.orderedEntries()

	const margin = 0.05
	var best CorrelatorEntry
	bestScore := -1.0
	var secondBestOtherFamily float64 = -1.0

	for _, e := range ordered {
		window := hist.Window(len(e.Vector.Levels))
		if len(window) < len(e.Vector.Levels) {
			continue
		}
		score := correlationScore(window, e.Vector.Levels)
		if score > bestScore {
			if bestScore >= 0 && best.Vector.Sync.Family != e.Vector.Sync.Family {
				secondBestOtherFamily = bestScore
			}
			bestScore = score
			best = e
		} else if e.Vector.Sync.Family != best.Vector.Sync.Family && score > secondBestOtherFamily {
			secondBestOtherFamily = score
		}
	}

	if bestScore < best.Threshold {
		return SyncFound{}, false
	}
	if secondBestOtherFamily >= 0 && bestScore-secondBestOtherFamily < margin {
		return SyncFound{}, false
	}

	c.bumpFamily(best.Vector.Sync.Family)
	return SyncFound{Sync: best.Vector.Sync, Score: bestScore, Offset: hist.Len() - len(best.Vector.Levels)}, true
}

// correlationScore is the inner product of the observed window and a
// pattern's ideal symbol vector, normalized by vector length.
func correlationScore(window []Symbol, ideal []float64) float64 {
	if len(window) != len(ideal) {
		return 0
	}
	var sum float64
	for i, sym := range window {
		sum += sym.Value * ideal[i]
	}
	return sum / float64(len(ideal))
}

// orderedEntries returns entries sorted so families in the priority list
// (most-recently-seen first) are tried before the rest, implementing the
// "priority order driven by recently seen families" rule.
func (c *Correlator) orderedEntries() []CorrelatorEntry {
	rank := make(map[frame.SyncFamily]int, len(c.priority))
	for i, fam := range c.priority {
		if _, exists := rank[fam]; !exists {
			rank[fam] = i
		}
	}
	out := make([]CorrelatorEntry, len(c.entries))
	copy(out, c.entries)
	// Stable insertion sort by rank (lower = higher priority; absent = last).
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && rankOf(rank, out[j-1].Vector.Sync.Family) > rankOf(rank, out[j].Vector.Sync.Family) {
			out[j-1], out[j] = out[j], out[j-1]
			j--
		}
	}
	return out
}

func rankOf(rank map[frame.SyncFamily]int, fam frame.SyncFamily) int {
	if r, ok := rank[fam]; ok {
		return r
	}
	return len(rank) + 1
}

func (c *Correlator) bumpFamily(fam frame.SyncFamily) {
	filtered := c.priority[:0:0]
	filtered = append(filtered, fam)
	for _, f := range c.priority {
		if f != fam {
			filtered = append(filtered, f)
		}
	}
	c.priority = filtered
}

// ResetModulationState forgets locality bias, per §4.2.
func (c *Correlator) ResetModulationState() {
	c.priority = nil
}
