package trunk

import (
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v4"
)

// neighbourListCapacity is the fixed 16-entry neighbour list size per §4.5.
const neighbourListCapacity = 16

// neighbourMaxAge sweeps entries older than this on access, per §4.5.
const neighbourMaxAge = 20 * time.Second

// NeighbourList tracks CC neighbour frequencies reported via
// NEIGHBOR_UPDATE, keyed by frequency so duplicate reports refresh rather
// than duplicate. Backed by xsync.Map per the design's "neighbour list"
// lock-free-map callout, since the list is populated from protocol-framer
// events but read by the control thread's hunting logic.
type NeighbourList struct {
	seen *xsync.Map[int64, time.Time]
}

// NewNeighbourList constructs an empty neighbour list.
func NewNeighbourList() *NeighbourList {
	return &NeighbourList{seen: xsync.NewMap[int64, time.Time]()}
}

// Update merges freqs into the list, refreshing the timestamp of any
// already-known frequency, then sweeps stale entries.
func (n *NeighbourList) Update(freqs []int64, now time.Time) {
	for _, f := range freqs {
		n.seen.Store(f, now)
	}
	n.sweep(now)
}

func (n *NeighbourList) sweep(now time.Time) {
	var stale []int64
	n.seen.Range(func(freq int64, seenAt time.Time) bool {
		if now.Sub(seenAt) > neighbourMaxAge {
			stale = append(stale, freq)
		}
		return true
	})
	for _, f := range stale {
		n.seen.Delete(f)
	}
}

// List returns the current (post-sweep) neighbour frequencies, capped at
// neighbourListCapacity entries.
func (n *NeighbourList) List(now time.Time) []int64 {
	n.sweep(now)
	out := make([]int64, 0, neighbourListCapacity)
	n.seen.Range(func(freq int64, _ time.Time) bool {
		if len(out) >= neighbourListCapacity {
			return false
		}
		out = append(out, freq)
		return true
	})
	return out
}

// CandidateList is the ordered CC candidate set HUNTING steps through,
// seeded from config plus NEIGHBOR_UPDATE, with a cooldown set (xsync.Map)
// recording candidates that failed their evaluation window.
type CandidateList struct {
	mu       sync.Mutex
	order    []int64
	nextIdx  int
	cooldown *xsync.Map[int64, time.Time]
}

// NewCandidateList seeds the ordered candidate list.
func NewCandidateList(seed []int64) *CandidateList {
	order := append([]int64(nil), seed...)
	return &CandidateList{order: order, cooldown: xsync.NewMap[int64, time.Time]()}
}

// Add appends a previously-unseen candidate frequency to the end of the
// order, preserving existing ordering (S4's A-then-B ordering guarantee).
func (c *CandidateList) Add(freq int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, f := range c.order {
		if f == freq {
			return
		}
	}
	c.order = append(c.order, freq)
}

// Cooldown marks freq as having failed its evaluation window, skippable
// until now+ttl.
func (c *CandidateList) Cooldown(freq int64, now time.Time, ttl time.Duration) {
	c.cooldown.Store(freq, now.Add(ttl))
}

func (c *CandidateList) isCoolingDown(freq int64, now time.Time) bool {
	until, ok := c.cooldown.Load(freq)
	if !ok {
		return false
	}
	if now.After(until) {
		c.cooldown.Delete(freq)
		return false
	}
	return true
}

// Next returns the next non-cooled-down candidate in order, advancing the
// cursor and wrapping around. Returns ok=false if every candidate is
// presently cooling down or the list is empty.
func (c *CandidateList) Next(now time.Time) (freq int64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.order)
	if n == 0 {
		return 0, false
	}
	for i := 0; i < n; i++ {
		idx := (c.nextIdx + i) % n
		f := c.order[idx]
		if c.isCoolingDown(f, now) {
			continue
		}
		c.nextIdx = (idx + 1) % n
		return f, true
	}
	return 0, false
}
