package fec

// Generic Chase-II soft-decision helper shared by the Golay soft variants
// and the Reed-Solomon(63,35) soft/erasure variant. Enumerates flips of the
// k least-reliable bit positions and keeps the lowest-penalty candidate that
// a hard decoder accepts, per spec.md §4.3's Chase-II definition:
// penalty = sum(255-reliability[i]) over flipped positions.
//
// Grounded on the teacher's pkg/ysf/golay.go minimum-distance fallback,
// generalized into a reusable weak-bit enumerator.

// ChaseResult is the outcome of a single hard-decode trial during a Chase
// search.
type ChaseResult struct {
	Value   uint64
	Errs    int
	Penalty int
}

// ChaseSearch enumerates flips of the weakCount least reliable bit
// positions (up to maxWeight bits flipped at once), calling hardDecode on
// each trial codeword and keeping the lowest-penalty accepted result.
// flipBit must return a copy of codeword with bit index i (0 = most
// significant of the reliability slice) toggled.
func ChaseSearch(codeword uint64, reliability []byte, weakCount, maxWeight int, flipBit func(cw uint64, i int) uint64, hardDecode func(uint64) (uint64, int, error)) (ChaseResult, bool) {
	n := len(reliability)
	if weakCount > n {
		weakCount = n
	}
	weakest := weakestIndices(reliability, weakCount)

	best := ChaseResult{Penalty: -1}
	found := false

	for weight := 0; weight <= maxWeight && weight <= weakCount; weight++ {
		forEachCombination(weakest, weight, func(combo []int) {
			trial := codeword
			penalty := 0
			for _, idx := range combo {
				trial = flipBit(trial, idx)
				penalty += 255 - int(reliability[idx])
			}
			data, errs, err := hardDecode(trial)
			if err != nil {
				return
			}
			if !found || penalty < best.Penalty {
				best = ChaseResult{Value: data, Errs: errs, Penalty: penalty}
				found = true
			}
		})
	}

	return best, found
}

// weakestIndices returns the indices of the count lowest-reliability bytes.
func weakestIndices(reliability []byte, count int) []int {
	type pair struct {
		idx int
		rel byte
	}
	pairs := make([]pair, len(reliability))
	for i, r := range reliability {
		pairs[i] = pair{i, r}
	}
	// Simple insertion sort by reliability ascending; these slices are tiny
	// (<=66 symbols per spec.md §3), so O(n^2) is fine.
	for i := 1; i < len(pairs); i++ {
		j := i
		for j > 0 && pairs[j-1].rel > pairs[j].rel {
			pairs[j-1], pairs[j] = pairs[j], pairs[j-1]
			j--
		}
	}
	if count > len(pairs) {
		count = len(pairs)
	}
	out := make([]int, count)
	for i := 0; i < count; i++ {
		out[i] = pairs[i].idx
	}
	return out
}

// forEachCombination invokes fn for every combination of exactly weight
// elements chosen from items.
func forEachCombination(items []int, weight int, fn func(combo []int)) {
	if weight == 0 {
		fn(nil)
		return
	}
	n := len(items)
	combo := make([]int, weight)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == weight {
			fn(combo)
			return
		}
		for i := start; i < n; i++ {
			combo[depth] = items[i]
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
}
