package symbol

// Permutation is one of the 24 mappings of received dibits {0..3} to
// logical dibits {0..3} (a permutation of S4), per §4.2's CQPSK
// constellation-permutation recovery.
type Permutation [4]byte

// Permutations is the closed set of all 24 dibit permutations, in
// lexicographic order.
var Permutations = buildPermutations()

// phaseRotationIndices are the 4 QPSK phase-rotation permutation indices
// tried in the second search stage, per §4.2: in lexicographic order they
// are the cyclic shifts 0123, 1230, 2301 and 3012.
var phaseRotationIndices = [4]int{0, 9, 16, 18}

func buildPermutations() []Permutation {
	base := [4]byte{0, 1, 2, 3}
	var out []Permutation
	var perm func(arr [4]byte, k int)
	perm = func(arr [4]byte, k int) {
		if k == len(arr) {
			var p Permutation
			copy(p[:], arr[:])
			out = append(out, p)
			return
		}
		for i := k; i < len(arr); i++ {
			// Move arr[i] to position k, keeping the rest in order, so the
			// output comes out lexicographically sorted.
			next := arr
			copy(next[k+1:i+1], arr[k:i])
			next[k] = arr[i]
			perm(next, k+1)
		}
	}
	perm(base, 0)
	return out
}

// Apply maps a received dibit through the permutation to its logical value.
func (p Permutation) Apply(received byte) byte {
	return p[received&0x3]
}

// hammingDistanceOver applies perm to each received dibit and counts how
// many differ from the corresponding expected logical dibit.
func hammingDistanceOver(perm Permutation, received, expected []byte) int {
	d := 0
	for i := range received {
		if perm.Apply(received[i]) != expected[i] {
			d++
		}
	}
	return d
}

// SearchPath identifies which stage of the permutation search accepted the
// result, per §4.2's "(permutation_index, hamming_distance, search_path)".
type SearchPath int

const (
	SearchLocked SearchPath = iota
	SearchEarlyAccept
	SearchExhaustive
	SearchFailed
)

// PermutationState tracks the currently accepted permutation across sync
// windows, mirroring the single-atomic-word (index, best_hamming) pair of
// §5's concurrency model (the atomicity itself belongs to the caller, which
// serializes access to this struct or wraps it for cross-thread use).
type PermutationState struct {
	Index        int
	BestHamming  int
	HasLock      bool
}

// FindPermutation runs the 3-stage CQPSK constellation recovery of §4.2:
// locked fast path, then the 4 phase rotations, then an exhaustive scan.
// Threshold scales with sync length: pass earlyAcceptMax=2 and
// lockedMax=1 at the documented sync-length-proportional values (24 for
// P25P1, 20 for P25P2) computed by the caller.
func (s *PermutationState) FindPermutation(received, expected []byte, lockedMax, earlyAcceptMax int) (index int, hamming int, path SearchPath) {
	if s.HasLock {
		d := hammingDistanceOver(Permutations[s.Index], received, expected)
		if d <= lockedMax {
			s.BestHamming = d
			return s.Index, d, SearchLocked
		}
	}

	bestIdx, bestD := -1, len(received)+1
	for _, idx := range phaseRotationIndices {
		d := hammingDistanceOver(Permutations[idx], received, expected)
		if d < bestD {
			bestIdx, bestD = idx, d
		}
	}
	if bestD <= earlyAcceptMax {
		s.Index, s.BestHamming, s.HasLock = bestIdx, bestD, true
		return bestIdx, bestD, SearchEarlyAccept
	}

	bestIdx, bestD = -1, len(received)+1
	for idx, perm := range Permutations {
		d := hammingDistanceOver(perm, received, expected)
		if d < bestD {
			bestIdx, bestD = idx, d
		}
	}
	if bestIdx == -1 {
		return 0, 0, SearchFailed
	}
	s.Index, s.BestHamming, s.HasLock = bestIdx, bestD, true
	return bestIdx, bestD, SearchExhaustive
}

// EncodeWord packs (index, best_hamming) into the single 64-bit atomic
// word described in §5's concurrency model, for cross-thread CAS updates.
func EncodeWord(index, bestHamming int) uint64 {
	return (uint64(uint32(index)) << 32) | uint64(uint32(bestHamming))
}

// DecodeWord is the inverse of EncodeWord.
func DecodeWord(word uint64) (index, bestHamming int) {
	return int(int32(word >> 32)), int(int32(word & 0xFFFFFFFF))
}

// AcceptsUpdate implements §5's CAS acceptance policy: "accept strictly
// better hamming, or equal hamming with a different index (phase-rotation
// slip)".
func AcceptsUpdate(currentIndex, currentHamming, newIndex, newHamming int) bool {
	if newHamming < currentHamming {
		return true
	}
	return newHamming == currentHamming && newIndex != currentIndex
}
