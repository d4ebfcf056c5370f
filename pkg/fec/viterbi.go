package fec

// Convolutional Viterbi decoders: K=3 rate-1/2 poly(7,5) for D-STAR header
// FEC, and a streaming K=5 rate-1/2 decoder for DMR embedded signalling /
// short-burst data, per spec.md §3's "Reed-Solomon / Viterbi / Golay state"
// invariant (the streaming variant must expose reset/decode_bit/chainback
// so callers can feed it symbol-by-symbol as frames arrive).
//
// Grounded on the teacher's pkg/ysf/convolution.go: same FSM-table
// trellis-decode shape (precomputed next-state/output tables driving a
// path-metric walk), generalized from YSF's fixed encoder to a
// parametrized-K Viterbi with explicit traceback.

// ViterbiK3 decodes the D-STAR header convolutional code: K=3, rate 1/2,
// generator polynomials G0=0b111 (7 octal), G1=0b101 (5 octal).
type ViterbiK3 struct{}

const (
	k3States = 4 // 2^(K-1)
	k3G0     = 0x7
	k3G1     = 0x5
)

// Decode runs hard-decision Viterbi over a sequence of received bit pairs
// (each entry is (bit0, bit1) packed as 2 bits, bit0 in the high position)
// and returns the decoded data bits, traced back from the best-metric final
// state. No tail-biting or zero-tail assumption is made beyond walking the
// full trellis and picking the globally best end state.
func (ViterbiK3) Decode(pairs [][2]byte) []byte {
	return viterbiDecode(pairs, k3States, k3G0, k3G1, 2)
}

// Encode produces the (bit0,bit1) output pairs for a data-bit sequence,
// used by tests and by loopback self-check paths.
func (ViterbiK3) Encode(data []byte) [][2]byte {
	return viterbiEncode(data, k3G0, k3G1, 2)
}

// ViterbiK5 is the DMR K=5 rate-1/2 streaming decoder (generator
// polynomials 0x19, 0x1B in the MIL-STD-188 numbering used by spec.md §4.3),
// exposing an explicit Reset/DecodeBit/Chainback API so embedded signalling
// can be fed bit-by-bit as it arrives across multiple bursts.
type ViterbiK5 struct {
	pathMetric  [k5States]int
	predecessor [][k5States]int8 // per-step, per-state best predecessor
	inputBit    [][k5States]byte // per-step, per-state input bit that reached it
}

const (
	k5States = 16 // 2^(K-1)
	k5G0     = 0x19
	k5G1     = 0x1B
)

// Reset clears streaming decode state.
func (v *ViterbiK5) Reset() {
	for i := range v.pathMetric {
		v.pathMetric[i] = 0
	}
	v.predecessor = v.predecessor[:0]
	v.inputBit = v.inputBit[:0]
}

// DecodeBit feeds one received (s0, s1) symbol pair into the trellis,
// extending all survivor paths by one bit-time after the previous call;
// pos is not used.
func (v *ViterbiK5) DecodeBit(s0, s1 byte, pos int) {
	newMetric := [k5States]int{}
	var predStep [k5States]int8
	var bitStep [k5States]byte
	for s := range newMetric {
		newMetric[s] = -1
	}

	for state := 0; state < k5States; state++ {
		for _, bit := range []byte{0, 1} {
			nextState, o0, o1 := k5Transition(state, bit)
			metric := v.pathMetric[state] + hamm2(o0, o1, s0, s1)
			if newMetric[nextState] == -1 || metric < newMetric[nextState] {
				newMetric[nextState] = metric
				predStep[nextState] = int8(state)
				bitStep[nextState] = bit
			}
		}
	}
	v.pathMetric = newMetric
	v.predecessor = append(v.predecessor, predStep)
	v.inputBit = append(v.inputBit, bitStep)
	_ = pos
}

// Chainback traces back from the best-metric final state over the last
// length bit-times and returns the decoded data bits in forward order.
func (v *ViterbiK5) Chainback(length int) []byte {
	if length > len(v.predecessor) {
		length = len(v.predecessor)
	}
	best, bestMetric := 0, -1
	for s, m := range v.pathMetric {
		if bestMetric == -1 || m < bestMetric {
			bestMetric = m
			best = s
		}
	}

	out := make([]byte, length)
	state := best
	for i := length - 1; i >= 0; i-- {
		step := len(v.predecessor) - (length - i)
		out[i] = v.inputBit[step][state]
		state = int(v.predecessor[step][state])
	}
	return out
}

// EncodeK5 produces the (s0,s1) symbol sequence for a data-bit sequence
// using the same K5 generator polynomials DecodeBit expects, for tests and
// loopback self-checks.
func EncodeK5(data []byte) [][2]byte {
	state := 0
	out := make([][2]byte, 0, len(data))
	for _, bit := range data {
		next, o0, o1 := k5Transition(state, bit&1)
		out = append(out, [2]byte{o0, o1})
		state = next
	}
	return out
}

func k5Transition(state int, bit byte) (nextState int, o0, o1 byte) {
	reg := (int(bit) << 4) | state
	o0 = byte(popcount32(uint32(reg&k5G0)) & 1)
	o1 = byte(popcount32(uint32(reg&k5G1)) & 1)
	nextState = reg >> 1
	return
}

func hamm2(o0, o1, s0, s1 byte) int {
	d := 0
	if o0 != s0 {
		d++
	}
	if o1 != s1 {
		d++
	}
	return d
}

// viterbiEncode is a small generic rate-1/2 convolutional encoder shared by
// tests and by the K3 Encode helper above. state holds the K-1 most recent
// bits (newest in the high position); each step the incoming bit is
// prepended to form the K-bit register used to compute both outputs, then
// the oldest state bit is dropped.
func viterbiEncode(data []byte, g0, g1 int, stateBits int) [][2]byte {
	state := 0
	out := make([][2]byte, 0, len(data))
	stateMask := (1 << stateBits) - 1
	for _, bit := range data {
		reg := (int(bit&1) << stateBits) | state
		o0 := byte(popcount32(uint32(reg&g0)) & 1)
		o1 := byte(popcount32(uint32(reg&g1)) & 1)
		out = append(out, [2]byte{o0, o1})
		state = (reg >> 1) & stateMask
	}
	return out
}

// viterbiDecode is a generic small-K Viterbi decoder used by ViterbiK3.
// stateBits is log2(numStates), i.e. K-1.
func viterbiDecode(pairs [][2]byte, numStates, g0, g1 int, stateBits int) []byte {
	metric := make([]int, numStates)
	for i := range metric {
		if i == 0 {
			metric[i] = 0
		} else {
			metric[i] = 1 << 20
		}
	}
	predecessor := make([][]int8, len(pairs))
	inputBit := make([][]byte, len(pairs))

	for t, pair := range pairs {
		newMetric := make([]int, numStates)
		predStep := make([]int8, numStates)
		bitStep := make([]byte, numStates)
		for s := range newMetric {
			newMetric[s] = -1
		}
		for state := 0; state < numStates; state++ {
			if metric[state] >= 1<<20 {
				continue
			}
			for _, bit := range []byte{0, 1} {
				reg := (int(bit) << stateBits) | state
				o0 := byte(popcount32(uint32(reg&g0)) & 1)
				o1 := byte(popcount32(uint32(reg&g1)) & 1)
				nextState := (reg >> 1) & (numStates - 1)
				m := metric[state] + hamm2(o0, o1, pair[0], pair[1])
				if newMetric[nextState] == -1 || m < newMetric[nextState] {
					newMetric[nextState] = m
					predStep[nextState] = int8(state)
					bitStep[nextState] = bit
				}
			}
		}
		for s := range newMetric {
			if newMetric[s] == -1 {
				newMetric[s] = 1 << 20
			}
		}
		metric = newMetric
		predecessor[t] = predStep
		inputBit[t] = bitStep
	}

	best, bestMetric := 0, metric[0]
	for s, m := range metric {
		if m < bestMetric {
			bestMetric = m
			best = s
		}
	}

	out := make([]byte, len(pairs))
	state := best
	for t := len(pairs) - 1; t >= 0; t-- {
		out[t] = inputBit[t][state]
		state = int(predecessor[t][state])
	}
	return out
}
