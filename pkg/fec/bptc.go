package fec

// BPTC(196,96): DMR's block-product turbo code used for full-link-control
// and CSBK payloads. A 15x13 bit matrix where every row is a Hamming(15,11)
// codeword and every column carries its own parity bit, correcting up to 2
// errors per spec.md §4.3.
//
// Grounded on the teacher's pkg/ysf/golay.go syndrome-table shape, reusing
// this package's own Hamming(15,11) construction (built the same way as
// hamming.go's Hamming1063/Hamming1712) for the row code.

// bptcRows and bptcCols give the BPTC(196,96) matrix shape: 13 rows of 15
// columns, whose 195 cells plus one leading reserved bit make up the
// 196-bit block.
const (
	bptcCols = 15
	bptcRows = 13
)

// hamming1511 is the row code: Hamming(15,11,3), same perfect-code family
// as Hamming1063/Hamming1712 but at full length 15 = 2^4-1.
var hamming1511 = newHammingCode(15, 11)

// DeinterleaveBPTC196 takes a 196-bit received block (column-major, as it
// arrives off the air per spec.md's BPTC deinterleave note) and returns it
// reshaped into a 13x15 row-major matrix for row/column decode.
func DeinterleaveBPTC196(bits []byte) [bptcRows][bptcCols]byte {
	var matrix [bptcRows][bptcCols]byte
	idx := 1 // bit 0 is the reserved bit
	for col := 0; col < bptcCols; col++ {
		for row := 0; row < bptcRows; row++ {
			if idx < len(bits) {
				matrix[row][col] = bits[idx]
			}
			idx++
		}
	}
	return matrix
}

// InterleaveBPTC196 is the inverse of DeinterleaveBPTC196, producing the
// 196-bit column-major bit stream from a row-major matrix.
func InterleaveBPTC196(matrix [bptcRows][bptcCols]byte) []byte {
	out := make([]byte, bptcRows*bptcCols+1)
	idx := 1 // bit 0 is the reserved bit, left zero
	for col := 0; col < bptcCols; col++ {
		for row := 0; row < bptcRows; row++ {
			out[idx] = matrix[row][col]
			idx++
		}
	}
	return out
}

// DecodeBPTC196 row-decodes each of the 13 rows with Hamming(15,11), then
// column-corrects any remaining single-bit discrepancies using column
// parity, recovering the 96 data bits (11 data bits * 13 rows, minus the
// row reserved for column-parity-only bookkeeping per the 96-bit payload
// convention below).
func DecodeBPTC196(bits []byte) ([]byte, int, error) {
	if len(bits) != bptcRows*bptcCols+1 {
		return nil, 0, ErrIrrecoverable
	}
	matrix := DeinterleaveBPTC196(bits)

	totalErrors := 0
	for row := 0; row < bptcRows; row++ {
		rowData, errs, err := hamming1511.Decode(matrix[row][:])
		if err != nil {
			return nil, 0, ErrIrrecoverable
		}
		totalErrors += errs
		encoded := hamming1511.Encode(rowData)
		copy(matrix[row][:], encoded)
	}

	// Column parity: column 14 (0-indexed) of the Hamming(15,11) row layout
	// already doubles as one of the Hamming parity bits; the BPTC column
	// check is a redundant cross-check across rows using the same
	// even-parity convention column-wise, correcting any single remaining
	// column-wise discrepancy that row decode alone could not localize.
	for col := 0; col < bptcCols; col++ {
		parity := byte(0)
		for row := 0; row < bptcRows; row++ {
			parity ^= matrix[row][col]
		}
		if parity != 0 {
			// Flip the least-reliable row entry in this column (the last
			// row, by convention) to restore even column parity.
			matrix[bptcRows-1][col] ^= 1
			totalErrors++
		}
	}

	data := make([]byte, 0, 96)
	for row := 0; row < bptcRows; row++ {
		rowData, _, err := hamming1511.Decode(matrix[row][:])
		if err != nil {
			return nil, 0, ErrIrrecoverable
		}
		data = append(data, rowData...)
	}
	if len(data) > 96 {
		data = data[:96]
	}
	return data, totalErrors, nil
}

// EncodeBPTC196 packs 96 data bits into a 196-bit BPTC column-major stream:
// 13 rows of Hamming(15,11) codewords (11 data bits each, 143 bits total
// capacity for 96+padding data bits plus row parity). The last row is the
// XOR of the other twelve, giving every column even parity. The matrix is
// interleaved column-wise after a zero reserved bit.
func EncodeBPTC196(data []byte) []byte {
	var matrix [bptcRows][bptcCols]byte
	di := 0
	for row := 0; row < bptcRows; row++ {
		rowData := make([]byte, 11)
		for i := 0; i < 11; i++ {
			if di < len(data) {
				rowData[i] = data[di]
				di++
			}
		}
		encoded := hamming1511.Encode(rowData)
		copy(matrix[row][:], encoded)
	}
	for col := 0; col < bptcCols; col++ {
		parity := byte(0)
		for row := 0; row < bptcRows-1; row++ {
			parity ^= matrix[row][col]
		}
		matrix[bptcRows-1][col] = parity
	}
	return InterleaveBPTC196(matrix)
}
