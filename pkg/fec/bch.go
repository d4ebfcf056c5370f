package fec

// BCH(63,16,11) over GF(2^6), used by P25 NID decode (spec.md §4.3: "BCH
// over GF(2^6), corrects up to 11 errors via Berlekamp-Massey + Chien
// search"). The field has primitive polynomial x^6+x+1 (0x43 in binary,
// degree-6 form 0x03 below the implicit leading bit).
//
// Grounded on the teacher's pkg/ysf/convolution.go FSM-table approach for
// the general shape (precomputed tables driving a streaming decode), but
// BCH error-locator search has no direct teacher analogue, so the
// Berlekamp-Massey/Chien-search machinery below is a direct, textbook
// implementation of the documented algorithm (see DESIGN.md).

const (
	bchGF6Order   = 63 // 2^6 - 1, nonzero elements of GF(64)
	bchGF6PrimPoly = 0x43 // x^6 + x + 1
	bchN          = 63
	bchK          = 16
	bchT          = 11 // error-correcting capability
)

// gf6 holds GF(2^6) log/antilog tables built once at init.
type gf6Tables struct {
	expTable [2 * bchGF6Order]int // alpha^i, i in [0, 2*(n-1)] to avoid modulo in products
	logTable [bchGF6Order + 1]int // logTable[x] = i such that alpha^i = x, logTable[0] unused
}

var gf6 gf6Tables

func init() {
	// Build GF(64) with primitive polynomial x^6+x+1.
	reg := 1
	for i := 0; i < bchGF6Order; i++ {
		gf6.expTable[i] = reg
		gf6.logTable[reg] = i
		reg <<= 1
		if reg&(1<<6) != 0 {
			reg ^= bchGF6PrimPoly | (1 << 6)
		}
	}
	for i := bchGF6Order; i < 2*bchGF6Order; i++ {
		gf6.expTable[i] = gf6.expTable[i-bchGF6Order]
	}
	bchGenPoly = buildBCHGenPoly()
}

func gf6Mul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return gf6.expTable[gf6.logTable[a]+gf6.logTable[b]]
}

func gf6Inv(a int) int {
	if a == 0 {
		return 0
	}
	return gf6.expTable[bchGF6Order-gf6.logTable[a]]
}

func gf6Pow(a, e int) int {
	if a == 0 {
		return 0
	}
	e = ((e % bchGF6Order) + bchGF6Order) % bchGF6Order
	return gf6.expTable[(gf6.logTable[a]*e)%bchGF6Order]
}

// bchGenPoly is the degree-47 generator polynomial for BCH(63,16,11): 48
// GF(64) coefficients, lowest degree first, each 0 or 1. init builds it with
// buildBCHGenPoly, after the field tables exist, from the minimal
// polynomials of the odd powers alpha^1..alpha^21 (standard narrow-sense
// BCH construction; their roots cover alpha^1..alpha^22).
var bchGenPoly []int

// buildBCHGenPoly constructs the BCH generator polynomial as the LCM of the
// minimal polynomials of alpha^1, alpha^3, ..., alpha^(2t-1) over GF(64).
func buildBCHGenPoly() []int {
	seen := map[int]bool{}
	roots := []int{}
	for i := 1; i <= 2*bchT-1; i += 2 {
		for _, r := range bchConjugates(i) {
			if !seen[r] {
				seen[r] = true
				roots = append(roots, r)
			}
		}
	}
	// Build poly = product over roots r of (x - alpha^r), coefficients in GF(64).
	poly := []int{1}
	for _, r := range roots {
		root := gf6.expTable[r]
		next := make([]int, len(poly)+1)
		for i, c := range poly {
			next[i] ^= gf6Mul(c, root)
			next[i+1] ^= c
		}
		poly = next
	}
	return poly
}

// bchConjugates returns the conjugacy class {i*2^j mod 63} for exponent i.
func bchConjugates(i int) []int {
	seen := map[int]bool{}
	var out []int
	e := i % bchGF6Order
	for {
		if seen[e] {
			break
		}
		seen[e] = true
		out = append(out, e)
		e = (e * 2) % bchGF6Order
	}
	return out
}

// EncodeBCH systematically encodes 16 data bits into a 63-bit BCH codeword
// (data in the high 16 bits, the low 47 bits are the remainder).
func EncodeBCH(data uint64) uint64 {
	data &= (1 << bchK) - 1
	shifted := data << uint(bchN-bchK)
	rem := bchPolyMod(shifted, bchGenPoly)
	return shifted | rem
}

// bchPolyMod computes shifted mod genPoly over GF(2) (binary polynomial
// division, genPoly given as GF(64) coefficients which are all 0/1 for this
// binary BCH code since it's a narrow-sense binary BCH).
func bchPolyMod(value uint64, genPoly []int) uint64 {
	degGen := len(genPoly) - 1
	reg := value
	for deg := bchN - 1; deg >= degGen; deg-- {
		if reg&(1<<uint(deg)) != 0 {
			for i, c := range genPoly {
				if c&1 != 0 {
					reg ^= 1 << uint(deg-degGen+i)
				}
			}
		}
	}
	return reg & ((1 << uint(degGen)) - 1)
}

// DecodeBCH corrects up to 11 bit errors in a 63-bit BCH codeword via
// syndrome computation, Berlekamp-Massey, and Chien search.
func DecodeBCH(codeword uint64) (data uint64, errorsFixed int, err error) {
	codeword &= (1 << bchN) - 1

	syndromes := make([]int, 2*bchT)
	anyNonzero := false
	for j := 1; j <= 2*bchT; j++ {
		s := bchEvalAtAlphaPow(codeword, j)
		syndromes[j-1] = s
		if s != 0 {
			anyNonzero = true
		}
	}
	if !anyNonzero {
		return codeword >> uint(bchN-bchK), 0, nil
	}

	locator := berlekampMassey(syndromes)
	roots := chienSearch(locator)
	if len(roots) == 0 || len(roots) != len(locator)-1 {
		return 0, 0, ErrIrrecoverable
	}

	corrected := codeword
	for _, pos := range roots {
		corrected ^= 1 << uint(pos)
	}

	// Verify: recompute syndromes of the corrected word; must all be zero.
	for j := 1; j <= 2*bchT; j++ {
		if bchEvalAtAlphaPow(corrected, j) != 0 {
			return 0, 0, ErrIrrecoverable
		}
	}

	return corrected >> uint(bchN-bchK), len(roots), nil
}

// bchEvalAtAlphaPow evaluates the received codeword (as a GF(2) polynomial
// in x, bit i = coefficient of x^i) at x = alpha^j over GF(64).
func bchEvalAtAlphaPow(codeword uint64, j int) int {
	acc := 0
	for i := 0; i < bchN; i++ {
		if codeword&(1<<uint(i)) != 0 {
			acc ^= gf6Pow(gf6.expTable[1], i*j) // alpha^(i*j)
		}
	}
	return acc
}

// berlekampMassey computes the error-locator polynomial from the syndrome
// sequence over GF(64). Returns coefficients with locator[0] = 1.
func berlekampMassey(syndromes []int) []int {
	n := len(syndromes)
	c := make([]int, n+1)
	b := make([]int, n+1)
	c[0], b[0] = 1, 1
	l, m := 0, 1
	bb := 1

	for i := 0; i < n; i++ {
		delta := syndromes[i]
		for j := 1; j <= l; j++ {
			delta ^= gf6Mul(c[j], syndromes[i-j])
		}
		if delta == 0 {
			m++
			continue
		}
		t := make([]int, len(c))
		copy(t, c)

		coef := gf6Mul(delta, gf6Inv(bb))
		for j := 0; j < len(b); j++ {
			idx := j + m
			if idx < len(c) {
				c[idx] ^= gf6Mul(coef, b[j])
			}
		}
		if 2*l <= i {
			l = i + 1 - l
			b = t
			bb = delta
			m = 1
		} else {
			m++
		}
	}
	return c[:l+1]
}

// chienSearch finds the roots of the error-locator polynomial by brute-force
// evaluation at every nonzero field element, returning the corresponding bit
// positions in the received codeword.
func chienSearch(locator []int) []int {
	var positions []int
	for i := 0; i < bchN; i++ {
		// Evaluate locator at alpha^(-i), a root means bit position i has an error.
		x := gf6Pow(gf6.expTable[1], -i)
		acc := 0
		xPow := 1
		for _, c := range locator {
			acc ^= gf6Mul(c, xPow)
			xPow = gf6Mul(xPow, x)
		}
		if acc == 0 {
			positions = append(positions, i)
		}
	}
	return positions
}
