// Package reedsolomon implements a universal Reed-Solomon errors-and-erasures
// codec over GF(2^p), 2 <= p <= 16.
package reedsolomon

import "sync"

// Symbol is an element of GF(2^p): an unsigned integer in [0, fieldSize).
type Symbol = uint16

// Field is an immutable Galois field GF(2^cExp), built from a primitive
// polynomial and a field generator. Once constructed it never changes and
// is safe for concurrent readers.
type Field struct {
	expTable []uint16 // antilog table, duplicated: len == 2*fieldCharac
	logTable []uint16 // log table; logTable[0] is never read

	prim      int
	generator int
	cExp      int

	fieldSize   int // 2^cExp
	fieldCharac int // fieldSize - 1
}

// NewField builds the log/antilog tables for GF(2^cExp) from a primitive
// polynomial prim and a field generator. It fails with InvalidParameter if
// generator is out of range or prim does not generate every nonzero field
// element exactly once (i.e. is not primitive of degree cExp).
func NewField(prim, generator, cExp int) (*Field, error) {
	if cExp < 2 || cExp > 16 {
		return nil, newParamError(KindInvalidParameter, "c_exp", cExp, 16, "reedsolomon: c_exp must be between 2 and 16")
	}
	if bitLength(prim)-1 != cExp {
		return nil, newParamError(KindInvalidParameter, "prim", prim, cExp, "reedsolomon: prim degree does not match c_exp")
	}
	fieldSize := 1 << uint(cExp)
	fieldCharac := fieldSize - 1
	if generator < 2 || generator >= fieldSize {
		return nil, newParamError(KindInvalidParameter, "generator", generator, fieldSize-1, "reedsolomon: generator out of range for field")
	}

	expTable := make([]uint16, fieldCharac*2)
	logTable := make([]uint16, fieldSize)
	seen := make([]bool, fieldSize)

	x := 1
	for i := 0; i < fieldCharac; i++ {
		if seen[x] {
			return nil, newParamError(KindInvalidParameter, "prim", prim, 0, "reedsolomon: prim is not a primitive polynomial for this generator/c_exp")
		}
		seen[x] = true
		expTable[i] = uint16(x)
		logTable[x] = uint16(i)
		x = mulNoLUT(x, generator, prim, fieldSize, true)
	}
	if x != 1 {
		return nil, newParamError(KindInvalidParameter, "prim", prim, 0, "reedsolomon: prim does not cycle back to the identity")
	}
	for i := fieldCharac; i < fieldCharac*2; i++ {
		expTable[i] = expTable[i-fieldCharac]
	}

	return &Field{
		expTable:    expTable,
		logTable:    logTable,
		prim:        prim,
		generator:   generator,
		cExp:        cExp,
		fieldSize:   fieldSize,
		fieldCharac: fieldCharac,
	}, nil
}

// FieldSize reports 2^cExp.
func (f *Field) FieldSize() int { return f.fieldSize }

// FieldCharac reports fieldSize - 1, the period of the field's nonzero
// elements and the maximum codeword length for this field.
func (f *Field) FieldCharac() int { return f.fieldCharac }

// CExp reports the field's exponent p in GF(2^p).
func (f *Field) CExp() int { return f.cExp }

// Prim reports the primitive polynomial the field was built from.
func (f *Field) Prim() int { return f.prim }

// Generator reports the field generator alpha.
func (f *Field) Generator() int { return f.generator }

// mulNoLUT is the bootstrap carry-less multiplier used to build the log/exp
// tables before they exist, and as a reference implementation used to
// cross-check the table-driven Mul. carryless selects XOR-based (field)
// accumulation versus plain integer addition (used only by tests).
func mulNoLUT(x, y, prim, fieldSizeFull int, carryless bool) int {
	r := 0
	for y > 0 {
		if y&1 != 0 {
			if carryless {
				r ^= x
			} else {
				r += x
			}
		}
		y >>= 1
		x <<= 1
		if prim > 0 && x&fieldSizeFull != 0 {
			x ^= prim
		}
	}
	return r
}

// MulNoLUT exposes the bootstrap multiplier for low-level callers and tests
// that want to cross-check Mul without going through the lookup tables.
func MulNoLUT(x, y, prim, fieldSizeFull int, carryless bool) int {
	return mulNoLUT(x, y, prim, fieldSizeFull, carryless)
}

// Add is addition in GF(2^p): XOR, since the field has characteristic 2.
func (f *Field) Add(a, b Symbol) Symbol { return a ^ b }

// Sub is identical to Add in characteristic 2.
func (f *Field) Sub(a, b Symbol) Symbol { return a ^ b }

// Neg is the identity in characteristic 2: -a == a.
func (f *Field) Neg(a Symbol) Symbol { return a }

// Mul multiplies two symbols using the log/antilog tables.
func (f *Field) Mul(a, b Symbol) Symbol {
	if a == 0 || b == 0 {
		return 0
	}
	return f.expTable[int(f.logTable[a])+int(f.logTable[b])]
}

// Div divides a by b, failing with DivisionByZero if b is zero.
func (f *Field) Div(a, b Symbol) (Symbol, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	if a == 0 {
		return 0, nil
	}
	idx := (int(f.logTable[a]) + f.fieldCharac - int(f.logTable[b])) % f.fieldCharac
	return f.expTable[idx], nil
}

// Pow raises a to the (possibly negative) integer power p.
func (f *Field) Pow(a Symbol, p int) Symbol {
	lp := int(f.logTable[a]) * p
	lp %= f.fieldCharac
	if lp < 0 {
		lp += f.fieldCharac
	}
	return f.expTable[lp]
}

// Inverse returns the multiplicative inverse of a nonzero symbol.
func (f *Field) Inverse(a Symbol) Symbol {
	return f.expTable[f.fieldCharac-int(f.logTable[a])]
}

// ValidateSymbol fails with SymbolOutOfRange if s is not an element of this
// field, i.e. s >= field_size. Mul/Div/Pow/Inverse index their tables
// directly and assume every operand already passed this check; callers
// ingesting raw symbol data (EncodeMsg, CalcSyndromes) run it first so an
// out-of-range symbol fails cleanly instead of indexing past the table.
func (f *Field) ValidateSymbol(s Symbol) error {
	if int(s) >= f.fieldSize {
		return newParamError(KindSymbolOutOfRange, "symbol", int(s), f.fieldSize-1, "reedsolomon: symbol out of range for field")
	}
	return nil
}

func validateSymbols(msg []Symbol, f *Field) error {
	for _, s := range msg {
		if err := f.ValidateSymbol(s); err != nil {
			return err
		}
	}
	return nil
}

// FindPrimePolys enumerates the primitive polynomials of degree cExp for the
// given field generator. Candidates are the odd integers in
// [fieldSize, 2*fieldSize); a candidate is primitive iff repeatedly
// multiplying by generator and reducing by it visits every nonzero field
// element exactly once before returning to 1. When fastPrimes is set, only
// candidates that are themselves prime integers are considered (a heuristic
// filter, not a correctness requirement). When single is set, the search
// stops at the first hit.
func FindPrimePolys(generator, cExp int, fastPrimes, single bool) ([]int, error) {
	if cExp < 2 || cExp > 16 {
		return nil, newParamError(KindInvalidParameter, "c_exp", cExp, 16, "reedsolomon: c_exp must be between 2 and 16")
	}
	fieldSize := 1 << uint(cExp)
	var out []int
	for prim := fieldSize + 1; prim < 2*fieldSize; prim += 2 {
		if fastPrimes && !isPrimeInt(prim) {
			continue
		}
		if isPrimitive(prim, generator, fieldSize) {
			out = append(out, prim)
			if single {
				return out, nil
			}
		}
	}
	return out, nil
}

func isPrimitive(prim, generator, fieldSize int) bool {
	fieldCharac := fieldSize - 1
	seen := make([]bool, fieldSize)
	x := 1
	for i := 0; i < fieldCharac; i++ {
		if x == 0 || seen[x] {
			return false
		}
		seen[x] = true
		x = mulNoLUT(x, generator, prim, fieldSize, true)
	}
	return x == 1
}

func isPrimeInt(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// defaultField is the process-wide, best-effort field cache backing the
// free-function legacy API (see legacy.go). It is not a requirement of the
// core engine, which always takes an explicit *Field.
var (
	defaultFieldMu sync.RWMutex
	defaultField   *Field
)
