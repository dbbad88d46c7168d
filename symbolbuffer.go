package reedsolomon

// SymbolBuffer is a mutable, indexable sequence of field symbols. RSCodec
// accepts any concrete SymbolBuffer so callers working in GF(2^p) for p<=8
// can stay on a plain byte slice, while higher fields that need two bytes
// per symbol use Buffer16 instead, without the core encode/decode/poly
// functions (which operate on []Symbol) ever needing to know which.
type SymbolBuffer interface {
	Len() int
	At(i int) Symbol
	Set(i int, v Symbol)
	Slice(lo, hi int) SymbolBuffer
	Symbols() []Symbol
}

// Buffer8 is a SymbolBuffer backed by a []byte, the natural container for
// GF(2^p) with p<=8 (including the canonical GF(256) codec).
type Buffer8 []byte

// NewBuffer8 wraps data as a SymbolBuffer without copying.
func NewBuffer8(data []byte) Buffer8 { return Buffer8(data) }

func (b Buffer8) Len() int { return len(b) }

func (b Buffer8) At(i int) Symbol { return Symbol(b[i]) }

func (b Buffer8) Set(i int, v Symbol) { b[i] = byte(v) }

func (b Buffer8) Slice(lo, hi int) SymbolBuffer { return b[lo:hi] }

// Symbols copies the buffer out to a []Symbol for the core algorithms, which
// work in Symbol (uint16) regardless of the backing storage width.
func (b Buffer8) Symbols() []Symbol {
	out := make([]Symbol, len(b))
	for i, v := range b {
		out[i] = Symbol(v)
	}
	return out
}

// Bytes returns the buffer's underlying []byte view.
func (b Buffer8) Bytes() []byte { return []byte(b) }

// Buffer16 is a SymbolBuffer backed by a []uint16, required once field_size
// exceeds 256 (GF(2^p), 8<p<=16) and a single symbol no longer fits in a
// byte.
type Buffer16 []uint16

// NewBuffer16 wraps data as a SymbolBuffer without copying.
func NewBuffer16(data []uint16) Buffer16 { return Buffer16(data) }

func (b Buffer16) Len() int { return len(b) }

func (b Buffer16) At(i int) Symbol { return Symbol(b[i]) }

func (b Buffer16) Set(i int, v Symbol) { b[i] = uint16(v) }

func (b Buffer16) Slice(lo, hi int) SymbolBuffer { return b[lo:hi] }

func (b Buffer16) Symbols() []Symbol {
	out := make([]Symbol, len(b))
	copy(out, []uint16(b))
	return out
}

// symbolsToBuffer builds a SymbolBuffer populated from symbols: a Buffer16
// when template is a Buffer16, otherwise a Buffer8. Used at the end of
// encode/decode calls to hand callers back a container matching what they
// passed in.
func symbolsToBuffer(template SymbolBuffer, symbols []Symbol) SymbolBuffer {
	switch template.(type) {
	case Buffer16:
		out := make(Buffer16, len(symbols))
		copy(out, symbols)
		return out
	default:
		out := make(Buffer8, len(symbols))
		for i, v := range symbols {
			out[i] = byte(v)
		}
		return out
	}
}
