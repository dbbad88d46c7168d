package reedsolomon

// Option configures an RSCodec at construction time. Defaults match the
// canonical GF(2^8) codec: prim=0x11d, generator=2, fcr=0, nsize=255 (once
// c_exp is resolved), single_gen=true.
type Option func(*codecConfig)

type codecConfig struct {
	nsize     int
	fcr       int
	prim      int
	generator int
	cExp      int
	singleGen bool
}

// WithNsize overrides the codeword size (default: field_charac).
func WithNsize(nsize int) Option { return func(c *codecConfig) { c.nsize = nsize } }

// WithFcr overrides the first consecutive root exponent (default 0).
func WithFcr(fcr int) Option { return func(c *codecConfig) { c.fcr = fcr } }

// WithPrim overrides the primitive polynomial (default 0x11d).
func WithPrim(prim int) Option { return func(c *codecConfig) { c.prim = prim } }

// WithGenerator overrides the field generator (default 2).
func WithGenerator(generator int) Option { return func(c *codecConfig) { c.generator = generator } }

// WithCExp pins c_exp explicitly instead of inferring it from prim.
func WithCExp(cExp int) Option { return func(c *codecConfig) { c.cExp = cExp } }

// WithSingleGen controls whether the codec caches a single generator
// polynomial for nsym (default) or a family covering every nsym up to
// nsize, required to support per-call nsym overrides in Encode/Decode.
func WithSingleGen(singleGen bool) Option { return func(c *codecConfig) { c.singleGen = singleGen } }

// RSCodec is a chunked Reed-Solomon codec: it splits arbitrarily long input
// into blocks that fit the underlying field and encodes/decodes each block
// independently, concatenating the results. Once constructed it is
// immutable and safe for concurrent use by multiple readers.
type RSCodec struct {
	field *Field

	nsym      int
	nsize     int
	fcr       int
	generator int
	singleGen bool

	gen       []Symbol   // cached when singleGen
	genFamily [][]Symbol // cached 0..nsize when !singleGen
}

// NewRSCodec builds an RSCodec for the given default nsym (parity symbol
// count per block). c_exp is inferred from prim's bit length unless
// WithCExp is given. Fails with InvalidParameter if nsym is out of range or
// c_exp/prim are inconsistent.
func NewRSCodec(nsym int, opts ...Option) (*RSCodec, error) {
	cfg := codecConfig{fcr: 0, prim: 0x11d, generator: 2, singleGen: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	cExp := cfg.cExp
	if cExp == 0 {
		cExp = bitLength(cfg.prim) - 1
	}
	f, err := NewField(cfg.prim, cfg.generator, cExp)
	if err != nil {
		return nil, err
	}

	nsize := cfg.nsize
	if nsize == 0 {
		nsize = f.FieldCharac()
	}
	if err := validateCodecParams(nsym, nsize, cfg.fcr, f); err != nil {
		return nil, err
	}

	c := &RSCodec{
		field:     f,
		nsym:      nsym,
		nsize:     nsize,
		fcr:       cfg.fcr,
		generator: cfg.generator,
		singleGen: cfg.singleGen,
	}
	if cfg.singleGen {
		c.gen = GeneratorPoly(nsym, cfg.fcr, cfg.generator, f)
	} else {
		c.genFamily = GeneratorPolyAll(nsize, cfg.fcr, cfg.generator, f)
	}
	return c, nil
}

func bitLength(n int) int {
	bits := 0
	for n > 0 {
		bits++
		n >>= 1
	}
	return bits
}

// resolveNsym returns nsym if non-nil, else the codec's default, validating
// it against the cached generator family.
func (c *RSCodec) resolveNsym(nsym *int) (int, []Symbol, error) {
	n := c.nsym
	if nsym != nil {
		n = *nsym
	}
	if n < 1 || n >= c.nsize {
		return 0, nil, newParamError(KindInvalidParameter, "nsym", n, c.nsize-1, "reedsolomon: nsym out of range for this codec")
	}
	if c.singleGen {
		if nsym != nil && *nsym != c.nsym {
			return 0, nil, newParamError(KindInvalidParameter, "nsym", n, c.nsym, "reedsolomon: codec was built with single_gen; nsym must match the constructor default")
		}
		return n, c.gen, nil
	}
	if n >= len(c.genFamily) {
		return 0, nil, newParamError(KindInvalidParameter, "nsym", n, len(c.genFamily)-1, "reedsolomon: nsym exceeds the cached generator family")
	}
	return n, c.genFamily[n], nil
}

// Field exposes the codec's underlying Field, e.g. for callers that also
// want to drive the low-level free functions directly.
func (c *RSCodec) Field() *Field { return c.field }

// Encode splits data into blocks of size (nsize-nsym), encodes each block,
// and concatenates the results. nsym may be nil to use the codec's default.
// The returned buffer is a Buffer16 when data is a Buffer16 and a Buffer8
// for any other SymbolBuffer.
func (c *RSCodec) Encode(data SymbolBuffer, nsym *int) (SymbolBuffer, error) {
	n, gen, err := c.resolveNsym(nsym)
	if err != nil {
		return nil, err
	}
	blockLen := c.nsize - n
	symbols := data.Symbols()

	out := make([]Symbol, 0, len(symbols)+(len(symbols)/blockLen+1)*n)
	for off := 0; off < len(symbols); off += blockLen {
		end := off + blockLen
		if end > len(symbols) {
			end = len(symbols)
		}
		block, err := EncodeMsg(symbols[off:end], n, c.fcr, c.generator, gen, c.field)
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
	}
	if len(symbols) == 0 {
		block, err := EncodeMsg(nil, n, c.fcr, c.generator, gen, c.field)
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
	}
	return symbolsToBuffer(data, out), nil
}

// DecodeBlockError records the failure of a single block within a
// multi-block Decode call. The facade re-raises the first one for callers
// that only check the returned error.
type DecodeBlockError struct {
	Block int
	Err   error
}

func (e *DecodeBlockError) Error() string { return e.Err.Error() }
func (e *DecodeBlockError) Unwrap() error { return e.Err }

// Decode splits data into nsize-sized codeword blocks (the last block may be
// shorter, as Encode produces it), partitions erasePos (global indices) by
// block, decodes each block independently, and concatenates the corrected
// payloads and codewords. Errata positions in the returned list are in
// global coordinates. If any block fails, the first failure is returned as a
// *DecodeBlockError alongside the results of every block that did decode;
// failed blocks contribute nothing to the returned payload and codeword.
func (c *RSCodec) Decode(data SymbolBuffer, nsym *int, erasePos []int, onlyErasures bool) (payload, codeword SymbolBuffer, errata []int, err error) {
	n, _, rerr := c.resolveNsym(nsym)
	if rerr != nil {
		return nil, nil, nil, rerr
	}
	symbols := data.Symbols()
	if rem := len(symbols) % c.nsize; rem != 0 && rem < n {
		return nil, nil, nil, newParamError(KindInvalidParameter, "len(data)", len(symbols), c.nsize, "reedsolomon: last block is shorter than nsym")
	}

	byBlock := make(map[int][]int)
	for _, p := range erasePos {
		byBlock[p/c.nsize] = append(byBlock[p/c.nsize], p%c.nsize)
	}

	var outPayload, outCodeword []Symbol
	var outErrata []int
	var firstErr *DecodeBlockError

	for blockIdx, off := 0, 0; off < len(symbols); blockIdx, off = blockIdx+1, off+c.nsize {
		end := off + c.nsize
		if end > len(symbols) {
			end = len(symbols)
		}
		block := symbols[off:end]
		res, derr := Decode(block, n, byBlock[blockIdx], c.fcr, c.generator, onlyErasures, c.field)
		if derr != nil {
			if firstErr == nil {
				firstErr = &DecodeBlockError{Block: blockIdx, Err: derr}
			}
			continue
		}
		outPayload = append(outPayload, res.Payload...)
		outCodeword = append(outCodeword, res.Codeword...)
		for _, p := range res.Errata {
			outErrata = append(outErrata, blockIdx*c.nsize+p)
		}
	}

	if firstErr != nil {
		return symbolsToBuffer(data, outPayload), symbolsToBuffer(data, outCodeword), outErrata, firstErr
	}
	return symbolsToBuffer(data, outPayload), symbolsToBuffer(data, outCodeword), outErrata, nil
}

// Check reports, per nsize-sized block (the last block may be shorter),
// whether its syndromes are all zero.
func (c *RSCodec) Check(data SymbolBuffer, nsym *int) ([]bool, error) {
	n, _, err := c.resolveNsym(nsym)
	if err != nil {
		return nil, err
	}
	symbols := data.Symbols()
	if rem := len(symbols) % c.nsize; rem != 0 && rem < n {
		return nil, newParamError(KindInvalidParameter, "len(data)", len(symbols), c.nsize, "reedsolomon: last block is shorter than nsym")
	}
	results := make([]bool, 0, len(symbols)/c.nsize+1)
	for off := 0; off < len(symbols); off += c.nsize {
		end := off + c.nsize
		if end > len(symbols) {
			end = len(symbols)
		}
		ok, err := Check(symbols[off:end], n, c.fcr, c.generator, c.field)
		if err != nil {
			return nil, err
		}
		results = append(results, ok)
	}
	return results, nil
}

// MaxErrata reports this codec's correction capacity via MaxErrata(nsym, ...).
func (c *RSCodec) MaxErrata(errs, erasures *int) (maxErrors, maxErasures int, err error) {
	return MaxErrata(c.nsym, errs, erasures)
}
