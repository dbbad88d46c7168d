package reedsolomon

import "sort"

// CalcSyndromes evaluates msg at alpha^(fcr+i) for i in [0, nsym), returning
// a slice of length nsym+1 with synd[0] == 0 by convention. msg is in the
// code (error-free) iff every entry from synd[1:] is zero. Fails with
// SymbolOutOfRange if any symbol in msg is not an element of f.
func CalcSyndromes(msg []Symbol, nsym, fcr, generator int, f *Field) ([]Symbol, error) {
	if err := validateSymbols(msg, f); err != nil {
		return nil, err
	}
	synd := make([]Symbol, nsym+1)
	for i := 0; i < nsym; i++ {
		synd[i+1] = PolyEval(msg, f.Pow(Symbol(generator), fcr+i), f)
	}
	return synd, nil
}

// Check reports whether msg's syndromes are all zero.
func Check(msg []Symbol, nsym, fcr, generator int, f *Field) (bool, error) {
	synd, err := CalcSyndromes(msg, nsym, fcr, generator, f)
	if err != nil {
		return false, err
	}
	for _, s := range synd[1:] {
		if s != 0 {
			return false, nil
		}
	}
	return true, nil
}

// FindErrataLocator builds Lambda(x) = product (1 + alpha^p * x) over the
// given coefficient positions (already converted from codeword indices via
// p = n-1-index).
func FindErrataLocator(coefPositions []int, generator int, f *Field) []Symbol {
	loc := []Symbol{1}
	for _, p := range coefPositions {
		root := f.Pow(Symbol(generator), p)
		loc = PolyMul(loc, []Symbol{root, 1}, f)
	}
	return loc
}

// ForneySyndromes removes the effect of known erasures (given as codeword
// indices, not coefficient positions) from the syndromes, so
// FindErrorLocator run on the result only has to find the unknown errors.
func ForneySyndromes(synd []Symbol, erasePos []int, n, generator int, f *Field) []Symbol {
	fsynd := make([]Symbol, len(synd)-1)
	copy(fsynd, synd[1:])
	for _, p := range erasePos {
		x := f.Pow(Symbol(generator), n-1-p)
		for j := 0; j < len(fsynd)-1; j++ {
			fsynd[j] = f.Mul(fsynd[j], x) ^ fsynd[j+1]
		}
	}
	return fsynd
}

// FindErrorLocator runs Berlekamp-Massey over synd to find the minimal
// error-locator polynomial. If eraseLoc is non-nil it seeds the recurrence
// with the known erasure locator (the "nofsynd" path, which runs BM over
// the full syndromes rather than Forney syndromes); eraseCount must then
// equal len(eraseLoc)-1. Fails with TooManyErrors if the resulting locator's
// degree violates 2*(deg(sigma)-eraseCount) + eraseCount > nsym.
func FindErrorLocator(synd []Symbol, nsym, eraseCount int, eraseLoc []Symbol, f *Field) ([]Symbol, error) {
	var errLoc, oldLoc []Symbol
	if eraseLoc != nil {
		errLoc = append([]Symbol(nil), eraseLoc...)
		oldLoc = append([]Symbol(nil), eraseLoc...)
	} else {
		errLoc = []Symbol{1}
		oldLoc = []Symbol{1}
	}

	syndShift := 0
	if len(synd) > nsym {
		syndShift = len(synd) - nsym
	}

	for i := 0; i < nsym-eraseCount; i++ {
		var k int
		if eraseLoc != nil {
			k = eraseCount + i + syndShift
		} else {
			k = i + syndShift
		}
		delta := synd[k]
		for j := 1; j < len(errLoc); j++ {
			delta ^= f.Mul(errLoc[len(errLoc)-1-j], synd[k-j])
		}
		oldLoc = append(oldLoc, 0)
		if delta != 0 {
			if len(oldLoc) > len(errLoc) {
				newLoc := PolyScale(oldLoc, delta, f)
				oldLoc = PolyScale(errLoc, f.Inverse(delta), f)
				errLoc = newLoc
			}
			errLoc = PolyAdd(errLoc, PolyScale(oldLoc, delta, f))
		}
	}

	// Strip leading zero coefficients (degree may have shrunk).
	start := 0
	for start < len(errLoc)-1 && errLoc[start] == 0 {
		start++
	}
	errLoc = errLoc[start:]

	errs := len(errLoc) - 1
	if (errs-eraseCount)*2+eraseCount > nsym {
		return nil, ErrTooManyErrors
	}
	return errLoc, nil
}

// FindErrors runs a Chien search: it brute-force evaluates errLoc at
// alpha^0..alpha^(n-1) and reports the codeword indices whose evaluation is
// zero. Fails with TooManyErrors if the number of roots found does not
// match deg(errLoc).
func FindErrors(errLoc []Symbol, n, generator int, f *Field) ([]int, error) {
	errs := len(errLoc) - 1
	var pos []int
	for i := 0; i < n; i++ {
		if PolyEval(errLoc, f.Pow(Symbol(generator), i), f) == 0 {
			pos = append(pos, n-1-i)
		}
	}
	if len(pos) != errs {
		return nil, ErrTooManyErrors
	}
	return pos, nil
}

// FindErrorEvaluator computes Omega(x) = (synd * errLoc) mod x^(nsym+1),
// i.e. truncated to the low-order nsym+1 coefficients.
func FindErrorEvaluator(synd, errLoc []Symbol, nsym int, f *Field) []Symbol {
	divisor := make([]Symbol, nsym+2)
	divisor[0] = 1
	_, remainder := PolyDiv(PolyMul(synd, errLoc, f), divisor, f)
	return remainder
}

// CorrectErrata applies the Forney algorithm to compute error magnitudes at
// the given errata positions (codeword indices, union of errors and
// erasures) and XORs them into msg.
func CorrectErrata(msg, synd []Symbol, errataPos []int, fcr, generator int, f *Field) ([]Symbol, error) {
	coefPos := make([]int, len(errataPos))
	for i, p := range errataPos {
		coefPos[i] = len(msg) - 1 - p
	}
	errLoc := FindErrataLocator(coefPos, generator, f)

	// rawEval corresponds to the reference algorithm's error evaluator
	// before its final reversal; PolyEval below undoes that reversal by
	// construction, so it is used directly rather than reversed twice.
	rawEval := FindErrorEvaluator(reverse(synd), errLoc, len(errLoc)-1, f)

	x := make([]Symbol, len(coefPos))
	for i, p := range coefPos {
		l := f.fieldCharac - p
		x[i] = f.Pow(Symbol(generator), -l)
	}

	corrected := make([]Symbol, len(msg))
	copy(corrected, msg)

	for i, xi := range x {
		xiInv := f.Inverse(xi)

		errLocPrime := Symbol(1)
		for j, xj := range x {
			if j == i {
				continue
			}
			errLocPrime = f.Mul(errLocPrime, f.Sub(1, f.Mul(xiInv, xj)))
		}
		if errLocPrime == 0 {
			return nil, ErrCouldNotCorrect
		}

		y := PolyEval(rawEval, xiInv, f)
		y = f.Mul(f.Pow(xi, 1-fcr), y)

		magnitude, err := f.Div(y, errLocPrime)
		if err != nil {
			return nil, err
		}
		corrected[errataPos[i]] ^= magnitude
	}
	return corrected, nil
}

func reverse(s []Symbol) []Symbol {
	out := make([]Symbol, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

// DecodeResult holds the outcome of a successful decode.
type DecodeResult struct {
	Payload  []Symbol
	Codeword []Symbol
	Errata   []int // sorted, unique, codeword indices
}

// decodeOptions controls Decode/DecodeNoFsynd.
type decodeOptions struct {
	fcr          int
	generator    int
	onlyErasures bool
}

// Decode is the errors-and-erasures top-level decoder using Forney
// syndromes: erasure positions are zeroed, syndromes computed, Forney
// syndromes derived, Berlekamp-Massey run on them to find the unknown
// errors, a Chien search locates them, and Forney's algorithm corrects
// every disclosed erasure plus located error. It always finishes by
// re-verifying the syndromes of the corrected codeword are all zero
// (CouldNotCorrect otherwise).
func Decode(msg []Symbol, nsym int, erasePos []int, fcr, generator int, onlyErasures bool, f *Field) (*DecodeResult, error) {
	if len(msg) > f.fieldCharac {
		return nil, newParamError(KindInvalidParameter, "len(msg)", len(msg), f.fieldCharac, "reedsolomon: message too long")
	}
	erasePos, err := normalizeErasePositions(erasePos, len(msg), nsym)
	if err != nil {
		return nil, err
	}

	work := make([]Symbol, len(msg))
	copy(work, msg)
	for _, p := range erasePos {
		work[p] = 0
	}

	synd, err := CalcSyndromes(work, nsym, fcr, generator, f)
	if err != nil {
		return nil, err
	}
	if allZero(synd) {
		payload := append([]Symbol(nil), work[:len(work)-nsym]...)
		return &DecodeResult{Payload: payload, Codeword: work, Errata: append([]int(nil), erasePos...)}, nil
	}

	var errPos []int
	if onlyErasures {
		errPos = nil
	} else {
		fsynd := ForneySyndromes(synd, erasePos, len(work), generator, f)
		errLoc, err := FindErrorLocator(fsynd, nsym, len(erasePos), nil, f)
		if err != nil {
			return nil, err
		}
		errPos, err = FindErrors(reverse(errLoc), len(work), generator, f)
		if err != nil {
			return nil, err
		}
	}

	errata := mergeErrata(erasePos, errPos)
	if len(errata) > nsym {
		return nil, ErrTooManyErrors
	}

	corrected, err := CorrectErrata(work, synd, errata, fcr, generator, f)
	if err != nil {
		return nil, err
	}
	finalSynd, err := CalcSyndromes(corrected, nsym, fcr, generator, f)
	if err != nil {
		return nil, err
	}
	if !allZero(finalSynd) {
		return nil, ErrCouldNotCorrect
	}

	payload := append([]Symbol(nil), corrected[:len(corrected)-nsym]...)
	return &DecodeResult{Payload: payload, Codeword: corrected, Errata: errata}, nil
}

// DecodeNoFsynd is the errors-and-erasures decoder variant that runs
// Berlekamp-Massey directly on the full syndromes, seeded with the known
// erasure locator, instead of deriving Forney syndromes first. Kept
// alongside Decode for cross-validation: the two should always agree on a
// corrected payload even though they take different paths to the error
// locator.
func DecodeNoFsynd(msg []Symbol, nsym int, erasePos []int, fcr, generator int, onlyErasures bool, f *Field) (*DecodeResult, error) {
	if len(msg) > f.fieldCharac {
		return nil, newParamError(KindInvalidParameter, "len(msg)", len(msg), f.fieldCharac, "reedsolomon: message too long")
	}
	erasePos, err := normalizeErasePositions(erasePos, len(msg), nsym)
	if err != nil {
		return nil, err
	}

	work := make([]Symbol, len(msg))
	copy(work, msg)
	for _, p := range erasePos {
		work[p] = 0
	}

	synd, err := CalcSyndromes(work, nsym, fcr, generator, f)
	if err != nil {
		return nil, err
	}
	if allZero(synd) {
		payload := append([]Symbol(nil), work[:len(work)-nsym]...)
		return &DecodeResult{Payload: payload, Codeword: work, Errata: append([]int(nil), erasePos...)}, nil
	}

	coefPos := make([]int, len(erasePos))
	for i, p := range erasePos {
		coefPos[i] = len(work) - 1 - p
	}
	eraseLoc := FindErrataLocator(coefPos, generator, f)

	var errLoc []Symbol
	if onlyErasures {
		errLoc = reverse(eraseLoc)
	} else {
		loc, err := FindErrorLocator(synd, nsym, len(erasePos), eraseLoc, f)
		if err != nil {
			return nil, err
		}
		errLoc = reverse(loc)
	}

	errPos, err := FindErrors(errLoc, len(work), generator, f)
	if err != nil {
		return nil, err
	}

	errata := mergeErrata(erasePos, errPos)
	if len(errata) > nsym {
		return nil, ErrTooManyErrors
	}

	corrected, err := CorrectErrata(work, synd, errata, fcr, generator, f)
	if err != nil {
		return nil, err
	}
	finalSynd, err := CalcSyndromes(corrected, nsym, fcr, generator, f)
	if err != nil {
		return nil, err
	}
	if !allZero(finalSynd) {
		return nil, ErrCouldNotCorrect
	}

	payload := append([]Symbol(nil), corrected[:len(corrected)-nsym]...)
	return &DecodeResult{Payload: payload, Codeword: corrected, Errata: errata}, nil
}

func allZero(s []Symbol) bool {
	for _, v := range s {
		if v != 0 {
			return false
		}
	}
	return true
}

// normalizeErasePositions deduplicates erasePos, validates every position is
// within [0, msgLen), and fails before any decoding work is attempted if
// there are more erasures than nsym can budget for.
func normalizeErasePositions(erasePos []int, msgLen, nsym int) ([]int, error) {
	seen := make(map[int]bool, len(erasePos))
	out := make([]int, 0, len(erasePos))
	for _, p := range erasePos {
		if p < 0 || p >= msgLen {
			return nil, newParamError(KindInvalidErasurePosition, "erase_pos", p, msgLen-1, "reedsolomon: erasure position out of range")
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	if len(out) > nsym {
		return nil, newParamError(KindTooManyErasures, "len(erase_pos)", len(out), nsym, "reedsolomon: too many erasures to correct")
	}
	sort.Ints(out)
	return out, nil
}

// mergeErrata unions (already-deduplicated) erasure positions with located
// error positions into a sorted, unique slice. Disclosed erasures are
// always present in the result even if their symbol turned out correct.
func mergeErrata(erasePos, errPos []int) []int {
	seen := make(map[int]bool, len(erasePos)+len(errPos))
	out := make([]int, 0, len(erasePos)+len(errPos))
	for _, p := range erasePos {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, p := range errPos {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	sort.Ints(out)
	return out
}
