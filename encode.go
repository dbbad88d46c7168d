package reedsolomon

// EncodeMsg computes the systematic Reed-Solomon codeword for msg: the
// remainder of msg*x^nsym divided by the generator polynomial, appended to
// msg unchanged. If gen is nil it is derived from nsym/fcr/generator. Fails
// with MessageTooLong if len(msg)+nsym exceeds the field's characteristic,
// or SymbolOutOfRange if msg contains a symbol not in f.
//
// The division runs as a shift-register synthetic division against the
// generator, over a scratch buffer so the payload prefix of the result is
// never disturbed.
func EncodeMsg(msg []Symbol, nsym, fcr, generator int, gen []Symbol, f *Field) ([]Symbol, error) {
	if len(msg)+nsym > f.fieldCharac {
		return nil, newParamError(KindMessageTooLong, "len(msg)+nsym", len(msg)+nsym, f.fieldCharac, "reedsolomon: message too long for this field/nsym")
	}
	if err := validateSymbols(msg, f); err != nil {
		return nil, err
	}
	if gen == nil {
		gen = GeneratorPoly(nsym, fcr, generator, f)
	}

	scratch := make([]Symbol, len(msg)+nsym)
	copy(scratch, msg)
	for i := 0; i < len(msg); i++ {
		coef := scratch[i]
		if coef == 0 {
			continue
		}
		for j := 1; j < len(gen); j++ {
			if gen[j] != 0 {
				scratch[i+j] ^= f.Mul(gen[j], coef)
			}
		}
	}

	out := make([]Symbol, len(msg)+nsym)
	copy(out, msg)
	copy(out[len(msg):], scratch[len(msg):])
	return out, nil
}
