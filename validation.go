package reedsolomon

// validateCodecParams validates the parameters for constructing an RSCodec:
// one ReedSolomonError per violated bound, never a silent clamp.
func validateCodecParams(nsym, nsize, fcr int, f *Field) error {
	if nsym < 1 {
		return newParamError(KindInvalidParameter, "nsym", nsym, 1, "reedsolomon: nsym must be at least 1")
	}
	if nsym >= f.fieldCharac {
		return newParamError(KindInvalidParameter, "nsym", nsym, f.fieldCharac-1, "reedsolomon: nsym must be less than field_charac")
	}
	if nsize < nsym+1 || nsize > f.fieldCharac {
		return newParamError(KindInvalidParameter, "nsize", nsize, f.fieldCharac, "reedsolomon: nsize must be in (nsym, field_charac]")
	}
	if fcr < 0 {
		return newParamError(KindInvalidParameter, "fcr", fcr, 0, "reedsolomon: fcr must be non-negative")
	}
	return nil
}

// MaxErrata reports the correction capacity implied by nsym, optionally
// constrained by a known error or erasure count. Exactly one of errors,
// erasures should be non-nil; passing neither returns the unconstrained
// (nsym/2, nsym) budget.
func MaxErrata(nsym int, errors, erasures *int) (maxErrors, maxErasures int, err error) {
	switch {
	case errors == nil && erasures == nil:
		return nsym / 2, nsym, nil
	case erasures != nil:
		f := *erasures
		if f > nsym {
			return 0, 0, newParamError(KindTooManyErasures, "erasures", f, nsym, "reedsolomon: erasures exceeds nsym")
		}
		return (nsym - f) / 2, f, nil
	default:
		e := *errors
		if 2*e > nsym {
			return 0, 0, newParamError(KindTooManyErrors, "errors", e, nsym/2, "reedsolomon: errors exceeds nsym/2")
		}
		return e, nsym - 2*e, nil
	}
}
