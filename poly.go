package reedsolomon

// Polynomials are represented as []Symbol, most-significant coefficient
// first (index 0 is the highest-degree term), matching spec's Horner
// convention and the generator-polynomial construction in generator.go.

// PolyScale multiplies every coefficient of p by the scalar x.
func PolyScale(p []Symbol, x Symbol, f *Field) []Symbol {
	res := make([]Symbol, len(p))
	for i, c := range p {
		res[i] = f.Mul(c, x)
	}
	return res
}

// PolyAdd adds (xors) two polynomials, aligning them from the right
// (low-degree end) so unequal lengths are handled correctly.
func PolyAdd(p, q []Symbol) []Symbol {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}
	res := make([]Symbol, n)
	copy(res[n-len(p):], p)
	for i, c := range q {
		res[n-len(q)+i] ^= c
	}
	return res
}

// PolyMulSimple multiplies two polynomials with the straightforward
// schoolbook double loop. It must agree with PolyMul; kept to cross-check
// the log-domain optimized version in tests.
func PolyMulSimple(p, q []Symbol, f *Field) []Symbol {
	res := make([]Symbol, len(p)+len(q)-1)
	for i, pi := range p {
		if pi == 0 {
			continue
		}
		for j, qj := range q {
			res[i+j] ^= f.Mul(pi, qj)
		}
	}
	return res
}

// PolyMul multiplies two polynomials in the log domain: logs of p's nonzero
// coefficients are computed once, then each nonzero coefficient of q is
// combined against them via table lookups rather than repeated Mul calls.
func PolyMul(p, q []Symbol, f *Field) []Symbol {
	res := make([]Symbol, len(p)+len(q)-1)
	lp := make([]int, len(p))
	for i, pi := range p {
		if pi != 0 {
			lp[i] = int(f.logTable[pi])
		}
	}
	for j, qj := range q {
		if qj == 0 {
			continue
		}
		lq := int(f.logTable[qj])
		for i, pi := range p {
			if pi != 0 {
				res[i+j] ^= f.expTable[lp[i]+lq]
			}
		}
	}
	return res
}

// PolyEval evaluates p at x using Horner's method, starting from the
// high-order coefficient.
func PolyEval(p []Symbol, x Symbol, f *Field) Symbol {
	y := p[0]
	for i := 1; i < len(p); i++ {
		y = f.Mul(y, x) ^ p[i]
	}
	return y
}

// PolyDiv divides dividend by divisor using extended synthetic division,
// returning (quotient, remainder) where len(remainder) == len(divisor)-1.
func PolyDiv(dividend, divisor []Symbol, f *Field) (quotient, remainder []Symbol) {
	out := make([]Symbol, len(dividend))
	copy(out, dividend)
	for i := 0; i <= len(dividend)-len(divisor); i++ {
		coef := out[i]
		if coef == 0 {
			continue
		}
		for j := 1; j < len(divisor); j++ {
			if divisor[j] != 0 {
				out[i+j] ^= f.Mul(divisor[j], coef)
			}
		}
	}
	sep := len(out) - (len(divisor) - 1)
	return out[:sep], out[sep:]
}

// PolyNeg is the identity in characteristic 2.
func PolyNeg(p []Symbol) []Symbol {
	res := make([]Symbol, len(p))
	copy(res, p)
	return res
}
