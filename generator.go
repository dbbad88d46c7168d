package reedsolomon

// GeneratorPoly builds g(x) = product_{i=0..nsym-1} (x - alpha^(fcr+i)), the
// generator polynomial for an nsym-symbol Reed-Solomon code. The result has
// length nsym+1 with leading coefficient 1.
func GeneratorPoly(nsym, fcr, generator int, f *Field) []Symbol {
	g := []Symbol{1}
	for i := 0; i < nsym; i++ {
		root := f.Pow(Symbol(generator), fcr+i)
		g = PolyMul(g, []Symbol{1, root}, f)
	}
	return g
}

// GeneratorPolyAll builds the family of generator polynomials g_0..g_nMax,
// where entry j is the generator for nsym=j (entry 0 is [1]). It is built
// incrementally: g_{j+1}(x) = g_j(x) * (x - alpha^(fcr+j)). Used by RSCodec
// when single_gen is false, so a single instance can serve several nsym
// values without recomputing each from scratch.
func GeneratorPolyAll(nMax, fcr, generator int, f *Field) [][]Symbol {
	all := make([][]Symbol, nMax+1)
	g := []Symbol{1}
	all[0] = g
	for j := 0; j < nMax; j++ {
		root := f.Pow(Symbol(generator), fcr+j)
		g = PolyMul(g, []Symbol{1, root}, f)
		all[j+1] = g
	}
	return all
}
