package reedsolomon

// This file adapts the package's explicit-Field core (every low-level
// function in field.go/poly.go/generator.go/encode.go/decode.go that needs
// field arithmetic takes a *Field argument) to a free-function, module-level-table style: InitTables
// once, then GFAdd/GFMul/... operate against whatever was last initialized.
// It is a thin, best-effort adapter for callers migrating from a global-state
// API and is not the recommended way to use this package; new code should
// build a *Field (or an RSCodec) explicitly instead.

// InitTables builds the process-wide default field used by the legacy free
// functions below. It is safe to call concurrently. Once a default field is
// set, a call with the same parameters rebuilds it, and a call with
// different parameters, whether concurrent or later, fails with
// FieldNotInitialized and leaves the existing field in place.
func InitTables(prim, generator, cExp int) error {
	f, err := NewField(prim, generator, cExp)
	if err != nil {
		return err
	}
	defaultFieldMu.Lock()
	defer defaultFieldMu.Unlock()
	if defaultField != nil && (defaultField.prim != prim || defaultField.generator != generator || defaultField.cExp != cExp) {
		return ErrFieldNotInitialized
	}
	defaultField = f
	return nil
}

// currentField returns the process-wide default field, failing with
// FieldNotInitialized if InitTables has not been called yet.
func currentField() (*Field, error) {
	defaultFieldMu.RLock()
	defer defaultFieldMu.RUnlock()
	if defaultField == nil {
		return nil, ErrFieldNotInitialized
	}
	return defaultField, nil
}

// GFAdd adds two symbols in the process-wide default field.
func GFAdd(a, b Symbol) (Symbol, error) {
	f, err := currentField()
	if err != nil {
		return 0, err
	}
	return f.Add(a, b), nil
}

// GFSub subtracts two symbols in the process-wide default field.
func GFSub(a, b Symbol) (Symbol, error) {
	f, err := currentField()
	if err != nil {
		return 0, err
	}
	return f.Sub(a, b), nil
}

// GFMul multiplies two symbols in the process-wide default field.
func GFMul(a, b Symbol) (Symbol, error) {
	f, err := currentField()
	if err != nil {
		return 0, err
	}
	return f.Mul(a, b), nil
}

// GFDiv divides two symbols in the process-wide default field.
func GFDiv(a, b Symbol) (Symbol, error) {
	f, err := currentField()
	if err != nil {
		return 0, err
	}
	return f.Div(a, b)
}

// GFPow raises a symbol to a power in the process-wide default field.
func GFPow(a Symbol, p int) (Symbol, error) {
	f, err := currentField()
	if err != nil {
		return 0, err
	}
	return f.Pow(a, p), nil
}

// GFInverse inverts a symbol in the process-wide default field.
func GFInverse(a Symbol) (Symbol, error) {
	f, err := currentField()
	if err != nil {
		return 0, err
	}
	return f.Inverse(a), nil
}

// RSEncodeMsg encodes msg against the process-wide default field.
func RSEncodeMsg(msg []Symbol, nsym, fcr, generator int) ([]Symbol, error) {
	f, err := currentField()
	if err != nil {
		return nil, err
	}
	return EncodeMsg(msg, nsym, fcr, generator, nil, f)
}

// RSDecode decodes msg against the process-wide default field.
func RSDecode(msg []Symbol, nsym int, erasePos []int, fcr, generator int, onlyErasures bool) (*DecodeResult, error) {
	f, err := currentField()
	if err != nil {
		return nil, err
	}
	return Decode(msg, nsym, erasePos, fcr, generator, onlyErasures, f)
}
