package reedsolomon

import (
	"bytes"
	"encoding/hex"
	"math/rand"
	"testing"
)

func TestDecodeRoundTrip(t *testing.T) {
	f := defaultTestField(t)
	const nsym = 10
	msg := symbolsOf("hello world ")
	enc, err := EncodeMsg(msg, nsym, 0, 2, nil, f)
	if err != nil {
		t.Fatalf("EncodeMsg: %v", err)
	}
	res, err := Decode(enc, nsym, nil, 0, 2, false, f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !symbolsEqual(res.Payload, msg) || !symbolsEqual(res.Codeword, enc) || len(res.Errata) != 0 {
		t.Fatalf("round-trip mismatch: payload=%v codeword=%v errata=%v", res.Payload, res.Codeword, res.Errata)
	}
}

// TestDecodeHelloWorldCorrection mirrors the reference suite's
// test_correction scenario: repeated "hello world " corrupted one byte at a
// time at indices {27, -3, -9, 7, 0} (negative ones counted back from len)
// always recovers,
// then flipping index 82 as well is one too many and fails.
func TestDecodeHelloWorldCorrection(t *testing.T) {
	f := defaultTestField(t)
	const nsym = 10
	msg := symbolsOf(repeatString("hello world ", 10))
	enc, err := EncodeMsg(msg, nsym, 0, 2, nil, f)
	if err != nil {
		t.Fatalf("EncodeMsg: %v", err)
	}

	for _, neg := range []int{27, -3, -9, 7, 0} {
		i := neg
		if i < 0 {
			i += len(enc)
		}
		corrupted := append([]Symbol(nil), enc...)
		corrupted[i] = 99

		res, err := Decode(corrupted, nsym, nil, 0, 2, false, f)
		if err != nil {
			t.Fatalf("Decode with single-byte corruption at %d: %v", i, err)
		}
		if !symbolsEqual(res.Payload, msg) {
			t.Fatalf("payload mismatch correcting index %d", i)
		}
	}

	corrupted := append([]Symbol(nil), enc...)
	for _, neg := range []int{27, -3, -9, 7, 0} {
		i := neg
		if i < 0 {
			i += len(enc)
		}
		corrupted[i] = 99
	}
	corrupted[82] = 99
	if _, err := Decode(corrupted, nsym, nil, 0, 2, false, f); err == nil {
		t.Error("expected failure correcting 6 errors with nsym=10")
	}
}

func TestCheckTracksCorruption(t *testing.T) {
	f := defaultTestField(t)
	const nsym = 10
	msg := symbolsOf(repeatString("hello world ", 10))
	enc, err := EncodeMsg(msg, nsym, 0, 2, nil, f)
	if err != nil {
		t.Fatalf("EncodeMsg: %v", err)
	}
	clean, err := Check(enc, nsym, 0, 2, f)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !clean {
		t.Fatal("fresh encoding should check clean")
	}
	corrupted := append([]Symbol(nil), enc...)
	corrupted[27] = 99
	if clean, err = Check(corrupted, nsym, 0, 2, f); err != nil {
		t.Fatalf("Check: %v", err)
	} else if clean {
		t.Error("corrupted codeword should fail check")
	}
	res, err := Decode(corrupted, nsym, nil, 0, 2, false, f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if clean, err = Check(res.Codeword, nsym, 0, 2, f); err != nil {
		t.Fatalf("Check: %v", err)
	} else if !clean {
		t.Error("corrected codeword should check clean")
	}
}

// TestDecodeLongMessage mirrors the reference suite's test_long: 10000 'a's,
// corrupted at two widely separated positions. The message is longer than
// one block, so it goes through the chunked RSCodec.
func TestDecodeLongMessage(t *testing.T) {
	c, err := NewRSCodec(10)
	if err != nil {
		t.Fatalf("NewRSCodec: %v", err)
	}
	msg := []byte(repeatString("a", 10000))
	encBuf, err := c.Encode(NewBuffer8(msg), nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	enc := encBuf.(Buffer8).Bytes()
	corrupted := append([]byte(nil), enc...)
	corrupted[177] = 99
	corrupted[2212] = 88

	payload, codeword, _, err := c.Decode(NewBuffer8(corrupted), nil, nil, false)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(payload.(Buffer8).Bytes(), msg) || !bytes.Equal(codeword.(Buffer8).Bytes(), enc) {
		t.Fatal("long-message correction mismatch")
	}
}

// TestDecodePrimFcrLong mirrors the reference suite's test_prim_fcr_long
// golden vector: RS(48,34) over GF(2^8) with fcr=120, prim=0x187.
func TestDecodePrimFcrLong(t *testing.T) {
	const nn, kk = 48, 34
	const nsym = nn - kk
	const fcr = 120
	f, err := NewField(0x187, 2, 8)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}

	wantHex := "08faa123555555c000000354064432c0280e1b4d090cfc04887400" +
		"000003500000000e1985ff9c6b33066ca9f43d12e8"
	want, err := hex.DecodeString(wantHex)
	if err != nil {
		t.Fatalf("bad golden hex: %v", err)
	}
	if len(want) != nn {
		t.Fatalf("golden vector length = %d, want %d", len(want), nn)
	}
	msg := symbolsOf(string(want[:kk]))

	enc, err := EncodeMsg(msg, nsym, fcr, 2, nil, f)
	if err != nil {
		t.Fatalf("EncodeMsg: %v", err)
	}
	if !bytes.Equal(symbolsToBytes(enc), want) {
		t.Fatalf("encoded = %x, want %x", symbolsToBytes(enc), want)
	}

	res, err := Decode(enc, nsym, nil, fcr, 2, false, f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !symbolsEqual(res.Payload, msg) || !symbolsEqual(res.Codeword, enc) {
		t.Fatal("clean decode mismatch")
	}

	rng := rand.New(rand.NewSource(7))
	numErrs := nsym / 2
	corrupted := append([]Symbol(nil), enc...)
	for _, i := range rng.Perm(nn)[:numErrs] {
		corrupted[i] ^= 0xFF
	}
	res, err = Decode(corrupted, nsym, nil, fcr, 2, false, f)
	if err != nil {
		t.Fatalf("Decode with %d errors: %v", numErrs, err)
	}
	if !symbolsEqual(res.Payload, msg) {
		t.Fatal("payload mismatch after correcting floor(nsym/2) errors")
	}

	corrupted = append([]Symbol(nil), enc...)
	for _, i := range rng.Perm(nn)[:numErrs+1] {
		corrupted[i] ^= 0xFF
	}
	if _, err := Decode(corrupted, nsym, nil, fcr, 2, false, f); err == nil {
		t.Error("expected failure correcting floor(nsym/2)+1 errors")
	}
}

func TestDecodeErasureReportInvariant(t *testing.T) {
	f := defaultTestField(t)
	const nsym = 10
	msg := symbolsOf("hello world ")
	enc, err := EncodeMsg(msg, nsym, 0, 2, nil, f)
	if err != nil {
		t.Fatalf("EncodeMsg: %v", err)
	}

	res, err := Decode(enc, nsym, []int{1}, 0, 2, false, f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !containsInt(res.Errata, 1) {
		t.Fatalf("erasure position 1 missing from errata report: %v", res.Errata)
	}

	corrupted := append([]Symbol(nil), enc...)
	corrupted[1] = 0xFF
	res, err = Decode(corrupted, nsym, nil, 0, 2, false, f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !containsInt(res.Errata, 1) {
		t.Fatalf("errata position 1 missing after blind correction: %v", res.Errata)
	}
}

func TestDecodeErrorsAndErasuresWithinBudget(t *testing.T) {
	f := defaultTestField(t)
	const nsym = 10
	msg := symbolsOf("hello world, this is a longer test message!")
	enc, err := EncodeMsg(msg, nsym, 0, 2, nil, f)
	if err != nil {
		t.Fatalf("EncodeMsg: %v", err)
	}

	for _, tc := range []struct {
		errs, erasures int
	}{
		{0, 10}, {2, 6}, {5, 0}, {3, 4},
	} {
		corrupted := append([]Symbol(nil), enc...)
		var erasePos []int
		for i := 0; i < tc.erasures; i++ {
			corrupted[i] ^= 0x11
			erasePos = append(erasePos, i)
		}
		for i := 0; i < tc.errs; i++ {
			corrupted[len(corrupted)-1-i] ^= 0x22
		}

		res, err := Decode(corrupted, nsym, erasePos, 0, 2, false, f)
		if err != nil {
			t.Fatalf("errs=%d erasures=%d: Decode failed: %v", tc.errs, tc.erasures, err)
		}
		if !symbolsEqual(res.Payload, msg) {
			t.Fatalf("errs=%d erasures=%d: payload mismatch", tc.errs, tc.erasures)
		}
		for _, p := range erasePos {
			if !containsInt(res.Errata, p) {
				t.Fatalf("errs=%d erasures=%d: erasure %d missing from report", tc.errs, tc.erasures, p)
			}
		}
	}
}

func TestDecodeNoFsyndAgreesWithDecode(t *testing.T) {
	f := defaultTestField(t)
	const nsym = 10
	msg := symbolsOf(repeatString("hello world ", 5))
	enc, err := EncodeMsg(msg, nsym, 0, 2, nil, f)
	if err != nil {
		t.Fatalf("EncodeMsg: %v", err)
	}

	corrupted := append([]Symbol(nil), enc...)
	corrupted[3] ^= 0xAA
	corrupted[10] ^= 0x55
	erasePos := []int{20}
	corrupted[20] ^= 0x01

	a, err := Decode(corrupted, nsym, erasePos, 0, 2, false, f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	b, err := DecodeNoFsynd(corrupted, nsym, erasePos, 0, 2, false, f)
	if err != nil {
		t.Fatalf("DecodeNoFsynd: %v", err)
	}
	if !symbolsEqual(a.Payload, b.Payload) || !symbolsEqual(a.Codeword, b.Codeword) {
		t.Fatal("Decode and DecodeNoFsynd disagree on a corrected message")
	}
}

func TestDecodeTooManyErasuresFailsBeforeWork(t *testing.T) {
	f := defaultTestField(t)
	const nsym = 4
	msg := symbolsOf("abc")
	enc, err := EncodeMsg(msg, nsym, 0, 2, nil, f)
	if err != nil {
		t.Fatalf("EncodeMsg: %v", err)
	}
	erasePos := []int{0, 1, 2, 3, 4}
	if _, err := Decode(enc, nsym, erasePos, 0, 2, false, f); err == nil {
		t.Error("expected TooManyErasures")
	}
}

func TestDecodeInvalidErasurePosition(t *testing.T) {
	f := defaultTestField(t)
	const nsym = 4
	msg := symbolsOf("abc")
	enc, err := EncodeMsg(msg, nsym, 0, 2, nil, f)
	if err != nil {
		t.Fatalf("EncodeMsg: %v", err)
	}
	if _, err := Decode(enc, nsym, []int{len(enc)}, 0, 2, false, f); err == nil {
		t.Error("expected InvalidErasurePosition for out-of-range index")
	}
}

func symbolsOf(s string) []Symbol {
	out := make([]Symbol, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = Symbol(s[i])
	}
	return out
}

func symbolsToBytes(s []Symbol) []byte {
	out := make([]byte, len(s))
	for i, v := range s {
		out[i] = byte(v)
	}
	return out
}

func symbolsEqual(a, b []Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func repeatString(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}
