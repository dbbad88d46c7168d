package reedsolomon

import (
	"bytes"
	"fmt"
	"testing"

	klausrs "github.com/klauspost/reedsolomon"
)

// TestComparisonRoundTrip runs this package's encode/decode and
// github.com/klauspost/reedsolomon's encode/verify on the same (data, parity)
// shape. Each side is checked on its own; their outputs are not compared.
func TestComparisonRoundTrip(t *testing.T) {
	sizes := []int{16, 64, 223}
	nsym := 32

	for _, size := range sizes {
		t.Run(fmt.Sprintf("size_%d", size), func(t *testing.T) {
			data := make([]byte, size)
			for i := range data {
				data[i] = byte(i % 256)
			}

			c, err := NewRSCodec(nsym)
			if err != nil {
				t.Fatalf("NewRSCodec: %v", err)
			}
			ours, err := c.Encode(NewBuffer8(data), nil)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}

			enc, err := klausrs.New(size, nsym)
			if err != nil {
				t.Fatalf("klauspost New: %v", err)
			}
			shards, err := enc.Split(append([]byte(nil), data...))
			if err != nil {
				t.Fatalf("klauspost Split: %v", err)
			}
			if err := enc.Encode(shards); err != nil {
				t.Fatalf("klauspost Encode: %v", err)
			}
			ok, err := enc.Verify(shards)
			if err != nil || !ok {
				t.Fatalf("klauspost Verify: ok=%v err=%v", ok, err)
			}

			payload, _, errata, err := c.Decode(ours, nil, nil, false)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if len(errata) != 0 {
				t.Fatalf("expected no errata on a clean codeword, got %v", errata)
			}
			if !bytes.Equal(payload.(Buffer8).Bytes(), data) {
				t.Fatalf("round-trip payload mismatch")
			}
		})
	}
}

// TestComparisonCorrectionCapacity checks that this package corrects
// floor(nsym/2) = 5 byte errors in a single RS(110, 100) block. Only this
// package's codec is exercised here.
func TestComparisonCorrectionCapacity(t *testing.T) {
	const size = 100
	const nsym = 10

	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i*7 + 1)
	}

	c, err := NewRSCodec(nsym)
	if err != nil {
		t.Fatalf("NewRSCodec: %v", err)
	}
	ours, err := c.Encode(NewBuffer8(data), nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	corrupted := append([]byte(nil), ours.(Buffer8).Bytes()...)
	corrupted[3] ^= 0xFF
	corrupted[40] ^= 0x01
	corrupted[90] ^= 0x7F
	corrupted[100] ^= 0x55
	corrupted[105] ^= 0x22

	payload, _, _, err := c.Decode(NewBuffer8(corrupted), nil, nil, false)
	if err != nil {
		t.Fatalf("Decode with %d errors (budget %d): %v", 5, nsym/2, err)
	}
	if !bytes.Equal(payload.(Buffer8).Bytes(), data) {
		t.Fatalf("corrected payload mismatch")
	}
}
