package gif

import (
	"bytes"
	"testing"
)

// packCodes builds an LZW payload from explicit (code, width) pairs, for
// hand-written streams.
type codeSpec struct {
	code  int
	width uint
}

func packCodes(codes []codeSpec) []byte {
	var w lzwWriter
	for _, c := range codes {
		w.writeCode(c.code, c.width)
	}
	w.flush()
	return w.buf
}

func TestDecompressKnownStream(t *testing.T) {
	// minCodeSize 2: clear=4, end=5, initial width 3.
	payload := packCodes([]codeSpec{{4, 3}, {1, 3}, {1, 3}, {5, 3}})
	if !bytes.Equal(payload, []byte{0x4C, 0x0A}) {
		t.Fatalf("Unexpected packing: %v", payload)
	}
	out, err := decompress(2, payload)
	if err != nil {
		t.Fatalf("decompress failed: %v", err)
	}
	if !bytes.Equal(out, []byte{1, 1}) {
		t.Errorf("Expected [1 1], got %v", out)
	}
}

func TestDecompressFirstCodeNotClear(t *testing.T) {
	payload := packCodes([]codeSpec{{1, 3}, {5, 3}})
	if _, err := decompress(2, payload); err == nil {
		t.Fatal("Expected error when the first code is not clear")
	}
}

func TestDecompressBadMinCodeSize(t *testing.T) {
	for _, size := range []int{-1, 0, 1, 9, 13} {
		if _, err := decompress(size, []byte{0x04}); err == nil {
			t.Errorf("Expected error for minimum code size %d", size)
		}
	}
}

func TestDecompressMissingEOI(t *testing.T) {
	// Stream just stops after a literal; not an error. Six code bits fill one
	// byte, so the two leftover bits cannot form another code.
	payload := packCodes([]codeSpec{{4, 3}, {2, 3}})
	out, err := decompress(2, payload)
	if err != nil {
		t.Fatalf("decompress failed: %v", err)
	}
	if !bytes.Equal(out, []byte{2}) {
		t.Errorf("Expected [2], got %v", out)
	}
}

func TestDecompressTrailingPadding(t *testing.T) {
	// Nine code bits flush into two bytes, leaving seven zero padding bits.
	// Padding wide enough to form complete codes decodes as index 0.
	payload := packCodes([]codeSpec{{4, 3}, {2, 3}, {3, 3}})
	out, err := decompress(2, payload)
	if err != nil {
		t.Fatalf("decompress failed: %v", err)
	}
	if !bytes.Equal(out, []byte{2, 3, 0, 0}) {
		t.Errorf("Expected [2 3 0 0], got %v", out)
	}
}

func TestDecompressUndefinedCodeRecovery(t *testing.T) {
	// Code 6 is exactly one ahead of the table: the decoder must emit
	// prev + first(prev) and register it, not fail.
	payload := packCodes([]codeSpec{{4, 3}, {0, 3}, {6, 3}, {5, 3}})
	out, err := decompress(2, payload)
	if err != nil {
		t.Fatalf("decompress failed: %v", err)
	}
	if !bytes.Equal(out, []byte{0, 0, 0}) {
		t.Errorf("Expected [0 0 0], got %v", out)
	}
}

func TestDecompressMidStreamClear(t *testing.T) {
	// A clear between literals resets the table; the next code is again a
	// bare literal.
	payload := packCodes([]codeSpec{
		{4, 3}, {1, 3}, {2, 3}, // emits 1, 2; table grows to 7
		{4, 3},                 // clear
		{3, 3}, {3, 3}, {5, 3}, // emits 3, 3 at the reset width
	})
	out, err := decompress(2, payload)
	if err != nil {
		t.Fatalf("decompress failed: %v", err)
	}
	if !bytes.Equal(out, []byte{1, 2, 3, 3}) {
		t.Errorf("Expected [1 2 3 3], got %v", out)
	}
}

func TestDecompressWidthGrowth(t *testing.T) {
	// minCodeSize 2: table starts at 6 entries. Two literal codes after the
	// first add two entries, filling the table to 8 = 2^3, so the following
	// codes must be read 4 bits wide.
	payload := packCodes([]codeSpec{
		{4, 3}, {0, 3}, {1, 3}, {2, 3}, // size: 6, 7, 8 -> width now 4
		{3, 4}, {5, 4},
	})
	out, err := decompress(2, payload)
	if err != nil {
		t.Fatalf("decompress failed: %v", err)
	}
	if !bytes.Equal(out, []byte{0, 1, 2, 3}) {
		t.Errorf("Expected [0 1 2 3], got %v", out)
	}
}

func TestDecompressDeferredClear(t *testing.T) {
	// Drive the table to the 4096-entry cap with literal zeros, then keep
	// decoding against the frozen table.
	var codes []codeSpec
	width := uint(3)
	size := 6
	codes = append(codes, codeSpec{4, width}, codeSpec{0, width})
	for size < maxTableSize {
		size++
		codes = append(codes, codeSpec{0, width})
		if size == 1<<width && width < maxCodeWidth {
			width++
		}
	}
	if width != maxCodeWidth {
		t.Fatalf("Setup error: width %d", width)
	}
	// Frozen: entry 4095 is a two-symbol zero chain, literals still resolve,
	// and no growth means the width stays at 12.
	codes = append(codes,
		codeSpec{4095, width},
		codeSpec{1, width},
		codeSpec{5, width},
	)
	zeros := size - 6 + 1 // one per literal zero code

	out, err := decompress(2, packCodes(codes))
	if err != nil {
		t.Fatalf("decompress failed: %v", err)
	}
	want := append(bytes.Repeat([]byte{0}, zeros), 0, 0, 1)
	if !bytes.Equal(out, want) {
		t.Errorf("Expected %d symbols ending in [0 0 1], got %d ending in %v",
			len(want), len(out), out[len(out)-3:])
	}
}

func TestLZWRoundTrip(t *testing.T) {
	// Encoding a known index sequence and decoding it must return the
	// identical sequence, across several sizes and lengths.
	cases := []struct {
		minCodeSize int
		length      int
	}{
		{2, 1},
		{2, 10},
		{2, 5000}, // forces a table freeze and an encoder-issued clear
		{4, 700},
		{8, 3000},
	}
	for _, tc := range cases {
		indices := make([]uint8, tc.length)
		limit := 1 << tc.minCodeSize
		for i := range indices {
			indices[i] = uint8((i*7 + i/13) % limit)
		}
		payload, err := encodeLZW(tc.minCodeSize, indices)
		if err != nil {
			t.Fatalf("encodeLZW(%d, len %d) failed: %v", tc.minCodeSize, tc.length, err)
		}
		out, err := decompress(tc.minCodeSize, payload)
		if err != nil {
			t.Fatalf("decompress(%d, len %d) failed: %v", tc.minCodeSize, tc.length, err)
		}
		if !bytes.Equal(out, indices) {
			t.Errorf("Round trip mismatch for size %d length %d", tc.minCodeSize, tc.length)
		}
	}
}

func TestEncodeLZWRejectsWideIndex(t *testing.T) {
	if _, err := encodeLZW(2, []uint8{4}); err == nil {
		t.Fatal("Expected error for index outside 2-bit alphabet")
	}
}
