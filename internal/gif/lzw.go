package gif

import "fmt"

// GIF LZW limits: codes are at most 12 bits wide, so the code table never
// holds more than 4096 entries.
const (
	maxCodeWidth = 12
	maxTableSize = 1 << maxCodeWidth
)

// lzwState tracks the decompressor's position in its code state machine.
type lzwState int

const (
	// lzwMustClear: the very first code must be the clear code.
	lzwMustClear lzwState = iota
	// lzwFirst: the code following a clear is emitted as a bare literal.
	lzwFirst
	// lzwNormal: regular dictionary growth.
	lzwNormal
	// lzwDeferred: the table is frozen at 4096 entries; codes are looked up
	// literally until an explicit clear arrives.
	lzwDeferred
)

// lzwTable is a fixed-capacity arena of code entries. An entry's index
// sequence is represented as a (prefix entry, appended symbol) pair so that
// registering a new code never copies a sequence. head caches the first
// symbol of each chain and length its total symbol count, so sequences can be
// materialized back-to-front in one pass.
type lzwTable struct {
	prefix [maxTableSize]int16
	suffix [maxTableSize]uint8
	head   [maxTableSize]uint8
	length [maxTableSize]int
	size   int
}

// reset restores the initial contents: one singleton entry per root symbol
// plus the clear and end-of-information placeholders.
func (t *lzwTable) reset(minCodeSize int) {
	clear := 1 << minCodeSize
	for i := 0; i < clear; i++ {
		t.prefix[i] = -1
		t.suffix[i] = uint8(i)
		t.head[i] = uint8(i)
		t.length[i] = 1
	}
	// Clear and EOI occupy two slots but carry no sequence.
	t.prefix[clear], t.prefix[clear+1] = -1, -1
	t.length[clear], t.length[clear+1] = 0, 0
	t.size = clear + 2
}

// add registers prefix+suffix as the next entry. Callers must check the 4096
// cap beforehand.
func (t *lzwTable) add(prefix int, suffix uint8) {
	t.prefix[t.size] = int16(prefix)
	t.suffix[t.size] = suffix
	t.head[t.size] = t.head[prefix]
	t.length[t.size] = t.length[prefix] + 1
	t.size++
}

// emit appends the sequence of entry code to out, walking the prefix chain
// back-to-front.
func (t *lzwTable) emit(out []uint8, code int) []uint8 {
	n := t.length[code]
	start := len(out)
	out = append(out, make([]uint8, n)...)
	for i := n - 1; i >= 0; i-- {
		out[start+i] = t.suffix[code]
		code = int(t.prefix[code])
	}
	return out
}

// codeReader consumes fixed-width codes from the compressed payload as a
// little-endian bitstream: bits are taken low-to-high within each byte,
// crossing byte boundaries as needed.
type codeReader struct {
	data  []byte
	pos   int
	bits  uint32
	nbits uint
}

// next returns the next code of the given width, or ok=false when fewer than
// width bits remain.
func (r *codeReader) next(width uint) (int, bool) {
	for r.nbits < width {
		if r.pos >= len(r.data) {
			return 0, false
		}
		r.bits |= uint32(r.data[r.pos]) << r.nbits
		r.pos++
		r.nbits += 8
	}
	code := int(r.bits & (1<<width - 1))
	r.bits >>= width
	r.nbits -= width
	return code, true
}

// decompress expands one image's LZW payload into a flat stream of color
// table indices. minCodeSize must be in [2, 8]; the code width starts at
// minCodeSize+1 bits and grows with the table, capping at 12.
//
// The returned slice normally holds width*height indices, but some encoders
// pad; callers must size-check before forming a raster. Running out of bits
// before an explicit end-of-information code is not an error.
func decompress(minCodeSize int, data []byte) ([]uint8, error) {
	if minCodeSize < 2 || minCodeSize > 8 {
		return nil, fmt.Errorf("lzw: minimum code size %d out of range [2,8]", minCodeSize)
	}

	clear := 1 << minCodeSize
	end := clear + 1
	width := uint(minCodeSize + 1)

	var table lzwTable
	table.reset(minCodeSize)

	reader := codeReader{data: data}
	state := lzwMustClear
	prev := 0
	var out []uint8

	for {
		code, ok := reader.next(width)
		if !ok {
			return out, nil
		}

		switch state {
		case lzwMustClear:
			if code != clear {
				return nil, fmt.Errorf("lzw: first code %d is not clear (%d)", code, clear)
			}
			state = lzwFirst

		case lzwFirst:
			if code >= clear {
				return nil, fmt.Errorf("lzw: literal expected after clear, got %d", code)
			}
			out = table.emit(out, code)
			prev = code
			state = lzwNormal

		case lzwNormal, lzwDeferred:
			switch {
			case code == end:
				return out, nil
			case code == clear:
				table.reset(minCodeSize)
				width = uint(minCodeSize + 1)
				state = lzwFirst
			case state == lzwDeferred:
				if code >= table.size {
					return nil, fmt.Errorf("lzw: code %d beyond frozen table", code)
				}
				out = table.emit(out, code)
				prev = code
			default:
				if code < table.size {
					out = table.emit(out, code)
					table.add(prev, table.head[code])
				} else {
					// Corrupt or unusual stream: the code is one step ahead
					// of the table. Recover with prev + first(prev), which is
					// both the emitted sequence and the new entry.
					table.add(prev, table.head[prev])
					out = table.emit(out, table.size-1)
				}
				if table.size == 1<<width {
					if width < maxCodeWidth {
						width++
					} else {
						state = lzwDeferred
					}
				}
				prev = code
			}
		}
	}
}
