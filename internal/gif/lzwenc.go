package gif

import "fmt"

// lzwWriter packs variable-width codes into a little-endian bitstream, the
// inverse of codeReader.
type lzwWriter struct {
	buf   []byte
	bits  uint32
	nbits uint
}

func (w *lzwWriter) writeCode(code int, width uint) {
	w.bits |= uint32(code) << w.nbits
	w.nbits += width
	for w.nbits >= 8 {
		w.buf = append(w.buf, byte(w.bits))
		w.bits >>= 8
		w.nbits -= 8
	}
}

func (w *lzwWriter) flush() {
	if w.nbits > 0 {
		w.buf = append(w.buf, byte(w.bits))
		w.bits, w.nbits = 0, 0
	}
}

// encodeLZW produces a valid GIF LZW payload for an index stream using only
// literal codes. No compression is attempted; the encoder merely tracks the
// decoder's table growth so its code widths stay in sync, issuing a clear
// code whenever the table would freeze. Test tooling, not a product encoder.
func encodeLZW(minCodeSize int, indices []uint8) ([]byte, error) {
	if minCodeSize < 2 || minCodeSize > 8 {
		return nil, fmt.Errorf("lzw: minimum code size %d out of range [2,8]", minCodeSize)
	}
	clear := 1 << minCodeSize
	end := clear + 1
	width := uint(minCodeSize + 1)
	size := clear + 2
	first := true

	var w lzwWriter
	w.writeCode(clear, width)
	for _, idx := range indices {
		if int(idx) >= clear {
			return nil, fmt.Errorf("lzw: index %d needs more than %d bits", idx, minCodeSize)
		}
		w.writeCode(int(idx), width)
		if first {
			first = false
			continue
		}
		// The decoder registers one table entry per code after the first.
		size++
		if size == 1<<width {
			if width < maxCodeWidth {
				width++
			} else {
				w.writeCode(clear, width)
				width = uint(minCodeSize + 1)
				size = clear + 2
				first = true
			}
		}
	}
	w.writeCode(end, width)
	w.flush()
	return w.buf, nil
}
