package gif

// stream is a positioned byte reader over a complete in-memory GIF file. GIF
// multi-byte fields are little-endian. Every read failure is reported as an
// UnexpectedEndOfStream carrying the current byte offset.
type stream struct {
	buf []byte
	pos int
}

func newStream(data []byte) *stream {
	return &stream{buf: data}
}

// Offset returns the current byte index, used for error context.
func (s *stream) Offset() int { return s.pos }

// ReadByte returns the next raw byte.
func (s *stream) ReadByte() (byte, error) {
	if s.pos >= len(s.buf) {
		return 0, newError(UnexpectedEndOfStream, s.pos, "need 1 byte")
	}
	b := s.buf[s.pos]
	s.pos++
	return b, nil
}

// ReadUint16 reads a little-endian 16-bit value.
func (s *stream) ReadUint16() (uint16, error) {
	if s.pos+2 > len(s.buf) {
		return 0, newError(UnexpectedEndOfStream, s.pos, "need 2 bytes")
	}
	v := uint16(s.buf[s.pos]) | uint16(s.buf[s.pos+1])<<8
	s.pos += 2
	return v, nil
}

// ReadBytes returns the next n bytes as a subslice of the backing buffer.
func (s *stream) ReadBytes(n int) ([]byte, error) {
	if n < 0 || s.pos+n > len(s.buf) {
		return nil, newError(UnexpectedEndOfStream, s.pos, "short read")
	}
	b := s.buf[s.pos : s.pos+n]
	s.pos += n
	return b, nil
}
