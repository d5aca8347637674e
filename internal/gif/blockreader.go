package gif

// readBlocks concatenates length-prefixed sub-blocks until the 0x00 block
// terminator and returns the joined payload. It knows nothing about GIF
// semantics beyond the sub-block framing.
func readBlocks(s *stream) ([]byte, error) {
	var out []byte
	for {
		size, err := s.ReadByte()
		if err != nil {
			return nil, err
		}
		if size == 0 {
			return out, nil
		}
		block, err := s.ReadBytes(int(size))
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
	}
}

// skipBlocks walks a sub-block chain without keeping the payload.
func skipBlocks(s *stream) error {
	for {
		size, err := s.ReadByte()
		if err != nil {
			return err
		}
		if size == 0 {
			return nil
		}
		if _, err := s.ReadBytes(int(size)); err != nil {
			return err
		}
	}
}
