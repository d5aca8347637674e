package gif

import "fmt"

// ErrorKind classifies the terminal decoding failures.
type ErrorKind int

const (
	// BadSignature indicates the first 6 bytes are not a GIF87a/GIF89a magic.
	BadSignature ErrorKind = iota
	// UnexpectedEndOfStream indicates the file was truncated mid-structure.
	UnexpectedEndOfStream
	// UnsupportedExtension indicates an unrecognized extension label byte.
	UnsupportedExtension
	// BadLZWCode indicates a malformed LZW code stream (e.g. missing the
	// initial clear code).
	BadLZWCode
	// MissingColorTable indicates an image with neither a local nor a global
	// color table.
	MissingColorTable
	// MalformedBlock indicates a block introducer that is neither extension,
	// image separator nor trailer.
	MalformedBlock
	// BadColorIndex indicates a decoded pixel index outside the active color
	// table.
	BadColorIndex
)

func (k ErrorKind) String() string {
	switch k {
	case BadSignature:
		return "BadSignature"
	case UnexpectedEndOfStream:
		return "UnexpectedEndOfStream"
	case UnsupportedExtension:
		return "UnsupportedExtension"
	case BadLZWCode:
		return "BadLZWCode"
	case MissingColorTable:
		return "MissingColorTable"
	case MalformedBlock:
		return "MalformedBlock"
	case BadColorIndex:
		return "BadColorIndex"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// DecodeError is the error type reported for any decoding failure. It carries
// the byte offset where the failure was detected and, for per-image failures,
// the zero-based index of the offending image. Frame is -1 for failures
// outside any image.
type DecodeError struct {
	Kind   ErrorKind
	Offset int
	Frame  int
	Detail string
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("gif: %s at offset %d", e.Kind, e.Offset)
	if e.Frame >= 0 {
		msg += fmt.Sprintf(" (image %d)", e.Frame)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func newError(kind ErrorKind, offset int, detail string) *DecodeError {
	return &DecodeError{Kind: kind, Offset: offset, Frame: -1, Detail: detail}
}

func newFrameError(kind ErrorKind, offset, frame int, detail string) *DecodeError {
	return &DecodeError{Kind: kind, Offset: offset, Frame: frame, Detail: detail}
}
