// Package gif decodes animated GIF87a/GIF89a streams into fully composited
// raster frames ready for playback. Disposal methods, transparency and
// interlacing are replayed exactly as a GIF player would, so consumers can
// treat the result as a plain list of frames.
package gif

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/jdeng/goanimgif/internal/gif"
)

// Options configures GIF decoding behavior.
type Options struct {
	// Data contains the complete GIF byte stream to decode.
	Data []byte
	// SkipUnknownExtensions skips unrecognized extension blocks instead of
	// failing with an UnsupportedExtension error.
	SkipUnknownExtensions bool
	// Trace, when non-nil, receives progress messages from the decoder.
	Trace func(format string, args ...any)
}

// Decoder manages the decoding of one GIF stream. It is single-use;
// independent streams may be decoded concurrently with separate Decoders.
type Decoder struct {
	decoder *gif.Decoder
}

// New creates a decoder and parses the stream header. Signature and screen
// descriptor errors surface here, before any frame is decoded.
func New(opts Options) (*Decoder, error) {
	if len(opts.Data) == 0 {
		return nil, errors.New("gif: empty source data")
	}
	internalDecoder, err := gif.NewDecoder(gif.DecoderOptions{
		Data:                  opts.Data,
		SkipUnknownExtensions: opts.SkipUnknownExtensions,
		Trace:                 opts.Trace,
	})
	if err != nil {
		return nil, err
	}
	return &Decoder{decoder: internalDecoder}, nil
}

// Version returns the stream version, "87a" or "89a".
func (d *Decoder) Version() string { return d.decoder.Header().Version }

// ScreenWidth returns the logical screen width all frames share.
func (d *Decoder) ScreenWidth() int { return d.decoder.Header().Width }

// ScreenHeight returns the logical screen height all frames share.
func (d *Decoder) ScreenHeight() int { return d.decoder.Header().Height }

// DecodeAll decodes every frame of the stream. On error the frames decoded
// before the failure are returned alongside it; discard them if partial
// output is unwanted.
func (d *Decoder) DecodeAll() ([]*Frame, error) {
	var frames []*Frame
	err := d.Decode(func(f *Frame) error {
		frames = append(frames, f)
		return nil
	})
	return frames, err
}

// Decode streams frames to fn as each one is composited, avoiding holding a
// whole long animation in memory. Returning an error from fn stops decoding.
func (d *Decoder) Decode(fn func(*Frame) error) error {
	return d.decoder.Decode(func(f gif.Frame) error {
		return fn(&Frame{f: f})
	})
}

// Frame is one composited frame of the animation together with its playback
// metadata. The raster is an immutable snapshot of the logical screen.
type Frame struct {
	f gif.Frame
}

// Image returns the composited raster, sized to the logical screen.
func (f *Frame) Image() *image.RGBA { return f.f.Image }

// Delay returns the presentation delay as a duration.
func (f *Frame) Delay() time.Duration {
	return time.Duration(f.f.DelayCS) * 10 * time.Millisecond
}

// DelayCS returns the raw delay in hundredths of a second, as stored in the
// stream.
func (f *Frame) DelayCS() uint16 { return f.f.DelayCS }

// Disposal returns the canvas restoration recorded for the following frame.
func (f *Frame) Disposal() DisposalMethod { return DisposalMethod(f.f.Disposal) }

// Transparent returns the transparent color index and whether one was set.
func (f *Frame) Transparent() (uint8, bool) {
	return f.f.TransparentIndex, f.f.HasTransparency
}

// DisposalMethod tells how the canvas is treated before the next frame is
// drawn.
type DisposalMethod int

const (
	// DisposalUnspecified leaves the canvas untouched.
	DisposalUnspecified DisposalMethod = iota
	// DisposalNone leaves the canvas untouched.
	DisposalNone
	// DisposalBackground restores the drawn area to the background color.
	DisposalBackground
	// DisposalPrevious restores the canvas saved before the frame was drawn.
	DisposalPrevious
)

func (d DisposalMethod) String() string {
	switch d {
	case DisposalUnspecified:
		return "Unspecified"
	case DisposalNone:
		return "NoDisposal"
	case DisposalBackground:
		return "RestoreBackground"
	case DisposalPrevious:
		return "RestorePrevious"
	default:
		return fmt.Sprintf("DisposalMethod(%d)", int(d))
	}
}

// ErrorKind classifies decoding failures.
type ErrorKind int

const (
	// BadSignature: the first 6 bytes are not a GIF magic.
	BadSignature ErrorKind = iota
	// UnexpectedEndOfStream: the file is truncated.
	UnexpectedEndOfStream
	// UnsupportedExtension: an unrecognized extension label was seen.
	UnsupportedExtension
	// BadLZWCode: the compressed data stream is malformed.
	BadLZWCode
	// MissingColorTable: an image has neither local nor global color table.
	MissingColorTable
	// MalformedBlock: an unexpected block introducer byte.
	MalformedBlock
	// BadColorIndex: a pixel index falls outside the active color table.
	BadColorIndex
)

func (k ErrorKind) String() string { return gif.ErrorKind(k).String() }

// ErrInfo extracts the kind, byte offset and image index from a decode error.
// frame is -1 when the failure was not tied to a particular image. ok is
// false for errors that did not originate in the decoder.
func ErrInfo(err error) (kind ErrorKind, offset, frame int, ok bool) {
	var de *gif.DecodeError
	if !errors.As(err, &de) {
		return 0, 0, -1, false
	}
	return ErrorKind(de.Kind), de.Offset, de.Frame, true
}
