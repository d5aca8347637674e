package gif

import "errors"

// DecoderOptions configures one decode run.
type DecoderOptions struct {
	// Data is the complete GIF byte stream.
	Data []byte
	// SkipUnknownExtensions downgrades unrecognized extension labels from a
	// fatal UnsupportedExtension error to a skipped block. Real-world
	// encoders emit nonstandard extensions routinely.
	SkipUnknownExtensions bool
	// Trace, when non-nil, receives structured progress messages. It replaces
	// any process-wide debug state; the decoder never writes to stdout.
	Trace func(format string, args ...any)
}

// Decoder turns a GIF87a/GIF89a byte stream into an ordered sequence of
// fully composited frames. Decoding is strictly sequential: each frame's
// canvas depends on all prior frames. A Decoder is single-use; independent
// files can be decoded concurrently with independent Decoders.
type Decoder struct {
	opts   DecoderOptions
	s      *stream
	header *Header
}

// NewDecoder validates the options and parses the header eagerly, so a
// BadSignature is reported before any frame work starts.
func NewDecoder(opts DecoderOptions) (*Decoder, error) {
	if len(opts.Data) == 0 {
		return nil, errors.New("gif: empty source data")
	}
	s := newStream(opts.Data)
	header, err := parseHeader(s)
	if err != nil {
		return nil, err
	}
	d := &Decoder{opts: opts, s: s, header: header}
	d.tracef("header: %s %dx%d, global table %d entries",
		header.Version, header.Width, header.Height, len(header.GlobalTable))
	return d, nil
}

// Header returns the parsed signature and logical screen descriptor.
func (d *Decoder) Header() *Header { return d.header }

func (d *Decoder) tracef(format string, args ...any) {
	if d.opts.Trace != nil {
		d.opts.Trace(format, args...)
	}
}

// DecodeAll runs the decode to completion and collects every frame. On error
// the frames composited before the failure are returned alongside it, so
// callers may explicitly keep partial results.
func (d *Decoder) DecodeAll() ([]Frame, error) {
	var frames []Frame
	err := d.Decode(func(f Frame) error {
		frames = append(frames, f)
		return nil
	})
	return frames, err
}

// Decode drives the block dispatch loop and streams each composited frame to
// fn as soon as it is ready, so long animations need not be held in memory at
// once. A non-nil error from fn stops the decode and is returned unchanged.
func (d *Decoder) Decode(fn func(Frame) error) error {
	comp := newCompositor(d.header)
	var gc GraphicControl
	frameIndex := 0

	for {
		introducer, err := d.s.ReadByte()
		if err != nil {
			return err
		}

		switch introducer {
		case trailer:
			d.tracef("trailer, %d frames decoded", frameIndex)
			return nil

		case extensionIntroducer:
			if gc, err = d.readExtension(gc); err != nil {
				return err
			}

		case imageSeparator:
			frame, err := d.readImage(comp, gc, frameIndex)
			if err != nil {
				return err
			}
			if err := fn(frame); err != nil {
				return err
			}
			frameIndex++
			// Graphic control state applies to exactly one image.
			gc = GraphicControl{}

		default:
			return newError(MalformedBlock, d.s.Offset()-1,
				"unexpected block introducer")
		}
	}
}

// readExtension dispatches on the extension label following a 0x21 byte.
// Only the graphic control payload is interpreted; comment, plain text and
// application payloads are consumed and dropped.
func (d *Decoder) readExtension(gc GraphicControl) (GraphicControl, error) {
	label, err := d.s.ReadByte()
	if err != nil {
		return gc, err
	}
	offset := d.s.Offset()

	switch label {
	case labelGraphicControl:
		d.tracef("graphic control extension at %d", offset)
		data, err := readBlocks(d.s)
		if err != nil {
			return gc, err
		}
		return parseGraphicControl(data, offset)

	case labelComment, labelPlainText, labelApplication:
		d.tracef("extension 0x%02X at %d", label, offset)
		return gc, skipBlocks(d.s)

	default:
		if d.opts.SkipUnknownExtensions {
			d.tracef("skipping unknown extension 0x%02X at %d", label, offset)
			return gc, skipBlocks(d.s)
		}
		return gc, newError(UnsupportedExtension, offset, "unknown extension label")
	}
}

// readImage parses one image block, decompresses and resolves it, and
// composites it onto the canvas.
func (d *Decoder) readImage(comp *compositor, gc GraphicControl, frameIndex int) (Frame, error) {
	desc, err := parseImageDescriptor(d.s)
	if err != nil {
		return Frame{}, err
	}
	d.tracef("image %d: %dx%d at (%d,%d), interlaced=%v, local table %d entries",
		frameIndex, desc.Width, desc.Height, desc.Left, desc.Top,
		desc.Interlaced, len(desc.LocalTable))

	table := desc.LocalTable
	if table == nil {
		table = d.header.GlobalTable
	}
	if table == nil {
		return Frame{}, newFrameError(MissingColorTable, d.s.Offset(), frameIndex,
			"image has neither local nor global color table")
	}

	minCodeSize, err := d.s.ReadByte()
	if err != nil {
		return Frame{}, err
	}
	payloadOffset := d.s.Offset()
	payload, err := readBlocks(d.s)
	if err != nil {
		return Frame{}, err
	}

	indices, err := decompress(int(minCodeSize), payload)
	if err != nil {
		return Frame{}, newFrameError(BadLZWCode, payloadOffset, frameIndex, err.Error())
	}

	transparent := -1
	if gc.HasTransparency {
		transparent = int(gc.TransparentIndex)
	}
	img, err := resolve(indices, desc.Width, desc.Height, table, transparent)
	if err != nil {
		return Frame{}, newFrameError(BadColorIndex, payloadOffset, frameIndex, err.Error())
	}
	if desc.Interlaced {
		deinterlace(img)
	}

	return comp.draw(img, desc, gc), nil
}
