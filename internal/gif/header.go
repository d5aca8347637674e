package gif

import "fmt"

var (
	signature87a = []byte("GIF87a")
	signature89a = []byte("GIF89a")
)

// Block introducers and extension labels from the GIF89a specification.
const (
	extensionIntroducer = 0x21
	imageSeparator      = 0x2C
	trailer             = 0x3B

	labelGraphicControl = 0xF9
	labelComment        = 0xFE
	labelPlainText      = 0x01
	labelApplication    = 0xFF
)

// RGB is one entry of a GIF color table.
type RGB struct {
	R, G, B uint8
}

// ColorTable is an ordered sequence of RGB triples. Its length is always a
// power of two in [2, 256].
type ColorTable []RGB

func parseColorTable(raw []byte) ColorTable {
	table := make(ColorTable, len(raw)/3)
	for i := range table {
		table[i] = RGB{raw[i*3], raw[i*3+1], raw[i*3+2]}
	}
	return table
}

// screenFlags is the packed byte of the logical screen descriptor.
type screenFlags uint8

func (f screenFlags) HasGlobalTable() bool { return f&0x80 != 0 }
func (f screenFlags) ColorResolution() int { return int(f&0x70)>>4 + 1 }
func (f screenFlags) Sorted() bool         { return f&0x08 != 0 }
func (f screenFlags) GlobalTableSize() int { return 1 << ((f & 0x07) + 1) }

// Header holds the GIF signature, logical screen descriptor and, when
// present, the global color table. Immutable once parsed.
type Header struct {
	Version         string // "87a" or "89a"
	Width           int
	Height          int
	ColorResolution int
	BackgroundIndex uint8
	AspectRatio     uint8
	GlobalTable     ColorTable // nil when the global table flag is unset
}

// parseHeader reads the 6-byte signature, the 7-byte logical screen
// descriptor and the optional global color table.
func parseHeader(s *stream) (*Header, error) {
	sig, err := s.ReadBytes(6)
	if err != nil {
		return nil, err
	}
	if string(sig) != string(signature87a) && string(sig) != string(signature89a) {
		return nil, newError(BadSignature, 0, fmt.Sprintf("%q", sig))
	}

	h := &Header{Version: string(sig[3:])}
	w, err := s.ReadUint16()
	if err != nil {
		return nil, err
	}
	ht, err := s.ReadUint16()
	if err != nil {
		return nil, err
	}
	h.Width, h.Height = int(w), int(ht)

	packed, err := s.ReadByte()
	if err != nil {
		return nil, err
	}
	flags := screenFlags(packed)
	h.ColorResolution = flags.ColorResolution()
	if h.BackgroundIndex, err = s.ReadByte(); err != nil {
		return nil, err
	}
	if h.AspectRatio, err = s.ReadByte(); err != nil {
		return nil, err
	}

	if flags.HasGlobalTable() {
		raw, err := s.ReadBytes(3 * flags.GlobalTableSize())
		if err != nil {
			return nil, err
		}
		h.GlobalTable = parseColorTable(raw)
	}
	return h, nil
}

// DisposalMethod tells how the canvas is treated before the next image is
// drawn.
type DisposalMethod int

const (
	DisposalUnspecified DisposalMethod = iota
	DisposalNone
	DisposalBackground
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

// GraphicControl is the transient per-image state parsed from a Graphic
// Control Extension. It is defaulted before each image, consumed by the
// compositor when that image is drawn, and then discarded. The disposal it
// carries describes how the canvas is restored before the NEXT image, not how
// the current one is rendered.
type GraphicControl struct {
	Disposal         DisposalMethod
	UserInput        bool
	HasTransparency  bool
	TransparentIndex uint8
	DelayCS          uint16 // hundredths of a second
}

// parseGraphicControl fills gc from the extension's joined sub-block payload:
// packed flags byte (disposal bits 4-2, user input bit 1, transparency bit 0),
// little-endian delay, transparent index.
func parseGraphicControl(data []byte, offset int) (GraphicControl, error) {
	if len(data) < 4 {
		return GraphicControl{}, newError(UnexpectedEndOfStream, offset, "graphic control payload too short")
	}
	return GraphicControl{
		Disposal:         DisposalMethod((data[0] & 0x1C) >> 2),
		UserInput:        data[0]&0x02 != 0,
		HasTransparency:  data[0]&0x01 != 0,
		DelayCS:          uint16(data[1]) | uint16(data[2])<<8,
		TransparentIndex: data[3],
	}, nil
}

// imageFlags is the packed byte of an image descriptor.
type imageFlags uint8

func (f imageFlags) HasLocalTable() bool { return f&0x80 != 0 }
func (f imageFlags) Interlaced() bool    { return f&0x40 != 0 }
func (f imageFlags) Sorted() bool        { return f&0x20 != 0 }
func (f imageFlags) LocalTableSize() int { return 1 << ((f & 0x07) + 1) }

// ImageDescriptor describes one image block: placement on the logical screen,
// dimensions, the optional local color table and the interlace flag.
type ImageDescriptor struct {
	Left, Top     int
	Width, Height int
	Interlaced    bool
	LocalTable    ColorTable // nil when the local table flag is unset
}

// parseImageDescriptor reads the 9 bytes following the 0x2C separator plus
// the optional local color table.
func parseImageDescriptor(s *stream) (*ImageDescriptor, error) {
	var fields [4]int
	for i := range fields {
		v, err := s.ReadUint16()
		if err != nil {
			return nil, err
		}
		fields[i] = int(v)
	}
	desc := &ImageDescriptor{
		Left: fields[0], Top: fields[1],
		Width: fields[2], Height: fields[3],
	}

	packed, err := s.ReadByte()
	if err != nil {
		return nil, err
	}
	flags := imageFlags(packed)
	desc.Interlaced = flags.Interlaced()
	if flags.HasLocalTable() {
		raw, err := s.ReadBytes(3 * flags.LocalTableSize())
		if err != nil {
			return nil, err
		}
		desc.LocalTable = parseColorTable(raw)
	}
	return desc, nil
}
