package gif

import (
	"bytes"
	"fmt"
)

// Builder assembles a syntactically valid GIF byte stream in memory. It
// exists for tests and the create-test-gif tool; it is not a general purpose
// encoder (image data is written with the literal-code LZW encoder).
type Builder struct {
	width, height int
	background    uint8
	global        ColorTable
	body          bytes.Buffer
}

// NewBuilder starts a GIF89a stream with the given logical screen size.
func NewBuilder(width, height int) *Builder {
	return &Builder{width: width, height: height}
}

// SetGlobalTable installs the global color table. len(table) must be a power
// of two in [2, 256].
func (b *Builder) SetGlobalTable(table ColorTable) *Builder {
	b.global = table
	return b
}

// SetBackground sets the background color index of the screen descriptor.
func (b *Builder) SetBackground(index uint8) *Builder {
	b.background = index
	return b
}

// tableSizeExponent returns e such that 1<<(e+1) == n. Builder inputs are
// assumed well formed; a non-power-of-two size panics.
func tableSizeExponent(n int) uint8 {
	for e := uint8(0); e < 8; e++ {
		if 1<<(e+1) == n {
			return e
		}
	}
	panic(fmt.Sprintf("gif: color table size %d is not a power of two in [2,256]", n))
}

func writeColorTable(buf *bytes.Buffer, table ColorTable) {
	for _, c := range table {
		buf.WriteByte(c.R)
		buf.WriteByte(c.G)
		buf.WriteByte(c.B)
	}
}

func writeUint16(buf *bytes.Buffer, v int) {
	buf.WriteByte(byte(v))
	buf.WriteByte(byte(v >> 8))
}

// writeSubBlocks frames data into length-prefixed sub-blocks plus the
// terminator.
func writeSubBlocks(buf *bytes.Buffer, data []byte) {
	for len(data) > 0 {
		n := len(data)
		if n > 255 {
			n = 255
		}
		buf.WriteByte(byte(n))
		buf.Write(data[:n])
		data = data[n:]
	}
	buf.WriteByte(0)
}

// GraphicControl appends a Graphic Control Extension for the next image.
func (b *Builder) GraphicControl(gc GraphicControl) *Builder {
	packed := uint8(gc.Disposal) << 2
	if gc.UserInput {
		packed |= 0x02
	}
	if gc.HasTransparency {
		packed |= 0x01
	}
	b.body.WriteByte(extensionIntroducer)
	b.body.WriteByte(labelGraphicControl)
	writeSubBlocks(&b.body, []byte{
		packed, byte(gc.DelayCS), byte(gc.DelayCS >> 8), gc.TransparentIndex,
	})
	return b
}

// Comment appends a Comment Extension.
func (b *Builder) Comment(text string) *Builder {
	b.body.WriteByte(extensionIntroducer)
	b.body.WriteByte(labelComment)
	writeSubBlocks(&b.body, []byte(text))
	return b
}

// Extension appends an extension with an arbitrary label, used to exercise
// the unknown-extension policy.
func (b *Builder) Extension(label uint8, data []byte) *Builder {
	b.body.WriteByte(extensionIntroducer)
	b.body.WriteByte(label)
	writeSubBlocks(&b.body, data)
	return b
}

// Raw appends arbitrary bytes to the block stream, for malformed-input tests.
func (b *Builder) Raw(data []byte) *Builder {
	b.body.Write(data)
	return b
}

// Image appends an image block: descriptor, optional local table, minimum
// code size and the LZW-framed index data. minCodeSize 0 picks the smallest
// legal size for the active table.
func (b *Builder) Image(left, top, width, height int, local ColorTable, indices []uint8, minCodeSize int) *Builder {
	return b.image(left, top, width, height, local, indices, minCodeSize, false)
}

// InterlacedImage is Image with the interlace flag set; indices must already
// be in interlaced row order.
func (b *Builder) InterlacedImage(left, top, width, height int, local ColorTable, indices []uint8, minCodeSize int) *Builder {
	return b.image(left, top, width, height, local, indices, minCodeSize, true)
}

func (b *Builder) image(left, top, width, height int, local ColorTable, indices []uint8, minCodeSize int, interlaced bool) *Builder {
	if minCodeSize == 0 {
		table := local
		if table == nil {
			table = b.global
		}
		minCodeSize = 2
		for 1<<minCodeSize < len(table) {
			minCodeSize++
		}
	}

	b.body.WriteByte(imageSeparator)
	writeUint16(&b.body, left)
	writeUint16(&b.body, top)
	writeUint16(&b.body, width)
	writeUint16(&b.body, height)
	var packed uint8
	if local != nil {
		packed = 0x80 | tableSizeExponent(len(local))
	}
	if interlaced {
		packed |= 0x40
	}
	b.body.WriteByte(packed)
	if local != nil {
		writeColorTable(&b.body, local)
	}

	payload, err := encodeLZW(minCodeSize, indices)
	if err != nil {
		panic(err)
	}
	b.body.WriteByte(byte(minCodeSize))
	writeSubBlocks(&b.body, payload)
	return b
}

// Bytes returns the complete file: header, screen descriptor, global table,
// accumulated blocks and the trailer.
func (b *Builder) Bytes() []byte {
	var buf bytes.Buffer
	buf.Write(signature89a)
	writeUint16(&buf, b.width)
	writeUint16(&buf, b.height)
	var packed uint8
	if b.global != nil {
		packed = 0x80 | tableSizeExponent(len(b.global))
	}
	buf.WriteByte(packed)
	buf.WriteByte(b.background)
	buf.WriteByte(0) // aspect ratio
	if b.global != nil {
		writeColorTable(&buf, b.global)
	}
	buf.Write(b.body.Bytes())
	buf.WriteByte(trailer)
	return buf.Bytes()
}
