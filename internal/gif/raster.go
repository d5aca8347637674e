package gif

import (
	"fmt"
	"image"
	"image/color"
)

// deinterlace reorders the rows of an interlaced raster into natural
// top-to-bottom order. GIF interlacing stores rows in four passes: every 8th
// row from 0, every 8th from 4, every 4th from 2, every 2nd from 1. Rows
// beyond a short index stream are transparent in the resolved raster and stay
// transparent in their natural positions.
func deinterlace(img *image.RGBA) {
	height := img.Rect.Dy()
	rowLen := img.Stride
	out := make([]uint8, len(img.Pix))
	passes := [4]struct{ start, step int }{
		{0, 8}, {4, 8}, {2, 4}, {1, 2},
	}
	src := 0
	for _, p := range passes {
		for y := p.start; y < height; y += p.step {
			copy(out[y*rowLen:y*rowLen+rowLen], img.Pix[src*rowLen:src*rowLen+rowLen])
			src++
		}
	}
	img.Pix = out
}

// resolve maps a flat index stream onto an RGBA raster using the active color
// table. Pixels holding the transparent index (pass -1 for none) are written
// with alpha 0; everything else is opaque. An index outside the table is an
// error.
func resolve(indices []uint8, width, height int, table ColorTable, transparent int) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	n := width * height
	if len(indices) < n {
		n = len(indices)
	}
	for i := 0; i < n; i++ {
		idx := int(indices[i])
		if idx == transparent {
			continue // leave the zero-valued (transparent) pixel
		}
		if idx >= len(table) {
			return nil, fmt.Errorf("color index %d outside table of %d entries", idx, len(table))
		}
		c := table[idx]
		p := i * 4
		img.Pix[p+0] = c.R
		img.Pix[p+1] = c.G
		img.Pix[p+2] = c.B
		img.Pix[p+3] = 0xFF
	}
	return img, nil
}

// backgroundColor returns the RGBA fill used by the RestoreBackground
// disposal. When the header has no usable background entry the canvas is
// restored to transparent instead.
func backgroundColor(h *Header) color.RGBA {
	if int(h.BackgroundIndex) < len(h.GlobalTable) {
		c := h.GlobalTable[h.BackgroundIndex]
		return color.RGBA{c.R, c.G, c.B, 0xFF}
	}
	return color.RGBA{}
}
