package gif

import (
	"image"
	"image/draw"
)

// Frame is one fully composited raster of the animation, a point-in-time copy
// of the logical-screen canvas together with the metadata a player needs to
// animate it. Once appended to the output it is never mutated.
type Frame struct {
	// Image is the composited canvas copy, sized to the logical screen.
	Image *image.RGBA
	// DelayCS is the presentation delay in hundredths of a second.
	DelayCS uint16
	// Disposal tells how the canvas is restored before the next frame.
	Disposal DisposalMethod
	// HasTransparency and TransparentIndex mirror the graphic control state
	// the frame was drawn with.
	HasTransparency  bool
	TransparentIndex uint8
}

// compositor maintains the persistent canvas across all images of a decode
// and replays GIF's disposal rules between them. It owns the canvas
// exclusively; every produced Frame holds an independent copy.
type compositor struct {
	header *Header
	canvas *image.RGBA

	// Disposal state recorded by the previously drawn image, applied before
	// the next one.
	prevDisposal DisposalMethod
	prevBounds   image.Rectangle
	snapshot     *image.RGBA // canvas as it was before the previous image, for RestorePrevious
}

func newCompositor(h *Header) *compositor {
	return &compositor{
		header: h,
		canvas: image.NewRGBA(image.Rect(0, 0, h.Width, h.Height)),
	}
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// draw composites one resolved image onto the canvas and returns the
// resulting frame. The previous image's disposal method is applied first; the
// first image sees an implicit no-disposal. Image bounds are clipped to the
// canvas, so out-of-screen offsets or dimensions never write out of bounds.
func (c *compositor) draw(img *image.RGBA, desc *ImageDescriptor, gc GraphicControl) Frame {
	switch c.prevDisposal {
	case DisposalBackground:
		fill := backgroundColor(c.header)
		clear := c.prevBounds.Intersect(c.canvas.Bounds())
		draw.Draw(c.canvas, clear, &image.Uniform{fill}, image.Point{}, draw.Src)
	case DisposalPrevious:
		if c.snapshot != nil {
			copy(c.canvas.Pix, c.snapshot.Pix)
		}
	}

	bounds := image.Rect(desc.Left, desc.Top, desc.Left+desc.Width, desc.Top+desc.Height)
	if gc.Disposal == DisposalPrevious {
		c.snapshot = cloneRGBA(c.canvas)
	}

	// Over, not Src: transparent source pixels leave the canvas visible.
	target := bounds.Intersect(c.canvas.Bounds())
	sp := image.Pt(target.Min.X-bounds.Min.X, target.Min.Y-bounds.Min.Y)
	draw.Draw(c.canvas, target, img, sp, draw.Over)

	c.prevDisposal = gc.Disposal
	c.prevBounds = bounds

	return Frame{
		Image:            cloneRGBA(c.canvas),
		DelayCS:          gc.DelayCS,
		Disposal:         gc.Disposal,
		HasTransparency:  gc.HasTransparency,
		TransparentIndex: gc.TransparentIndex,
	}
}
