package gif

import (
	"image/color"
	"testing"
)

var (
	cRed   = color.RGBA{0xFF, 0x00, 0x00, 0xFF}
	cGreen = color.RGBA{0x00, 0xFF, 0x00, 0xFF}
	cBlue  = color.RGBA{0x00, 0x00, 0xFF, 0xFF}
)

func decodeAll(t *testing.T, data []byte) []Frame {
	t.Helper()
	d, err := NewDecoder(DecoderOptions{Data: data})
	if err != nil {
		t.Fatalf("NewDecoder failed: %v", err)
	}
	frames, err := d.DecodeAll()
	if err != nil {
		t.Fatalf("DecodeAll failed: %v", err)
	}
	return frames
}

func solidIndices(n int, index uint8) []uint8 {
	pix := make([]uint8, n)
	for i := range pix {
		pix[i] = index
	}
	return pix
}

func TestSingleFrame(t *testing.T) {
	data := NewBuilder(2, 2).
		SetGlobalTable(testTable).
		Image(0, 0, 2, 2, nil, solidIndices(4, 1), 0).
		Bytes()
	frames := decodeAll(t, data)
	if len(frames) != 1 {
		t.Fatalf("Expected 1 frame, got %d", len(frames))
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := frames[0].Image.RGBAAt(x, y); got != cRed {
				t.Errorf("Expected red at (%d,%d), got %v", x, y, got)
			}
		}
	}
	if frames[0].DelayCS != 0 || frames[0].Disposal != DisposalUnspecified {
		t.Errorf("Expected default metadata, got %+v", frames[0])
	}
}

func TestRestoreBackgroundDisposal(t *testing.T) {
	data := NewBuilder(4, 4).
		SetGlobalTable(testTable).
		SetBackground(3). // blue
		GraphicControl(GraphicControl{Disposal: DisposalBackground}).
		Image(0, 0, 4, 4, nil, solidIndices(16, 1), 0). // full red
		Image(0, 0, 1, 1, nil, []uint8{2}, 0).          // single green pixel
		Bytes()
	frames := decodeAll(t, data)
	if len(frames) != 2 {
		t.Fatalf("Expected 2 frames, got %d", len(frames))
	}

	// Frame 1: the previous image's footprint is restored to the background
	// color before the green pixel is drawn.
	if got := frames[1].Image.RGBAAt(0, 0); got != cGreen {
		t.Errorf("Expected green at (0,0), got %v", got)
	}
	if got := frames[1].Image.RGBAAt(3, 3); got != cBlue {
		t.Errorf("Expected background blue at (3,3), got %v", got)
	}
	// Frame 0 is a point-in-time copy, untouched by later compositing.
	if got := frames[0].Image.RGBAAt(3, 3); got != cRed {
		t.Errorf("Expected frame 0 to stay red at (3,3), got %v", got)
	}
}

func TestRestorePreviousDisposal(t *testing.T) {
	data := NewBuilder(4, 4).
		SetGlobalTable(testTable).
		Image(0, 0, 4, 4, nil, solidIndices(16, 1), 0). // full red
		GraphicControl(GraphicControl{Disposal: DisposalPrevious}).
		Image(1, 1, 2, 2, nil, solidIndices(4, 2), 0). // green square
		Image(0, 0, 1, 1, nil, []uint8{3}, 0).         // blue pixel
		Bytes()
	frames := decodeAll(t, data)
	if len(frames) != 3 {
		t.Fatalf("Expected 3 frames, got %d", len(frames))
	}

	if got := frames[1].Image.RGBAAt(1, 1); got != cGreen {
		t.Errorf("Expected green at (1,1) in frame 1, got %v", got)
	}
	// Frame 2: canvas restored to its pre-frame-1 state, then the blue pixel.
	if got := frames[2].Image.RGBAAt(1, 1); got != cRed {
		t.Errorf("Expected restored red at (1,1) in frame 2, got %v", got)
	}
	if got := frames[2].Image.RGBAAt(0, 0); got != cBlue {
		t.Errorf("Expected blue at (0,0) in frame 2, got %v", got)
	}
}

func TestTransparencyRevealsPriorFrame(t *testing.T) {
	second := solidIndices(16, 0)
	second[0] = 2 // green at (0,0), everything else transparent
	data := NewBuilder(4, 4).
		SetGlobalTable(testTable).
		Image(0, 0, 4, 4, nil, solidIndices(16, 1), 0).
		GraphicControl(GraphicControl{HasTransparency: true, TransparentIndex: 0}).
		Image(0, 0, 4, 4, nil, second, 0).
		Bytes()
	frames := decodeAll(t, data)
	if len(frames) != 2 {
		t.Fatalf("Expected 2 frames, got %d", len(frames))
	}
	if got := frames[1].Image.RGBAAt(0, 0); got != cGreen {
		t.Errorf("Expected green at (0,0), got %v", got)
	}
	if got := frames[1].Image.RGBAAt(2, 2); got != cRed {
		t.Errorf("Expected prior red revealed at (2,2), got %v", got)
	}
}

func TestOutOfBoundsImageClipped(t *testing.T) {
	// A 4x4 image placed at (1,1) on a 2x2 screen: only the overlapping
	// pixel is drawn, nothing panics.
	data := NewBuilder(2, 2).
		SetGlobalTable(testTable).
		Image(1, 1, 4, 4, nil, solidIndices(16, 2), 0).
		Bytes()
	frames := decodeAll(t, data)
	if len(frames) != 1 {
		t.Fatalf("Expected 1 frame, got %d", len(frames))
	}
	if got := frames[0].Image.RGBAAt(1, 1); got != cGreen {
		t.Errorf("Expected green at (1,1), got %v", got)
	}
	if frames[0].Image.RGBAAt(0, 0).A != 0 {
		t.Errorf("Expected untouched transparent pixel at (0,0)")
	}
}

func TestFrameMetadataPassthrough(t *testing.T) {
	data := NewBuilder(1, 1).
		SetGlobalTable(testTable).
		GraphicControl(GraphicControl{
			Disposal:         DisposalPrevious,
			DelayCS:          123,
			HasTransparency:  true,
			TransparentIndex: 3,
		}).
		Image(0, 0, 1, 1, nil, []uint8{1}, 0).
		Image(0, 0, 1, 1, nil, []uint8{2}, 0).
		Bytes()
	frames := decodeAll(t, data)
	if len(frames) != 2 {
		t.Fatalf("Expected 2 frames, got %d", len(frames))
	}
	f := frames[0]
	if f.DelayCS != 123 || f.Disposal != DisposalPrevious || !f.HasTransparency || f.TransparentIndex != 3 {
		t.Errorf("Metadata not passed through: %+v", f)
	}
	// Graphic control state applies to exactly one image.
	g := frames[1]
	if g.DelayCS != 0 || g.Disposal != DisposalUnspecified || g.HasTransparency {
		t.Errorf("Expected reset metadata on frame 1: %+v", g)
	}
}
