package main

import (
	"fmt"
	"os"

	"github.com/jdeng/goanimgif/internal/gif"
)

// createMinimalGIF writes a 4-frame 8x8 animation exercising the common
// stream features: a global color table, graphic control extensions with
// delays, transparency and each disposal method, plus a comment block.
func createMinimalGIF(filename string) error {
	table := gif.ColorTable{
		{R: 0x00, G: 0x00, B: 0x00}, // background
		{R: 0xFF, G: 0x00, B: 0x00},
		{R: 0x00, G: 0xFF, B: 0x00},
		{R: 0x00, G: 0x00, B: 0xFF},
	}

	solid := func(index uint8) []uint8 {
		pix := make([]uint8, 8*8)
		for i := range pix {
			pix[i] = index
		}
		return pix
	}
	square := func(index uint8) []uint8 {
		pix := make([]uint8, 4*4)
		for i := range pix {
			pix[i] = index
		}
		return pix
	}

	builder := gif.NewBuilder(8, 8).
		SetGlobalTable(table).
		Comment("created by create-test-gif").
		GraphicControl(gif.GraphicControl{Disposal: gif.DisposalNone, DelayCS: 10}).
		Image(0, 0, 8, 8, nil, solid(1), 0).
		GraphicControl(gif.GraphicControl{Disposal: gif.DisposalBackground, DelayCS: 10}).
		Image(2, 2, 4, 4, nil, square(2), 0).
		GraphicControl(gif.GraphicControl{Disposal: gif.DisposalPrevious, DelayCS: 10}).
		Image(4, 4, 4, 4, nil, square(3), 0).
		GraphicControl(gif.GraphicControl{DelayCS: 10, HasTransparency: true, TransparentIndex: 0}).
		Image(0, 0, 8, 8, nil, solid(0), 0)

	return os.WriteFile(filename, builder.Bytes(), 0o644)
}

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: create-test-gif <output-file>")
		os.Exit(1)
	}

	filename := os.Args[1]
	if err := createMinimalGIF(filename); err != nil {
		fmt.Printf("Error creating test GIF file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created test GIF file: %s\n", filename)
}
