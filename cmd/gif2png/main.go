package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jdeng/goanimgif/pkg/gif"
)

func main() {
	var inputFile = flag.String("input", "", "Input GIF file")
	var outputDir = flag.String("outdir", "", "Output directory (optional, defaults to input filename without extension)")
	var skipUnknown = flag.Bool("skip-unknown", false, "Skip unknown extension blocks instead of failing")
	var verbose = flag.Bool("verbose", false, "Print decoder trace output")
	flag.Parse()

	if *inputFile == "" {
		log.Fatal("Input file is required. Use -input flag.")
	}

	data, err := os.ReadFile(*inputFile)
	if err != nil {
		log.Fatalf("Failed to read input file: %v", err)
	}

	opts := gif.Options{
		Data:                  data,
		SkipUnknownExtensions: *skipUnknown,
	}
	if *verbose {
		opts.Trace = func(format string, args ...any) {
			fmt.Printf("  "+format+"\n", args...)
		}
	}

	decoder, err := gif.New(opts)
	if err != nil {
		log.Fatalf("Failed to create GIF decoder: %v", err)
	}

	fmt.Printf("GIF version %s, logical screen %dx%d\n",
		decoder.Version(), decoder.ScreenWidth(), decoder.ScreenHeight())

	frames, err := decoder.DecodeAll()
	if err != nil {
		if kind, offset, frame, ok := gif.ErrInfo(err); ok {
			log.Fatalf("Failed to decode GIF: %s at offset %d (image %d)", kind, offset, frame)
		}
		log.Fatalf("Failed to decode GIF: %v", err)
	}

	if len(frames) == 0 {
		log.Fatal("No frames found in GIF file")
	}

	fmt.Printf("Decoded %d frames:\n", len(frames))
	for i, f := range frames {
		idx, transparent := f.Transparent()
		fmt.Printf("  Frame %d: delay=%v, disposal=%s, transparent=%v (index %d)\n",
			i, f.Delay(), f.Disposal(), transparent, idx)
	}

	outdir := *outputDir
	if outdir == "" {
		ext := filepath.Ext(*inputFile)
		outdir = strings.TrimSuffix(*inputFile, ext)
	}
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	base := filepath.Base(outdir)
	for i, f := range frames {
		name := filepath.Join(outdir, fmt.Sprintf("%s-%04d.png", base, i))
		if err := writePNG(name, f); err != nil {
			log.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	fmt.Printf("Successfully wrote %d frames to %s\n", len(frames), outdir)
}

func writePNG(name string, frame *gif.Frame) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, frame.Image())
}
