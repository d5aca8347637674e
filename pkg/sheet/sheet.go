// Package sheet slices a rectangular sprite sheet into a grid of equally
// sized sub-rasters. It produces the same "ordered sequence of rasters" shape
// as the GIF decoder, so both can feed the same animation consumer.
package sheet

import (
	"fmt"
	"image"
	"image/draw"
)

// Slice splits src into cols x rows tiles, row by row from the top left, and
// returns them as independent RGBA copies. Tile dimensions are the integer
// division of the sheet dimensions; any remainder on the right or bottom edge
// is discarded, matching the usual sprite sheet convention.
func Slice(src image.Image, cols, rows int) ([]*image.RGBA, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("sheet: invalid grid %dx%d", cols, rows)
	}
	bounds := src.Bounds()
	tileW := bounds.Dx() / cols
	tileH := bounds.Dy() / rows
	if tileW == 0 || tileH == 0 {
		return nil, fmt.Errorf("sheet: %dx%d sheet too small for %dx%d grid",
			bounds.Dx(), bounds.Dy(), cols, rows)
	}

	tiles := make([]*image.RGBA, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			tile := image.NewRGBA(image.Rect(0, 0, tileW, tileH))
			origin := image.Pt(bounds.Min.X+col*tileW, bounds.Min.Y+row*tileH)
			draw.Draw(tile, tile.Bounds(), src, origin, draw.Src)
			tiles = append(tiles, tile)
		}
	}
	return tiles, nil
}
