// Package pixel exposes RGBA pixel grids and their opaque bounding box.
//
// A Grid is the contract the rest of the pipeline builds on: anything
// that can hand back a width, a height, and a row-major RGBA byte slice
// can be fed to pkg/voxelmesh or used as an atlas source.
package pixel

import (
	"fmt"
	"image"
	"image/draw"
)

// AlphaThreshold is the minimum alpha value treated as opaque.
const AlphaThreshold = 128

// Grid is a row-major RGBA pixel buffer, 4 bytes per pixel.
type Grid struct {
	Width, Height int
	Pixels        []byte
}

// NewGrid validates and wraps a pre-decoded RGBA buffer.
func NewGrid(width, height int, pixels []byte) (*Grid, error) {
	want := width * height * 4
	if len(pixels) != want {
		return nil, fmt.Errorf("pixel: buffer length %d does not match %dx%d RGBA (%d)", len(pixels), width, height, want)
	}
	return &Grid{Width: width, Height: height, Pixels: pixels}, nil
}

// FromImage decodes an already-loaded image.Image into a Grid. Decoding
// arbitrary input files from disk is a CLI-layer concern; turning a
// decoded image.Image into this package's RGBA contract is the one piece
// of stdlib image handling that belongs here, used by internal/pipeline's
// texture loading.
func FromImage(img image.Image) *Grid {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return &Grid{Width: w, Height: h, Pixels: rgba.Pix}
}

// At returns the RGBA bytes for pixel (x, y).
func (g *Grid) At(x, y int) (r, g2, b, a byte) {
	i := (y*g.Width + x) * 4
	p := g.Pixels[i : i+4 : i+4]
	return p[0], p[1], p[2], p[3]
}

// Opaque reports whether pixel (x, y) meets the opacity threshold.
func (g *Grid) Opaque(x, y int) bool {
	i := (y*g.Width+x)*4 + 3
	return g.Pixels[i] >= AlphaThreshold
}

// Rect is an axis-aligned integer rectangle, pixel-space, top-left origin.
type Rect struct {
	X, Y, W, H int
}

// Bounds computes the smallest rectangle enclosing every opaque pixel.
// Returns ok=false if the grid has no opaque pixels. O(w*h).
func (g *Grid) Bounds() (r Rect, ok bool) {
	minX, minY := g.Width, g.Height
	maxX, maxY := -1, -1

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if !g.Opaque(x, y) {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < 0 {
		return Rect{}, false
	}
	return Rect{X: minX, Y: minY, W: maxX - minX + 1, H: maxY - minY + 1}, true
}
