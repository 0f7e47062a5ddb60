// Package atlas packs one or more texture images into a single RGBA
// buffer and hands back the 0..1 UV sub-rectangle each input texture
// ended up at.
package atlas

import (
	"fmt"
	"image"
	"image/draw"

	ximage "golang.org/x/image/draw"

	"github.com/caved-assets/texpack2glb/pkg/model"
	"github.com/caved-assets/texpack2glb/pkg/pixel"
)

// PlaceholderSize is the edge length, in pixels, of the opaque-magenta
// stand-in texture used when a model declares no textures at all.
const PlaceholderSize = 16

// PlaceholderColor is opaque magenta, chosen to be unmistakably a
// missing-texture marker rather than a plausible block color.
var PlaceholderColor = [4]byte{255, 0, 255, 255}

// Rect is a 0..1 UV sub-rectangle within a packed atlas.
type Rect struct{ U1, V1, U2, V2 float32 }

// Entry is one named source texture to pack, in the order the caller
// wants it considered. Keys must be the same strings callers will later
// pass to Lookup.
type Entry struct {
	Key  string
	Grid *pixel.Grid
}

// Atlas is a packed texture sheet plus its per-entry UV rects.
type Atlas struct {
	Image *pixel.Grid
	rects map[string]Rect
	order []string
}

// Build packs entries into a single atlas. tileFloor is the minimum
// edge length, in pixels, any tile is resized up to (the configured
// atlas-tile-size floor); 0 disables the floor.
//
// Zero entries produces a single opaque-magenta placeholder tile.
// One entry is passed through unresized. Multiple entries are packed
// into an N x N grid, N = the next power of two at or above
// ceil(sqrt(len(entries))), with every tile resized to the largest
// tile's edge length (or tileFloor, whichever is bigger) using
// nearest-neighbor scaling to preserve pixel-art edges.
func Build(entries []Entry, tileFloor int) (*Atlas, []model.Warning, error) {
	if len(entries) == 0 {
		return placeholderAtlas(), nil, nil
	}
	if len(entries) == 1 {
		return &Atlas{
			Image: entries[0].Grid,
			rects: map[string]Rect{entries[0].Key: {0, 0, 1, 1}},
			order: []string{entries[0].Key},
		}, nil, nil
	}

	tile := tileFloor
	for _, e := range entries {
		if e.Grid.Width > tile {
			tile = e.Grid.Width
		}
		if e.Grid.Height > tile {
			tile = e.Grid.Height
		}
	}
	if tile <= 0 {
		tile = PlaceholderSize
	}

	n := nextPow2(ceilSqrt(len(entries)))
	atlasEdge := n * tile

	dst := image.NewRGBA(image.Rect(0, 0, atlasEdge, atlasEdge))
	rects := make(map[string]Rect, len(entries))
	order := make([]string, 0, len(entries))

	for i, e := range entries {
		col := i % n
		row := i / n

		tileImg := resizeNearest(e.Grid, tile, tile)
		dr := image.Rect(col*tile, row*tile, (col+1)*tile, (row+1)*tile)
		draw.Draw(dst, dr, tileImg, image.Point{}, draw.Src)

		rects[e.Key] = Rect{
			U1: float32(col*tile) / float32(atlasEdge),
			V1: float32(row*tile) / float32(atlasEdge),
			U2: float32((col+1)*tile) / float32(atlasEdge),
			V2: float32((row+1)*tile) / float32(atlasEdge),
		}
		order = append(order, e.Key)
	}

	return &Atlas{
		Image: &pixel.Grid{Width: atlasEdge, Height: atlasEdge, Pixels: dst.Pix},
		rects: rects,
		order: order,
	}, nil, nil
}

// Lookup returns the packed rect for key, if present.
func (a *Atlas) Lookup(key string) (Rect, bool) {
	r, ok := a.rects[key]
	return r, ok
}

// LookupOrFallback behaves like Lookup, but on a miss falls back to the
// first-packed entry and reports a warning rather than failing. An atlas
// built by Build always has at least the placeholder entry, so this
// never needs to report "not found" outright.
func (a *Atlas) LookupOrFallback(key string) (Rect, []model.Warning) {
	if r, ok := a.rects[key]; ok {
		return r, nil
	}
	if len(a.order) == 0 {
		return Rect{}, nil
	}
	fallback := a.order[0]
	return a.rects[fallback], []model.Warning{{
		Code:    "missing_atlas_texture",
		Message: fmt.Sprintf("texture %q not packed into atlas, falling back to %q", key, fallback),
	}}
}

func placeholderAtlas() *Atlas {
	pixels := make([]byte, PlaceholderSize*PlaceholderSize*4)
	for i := 0; i < len(pixels); i += 4 {
		pixels[i+0] = PlaceholderColor[0]
		pixels[i+1] = PlaceholderColor[1]
		pixels[i+2] = PlaceholderColor[2]
		pixels[i+3] = PlaceholderColor[3]
	}
	const key = ""
	return &Atlas{
		Image: &pixel.Grid{Width: PlaceholderSize, Height: PlaceholderSize, Pixels: pixels},
		rects: map[string]Rect{key: {0, 0, 1, 1}},
		order: []string{key},
	}
}

// resizeNearest scales src to w x h with nearest-neighbor sampling,
// which keeps pixel-art texture edges crisp instead of blurring them the
// way bilinear/box filters would.
func resizeNearest(src *pixel.Grid, w, h int) image.Image {
	srcImg := &image.RGBA{
		Pix:    src.Pixels,
		Stride: src.Width * 4,
		Rect:   image.Rect(0, 0, src.Width, src.Height),
	}
	if src.Width == w && src.Height == h {
		return srcImg
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	ximage.NearestNeighbor.Scale(dst, dst.Bounds(), srcImg, srcImg.Bounds(), ximage.Over, nil)
	return dst
}

func ceilSqrt(n int) int {
	if n <= 0 {
		return 0
	}
	root := 1
	for root*root < n {
		root++
	}
	return root
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
