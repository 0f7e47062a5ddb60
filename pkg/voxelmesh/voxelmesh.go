// Package voxelmesh turns an opaque-pixel RGBA grid into a rigid 3-D
// mesh, one unit cube per opaque pixel.
package voxelmesh

import (
	"errors"

	"github.com/caved-assets/texpack2glb/pkg/mesh"
	"github.com/caved-assets/texpack2glb/pkg/pixel"
)

// CoordSystem selects the authoring convention the caller intends to hand
// the mesh off in. It does not change the computed geometry — positions
// are always emitted the same way. Whether a root-node rotation is
// attached is decided separately by pkg/glb, from its own glb.CoordSystem.
type CoordSystem int

const (
	ZUp CoordSystem = iota
	YUp
)

// ErrEmptyMesh is returned when a pixel grid has no opaque pixels.
var ErrEmptyMesh = errors.New("voxelmesh: empty mesh (no opaque pixels)")

// Build extrudes every opaque pixel of grid into a box of edge
// p = scale/max(w,h) in X and Y and p/2 in Z, producing six quads
// (12 triangles) per pixel. coord is accepted but not consumed here.
func Build(grid *pixel.Grid, scale float32, coord CoordSystem) (*mesh.Mesh, error) {
	_ = coord

	w, h := grid.Width, grid.Height
	maxDim := w
	if h > maxDim {
		maxDim = h
	}
	if maxDim == 0 {
		return nil, ErrEmptyMesh
	}

	p := scale / float32(maxDim)

	m := &mesh.Mesh{}
	found := false

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !grid.Opaque(x, y) {
				continue
			}
			found = true
			appendVoxel(m, x, y, w, h, p)
		}
	}

	if !found {
		return nil, ErrEmptyMesh
	}
	return m, nil
}

// appendVoxel pushes the six faces of the cube standing in for opaque
// pixel (x, y), using a fixed per-face corner winding for a unit cube.
func appendVoxel(m *mesh.Mesh, x, y, w, h int, p float32) {
	x0 := float32(x)*p - float32(w)*p/2
	x1 := float32(x+1)*p - float32(w)*p/2
	y0 := float32(h-y-1)*p - float32(h)*p/2
	y1 := float32(h-y)*p - float32(h)*p/2
	z0 := -p / 4
	z1 := p / 4

	u1 := float32(x) / float32(w)
	u2 := float32(x+1) / float32(w)
	v1 := float32(y) / float32(h)
	v2 := float32(y+1) / float32(h)

	// Corner naming: bl/br/tr/tl in the face's own 2-D parameterization,
	// with v1 (texture top) at the +Y side and v2 (texture bottom) at -Y.
	blUV, brUV, trUV, tlUV := mesh.Vec2{u1, v2}, mesh.Vec2{u2, v2}, mesh.Vec2{u2, v1}, mesh.Vec2{u1, v1}

	// +Z (front): bl,br,tr,tl.
	m.AppendQuad(
		[4]mesh.Vec3{{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z1}},
		mesh.Vec3{0, 0, 1},
		[4]mesh.Vec2{blUV, brUV, trUV, tlUV},
	)
	// -Z (back): bl,tl,tr,br.
	m.AppendQuad(
		[4]mesh.Vec3{{x0, y0, z0}, {x0, y1, z0}, {x1, y1, z0}, {x1, y0, z0}},
		mesh.Vec3{0, 0, -1},
		[4]mesh.Vec2{blUV, tlUV, trUV, brUV},
	)
	// -X (left): bl,br,tr,tl.
	m.AppendQuad(
		[4]mesh.Vec3{{x0, y0, z0}, {x0, y0, z1}, {x0, y1, z1}, {x0, y1, z0}},
		mesh.Vec3{-1, 0, 0},
		[4]mesh.Vec2{blUV, brUV, trUV, tlUV},
	)
	// +X (right): bl,tl,tr,br.
	m.AppendQuad(
		[4]mesh.Vec3{{x1, y0, z0}, {x1, y1, z0}, {x1, y1, z1}, {x1, y0, z1}},
		mesh.Vec3{1, 0, 0},
		[4]mesh.Vec2{blUV, tlUV, trUV, brUV},
	)
	// +Y (top): bl,br,tr,tl.
	m.AppendQuad(
		[4]mesh.Vec3{{x0, y1, z0}, {x0, y1, z1}, {x1, y1, z1}, {x1, y1, z0}},
		mesh.Vec3{0, 1, 0},
		[4]mesh.Vec2{blUV, brUV, trUV, tlUV},
	)
	// -Y (bottom): bl,br,tr,tl.
	m.AppendQuad(
		[4]mesh.Vec3{{x0, y0, z0}, {x1, y0, z0}, {x1, y0, z1}, {x0, y0, z1}},
		mesh.Vec3{0, -1, 0},
		[4]mesh.Vec2{blUV, brUV, trUV, tlUV},
	)
}
