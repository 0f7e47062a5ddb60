// Package mesh holds the Mesh type shared by the voxel and cuboid
// builders: parallel position/normal/UV arrays with no shared vertices
// across faces, plus the index buffer that ties them into triangles.
package mesh

import "math"

// Vec3 is a narrow float32 3-vector — positions and normals are emitted
// at this width regardless of the precision used to compute them.
type Vec3 [3]float32

// Vec2 is a narrow float32 2-vector, used for UVs.
type Vec2 [2]float32

// Mesh is the builder output shared by pkg/voxelmesh and pkg/cuboidmesh.
// Indices are kept as uint32 internally; pkg/glb narrows them to
// uint16 at emission time when the vertex count allows it.
type Mesh struct {
	Positions []Vec3
	Normals   []Vec3
	UVs       []Vec2
	Indices   []uint32
}

// AppendQuad pushes four freshly-created vertices (no sharing with any
// existing vertex) and the six indices of the two triangles they form.
// Corners and UVs must already be in the desired emission order; this
// only pushes data and wires up (v0,v1,v2, v0,v2,v3).
//
// Adapted from a greedy-mesher's per-face vertex push (push 4 verts,
// wire 2 triangles), but keeping a per-corner UV pair instead of a flat
// vertex color.
func (m *Mesh) AppendQuad(corners [4]Vec3, normal Vec3, uvs [4]Vec2) {
	base := uint32(len(m.Positions))
	for i := 0; i < 4; i++ {
		m.Positions = append(m.Positions, corners[i])
		m.Normals = append(m.Normals, normal)
		m.UVs = append(m.UVs, uvs[i])
	}
	m.Indices = append(m.Indices,
		base, base+1, base+2,
		base, base+2, base+3,
	)
}

// Empty reports whether the mesh carries no geometry.
func (m *Mesh) Empty() bool {
	return m == nil || len(m.Positions) == 0
}

// Bounds returns the per-axis min/max over all positions. ok is false
// for an empty mesh.
func (m *Mesh) Bounds() (min, max Vec3, ok bool) {
	if m.Empty() {
		return Vec3{}, Vec3{}, false
	}
	min = Vec3{
		float32(math.Inf(1)), float32(math.Inf(1)), float32(math.Inf(1)),
	}
	max = Vec3{
		float32(math.Inf(-1)), float32(math.Inf(-1)), float32(math.Inf(-1)),
	}
	for _, p := range m.Positions {
		for i := 0; i < 3; i++ {
			if p[i] < min[i] {
				min[i] = p[i]
			}
			if p[i] > max[i] {
				max[i] = p[i]
			}
		}
	}
	return min, max, true
}

// Append concatenates other onto m, offsetting other's indices so they
// keep pointing at their own vertices.
func (m *Mesh) Append(other *Mesh) {
	base := uint32(len(m.Positions))
	m.Positions = append(m.Positions, other.Positions...)
	m.Normals = append(m.Normals, other.Normals...)
	m.UVs = append(m.UVs, other.UVs...)
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
}
