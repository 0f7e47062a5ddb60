// Package cuboidmesh turns a parsed block/item model element into mesh
// geometry: one quad per declared face, in the element's 0..16 cube-unit
// space, rotated, centered, and scaled into mesh units.
package cuboidmesh

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/caved-assets/texpack2glb/pkg/atlas"
	"github.com/caved-assets/texpack2glb/pkg/mesh"
	"github.com/caved-assets/texpack2glb/pkg/model"
)

// Lookup resolves a face's texture reference, exactly as the face
// declares it (possibly a "#alias"), to its packed atlas rect; ok is
// false for a dangling reference, which Build turns into a warning and
// the face is skipped rather than the whole build failing.
type Lookup func(textureRef string) (atlas.Rect, bool)

// faceNames enumerates the six Minecraft-style face keys in a fixed
// build order so output is deterministic across runs.
var faceNames = []string{"down", "up", "north", "south", "west", "east"}

var faceNormals = map[string]mesh.Vec3{
	"down":  {0, -1, 0},
	"up":    {0, 1, 0},
	"north": {0, 0, -1},
	"south": {0, 0, 1},
	"west":  {-1, 0, 0},
	"east":  {1, 0, 0},
}

// Build appends one quad per face declared on el to a new mesh. Vertex
// coordinates are computed in the element's 0..16 cube-unit space, then
// rotated about el.Rotation.Origin (if any), then centered on the unit
// cube's middle (8,8,8) and scaled by scale (default 1/16, so a full
// 16-unit cube becomes a unit cube). Face keys other than the six known
// face names contribute no geometry and each produce a warning.
//
// The six face-quad corner orderings below are built from
// Element.From/To the same way a custom-block mesher derives its face
// vertices from a cuboid's min/max corners; plain float positions and
// atlas UV lookups replace that mesher's packed-vertex/greedy-culling
// logic.
func Build(el model.Element, scale float32, lookup Lookup) (*mesh.Mesh, []model.Warning) {
	if scale == 0 {
		scale = 1.0 / 16.0
	}

	m := &mesh.Mesh{}
	var warnings []model.Warning

	var unknown []string
	for name := range el.Faces {
		if _, known := faceNormals[name]; !known {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		warnings = append(warnings, model.Warning{
			Code:    "unknown_face_name",
			Message: fmt.Sprintf("face %q is not a known face name, skipped", name),
		})
	}

	for _, name := range faceNames {
		face, ok := el.Faces[name]
		if !ok {
			continue
		}
		rect, ok := lookup(face.Texture)
		if !ok {
			warnings = append(warnings, model.Warning{
				Code:    "missing_face_texture",
				Message: fmt.Sprintf("face %q texture %q has no atlas entry, face skipped", name, face.Texture),
			})
			continue
		}

		corners := faceCorners(name, el.From, el.To)
		normal := faceNormals[name]
		if el.Rotation != nil {
			corners = rotateCorners(corners, *el.Rotation)
			normal = rotateNormal(normal, *el.Rotation)
		}
		for i := range corners {
			corners[i] = centerAndScale(corners[i], scale)
		}

		uv := faceUV(name, face, el.From, el.To, rect)
		m.AppendQuad(corners, normal, uv)
	}

	return m, warnings
}

// faceCorners returns the four corners of one face in CCW winding as
// seen from outside the cuboid, in raw 0..16 units.
func faceCorners(name string, from, to [3]float32) [4]mesh.Vec3 {
	x0, y0, z0 := from[0], from[1], from[2]
	x1, y1, z1 := to[0], to[1], to[2]

	switch name {
	case "up":
		return [4]mesh.Vec3{{x0, y1, z0}, {x0, y1, z1}, {x1, y1, z1}, {x1, y1, z0}}
	case "down":
		return [4]mesh.Vec3{{x0, y0, z0}, {x1, y0, z0}, {x1, y0, z1}, {x0, y0, z1}}
	case "north":
		return [4]mesh.Vec3{{x1, y0, z0}, {x0, y0, z0}, {x0, y1, z0}, {x1, y1, z0}}
	case "south":
		return [4]mesh.Vec3{{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z1}}
	case "west":
		return [4]mesh.Vec3{{x0, y0, z0}, {x0, y0, z1}, {x0, y1, z1}, {x0, y1, z0}}
	case "east":
		return [4]mesh.Vec3{{x1, y0, z1}, {x1, y0, z0}, {x1, y1, z0}, {x1, y1, z1}}
	}
	return [4]mesh.Vec3{}
}

// rotationMatrix builds the single-axis rotation matrix r describes. ok is
// false for an unrecognized axis, in which case callers should leave their
// input unchanged.
func rotationMatrix(r model.Rotation) (rot mgl32.Mat3, ok bool) {
	angle := mgl32.DegToRad(float32(r.Angle))
	switch r.Axis {
	case "x":
		return mgl32.HomogRotate3DX(angle).Mat3(), true
	case "y":
		return mgl32.HomogRotate3DY(angle).Mat3(), true
	case "z":
		return mgl32.HomogRotate3DZ(angle).Mat3(), true
	default:
		return mgl32.Mat3{}, false
	}
}

// rotateCorners applies a single-axis rotation about r.Origin to every
// corner, in the same 0..16 unit space the corners are expressed in.
func rotateCorners(corners [4]mesh.Vec3, r model.Rotation) [4]mesh.Vec3 {
	rot, ok := rotationMatrix(r)
	if !ok {
		return corners
	}
	origin := mgl32.Vec3{r.Origin[0], r.Origin[1], r.Origin[2]}
	for i, c := range corners {
		v := mgl32.Vec3{c[0], c[1], c[2]}.Sub(origin)
		v = rot.Mul3x1(v).Add(origin)
		corners[i] = mesh.Vec3{v[0], v[1], v[2]}
	}
	return corners
}

// rotateNormal applies the same single-axis rotation to a face normal.
// Normals are directions, not points, so the origin translation that
// rotateCorners applies to positions does not apply here.
func rotateNormal(n mesh.Vec3, r model.Rotation) mesh.Vec3 {
	rot, ok := rotationMatrix(r)
	if !ok {
		return n
	}
	v := rot.Mul3x1(mgl32.Vec3{n[0], n[1], n[2]})
	return mesh.Vec3{v[0], v[1], v[2]}
}

// centerAndScale maps a 0..16 cube-unit coordinate to mesh space: the
// cube's center (8,8,8) becomes the origin, then the result is scaled.
func centerAndScale(v mesh.Vec3, scale float32) mesh.Vec3 {
	return mesh.Vec3{
		(v[0] - 8) * scale,
		(v[1] - 8) * scale,
		(v[2] - 8) * scale,
	}
}

// faceUV derives the face's local 0..1 UV quad (explicit face.UV, or an
// auto-derived projection of from/to when omitted), applies the face's
// 90-degree-multiple rotation by cycling the corner assignment, then
// remaps through the atlas rect.
func faceUV(name string, face model.Face, from, to [3]float32, rect atlas.Rect) [4]mesh.Vec2 {
	var u1, v1, u2, v2 float32
	if face.UV != nil {
		u1, v1, u2, v2 = face.UV[0]/16, face.UV[1]/16, face.UV[2]/16, face.UV[3]/16
	} else {
		u1, v1, u2, v2 = autoUV(name, from, to)
	}

	// Corner order matches faceCorners' winding: bl, br, tr, tl in the
	// face's own 2-D parameterization.
	corners := [4]mesh.Vec2{{u1, v2}, {u2, v2}, {u2, v1}, {u1, v1}}

	steps := ((face.Rotation / 90) % 4 + 4) % 4
	if steps != 0 {
		rotated := corners
		for i := range corners {
			rotated[(i+steps)%4] = corners[i]
		}
		corners = rotated
	}

	for i, c := range corners {
		corners[i] = mesh.Vec2{
			rect.U1 + c[0]*(rect.U2-rect.U1),
			rect.V1 + c[1]*(rect.V2-rect.V1),
		}
	}
	return corners
}

// autoUV projects from/to onto the two in-plane axes of the named face,
// in 0..1 units, using the standard per-direction axis choice (x/z for
// up and down, x/(16-y) for north and south, z/(16-y) for west and
// east). The vertical axis is flipped because Y increases upward while
// V increases downward in texture space.
func autoUV(name string, from, to [3]float32) (u1, v1, u2, v2 float32) {
	switch name {
	case "up", "down":
		return from[0] / 16, from[2] / 16, to[0] / 16, to[2] / 16
	case "north", "south":
		return from[0] / 16, (16 - to[1]) / 16, to[0] / 16, (16 - from[1]) / 16
	case "west", "east":
		return from[2] / 16, (16 - to[1]) / 16, to[2] / 16, (16 - from[1]) / 16
	}
	return 0, 0, 1, 1
}

// UV rectangles with u1 > u2 or v1 > v2 are a deliberate mirrored
// authoring convention in Minecraft-style models, not an error; faceUV's
// linear interpolation honors the mirror without any special case.
