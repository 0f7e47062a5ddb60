package glb

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/caved-assets/texpack2glb/pkg/mesh"
	"github.com/caved-assets/texpack2glb/pkg/pixel"
)

// CoordSystem selects whether the emitted scene carries a root-node
// rotation correcting the mesh's native axis layout to glTF's Y-up
// convention.
type CoordSystem int

const (
	// ZUp emits positions unmodified and attaches a +90 degree rotation
	// about X to the root node, so Y-up consumers see an upright model.
	ZUp CoordSystem = iota
	// YUp emits positions unmodified with no root-node rotation.
	YUp
)

const (
	magicGLTF  = 0x46546C67 // "glTF"
	magicJSON  = 0x4E4F534A
	magicBIN   = 0x004E4942
	glbVersion = 2
	headerSize = 12
	chunkHead  = 8
)

// Emit assembles m (and, if atlasImg is non-nil, a packed texture) into
// a complete binary glTF container.
func Emit(m *mesh.Mesh, atlasImg *pixel.Grid, coord CoordSystem) ([]byte, error) {
	if m.Empty() {
		return nil, fmt.Errorf("glb: cannot emit an empty mesh")
	}

	var bin bytes.Buffer
	doc := Document{
		Asset: Asset{Version: "2.0", Generator: "texpack2glb"},
	}

	posView, posMin, posMax := writeVec3Accessor(&bin, &doc, m.Positions, TargetArrayBuffer)
	normView := writeVec3(&bin, &doc, m.Normals, TargetArrayBuffer)
	uvView := writeVec2(&bin, &doc, m.UVs, TargetArrayBuffer)
	idxView, idxCount, idxComponent := writeIndices(&bin, &doc, m.Indices)

	doc.Accessors = append(doc.Accessors,
		Accessor{BufferView: posView, ComponentType: ComponentFloat, Count: len(m.Positions), Type: TypeVec3, Min: posMin, Max: posMax},
		Accessor{BufferView: normView, ComponentType: ComponentFloat, Count: len(m.Normals), Type: TypeVec3},
		Accessor{BufferView: uvView, ComponentType: ComponentFloat, Count: len(m.UVs), Type: TypeVec2},
		Accessor{BufferView: idxView, ComponentType: idxComponent, Count: idxCount, Type: TypeScalar},
	)
	posAccessor, normAccessor, uvAccessor, idxAccessor := 0, 1, 2, 3

	cutoff := float32(0.5)
	mat := Material{
		PBRMetallicRoughness: PBRMetallicRoughness{
			MetallicFactor:  0,
			RoughnessFactor: 1,
		},
		AlphaMode:   AlphaMask,
		AlphaCutoff: &cutoff,
		DoubleSided: true,
	}
	if atlasImg != nil {
		imgView := writeImage(&bin, &doc, atlasImg)
		doc.Images = append(doc.Images, Image{MimeType: "image/png", BufferView: imgView})
		doc.Samplers = append(doc.Samplers, Sampler{
			MagFilter: FilterNearest, MinFilter: FilterNearest,
			WrapS: WrapClampToEdge, WrapT: WrapClampToEdge,
		})
		sampler, source := 0, 0
		doc.Textures = append(doc.Textures, Texture{Sampler: &sampler, Source: &source})
		mat.PBRMetallicRoughness.BaseColorTexture = &TextureInfo{Index: 0}
	}
	doc.Materials = append(doc.Materials, mat)
	matIdx := 0
	material := &matIdx

	doc.Meshes = append(doc.Meshes, Mesh{
		Primitives: []Primitive{{
			Attributes: map[string]int{
				"POSITION":   posAccessor,
				"NORMAL":     normAccessor,
				"TEXCOORD_0": uvAccessor,
			},
			Indices:  idxAccessor,
			Material: material,
			Mode:     ModeTriangles,
		}},
	})

	meshIdx := 0
	node := Node{Mesh: &meshIdx}
	if coord == ZUp {
		rot := axisAngleQuat(1, 0, 0, 90)
		node.Rotation = &rot
	}
	doc.Nodes = append(doc.Nodes, node)
	doc.Scenes = append(doc.Scenes, Scene{Nodes: []int{0}})
	doc.Scene = 0

	doc.Buffers = append(doc.Buffers, Buffer{ByteLength: bin.Len()})

	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("glb: marshal document: %w", err)
	}
	jsonBytes = padTo4(jsonBytes, ' ')
	binBytes := padTo4(bin.Bytes(), 0)

	total := headerSize + chunkHead + len(jsonBytes) + chunkHead + len(binBytes)

	out := bytes.NewBuffer(make([]byte, 0, total))
	writeU32(out, magicGLTF)
	writeU32(out, glbVersion)
	writeU32(out, uint32(total))

	writeU32(out, uint32(len(jsonBytes)))
	writeU32(out, magicJSON)
	out.Write(jsonBytes)

	writeU32(out, uint32(len(binBytes)))
	writeU32(out, magicBIN)
	out.Write(binBytes)

	return out.Bytes(), nil
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

// padTo4 pads data up to the next multiple of 4 bytes with fill.
func padTo4(data []byte, fill byte) []byte {
	rem := len(data) % 4
	if rem == 0 {
		return data
	}
	pad := make([]byte, 4-rem)
	for i := range pad {
		pad[i] = fill
	}
	return append(data, pad...)
}

// appendBufferView records data's current position in bin as a new
// bufferView, pads bin to a 4-byte boundary, and returns the new view's
// index. byteLength is the true, unpadded length; byteOffset is the
// cursor position before this call's padding.
func appendBufferView(bin *bytes.Buffer, doc *Document, data []byte, target int) int {
	offset := bin.Len()
	bin.Write(data)
	for bin.Len()%4 != 0 {
		bin.WriteByte(0)
	}
	doc.BufferViews = append(doc.BufferViews, BufferView{
		Buffer:     0,
		ByteOffset: offset,
		ByteLength: len(data),
		Target:     target,
	})
	return len(doc.BufferViews) - 1
}

func writeVec3(bin *bytes.Buffer, doc *Document, vs []mesh.Vec3, target int) int {
	buf := make([]byte, 0, len(vs)*12)
	for _, v := range vs {
		buf = appendFloat32(buf, v[0], v[1], v[2])
	}
	return appendBufferView(bin, doc, buf, target)
}

func writeVec3Accessor(bin *bytes.Buffer, doc *Document, vs []mesh.Vec3, target int) (view int, min, max []float32) {
	view = writeVec3(bin, doc, vs, target)
	mn, mx := vec3Bounds(vs)
	return view, []float32{mn[0], mn[1], mn[2]}, []float32{mx[0], mx[1], mx[2]}
}

func vec3Bounds(vs []mesh.Vec3) (min, max mesh.Vec3) {
	min = mesh.Vec3{float32(math.Inf(1)), float32(math.Inf(1)), float32(math.Inf(1))}
	max = mesh.Vec3{float32(math.Inf(-1)), float32(math.Inf(-1)), float32(math.Inf(-1))}
	for _, v := range vs {
		for i := 0; i < 3; i++ {
			if v[i] < min[i] {
				min[i] = v[i]
			}
			if v[i] > max[i] {
				max[i] = v[i]
			}
		}
	}
	return min, max
}

func writeVec2(bin *bytes.Buffer, doc *Document, vs []mesh.Vec2, target int) int {
	buf := make([]byte, 0, len(vs)*8)
	for _, v := range vs {
		buf = appendFloat32(buf, v[0], v[1])
	}
	return appendBufferView(bin, doc, buf, target)
}

// writeIndices narrows the mesh's uint32 index buffer to uint16 when the
// vertex count allows it (at most 65535 vertices, i.e. no index above
// 65534), matching glTF's preference for the smallest component type
// that fits.
func writeIndices(bin *bytes.Buffer, doc *Document, indices []uint32) (view, count, component int) {
	maxIndex := uint32(0)
	for _, i := range indices {
		if i > maxIndex {
			maxIndex = i
		}
	}
	if maxIndex < 65535 {
		buf := make([]byte, 0, len(indices)*2)
		var b [2]byte
		for _, i := range indices {
			binary.LittleEndian.PutUint16(b[:], uint16(i))
			buf = append(buf, b[:]...)
		}
		return appendBufferView(bin, doc, buf, TargetElementArrayBuffer), len(indices), ComponentUnsignedShort
	}
	buf := make([]byte, 0, len(indices)*4)
	var b [4]byte
	for _, i := range indices {
		binary.LittleEndian.PutUint32(b[:], i)
		buf = append(buf, b[:]...)
	}
	return appendBufferView(bin, doc, buf, TargetElementArrayBuffer), len(indices), ComponentUnsignedInt
}

func writeImage(bin *bytes.Buffer, doc *Document, grid *pixel.Grid) int {
	img := &image.RGBA{
		Pix:    grid.Pixels,
		Stride: grid.Width * 4,
		Rect:   image.Rect(0, 0, grid.Width, grid.Height),
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return appendBufferView(bin, doc, buf.Bytes(), 0)
}

func appendFloat32(buf []byte, vs ...float32) []byte {
	var b [4]byte
	for _, v := range vs {
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
		buf = append(buf, b[:]...)
	}
	return buf
}

// axisAngleQuat builds a [x,y,z,w] quaternion for a rotation of degrees
// around the given axis, computed directly from sin/cos of the half
// angle rather than pulling in the mgl32 quaternion type, since this is
// the only quaternion this package ever builds.
func axisAngleQuat(x, y, z, degrees float32) [4]float32 {
	half := float64(degrees) * math.Pi / 180 / 2
	s, c := math.Sincos(half)
	return [4]float32{x * float32(s), y * float32(s), z * float32(s), float32(c)}
}
