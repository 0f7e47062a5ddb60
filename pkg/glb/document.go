// Package glb assembles mesh geometry and a packed texture atlas into a
// binary glTF 2.0 (.glb) container.
//
// The JSON document types here are a trimmed set of glTF 2.0's own
// field names and tags, cut down to the handful of top-level arrays
// this pipeline actually emits (asset/buffers/bufferViews/accessors/
// meshes/materials/samplers/textures/images/nodes/scenes), since
// nothing here ever emits animations, skins, cameras, or lights.
package glb

// Accessor component types (accessor.componentType).
const (
	ComponentUnsignedShort = 5123
	ComponentUnsignedInt   = 5125
	ComponentFloat         = 5126
)

// Accessor types (accessor.type).
const (
	TypeScalar = "SCALAR"
	TypeVec2   = "VEC2"
	TypeVec3   = "VEC3"
)

// bufferView.target values.
const (
	TargetArrayBuffer        = 34962
	TargetElementArrayBuffer = 34963
)

// mesh.primitive.mode values.
const ModeTriangles = 4

// material.alphaMode values.
const (
	AlphaOpaque = "OPAQUE"
	AlphaMask   = "MASK"
)

// sampler.*Filter / wrap* values.
const (
	FilterNearest   = 9728
	WrapClampToEdge = 33071
)

type Document struct {
	Asset       Asset        `json:"asset"`
	Buffers     []Buffer     `json:"buffers,omitempty"`
	BufferViews []BufferView `json:"bufferViews,omitempty"`
	Accessors   []Accessor   `json:"accessors,omitempty"`
	Meshes      []Mesh       `json:"meshes,omitempty"`
	Materials   []Material   `json:"materials,omitempty"`
	Samplers    []Sampler    `json:"samplers,omitempty"`
	Textures    []Texture    `json:"textures,omitempty"`
	Images      []Image      `json:"images,omitempty"`
	Nodes       []Node       `json:"nodes,omitempty"`
	Scene       int          `json:"scene"`
	Scenes      []Scene      `json:"scenes"`
}

type Asset struct {
	Version   string `json:"version"`
	Generator string `json:"generator,omitempty"`
}

type Buffer struct {
	ByteLength int `json:"byteLength"`
}

type BufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
	Target     int `json:"target,omitempty"`
}

type Accessor struct {
	BufferView    int       `json:"bufferView"`
	ByteOffset    int       `json:"byteOffset,omitempty"`
	ComponentType int       `json:"componentType"`
	Count         int       `json:"count"`
	Type          string    `json:"type"`
	Max           []float32 `json:"max,omitempty"`
	Min           []float32 `json:"min,omitempty"`
}

type Mesh struct {
	Primitives []Primitive `json:"primitives"`
}

type Primitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    int            `json:"indices"`
	Material   *int           `json:"material,omitempty"`
	Mode       int            `json:"mode"`
}

type Material struct {
	PBRMetallicRoughness PBRMetallicRoughness `json:"pbrMetallicRoughness"`
	AlphaMode            string               `json:"alphaMode,omitempty"`
	AlphaCutoff          *float32             `json:"alphaCutoff,omitempty"`
	DoubleSided          bool                 `json:"doubleSided,omitempty"`
}

type PBRMetallicRoughness struct {
	BaseColorTexture *TextureInfo `json:"baseColorTexture,omitempty"`
	MetallicFactor   float32      `json:"metallicFactor"`
	RoughnessFactor  float32      `json:"roughnessFactor"`
}

type TextureInfo struct {
	Index int `json:"index"`
}

type Sampler struct {
	MagFilter int `json:"magFilter,omitempty"`
	MinFilter int `json:"minFilter,omitempty"`
	WrapS     int `json:"wrapS,omitempty"`
	WrapT     int `json:"wrapT,omitempty"`
}

type Texture struct {
	Sampler *int `json:"sampler,omitempty"`
	Source  *int `json:"source,omitempty"`
}

type Image struct {
	MimeType   string `json:"mimeType,omitempty"`
	BufferView int    `json:"bufferView"`
}

type Node struct {
	Mesh     *int        `json:"mesh,omitempty"`
	Rotation *[4]float32 `json:"rotation,omitempty"`
}

type Scene struct {
	Nodes []int `json:"nodes,omitempty"`
}
