// Package model decodes Minecraft-style block/item JSON models: element
// cuboids, per-face UV/texture references, texture-variable aliasing, and
// parent-model inheritance.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Warning is a non-fatal problem surfaced by parsing or resolution. This
// package never logs; callers decide how to report these.
type Warning struct {
	Code    string
	Message string
}

func (w Warning) String() string { return fmt.Sprintf("%s: %s", w.Code, w.Message) }

// Rotation describes an element's rotation around a single axis, applied
// about Origin before translation/scale.
type Rotation struct {
	Origin [3]float32 `json:"origin"`
	Axis   string     `json:"axis"`
	Angle  float64    `json:"angle"`
}

// Face is one of up to six named faces ("up", "down", "north", "south",
// "east", "west") of an Element.
type Face struct {
	Texture  string     `json:"texture"`
	UV       *[4]float32 `json:"uv,omitempty"`
	Rotation int        `json:"rotation,omitempty"`
	Cullface string     `json:"cullface,omitempty"`
}

// Element is one axis-aligned cuboid of a model, in the 0..16 cube-unit
// coordinate space.
type Element struct {
	From     [3]float32      `json:"from"`
	To       [3]float32      `json:"to"`
	Rotation *Rotation       `json:"rotation,omitempty"`
	Faces    map[string]Face `json:"faces,omitempty"`
}

// Model is one decoded block/item model, with its texture-variable map
// kept in first-appearance order alongside the map itself: map iteration
// order is unspecified in Go, but atlas packing (pkg/atlas) needs a
// deterministic order across runs, so Parse walks the raw JSON tokens
// rather than decoding straight into a map.
type Model struct {
	Name             string
	Parent           string
	AmbientOcclusion bool
	Textures         map[string]string
	TextureOrder     []string
	Elements         []Element
}

type rawModel struct {
	Parent           string          `json:"parent,omitempty"`
	AmbientOcclusion *bool           `json:"ambientocclusion,omitempty"`
	Textures         json.RawMessage `json:"textures,omitempty"`
	Elements         []Element       `json:"elements,omitempty"`
}

// Parse decodes one model JSON document. name is stored on the result for
// later registration in a Set; it is not read from the document itself.
func Parse(data []byte, name string) (*Model, []Warning, error) {
	var raw rawModel
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("model: decode %s: %w", name, err)
	}

	textures, order, warnings, err := orderedTextures(raw.Textures)
	if err != nil {
		return nil, nil, fmt.Errorf("model: decode %s textures: %w", name, err)
	}

	m := &Model{
		Name:             name,
		Parent:           raw.Parent,
		AmbientOcclusion: raw.AmbientOcclusion == nil || *raw.AmbientOcclusion,
		Textures:         textures,
		TextureOrder:     order,
		Elements:         raw.Elements,
	}
	return m, warnings, nil
}

// orderedTextures walks the "textures" object's raw JSON so that first
// appearance order survives, since json.Unmarshal into a map would not
// preserve it.
func orderedTextures(raw json.RawMessage) (map[string]string, []string, []Warning, error) {
	textures := map[string]string{}
	var order []string
	if len(raw) == 0 {
		return textures, order, nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return nil, nil, nil, fmt.Errorf("expected object, got %v", tok)
	}

	var warnings []Warning
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, nil, fmt.Errorf("expected string key, got %v", keyTok)
		}
		valTok, err := dec.Token()
		if err != nil {
			return nil, nil, nil, err
		}
		val, ok := valTok.(string)
		if !ok {
			warnings = append(warnings, Warning{
				Code:    "texture_value_not_string",
				Message: fmt.Sprintf("texture variable %q has a non-string value, skipped", key),
			})
			continue
		}
		if _, exists := textures[key]; !exists {
			order = append(order, key)
		}
		textures[key] = val
	}
	return textures, order, warnings, nil
}

// ResolveAlias chases "#name" indirections through m.Textures until it
// reaches a literal texture path (anything not starting with "#"), or
// gives up after aliasDepthLimit hops. A dangling or cyclic alias is a
// warning, not an error.
const aliasDepthLimit = 10

func (m *Model) ResolveAlias(ref string) (string, []Warning) {
	cur := ref
	for depth := 0; depth < aliasDepthLimit; depth++ {
		if !strings.HasPrefix(cur, "#") {
			return cur, nil
		}
		key := strings.TrimPrefix(cur, "#")
		next, ok := m.Textures[key]
		if !ok {
			return "", []Warning{{
				Code:    "dangling_texture_alias",
				Message: fmt.Sprintf("texture alias %q does not resolve in model %s", ref, m.Name),
			}}
		}
		cur = next
	}
	return "", []Warning{{
		Code:    "texture_alias_too_deep",
		Message: fmt.Sprintf("texture alias %q exceeded depth limit %d in model %s", ref, aliasDepthLimit, m.Name),
	}}
}

// ResolveCategory maps a resolved texture reference (e.g. "block/stone",
// "item/apple", "minecraft:block/dirt") to its asset category and bare
// name. An unprefixed reference is treated as a block texture.
func ResolveCategory(ref string) (category, bare string) {
	ref = strings.TrimPrefix(ref, "minecraft:")
	switch {
	case strings.HasPrefix(ref, "block/"):
		return "block", strings.TrimPrefix(ref, "block/")
	case strings.HasPrefix(ref, "item/"):
		return "item", strings.TrimPrefix(ref, "item/")
	case strings.HasPrefix(ref, "entity/"):
		return "entity", strings.TrimPrefix(ref, "entity/")
	default:
		return "block", ref
	}
}

// Set is a name-keyed registry of parsed models, used to resolve parent
// chains, with the same ByName/All lookup shape as a game-data registry.
type Set struct {
	byName map[string]*Model
	order  []string
}

func NewSet() *Set {
	return &Set{byName: map[string]*Model{}}
}

func (s *Set) Add(m *Model) {
	if _, exists := s.byName[m.Name]; !exists {
		s.order = append(s.order, m.Name)
	}
	s.byName[m.Name] = m
}

func (s *Set) ByName(name string) (*Model, bool) {
	// Parent references may be bare ("cube_all") or block-prefixed
	// ("block/cube_all"); try both forms.
	if m, ok := s.byName[name]; ok {
		return m, true
	}
	if stripped := strings.TrimPrefix(name, "block/"); stripped != name {
		if m, ok := s.byName[stripped]; ok {
			return m, true
		}
	}
	return nil, false
}

func (s *Set) All() []*Model {
	out := make([]*Model, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.byName[name])
	}
	return out
}

// Resolve walks m's parent chain (via set), merging inherited textures
// and elements into a single flattened Model. Child values win over
// parent values. A missing parent ends the walk with a warning rather
// than failing the resolution.
func Resolve(set *Set, m *Model) (*Model, []Warning) {
	chain := []*Model{m}
	var warnings []Warning

	cur := m
	seen := map[string]bool{m.Name: true}
	for cur.Parent != "" {
		parent, ok := set.ByName(cur.Parent)
		if !ok {
			warnings = append(warnings, Warning{
				Code:    "missing_parent_model",
				Message: fmt.Sprintf("model %s references missing parent %q", cur.Name, cur.Parent),
			})
			break
		}
		if seen[parent.Name] {
			warnings = append(warnings, Warning{
				Code:    "parent_cycle",
				Message: fmt.Sprintf("model %s has a cyclic parent chain through %q", m.Name, parent.Name),
			})
			break
		}
		seen[parent.Name] = true
		chain = append(chain, parent)
		cur = parent
	}

	merged := &Model{
		Name:     m.Name,
		Textures: map[string]string{},
	}
	// Walk root-to-child so child values overwrite parent values, and
	// texture first-appearance order tracks the root-most definition.
	for i := len(chain) - 1; i >= 0; i-- {
		node := chain[i]
		for _, key := range node.TextureOrder {
			if _, exists := merged.Textures[key]; !exists {
				merged.TextureOrder = append(merged.TextureOrder, key)
			}
			merged.Textures[key] = node.Textures[key]
		}
		if len(node.Elements) > 0 {
			merged.Elements = node.Elements
		}
		merged.AmbientOcclusion = node.AmbientOcclusion
	}

	return merged, warnings
}
