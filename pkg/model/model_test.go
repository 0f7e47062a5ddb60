package model

import "testing"

func TestParseTextureOrderPreserved(t *testing.T) {
	data := []byte(`{
		"textures": {
			"top": "block/stone_top",
			"bottom": "block/stone_bottom",
			"side": "block/stone_side"
		},
		"elements": []
	}`)
	m, warnings, err := Parse(data, "stone")
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	want := []string{"top", "bottom", "side"}
	if len(m.TextureOrder) != len(want) {
		t.Fatalf("got order %v, want %v", m.TextureOrder, want)
	}
	for i, k := range want {
		if m.TextureOrder[i] != k {
			t.Errorf("TextureOrder[%d] = %q, want %q", i, m.TextureOrder[i], k)
		}
	}
}

func TestResolveAliasChain(t *testing.T) {
	m := &Model{
		Name: "chest",
		Textures: map[string]string{
			"particle": "#side",
			"side":     "entity/chest/normal",
		},
	}
	resolved, warnings := m.ResolveAlias("#particle")
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if resolved != "entity/chest/normal" {
		t.Errorf("got %q, want entity/chest/normal", resolved)
	}
}

func TestResolveAliasDangling(t *testing.T) {
	m := &Model{Name: "broken", Textures: map[string]string{}}
	_, warnings := m.ResolveAlias("#missing")
	if len(warnings) != 1 || warnings[0].Code != "dangling_texture_alias" {
		t.Fatalf("got %v, want one dangling_texture_alias warning", warnings)
	}
}

func TestResolveAliasTooDeep(t *testing.T) {
	m := &Model{Name: "loopy", Textures: map[string]string{"a": "#a"}}
	_, warnings := m.ResolveAlias("#a")
	if len(warnings) != 1 || warnings[0].Code != "texture_alias_too_deep" {
		t.Fatalf("got %v, want one texture_alias_too_deep warning", warnings)
	}
}

func TestResolveCategory(t *testing.T) {
	cases := []struct {
		ref          string
		wantCategory string
		wantBare     string
	}{
		{"block/stone", "block", "stone"},
		{"item/apple", "item", "apple"},
		{"entity/chest/normal", "entity", "chest/normal"},
		{"minecraft:block/dirt", "block", "dirt"},
		{"stone", "block", "stone"},
	}
	for _, c := range cases {
		category, bare := ResolveCategory(c.ref)
		if category != c.wantCategory || bare != c.wantBare {
			t.Errorf("ResolveCategory(%q) = (%q, %q), want (%q, %q)", c.ref, category, bare, c.wantCategory, c.wantBare)
		}
	}
}

func TestResolveParentMerge(t *testing.T) {
	set := NewSet()
	parent := &Model{
		Name:             "cube_all",
		AmbientOcclusion: true,
		Textures:         map[string]string{"all": "block/placeholder"},
		TextureOrder:     []string{"all"},
		Elements: []Element{
			{From: [3]float32{0, 0, 0}, To: [3]float32{16, 16, 16}},
		},
	}
	set.Add(parent)

	child := &Model{
		Name:             "stone",
		Parent:           "cube_all",
		AmbientOcclusion: true,
		Textures:         map[string]string{"all": "block/stone"},
		TextureOrder:     []string{"all"},
	}

	merged, warnings := Resolve(set, child)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if merged.Textures["all"] != "block/stone" {
		t.Errorf("child texture should win, got %q", merged.Textures["all"])
	}
	if len(merged.Elements) != 1 {
		t.Fatalf("expected inherited elements, got %d", len(merged.Elements))
	}
}

func TestResolveMissingParentWarns(t *testing.T) {
	set := NewSet()
	child := &Model{Name: "orphan", Parent: "does_not_exist"}
	merged, warnings := Resolve(set, child)
	if len(warnings) != 1 || warnings[0].Code != "missing_parent_model" {
		t.Fatalf("got %v, want one missing_parent_model warning", warnings)
	}
	if merged.Name != "orphan" {
		t.Errorf("expected resolution to still produce a model, got %+v", merged)
	}
}

func TestSetByNameBlockPrefixFallback(t *testing.T) {
	set := NewSet()
	set.Add(&Model{Name: "cube_all"})

	if _, ok := set.ByName("cube_all"); !ok {
		t.Error("expected bare name lookup to succeed")
	}
	if _, ok := set.ByName("block/cube_all"); !ok {
		t.Error("expected block/-prefixed lookup to fall back to bare name")
	}
}
