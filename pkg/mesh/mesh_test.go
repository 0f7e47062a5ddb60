package mesh

import "testing"

func TestAppendQuad(t *testing.T) {
	var m Mesh
	corners := [4]Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	normal := Vec3{0, 0, 1}
	uvs := [4]Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	m.AppendQuad(corners, normal, uvs)

	if len(m.Positions) != 4 {
		t.Fatalf("got %d positions, want 4", len(m.Positions))
	}
	if len(m.Indices) != 6 {
		t.Fatalf("got %d indices, want 6", len(m.Indices))
	}
	want := []uint32{0, 1, 2, 0, 2, 3}
	for i, idx := range want {
		if m.Indices[i] != idx {
			t.Errorf("Indices[%d] = %d, want %d", i, m.Indices[i], idx)
		}
	}
	for _, n := range m.Normals {
		if n != normal {
			t.Errorf("Normals = %v, want all %v", n, normal)
		}
	}
}

func TestAppendQuadNoSharedVertices(t *testing.T) {
	var m Mesh
	corners := [4]Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	normal := Vec3{0, 0, 1}
	uvs := [4]Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	m.AppendQuad(corners, normal, uvs)
	m.AppendQuad(corners, normal, uvs)

	if len(m.Positions) != 8 {
		t.Fatalf("got %d positions, want 8 (no sharing across faces)", len(m.Positions))
	}
	want := []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}
	if len(m.Indices) != len(want) {
		t.Fatalf("got %d indices, want %d", len(m.Indices), len(want))
	}
	for i, idx := range want {
		if m.Indices[i] != idx {
			t.Errorf("Indices[%d] = %d, want %d", i, m.Indices[i], idx)
		}
	}
}

func TestAppendOffsetsIndices(t *testing.T) {
	var a, b Mesh
	corners := [4]Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	normal := Vec3{0, 0, 1}
	uvs := [4]Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	a.AppendQuad(corners, normal, uvs)
	b.AppendQuad(corners, normal, uvs)

	a.Append(&b)

	if len(a.Positions) != 8 {
		t.Fatalf("got %d positions, want 8", len(a.Positions))
	}
	want := []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}
	if len(a.Indices) != len(want) {
		t.Fatalf("got %d indices, want %d", len(a.Indices), len(want))
	}
	for i, idx := range want {
		if a.Indices[i] != idx {
			t.Errorf("Indices[%d] = %d, want %d", i, a.Indices[i], idx)
		}
	}
}

func TestBoundsEmpty(t *testing.T) {
	var m Mesh
	if _, _, ok := m.Bounds(); ok {
		t.Error("expected ok=false for empty mesh")
	}
}

func TestBounds(t *testing.T) {
	var m Mesh
	m.AppendQuad(
		[4]Vec3{{-1, -2, -3}, {1, -2, -3}, {1, 2, 3}, {-1, 2, 3}},
		Vec3{0, 0, 1},
		[4]Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
	)
	min, max, ok := m.Bounds()
	if !ok {
		t.Fatal("expected ok=true")
	}
	if min != (Vec3{-1, -2, -3}) {
		t.Errorf("min = %v, want (-1,-2,-3)", min)
	}
	if max != (Vec3{1, 2, 3}) {
		t.Errorf("max = %v, want (1,2,3)", max)
	}
}
