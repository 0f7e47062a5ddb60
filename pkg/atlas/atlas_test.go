package atlas

import (
	"testing"

	"github.com/caved-assets/texpack2glb/pkg/pixel"
)

func solidGrid(t *testing.T, w, h int, rgba [4]byte) *pixel.Grid {
	t.Helper()
	pixels := make([]byte, w*h*4)
	for i := 0; i < len(pixels); i += 4 {
		pixels[i+0] = rgba[0]
		pixels[i+1] = rgba[1]
		pixels[i+2] = rgba[2]
		pixels[i+3] = rgba[3]
	}
	g, err := pixel.NewGrid(w, h, pixels)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestBuildZeroEntriesPlaceholder(t *testing.T) {
	a, warnings, err := Build(nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if a.Image.Width != PlaceholderSize || a.Image.Height != PlaceholderSize {
		t.Fatalf("got %dx%d, want %dx%d placeholder", a.Image.Width, a.Image.Height, PlaceholderSize, PlaceholderSize)
	}
	r, g2, b, al := a.Image.At(0, 0)
	if r != 255 || g2 != 0 || b != 255 || al != 255 {
		t.Errorf("placeholder pixel = (%d,%d,%d,%d), want opaque magenta", r, g2, b, al)
	}
}

func TestBuildSingleEntryPassthrough(t *testing.T) {
	g := solidGrid(t, 8, 8, [4]byte{10, 20, 30, 255})
	a, _, err := Build([]Entry{{Key: "only", Grid: g}}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if a.Image != g {
		t.Error("single-entry atlas should pass the source grid through unresized")
	}
	rect, ok := a.Lookup("only")
	if !ok {
		t.Fatal("expected lookup to succeed")
	}
	if rect != (Rect{0, 0, 1, 1}) {
		t.Errorf("got rect %+v, want full unit rect", rect)
	}
}

func TestBuildMultiEntryGridPacking(t *testing.T) {
	entries := []Entry{
		{Key: "a", Grid: solidGrid(t, 4, 4, [4]byte{255, 0, 0, 255})},
		{Key: "b", Grid: solidGrid(t, 4, 4, [4]byte{0, 255, 0, 255})},
		{Key: "c", Grid: solidGrid(t, 4, 4, [4]byte{0, 0, 255, 255})},
	}
	a, _, err := Build(entries, 0)
	if err != nil {
		t.Fatal(err)
	}
	// 3 entries -> ceil(sqrt(3))=2, already a power of two -> 2x2 grid of 4px tiles = 8x8.
	if a.Image.Width != 8 || a.Image.Height != 8 {
		t.Fatalf("got %dx%d atlas, want 8x8", a.Image.Width, a.Image.Height)
	}

	rectA, ok := a.Lookup("a")
	if !ok {
		t.Fatal("expected a to be packed")
	}
	if rectA != (Rect{0, 0, 0.5, 0.5}) {
		t.Errorf("got rect for a = %+v, want {0,0,0.5,0.5}", rectA)
	}

	rectB, ok := a.Lookup("b")
	if !ok {
		t.Fatal("expected b to be packed")
	}
	if rectB.U1 != 0.5 || rectB.V1 != 0 {
		t.Errorf("got rect for b = %+v, want col 1 row 0", rectB)
	}
}

func TestLookupOrFallbackMissingWarns(t *testing.T) {
	g := solidGrid(t, 4, 4, [4]byte{1, 2, 3, 255})
	a, _, err := Build([]Entry{{Key: "known", Grid: g}}, 0)
	if err != nil {
		t.Fatal(err)
	}
	rect, warnings := a.LookupOrFallback("unknown")
	if len(warnings) != 1 || warnings[0].Code != "missing_atlas_texture" {
		t.Fatalf("got %v, want one missing_atlas_texture warning", warnings)
	}
	if rect != (Rect{0, 0, 1, 1}) {
		t.Errorf("got %+v, want fallback to first entry's full rect", rect)
	}
}

func TestCeilSqrtAndNextPow2(t *testing.T) {
	cases := []struct{ n, want int }{
		{1, 1}, {2, 2}, {3, 2}, {4, 2}, {5, 3}, {9, 3}, {10, 4},
	}
	for _, c := range cases {
		if got := ceilSqrt(c.n); got != c.want {
			t.Errorf("ceilSqrt(%d) = %d, want %d", c.n, got, c.want)
		}
	}
	pow2Cases := []struct{ n, want int }{
		{1, 1}, {2, 2}, {3, 4}, {4, 4}, {5, 8},
	}
	for _, c := range pow2Cases {
		if got := nextPow2(c.n); got != c.want {
			t.Errorf("nextPow2(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}
