// Package pipeline wires pkg/pixel, pkg/voxelmesh, pkg/model,
// pkg/cuboidmesh, pkg/atlas, and pkg/glb together into the two asset
// conversions cmd/texpack2glb exposes: a single flat item texture
// extruded into a voxel mesh, or a block/item JSON model assembled from
// its declared cuboid elements.
package pipeline

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/caved-assets/texpack2glb/internal/server/config"
	"github.com/caved-assets/texpack2glb/pkg/atlas"
	"github.com/caved-assets/texpack2glb/pkg/cuboidmesh"
	"github.com/caved-assets/texpack2glb/pkg/glb"
	"github.com/caved-assets/texpack2glb/pkg/mesh"
	"github.com/caved-assets/texpack2glb/pkg/model"
	"github.com/caved-assets/texpack2glb/pkg/pixel"
	"github.com/caved-assets/texpack2glb/pkg/voxelmesh"
)

func coordSystem(cfg *config.Config) glb.CoordSystem {
	if strings.EqualFold(cfg.CoordSystem, "y-up") {
		return glb.YUp
	}
	return glb.ZUp
}

func loadPixelGrid(path string) (*pixel.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return pixel.FromImage(img), nil
}

// RunVoxel extrudes a single item-style texture into a voxel mesh and
// returns the assembled GLB bytes.
func RunVoxel(cfg *config.Config, texturePath string) ([]byte, []model.Warning, error) {
	grid, err := loadPixelGrid(texturePath)
	if err != nil {
		return nil, nil, err
	}

	voxelCoord := voxelmesh.ZUp
	if coordSystem(cfg) == glb.YUp {
		voxelCoord = voxelmesh.YUp
	}
	m, err := voxelmesh.Build(grid, cfg.Scale, voxelCoord)
	if err != nil {
		return nil, nil, err
	}

	a, _, err := atlas.Build([]atlas.Entry{{Key: "item", Grid: grid}}, cfg.AtlasTileSize)
	if err != nil {
		return nil, nil, err
	}

	data, err := glb.Emit(m, a.Image, coordSystem(cfg))
	if err != nil {
		return nil, nil, err
	}
	return data, nil, nil
}

// RunModel parses the model JSON at modelPath, resolves its parent chain
// against every *.json file in modelsDir (if non-empty), loads its
// referenced textures from texturesDir (laid out as
// <category>/<name>.png, mirroring a resource pack's own layout), packs
// them into one atlas, and assembles every declared cuboid element into
// a single mesh.
func RunModel(cfg *config.Config, modelPath, texturesDir, modelsDir string) ([]byte, []model.Warning, error) {
	var warnings []model.Warning

	set := model.NewSet()
	if modelsDir != "" {
		entries, err := filepath.Glob(filepath.Join(modelsDir, "*.json"))
		if err != nil {
			return nil, nil, fmt.Errorf("glob models dir: %w", err)
		}
		for _, path := range entries {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, nil, fmt.Errorf("read model %s: %w", path, err)
			}
			name := strings.TrimSuffix(filepath.Base(path), ".json")
			m, w, err := model.Parse(data, name)
			if err != nil {
				return nil, nil, err
			}
			warnings = append(warnings, w...)
			set.Add(m)
		}
	}

	data, err := os.ReadFile(modelPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read model %s: %w", modelPath, err)
	}
	name := strings.TrimSuffix(filepath.Base(modelPath), ".json")
	target, w, err := model.Parse(data, name)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, w...)
	set.Add(target)

	merged, w := model.Resolve(set, target)
	warnings = append(warnings, w...)

	grids := map[string]*pixel.Grid{}
	var entries []atlas.Entry
	for _, key := range merged.TextureOrder {
		resolved, w := merged.ResolveAlias("#" + key)
		warnings = append(warnings, w...)
		if resolved == "" {
			continue
		}
		if _, loaded := grids[resolved]; loaded {
			continue
		}
		category, bare := model.ResolveCategory(resolved)
		grid, err := loadPixelGrid(filepath.Join(texturesDir, category, bare+".png"))
		if err != nil {
			warnings = append(warnings, model.Warning{
				Code:    "texture_load_failed",
				Message: fmt.Sprintf("%v", err),
			})
			continue
		}
		grids[resolved] = grid
		entries = append(entries, atlas.Entry{Key: resolved, Grid: grid})
	}

	a, w, err := atlas.Build(entries, cfg.AtlasTileSize)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, w...)

	lookup := func(ref string) (atlas.Rect, bool) {
		resolved, w := merged.ResolveAlias(ref)
		warnings = append(warnings, w...)
		if resolved == "" {
			return atlas.Rect{}, false
		}
		rect, w := a.LookupOrFallback(resolved)
		warnings = append(warnings, w...)
		return rect, true
	}

	combined := &mesh.Mesh{}
	for _, el := range merged.Elements {
		em, w := cuboidmesh.Build(el, cfg.Scale/16, lookup)
		warnings = append(warnings, w...)
		combined.Append(em)
	}

	if combined.Empty() {
		return nil, warnings, fmt.Errorf("pipeline: model %s produced no geometry", name)
	}

	glbData, err := glb.Emit(combined, a.Image, coordSystem(cfg))
	if err != nil {
		return nil, warnings, err
	}
	return glbData, warnings, nil
}
