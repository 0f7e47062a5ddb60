package config

// Config holds the texture-pack-to-GLB pipeline configuration.
type Config struct {
	Scale         float32 `json:"scale"`          // mesh units per voxel grid (default 1)
	CoordSystem   string  `json:"coord_system"`    // "z-up" or "y-up"
	AtlasTileSize int     `json:"atlas_tile_size"` // floor, in pixels, for atlas tile resizing
	Generator     string  `json:"generator"`       // "voxel" or "model", selects the mesh builder
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scale:         1,
		CoordSystem:   "z-up",
		AtlasTileSize: 16,
		Generator:     "voxel",
	}
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["scale"] {
		cfg.Scale = fromFile.Scale
	}
	if !explicitFlags["coord-system"] {
		cfg.CoordSystem = fromFile.CoordSystem
	}
	if !explicitFlags["atlas-tile-size"] {
		cfg.AtlasTileSize = fromFile.AtlasTileSize
	}
	if !explicitFlags["generator"] {
		cfg.Generator = fromFile.Generator
	}
}
