// texpack2glb converts Minecraft-style texture-pack assets into binary
// glTF (.glb) models: either a single flat item texture extruded into a
// voxel mesh, or a block/item JSON model assembled from its declared
// cuboid elements.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/caved-assets/texpack2glb/internal/pipeline"
	"github.com/caved-assets/texpack2glb/internal/server/config"
	"github.com/caved-assets/texpack2glb/pkg/model"
)

func main() {
	cfg := config.DefaultConfig()

	var (
		in          = flag.String("in", "", "input texture (voxel mode) or model JSON file (model mode)")
		out         = flag.String("out", "", "output .glb path")
		texturesDir = flag.String("textures", "", "texture root directory for model mode (category/name.png layout)")
		modelsDir   = flag.String("models", "", "directory of model JSON files used to resolve parent chains, model mode only")
		scale       = flag.Float64("scale", float64(cfg.Scale), "mesh scale in units per block/voxel-grid edge")
	)
	flag.StringVar(&cfg.CoordSystem, "coord-system", cfg.CoordSystem, "root coordinate system: z-up or y-up")
	flag.IntVar(&cfg.AtlasTileSize, "atlas-tile-size", cfg.AtlasTileSize, "minimum atlas tile edge, in pixels")
	flag.StringVar(&cfg.Generator, "generator", cfg.Generator, "mesh builder: voxel or model")
	flag.Parse()
	cfg.Scale = float32(*scale)

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *in == "" || *out == "" {
		log.Error("-in and -out are required")
		os.Exit(1)
	}

	var (
		data     []byte
		warnings []model.Warning
		err      error
	)

	switch cfg.Generator {
	case "voxel":
		data, warnings, err = pipeline.RunVoxel(cfg, *in)
	case "model":
		data, warnings, err = pipeline.RunModel(cfg, *in, *texturesDir, *modelsDir)
	default:
		log.Error("unknown -generator", "generator", cfg.Generator)
		os.Exit(1)
	}

	for _, w := range warnings {
		log.Warn(w.Message, "code", w.Code)
	}

	if err != nil {
		log.Error("conversion failed", "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Error("write output", "error", err)
		os.Exit(1)
	}

	log.Info("wrote GLB", "path", *out, "bytes", len(data))
}
