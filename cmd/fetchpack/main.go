// fetchpack downloads a texture pack from any source go-getter
// understands (git, http, local path, S3, GCS, ...) into a local
// directory, ready for cmd/texpack2glb to read from.
package main

import (
	"flag"
	"log/slog"
	"os"

	get "github.com/hashicorp/go-getter"
)

func main() {
	var (
		src = flag.String("src", "", "texture pack source (go-getter URL, e.g. git::https://host/repo.git//textures)")
		out = flag.String("o", "./pack", "output directory")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *src == "" {
		log.Error("-src is required")
		os.Exit(1)
	}

	if err := os.RemoveAll(*out); err != nil {
		log.Error("clear output directory", "error", err)
		os.Exit(1)
	}

	log.Info("fetching texture pack", "src", *src, "out", *out)

	if err := get.Get(*out, *src); err != nil {
		log.Error("fetch texture pack", "error", err)
		os.Exit(1)
	}

	log.Info("texture pack fetched", "out", *out)
}
