//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"sandfall/internal/app"
	"sandfall/internal/core"
	"sandfall/internal/sims/sandfall"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	if _, ok := core.Sims()[cfg.Scene]; !ok {
		log.Fatalf("unknown scene %q", cfg.Scene)
	}

	wcfg := sandfall.DefaultConfig()
	if cfg.ConfigFile != "" {
		loaded, err := sandfall.LoadFile(cfg.ConfigFile)
		if err != nil {
			log.Fatal(err)
		}
		wcfg = loaded
	}
	wcfg.Seed = cfg.Seed

	w := sandfall.NewWithConfig(wcfg, sandfall.Scene(cfg.Scene))
	game := app.New(w, cfg.Scale, cfg.Seed)
	size := w.Size()

	ebiten.SetWindowTitle(w.Name())
	ebiten.SetWindowSize(size.W*cfg.Scale, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
