package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"
	"log/slog"
	"os"

	"github.com/Garsondee/Fog-Tactics/internal/game"
	"github.com/Garsondee/Fog-Tactics/internal/view"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var configPath string
	var seed int64
	var debug bool

	flag.StringVar(&configPath, "config", "configs/default.yaml", "YAML session config")
	flag.Int64Var(&seed, "seed", 0, "override the config seed (0 keeps it)")
	flag.BoolVar(&debug, "debug", false, "log at debug level")
	flag.Parse()

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := game.LoadConfig(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("config not found, using defaults", "path", configPath)
		cfg, err = game.DefaultConfig(), nil
	}
	if err != nil {
		log.Fatal(err)
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	cfg.Logger = logger

	s, err := game.NewSession(cfg)
	if err != nil {
		log.Fatal(err)
	}
	g, err := view.New(s, logger)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("Fog Tactics")
	ebiten.SetWindowSize(g.Size())
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
