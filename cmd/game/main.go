package main

import (
	"flag"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Core-Defense/internal/config"
	"github.com/Garsondee/Core-Defense/internal/game"
	"github.com/Garsondee/Core-Defense/internal/save"
	"github.com/Garsondee/Core-Defense/internal/view"
	"github.com/Garsondee/Core-Defense/pkg/logger"
)

func main() {
	var seed int64
	var configPath string
	var saveDir string
	var load string
	var verbose bool
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "map and wave seed")
	flag.StringVar(&configPath, "config", "", "balance YAML overlay")
	flag.StringVar(&saveDir, "save-dir", "saves", "directory for save slots")
	flag.StringVar(&load, "load", "", "save slot to resume")
	flag.BoolVar(&verbose, "verbose", false, "record per-decision AI entries in the sim log")
	flag.Parse()

	log := logger.Init(os.Stderr)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load balance")
	}
	store, err := save.NewStore(saveDir, log)
	if err != nil {
		log.WithError(err).Fatal("failed to open save store")
	}

	sim := game.NewSim(cfg,
		game.Seeded(seed),
		game.WithLogger(log),
		game.WithSimLog(game.NewSimLog(verbose)),
	)
	if load != "" {
		st, err := store.Load(load, cfg)
		if err != nil {
			log.WithError(err).Fatal("failed to load save")
		}
		sim.RestoreState(st)
	}
	log.WithField("seed", seed).Info("session started")

	ebiten.SetWindowTitle("Core Defense")
	ebiten.SetWindowSize(1280, 800)
	if err := ebiten.RunGame(view.New(view.Config{Sim: sim, Store: store, Log: log})); err != nil {
		log.WithError(err).Fatal("game exited")
	}
	log.Info(sim.Outcome().Description)
}
