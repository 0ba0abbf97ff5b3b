package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-automata/internal/render"
	"github.com/lao-tseu-is-alive/go-automata/internal/simulation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runWindow(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(flagVerbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	system, err := newActorSystem(flagVerbose)
	if err != nil {
		return err
	}
	if err := system.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = system.Stop(ctx) }()

	world, err := simulation.NewWorld(cfg, logger.Named("world"))
	if err != nil {
		return err
	}
	game, err := render.NewGame(ctx, system, world, cfg, logger.Named("game"))
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Automata: boids vs predators")
	ebiten.SetTPS(cfg.TickRate)
	logger.Info("starting window",
		zap.Int("boids", cfg.Boids),
		zap.Int("predators", cfg.Predators),
		zap.Uint64("seed", world.Seed()))
	return ebiten.RunGame(game)
}
