package main

import (
	"fmt"
	"time"

	"github.com/lao-tseu-is-alive/go-automata/internal/simulation"
	"github.com/spf13/cobra"
	"github.com/tochemey/goakt/v3/actor"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"
)

var flagTicks int

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run the simulation without a window",
	Long: `Step the world a fixed number of ticks through the world actor and print
population statistics. Handy for profiling and for checking a scenario file.

Examples:
  automata headless --ticks 600
  automata headless --config ./scenario.json --seed 7`,
	Args: cobra.NoArgs,
	RunE: runHeadless,
}

func init() {
	headlessCmd.Flags().IntVar(&flagTicks, "ticks", 600, "Number of ticks to simulate")
}

func runHeadless(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if flagTicks < 0 {
		return fmt.Errorf("--ticks must be positive, got %d", flagTicks)
	}
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
	pid, err := system.Spawn(ctx, "world", simulation.NewWorldActor(world, nil))
	if err != nil {
		return fmt.Errorf("failed to spawn world: %w", err)
	}

	start := time.Now()
	dt := time.Second / time.Duration(cfg.TickRate)
	for range flagTicks {
		if err := actor.Tell(ctx, pid, simulation.TickMessage(dt)); err != nil {
			return err
		}
	}
	// the mailbox is FIFO: the answer comes after every tick
	resp, err := actor.Ask(ctx, pid, simulation.StatsMessage(), time.Minute)
	if err != nil {
		return fmt.Errorf("asking stats: %w", err)
	}
	s, ok := resp.(*structpb.Struct)
	if !ok {
		return fmt.Errorf("unexpected stats answer %T", resp)
	}
	stats := simulation.StatsFromStruct(s)
	logger.Info("headless run finished",
		zap.Uint64("ticks", stats.Tick),
		zap.Duration("elapsed", time.Since(start)))

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "tick=%d boids=%d predators=%d meanSpeed=%.2f seed=%d\n",
		stats.Tick, stats.Boids, stats.Predators, stats.MeanSpeed, world.Seed())
	return err
}
