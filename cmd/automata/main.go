// automata runs a flock of steering-driven boids hunted by predators.
//
// Usage:
//
//	automata                    - Open the simulation window
//	automata headless --ticks N - Step the world N times without a window and print stats
//
// Global flags:
//
//	--config <path>    - Scenario file, JSON or YAML
//	--boid <path>      - Extra overrides for the boids
//	--predator <path>  - Extra overrides for the predators
//	--seed <value>     - RNG seed (0 = random)
//	--debug            - Collect and draw behavior debug reports
//	--verbose          - Debug level logging
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lao-tseu-is-alive/go-automata/internal/simulation"
	"github.com/lao-tseu-is-alive/go-automata/pkg/steering"
	"github.com/spf13/cobra"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	flagConfig   string
	flagBoid     string
	flagPredator string
	flagSeed     int64
	flagDebug    bool
	flagVerbose  bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "Steering behaviors playground",
	Long: `automata simulates autonomous agents driven by steering behaviors:
boids flock together and evade predators, predators pursue the closest boid.

Controls:
  D  - Toggle debug overlay
  R  - Respawn the population

Examples:
  automata
  automata --config ./scenario.yaml --seed 42
  automata --boid ./shy-boids.json --debug
  automata headless --ticks 1200`,
	SilenceUsage: true,
	RunE:         runWindow,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a scenario file (JSON or YAML)")
	rootCmd.PersistentFlags().StringVar(&flagBoid, "boid", "", "Path to boid overrides (JSON or YAML)")
	rootCmd.PersistentFlags().StringVar(&flagPredator, "predator", "", "Path to predator overrides (JSON or YAML)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Collect behavior debug reports")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug level logging")

	rootCmd.AddCommand(headlessCmd)
}

// loadScenario builds the scenario from the config file and the command line.
func loadScenario(cmd *cobra.Command) (*simulation.Config, error) {
	cfg := simulation.DefaultConfig()
	if flagConfig != "" {
		var err error
		if cfg, err = simulation.LoadConfig(flagConfig); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flagDebug {
		cfg.Debug = true
	}
	for _, extra := range []struct {
		path  string
		group *steering.Overrides
	}{
		{flagBoid, &cfg.Boid},
		{flagPredator, &cfg.Predator},
	} {
		if extra.path == "" {
			continue
		}
		ov, err := steering.LoadOverrides(extra.path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", extra.path, err)
		}
		*extra.group = extra.group.Merge(ov)
	}
	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}

func newActorSystem(verbose bool) (actor.ActorSystem, error) {
	var logger golog.Logger = golog.DiscardLogger
	if verbose {
		logger = golog.New(golog.DebugLevel, os.Stderr)
	}
	return actor.NewActorSystem("AutomataWorld",
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(3))
}
