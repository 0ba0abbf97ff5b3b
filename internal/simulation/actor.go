package simulation

import (
	"errors"
	"fmt"
	"time"

	"github.com/lao-tseu-is-alive/go-automata/pkg/steering"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The world actor speaks protobuf well-known types:
//
//	*durationpb.Duration  step the world by that much time
//	*structpb.Struct      reconfigure a group: {"group": "...", "overrides": {...}}
//	*emptypb.Empty        ask for Stats, answered with a *structpb.Struct
//	*wrapperspb.Int64Value respawn the population with that seed

// ErrReconfigureRejected is returned by ReconfigureError for a refused reconfiguration.
var ErrReconfigureRejected = errors.New("reconfiguration rejected")

// TickMessage steps the world by dt.
func TickMessage(dt time.Duration) *durationpb.Duration {
	return durationpb.New(dt)
}

// ReconfigureMessage asks the world to layer overrides over group. overrides
// uses the same keys as an overrides file.
func ReconfigureMessage(g Group, overrides map[string]any) (*structpb.Struct, error) {
	if overrides == nil {
		overrides = map[string]any{}
	}
	return structpb.NewStruct(map[string]any{
		"group":     string(g),
		"overrides": overrides,
	})
}

// StatsMessage asks the world for its Stats.
func StatsMessage() *emptypb.Empty {
	return &emptypb.Empty{}
}

// RespawnMessage rebuilds the population from seed; 0 picks one at random.
func RespawnMessage(seed int64) *wrapperspb.Int64Value {
	return wrapperspb.Int64(seed)
}

// StatsFromStruct decodes the answer to StatsMessage.
func StatsFromStruct(s *structpb.Struct) Stats {
	f := s.GetFields()
	return Stats{
		Tick:      uint64(f["tick"].GetNumberValue()),
		Boids:     int(f["boids"].GetNumberValue()),
		Predators: int(f["predators"].GetNumberValue()),
		MeanSpeed: f["meanSpeed"].GetNumberValue(),
	}
}

// WorldActor serialises every access to a World behind a goakt mailbox.
// The game loop drives it with ticks and receives snapshots on a channel.
type WorldActor struct {
	world      *World
	snapshotCh chan<- *Snapshot
	// --- Benchmark Stats ---
	tickCount   int
	dropCount   int
	lastLogTime time.Time
}

// NewWorldActor wraps world. snapshotCh may be nil when nobody renders.
func NewWorldActor(world *World, snapshotCh chan<- *Snapshot) *WorldActor {
	return &WorldActor{
		world:       world,
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

func (w *WorldActor) PreStart(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Info("World is starting...")
	return nil
}

func (w *WorldActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {

	case *goaktpb.PostStart:
		ctx.Logger().Infof("World Started with %d automata (seed %d)", w.world.Len(), w.world.Seed())

	// 1. The Main Simulation Step (Driven by Game Loop)
	case *durationpb.Duration:
		if err := msg.CheckValid(); err != nil {
			ctx.Logger().Warnf("ignoring tick: %v", err)
			return
		}
		snap := w.world.Step(msg.AsDuration().Seconds())
		w.tickCount++
		w.logBenchmarks(ctx)
		w.pushSnapshot(snap)

	// 2. Dynamic configuration from the UI or a client
	case *structpb.Struct:
		ctx.Response(w.reconfigure(ctx, msg))

	case *emptypb.Empty:
		ctx.Response(w.stats())

	case *wrapperspb.Int64Value:
		if err := w.world.Respawn(msg.GetValue()); err != nil {
			ctx.Logger().Errorf("respawn failed: %v", err)
			return
		}
		ctx.Logger().Infof("World respawned (seed %d)", w.world.Seed())
		w.pushSnapshot(w.world.Snapshot())

	default:
		ctx.Unhandled()
	}
}

func (w *WorldActor) reconfigure(ctx *actor.ReceiveContext, msg *structpb.Struct) *structpb.Struct {
	fields := msg.GetFields()
	err := func() error {
		g, err := ParseGroup(fields["group"].GetStringValue())
		if err != nil {
			return err
		}
		ov, err := steering.OverridesFromMap(fields["overrides"].GetStructValue().AsMap())
		if err != nil {
			return err
		}
		return w.world.Reconfigure(g, ov)
	}()

	result := map[string]*structpb.Value{"ok": structpb.NewBoolValue(err == nil)}
	if err != nil {
		ctx.Logger().Warnf("reconfigure rejected: %v", err)
		result["error"] = structpb.NewStringValue(err.Error())
	}
	return &structpb.Struct{Fields: result}
}

func (w *WorldActor) stats() *structpb.Struct {
	s := w.world.Stats()
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"tick":      structpb.NewNumberValue(float64(s.Tick)),
		"boids":     structpb.NewNumberValue(float64(s.Boids)),
		"predators": structpb.NewNumberValue(float64(s.Predators)),
		"meanSpeed": structpb.NewNumberValue(s.MeanSpeed),
	}}
}

func (w *WorldActor) logBenchmarks(ctx *actor.ReceiveContext) {
	if time.Since(w.lastLogTime) >= time.Second {
		ctx.Logger().Debugf("TICK RATE: %d/sec (dropped frames: %d) | Automata: %d",
			w.tickCount, w.dropCount, w.world.Len())
		w.tickCount = 0
		w.dropCount = 0
		w.lastLogTime = time.Now()
	}
}

func (w *WorldActor) pushSnapshot(snap *Snapshot) {
	if w.snapshotCh == nil {
		return
	}
	select {
	case w.snapshotCh <- snap:
	default:
		// UI busy, skip frame
		w.dropCount++
	}
}

func (w *WorldActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Info("World is shutdown...")
	return nil
}

// ReconfigureError extracts the error of a reconfigure answer, nil when it was accepted.
func ReconfigureError(resp *structpb.Struct) error {
	f := resp.GetFields()
	if f["ok"].GetBoolValue() {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrReconfigureRejected, f["error"].GetStringValue())
}
