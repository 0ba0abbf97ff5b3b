package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/structpb"
)

const askTimeout = 5 * time.Second

func spawnWorld(t *testing.T, snapshots chan *Snapshot) (context.Context, *actor.PID) {
	t.Helper()
	ctx := context.Background()
	system, err := actor.NewActorSystem("test", actor.WithLogger(golog.DiscardLogger))
	require.NoError(t, err)
	require.NoError(t, system.Start(ctx))
	t.Cleanup(func() { _ = system.Stop(ctx) })

	pid, err := system.Spawn(ctx, "world", NewWorldActor(newTestWorld(t, 8, 1), snapshots))
	require.NoError(t, err)
	return ctx, pid
}

func askStats(t *testing.T, ctx context.Context, pid *actor.PID) Stats {
	t.Helper()
	resp, err := actor.Ask(ctx, pid, StatsMessage(), askTimeout)
	require.NoError(t, err)
	s, ok := resp.(*structpb.Struct)
	require.True(t, ok, "stats answer is %T", resp)
	return StatsFromStruct(s)
}

func askReconfigure(t *testing.T, ctx context.Context, pid *actor.PID, g Group, overrides map[string]any) error {
	t.Helper()
	msg, err := ReconfigureMessage(g, overrides)
	require.NoError(t, err)
	resp, err := actor.Ask(ctx, pid, msg, askTimeout)
	require.NoError(t, err)
	s, ok := resp.(*structpb.Struct)
	require.True(t, ok, "reconfigure answer is %T", resp)
	return ReconfigureError(s)
}

func TestWorldActor_Tick(t *testing.T) {
	snapshots := make(chan *Snapshot, 16)
	ctx, pid := spawnWorld(t, snapshots)

	for range 5 {
		require.NoError(t, actor.Tell(ctx, pid, TickMessage(time.Second/60)))
	}
	stats := askStats(t, ctx, pid)

	assert.Equal(t, uint64(5), stats.Tick)
	assert.Equal(t, 8, stats.Boids)
	assert.Equal(t, 1, stats.Predators)
	require.Len(t, snapshots, 5)
	first := <-snapshots
	assert.Equal(t, uint64(1), first.Tick)
	assert.Len(t, first.Agents, 9)
}

func TestWorldActor_DropsSnapshotsWhenNobodyReads(t *testing.T) {
	snapshots := make(chan *Snapshot, 1)
	ctx, pid := spawnWorld(t, snapshots)

	for range 3 {
		require.NoError(t, actor.Tell(ctx, pid, TickMessage(time.Second/60)))
	}
	assert.Equal(t, uint64(3), askStats(t, ctx, pid).Tick)
	assert.Len(t, snapshots, 1)
}

func TestWorldActor_Reconfigure(t *testing.T) {
	ctx, pid := spawnWorld(t, nil)

	assert.NoError(t, askReconfigure(t, ctx, pid, GroupBoids, map[string]any{
		"forces": map[string]any{"maxSpeed": 30.0},
		"seek":   map[string]any{"priority": "3"},
	}))
	assert.NoError(t, askReconfigure(t, ctx, pid, GroupPredators, nil))

	err := askReconfigure(t, ctx, pid, GroupBoids, map[string]any{
		"seek": map[string]any{"priority": "never"},
	})
	assert.ErrorIs(t, err, ErrReconfigureRejected)

	err = askReconfigure(t, ctx, pid, Group("fish"), nil)
	assert.ErrorIs(t, err, ErrReconfigureRejected)
	assert.Contains(t, err.Error(), "unknown group")
}

func TestWorldActor_Respawn(t *testing.T) {
	ctx, pid := spawnWorld(t, nil)

	for range 4 {
		require.NoError(t, actor.Tell(ctx, pid, TickMessage(time.Second/60)))
	}
	require.Equal(t, uint64(4), askStats(t, ctx, pid).Tick)

	require.NoError(t, actor.Tell(ctx, pid, RespawnMessage(11)))
	stats := askStats(t, ctx, pid)
	assert.Equal(t, uint64(0), stats.Tick)
	assert.Equal(t, 8, stats.Boids)
}

func TestWorldActor_InvalidTickIgnored(t *testing.T) {
	ctx, pid := spawnWorld(t, nil)

	bad := TickMessage(time.Second)
	bad.Nanos = -5
	require.NoError(t, actor.Tell(ctx, pid, bad))
	assert.Equal(t, uint64(0), askStats(t, ctx, pid).Tick)
}
