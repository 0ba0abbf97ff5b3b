package render

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-automata/internal/simulation"
	"github.com/lao-tseu-is-alive/go-automata/pkg/steering"
	"github.com/lao-tseu-is-alive/go-automata/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupControls(t *testing.T) {
	cfg := simulation.DefaultConfig()
	cfg.Boids, cfg.Predators, cfg.Seed = 2, 1, 3
	world, err := simulation.NewWorld(cfg, nil)
	require.NoError(t, err)
	opts, err := world.GroupOptions(simulation.GroupBoids)
	require.NoError(t, err)

	c := newGroupControls(ui.NewPanel("test", 0, 0, 200), simulation.GroupBoids, opts, nil)
	require.Len(t, c.toggles, 3)
	assert.Equal(t, steering.BehaviorFlocking, c.toggles[0].kind)
	assert.True(t, c.toggles[0].box.Checked())
	assert.False(t, c.takeChanged())

	c.toggles[2].box.SetChecked(false)
	c.maxSpeed.SetValue(50)
	assert.True(t, c.takeChanged())
	assert.False(t, c.takeChanged())

	doc := c.overrides(true, false)
	assert.Equal(t, map[string]any{"maxSpeed": 50.0, "maxForce": 6.0}, doc["forces"])
	assert.Equal(t, map[string]any{"debug": true, "wrapWorldBounds": false}, doc["game"])
	assert.Equal(t, map[string]any{"enabled": false}, doc["wander"])
	assert.Equal(t, map[string]any{"enabled": true}, doc["evade"])

	// the document is accepted by the engine as is
	ov, err := steering.OverridesFromMap(doc)
	require.NoError(t, err)
	require.NoError(t, world.Reconfigure(simulation.GroupBoids, ov))
	got, err := world.GroupOptions(simulation.GroupBoids)
	require.NoError(t, err)
	assert.False(t, got.Wander.Enabled)
	assert.Equal(t, 50.0, got.Forces.MaxSpeed)
}

func TestActivity(t *testing.T) {
	snap := &simulation.Snapshot{Agents: []simulation.AgentState{
		{Group: simulation.GroupBoids, Reports: []steering.Report{
			{Label: "evading", Active: true},
			{Label: "bounds", Active: false},
		}},
		{Group: simulation.GroupBoids, Reports: []steering.Report{
			{Label: "bounds", Active: true},
			{Label: "evading", Active: true},
		}},
		{Group: simulation.GroupPredators, Reports: []steering.Report{
			{Label: "pursuing", Active: true},
		}},
	}}

	assert.Equal(t, "evading 2  bounds 1", activity(snap, simulation.GroupBoids))
	assert.Equal(t, "pursuing 1", activity(snap, simulation.GroupPredators))
	assert.Empty(t, activity(&simulation.Snapshot{}, simulation.GroupBoids))
	assert.Empty(t, activity(nil, simulation.GroupBoids))
}
