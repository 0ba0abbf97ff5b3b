package render

import (
	"fmt"
	"strings"

	"github.com/lao-tseu-is-alive/go-automata/internal/simulation"
	"github.com/lao-tseu-is-alive/go-automata/pkg/steering"
	"github.com/lao-tseu-is-alive/go-automata/pkg/ui"
)

// Behaviors offered as toggles, per group.
var groupBehaviors = map[simulation.Group][]steering.BehaviorKind{
	simulation.GroupBoids:     {steering.BehaviorFlocking, steering.BehaviorEvade, steering.BehaviorWander},
	simulation.GroupPredators: {steering.BehaviorPursue, steering.BehaviorWander},
}

// behaviorToggle enables or disables one behavior of a group.
type behaviorToggle struct {
	kind steering.BehaviorKind
	box  *ui.Checkbox
}

// groupControls is the panel section of one group.
type groupControls struct {
	group    simulation.Group
	maxSpeed *ui.Slider
	maxForce *ui.Slider
	toggles  []behaviorToggle
}

func newGroupControls(p *ui.Panel, g simulation.Group, opts steering.Options, activity func() string) *groupControls {
	c := &groupControls{
		group:    g,
		maxSpeed: ui.NewSlider("Max Speed", 10, 400, opts.Forces.MaxSpeed),
		maxForce: ui.NewSlider("Max Force", 0.5, 50, opts.Forces.MaxForce),
	}
	p.Header(strings.ToUpper(string(g[:1])) + string(g[1:]))
	p.Add(c.maxSpeed)
	p.Add(c.maxForce)
	for _, kind := range groupBehaviors[g] {
		t := behaviorToggle{kind: kind, box: ui.NewCheckbox(kind.String(), behaviorEnabled(opts, kind))}
		c.toggles = append(c.toggles, t)
		p.Add(t.box)
	}
	p.Add(ui.NewLabel(1, activity))
	return c
}

func behaviorEnabled(opts steering.Options, kind steering.BehaviorKind) bool {
	switch kind {
	case steering.BehaviorFlocking:
		return opts.Flocking.Enabled
	case steering.BehaviorEvade:
		return opts.Evade.Enabled
	case steering.BehaviorPursue:
		return opts.Pursue.Enabled
	case steering.BehaviorWander:
		return opts.Wander.Enabled
	}
	return false
}

// takeChanged drains every widget of the section.
func (c *groupControls) takeChanged() bool {
	changed := c.maxSpeed.TakeChanged()
	changed = c.maxForce.TakeChanged() || changed
	for _, t := range c.toggles {
		changed = t.box.TakeChanged() || changed
	}
	return changed
}

// overrides is the reconfigure document of the section. Behavior keys are
// the BehaviorKind names, which are also the overrides keys.
func (c *groupControls) overrides(debug, wrap bool) map[string]any {
	doc := map[string]any{
		"forces": map[string]any{"maxSpeed": c.maxSpeed.Value(), "maxForce": c.maxForce.Value()},
		"game":   map[string]any{"debug": debug, "wrapWorldBounds": wrap},
	}
	for _, t := range c.toggles {
		doc[t.kind.String()] = map[string]any{"enabled": t.box.Checked()}
	}
	return doc
}

// activity counts the automata of g whose behaviors were active in the
// last snapshot, e.g. "evading 4  bounds 1". Reports only exist in debug mode.
func activity(snap *simulation.Snapshot, g simulation.Group) string {
	if snap == nil {
		return ""
	}
	counts := map[string]int{}
	var order []string
	for _, a := range snap.Agents {
		if a.Group != g {
			continue
		}
		for _, r := range a.Reports {
			if !r.Active {
				continue
			}
			if _, seen := counts[r.Label]; !seen {
				order = append(order, r.Label)
			}
			counts[r.Label]++
		}
	}
	parts := make([]string, len(order))
	for i, label := range order {
		parts[i] = fmt.Sprintf("%s %d", label, counts[label])
	}
	return strings.Join(parts, "  ")
}
