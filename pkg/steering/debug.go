package steering

import "github.com/lao-tseu-is-alive/go-automata/pkg/geometry"

// Report is what one behavior invocation exposes to a debug overlay.
// The engine never draws; it only fills these in when game.debug is on.
type Report struct {
	Behavior      BehaviorKind        `json:"behavior"`
	Label         string              `json:"label"`
	Position      geometry.Vector2D   `json:"position"`
	Targets       []geometry.Vector2D `json:"targets,omitempty"`
	ViewDistance  float64             `json:"viewDistance"`
	Active        bool                `json:"active"`
	Distance      float64             `json:"distance"`
	SlowingRadius float64             `json:"slowingRadius,omitempty"`
	Slowing       bool                `json:"slowing,omitempty"`
	Edges         *Edges              `json:"edges,omitempty"`
	EdgeWidth     float64             `json:"edgeWidth,omitempty"`
}

func (a *Automaton) report(r Report) {
	if !a.opts.Game.Debug {
		return
	}
	r.Position = a.pos
	a.reports = append(a.reports, r)
}
