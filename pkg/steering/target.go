package steering

import "github.com/lao-tseu-is-alive/go-automata/pkg/geometry"

// Target is what seek, flee, pursue and evade steer against. It is one of
// PointTarget, AgentTarget, DynamicTarget or GroupTarget, and is resolved
// again on every frame.
type Target interface {
	isTarget()
}

// PointTarget is a fixed point in the world.
type PointTarget struct {
	Pos geometry.Vector2D
}

// AgentTarget follows a single moving agent.
type AgentTarget struct {
	Agent Mover
}

// DynamicTarget is called on every resolution to obtain the real target.
type DynamicTarget func() Target

// GroupTarget is a collection of candidates. Elements may be groups themselves.
type GroupTarget []Target

func (PointTarget) isTarget()   {}
func (AgentTarget) isTarget()   {}
func (DynamicTarget) isTarget() {}
func (GroupTarget) isTarget()   {}

// Point is shorthand for a PointTarget at (x, y).
func Point(x, y float64) PointTarget {
	return PointTarget{Pos: geometry.NewVector(x, y)}
}

// Agent is shorthand for an AgentTarget.
func Agent(m Mover) AgentTarget {
	return AgentTarget{Agent: m}
}

// Group wraps movers into a GroupTarget.
func Group(movers ...Mover) GroupTarget {
	g := make(GroupTarget, 0, len(movers))
	for _, m := range movers {
		g = append(g, AgentTarget{Agent: m})
	}
	return g
}

// resolveSingle turns a non-group target into a body. Points do not move.
func resolveSingle(t Target) (Body, bool) {
	switch t := t.(type) {
	case PointTarget:
		return Body{Pos: t.Pos}, true
	case AgentTarget:
		if t.Agent == nil {
			return Body{}, false
		}
		return BodyOf(t.Agent), true
	case DynamicTarget:
		if t == nil {
			return Body{}, false
		}
		return resolveSingle(t())
	}
	return Body{}, false
}

// expand calls a DynamicTarget until it yields a concrete target.
func expand(t Target) Target {
	for {
		d, ok := t.(DynamicTarget)
		if !ok {
			return t
		}
		if d == nil {
			return nil
		}
		t = d()
	}
}

// resolveClosest resolves t to the single body the behavior should use.
// Groups go through the closest-in-range query.
func (a *Automaton) resolveClosest(t Target, viewDistance float64) (Body, bool) {
	switch t := expand(t).(type) {
	case nil:
		return Body{}, false
	case GroupTarget:
		return a.ClosestInRange(t, viewDistance)
	default:
		return resolveSingle(t)
	}
}

// resolveAll resolves t to every candidate body. A group yields all members
// in range; a single target yields a one-element list.
func (a *Automaton) resolveAll(t Target, viewDistance float64) []Body {
	switch t := expand(t).(type) {
	case nil:
		return nil
	case GroupTarget:
		return a.AllInRange(t, viewDistance)
	default:
		if b, ok := resolveSingle(t); ok {
			return []Body{b}
		}
		return nil
	}
}
