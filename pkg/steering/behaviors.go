package steering

import (
	"cmp"
	"math"
	"slices"

	"github.com/lao-tseu-is-alive/go-automata/pkg/geometry"
)

// maxThreatWeight caps the weight of the nearest threat of evade, so an
// unbounded view distance cannot overflow the accumulated force.
const maxThreatWeight = 1e9

// viewOr returns viewDistance, or fallback when it was left unspecified.
func viewOr(viewDistance, fallback float64) float64 {
	if viewDistance <= 0 || math.IsNaN(viewDistance) {
		return fallback
	}
	return viewDistance
}

// Seek steers toward target. A group target is narrowed to its closest
// member in range. Targets out of range, or exactly on top of the
// automaton, produce no force.
func (a *Automaton) Seek(target Target, viewDistance float64) geometry.Vector2D {
	viewDistance = viewOr(viewDistance, a.opts.Seek.ViewDistance)
	b, ok := a.resolveClosest(target, viewDistance)
	if !ok {
		a.report(Report{Behavior: BehaviorSeek, Label: "seeking", ViewDistance: viewDistance, SlowingRadius: a.slowingRadius()})
		return geometry.Zero
	}
	return a.seekPoint(b.Pos, viewDistance, true)
}

func (a *Automaton) slowingRadius() float64 {
	if !a.opts.Seek.SlowArrival {
		return 0
	}
	return a.opts.Seek.SlowingRadius
}

// seekPoint is the seek math against a resolved point. report is false when
// pursue uses it as a sub-step.
func (a *Automaton) seekPoint(target geometry.Vector2D, viewDistance float64, report bool) geometry.Vector2D {
	desired := target.Sub(a.pos)
	distance := desired.Len()
	active := distance > 0 && distance < viewDistance
	slowing := false

	steer := geometry.Zero
	if active {
		speed := a.opts.Forces.MaxSpeed
		if a.opts.Seek.SlowArrival && distance < a.opts.Seek.SlowingRadius {
			slowing = true
			speed *= distance / viewDistance
		}
		steer = desired.SetLen(speed).Sub(a.vel)
	}

	if report {
		a.report(Report{
			Behavior:      BehaviorSeek,
			Label:         "seeking",
			Targets:       []geometry.Vector2D{target},
			ViewDistance:  viewDistance,
			Active:        active,
			Distance:      distance,
			SlowingRadius: a.slowingRadius(),
			Slowing:       slowing,
		})
	}
	return steer
}

// Flee steers directly away from target at full speed.
func (a *Automaton) Flee(target Target, viewDistance float64) geometry.Vector2D {
	viewDistance = viewOr(viewDistance, a.opts.Flee.ViewDistance)
	b, ok := a.resolveClosest(target, viewDistance)
	if !ok {
		a.report(Report{Behavior: BehaviorFlee, Label: "fleeing", ViewDistance: viewDistance})
		return geometry.Zero
	}
	return a.fleePoint(b.Pos, viewDistance, true)
}

func (a *Automaton) fleePoint(target geometry.Vector2D, viewDistance float64, report bool) geometry.Vector2D {
	desired := a.pos.Sub(target)
	distance := desired.Len()
	active := distance > 0 && distance < viewDistance

	steer := geometry.Zero
	if active {
		steer = desired.SetLen(a.opts.Forces.MaxSpeed).Sub(a.vel)
	}

	if report {
		a.report(Report{
			Behavior:     BehaviorFlee,
			Label:        "fleeing",
			Targets:      []geometry.Vector2D{target},
			ViewDistance: viewDistance,
			Active:       active,
			Distance:     distance,
		})
	}
	return steer
}

// FuturePosition predicts where b will be when the automaton could reach
// it, assuming b keeps its velocity. A stationary body stays put.
func (a *Automaton) FuturePosition(b Body) geometry.Vector2D {
	speed := b.Vel.Len()
	if speed == 0 {
		return b.Pos
	}
	t := a.pos.DistanceTo(b.Pos) / speed
	return b.Pos.Add(b.Vel.Mul(t))
}

// Pursue seeks the predicted position of target. It only engages when the
// target itself, not its prediction, is within viewDistance.
func (a *Automaton) Pursue(target Target, viewDistance float64) geometry.Vector2D {
	viewDistance = viewOr(viewDistance, a.opts.Pursue.ViewDistance)
	b, ok := a.resolveClosest(target, viewDistance)

	var (
		distance  float64
		predicted geometry.Vector2D
		steer     = geometry.Zero
	)
	if ok {
		distance = a.pos.DistanceTo(b.Pos)
		if distance < viewDistance {
			predicted = a.FuturePosition(b)
			steer = a.seekPoint(predicted, viewDistance, false)
		}
	}

	r := Report{
		Behavior:     BehaviorPursue,
		Label:        "pursuing",
		ViewDistance: viewDistance,
		Active:       steer.LenSqr() > 0,
		Distance:     distance,
	}
	if ok {
		r.Targets = []geometry.Vector2D{predicted}
	}
	a.report(r)
	return steer
}

// Evade flees from every threat in range at once. Threats are handled
// nearest first and each flee force is weighted by viewDistance/distance.
// The nearest weight is capped at maxThreatWeight and the others keep their
// ratio to it. The sum is divided by the number of threats plus one.
func (a *Automaton) Evade(target Target, viewDistance float64) geometry.Vector2D {
	viewDistance = viewOr(viewDistance, a.opts.Evade.ViewDistance)
	threats := a.resolveAll(target, viewDistance)
	slices.SortStableFunc(threats, func(x, y Body) int {
		return cmp.Compare(a.pos.DistanceSquaredTo(x.Pos), a.pos.DistanceSquaredTo(y.Pos))
	})

	var (
		sum     = geometry.Zero
		count   int
		nearest float64
		top     float64
		points  []geometry.Vector2D
	)
	for _, threat := range threats {
		distance := a.pos.DistanceTo(threat.Pos)
		if !(distance > 0 && distance < viewDistance) {
			continue
		}
		if count == 0 {
			nearest = distance
			top = math.Min(viewDistance/nearest, maxThreatWeight)
		}
		weight := top * (nearest / distance)
		force := a.fleePoint(a.FuturePosition(threat), viewDistance, false)
		sum = sum.Add(force.Mul(weight))
		points = append(points, threat.Pos)
		count++
	}

	steer := geometry.Zero
	if count > 0 {
		steer = sum.Div(float64(count + 1))
	}
	a.report(Report{
		Behavior:     BehaviorEvade,
		Label:        "evading",
		Targets:      points,
		ViewDistance: viewDistance,
		Active:       count > 0,
		Distance:     nearest,
	})
	return steer
}

// Wander random-walks theta and steers toward a point on a circle projected
// ahead of the automaton. Both the projection distance and the circle
// radius are multiples of the automaton radius.
func (a *Automaton) Wander() geometry.Vector2D {
	o := a.opts.Wander
	a.theta += (a.rng.Float64()*2 - 1) * o.Change

	center := a.vel.Normalize().Mul(o.Distance * a.radius)
	offset := geometry.NewVectorPolar(o.Radius*a.radius, a.theta)
	return center.Add(offset).Mul(o.Strength)
}

// Theta is the current wander angle.
func (a *Automaton) Theta() float64 { return a.theta }

// CheckBounds keeps the automaton inside the world. In wrap mode it
// teleports the automaton to the opposite edge and returns no force. In
// contained mode, near a wall, it returns the desired velocity itself: full
// speed away from the wall on that axis, the current velocity on the other,
// no longer than maxSpeed.
func (a *Automaton) CheckBounds() geometry.Vector2D {
	e := a.edges
	if a.opts.Game.WrapWorldBounds {
		if a.pos.X < e.Left {
			a.pos.X = a.world.Width + a.radius
		}
		if a.pos.Y < e.Top {
			a.pos.Y = a.world.Height + a.radius
		}
		if a.pos.X > e.Right {
			a.pos.X = -a.radius
		}
		if a.pos.Y > e.Bottom {
			a.pos.Y = -a.radius
		}
		return geometry.Zero
	}

	maxSpeed := a.opts.Forces.MaxSpeed
	desired := a.vel
	active := false
	switch {
	case a.pos.X < e.Left:
		desired.X, active = maxSpeed, true
	case a.pos.X > e.Right:
		desired.X, active = -maxSpeed, true
	}
	switch {
	case a.pos.Y < e.Top:
		desired.Y, active = maxSpeed, true
	case a.pos.Y > e.Bottom:
		desired.Y, active = -maxSpeed, true
	}

	a.report(Report{
		Behavior:  BehaviorCheckBounds,
		Label:     "bounds",
		Active:    active,
		Edges:     &e,
		EdgeWidth: a.opts.Game.EdgeWidth,
	})
	if !active {
		return geometry.Zero
	}
	return desired.Limit(maxSpeed)
}
