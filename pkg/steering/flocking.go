package steering

import "github.com/lao-tseu-is-alive/go-automata/pkg/geometry"

// flock is the flocking descriptor: it applies separation, alignment and
// cohesion as three independent forces, each with its own strength, and
// returns nothing for Update to apply.
func (a *Automaton) flock() geometry.Vector2D {
	o := a.opts.Flocking
	a.applyNonZero(a.Separate(o.Flock), o.Separation.Strength)
	a.applyNonZero(a.Align(o.Flock), o.Alignment.Strength)
	a.applyNonZero(a.Cohesion(o.Flock), o.Cohesion.Strength)
	return geometry.Zero
}

func (a *Automaton) applyNonZero(force geometry.Vector2D, strength float64) {
	if force.LenSqr() > 0 {
		a.ApplyForce(force, strength)
	}
}

// Separate steers away from flockmates closer than the desired separation.
// Each neighbour pushes with a unit vector weighted by 1/distance.
func (a *Automaton) Separate(flock *Flock) geometry.Vector2D {
	o := a.opts.Flocking
	steer := geometry.Zero
	count := 0
	for _, m := range flock.Members() {
		d := a.pos.DistanceTo(m.Position())
		if d > 0 && d < o.Separation.DesiredSeparation {
			away := a.pos.Sub(m.Position()).Normalize().Div(d)
			steer = steer.Add(away)
			count++
		}
	}
	if count > 0 {
		steer = steer.Div(float64(count))
	}
	if steer.LenSqr() > 0 {
		steer = steer.SetLen(a.opts.Forces.MaxSpeed).Sub(a.vel).Limit(o.Separation.Strength)
	}
	return steer
}

// Align steers toward the average velocity of flockmates whose distance is
// in (minDistance, maxDistance). The automaton itself never counts.
func (a *Automaton) Align(flock *Flock) geometry.Vector2D {
	o := a.opts.Flocking
	sum := geometry.Zero
	count := 0
	for _, m := range flock.Members() {
		d := a.pos.DistanceTo(m.Position())
		if d > 0 && d > o.MinDistance && d < o.MaxDistance {
			sum = sum.Add(m.Velocity())
			count++
		}
	}
	if count == 0 {
		return geometry.Zero
	}
	// flockmates at rest still align: the desired velocity is then zero
	avg := sum.Div(float64(count))
	return avg.SetLen(a.opts.Forces.MaxSpeed).Sub(a.vel).Limit(o.Alignment.Strength)
}

// Cohesion steers toward the centroid of flockmates within maxDistance.
// It is a positional pull: the current velocity is not subtracted.
func (a *Automaton) Cohesion(flock *Flock) geometry.Vector2D {
	o := a.opts.Flocking
	sum := geometry.Zero
	count := 0
	for _, m := range flock.Members() {
		d := a.pos.DistanceTo(m.Position())
		if d > 0 && d < o.MaxDistance {
			sum = sum.Add(m.Position())
			count++
		}
	}
	if count == 0 {
		return geometry.Zero
	}
	centroid := sum.Div(float64(count))
	return centroid.Sub(a.pos).Normalize().Mul(o.Cohesion.Strength)
}
