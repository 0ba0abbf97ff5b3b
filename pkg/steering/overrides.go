package steering

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Priority is a priority as written in a configuration: a JSON number or a
// numeric string. It is coerced to an integer, truncating any fraction, when
// the configuration is applied.
type Priority string

// PriorityOf returns a pointer to the priority n, for building Overrides in code.
func PriorityOf(n int) *Priority {
	p := Priority(strconv.Itoa(n))
	return &p
}

// Int coerces the priority to an integer.
func (p Priority) Int() (int, error) {
	s := strings.TrimSpace(string(p))
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPriority, string(p))
	}
	return int(math.Trunc(f)), nil
}

// UnmarshalJSON accepts a number or a string token.
func (p *Priority) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = Priority(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPriority, string(b))
	}
	*p = Priority(n)
	return nil
}

// Ptr returns a pointer to v. Handy for Overrides literals.
func Ptr[T any](v T) *T {
	return &v
}

// GameOverrides overrides GameOptions. Nil fields keep the default.
type GameOverrides struct {
	WrapWorldBounds  *bool    `json:"wrapWorldBounds,omitempty"`
	RotateToVelocity *bool    `json:"rotateToVelocity,omitempty"`
	EdgeWidth        *float64 `json:"edgeWidth,omitempty"`
	Debug            *bool    `json:"debug,omitempty"`
}

// ForceOverrides overrides ForceOptions.
type ForceOverrides struct {
	MaxSpeed *float64 `json:"maxSpeed,omitempty"`
	MaxForce *float64 `json:"maxForce,omitempty"`
}

// BehaviorOverrides overrides the fields every descriptor shares.
type BehaviorOverrides struct {
	Enabled  *bool     `json:"enabled,omitempty"`
	Priority *Priority `json:"priority,omitempty"`
	Strength *float64  `json:"strength,omitempty"`
}

// TargetOverrides overrides TargetOptions.
type TargetOverrides struct {
	BehaviorOverrides
	Target       Target   `json:"-"`
	ViewDistance *float64 `json:"viewDistance,omitempty"`
}

// SeekOverrides overrides SeekOptions.
type SeekOverrides struct {
	TargetOverrides
	SlowArrival   *bool    `json:"slowArrival,omitempty"`
	SlowingRadius *float64 `json:"slowingRadius,omitempty"`
}

// StrengthOverrides overrides StrengthOptions.
type StrengthOverrides struct {
	Strength *float64 `json:"strength,omitempty"`
}

// SeparationOverrides overrides SeparationOptions.
type SeparationOverrides struct {
	Strength          *float64 `json:"strength,omitempty"`
	DesiredSeparation *float64 `json:"desiredSeparation,omitempty"`
}

// FlockingOverrides overrides FlockingOptions.
type FlockingOverrides struct {
	BehaviorOverrides
	MaxDistance *float64             `json:"maxDistance,omitempty"`
	MinDistance *float64             `json:"minDistance,omitempty"`
	Separation  *SeparationOverrides `json:"separation,omitempty"`
	Alignment   *StrengthOverrides   `json:"alignment,omitempty"`
	Cohesion    *StrengthOverrides   `json:"cohesion,omitempty"`
	Flock       *Flock               `json:"-"`
}

// WanderOverrides overrides WanderOptions.
type WanderOverrides struct {
	BehaviorOverrides
	Distance *float64 `json:"distance,omitempty"`
	Radius   *float64 `json:"radius,omitempty"`
	Theta    *float64 `json:"theta,omitempty"`
	Change   *float64 `json:"change,omitempty"`
}

// Overrides is a partial configuration layered over DefaultOptions.
// A nil group, or a nil field inside a group, inherits the default.
type Overrides struct {
	Game        *GameOverrides     `json:"game,omitempty"`
	Forces      *ForceOverrides    `json:"forces,omitempty"`
	CheckBounds *BehaviorOverrides `json:"checkBounds,omitempty"`
	Flocking    *FlockingOverrides `json:"flocking,omitempty"`
	Seek        *SeekOverrides     `json:"seek,omitempty"`
	Flee        *TargetOverrides   `json:"flee,omitempty"`
	Pursue      *TargetOverrides   `json:"pursue,omitempty"`
	Evade       *TargetOverrides   `json:"evade,omitempty"`
	Wander      *WanderOverrides   `json:"wander,omitempty"`
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func (o *BehaviorOverrides) applyTo(b *Behavior, name string) error {
	if o == nil {
		return nil
	}
	set(&b.Enabled, o.Enabled)
	set(&b.Strength, o.Strength)
	if o.Priority != nil {
		n, err := o.Priority.Int()
		if err != nil {
			return fmt.Errorf("%s.priority: %w", name, err)
		}
		b.Priority = n
	}
	return nil
}

func (o *TargetOverrides) applyTo(t *TargetOptions, name string) error {
	if o == nil {
		return nil
	}
	if err := o.BehaviorOverrides.applyTo(&t.Behavior, name); err != nil {
		return err
	}
	if o.Target != nil {
		t.Target = o.Target
	}
	set(&t.ViewDistance, o.ViewDistance)
	return nil
}

// apply layers ov over o, one field group at a time.
func (o *Options) apply(ov Overrides) error {
	if g := ov.Game; g != nil {
		set(&o.Game.WrapWorldBounds, g.WrapWorldBounds)
		set(&o.Game.RotateToVelocity, g.RotateToVelocity)
		set(&o.Game.EdgeWidth, g.EdgeWidth)
		set(&o.Game.Debug, g.Debug)
	}
	if f := ov.Forces; f != nil {
		set(&o.Forces.MaxSpeed, f.MaxSpeed)
		set(&o.Forces.MaxForce, f.MaxForce)
	}
	if err := ov.CheckBounds.applyTo(&o.CheckBounds.Behavior, "checkBounds"); err != nil {
		return err
	}
	if f := ov.Flocking; f != nil {
		if err := f.BehaviorOverrides.applyTo(&o.Flocking.Behavior, "flocking"); err != nil {
			return err
		}
		set(&o.Flocking.MaxDistance, f.MaxDistance)
		set(&o.Flocking.MinDistance, f.MinDistance)
		if s := f.Separation; s != nil {
			set(&o.Flocking.Separation.Strength, s.Strength)
			set(&o.Flocking.Separation.DesiredSeparation, s.DesiredSeparation)
		}
		if a := f.Alignment; a != nil {
			set(&o.Flocking.Alignment.Strength, a.Strength)
		}
		if c := f.Cohesion; c != nil {
			set(&o.Flocking.Cohesion.Strength, c.Strength)
		}
		if f.Flock != nil {
			o.Flocking.Flock = f.Flock
		}
	}
	if s := ov.Seek; s != nil {
		if err := s.TargetOverrides.applyTo(&o.Seek.TargetOptions, "seek"); err != nil {
			return err
		}
		set(&o.Seek.SlowArrival, s.SlowArrival)
		set(&o.Seek.SlowingRadius, s.SlowingRadius)
	}
	if err := ov.Flee.applyTo(&o.Flee, "flee"); err != nil {
		return err
	}
	if err := ov.Pursue.applyTo(&o.Pursue, "pursue"); err != nil {
		return err
	}
	if err := ov.Evade.applyTo(&o.Evade, "evade"); err != nil {
		return err
	}
	if w := ov.Wander; w != nil {
		if err := w.BehaviorOverrides.applyTo(&o.Wander.Behavior, "wander"); err != nil {
			return err
		}
		set(&o.Wander.Distance, w.Distance)
		set(&o.Wander.Radius, w.Radius)
		set(&o.Wander.Theta, w.Theta)
		set(&o.Wander.Change, w.Change)
	}
	return nil
}

func pick[T any](base, top *T) *T {
	if top != nil {
		return top
	}
	return base
}

func (b BehaviorOverrides) merge(top BehaviorOverrides) BehaviorOverrides {
	return BehaviorOverrides{
		Enabled:  pick(b.Enabled, top.Enabled),
		Priority: pick(b.Priority, top.Priority),
		Strength: pick(b.Strength, top.Strength),
	}
}

func mergeTarget(base, top *TargetOverrides) *TargetOverrides {
	if base == nil || top == nil {
		return pick(base, top)
	}
	m := TargetOverrides{
		BehaviorOverrides: base.BehaviorOverrides.merge(top.BehaviorOverrides),
		Target:            base.Target,
		ViewDistance:      pick(base.ViewDistance, top.ViewDistance),
	}
	if top.Target != nil {
		m.Target = top.Target
	}
	return &m
}

// Merge returns o with every field set in top replacing the one in o.
// Hosts use it to keep a running set of overrides across reconfigurations.
func (o Overrides) Merge(top Overrides) Overrides {
	m := o
	if top.Game != nil {
		g := GameOverrides{}
		if o.Game != nil {
			g = *o.Game
		}
		g.WrapWorldBounds = pick(g.WrapWorldBounds, top.Game.WrapWorldBounds)
		g.RotateToVelocity = pick(g.RotateToVelocity, top.Game.RotateToVelocity)
		g.EdgeWidth = pick(g.EdgeWidth, top.Game.EdgeWidth)
		g.Debug = pick(g.Debug, top.Game.Debug)
		m.Game = &g
	}
	if top.Forces != nil {
		f := ForceOverrides{}
		if o.Forces != nil {
			f = *o.Forces
		}
		f.MaxSpeed = pick(f.MaxSpeed, top.Forces.MaxSpeed)
		f.MaxForce = pick(f.MaxForce, top.Forces.MaxForce)
		m.Forces = &f
	}
	if top.CheckBounds != nil {
		b := BehaviorOverrides{}
		if o.CheckBounds != nil {
			b = *o.CheckBounds
		}
		b = b.merge(*top.CheckBounds)
		m.CheckBounds = &b
	}
	if top.Flocking != nil {
		f := FlockingOverrides{}
		if o.Flocking != nil {
			f = *o.Flocking
		}
		t := top.Flocking
		f.BehaviorOverrides = f.BehaviorOverrides.merge(t.BehaviorOverrides)
		f.MaxDistance = pick(f.MaxDistance, t.MaxDistance)
		f.MinDistance = pick(f.MinDistance, t.MinDistance)
		if t.Separation != nil {
			s := SeparationOverrides{}
			if f.Separation != nil {
				s = *f.Separation
			}
			s.Strength = pick(s.Strength, t.Separation.Strength)
			s.DesiredSeparation = pick(s.DesiredSeparation, t.Separation.DesiredSeparation)
			f.Separation = &s
		}
		f.Alignment = pick(f.Alignment, t.Alignment)
		f.Cohesion = pick(f.Cohesion, t.Cohesion)
		f.Flock = pick(f.Flock, t.Flock)
		m.Flocking = &f
	}
	if top.Seek != nil {
		s := SeekOverrides{}
		if o.Seek != nil {
			s = *o.Seek
		}
		s.TargetOverrides = *mergeTarget(&s.TargetOverrides, &top.Seek.TargetOverrides)
		s.SlowArrival = pick(s.SlowArrival, top.Seek.SlowArrival)
		s.SlowingRadius = pick(s.SlowingRadius, top.Seek.SlowingRadius)
		m.Seek = &s
	}
	m.Flee = mergeTarget(o.Flee, top.Flee)
	m.Pursue = mergeTarget(o.Pursue, top.Pursue)
	m.Evade = mergeTarget(o.Evade, top.Evade)
	if top.Wander != nil {
		w := WanderOverrides{}
		if o.Wander != nil {
			w = *o.Wander
		}
		t := top.Wander
		w.BehaviorOverrides = w.BehaviorOverrides.merge(t.BehaviorOverrides)
		w.Distance = pick(w.Distance, t.Distance)
		w.Radius = pick(w.Radius, t.Radius)
		w.Theta = pick(w.Theta, t.Theta)
		w.Change = pick(w.Change, t.Change)
		m.Wander = &w
	}
	return m
}
