package steering

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidPriority is returned when a priority cannot be coerced to an integer.
	ErrInvalidPriority = errors.New("invalid behavior priority")
	// ErrInvalidOptions wraps every configuration rejected by SetConfiguration.
	ErrInvalidOptions = errors.New("invalid automaton options")
)

// GameOptions are the world related settings of an automaton.
type GameOptions struct {
	WrapWorldBounds  bool    `json:"wrapWorldBounds"`
	RotateToVelocity bool    `json:"rotateToVelocity"`
	EdgeWidth        float64 `json:"edgeWidth"`
	Debug            bool    `json:"debug"`
}

// ForceOptions bound the velocity and every single steering force.
type ForceOptions struct {
	MaxSpeed float64 `json:"maxSpeed"`
	MaxForce float64 `json:"maxForce"`
}

// Behavior is the part every descriptor shares.
type Behavior struct {
	Enabled  bool    `json:"enabled"`
	Priority int     `json:"priority"`
	Strength float64 `json:"strength"`
}

// BoundsOptions configures the boundary check.
type BoundsOptions struct {
	Behavior
}

// TargetOptions configures flee, pursue and evade.
type TargetOptions struct {
	Behavior
	Target       Target  `json:"-"`
	ViewDistance float64 `json:"viewDistance"`
}

// SeekOptions adds slow arrival to TargetOptions.
type SeekOptions struct {
	TargetOptions
	SlowArrival   bool    `json:"slowArrival"`
	SlowingRadius float64 `json:"slowingRadius"`
}

// StrengthOptions holds the gain of a flocking sub-behavior.
type StrengthOptions struct {
	Strength float64 `json:"strength"`
}

// SeparationOptions holds the separation gain and personal space radius.
type SeparationOptions struct {
	Strength          float64 `json:"strength"`
	DesiredSeparation float64 `json:"desiredSeparation"`
}

// FlockingOptions bundles separation, alignment and cohesion under one descriptor.
type FlockingOptions struct {
	Behavior
	MaxDistance float64           `json:"maxDistance"`
	MinDistance float64           `json:"minDistance"`
	Separation  SeparationOptions `json:"separation"`
	Alignment   StrengthOptions   `json:"alignment"`
	Cohesion    StrengthOptions   `json:"cohesion"`
	Flock       *Flock            `json:"-"`
}

// WanderOptions configures the wander circle. Distance and Radius are
// multiples of the automaton radius.
type WanderOptions struct {
	Behavior
	Distance float64 `json:"distance"`
	Radius   float64 `json:"radius"`
	Theta    float64 `json:"theta"`
	Change   float64 `json:"change"`
}

// Options is the complete, resolved configuration of one automaton.
type Options struct {
	Game        GameOptions     `json:"game"`
	Forces      ForceOptions    `json:"forces"`
	CheckBounds BoundsOptions   `json:"checkBounds"`
	Flocking    FlockingOptions `json:"flocking"`
	Seek        SeekOptions     `json:"seek"`
	Flee        TargetOptions   `json:"flee"`
	Pursue      TargetOptions   `json:"pursue"`
	Evade       TargetOptions   `json:"evade"`
	Wander      WanderOptions   `json:"wander"`
}

// DefaultOptions returns a fresh copy of the documented defaults.
// Only the boundary check is enabled.
func DefaultOptions() Options {
	unbounded := math.MaxFloat64
	return Options{
		Game: GameOptions{
			WrapWorldBounds:  true,
			RotateToVelocity: true,
			EdgeWidth:        25,
			Debug:            false,
		},
		Forces: ForceOptions{
			MaxSpeed: 100,
			MaxForce: 100,
		},
		CheckBounds: BoundsOptions{
			Behavior: Behavior{Enabled: true, Priority: 0, Strength: 1},
		},
		Flocking: FlockingOptions{
			Behavior:    Behavior{Enabled: false, Priority: 1, Strength: 1},
			MaxDistance: 200,
			MinDistance: 50,
			Separation:  SeparationOptions{Strength: 1, DesiredSeparation: 50},
			Alignment:   StrengthOptions{Strength: 1},
			Cohesion:    StrengthOptions{Strength: 1},
		},
		Seek: SeekOptions{
			TargetOptions: TargetOptions{
				Behavior:     Behavior{Enabled: false, Priority: 2, Strength: 1},
				ViewDistance: unbounded,
			},
			SlowArrival:   false,
			SlowingRadius: 10,
		},
		Flee: TargetOptions{
			Behavior:     Behavior{Enabled: false, Priority: 1, Strength: 1},
			ViewDistance: unbounded,
		},
		Pursue: TargetOptions{
			Behavior:     Behavior{Enabled: false, Priority: 1, Strength: 1},
			ViewDistance: unbounded,
		},
		Evade: TargetOptions{
			Behavior:     Behavior{Enabled: false, Priority: 1, Strength: 1},
			ViewDistance: unbounded,
		},
		Wander: WanderOptions{
			Behavior: Behavior{Enabled: false, Priority: 6, Strength: 1},
			Distance: 3.5,
			Radius:   3.0,
			Theta:    0,
			Change:   0.3,
		},
	}
}

// behavior returns the shared descriptor fields for kind.
func (o *Options) behavior(kind BehaviorKind) *Behavior {
	switch kind {
	case BehaviorCheckBounds:
		return &o.CheckBounds.Behavior
	case BehaviorFlocking:
		return &o.Flocking.Behavior
	case BehaviorSeek:
		return &o.Seek.Behavior
	case BehaviorFlee:
		return &o.Flee.Behavior
	case BehaviorPursue:
		return &o.Pursue.Behavior
	case BehaviorEvade:
		return &o.Evade.Behavior
	case BehaviorWander:
		return &o.Wander.Behavior
	}
	return nil
}

// validate rejects values that would make the force math meaningless.
func (o *Options) validate() error {
	var errs []error
	check := func(name string, v float64) {
		if math.IsNaN(v) || v < 0 {
			errs = append(errs, fmt.Errorf("%s must be a non-negative number, got %v", name, v))
		}
	}
	check("forces.maxSpeed", o.Forces.MaxSpeed)
	check("forces.maxForce", o.Forces.MaxForce)
	check("game.edgeWidth", o.Game.EdgeWidth)
	check("seek.slowingRadius", o.Seek.SlowingRadius)
	check("flocking.separation.desiredSeparation", o.Flocking.Separation.DesiredSeparation)
	for _, kind := range behaviorKinds {
		check(kind.String()+".strength", o.behavior(kind).Strength)
	}
	return errors.Join(errs...)
}
