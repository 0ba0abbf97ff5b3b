// Package steering computes per-frame steering forces for autonomous 2D agents:
// boundary containment, seek, flee, pursue, evade, wander and flocking.
//
// An Automaton owns one configuration, built by layering Overrides over
// DefaultOptions, and a priority-ordered list of behaviors derived from it.
// The host calls Update once per tick and integrates positions with Move.
// Nothing here blocks or spawns goroutines; an Automaton is not safe for
// concurrent use.
package steering

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-automata/pkg/geometry"
	"go.uber.org/zap"
)

// World is the size of the area automata live in.
type World struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Edges is the rectangle the boundary check works against.
type Edges struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// computeEdges sits the edges outside the world by radius when wrapping, so
// an automaton only wraps once it is fully off screen, and inside the world
// by edgeWidth otherwise.
func computeEdges(game GameOptions, world World, radius float64) Edges {
	if game.WrapWorldBounds {
		return Edges{
			Left:   -radius,
			Right:  world.Width + radius,
			Top:    -radius,
			Bottom: world.Height + radius,
		}
	}
	return Edges{
		Left:   game.EdgeWidth,
		Right:  world.Width - game.EdgeWidth,
		Top:    game.EdgeWidth,
		Bottom: world.Height - game.EdgeWidth,
	}
}

// Automaton is one agent under steering control.
type Automaton struct {
	id       string
	pos      geometry.Vector2D
	vel      geometry.Vector2D
	rotation float64
	radius   float64

	world    World
	opts     Options
	priority []entry
	edges    Edges
	theta    float64

	rng     *rand.Rand
	logger  *zap.Logger
	reports []Report
}

// Option customises an Automaton at construction.
type Option func(*Automaton)

// WithID sets the automaton id. The default is a random UUID.
func WithID(id string) Option {
	return func(a *Automaton) { a.id = id }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(a *Automaton) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithRand sets the random source used by wander.
func WithRand(r *rand.Rand) Option {
	return func(a *Automaton) {
		if r != nil {
			a.rng = r
		}
	}
}

// WithPosition sets the starting position.
func WithPosition(p geometry.Vector2D) Option {
	return func(a *Automaton) { a.pos = p }
}

// WithVelocity sets the starting velocity.
func WithVelocity(v geometry.Vector2D) Option {
	return func(a *Automaton) { a.vel = v }
}

// WithSprite derives the bounding radius from a visual extent, like SetSprite.
func WithSprite(width, height float64) Option {
	return func(a *Automaton) { a.radius = math.Hypot(width, height) / 2 }
}

// New creates an automaton in world configured with overrides.
func New(world World, overrides Overrides, opts ...Option) (*Automaton, error) {
	a := &Automaton{
		id:     uuid.NewString(),
		world:  world,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if err := a.SetConfiguration(overrides); err != nil {
		return nil, err
	}
	return a, nil
}

// SetConfiguration layers overrides over DefaultOptions, rebuilds the
// priority list and the edges, and swaps them in together. On error the
// previous configuration stays in place.
func (a *Automaton) SetConfiguration(overrides Overrides) error {
	opts := DefaultOptions()
	if err := opts.apply(overrides); err != nil {
		a.logger.Warn("configuration rejected", zap.String("automaton", a.id), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	if err := opts.validate(); err != nil {
		a.logger.Warn("configuration rejected", zap.String("automaton", a.id), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	priority := buildPriorityList(&opts)
	edges := computeEdges(opts.Game, a.world, a.radius)

	a.opts = opts
	a.priority = priority
	a.edges = edges
	a.theta = opts.Wander.Theta
	a.logger.Debug("configuration applied",
		zap.String("automaton", a.id),
		zap.Stringers("priority", a.PriorityList()),
		zap.Bool("wrap", opts.Game.WrapWorldBounds))
	return nil
}

// SetSprite derives the bounding radius from the visual extent and
// recomputes the edges that depend on it.
func (a *Automaton) SetSprite(width, height float64) {
	a.radius = math.Hypot(width, height) / 2
	a.edges = computeEdges(a.opts.Game, a.world, a.radius)
}

// SetWorld changes the world size, e.g. when the window is resized.
func (a *Automaton) SetWorld(world World) {
	a.world = world
	a.edges = computeEdges(a.opts.Game, a.world, a.radius)
}

// Update runs every enabled behavior in priority order, applies their
// forces, turns the automaton to face its velocity when configured, and
// finally clamps the velocity to the maximum speed.
func (a *Automaton) Update() {
	a.reports = a.reports[:0]

	for _, e := range a.priority {
		b := a.opts.behavior(e.kind)
		if b == nil || !b.Enabled {
			continue
		}
		force := registry[e.kind](a)
		if force.LenSqr() > 0 {
			a.ApplyForce(force, b.Strength)
		}
	}

	if a.opts.Game.RotateToVelocity && !a.vel.IsZero() {
		a.rotation = a.vel.Angle()
	}
	a.vel = a.vel.Limit(a.opts.Forces.MaxSpeed)
}

// ApplyForce clamps force to maxForce*strength, adds it to the velocity and
// returns the force actually applied.
func (a *Automaton) ApplyForce(force geometry.Vector2D, strength float64) geometry.Vector2D {
	force = force.Limit(a.opts.Forces.MaxForce * strength)
	a.vel = a.vel.Add(force)
	return force
}

// Move integrates the velocity over dt.
func (a *Automaton) Move(dt float64) {
	a.pos = a.pos.Add(a.vel.Mul(dt))
}

// ID returns the automaton id.
func (a *Automaton) ID() string { return a.id }

// Position implements Mover.
func (a *Automaton) Position() geometry.Vector2D { return a.pos }

// Velocity implements Mover.
func (a *Automaton) Velocity() geometry.Vector2D { return a.vel }

// SetPosition moves the automaton without touching its velocity.
func (a *Automaton) SetPosition(p geometry.Vector2D) { a.pos = p }

// SetVelocity replaces the velocity.
func (a *Automaton) SetVelocity(v geometry.Vector2D) { a.vel = v }

// Rotation is the facing angle in radians.
func (a *Automaton) Rotation() float64 { return a.rotation }

// Radius is the bounding radius derived from the sprite.
func (a *Automaton) Radius() float64 { return a.radius }

// Edges returns the current boundary rectangle.
func (a *Automaton) Edges() Edges { return a.edges }

// Options returns a copy of the resolved configuration.
func (a *Automaton) Options() Options { return a.opts }

// PriorityList returns the behaviors in the order Update runs them.
func (a *Automaton) PriorityList() []BehaviorKind {
	kinds := make([]BehaviorKind, len(a.priority))
	for i, e := range a.priority {
		kinds[i] = e.kind
	}
	return kinds
}

// Reports returns the debug reports of the last Update. They are only
// collected when game.debug is on.
func (a *Automaton) Reports() []Report {
	return slices.Clone(a.reports)
}
