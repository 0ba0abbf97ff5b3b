package simulation

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-automata/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-automata/pkg/steering"
	"go.uber.org/zap"
)

// Group is a set of automata sharing one configuration.
type Group string

const (
	GroupBoids     Group = "boids"
	GroupPredators Group = "predators"
)

// ErrUnknownGroup is returned by Reconfigure for a group the world does not have.
var ErrUnknownGroup = errors.New("unknown group")

// ParseGroup accepts a group name as sent by a client.
func ParseGroup(s string) (Group, error) {
	switch g := Group(s); g {
	case GroupBoids, GroupPredators:
		return g, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGroup, s)
}

// AgentState is the render view of one automaton.
type AgentState struct {
	ID       string            `json:"id"`
	Group    Group             `json:"group"`
	Position geometry.Vector2D `json:"position"`
	Velocity geometry.Vector2D `json:"velocity"`
	Rotation float64           `json:"rotation"`
	Radius   float64           `json:"radius"`
	Edges    steering.Edges    `json:"edges"`
	Reports  []steering.Report `json:"reports,omitempty"`
}

// Snapshot is everything the renderer needs for one frame.
type Snapshot struct {
	Tick   uint64       `json:"tick"`
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Agents []AgentState `json:"agents"`
}

// Stats summarises the population.
type Stats struct {
	Tick      uint64  `json:"tick"`
	Boids     int     `json:"boids"`
	Predators int     `json:"predators"`
	MeanSpeed float64 `json:"meanSpeed"`
}

type member struct {
	group Group
	a     *steering.Automaton
}

// World owns every automaton and steps them one after the other.
// It is not safe for concurrent use; WorldActor serialises access to it.
type World struct {
	cfg    *Config
	logger *zap.Logger

	members   []member
	boids     *steering.Flock
	predators *steering.Flock

	// overrides accumulated through Reconfigure, per group
	running map[Group]steering.Overrides
	seed    uint64
	tick    uint64
}

// NewWorld builds the world described by cfg and populates it.
func NewWorld(cfg *Config, logger *zap.Logger) (*World, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &World{
		cfg:     cfg,
		logger:  logger,
		running: make(map[Group]steering.Overrides),
	}
	seed := uint64(cfg.Seed)
	if seed == 0 {
		seed = rand.Uint64()
	}
	if err := w.populate(seed); err != nil {
		return nil, err
	}
	return w, nil
}

// baseOverrides is the built-in setup of a group: boids flock together and
// evade predators, predators pursue the closest boid. Targets are dynamic so
// they follow the current population.
func (w *World) baseOverrides(g Group) steering.Overrides {
	wander := &steering.WanderOverrides{
		BehaviorOverrides: steering.BehaviorOverrides{Enabled: steering.Ptr(true), Strength: steering.Ptr(0.2)},
	}
	debug := &steering.GameOverrides{Debug: steering.Ptr(w.cfg.Debug)}

	switch g {
	case GroupBoids:
		return steering.Overrides{
			Game:   debug,
			Forces: &steering.ForceOverrides{MaxSpeed: steering.Ptr(120.0), MaxForce: steering.Ptr(6.0)},
			Flocking: &steering.FlockingOverrides{
				BehaviorOverrides: steering.BehaviorOverrides{Enabled: steering.Ptr(true)},
				MaxDistance:       steering.Ptr(80.0),
				MinDistance:       steering.Ptr(0.0),
				Separation: &steering.SeparationOverrides{
					Strength:          steering.Ptr(1.5),
					DesiredSeparation: steering.Ptr(25.0),
				},
				Flock: w.boids,
			},
			Evade: &steering.TargetOverrides{
				BehaviorOverrides: steering.BehaviorOverrides{Enabled: steering.Ptr(true), Strength: steering.Ptr(2.0)},
				Target: steering.DynamicTarget(func() steering.Target {
					return w.predators.Target()
				}),
				ViewDistance: steering.Ptr(120.0),
			},
			Wander: wander,
		}
	case GroupPredators:
		return steering.Overrides{
			Game:   debug,
			Forces: &steering.ForceOverrides{MaxSpeed: steering.Ptr(140.0), MaxForce: steering.Ptr(5.0)},
			Pursue: &steering.TargetOverrides{
				BehaviorOverrides: steering.BehaviorOverrides{Enabled: steering.Ptr(true)},
				Target: steering.DynamicTarget(func() steering.Target {
					return w.boids.Target()
				}),
				ViewDistance: steering.Ptr(250.0),
			},
			Wander: wander,
		}
	}
	return steering.Overrides{}
}

func (w *World) cfgOverrides(g Group) steering.Overrides {
	if g == GroupPredators {
		return w.cfg.Predator
	}
	return w.cfg.Boid
}

func (w *World) configured(g Group, running steering.Overrides) steering.Overrides {
	return w.baseOverrides(g).Merge(w.cfgOverrides(g)).Merge(running)
}

func (w *World) bounds() steering.World {
	return steering.World{Width: w.cfg.WorldWidth, Height: w.cfg.WorldHeight}
}

// populate replaces every automaton with a fresh population drawn from seed.
func (w *World) populate(seed uint64) error {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	world := w.bounds()

	boids := steering.NewFlock()
	predators := steering.NewFlock()
	prevBoids, prevPredators := w.boids, w.predators
	w.boids, w.predators = boids, predators

	var members []member
	spawn := func(g Group, name string, count int, flock *steering.Flock) error {
		ov := w.configured(g, w.running[g])
		for i := range count {
			speed := 20 + rng.Float64()*40
			a, err := steering.New(world, ov,
				steering.WithID(fmt.Sprintf("%s-%03d", name, i)),
				steering.WithLogger(w.logger),
				steering.WithRand(rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64()))),
				steering.WithSprite(w.cfg.SpriteSize, w.cfg.SpriteSize),
				steering.WithPosition(geometry.NewVector(rng.Float64()*world.Width, rng.Float64()*world.Height)),
				steering.WithVelocity(geometry.NewVectorPolar(speed, rng.Float64()*2*math.Pi)),
			)
			if err != nil {
				return fmt.Errorf("spawning %s: %w", g, err)
			}
			flock.Add(a)
			members = append(members, member{group: g, a: a})
		}
		return nil
	}
	err := spawn(GroupBoids, "boid", w.cfg.Boids, boids)
	if err == nil {
		err = spawn(GroupPredators, "predator", w.cfg.Predators, predators)
	}
	if err != nil {
		w.boids, w.predators = prevBoids, prevPredators
		return err
	}

	w.members = members
	w.seed = seed
	w.tick = 0
	w.logger.Info("world populated",
		zap.Uint64("seed", seed),
		zap.Int("boids", boids.Len()),
		zap.Int("predators", predators.Len()))
	return nil
}

// Step updates every automaton in order, then moves them all by dt seconds.
func (w *World) Step(dt float64) *Snapshot {
	for _, m := range w.members {
		m.a.Update()
	}
	for _, m := range w.members {
		m.a.Move(dt)
	}
	w.tick++
	return w.Snapshot()
}

// Reconfigure layers overrides over the running configuration of group.
// A rejected configuration leaves every automaton of the group untouched.
func (w *World) Reconfigure(g Group, overrides steering.Overrides) error {
	if _, err := ParseGroup(string(g)); err != nil {
		return err
	}
	running := w.running[g].Merge(overrides)
	full := w.configured(g, running)

	// validate once, so an empty group still rejects a bad configuration
	if _, err := steering.New(w.bounds(), full); err != nil {
		w.logger.Warn("reconfiguration rejected", zap.String("group", string(g)), zap.Error(err))
		return fmt.Errorf("reconfiguring %s: %w", g, err)
	}
	for _, m := range w.members {
		if m.group != g {
			continue
		}
		if err := m.a.SetConfiguration(full); err != nil {
			return fmt.Errorf("reconfiguring %s: %w", g, err)
		}
	}
	w.running[g] = running
	w.logger.Info("group reconfigured", zap.String("group", string(g)))
	return nil
}

// Respawn rebuilds the population from seed, keeping any reconfiguration.
func (w *World) Respawn(seed int64) error {
	s := uint64(seed)
	if s == 0 {
		s = rand.Uint64()
	}
	return w.populate(s)
}

// Snapshot captures the current state of every automaton.
func (w *World) Snapshot() *Snapshot {
	snap := &Snapshot{
		Tick:   w.tick,
		Width:  w.cfg.WorldWidth,
		Height: w.cfg.WorldHeight,
		Agents: make([]AgentState, 0, len(w.members)),
	}
	for _, m := range w.members {
		snap.Agents = append(snap.Agents, AgentState{
			ID:       m.a.ID(),
			Group:    m.group,
			Position: m.a.Position(),
			Velocity: m.a.Velocity(),
			Rotation: m.a.Rotation(),
			Radius:   m.a.Radius(),
			Edges:    m.a.Edges(),
			Reports:  m.a.Reports(),
		})
	}
	return snap
}

// Stats counts the population and its mean speed.
func (w *World) Stats() Stats {
	s := Stats{Tick: w.tick, Boids: w.boids.Len(), Predators: w.predators.Len()}
	if len(w.members) == 0 {
		return s
	}
	var total float64
	for _, m := range w.members {
		total += m.a.Velocity().Len()
	}
	s.MeanSpeed = total / float64(len(w.members))
	return s
}

// GroupOptions resolves the configuration the automata of g currently run with.
func (w *World) GroupOptions(g Group) (steering.Options, error) {
	if _, err := ParseGroup(string(g)); err != nil {
		return steering.Options{}, err
	}
	a, err := steering.New(w.bounds(), w.configured(g, w.running[g]))
	if err != nil {
		return steering.Options{}, err
	}
	return a.Options(), nil
}

// Len is the number of automata.
func (w *World) Len() int { return len(w.members) }

// Seed is the seed of the current population.
func (w *World) Seed() uint64 { return w.seed }

// Automaton returns the automaton with id, if any.
func (w *World) Automaton(id string) (*steering.Automaton, bool) {
	for _, m := range w.members {
		if m.a.ID() == id {
			return m.a, true
		}
	}
	return nil, false
}
