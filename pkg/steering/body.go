package steering

import (
	"slices"

	"github.com/lao-tseu-is-alive/go-automata/pkg/geometry"
)

// Mover is anything the engine can perceive: it has a position and a velocity.
// *Automaton is a Mover.
type Mover interface {
	Position() geometry.Vector2D
	Velocity() geometry.Vector2D
}

// Body is a frozen copy of a Mover.
type Body struct {
	Pos geometry.Vector2D
	Vel geometry.Vector2D
}

// BodyOf copies the current state of m.
func BodyOf(m Mover) Body {
	return Body{Pos: m.Position(), Vel: m.Velocity()}
}

// Position implements Mover.
func (b Body) Position() geometry.Vector2D { return b.Pos }

// Velocity implements Mover.
func (b Body) Velocity() geometry.Vector2D { return b.Vel }

// Flock is the peer collection a flocking automaton looks at.
// Many automata share one *Flock; they only ever read it during Update.
type Flock struct {
	members []Mover
}

// NewFlock creates a flock holding members, in order.
func NewFlock(members ...Mover) *Flock {
	return &Flock{members: members}
}

// Add appends m to the flock.
func (f *Flock) Add(m Mover) {
	f.members = append(f.members, m)
}

// Remove drops the first occurrence of m and reports whether it was found.
// Slices returned by Members before the call keep their content.
func (f *Flock) Remove(m Mover) bool {
	for i, other := range f.members {
		if other == m {
			f.members = slices.Delete(slices.Clone(f.members), i, i+1)
			return true
		}
	}
	return false
}

// Len is the number of members. A nil flock is empty.
func (f *Flock) Len() int {
	if f == nil {
		return 0
	}
	return len(f.members)
}

// Members returns the members in insertion order. Callers must not modify it.
func (f *Flock) Members() []Mover {
	if f == nil {
		return nil
	}
	return f.members
}

// Snapshot freezes every member into a Body. A host updating automata
// concurrently hands the snapshot to them instead of the live flock.
func (f *Flock) Snapshot() *Flock {
	if f == nil {
		return nil
	}
	frozen := make([]Mover, len(f.members))
	for i, m := range f.members {
		frozen[i] = BodyOf(m)
	}
	return &Flock{members: frozen}
}

// Target lets a whole flock be used as a group target, e.g. for evade.
func (f *Flock) Target() GroupTarget {
	return Group(f.Members()...)
}
