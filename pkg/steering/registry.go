package steering

import (
	"cmp"
	"slices"

	"github.com/lao-tseu-is-alive/go-automata/pkg/geometry"
)

// BehaviorKind names one steering descriptor.
type BehaviorKind int

const (
	BehaviorCheckBounds BehaviorKind = iota
	BehaviorFlocking
	BehaviorSeek
	BehaviorFlee
	BehaviorPursue
	BehaviorEvade
	BehaviorWander
)

// behaviorKinds is the declaration order, used to break priority ties.
var behaviorKinds = []BehaviorKind{
	BehaviorCheckBounds,
	BehaviorFlocking,
	BehaviorSeek,
	BehaviorFlee,
	BehaviorPursue,
	BehaviorEvade,
	BehaviorWander,
}

func (k BehaviorKind) String() string {
	switch k {
	case BehaviorCheckBounds:
		return "checkBounds"
	case BehaviorFlocking:
		return "flocking"
	case BehaviorSeek:
		return "seek"
	case BehaviorFlee:
		return "flee"
	case BehaviorPursue:
		return "pursue"
	case BehaviorEvade:
		return "evade"
	case BehaviorWander:
		return "wander"
	}
	return "unknown"
}

// behaviorFunc computes the force of one descriptor from the automaton's
// current options. Flocking applies its three forces itself and returns zero.
type behaviorFunc func(a *Automaton) geometry.Vector2D

var registry = map[BehaviorKind]behaviorFunc{
	BehaviorCheckBounds: (*Automaton).CheckBounds,
	BehaviorFlocking:    (*Automaton).flock,
	BehaviorSeek: func(a *Automaton) geometry.Vector2D {
		return a.Seek(a.opts.Seek.Target, a.opts.Seek.ViewDistance)
	},
	BehaviorFlee: func(a *Automaton) geometry.Vector2D {
		return a.Flee(a.opts.Flee.Target, a.opts.Flee.ViewDistance)
	},
	BehaviorPursue: func(a *Automaton) geometry.Vector2D {
		return a.Pursue(a.opts.Pursue.Target, a.opts.Pursue.ViewDistance)
	},
	BehaviorEvade: func(a *Automaton) geometry.Vector2D {
		return a.Evade(a.opts.Evade.Target, a.opts.Evade.ViewDistance)
	},
	BehaviorWander: (*Automaton).Wander,
}

// entry is one slot of a priority list.
type entry struct {
	kind     BehaviorKind
	priority int
}

// buildPriorityList orders every registered descriptor by ascending priority.
// The sort is stable, so equal priorities keep declaration order.
func buildPriorityList(opts *Options) []entry {
	list := make([]entry, 0, len(behaviorKinds))
	for _, kind := range behaviorKinds {
		if _, ok := registry[kind]; !ok {
			continue
		}
		list = append(list, entry{kind: kind, priority: opts.behavior(kind).Priority})
	}
	sortEntries(list)
	return list
}

func sortEntries(list []entry) {
	slices.SortStableFunc(list, func(a, b entry) int {
		return cmp.Compare(a.priority, b.priority)
	})
}
