package steering

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-automata/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClosestInRange(t *testing.T) {
	a := newAutomaton(t, Overrides{})

	t.Run("ties go to the first scanned", func(t *testing.T) {
		b, ok := a.ClosestInRange(GroupTarget{Point(10, 0), Point(0, 10), Point(-10, 0)}, 100)
		require.True(t, ok)
		assert.Equal(t, geometry.NewVector(10, 0), b.Pos)
	})

	t.Run("nested groups are searched", func(t *testing.T) {
		b, ok := a.ClosestInRange(GroupTarget{Point(50, 0), GroupTarget{Point(30, 0), Point(5, 0)}}, 100)
		require.True(t, ok)
		assert.Equal(t, geometry.NewVector(5, 0), b.Pos)
	})

	t.Run("range is strict", func(t *testing.T) {
		_, ok := a.ClosestInRange(GroupTarget{Point(20, 0)}, 20)
		assert.False(t, ok)
	})

	t.Run("empty group", func(t *testing.T) {
		_, ok := a.ClosestInRange(nil, 100)
		assert.False(t, ok)
	})
}

func TestAllInRange(t *testing.T) {
	a := newAutomaton(t, Overrides{})
	moving := Body{Pos: geometry.NewVector(0, -15), Vel: geometry.NewVector(1, 1)}

	got := a.AllInRange(GroupTarget{
		Point(10, 0),
		Point(30, 0),
		Point(20, 0),
		GroupTarget{Point(0, 5), Agent(moving)},
		DynamicTarget(func() Target { return Point(-1, 0) }),
	}, 20)

	assert.Equal(t, []Body{
		{Pos: geometry.NewVector(10, 0)},
		{Pos: geometry.NewVector(0, 5)},
		moving,
		{Pos: geometry.NewVector(-1, 0)},
	}, got)
}

func TestFlock(t *testing.T) {
	var nilFlock *Flock
	assert.Equal(t, 0, nilFlock.Len())
	assert.Nil(t, nilFlock.Members())
	assert.Nil(t, nilFlock.Snapshot())

	a := newAutomaton(t, Overrides{})
	b := newAutomaton(t, Overrides{}, WithPosition(geometry.NewVector(10, 0)))
	f := NewFlock(a)
	f.Add(b)
	assert.Equal(t, 2, f.Len())

	snap := f.Snapshot()
	b.SetPosition(geometry.NewVector(99, 0))
	assert.Equal(t, geometry.NewVector(10, 0), snap.Members()[1].Position())

	before := f.Members()
	assert.True(t, f.Remove(a))
	assert.False(t, f.Remove(a))
	assert.Equal(t, []Mover{b}, f.Members())
	assert.Len(t, f.Target(), 1)
	// slices handed out earlier are left alone
	assert.Equal(t, []Mover{a, b}, before)
}

func TestSeparate(t *testing.T) {
	a := newAutomaton(t, Overrides{})
	flock := NewFlock(a, Body{Pos: geometry.NewVector(10, 0)})

	assertVec(t, geometry.NewVector(-1, 0), a.Separate(flock))

	far := NewFlock(a, Body{Pos: geometry.NewVector(60, 0)})
	assertVec(t, geometry.Zero, a.Separate(far))
}

func TestAlign(t *testing.T) {
	a := newAutomaton(t, Overrides{})

	flock := NewFlock(a, Body{Pos: geometry.NewVector(60, 0), Vel: geometry.NewVector(0, 5)})
	assertVec(t, geometry.NewVector(0, 1), a.Align(flock))

	// closer than minDistance
	tooClose := NewFlock(a, Body{Pos: geometry.NewVector(10, 0), Vel: geometry.NewVector(0, 5)})
	assertVec(t, geometry.Zero, a.Align(tooClose))
}

func TestAlign_ExcludesSelf(t *testing.T) {
	a := newAutomaton(t, Overrides{Flocking: &FlockingOverrides{MinDistance: Ptr(0.0)}},
		WithVelocity(geometry.NewVector(10, 0)))

	// only the mate's velocity (0, 5) counts: desired (0, 100) minus own velocity
	flock := NewFlock(a, Body{Pos: geometry.NewVector(60, 0), Vel: geometry.NewVector(0, 5)})
	assertVec(t, geometry.NewVector(-10, 100).Normalize(), a.Align(flock))

	alone := NewFlock(a)
	assertVec(t, geometry.Zero, a.Align(alone))
}

func TestCohesion(t *testing.T) {
	a := newAutomaton(t, Overrides{Flocking: &FlockingOverrides{Cohesion: &StrengthOverrides{Strength: Ptr(2.0)}}})

	flock := NewFlock(a, Body{Pos: geometry.NewVector(10, 0)})
	assertVec(t, geometry.NewVector(2, 0), a.Cohesion(flock))

	alone := NewFlock(a)
	assertVec(t, geometry.Zero, a.Cohesion(alone))
}

func TestUpdate_Flocking(t *testing.T) {
	flock := NewFlock()
	a := newAutomaton(t, Overrides{Flocking: &FlockingOverrides{
		BehaviorOverrides: BehaviorOverrides{Enabled: Ptr(true)},
		Flock:             flock,
	}}, WithPosition(geometry.NewVector(400, 300)))
	flock.Add(a)
	flock.Add(Body{Pos: geometry.NewVector(410, 300)})

	a.Update()
	// separation (-1, 0) then cohesion (1, 0) cancel out
	assertVec(t, geometry.Zero, a.Velocity())
}

func BenchmarkClosestInRange(b *testing.B) {
	a, err := New(World{Width: 1000, Height: 800}, Overrides{}, WithID("bench"))
	require.NoError(b, err)
	targets := make(GroupTarget, 0, 500)
	for i := range 500 {
		targets = append(targets, Point(float64(i%50)*20, float64(i/50)*80))
	}
	for b.Loop() {
		a.ClosestInRange(targets, 200)
	}
}
