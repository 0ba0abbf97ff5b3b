package steering

// AllInRange returns every target strictly closer than viewDistance,
// in the order of the collection. Nested groups are flattened.
func (a *Automaton) AllInRange(targets GroupTarget, viewDistance float64) []Body {
	var found []Body
	for _, t := range targets {
		switch t := expand(t).(type) {
		case nil:
		case GroupTarget:
			found = append(found, a.AllInRange(t, viewDistance)...)
		default:
			b, ok := resolveSingle(t)
			if ok && a.pos.DistanceTo(b.Pos) < viewDistance {
				found = append(found, b)
			}
		}
	}
	return found
}

// ClosestInRange returns the nearest target strictly closer than viewDistance.
// Ties go to the first one scanned. Nested groups are searched in place.
func (a *Automaton) ClosestInRange(targets GroupTarget, viewDistance float64) (Body, bool) {
	var (
		closest Body
		best    = viewDistance
		found   bool
	)
	for _, t := range targets {
		var (
			b  Body
			ok bool
		)
		switch t := expand(t).(type) {
		case nil:
			continue
		case GroupTarget:
			b, ok = a.ClosestInRange(t, viewDistance)
		default:
			b, ok = resolveSingle(t)
		}
		if !ok {
			continue
		}
		if d := a.pos.DistanceTo(b.Pos); d < best {
			best = d
			closest = b
			found = true
		}
	}
	return closest, found
}
