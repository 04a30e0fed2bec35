package supervisor

// Apply routes one action against the registry and returns the successor
// registry. It is pure and total: every action is accepted, and an action
// that changes nothing returns the registry unchanged by reference.
// Events addressed to an unregistered identity are dropped silently.
func Apply(reg *Registry, act Action) *Registry {
	switch a := act.(type) {
	case Batch:
		for _, member := range a.Actions {
			reg = Apply(reg, member)
		}
		return reg

	case Register:
		if a.Station == nil {
			return reg
		}
		return reg.with(a.Station)

	case Deliver:
		if len(a.Targets) == 0 {
			return reg
		}
		if len(a.Targets) > 1 {
			expanded := make([]Action, 0, len(a.Targets))
			for _, id := range a.Targets {
				expanded = append(expanded, Deliver{Event: a.Event, Targets: []string{id}})
			}
			return Apply(reg, Batch{Actions: expanded})
		}
		st, ok := reg.Station(a.Targets[0])
		if !ok {
			return reg
		}
		next := applyOne(st, a.Event)
		if next == st {
			return reg
		}
		return reg.with(next)

	case Attach:
		st, ok := reg.Station(a.ID)
		if !ok || st.Live == a.Interpreter {
			return reg
		}
		return reg.with(st.withLive(a.Interpreter))

	case Detach:
		st, ok := reg.Station(a.ID)
		if !ok || st.Live == nil {
			return reg
		}
		return reg.with(st.withLive(nil))

	case Drain:
		st, ok := reg.Station(a.ID)
		if !ok || st.Live == nil || len(st.Queue) == 0 {
			return reg
		}
		drained := st.clone()
		queued := drained.Queue
		drained.Queue = nil
		for _, ev := range queued {
			if snap, changed := drained.Live.Send(ev); changed {
				drained.Last = snap
			}
		}
		return reg.with(drained)
	}
	return reg
}

// applyOne is the per-station reducer: deliver immediately when a live
// interpreter exists, otherwise queue in arrival order. An unchanged
// delivery returns the station unmodified by reference.
func applyOne(st *Station, ev Event) *Station {
	if st.Live == nil {
		return st.withQueued(ev)
	}
	snap, changed := st.Live.Send(ev)
	if !changed {
		return st
	}
	return st.withLast(snap)
}
