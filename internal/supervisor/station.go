package supervisor

import "slices"

// Station holds everything the registry knows about one machine: its
// definition, the live interpreter while mounted, events queued while no
// interpreter is attached, and the last-known snapshot.
type Station struct {
	ID         string
	Definition Definition
	Live       Interpreter
	Queue      []Event
	Last       Snapshot
}

// NewStation builds an unmounted station with an empty queue.
func NewStation(id string, def Definition, initial Snapshot) *Station {
	return &Station{ID: id, Definition: def, Last: initial}
}

func (s *Station) clone() *Station {
	c := *s
	c.Queue = slices.Clone(s.Queue)
	return &c
}

func (s *Station) withLast(snap Snapshot) *Station {
	c := s.clone()
	c.Last = snap
	return c
}

func (s *Station) withQueued(ev Event) *Station {
	c := s.clone()
	c.Queue = append(c.Queue, ev)
	return c
}

func (s *Station) withLive(in Interpreter) *Station {
	c := s.clone()
	c.Live = in
	return c
}
