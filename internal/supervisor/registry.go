package supervisor

import (
	"maps"
	"slices"
)

// Registry maps machine identity to station. Updates are copy-on-write:
// Apply returns a new registry when something changed and the same
// pointer when nothing did, so callers can compare by reference.
type Registry struct {
	stations map[string]*Station
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{stations: make(map[string]*Station)}
}

// Station looks up a station by identity.
func (r *Registry) Station(id string) (*Station, bool) {
	st, ok := r.stations[id]
	return st, ok
}

// Len reports the number of registered stations.
func (r *Registry) Len() int {
	return len(r.stations)
}

// IDs returns all registered identities in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.stations))
	for id := range r.stations {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (r *Registry) with(st *Station) *Registry {
	next := &Registry{stations: maps.Clone(r.stations)}
	next.stations[st.ID] = st
	return next
}
