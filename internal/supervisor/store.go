package supervisor

import "log/slog"

// Store owns the current registry and is the single dispatch path for
// actions. It is not safe for concurrent use; the whole system runs on
// the UI event loop. Dispatches issued from a subscriber are queued and
// applied after the current one, preserving dispatch order.
type Store struct {
	registry    *Registry
	subscribers []func(*Registry)
	pending     []Action
	dispatching bool
	log         *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for dispatch tracing.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.log = logger
	}
}

// NewStore creates a store with an empty registry.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		registry: NewRegistry(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the current registry.
func (s *Store) Registry() *Registry {
	return s.registry
}

// Subscribe adds a listener invoked after every registry change.
func (s *Store) Subscribe(fn func(*Registry)) {
	s.subscribers = append(s.subscribers, fn)
}

// Dispatch applies an action through the router and notifies subscribers
// when the registry changed.
func (s *Store) Dispatch(act Action) {
	s.pending = append(s.pending, act)
	if s.dispatching {
		return
	}
	s.dispatching = true
	defer func() { s.dispatching = false }()

	for len(s.pending) > 0 {
		next := s.pending[0]
		s.pending = s.pending[1:]

		applied := Apply(s.registry, next)
		if applied == s.registry {
			s.log.Debug("dispatch was a no-op", "action", actionName(next))
			continue
		}
		s.log.Debug("dispatch applied", "action", actionName(next), "stations", applied.Len())
		s.registry = applied
		for _, fn := range s.subscribers {
			fn(applied)
		}
	}
}

func actionName(act Action) string {
	switch a := act.(type) {
	case Deliver:
		return "deliver:" + a.Event.Type
	case Batch:
		return "batch"
	case Register:
		if a.Station != nil {
			return "register:" + a.Station.ID
		}
		return "register"
	case Attach:
		return "attach:" + a.ID
	case Detach:
		return "detach:" + a.ID
	case Drain:
		return "drain:" + a.ID
	}
	return "unknown"
}
