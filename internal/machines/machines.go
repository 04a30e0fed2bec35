// Package machines builds the finite-state machine definitions that
// drive form fields, on top of the librefsm interpreter.
package machines

import (
	"log/slog"
	"sync"

	"github.com/librescoot/librefsm"

	"github.com/rjdestigter/formstate/internal/supervisor"
)

// Event types understood by the field machines.
const (
	EventChange  = "CHANGE"
	EventBlur    = "BLUR"
	EventReset   = "RESET"
	EventToggle  = "TOGGLE"
	EventCheck   = "CHECK"
	EventUncheck = "UNCHECK"
)

// Input machine leaf states. Touched/untouched and valid/invalid are
// orthogonal; the product is flattened into four states.
const (
	StatePristineValid   = "pristine_valid"
	StatePristineInvalid = "pristine_invalid"
	StateTouchedValid    = "touched_valid"
	StateTouchedInvalid  = "touched_invalid"
)

// Checkbox machine states.
const (
	StateOn  = "on"
	StateOff = "off"
)

// Condition pseudo-states; never observed in snapshots.
const (
	statePristine = "pristine"
	stateClassify = "classify"
)

// Valid reports whether an input machine state is one of the valid ones.
func Valid(state string) bool {
	return state == StatePristineValid || state == StateTouchedValid
}

// Touched reports whether an input machine state has been touched.
func Touched(state string) bool {
	return state == StateTouchedValid || state == StateTouchedInvalid
}

// On reports whether a checkbox machine state is the checked one.
func On(state string) bool {
	return state == StateOn
}

// Option configures a machine factory.
type Option func(*settings)

type settings struct {
	logger *slog.Logger
}

// WithLogger sets the logger handed to built machines.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

func newSettings(opts []Option) settings {
	s := settings{logger: slog.Default()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// fieldData is the machine context value. Transition actions write it
// from the machine's event loop; snapshots read it after SendSync has
// returned, but the mutex keeps the access race-free regardless.
type fieldData struct {
	mu    sync.Mutex
	value string
}

func (d *fieldData) get() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}

func (d *fieldData) set(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.value = v
}

// service adapts a running librefsm machine to the supervisor's
// interpreter contract: synchronous delivery, changed flag by snapshot
// comparison.
type service struct {
	machine *librefsm.Machine
	data    *fieldData
}

func (s *service) Send(ev supervisor.Event) (supervisor.Snapshot, bool) {
	before := s.Snapshot()
	if err := s.machine.SendSync(librefsm.Event{ID: librefsm.EventID(ev.Type), Payload: ev.Value}); err != nil {
		return before, false
	}
	after := s.Snapshot()
	return after, after != before
}

func (s *service) Snapshot() supervisor.Snapshot {
	return supervisor.Snapshot{
		State: string(s.machine.CurrentState()),
		Value: s.data.get(),
	}
}

func (s *service) Stop() error {
	return s.machine.Stop()
}
