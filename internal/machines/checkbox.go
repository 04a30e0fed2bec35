package machines

import (
	"context"
	"fmt"

	"github.com/librescoot/librefsm"

	"github.com/rjdestigter/formstate/internal/supervisor"
)

// CheckboxMachine is the definition for a binary toggle. The snapshot
// value mirrors the state as "true"/"false" so other stations can read
// it without knowing the state names.
type CheckboxMachine struct {
	id          string
	initiallyOn bool
	settings    settings
}

// Checkbox builds the definition for a toggle field.
func Checkbox(id string, initiallyOn bool, opts ...Option) *CheckboxMachine {
	return &CheckboxMachine{id: id, initiallyOn: initiallyOn, settings: newSettings(opts)}
}

// Start runs a fresh interpreter, resuming from the snapshot if one is
// given.
func (m *CheckboxMachine) Start(ctx context.Context, resume supervisor.Snapshot) (supervisor.Interpreter, error) {
	data := &fieldData{}

	mark := func(v string) func(*librefsm.Context) error {
		return func(*librefsm.Context) error {
			data.set(v)
			return nil
		}
	}

	initial := librefsm.StateID(StateOff)
	if m.initiallyOn {
		initial = StateOn
	}

	def := librefsm.NewDefinition().
		State(StateOn, librefsm.WithOnEnter(mark("true"))).
		State(StateOff, librefsm.WithOnEnter(mark("false"))).
		Transition(StateOff, EventToggle, StateOn).
		Transition(StateOn, EventToggle, StateOff).
		AnyStateTransition(EventCheck, StateOn).
		AnyStateTransition(EventUncheck, StateOff).
		AnyStateTransition(EventReset, initial).
		Initial(initial)

	machine, err := def.Build(librefsm.WithData(data), librefsm.WithLogger(m.settings.logger))
	if err != nil {
		return nil, fmt.Errorf("build checkbox machine %s: %w", m.id, err)
	}
	if err := machine.Start(ctx); err != nil {
		return nil, fmt.Errorf("start checkbox machine %s: %w", m.id, err)
	}
	if resume.State != "" {
		if err := machine.SetState(librefsm.StateID(resume.State)); err != nil {
			_ = machine.Stop()
			return nil, fmt.Errorf("resume checkbox machine %s: %w", m.id, err)
		}
	}
	return &service{machine: machine, data: data}, nil
}
