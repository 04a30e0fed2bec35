package machines

import (
	"context"
	"fmt"

	"github.com/librescoot/librefsm"

	"github.com/rjdestigter/formstate/internal/supervisor"
)

// InputMachine is the definition for a validated text field. The current
// string value lives in the machine data; CHANGE replaces it, RESET
// clears it, BLUR touches the field without changing it.
type InputMachine struct {
	id       string
	validate func(string) bool
	settings settings
}

// Input builds the definition for a text field whose validity is decided
// by the given predicate over the current value.
func Input(id string, validate func(string) bool, opts ...Option) *InputMachine {
	return &InputMachine{id: id, validate: validate, settings: newSettings(opts)}
}

// Start runs a fresh interpreter. A non-zero resume snapshot seeds the
// value and state so a remounted field continues where it left off.
func (m *InputMachine) Start(ctx context.Context, resume supervisor.Snapshot) (supervisor.Interpreter, error) {
	data := &fieldData{value: resume.Value}

	branch := func(valid, invalid librefsm.StateID) func(*librefsm.Context) librefsm.StateID {
		return func(*librefsm.Context) librefsm.StateID {
			if m.validate(data.get()) {
				return valid
			}
			return invalid
		}
	}

	setValue := func(ctx *librefsm.Context) error {
		if v, ok := ctx.Event.Payload.(string); ok {
			data.set(v)
		}
		return nil
	}
	clearValue := func(*librefsm.Context) error {
		data.set("")
		return nil
	}

	def := librefsm.NewDefinition().
		ConditionState(statePristine, branch(StatePristineValid, StatePristineInvalid)).
		ConditionState(stateClassify, branch(StateTouchedValid, StateTouchedInvalid)).
		State(StatePristineValid).
		State(StatePristineInvalid).
		State(StateTouchedValid).
		State(StateTouchedInvalid).
		AnyStateTransition(EventChange, stateClassify, librefsm.WithAction(setValue)).
		AnyStateTransition(EventBlur, stateClassify).
		AnyStateTransition(EventReset, statePristine, librefsm.WithAction(clearValue)).
		Initial(statePristine)

	machine, err := def.Build(librefsm.WithData(data), librefsm.WithLogger(m.settings.logger))
	if err != nil {
		return nil, fmt.Errorf("build input machine %s: %w", m.id, err)
	}
	if err := machine.Start(ctx); err != nil {
		return nil, fmt.Errorf("start input machine %s: %w", m.id, err)
	}
	if resume.State != "" {
		if err := machine.SetState(librefsm.StateID(resume.State)); err != nil {
			_ = machine.Stop()
			return nil, fmt.Errorf("resume input machine %s: %w", m.id, err)
		}
	}
	return &service{machine: machine, data: data}, nil
}
