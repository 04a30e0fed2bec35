package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rjdestigter/formstate/internal/machines"
	"github.com/rjdestigter/formstate/internal/supervisor"
)

// field binds one form component to its station in the registry. It
// walks the lifecycle Unregistered -> Registering -> Live: register the
// station on first sight, start an interpreter from the last-known
// snapshot while mounted, and drain any queued events once live.
type field struct {
	id       string
	label    string
	checkbox bool

	ctx   context.Context
	def   supervisor.Definition
	store *supervisor.Store
	log   *slog.Logger

	interp supervisor.Interpreter
	input  textinput.Model
}

func newInputField(ctx context.Context, store *supervisor.Store, log *slog.Logger, id, label, placeholder string, def supervisor.Definition) *field {
	inp := textinput.New()
	inp.Placeholder = placeholder
	inp.Prompt = "> "
	inp.Width = 32
	return &field{id: id, label: label, ctx: ctx, def: def, store: store, log: log, input: inp}
}

func newCheckboxField(ctx context.Context, store *supervisor.Store, log *slog.Logger, id, label string, def supervisor.Definition) *field {
	return &field{id: id, label: label, checkbox: true, ctx: ctx, def: def, store: store, log: log}
}

// register creates the station on first sight. Idempotent: once the
// registry has an entry, later calls do nothing, so the registration
// event is dispatched exactly once.
func (f *field) register() {
	if _, ok := f.store.Registry().Station(f.id); ok {
		return
	}
	f.store.Dispatch(supervisor.Register{Station: supervisor.NewStation(f.id, f.def, supervisor.Snapshot{})})
}

// mount starts an interpreter from the station's last-known snapshot and
// attaches it, then drains anything that queued up while unmounted.
func (f *field) mount() error {
	f.register()
	if f.interp == nil {
		st, _ := f.store.Registry().Station(f.id)
		interp, err := f.def.Start(f.ctx, st.Last)
		if err != nil {
			return err
		}
		f.interp = interp
		f.store.Dispatch(supervisor.Attach{ID: f.id, Interpreter: interp})
	}
	f.drain()
	f.refresh()
	return nil
}

// drain flushes the pending queue through the router while live.
func (f *field) drain() {
	st, ok := f.store.Registry().Station(f.id)
	if !ok || st.Live == nil || len(st.Queue) == 0 {
		return
	}
	f.store.Dispatch(supervisor.Drain{ID: f.id})
	f.refresh()
}

// unmount detaches and stops the interpreter. The station keeps its
// snapshot, so a later mount resumes.
func (f *field) unmount() {
	if f.interp == nil {
		return
	}
	f.store.Dispatch(supervisor.Detach{ID: f.id})
	if err := f.interp.Stop(); err != nil {
		f.log.Warn("stopping interpreter", "field", f.id, "error", err)
	}
	f.interp = nil
}

func (f *field) mounted() bool {
	return f.interp != nil
}

// send routes outgoing events through the store, stamped with this
// field's identity.
func (f *field) send(events ...supervisor.Event) {
	if len(events) == 0 {
		return
	}
	f.store.Dispatch(supervisor.Normalize(f.id, events...))
	f.refresh()
}

// snapshot prefers the live interpreter; an unmounted field reports the
// station's last-known snapshot.
func (f *field) snapshot() supervisor.Snapshot {
	if f.interp != nil {
		return f.interp.Snapshot()
	}
	if st, ok := f.store.Registry().Station(f.id); ok {
		return st.Last
	}
	return supervisor.Snapshot{}
}

func (f *field) value() string {
	return f.snapshot().Value
}

func (f *field) focus() tea.Cmd {
	if f.checkbox {
		return nil
	}
	return f.input.Focus()
}

func (f *field) blur() {
	if f.checkbox {
		return
	}
	f.input.Blur()
	f.send(supervisor.Event{Type: machines.EventBlur})
}

// handleKey feeds a message to the text input and reports whether the
// value changed; a change is forwarded to the machine.
func (f *field) handleKey(msg tea.Msg) (tea.Cmd, bool) {
	if f.checkbox {
		return nil, false
	}
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	after := f.input.Value()
	if after == before {
		return cmd, false
	}
	f.send(supervisor.Event{Type: machines.EventChange, Value: after})
	return cmd, true
}

// refresh pulls the machine's value back into the text input, so resets
// delivered by other fields show up on screen.
func (f *field) refresh() {
	if f.checkbox {
		return
	}
	if snap := f.snapshot(); f.input.Value() != snap.Value {
		f.input.SetValue(snap.Value)
		f.input.CursorEnd()
	}
}

func (f *field) view(focused bool) string {
	snap := f.snapshot()

	label := labelStyle
	if focused {
		label = labelFocusedStyle
	}
	if machines.Touched(snap.State) && !machines.Valid(snap.State) && !f.checkbox {
		label = labelInvalidStyle
	}

	if f.checkbox {
		box := "[ ]"
		if machines.On(snap.State) {
			box = "[x]"
		}
		cursor := "  "
		if focused {
			cursor = "> "
		}
		return hintStyle.Render(cursor) + label.Render(box+" "+f.label)
	}

	return label.Render(f.label) + "\n" + f.input.View() + "  " + stateStyle.Render(snap.State)
}
