// Package tui renders the form and binds each field to its state
// machine through the supervisor store.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/rjdestigter/formstate/internal/config"
	"github.com/rjdestigter/formstate/internal/machines"
	"github.com/rjdestigter/formstate/internal/suggest"
	"github.com/rjdestigter/formstate/internal/supervisor"
)

// Station identities. The billing city is the one that can be unmounted
// while still receiving targeted events.
const (
	idCountry     = "country"
	idRegion      = "region"
	idCity        = "city"
	idSeparate    = "separate_billing"
	idBillingCity = "billing_city"
)

// Model is the Bubble Tea model for the whole form.
type Model struct {
	ctx   context.Context
	cfg   config.Config
	store *supervisor.Store
	keys  keyMap
	log   *slog.Logger

	country     *field
	region      *field
	city        *field
	separate    *field
	billingCity *field

	focus     int
	width     int
	height    int
	status    string
	statusErr bool
	quitting  bool
}

// New wires the form fields to their machine definitions and the shared
// store.
func New(ctx context.Context, cfg config.Config, store *supervisor.Store, log *slog.Logger) Model {
	validCountry := countryValidator(cfg.Form.Countries)
	validName := func(v string) bool { return len(strings.TrimSpace(v)) >= cfg.Form.MinNameLen }

	m := Model{
		ctx:   ctx,
		cfg:   cfg,
		store: store,
		keys:  defaultKeyMap(),
		log:   log,
		country: newInputField(ctx, store, log, idCountry, "Country", "Canada",
			machines.Input(idCountry, validCountry, machines.WithLogger(log))),
		region: newInputField(ctx, store, log, idRegion, "State / Province", "Ontario",
			machines.Input(idRegion, validName, machines.WithLogger(log))),
		city: newInputField(ctx, store, log, idCity, "City", "Toronto",
			machines.Input(idCity, validName, machines.WithLogger(log))),
		separate: newCheckboxField(ctx, store, log, idSeparate, "Bill to a different address",
			machines.Checkbox(idSeparate, false, machines.WithLogger(log))),
		billingCity: newInputField(ctx, store, log, idBillingCity, "Billing city", "Rotterdam",
			machines.Input(idBillingCity, validName, machines.WithLogger(log))),
		width:  80,
		height: 24,
		status: "Ready",
	}
	return m
}

func countryValidator(countries []string) func(string) bool {
	return func(v string) bool {
		v = strings.TrimSpace(v)
		for _, c := range countries {
			if strings.EqualFold(v, c) {
				return true
			}
		}
		return false
	}
}

// allFields returns every field, mounted or not, in display order.
func (m Model) allFields() []*field {
	return []*field{m.country, m.region, m.city, m.separate, m.billingCity}
}

// visibleFields returns the fields currently on screen. The billing city
// only shows while the checkbox is on.
func (m Model) visibleFields() []*field {
	fields := []*field{m.country, m.region, m.city, m.separate}
	if m.billingSeparate() {
		fields = append(fields, m.billingCity)
	}
	return fields
}

func (m Model) billingSeparate() bool {
	return machines.On(m.separate.snapshot().State)
}

func (m Model) Init() tea.Cmd {
	m.syncFields()
	return tea.Batch(textinput.Blink, m.visibleFields()[m.focus].focus())
}

// syncFields runs the lifecycle effects that belong after each update:
// register every station, attach interpreters and drain queues for
// visible fields, detach hidden ones.
func (m Model) syncFields() {
	for _, f := range m.allFields() {
		f.register()
	}
	for _, f := range m.visibleFields() {
		if err := f.mount(); err != nil {
			m.log.Error("mounting field", "field", f.id, "error", err)
		}
	}
	if !m.billingSeparate() {
		m.billingCity.unmount()
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := m.visibleFields()
	current := fields[m.focus]

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		return m.moveFocus(1), nil

	case key.Matches(msg, m.keys.Prev):
		return m.moveFocus(-1), nil

	case key.Matches(msg, m.keys.Submit):
		m.status, m.statusErr = m.submit()
		return m, nil

	case current.checkbox && key.Matches(msg, m.keys.Toggle):
		current.send(supervisor.Event{Type: machines.EventToggle})
		m.syncFields()
		m.focus = min(m.focus, len(m.visibleFields())-1)
		return m, nil
	}

	cmd, changed := current.handleKey(msg)
	if changed && current.id == idCountry {
		// A country change invalidates the dependent fields, mounted or
		// not. Unmounted targets queue the reset until they come back.
		m.store.Dispatch(supervisor.Deliver{
			Event:   supervisor.Event{Type: machines.EventReset},
			Targets: []string{idRegion, idCity, idBillingCity},
		})
		m.status, m.statusErr = "Country changed, dependent fields cleared", false
	}
	m.syncFields()
	return m, cmd
}

func (m Model) moveFocus(delta int) Model {
	fields := m.visibleFields()
	fields[m.focus].blur()
	m.focus = (m.focus + delta + len(fields)) % len(fields)
	fields[m.focus].focus()
	m.syncFields()
	return m
}

// submit validates every visible input against its machine state and
// reports a receipt when the whole form is valid.
func (m Model) submit() (string, bool) {
	for _, f := range m.visibleFields() {
		if f.checkbox {
			continue
		}
		snap := f.snapshot()
		if machines.Valid(snap.State) {
			continue
		}
		hint := ""
		if f.id == idCountry {
			if near, ok := suggest.Nearest(snap.Value, m.cfg.Form.Countries); ok {
				hint = fmt.Sprintf(" (did you mean %s?)", near)
			}
		}
		return fmt.Sprintf("%s is invalid%s", f.label, hint), true
	}

	receipt := uuid.NewString()[:8]
	m.log.Info("form submitted", "receipt", receipt, "country", m.country.value())
	return "Submitted, receipt " + receipt, false
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{headerStyle.Render("formstate"), ""}
	for i, f := range m.visibleFields() {
		sections = append(sections, f.view(i == m.focus), "")
	}
	sections = append(sections, m.inspectorView())

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	status := renderStatusBar(m.status, m.statusErr, m.width)
	footer := renderFooter(m.keys, m.width)

	gap := m.height - lipgloss.Height(body) - 2
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return body + "\n" + status + "\n" + footer
}

// inspectorView is the read-only registry selector: one row per station
// with its state, queue depth and live marker.
func (m Model) inspectorView() string {
	rows := []string{inspectorTitleStyle.Render("stations")}
	reg := m.store.Registry()
	for _, id := range reg.IDs() {
		st, _ := reg.Station(id)
		live := " "
		state := st.Last.State
		if st.Live != nil {
			live = "*"
			state = st.Live.Snapshot().State
		}
		rows = append(rows, inspectorRowStyle.Render(
			fmt.Sprintf("%s %-17s %-16s queue=%d", live, id, state, len(st.Queue))))
	}
	return strings.Join(rows, "\n")
}
