package supervisor

// Event is the payload delivered to a station's machine.
type Event struct {
	Type  string
	Value string
}

// Action is the closed set of inputs the router accepts. All registry
// mutation, including interpreter attach/detach, flows through one of
// these variants.
type Action interface {
	isAction()
}

// Deliver routes one event to one or more stations. Targets are resolved
// at construction time; a multi-target deliver is applied as single-target
// copies in list order.
type Deliver struct {
	Event   Event
	Targets []string
}

// Batch applies its member actions left to right as one reducer step.
type Batch struct {
	Actions []Action
}

// Register inserts a station into the registry, overwriting any existing
// entry with the same ID.
type Register struct {
	Station *Station
}

// Attach hands a freshly started interpreter to a station.
type Attach struct {
	ID          string
	Interpreter Interpreter
}

// Detach clears a station's live interpreter. The last-known snapshot is
// kept so a later Attach resumes where the station left off.
type Detach struct {
	ID string
}

// Drain takes a station's queued events and delivers them to its live
// interpreter in arrival order. The queue is emptied in the same reducer
// step that delivers, so a second Drain is a no-op.
type Drain struct {
	ID string
}

func (Deliver) isAction()  {}
func (Batch) isAction()    {}
func (Register) isAction() {}
func (Attach) isAction()   {}
func (Detach) isAction()   {}
func (Drain) isAction()    {}

// Normalize shapes a component's outgoing events into a single action:
// every event is stamped with the sender's own identity as target, and
// more than one event is wrapped into a batch.
func Normalize(self string, events ...Event) Action {
	if len(events) == 1 {
		return Deliver{Event: events[0], Targets: []string{self}}
	}
	actions := make([]Action, 0, len(events))
	for _, ev := range events {
		actions = append(actions, Deliver{Event: ev, Targets: []string{self}})
	}
	return Batch{Actions: actions}
}
