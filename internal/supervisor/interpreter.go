package supervisor

import "context"

// Snapshot is a machine's last-known state and context value. It survives
// unmount so a remounted component resumes instead of starting fresh.
type Snapshot struct {
	State string
	Value string
}

// Interpreter is a running machine instance, present only while the
// owning component is mounted.
type Interpreter interface {
	// Send delivers one event and reports the successor snapshot along
	// with whether anything changed.
	Send(ev Event) (Snapshot, bool)
	// Snapshot reports the current state and context value.
	Snapshot() Snapshot
	// Stop shuts the instance down.
	Stop() error
}

// Definition builds interpreters for a machine. A non-zero resume
// snapshot seeds the instance with the station's last-known state.
type Definition interface {
	Start(ctx context.Context, resume Snapshot) (Interpreter, error)
}
