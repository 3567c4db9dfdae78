package binmon

// eventType describes an event type.
type eventType = string

const (
	eventWarning           eventType = "warning"
	eventAcquired          eventType = "acquired lock"
	eventProcessSpawnError eventType = "process spawn error"
	eventProcessSpawned    eventType = "process spawned"
	eventProcessExited     eventType = "process exited"
	eventProcessKilled     eventType = "process killed"
	eventBinaryChanged     eventType = "binary changed"
	eventSignalReceived    eventType = "signal received"
)

// Event is an interface describing known events.
type Event interface {
	Type() string
	event()
}

// NewEvent creates a new event from the given event type. It is used primarily
// for decoding events from its type. Nil is returned if the event type is
// unknown.
func NewEvent(eventType string) Event {
	switch eventType {
	case eventWarning:
		return &EventWarning{}
	case eventAcquired:
		return &EventAcquired{}
	case eventProcessSpawnError:
		return &EventProcessSpawnError{}
	case eventProcessSpawned:
		return &EventProcessSpawned{}
	case eventProcessExited:
		return &EventProcessExited{}
	case eventProcessKilled:
		return &EventProcessKilled{}
	case eventBinaryChanged:
		return &EventBinaryChanged{}
	case eventSignalReceived:
		return &EventSignalReceived{}
	default:
		return nil
	}
}

// EventWarning is emitted when a non-fatal error occurs.
type EventWarning struct {
	Component string `json:"component"`
	Error     string `json:"error"`
}

func (ev EventWarning) Type() string { return eventWarning }
func (ev EventWarning) event()       {}

// EventAcquired is emitted when the flock on the journal is acquired, which is
// on startup.
type EventAcquired struct {
	File string `json:"file"`
}

func (ev EventAcquired) Type() string { return eventAcquired }
func (ev EventAcquired) event()       {}

// EventProcessSpawnError is emitted when a process fails to start. Busy retries
// that eventually succeed do not emit this.
type EventProcessSpawnError struct {
	File     string `json:"file"`
	Reason   string `json:"reason"`
	Attempts int    `json:"attempts"`
}

func (ev EventProcessSpawnError) Type() string { return eventProcessSpawnError }
func (ev EventProcessSpawnError) event()       {}

// EventProcessSpawned is emitted when a process has been started.
type EventProcessSpawned struct {
	File     string   `json:"file"`
	Args     []string `json:"args"`
	PID      int      `json:"pid"`
	Attempts int      `json:"attempts"`
}

func (ev EventProcessSpawned) Type() string { return eventProcessSpawned }
func (ev EventProcessSpawned) event()       {}

// EventProcessExited is emitted when a process has been reaped, whether it
// exited on its own or was killed.
type EventProcessExited struct {
	PID      int    `json:"pid"`
	File     string `json:"file"`
	Error    string `json:"error,omitempty"`
	ExitCode int    `json:"exit_code"` // -1 if killed by a signal
}

// Success returns true if the process exited with status 0.
func (ev EventProcessExited) Success() bool {
	return ev.ExitCode == 0 && ev.Error == ""
}

func (ev EventProcessExited) Type() string { return eventProcessExited }
func (ev EventProcessExited) event()       {}

// EventProcessKilled is emitted right before a process is forcibly killed.
type EventProcessKilled struct {
	PID    int        `json:"pid"`
	File   string     `json:"file"`
	Reason KillReason `json:"reason"`
}

// KillReason describes why the supervisor killed its child.
type KillReason string

const (
	KillReload   KillReason = "reload"
	KillShutdown KillReason = "shutdown"
)

func (ev EventProcessKilled) Type() string { return eventProcessKilled }
func (ev EventProcessKilled) event()       {}

// EventBinaryChanged is emitted by the Detector when it decides that the binary
// has been replaced.
type EventBinaryChanged struct {
	File   string `json:"file"`
	OldAge int64  `json:"old_age"` // seconds
	NewAge int64  `json:"new_age"` // seconds
}

func (ev EventBinaryChanged) Type() string { return eventBinaryChanged }
func (ev EventBinaryChanged) event()       {}

// EventSignalReceived is emitted when the supervisor receives a termination
// signal.
type EventSignalReceived struct {
	Signal string `json:"signal"`
}

func (ev EventSignalReceived) Type() string { return eventSignalReceived }
func (ev EventSignalReceived) event()       {}
