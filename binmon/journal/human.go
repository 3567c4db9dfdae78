package journal

import (
	"fmt"
	"io"
	"log"
	"strings"

	"git.unix.lgbt/diamondburned/binmon/binmon"
)

// Severity levels used by Format.
const (
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// HumanWriter is a journaler that writes events as human-readable log lines.
type HumanWriter struct {
	l *log.Logger
}

var _ binmon.Journaler = (*HumanWriter)(nil)

// NewHumanWriter creates a new journaler that writes to w, usually stderr.
func NewHumanWriter(w io.Writer) *HumanWriter {
	return &HumanWriter{
		l: log.New(w, "binmon: ", log.LstdFlags|log.Lmicroseconds),
	}
}

// Write writes a single line describing ev.
func (h *HumanWriter) Write(ev binmon.Event) error {
	return h.l.Output(2, Format(ev))
}

// Format formats the event into a single line prefixed with its severity.
func Format(ev binmon.Event) string {
	level, msg := Describe(ev)
	return fmt.Sprintf("[%s] %s", level, msg)
}

// Describe returns the severity and the message of an event.
func Describe(ev binmon.Event) (level, msg string) {
	switch ev := ev.(type) {
	case binmon.EventWarning:
		return LevelWarn, fmt.Sprintf("%s: %s", ev.Component, ev.Error)

	case binmon.EventAcquired:
		return LevelInfo, fmt.Sprintf("acquired journal lock on %s", ev.File)

	case binmon.EventProcessSpawnError:
		return LevelError, fmt.Sprintf("failed to start %s after %d attempt(s): %s",
			ev.File, ev.Attempts, ev.Reason)

	case binmon.EventProcessSpawned:
		cmd := strings.Join(append([]string{ev.File}, ev.Args...), " ")
		if ev.Attempts > 1 {
			return LevelInfo, fmt.Sprintf("running %q, pid is %d (busy, took %d attempts)",
				cmd, ev.PID, ev.Attempts)
		}
		return LevelInfo, fmt.Sprintf("running %q, pid is %d", cmd, ev.PID)

	case binmon.EventProcessExited:
		switch {
		case ev.Error != "":
			return LevelError, fmt.Sprintf("%s (pid %d) could not be waited on: %s",
				ev.File, ev.PID, ev.Error)
		case ev.ExitCode == 0:
			return LevelInfo, fmt.Sprintf("%s (pid %d) exited with success", ev.File, ev.PID)
		case ev.ExitCode == -1:
			return LevelInfo, fmt.Sprintf("%s (pid %d) was killed", ev.File, ev.PID)
		default:
			return LevelError, fmt.Sprintf("%s (pid %d) exited with error code %d",
				ev.File, ev.PID, ev.ExitCode)
		}

	case binmon.EventProcessKilled:
		return LevelInfo, fmt.Sprintf("killing pid %d for %s", ev.PID, ev.Reason)

	case binmon.EventBinaryChanged:
		return LevelInfo, fmt.Sprintf("%s changed (age %ds -> %ds)", ev.File, ev.OldAge, ev.NewAge)

	case binmon.EventSignalReceived:
		return LevelInfo, fmt.Sprintf("got signal %s, exiting", ev.Signal)

	default:
		return LevelInfo, fmt.Sprintf("%s: %+v", ev.Type(), ev)
	}
}
