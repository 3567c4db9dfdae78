package journal

import (
	"bytes"
	"encoding/json"
	"io"
	"sync"
	"time"

	"git.unix.lgbt/diamondburned/binmon/binmon"
	"github.com/pkg/errors"
)

// Entry describes the JSON structure of an event to be written.
type Entry struct {
	Time time.Time    `json:"time"`
	Type string       `json:"type"`
	Data binmon.Event `json:"data"`
}

// Writer is a simple journaler that writes line-delimited JSON events into the
// writer.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

var _ binmon.Journaler = (*Writer)(nil)

// NewWriter creates a new journal writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes the given event into the writer. Each event is written with a
// single Write call, and writes are concurrently safe.
func (l *Writer) Write(ev binmon.Event) error {
	entry := Entry{
		Time: time.Now(),
		Type: ev.Type(),
		Data: ev,
	}

	buf := bytes.Buffer{}
	buf.Grow(512)

	// Encode appends a new line.
	if err := json.NewEncoder(&buf).Encode(entry); err != nil {
		return errors.Wrap(err, "failed to marshal event")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "failed to write event")
	}

	return nil
}
