package journal

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"time"

	"git.unix.lgbt/diamondburned/binmon/binmon"
	"git.unix.lgbt/diamondburned/binmon/binmon/journal/backwardio"
	"github.com/pkg/errors"
)

// Reader reads journals written by Writer from the newest entry to the oldest.
type Reader struct {
	s *backwardio.Scanner
}

// NewReader creates a new journal reader.
func NewReader(r io.ReadSeeker) *Reader {
	return &Reader{backwardio.NewScanner(r)}
}

// Read reads the entry before the previously read one, starting from the end.
// An EOF error is returned if the whole journal has been read.
func (r *Reader) Read() (binmon.Event, time.Time, error) {
	var line []byte
	var err error

	for {
		line, err = r.s.ReadUntil('\n')
		if err != nil {
			return nil, time.Time{}, err
		}
		if len(line) > 0 {
			break
		}
	}

	var rawEvent struct {
		Time time.Time       `json:"time"`
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(line, &rawEvent); err != nil {
		return nil, time.Time{}, errors.Wrap(err, "failed to decode JSON")
	}

	event := binmon.NewEvent(rawEvent.Type)
	if event == nil {
		return nil, time.Time{}, fmt.Errorf("unknown event %q", rawEvent.Type)
	}

	if err := json.Unmarshal(rawEvent.Data, event); err != nil {
		return nil, time.Time{}, errors.Wrap(err, "failed to decode event data")
	}

	// NewEvent returns pointers for decoding, but events are written as
	// values.
	event = reflect.ValueOf(event).Elem().Interface().(binmon.Event)

	return event, rawEvent.Time, nil
}

// LastEntries reads up to n of the newest entries from the journal file at
// path, newest first.
func LastEntries(path string, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := NewReader(f)
	entries := make([]Entry, 0, n)

	for len(entries) < n {
		ev, t, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return entries, err
		}

		entries = append(entries, Entry{Time: t, Type: ev.Type(), Data: ev})
	}

	return entries, nil
}
