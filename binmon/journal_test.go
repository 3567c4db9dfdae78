package binmon

import (
	"reflect"
	"sync"
	"testing"
	"time"
)

// mockJournal is an in-memory storage of journals, primarily used for testing.
// A zero-value instance is a valid instance.
type mockJournal struct {
	mutex    sync.Mutex
	cond     *sync.Cond
	journals []Event
}

var _ Journaler = (*mockJournal)(nil)

// Write appends a journal event into the internal store.
func (m *mockJournal) Write(ev Event) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.journals = append(m.journals, ev)
	if m.cond != nil {
		m.cond.Broadcast()
	}
	return nil
}

// Journals returns a copy of the journal slice.
func (m *mockJournal) Journals() []Event {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return append([]Event(nil), m.journals...)
}

// Count returns the number of stored events matching the given event type.
func (m *mockJournal) Count(eventType string) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.count(eventType)
}

func (m *mockJournal) count(eventType string) int {
	var n int
	for _, ev := range m.journals {
		if ev.Type() == eventType {
			n++
		}
	}
	return n
}

// Drop removes all stored events of the given type and returns how many were
// removed. It is used to ignore events with unpredictable fields.
func (m *mockJournal) Drop(eventType string) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	kept := m.journals[:0]
	for _, ev := range m.journals {
		if ev.Type() != eventType {
			kept = append(kept, ev)
		}
	}

	dropped := len(m.journals) - len(kept)
	m.journals = kept
	return dropped
}

// WaitFor blocks until at least n events of the given type have been written,
// failing the test if that takes longer than timeout.
func (m *mockJournal) WaitFor(t *testing.T, eventType string, n int, timeout time.Duration) {
	t.Helper()

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.cond == nil {
		m.cond = sync.NewCond(&m.mutex)
	}

	timer := time.AfterFunc(timeout, func() {
		m.mutex.Lock()
		m.cond.Broadcast()
		m.mutex.Unlock()
	})
	defer timer.Stop()

	deadline := time.Now().Add(timeout)

	for m.count(eventType) < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d %q events, got %d", n, eventType, m.count(eventType))
		}
		m.cond.Wait()
	}
}

// Verify verifies that the given journals slice is equal to the one stored
// internally. If strict is true, then a length check is performed, otherwise,
// the unmatched events are returned.
//
// Consecutive calls to Verify will match the remaining unmatched events.
func (m *mockJournal) Verify(t *testing.T, strict bool, journals []Event) []Event {
	t.Helper()

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if strict && len(journals) != len(m.journals) {
		t.Errorf("mismatch journal length, got %d, expected %d", len(m.journals), len(journals))
		return nil
	}

	if len(journals) > len(m.journals) {
		t.Errorf("journal too short, got %d, expected at least %d", len(m.journals), len(journals))
		return nil
	}

	for i, ev := range journals {
		if !reflect.DeepEqual(m.journals[i], ev) {
			t.Errorf("journal %d mismatch, got %#v, expected %#v", i, m.journals[i], ev)
		}
	}

	m.journals = m.journals[len(journals):]
	return m.journals
}
