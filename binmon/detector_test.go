package binmon

import (
	"context"
	"io/fs"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
)

// fingerprintSeq feeds a fixed sequence of fingerprints to a Detector. Once the
// sequence is exhausted, the last fingerprint is repeated.
type fingerprintSeq struct {
	mutex sync.Mutex
	seq   []fakeFile
	calls int
	done  chan struct{}
}

// fakeFile describes a file state; a zero created value means absent.
type fakeFile struct {
	created time.Time
	inode   uint64
	err     error
}

var epoch = time.Now().Add(-time.Hour)

func absent() fakeFile { return fakeFile{} }

func present(createdOffset time.Duration, inode uint64) fakeFile {
	return fakeFile{created: epoch.Add(createdOffset), inode: inode}
}

func newFingerprintSeq(seq ...fakeFile) *fingerprintSeq {
	return &fingerprintSeq{seq: seq, done: make(chan struct{})}
}

func (s *fingerprintSeq) fingerprint(string) (Fingerprint, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	i := s.calls
	if i >= len(s.seq) {
		i = len(s.seq) - 1
	}

	s.calls++
	// One extra call means every fingerprint in the sequence has been
	// compared against its predecessor.
	if s.calls == len(s.seq)+1 {
		close(s.done)
	}

	f := s.seq[i]
	if f.err != nil {
		return Fingerprint{}, f.err
	}

	fp := Fingerprint{Taken: time.Now()}
	if !f.created.IsZero() {
		fp.Created = f.created
		fp.Inode = f.inode
		fp.Exists = true
	}

	return fp, nil
}

// runDetector runs a detector over the given sequence until every fingerprint
// has been compared, then returns the journal.
func runDetector(t *testing.T, seq ...fakeFile) (*mockJournal, *Detector) {
	t.Helper()

	j := &mockJournal{}
	fps := newFingerprintSeq(seq...)

	d := NewDetector("app", time.Millisecond, j)
	d.fingerprint = fps.fingerprint

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- d.Run(ctx) }()

	select {
	case <-fps.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for detector")
	}

	cancel()

	if err := <-errCh; err != nil {
		t.Fatal("detector failed:", err)
	}

	return j, d
}

func TestDetector(t *testing.T) {
	tests := []struct {
		name     string
		seq      []fakeFile
		changes  int
		warnings int
	}{
		{
			name: "unchanged",
			seq:  []fakeFile{present(0, 1), present(0, 1), present(0, 1), present(0, 1)},
		},
		{
			name:    "recreated",
			seq:     []fakeFile{present(0, 1), present(0, 1), present(time.Hour, 1), present(time.Hour, 1)},
			changes: 1,
		},
		{
			name:    "renamed over",
			seq:     []fakeFile{present(0, 1), present(0, 2), present(0, 2)},
			changes: 1,
		},
		{
			name:    "replaced twice",
			seq:     []fakeFile{present(0, 1), present(0, 2), present(0, 3)},
			changes: 2,
		},
		{
			name: "always absent",
			seq:  []fakeFile{absent(), absent(), absent()},
		},
		{
			name:     "disappears",
			seq:      []fakeFile{present(0, 1), absent(), absent()},
			warnings: 1,
		},
		{
			name:     "appears",
			seq:      []fakeFile{absent(), present(0, 1), present(0, 1)},
			warnings: 1,
		},
		{
			name:     "deleted and recreated",
			seq:      []fakeFile{present(0, 1), absent(), present(time.Hour, 2), present(time.Hour, 2)},
			changes:  1,
			warnings: 2,
		},
		{
			name:     "deleted and restored",
			seq:      []fakeFile{present(0, 1), absent(), present(0, 1), present(0, 1)},
			warnings: 2,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			j, d := runDetector(t, test.seq...)

			if n := j.Count(eventBinaryChanged); n != test.changes {
				t.Errorf("got %d changes, expected %d", n, test.changes)
			}
			if n := j.Count(eventWarning); n != test.warnings {
				t.Errorf("got %d warnings, expected %d", n, test.warnings)
			}

			// Reloads are coalesced into a single pending notification.
			expectPending := 0
			if test.changes > 0 {
				expectPending = 1
			}
			if n := len(d.Reloads()); n != expectPending {
				t.Errorf("got %d pending reloads, expected %d", n, expectPending)
			}
		})
	}
}

func TestDetectorChangedEvent(t *testing.T) {
	j, _ := runDetector(t, present(0, 1), present(0, 1), present(time.Hour, 1))

	for _, ev := range j.Journals() {
		ev, ok := ev.(EventBinaryChanged)
		if !ok {
			continue
		}
		if ev.File != "app" {
			t.Errorf("file = %q, expected app", ev.File)
		}
		if ev.OldAge-ev.NewAge != 3600 {
			t.Errorf("age difference = %d, expected 3600", ev.OldAge-ev.NewAge)
		}
		return
	}

	t.Fatal("no change event")
}

func TestDetectorError(t *testing.T) {
	j := &mockJournal{}
	fps := newFingerprintSeq(present(0, 1), fakeFile{err: fs.ErrPermission})

	d := NewDetector("app", time.Millisecond, j)
	d.fingerprint = fps.fingerprint

	errCh := make(chan error, 1)
	go func() { errCh <- d.Run(context.Background()) }()

	select {
	case err := <-errCh:
		if !errors.Is(err, fs.ErrPermission) {
			t.Fatalf("expected permission error, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("detector did not stop on error")
	}
}
