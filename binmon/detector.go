package binmon

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Detector polls a single file and reports when it has been replaced.
type Detector struct {
	Interval time.Duration

	j    Journaler
	file string

	reload chan struct{}
	ready  chan struct{}

	// fingerprint is replaced in tests.
	fingerprint func(string) (Fingerprint, error)
}

// NewDetector creates a new detector for the given file. Run must be called
// to start polling.
func NewDetector(file string, interval time.Duration, j Journaler) *Detector {
	return &Detector{
		Interval:    interval,
		j:           j,
		file:        file,
		reload:      make(chan struct{}, 1),
		ready:       make(chan struct{}),
		fingerprint: TakeFingerprint,
	}
}

// Reloads returns the channel that receives a value whenever the file changes.
// Reloads that are not consumed in time are coalesced into one.
func (d *Detector) Reloads() <-chan struct{} {
	return d.reload
}

// Ready returns a channel that is closed once Run has taken its first
// fingerprint. Changes made after that are guaranteed to be noticed.
func (d *Detector) Ready() <-chan struct{} {
	return d.ready
}

// Run polls the file until the context is canceled or until the file cannot be
// stat'd for any reason other than it missing. It returns nil if the context
// is canceled. Run must only be called once.
func (d *Detector) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.Interval)
	defer ticker.Stop()

	prev, err := d.fingerprint(d.file)
	if err != nil {
		return errors.Wrap(err, "failed to fingerprint binary")
	}

	close(d.ready)

	// last is the last fingerprint of the file while it existed. It is kept
	// across absences so that a file that is deleted and then recreated is
	// still noticed.
	last := prev

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		next, err := d.fingerprint(d.file)
		if err != nil {
			return errors.Wrap(err, "failed to fingerprint binary")
		}

		switch {
		case !prev.Exists && !next.Exists:
			// Still gone. The build is probably still going.

		case prev.Exists && !next.Exists:
			d.j.Write(EventWarning{
				Component: "detector",
				Error:     d.file + " disappeared, waiting for it to come back",
			})

		case !prev.Exists && next.Exists:
			d.j.Write(EventWarning{
				Component: "detector",
				Error:     d.file + " reappeared, waiting for it to settle",
			})

		default:
			if last.Exists && last.Changed(next) {
				d.j.Write(EventBinaryChanged{
					File:   d.file,
					OldAge: last.Age(next.Taken),
					NewAge: next.Age(next.Taken),
				})
				metricReloadsDetected.Inc()
				d.notify()
			}
			last = next
		}

		prev = next
	}
}

// notify queues a reload without blocking. If one is already queued, the two
// are merged.
func (d *Detector) notify() {
	select {
	case d.reload <- struct{}{}:
	default:
	}
}
