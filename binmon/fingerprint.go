package binmon

import (
	"time"
)

// Fingerprint is a snapshot of a file's existence and identity at one instant.
// Two consecutive fingerprints are compared to decide whether the file has
// been replaced.
type Fingerprint struct {
	// Taken is when the fingerprint was taken.
	Taken time.Time
	// Created is the file's birth time, or its inode change time on
	// filesystems that do not record a birth time.
	Created time.Time
	// Inode is the file's inode number, or 0 if unknown.
	Inode  uint64
	Exists bool
}

// TakeFingerprint fingerprints the file at path. A missing file is not an
// error; the returned fingerprint has Exists set to false instead.
func TakeFingerprint(path string) (Fingerprint, error) {
	return takeFingerprint(path, time.Now())
}

// Age returns how old the file was at the given instant, rounded to whole
// seconds. It returns 0 for a missing file.
func (fp Fingerprint) Age(at time.Time) int64 {
	if !fp.Exists {
		return 0
	}
	return int64(at.Sub(fp.Created).Round(time.Second) / time.Second)
}

// Changed returns true if both fingerprints describe an existing file and next
// looks like a different file than fp. The ages of both are measured against
// next.Taken, so an untouched file never appears to have changed just because
// time has passed.
func (fp Fingerprint) Changed(next Fingerprint) bool {
	if !fp.Exists || !next.Exists {
		return false
	}

	if fp.Inode != 0 && next.Inode != 0 && fp.Inode != next.Inode {
		return true
	}

	return fp.Age(next.Taken) != next.Age(next.Taken)
}
