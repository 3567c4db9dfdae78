package binmon

import (
	"os"
	"time"
)

// statFingerprint fingerprints using os.Stat. The modification time stands in
// for the creation time and the inode is unknown.
func statFingerprint(path string, now time.Time) (Fingerprint, error) {
	s, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Fingerprint{Taken: now}, nil
		}
		return Fingerprint{}, err
	}

	return Fingerprint{
		Taken:   now,
		Created: s.ModTime(),
		Exists:  true,
	}, nil
}
