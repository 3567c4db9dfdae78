//go:build !linux

package binmon

import "time"

func takeFingerprint(path string, now time.Time) (Fingerprint, error) {
	return statFingerprint(path, now)
}
