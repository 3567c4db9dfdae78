//go:build !unix

package exec

// IsBusy always returns false on this platform.
func IsBusy(err error) bool {
	return false
}
