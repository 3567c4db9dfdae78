//go:build unix

package exec

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// IsBusy returns true if err says the executable is still open for writing by
// another process.
func IsBusy(err error) bool {
	return errors.Is(err, unix.ETXTBSY)
}
