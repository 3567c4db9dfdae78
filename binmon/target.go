package binmon

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ArgsExtension is the extension that replaces the binary's own extension to
// form the default arguments file path.
const ArgsExtension = "args"

// DefaultWatchInterval is the poll interval used when none is given.
const DefaultWatchInterval = time.Second

// Target describes the executable being supervised. It is created once on
// startup and never modified.
type Target struct {
	BinaryPath   string
	ArgsPath     string
	PollInterval time.Duration
}

// NewTarget validates the given paths and creates a new Target. The binary
// must exist. If argsPath is empty, DefaultArgsPath is used; the arguments file
// itself is not checked here, since it is checked before every spawn anyway.
func NewTarget(binaryPath, argsPath string, interval time.Duration) (Target, error) {
	if binaryPath == "" {
		return Target{}, errors.New("missing binary path")
	}

	if _, err := os.Stat(binaryPath); err != nil {
		return Target{}, errors.Wrap(err, "cannot stat binary")
	}

	if argsPath == "" {
		argsPath = DefaultArgsPath(binaryPath)
	}

	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	return Target{
		BinaryPath:   binaryPath,
		ArgsPath:     argsPath,
		PollInterval: interval,
	}, nil
}

// DefaultArgsPath returns the binary path with its extension replaced by
// ArgsExtension, so both "/tmp/app" and "/tmp/app.exe" map to "/tmp/app.args".
func DefaultArgsPath(binaryPath string) string {
	dir, base := filepath.Split(binaryPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+"."+ArgsExtension)
}
