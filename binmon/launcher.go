package binmon

import (
	"git.unix.lgbt/diamondburned/binmon/binmon/exec"
	"github.com/pkg/errors"
)

// MaxSpawnAttempts is the number of times the Launcher tries to start a busy
// executable before giving up. There is no delay between attempts.
const MaxSpawnAttempts = 1000

// ErrBusyRetriesExhausted is returned by Spawn if the executable stayed busy
// for MaxSpawnAttempts attempts.
var ErrBusyRetriesExhausted = errors.New("executable stayed busy")

// Launcher starts the target executable.
type Launcher struct {
	MaxAttempts int

	j      Journaler
	target Target

	startProc func(path string, args []string) (exec.Process, error)
}

// NewLauncher creates a new launcher for the given target.
func NewLauncher(target Target, j Journaler) *Launcher {
	return &Launcher{
		MaxAttempts: MaxSpawnAttempts,
		j:           j,
		target:      target,
		startProc:   exec.StartProcess,
	}
}

// Spawn reloads the arguments file and starts the target. If the executable is
// busy, it is retried immediately. Any error returned is fatal: the arguments
// file is missing, the executable cannot be started, or it stayed busy for
// MaxAttempts attempts.
func (l *Launcher) Spawn() (exec.Process, error) {
	args, err := LoadArgs(l.target.ArgsPath)
	if err != nil {
		l.spawnError(err, 0)
		return nil, err
	}

	for attempt := 1; attempt <= l.MaxAttempts; attempt++ {
		p, err := l.startProc(l.target.BinaryPath, args)
		if err == nil {
			metricSpawnsTotal.Inc()
			l.j.Write(EventProcessSpawned{
				File:     l.target.BinaryPath,
				Args:     args,
				PID:      p.PID(),
				Attempts: attempt,
			})
			return p, nil
		}

		if !exec.IsBusy(err) {
			l.spawnError(err, attempt)
			return nil, errors.Wrapf(err, "failed to start %s", l.target.BinaryPath)
		}

		metricBusyRetriesTotal.Inc()
	}

	err = errors.Wrapf(ErrBusyRetriesExhausted,
		"%s after %d attempts", l.target.BinaryPath, l.MaxAttempts)

	l.spawnError(err, l.MaxAttempts)
	return nil, err
}

func (l *Launcher) spawnError(err error, attempts int) {
	l.j.Write(EventProcessSpawnError{
		File:     l.target.BinaryPath,
		Reason:   err.Error(),
		Attempts: attempts,
	})
}
