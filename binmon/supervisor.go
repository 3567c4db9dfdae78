package binmon

import (
	"context"
	"os"
	"runtime"

	"git.unix.lgbt/diamondburned/binmon/binmon/exec"
	"github.com/pkg/errors"
)

// Supervisor keeps exactly one instance of the target running.
type Supervisor struct {
	j        Journaler
	target   Target
	launcher *Launcher
	detector *Detector

	// watchSignals is replaced in tests.
	watchSignals func() (<-chan os.Signal, func())
}

// NewSupervisor creates a new supervisor for the given target. Events are
// written into the given journaler.
func NewSupervisor(target Target, j Journaler) *Supervisor {
	return &Supervisor{
		j:        j,
		target:   target,
		launcher: NewLauncher(target, j),
		detector: NewDetector(target.BinaryPath, target.PollInterval, j),
		watchSignals: func() (<-chan os.Signal, func()) {
			w := WatchSignals()
			return w.C(), w.Stop
		},
	}
}

// Run starts the target and keeps it running. The child is restarted when it
// exits or when its binary changes.
//
// Run returns nil once a termination signal has been received and the child
// has been killed. It returns an error if the child cannot be started, if the
// Detector fails, or if ctx is canceled. The child is always reaped before Run
// returns.
func (s *Supervisor) Run(ctx context.Context) error {
	// The child dies with the thread that spawned it, so stay on one.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	sigs, stopSigs := s.watchSignals()
	defer stopSigs()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	detectErr := make(chan error, 1)
	go func() { detectErr <- s.detector.Run(ctx) }()

	// Make sure the binary the first child runs is the one the detector
	// compares against.
	select {
	case <-s.detector.Ready():
	case err := <-detectErr:
		if err == nil {
			return ctx.Err()
		}
		return errors.Wrap(err, "change detector stopped")
	}

	reloads := s.detector.Reloads()

	for {
		// Anything queued up to now is already accounted for by the spawn
		// below.
		drain(reloads)

		proc, err := s.launcher.Spawn()
		if err != nil {
			return err
		}

		metricChildRunning.Set(1)

		exited := make(chan exec.ExitStatus, 1)
		go func() { exited <- proc.Wait() }()

		select {
		case status := <-exited:
			s.exited(status)
			metricRestartsTotal.WithLabelValues("exit").Inc()

		case <-reloads:
			s.kill(proc, exited, KillReload)
			metricRestartsTotal.WithLabelValues("reload").Inc()

		case sig := <-sigs:
			s.j.Write(EventSignalReceived{Signal: sig.String()})
			s.kill(proc, exited, KillShutdown)
			return nil

		case err := <-detectErr:
			s.kill(proc, exited, KillShutdown)
			if err == nil {
				// The detector only returns nil once ctx is done.
				return ctx.Err()
			}
			return errors.Wrap(err, "change detector stopped")

		case <-ctx.Done():
			s.kill(proc, exited, KillShutdown)
			return ctx.Err()
		}
	}
}

// kill SIGKILLs the process and waits for the waiting goroutine to reap it.
func (s *Supervisor) kill(proc exec.Process, exited <-chan exec.ExitStatus, why KillReason) {
	s.j.Write(EventProcessKilled{
		PID:    proc.PID(),
		File:   s.target.BinaryPath,
		Reason: why,
	})

	if err := proc.Kill(); err != nil {
		s.j.Write(EventWarning{
			Component: "supervisor",
			Error:     "failed to kill process: " + err.Error(),
		})
	}

	s.exited(<-exited)
}

func (s *Supervisor) exited(status exec.ExitStatus) {
	metricChildRunning.Set(0)

	ev := EventProcessExited{
		PID:      status.PID,
		File:     s.target.BinaryPath,
		ExitCode: status.Code,
	}

	if status.Error != nil {
		ev.Error = status.Error.Error()
	}

	s.j.Write(ev)
}

func drain(ch <-chan struct{}) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}
