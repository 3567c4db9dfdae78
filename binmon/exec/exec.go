// Package exec provides an abstraction around package os' Process
// implementation for easier testing.
package exec

import (
	"os"

	"github.com/pkg/errors"
)

// Process describes a command process.
type Process interface {
	PID() int
	Kill() error
	Wait() ExitStatus
}

// ExitStatus is a process' exit status.
type ExitStatus struct {
	PID   int
	Code  int // -1 if killed
	Error error
}

type process struct {
	*os.Process
}

var _ Process = process{}

// StartProcess starts the executable at path with the given arguments. The
// child shares binmon's standard input and output. On Linux, the child is
// SIGKILLed once the OS thread that started it exits, so callers should start
// processes from a goroutine locked with runtime.LockOSThread that outlives
// the child.
func StartProcess(path string, args []string) (Process, error) {
	argv := make([]string, 0, len(args)+1)
	argv = append(argv, path)
	argv = append(argv, args...)

	p, err := os.StartProcess(path, argv, &os.ProcAttr{
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
		Sys:   sysProcAttr(),
	})
	if err != nil {
		return nil, err
	}

	return process{p}, nil
}

func (proc process) PID() int {
	return proc.Pid
}

// Kill sends SIGKILL to the process. Killing a process that has already
// exited is not an error.
func (proc process) Kill() error {
	if err := proc.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

// Wait waits for the process to exit and reaps it.
func (proc process) Wait() ExitStatus {
	s, err := proc.Process.Wait()

	return ExitStatus{
		PID:   proc.Pid,
		Code:  s.ExitCode(),
		Error: err,
	}
}
