package exec

import (
	"sync"
	"sync/atomic"
	"time"
)

type sleepProcess struct {
	once  sync.Once
	stop  chan struct{}
	timer *time.Timer

	pid  int
	code int32
	exit int32
}

// NewSleepProcess creates a process that only idles for a duration before
// exiting with the given code. It is used for testing. Kill makes it exit
// immediately with code -1.
func NewSleepProcess(dura time.Duration, code, pid int) Process {
	return &sleepProcess{
		stop:  make(chan struct{}),
		timer: time.NewTimer(dura),

		pid:  pid,
		code: int32(code),
		exit: -2,
	}
}

func (mock *sleepProcess) PID() int { return mock.pid }

func (mock *sleepProcess) Kill() error {
	// Ensure exit is still unset (-2), otherwise bail.
	if atomic.CompareAndSwapInt32(&mock.exit, -2, -1) {
		close(mock.stop)
		mock.timer.Stop()
	}
	return nil
}

func (mock *sleepProcess) Wait() ExitStatus {
	mock.once.Do(func() {
		select {
		case <-mock.stop:
		case <-mock.timer.C:
			atomic.CompareAndSwapInt32(&mock.exit, -2, mock.code)
		}
	})

	return ExitStatus{
		PID:  mock.pid,
		Code: int(atomic.LoadInt32(&mock.exit)),
	}
}
