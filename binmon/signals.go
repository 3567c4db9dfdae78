package binmon

import (
	"os"
	"os/signal"
	"syscall"
)

// TerminationSignals are the signals that make the supervisor kill its child
// and exit. They are all handled the same way.
var TerminationSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP}

// SignalWatcher subscribes to TerminationSignals.
type SignalWatcher struct {
	ch chan os.Signal
}

// WatchSignals subscribes to TerminationSignals. The subscription lasts until
// Stop is called; signals that arrive in between loop iterations stay queued.
func WatchSignals() *SignalWatcher {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, TerminationSignals...)

	return &SignalWatcher{ch}
}

// C returns the channel that receives termination signals.
func (w *SignalWatcher) C() <-chan os.Signal { return w.ch }

// Stop unsubscribes from the signals.
func (w *SignalWatcher) Stop() { signal.Stop(w.ch) }
