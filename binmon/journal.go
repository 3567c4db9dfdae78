package binmon

// Journaler describes an event logger. Implementations must be safe to use
// from multiple goroutines, since the Detector and the Supervisor write
// concurrently.
type Journaler interface {
	Write(Event) error
}

// JournalerFunc is a function that implements Journaler.
type JournalerFunc func(Event) error

// Write calls f(ev).
func (f JournalerFunc) Write(ev Event) error { return f(ev) }
