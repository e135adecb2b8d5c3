package search

import "sync/atomic"

// StopFlag is a small object holding one atomic bool, owned by the
// iterative driver and borrowed by the timer agent for the duration of a
// single think() call. It is never a package-level singleton: every
// concurrent think() gets its own.
type StopFlag struct {
	raised atomic.Bool
}

func (f *StopFlag) Raise() {
	f.raised.Store(true)
}

func (f *StopFlag) Reset() {
	f.raised.Store(false)
}

func (f *StopFlag) IsRaised() bool {
	return f.raised.Load()
}
