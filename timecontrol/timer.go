package timecontrol

import (
	"time"

	"golang.org/x/sync/errgroup"
)

// StopRaiser is the one method the timer agent needs from the search's
// stop flag; the timer package never imports package search to keep the
// dependency pointing the other way.
type StopRaiser interface {
	Raise()
}

// Run executes work on the calling goroutine while a second, background
// timer agent races a budget deadline against work's completion. If the
// deadline elapses first, the timer raises stop; either way the timer
// agent is joined before Run returns, so no agent is ever leaked past a
// single think() call.
func Run(budget time.Duration, stop StopRaiser, work func()) {
	var g errgroup.Group
	var done = make(chan struct{})

	g.Go(func() error {
		var timer = time.NewTimer(budget)
		defer timer.Stop()
		select {
		case <-timer.C:
			stop.Raise()
		case <-done:
		}
		return nil
	})

	work()
	close(done)
	_ = g.Wait()
}
