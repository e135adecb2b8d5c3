// Package timecontrol converts UCI clock state into a per-move time budget
// and arms the timer agent that raises the search's stop flag when that
// budget elapses.
package timecontrol

import "time"

const (
	// DefaultOverhead absorbs scheduling/IO latency around a move so the
	// engine doesn't lose on time from a budget cut exactly to the wire.
	DefaultOverhead = 5 * time.Millisecond
	minBudget       = 2 * time.Millisecond
	maxFraction     = 3
)

// Limits mirrors the subset of "go" command fields the budget formula
// needs: side_time/side_inc for the side to move, and movestogo (0 if the
// game has no time control announcing one).
type Limits struct {
	Time       time.Duration
	Inc        time.Duration
	MovesToGo  int
	Overhead   time.Duration
}

// Budget applies §4.7's formula: with a known movestogo, split the
// remaining time over the moves left plus a 3-move reserve; otherwise
// assume a 30-move game. The result is capped to a fraction of the
// remaining clock so one move can never spend it all, floored at
// minBudget, and finally has the scheduling overhead subtracted.
func Budget(l Limits) time.Duration {
	var t = l.Time
	if t < 0 {
		t = 0
	}
	var inc = l.Inc
	if inc < 0 {
		inc = 0
	}

	var budget time.Duration
	if l.MovesToGo > 0 {
		budget = t/time.Duration(l.MovesToGo+3) + inc/2
	} else {
		budget = t/30 + inc/2
	}

	if maxFraction > 0 {
		var ceiling = t / maxFraction
		if budget > ceiling {
			budget = ceiling
		}
	}
	if budget < minBudget {
		budget = minBudget
	}

	budget -= l.Overhead
	if budget < 0 {
		budget = 0
	}
	return budget
}
