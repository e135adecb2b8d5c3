package timecontrol

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestBudgetWithMovesToGo(t *testing.T) {
	var b = Budget(Limits{Time: 10 * time.Second, MovesToGo: 7, Overhead: 0})
	var want = 10 * time.Second / time.Duration(7+3)
	if b != want {
		t.Fatalf("got %v want %v", b, want)
	}
}

func TestBudgetFallsBackTo30MoveHorizon(t *testing.T) {
	var b = Budget(Limits{Time: 30 * time.Second, Overhead: 0})
	var want = time.Second
	if b != want {
		t.Fatalf("got %v want %v", b, want)
	}
}

func TestBudgetClampedByMaxFraction(t *testing.T) {
	var b = Budget(Limits{Time: 100 * time.Millisecond, MovesToGo: 1, Overhead: 0})
	if b > 100*time.Millisecond/maxFraction {
		t.Fatalf("budget %v exceeds max fraction of remaining time", b)
	}
}

func TestBudgetNeverNegative(t *testing.T) {
	var b = Budget(Limits{Time: 1 * time.Millisecond, MovesToGo: 1, Overhead: time.Second})
	if b < 0 {
		t.Fatalf("budget must not be negative, got %v", b)
	}
}

type flag struct{ raised atomic.Bool }

func (f *flag) Raise() { f.raised.Store(true) }

func TestRunRaisesStopOnTimeout(t *testing.T) {
	var f = &flag{}
	Run(10*time.Millisecond, f, func() {
		time.Sleep(50 * time.Millisecond)
	})
	if !f.raised.Load() {
		t.Fatalf("expected timer to raise stop after deadline elapsed")
	}
}

func TestRunDoesNotRaiseStopOnEarlyCompletion(t *testing.T) {
	var f = &flag{}
	Run(200*time.Millisecond, f, func() {})
	if f.raised.Load() {
		t.Fatalf("did not expect stop to be raised when work finishes early")
	}
}
