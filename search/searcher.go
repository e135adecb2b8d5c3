package search

import (
	"github.com/Bobsaggetismine/BlackQuartz/board"
	"github.com/Bobsaggetismine/BlackQuartz/eval"
	"github.com/Bobsaggetismine/BlackQuartz/tt"
)

// Searcher holds everything a single think() call's PVS and quiescence
// recursion share: the transposition table, the cooperative stop flag, and
// running telemetry. It borrows the Position for the duration of a call;
// it never mutates the caller's copy, since board.MakeMove already writes
// only into a destination the search itself owns.
type Searcher struct {
	TT        *tt.Table
	Stop      *StopFlag
	Nodes     int64
	MaxQDepth int
}

// NewSearcher wires a fresh Searcher around an existing table and stop
// flag; both are owned by the driver and shared across think() calls.
func NewSearcher(table *tt.Table, stop *StopFlag) *Searcher {
	return &Searcher{TT: table, Stop: stop}
}

// Eval scores pos from the perspective of the side to move.
func (s *Searcher) Eval(pos *board.Position) int {
	return eval.Evaluate(pos, pos.WhiteMove)
}

func (s *Searcher) stopped() bool {
	return s.Stop != nil && s.Stop.IsRaised()
}

// ResetStats zeroes the per-think() telemetry the driver reads back after
// a completed call. The TT and stop flag are not touched here: TT
// persistence and stop-flag lifecycle are the driver's responsibility.
func (s *Searcher) ResetStats() {
	s.Nodes = 0
	s.MaxQDepth = 0
}
