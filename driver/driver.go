package driver

import (
	"time"

	"github.com/Bobsaggetismine/BlackQuartz/board"
	"github.com/Bobsaggetismine/BlackQuartz/search"
	"github.com/Bobsaggetismine/BlackQuartz/tt"
)

const (
	aspirationDelta       = 35
	aspirationAttempts    = 6
	aspirationMateGuard   = tt.MATE - 2000
	mateFoundThreshold    = tt.MATE - 256
)

// Driver runs iterative deepening over a shared Searcher, widening an
// aspiration window around the previous iteration's score and extracting
// the principal variation from the transposition table after every
// completed depth.
type Driver struct {
	Searcher *search.Searcher
}

// New wires a Driver around an existing Searcher; the Searcher's TT and
// stop flag are expected to outlive individual Think calls.
func New(s *search.Searcher) *Driver {
	return &Driver{Searcher: s}
}

// Think runs the iterative-deepening loop from depth 1 to maxDepth,
// stopping early if the stop flag is raised, and returns the telemetry of
// the deepest depth completed.
func (d *Driver) Think(pos *board.Position, maxDepth int) Stats {
	var start = time.Now()
	d.Searcher.ResetStats()

	var stats Stats
	var prevScore = 0

	for depth := 1; depth <= maxDepth; depth++ {
		var alpha, beta = -tt.MATE, tt.MATE
		var aspirate = depth >= 2 && abs(prevScore) < aspirationMateGuard
		var delta = aspirationDelta
		if aspirate {
			alpha = maxInt(-tt.MATE, prevScore-delta)
			beta = minInt(tt.MATE, prevScore+delta)
		}

		var score int
		var attempts = 1
		if aspirate {
			attempts = aspirationAttempts
		}

		for attempt := 0; attempt < attempts; attempt++ {
			score = d.Searcher.PVS(pos, 0, depth, alpha, beta, false)

			if d.Searcher.Stop.IsRaised() {
				break
			}
			if !aspirate {
				break
			}
			if score > alpha && score < beta {
				break
			}

			delta *= 2
			if delta >= tt.MATE {
				alpha, beta = -tt.MATE, tt.MATE
				score = d.Searcher.PVS(pos, 0, depth, alpha, beta, false)
				break
			}
			alpha = maxInt(-tt.MATE, prevScore-delta)
			beta = minInt(tt.MATE, prevScore+delta)
		}

		stats.Nodes = d.Searcher.Nodes
		stats.ElapsedMicros = time.Since(start).Microseconds()
		stats.MaxQDepth = d.Searcher.MaxQDepth

		if d.Searcher.Stop.IsRaised() {
			break
		}

		var pv = d.extractPV(*pos, depth)
		stats.Depth = depth
		stats.Score = score
		stats.PV = pv
		if pv.Len > 0 {
			stats.SelectedMove = pv.Moves[0]
		} else {
			stats.SelectedMove = board.MoveEmpty
		}
		stats.MateFound = abs(score) >= mateFoundThreshold

		prevScore = score
	}

	return stats
}

func (d *Driver) extractPV(pos board.Position, depth int) PVLine {
	var pv PVLine
	var seen = map[uint64]bool{pos.Key: true}
	var cur = pos

	for pv.Len < depth && pv.Len < maxPVLength {
		var entry, ok = d.Searcher.TT.Probe(cur.Key)
		if !ok || entry.Move.IsNull() {
			break
		}
		var child board.Position
		if !cur.MakeMove(entry.Move, &child) {
			break
		}
		pv.Moves[pv.Len] = entry.Move
		pv.Len++
		if seen[child.Key] {
			break
		}
		seen[child.Key] = true
		cur = child
	}
	return pv
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
