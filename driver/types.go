// Package driver implements iterative deepening with aspiration windows
// on top of package search's PVS core, and reconstructs the principal
// variation from the transposition table after each completed depth.
package driver

import "github.com/Bobsaggetismine/BlackQuartz/board"

const maxPVLength = 64

// PVLine is a bounded principal-variation buffer produced by one
// completed iteration.
type PVLine struct {
	Moves [maxPVLength]board.Move
	Len   int
}

// Slice returns the populated prefix of Moves.
func (l PVLine) Slice() []board.Move {
	return l.Moves[:l.Len]
}

// Stats is the telemetry the driver hands back after a think() call.
type Stats struct {
	Nodes         int64
	ElapsedMicros int64
	MaxQDepth     int
	Depth         int
	Score         int
	MateFound     bool
	SelectedMove  board.Move
	PV            PVLine
}
