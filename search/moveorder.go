// Package search implements the recursive principal-variation search core:
// move ordering, the quiescence extension, and the alpha-beta driver that
// ties them together with the transposition table.
package search

import (
	"golang.org/x/exp/slices"

	"github.com/Bobsaggetismine/BlackQuartz/board"
)

const (
	scoreTTMove    = 1_000_000
	scorePromotion = 200_000
	scoreCapture   = 100_000
	scoreOther     = 10_000
)

type orderedMove struct {
	move  board.Move
	score int
	index int
}

// OrderMoves scores every move in ml against ttMove and returns a new slice
// stably sorted by descending score; ties keep the generator's order.
func OrderMoves(ml []board.Move, ttMove board.Move) []board.Move {
	var scored = make([]orderedMove, len(ml))
	for i, m := range ml {
		scored[i] = orderedMove{move: m, score: moveScore(m, ttMove), index: i}
	}
	slices.SortStableFunc(scored, func(a, b orderedMove) bool {
		return a.score > b.score
	})
	var result = make([]board.Move, len(ml))
	for i, om := range scored {
		result[i] = om.move
	}
	return result
}

func moveScore(m, ttMove board.Move) int {
	var s = 0
	var counted = false
	if !ttMove.IsNull() && m == ttMove {
		s += scoreTTMove
	}
	if m.IsPromotion() {
		s += scorePromotion
		counted = true
	}
	if m.IsCapture() {
		s += scoreCapture
		counted = true
	}
	if !counted && m.Flags() != board.QUIET {
		s += scoreOther
	}
	return s
}
