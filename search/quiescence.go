package search

import (
	"github.com/Bobsaggetismine/BlackQuartz/board"
	"github.com/Bobsaggetismine/BlackQuartz/tt"
)

const maxQDepth = 50

// pieceValue is a centipawn material table used only to size delta pruning;
// it deliberately mirrors the evaluator's middlegame material scale rather
// than importing package eval, keeping quiescence free of a dependency on
// the tapered evaluator's internals.
var pieceValue = [7]int{
	board.Empty:  0,
	board.Pawn:   100,
	board.Knight: 320,
	board.Bishop: 330,
	board.Rook:   500,
	board.Queen:  900,
	board.King:   20000,
}

func moveValue(m board.Move) int {
	var result = pieceValue[m.CapturedPiece()]
	if promo := m.Promotion(); promo != board.Empty {
		result += pieceValue[promo] - pieceValue[board.Pawn]
	}
	return result
}

const deltaMargin = 100

// Quiescence extends the search past the main horizon along tactical lines
// only: captures, promotions, en passant, and (when in check) every legal
// response. It is the leaf of PVS whenever depth drops to zero or below.
func (s *Searcher) Quiescence(pos *board.Position, ply, qDepth, alpha, beta int) int {
	s.Nodes++
	if s.stopped() {
		return alpha
	}
	if qDepth > s.MaxQDepth {
		s.MaxQDepth = qDepth
	}

	var inCheck = pos.InCheck()
	var standPat = s.Eval(pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	if qDepth >= maxQDepth {
		return alpha
	}

	var buffer [board.MaxMoves]board.Move
	var child board.Position

	if inCheck {
		var ml = board.GenerateLegalMoves(pos, buffer[:0])
		if len(ml) == 0 {
			return -tt.MATE + ply
		}
		for _, m := range ml {
			pos.MakeMove(m, &child)
			var score = -s.Quiescence(&child, ply+1, qDepth+1, -beta, -alpha)
			if s.stopped() {
				return alpha
			}
			if score >= beta {
				return beta
			}
			if score > alpha {
				alpha = score
			}
		}
		return alpha
	}

	var ml = board.GenerateCaptures(pos, buffer[:0])
	if len(ml) == 0 {
		return alpha
	}
	ml = OrderMoves(ml, board.MoveEmpty)
	for _, m := range ml {
		var gain = moveValue(m)
		if standPat+gain+deltaMargin < alpha {
			continue
		}
		if !pos.MakeMove(m, &child) {
			continue
		}
		var score = -s.Quiescence(&child, ply+1, qDepth+1, -beta, -alpha)
		if s.stopped() {
			return alpha
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}
