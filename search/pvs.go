package search

import (
	"github.com/Bobsaggetismine/BlackQuartz/board"
	"github.com/Bobsaggetismine/BlackQuartz/tt"
)

const (
	reverseFutilityMargin = 220
	futilityMargin        = 150
)

// PVS is the recursive principal-variation alpha-beta core: it probes and
// stores the transposition table, applies reverse-futility/futility
// pruning at shallow non-PV nodes, orders moves with the TT best move
// first, and searches later moves with a reduced null-window before
// re-searching in full when they beat alpha. reduced reports whether the
// move that led to this node was itself already late-move-reduced, which
// suppresses a second reduction in the same line.
func (s *Searcher) PVS(pos *board.Position, ply, depth, alpha, beta int, reduced bool) int {
	s.Nodes++
	if s.stopped() {
		return alpha
	}

	if depth <= 0 {
		return s.Quiescence(pos, ply, 0, alpha, beta)
	}

	var alpha0 = alpha
	var beta0 = beta

	var ttMove = board.MoveEmpty
	if entry, ok := s.TT.Probe(pos.Key); ok {
		ttMove = entry.Move
		if int(entry.Depth) >= depth {
			var ttScore = tt.FromTT(int(entry.Score), ply)
			switch entry.Bound {
			case tt.EXACT:
				return ttScore
			case tt.LOWER:
				if ttScore > alpha {
					alpha = ttScore
				}
			case tt.UPPER:
				if ttScore < beta {
					beta = ttScore
				}
			}
			if alpha >= beta {
				return alpha
			}
		}
	}

	var pvNode = beta-alpha > 1
	var inCheck = pos.InCheck()

	if !pvNode && depth <= 2 && !inCheck {
		var e = s.Eval(pos)
		if e+reverseFutilityMargin*depth <= alpha {
			return s.Quiescence(pos, ply, 0, alpha, beta)
		}
		if e-futilityMargin*depth >= beta {
			return beta
		}
	}

	var buffer [board.MaxMoves]board.Move
	var ml = board.GenerateLegalMoves(pos, buffer[:0])
	if len(ml) == 0 {
		if inCheck {
			return -tt.MATE + ply
		}
		return 0
	}
	ml = OrderMoves(ml, ttMove)

	var bestMove = board.MoveEmpty
	var child board.Position

	for i, m := range ml {
		pos.MakeMove(m, &child)

		var r = 0
		if !pvNode && i > 3 && depth >= 3 && !reduced && !m.IsCapture() {
			r = 1
		}

		var score int
		var givesCheck = child.InCheck()
		if i == 0 || givesCheck {
			score = -s.PVS(&child, ply+1, depth-1, -beta, -alpha, reduced)
		} else {
			score = -s.PVS(&child, ply+1, depth-1-r, -alpha-1, -alpha, r > 0)
			if score > alpha && r > 0 {
				score = -s.PVS(&child, ply+1, depth-1, -alpha-1, -alpha, false)
			}
			if score > alpha && score < beta {
				score = -s.PVS(&child, ply+1, depth-1, -beta, -alpha, false)
			}
		}

		if s.stopped() {
			return alpha
		}

		if score > alpha {
			alpha = score
			bestMove = m
		}

		if alpha >= beta {
			s.TT.Store(pos.Key, depth, tt.ToTT(score, ply), tt.LOWER, m)
			return score
		}
	}

	var bound tt.Bound
	switch {
	case alpha <= alpha0:
		bound = tt.UPPER
	case alpha >= beta0:
		bound = tt.LOWER
	default:
		bound = tt.EXACT
	}
	s.TT.Store(pos.Key, depth, tt.ToTT(alpha, ply), bound, bestMove)

	return alpha
}
