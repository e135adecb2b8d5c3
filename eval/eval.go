package eval

import "github.com/Bobsaggetismine/BlackQuartz/board"

const (
	// MaxPhase is the fully-middlegame end of the 24-point taper.
	MaxPhase = 24
)

var phaseWeight = [7]int{
	board.Empty:  0,
	board.Pawn:   0,
	board.Knight: 1,
	board.Bishop: 1,
	board.Rook:   2,
	board.Queen:  4,
	board.King:   0,
}

var materialMg = [7]int{board.Pawn: 100, board.Knight: 320, board.Bishop: 330, board.Rook: 500, board.Queen: 900}
var materialEg = [7]int{board.Pawn: 120, board.Knight: 300, board.Bishop: 320, board.Rook: 520, board.Queen: 900}

var mobilityWeight = map[int]Score{
	board.Knight: S(4, 4),
	board.Bishop: S(4, 4),
	board.Rook:   S(2, 3),
	board.Queen:  S(1, 2),
}

const (
	doubledPenalty   = -12
	doubledPenaltyEg = -10
	isolatedPenalty  = -10
	isolatedPenaltyEg = -8
	connectedBonus   = 4
	connectedBonusEg = 6
	passedBaseMg     = 8
	passedBaseEg     = 18
	passedAdvanceMg  = 2
	passedAdvanceEg  = 6

	bishopPairMg = 25
	bishopPairEg = 35

	rookOpenFile     = 18
	rookSemiOpenFile = 10
	rook7thRank      = 15

	kingShieldPenaltyUnit = -10
	kingNoPawnFilePenalty = -14
	kingPressureUnit      = -2

	checkPenalty = 20
	tempoBonus   = 10
)

// Evaluate returns the static score of pos from the perspective of us:
// positive means good for us. It reads only pos and has no hidden state.
func Evaluate(pos *board.Position, us bool) int {
	var whiteRelative = evaluateWhiteRelative(pos)
	if us {
		return whiteRelative
	}
	return -whiteRelative
}

func evaluateWhiteRelative(pos *board.Position) int {
	var s Score

	s += materialAndPST(pos, true)
	s -= materialAndPST(pos, false)

	s += mobility(pos, true)
	s -= mobility(pos, false)

	s += pawnStructure(pos, true)
	s -= pawnStructure(pos, false)

	if board.PopCount(pos.Bishops&pos.White) >= 2 {
		s += S(bishopPairMg, bishopPairEg)
	}
	if board.PopCount(pos.Bishops&pos.Black) >= 2 {
		s -= S(bishopPairMg, bishopPairEg)
	}

	var rookWhite = rookTerms(pos, true)
	var rookBlack = rookTerms(pos, false)
	s += S(rookWhite, rookWhite/2)
	s -= S(rookBlack, rookBlack/2)

	var ksWhite = kingSafety(pos, true)
	var ksBlack = kingSafety(pos, false)
	s += S(ksWhite-ksBlack, 0)

	var mgOnly = 0
	if pos.InCheck() {
		if pos.WhiteMove {
			mgOnly -= checkPenalty
		} else {
			mgOnly += checkPenalty
		}
	}
	if pos.WhiteMove {
		mgOnly += tempoBonus
	} else {
		mgOnly -= tempoBonus
	}
	s += S(mgOnly, 0)

	var phase = gamePhase(pos)
	return (s.Middle()*phase + s.End()*(MaxPhase-phase)) / MaxPhase
}

func gamePhase(pos *board.Position) int {
	var phase = 0
	for x := pos.White | pos.Black; x != 0; x &= x - 1 {
		var sq = board.FirstOne(x)
		phase += phaseWeight[pos.WhatPiece(sq)]
	}
	if phase > MaxPhase {
		phase = MaxPhase
	}
	return phase
}

func materialAndPST(pos *board.Position, white bool) Score {
	var s Score
	for x := pos.PiecesByColor(white); x != 0; x &= x - 1 {
		var sq = board.FirstOne(x)
		var piece = pos.WhatPiece(sq)
		if piece == board.King {
			s += pst(board.King, mirror(sq, white))
			continue
		}
		s += S(materialMg[piece], materialEg[piece])
		s += pst(piece, mirror(sq, white))
	}
	return s
}

func mirror(sq int, white bool) int {
	if white {
		return sq
	}
	return board.FlipSquare(sq)
}

func mobility(pos *board.Position, white bool) Score {
	var s Score
	var own = pos.PiecesByColor(white)
	var occ = pos.White | pos.Black
	var notOwn = ^own

	for x := pos.Knights & own; x != 0; x &= x - 1 {
		var sq = board.FirstOne(x)
		var count = board.PopCount(board.KnightAttacks[sq] & notOwn)
		s += mobilityWeight[board.Knight].Times(count)
	}
	for x := pos.Bishops & own; x != 0; x &= x - 1 {
		var sq = board.FirstOne(x)
		var count = board.PopCount(board.BishopAttacks(sq, occ) & notOwn)
		s += mobilityWeight[board.Bishop].Times(count)
	}
	for x := pos.Rooks & own; x != 0; x &= x - 1 {
		var sq = board.FirstOne(x)
		var count = board.PopCount(board.RookAttacks(sq, occ) & notOwn)
		s += mobilityWeight[board.Rook].Times(count)
	}
	for x := pos.Queens & own; x != 0; x &= x - 1 {
		var sq = board.FirstOne(x)
		var count = board.PopCount(board.QueenAttacks(sq, occ) & notOwn)
		s += mobilityWeight[board.Queen].Times(count)
	}
	return s
}

func pawnStructure(pos *board.Position, white bool) Score {
	var s Score
	var ownPawns = pos.Pawns & pos.PiecesByColor(white)
	var oppPawns = pos.Pawns & pos.PiecesByColor(!white)

	for file := 0; file < 8; file++ {
		var onFile = board.PopCount(ownPawns & board.FileMask[file])
		if onFile > 1 {
			s += S(doubledPenalty*(onFile-1), doubledPenaltyEg*(onFile-1))
		}
	}

	for x := ownPawns; x != 0; x &= x - 1 {
		var sq = board.FirstOne(x)
		var file = board.File(sq)
		var rank = board.Rank(sq)

		var adjacentFiles uint64
		if file > board.FileA {
			adjacentFiles |= board.FileMask[file-1]
		}
		if file < board.FileH {
			adjacentFiles |= board.FileMask[file+1]
		}

		if ownPawns&adjacentFiles == 0 {
			s += S(isolatedPenalty, isolatedPenaltyEg)
		}

		if (ownPawns & adjacentFiles & board.RankMask[rank]) != 0 {
			s += S(connectedBonus, connectedBonusEg)
		}

		var aheadFiles = adjacentFiles | board.FileMask[file]
		var aheadMask uint64
		if white {
			for r := rank + 1; r <= board.Rank8; r++ {
				aheadMask |= board.RankMask[r]
			}
		} else {
			for r := rank - 1; r >= board.Rank1; r-- {
				aheadMask |= board.RankMask[r]
			}
		}
		if (oppPawns & aheadFiles & aheadMask) == 0 {
			var forward int
			if white {
				forward = rank
			} else {
				forward = 7 - rank
			}
			s += S(passedBaseMg+passedAdvanceMg*forward, passedBaseEg+passedAdvanceEg*forward)
		}
	}
	return s
}

func rookTerms(pos *board.Position, white bool) int {
	var total = 0
	var ownPawns = pos.Pawns & pos.PiecesByColor(white)
	var oppPawns = pos.Pawns & pos.PiecesByColor(!white)
	var seventh = board.Rank7Mask
	if !white {
		seventh = board.Rank2Mask
	}

	for x := pos.Rooks & pos.PiecesByColor(white); x != 0; x &= x - 1 {
		var sq = board.FirstOne(x)
		var file = board.File(sq)
		var ownOnFile = ownPawns & board.FileMask[file]
		var oppOnFile = oppPawns & board.FileMask[file]

		if ownOnFile == 0 && oppOnFile == 0 {
			total += rookOpenFile
		} else if ownOnFile == 0 && oppOnFile != 0 {
			total += rookSemiOpenFile
		}

		if (board.SquareMask[sq] & seventh) != 0 {
			total += rook7thRank
		}
	}
	return total
}

func kingSafety(pos *board.Position, white bool) int {
	var ownPawns = pos.Pawns & pos.PiecesByColor(white)
	var kingSq = board.FirstOne(pos.Kings & pos.PiecesByColor(white))
	var kingFile = board.File(kingSq)
	var kingRank = board.Rank(kingSq)

	var shield = 0
	for df := -1; df <= 1; df++ {
		var f = kingFile + df
		if f < board.FileA || f > board.FileH {
			continue
		}
		for dr := 1; dr <= 2; dr++ {
			var r int
			if white {
				r = kingRank + dr
			} else {
				r = kingRank - dr
			}
			if r < board.Rank1 || r > board.Rank8 {
				continue
			}
			var sq = r*8 + f
			if (ownPawns & board.SquareMask[sq]) != 0 {
				shield++
			}
		}
	}

	var penalty = kingShieldPenaltyUnit * (6 - shield)
	if (ownPawns & board.FileMask[kingFile]) == 0 {
		penalty += kingNoPawnFilePenalty
	}

	var zone = board.KingAttacks[kingSq] | board.SquareMask[kingSq]
	var pressure = 0
	for x := zone; x != 0; x &= x - 1 {
		var sq = board.FirstOne(x)
		pressure += board.PopCount(pos.AttackersTo(sq) & pos.PiecesByColor(!white))
	}
	penalty += kingPressureUnit * pressure

	return penalty
}
