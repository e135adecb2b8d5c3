package board

// SquareMask entries are package-level vars, not constants, so these are
// computed once in init rather than as untyped consts.
var (
	f1g1Mask, b1d1Mask, f8g8Mask, b8d8Mask uint64

	whiteKingSideCastle  Move
	whiteQueenSideCastle Move
	blackKingSideCastle  Move
	blackQueenSideCastle Move
)

func init() {
	f1g1Mask = SquareMask[SquareF1] | SquareMask[SquareG1]
	b1d1Mask = SquareMask[SquareB1] | SquareMask[SquareC1] | SquareMask[SquareD1]
	f8g8Mask = SquareMask[SquareF8] | SquareMask[SquareG8]
	b8d8Mask = SquareMask[SquareB8] | SquareMask[SquareC8] | SquareMask[SquareD8]

	whiteKingSideCastle = makeSpecialMove(SquareE1, SquareG1, King, Empty, specialCastle)
	whiteQueenSideCastle = makeSpecialMove(SquareE1, SquareC1, King, Empty, specialCastle)
	blackKingSideCastle = makeSpecialMove(SquareE8, SquareG8, King, Empty, specialCastle)
	blackQueenSideCastle = makeSpecialMove(SquareE8, SquareC8, King, Empty, specialCastle)
}

func addPromotions(ml []Move, move Move) []Move {
	return append(ml,
		move^Move(Queen<<18),
		move^Move(Rook<<18),
		move^Move(Bishop<<18),
		move^Move(Knight<<18))
}

// pawnGeometry collapses White's and Black's mirrored pawn-move arithmetic
// into one set of signed offsets: forward is the one-square push, capL/capR
// the two diagonal captures, startRank is the rank a double push may leave
// from, and lastRank is the rank a pawn stands on when its next push or
// capture promotes.
type pawnGeometry struct {
	forward, capL, capR, startRank, lastRank int
}

func geometryFor(white bool) pawnGeometry {
	if white {
		return pawnGeometry{forward: 8, capL: 7, capR: 9, startRank: Rank2, lastRank: Rank7}
	}
	return pawnGeometry{forward: -8, capL: -9, capR: -7, startRank: Rank7, lastRank: Rank2}
}

// walkPawns appends the side to move's pawn pushes and captures, sharing
// the same body for both colors and for the tactical-only (GenerateCaptures)
// and full (GenerateMoves) generators; includeQuietPushes decides whether
// non-promoting pushes belong in the result.
func walkPawns(p *Position, ml []Move, g pawnGeometry, oppPieces, allPieces uint64, includeQuietPushes bool) []Move {
	var ownPawns = p.Pawns & p.OwnPieces()
	var promoting = ownPawns & RankMask[g.lastRank]
	var advancing = ownPawns &^ RankMask[g.lastRank]

	for fromBB := promoting; fromBB != 0; fromBB &= fromBB - 1 {
		var from = FirstOne(fromBB)
		var to = from + g.forward
		if (SquareMask[to] & allPieces) == 0 {
			ml = addPromotions(ml, makeMove(from, to, Pawn, Empty))
		}
		ml = appendPawnCaptures(p, ml, g, from, oppPieces, true)
	}

	for fromBB := advancing; fromBB != 0; fromBB &= fromBB - 1 {
		var from = FirstOne(fromBB)
		if includeQuietPushes {
			var to = from + g.forward
			if (SquareMask[to] & allPieces) == 0 {
				ml = append(ml, makeMove(from, to, Pawn, Empty))
				if Rank(from) == g.startRank {
					var to2 = from + 2*g.forward
					if (SquareMask[to2] & allPieces) == 0 {
						ml = append(ml, makeMove(from, to2, Pawn, Empty))
					}
				}
			}
		}
		ml = appendPawnCaptures(p, ml, g, from, oppPieces, false)
	}

	return ml
}

func appendPawnCaptures(p *Position, ml []Move, g pawnGeometry, from int, oppPieces uint64, promotes bool) []Move {
	if File(from) > FileA {
		var to = from + g.capL
		if (SquareMask[to] & oppPieces) != 0 {
			var m = makeMove(from, to, Pawn, p.WhatPiece(to))
			if promotes {
				ml = addPromotions(ml, m)
			} else {
				ml = append(ml, m)
			}
		}
	}
	if File(from) < FileH {
		var to = from + g.capR
		if (SquareMask[to] & oppPieces) != 0 {
			var m = makeMove(from, to, Pawn, p.WhatPiece(to))
			if promotes {
				ml = addPromotions(ml, m)
			} else {
				ml = append(ml, m)
			}
		}
	}
	return ml
}

func appendEnPassant(p *Position, ml []Move) []Move {
	if p.EpSquare == SquareNone {
		return ml
	}
	var ownPawns = p.Pawns & p.OwnPieces()
	for fromBB := PawnAttacks(p.EpSquare, !p.WhiteMove) & ownPawns; fromBB != 0; fromBB &= fromBB - 1 {
		var from = FirstOne(fromBB)
		ml = append(ml, makeSpecialMove(from, p.EpSquare, Pawn, Pawn, specialEnPassant))
	}
	return ml
}

// jumperAndSlider describes one non-pawn, non-king piece type's move
// generation as data: which squares hold it, and how to compute its reach
// from a given square under the current occupancy. Driving Knight, Bishop,
// Rook and Queen through the same loop over this table (instead of four
// hand-written copies) is what GenerateMoves and GenerateCaptures share.
type jumperAndSlider struct {
	piece   int
	board   uint64
	attacks func(from int) uint64
}

func pieceGenerators(p *Position, ownPieces, allPieces uint64) [4]jumperAndSlider {
	return [4]jumperAndSlider{
		{Knight, p.Knights & ownPieces, func(from int) uint64 { return KnightAttacks[from] }},
		{Bishop, p.Bishops & ownPieces, func(from int) uint64 { return BishopAttacks(from, allPieces) }},
		{Rook, p.Rooks & ownPieces, func(from int) uint64 { return RookAttacks(from, allPieces) }},
		{Queen, p.Queens & ownPieces, func(from int) uint64 { return QueenAttacks(from, allPieces) }},
	}
}

func appendPieceMoves(p *Position, ml []Move, ownPieces, allPieces, target uint64) []Move {
	for _, gen := range pieceGenerators(p, ownPieces, allPieces) {
		for fromBB := gen.board; fromBB != 0; fromBB &= fromBB - 1 {
			var from = FirstOne(fromBB)
			for toBB := gen.attacks(from) & target; toBB != 0; toBB &= toBB - 1 {
				var to = FirstOne(toBB)
				ml = append(ml, makeMove(from, to, gen.piece, p.WhatPiece(to)))
			}
		}
	}
	return ml
}

func appendKingMoves(p *Position, ml []Move, ownPieces, target uint64) []Move {
	var from = FirstOne(p.Kings & ownPieces)
	for toBB := KingAttacks[from] & target; toBB != 0; toBB &= toBB - 1 {
		var to = FirstOne(toBB)
		ml = append(ml, makeMove(from, to, King, p.WhatPiece(to)))
	}
	return ml
}

func appendCastles(p *Position, ml []Move, allPieces uint64) []Move {
	if p.WhiteMove {
		if (p.CastleRights&WhiteKingSide) != 0 &&
			(allPieces&f1g1Mask) == 0 &&
			!p.isAttackedBySide(SquareE1, false) &&
			!p.isAttackedBySide(SquareF1, false) {
			ml = append(ml, whiteKingSideCastle)
		}
		if (p.CastleRights&WhiteQueenSide) != 0 &&
			(allPieces&b1d1Mask) == 0 &&
			!p.isAttackedBySide(SquareE1, false) &&
			!p.isAttackedBySide(SquareD1, false) {
			ml = append(ml, whiteQueenSideCastle)
		}
		return ml
	}
	if (p.CastleRights&BlackKingSide) != 0 &&
		(allPieces&f8g8Mask) == 0 &&
		!p.isAttackedBySide(SquareE8, true) &&
		!p.isAttackedBySide(SquareF8, true) {
		ml = append(ml, blackKingSideCastle)
	}
	if (p.CastleRights&BlackQueenSide) != 0 &&
		(allPieces&b8d8Mask) == 0 &&
		!p.isAttackedBySide(SquareE8, true) &&
		!p.isAttackedBySide(SquareD8, true) {
		ml = append(ml, blackQueenSideCastle)
	}
	return ml
}

// GenerateMoves appends every pseudo-legal move (own king may still be left
// in check; MakeMove is the legality filter) to ml and returns the result.
func GenerateMoves(p *Position, ml []Move) []Move {
	var ownPieces, oppPieces = p.OwnPieces(), p.OppPieces()
	var allPieces = p.White | p.Black

	ml = appendEnPassant(p, ml)
	ml = walkPawns(p, ml, geometryFor(p.WhiteMove), oppPieces, allPieces, true)
	ml = appendPieceMoves(p, ml, ownPieces, allPieces, ^ownPieces)
	ml = appendKingMoves(p, ml, ownPieces, ^ownPieces)
	ml = appendCastles(p, ml, allPieces)
	return ml
}

// GenerateCaptures appends tactical moves only: captures, en-passant, and
// promotions (including quiet pushes to the last rank). Used by quiescence,
// which excludes quiet moves outside of check.
func GenerateCaptures(p *Position, ml []Move) []Move {
	var ownPieces, oppPieces = p.OwnPieces(), p.OppPieces()
	var allPieces = p.White | p.Black

	ml = appendEnPassant(p, ml)
	ml = walkPawns(p, ml, geometryFor(p.WhiteMove), oppPieces, allPieces, false)
	ml = appendPieceMoves(p, ml, ownPieces, allPieces, oppPieces)
	ml = appendKingMoves(p, ml, ownPieces, oppPieces)
	return ml
}

// GenerateLegalMoves filters GenerateMoves down to moves that don't leave
// the mover's own king in check.
func GenerateLegalMoves(p *Position, ml []Move) []Move {
	var buffer [MaxMoves]Move
	var pseudo = GenerateMoves(p, buffer[:0])
	var child Position
	for _, m := range pseudo {
		if p.MakeMove(m, &child) {
			ml = append(ml, m)
		}
	}
	return ml
}
