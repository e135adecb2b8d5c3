package board

import (
	"bytes"
	"fmt"
	"math/rand"
	"strconv"
	s "strings"
	"unicode"
)

type coloredPiece struct {
	Type int
	Side bool
}

var castleMask [64]int

func createPosition(board [64]coloredPiece, whiteMove bool,
	castleRights, ep, fifty int) (Position, bool) {
	var p = Position{
		WhiteMove:    whiteMove,
		CastleRights: castleRights,
		EpSquare:     ep,
		Rule50:       fifty,
		LastMove:     MoveEmpty,
	}

	for sq, piece := range board {
		if piece.Type != Empty {
			p.toggle(piece.Type, piece.Side, sq)
		}
	}

	p.Key = p.computeKey()
	p.Checkers = p.computeCheckers()

	if !p.isLegal() {
		return Position{}, false
	}
	return p, true
}

// NewPositionFromFEN parses the first four-to-six space-separated FEN
// fields into a Position. Malformed input is reported through the
// returned error rather than a panic; callers keep the last good position
// on failure, per the command interpreter's error-handling policy.
func NewPositionFromFEN(fen string) (Position, error) {
	var tokens = s.Fields(fen)
	if len(tokens) < 4 {
		return Position{}, fmt.Errorf("parse fen failed: %q", fen)
	}

	var board [64]coloredPiece
	var i = 0
	for _, ch := range tokens[0] {
		if unicode.IsDigit(ch) {
			var n, _ = strconv.Atoi(string(ch))
			i += n
		} else if unicode.IsLetter(ch) {
			if i >= 64 {
				return Position{}, fmt.Errorf("parse fen failed: %q", fen)
			}
			board[FlipSquare(i)] = parsePiece(ch)
			i++
		}
	}

	var whiteMove = tokens[1] == "w"

	var sCastleRights = tokens[2]
	var cr = 0
	if s.Contains(sCastleRights, "K") {
		cr |= WhiteKingSide
	}
	if s.Contains(sCastleRights, "Q") {
		cr |= WhiteQueenSide
	}
	if s.Contains(sCastleRights, "k") {
		cr |= BlackKingSide
	}
	if s.Contains(sCastleRights, "q") {
		cr |= BlackQueenSide
	}

	var epSquare = ParseSquare(tokens[3])

	var rule50 = 0
	if len(tokens) > 4 {
		rule50, _ = strconv.Atoi(tokens[4])
	}

	var pos, ok = createPosition(board, whiteMove, cr, epSquare, rule50)
	if !ok {
		return Position{}, fmt.Errorf("illegal fen position: %q", fen)
	}
	return pos, nil
}

func parsePiece(ch rune) coloredPiece {
	var white = unicode.IsUpper(ch)
	var pieceType int
	switch unicode.ToLower(ch) {
	case 'p':
		pieceType = Pawn
	case 'n':
		pieceType = Knight
	case 'b':
		pieceType = Bishop
	case 'r':
		pieceType = Rook
	case 'q':
		pieceType = Queen
	case 'k':
		pieceType = King
	}
	return coloredPiece{Type: pieceType, Side: white}
}

func (p *Position) String() string {
	var sb bytes.Buffer
	var emptyCount = 0

	for i := 0; i < 64; i++ {
		var sq = FlipSquare(i)
		var piece = p.WhatPiece(sq)
		if piece == Empty {
			emptyCount++
		} else {
			if emptyCount != 0 {
				sb.WriteString(strconv.Itoa(emptyCount))
				emptyCount = 0
			}
			var white = (p.White & SquareMask[sq]) != 0
			sb.WriteString(pieceToChar(piece, white))
		}

		if File(sq) == FileH {
			if emptyCount != 0 {
				sb.WriteString(strconv.Itoa(emptyCount))
				emptyCount = 0
			}
			if Rank(sq) != Rank1 {
				sb.WriteString("/")
			}
		}
	}
	sb.WriteString(" ")

	if p.WhiteMove {
		sb.WriteString("w")
	} else {
		sb.WriteString("b")
	}
	sb.WriteString(" ")

	if p.CastleRights == 0 {
		sb.WriteString("-")
	} else {
		if (p.CastleRights & WhiteKingSide) != 0 {
			sb.WriteString("K")
		}
		if (p.CastleRights & WhiteQueenSide) != 0 {
			sb.WriteString("Q")
		}
		if (p.CastleRights & BlackKingSide) != 0 {
			sb.WriteString("k")
		}
		if (p.CastleRights & BlackQueenSide) != 0 {
			sb.WriteString("q")
		}
	}
	sb.WriteString(" ")

	if p.EpSquare == SquareNone {
		sb.WriteString("-")
	} else {
		sb.WriteString(SquareName(p.EpSquare))
	}
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(p.Rule50))
	sb.WriteString(" 1")

	return sb.String()
}

func pieceToChar(pieceType int, white bool) string {
	var result = string("pnbrqk"[pieceType-Pawn])
	if white {
		result = s.ToUpper(result)
	}
	return result
}

func (p *Position) WhatPiece(sq int) int {
	var bb = SquareMask[sq]
	if ((p.White | p.Black) & bb) == 0 {
		return Empty
	}
	if (p.Pawns & bb) != 0 {
		return Pawn
	}
	if (p.Knights & bb) != 0 {
		return Knight
	}
	if (p.Bishops & bb) != 0 {
		return Bishop
	}
	if (p.Rooks & bb) != 0 {
		return Rook
	}
	if (p.Queens & bb) != 0 {
		return Queen
	}
	if (p.Kings & bb) != 0 {
		return King
	}
	panic(fmt.Errorf("no piece on %s", SquareName(sq)))
}

func (p *Position) PiecesByColor(white bool) uint64 {
	if white {
		return p.White
	}
	return p.Black
}

// OwnPieces returns the side to move's pieces; White/Black bitboards are
// named that way throughout regardless of which color the caller currently
// argues from.
func (p *Position) OwnPieces() uint64 {
	return p.PiecesByColor(p.WhiteMove)
}

func (p *Position) OppPieces() uint64 {
	return p.PiecesByColor(!p.WhiteMove)
}

// MakeMove writes the result of playing m into dst, leaving p untouched.
// It reports whether the resulting position is legal (own king not left in
// check); on false, dst's contents must be discarded by the caller.
//
// The work is broken into named steps rather than one long function body:
// each step owns one piece of Position state (rights, clock, en passant,
// the capture, the mover itself, then whatever side effect the moving
// piece triggers), so a reader can see which step to touch for a given
// rule change without re-reading the whole thing.
func (src *Position) MakeMove(move Move, dst *Position) bool {
	dst.copyBoardFrom(src)
	dst.WhiteMove = !src.WhiteMove
	dst.Key = src.Key ^ sideKey

	dst.updateCastleRights(src, move)
	dst.updateHalfmoveClock(src, move)
	dst.clearEnPassant(src)
	dst.resolveCapture(src, move)
	dst.relocate(move.MovingPiece(), src.WhiteMove, move.From(), move.To())
	dst.resolveMoverSideEffect(src, move)

	if !dst.isLegal() {
		return false
	}
	dst.Checkers = dst.computeCheckers()
	dst.LastMove = move
	return true
}

func (dst *Position) copyBoardFrom(src *Position) {
	dst.Pawns, dst.Knights, dst.Bishops = src.Pawns, src.Knights, src.Bishops
	dst.Rooks, dst.Queens, dst.Kings = src.Rooks, src.Queens, src.Kings
	dst.White, dst.Black = src.White, src.Black
}

func (dst *Position) updateCastleRights(src *Position, move Move) {
	var from, to = move.From(), move.To()
	dst.CastleRights = src.CastleRights & castleMask[from] & castleMask[to]
	dst.Key ^= castlingKey[dst.CastleRights^src.CastleRights]
}

func (dst *Position) updateHalfmoveClock(src *Position, move Move) {
	if move.MovingPiece() == Pawn || move.CapturedPiece() != Empty {
		dst.Rule50 = 0
		return
	}
	dst.Rule50 = src.Rule50 + 1
}

func (dst *Position) clearEnPassant(src *Position) {
	dst.EpSquare = SquareNone
	if src.EpSquare != SquareNone {
		dst.Key ^= enpassantKey[File(src.EpSquare)]
	}
}

// resolveCapture removes whatever move takes off the board, if anything.
// An en passant capture lifts a pawn one rank behind the destination
// square rather than on it.
func (dst *Position) resolveCapture(src *Position, move Move) {
	var captured = move.CapturedPiece()
	if captured == Empty {
		return
	}
	if move.special() == specialEnPassant {
		dst.toggle(Pawn, !src.WhiteMove, move.To()+let(src.WhiteMove, -8, 8))
		return
	}
	dst.toggle(captured, !src.WhiteMove, move.To())
}

// resolveMoverSideEffect handles the two piece types whose move can ripple
// beyond the from/to squares already applied by relocate: a pawn reaching
// the back rank promotes, and a pawn double-step opens an en passant
// square; a king castling drags its rook along.
func (dst *Position) resolveMoverSideEffect(src *Position, move Move) {
	switch move.MovingPiece() {
	case Pawn:
		dst.resolvePawnSideEffect(src.WhiteMove, move.From(), move.To(), move.Promotion())
	case King:
		dst.resolveCastleRookHop(src.WhiteMove, move.From(), move.To())
	}
}

func (dst *Position) resolvePawnSideEffect(white bool, from, to, promotion int) {
	var doubleStepTo, promoteRank = from + 16, Rank8
	if !white {
		doubleStepTo, promoteRank = from-16, Rank1
	}
	if to == doubleStepTo {
		var epSquare = let(white, from+8, from-8)
		dst.EpSquare = epSquare
		dst.Key ^= enpassantKey[File(epSquare)]
		return
	}
	if Rank(to) == promoteRank {
		dst.toggle(Pawn, white, to)
		dst.toggle(promotion, white, to)
	}
}

func (dst *Position) resolveCastleRookHop(white bool, from, to int) {
	var rank1King, rank1RookFrom, rank1RookTo = SquareE1, SquareH1, SquareF1
	var rank1QueenTo, rank1QueenRookFrom, rank1QueenRookTo = SquareC1, SquareA1, SquareD1
	if !white {
		rank1King, rank1RookFrom, rank1RookTo = SquareE8, SquareH8, SquareF8
		rank1QueenTo, rank1QueenRookFrom, rank1QueenRookTo = SquareC8, SquareA8, SquareD8
	}
	if from != rank1King {
		return
	}
	switch to {
	case rank1King + 2:
		dst.relocate(Rook, white, rank1RookFrom, rank1RookTo)
	case rank1QueenTo:
		dst.relocate(Rook, white, rank1QueenRookFrom, rank1QueenRookTo)
	}
}

// MakeNullMove flips the side to move without touching a piece; the
// search core does not call it. It never fails: a null move is always
// "legal" since it cannot expose the mover's own king.
func (src *Position) MakeNullMove(dst *Position) {
	dst.copyBoardFrom(src)
	dst.Rule50 = src.Rule50 + 1
	dst.CastleRights = src.CastleRights

	dst.WhiteMove = !src.WhiteMove
	dst.Key = src.Key ^ sideKey

	dst.EpSquare = SquareNone
	if src.EpSquare != SquareNone {
		dst.Key ^= enpassantKey[File(src.EpSquare)]
	}

	dst.Checkers = 0
	dst.LastMove = MoveEmpty
}

// MakeMoveLAN looks up a legal move matching the given long-algebraic
// string ("e2e4", "e7e8q") and returns the resulting position.
func (p *Position) MakeMoveLAN(lan string) (Position, bool) {
	var buffer [MaxMoves]Move
	var ml = GenerateLegalMoves(p, buffer[:0])
	for _, mv := range ml {
		if s.EqualFold(mv.String(), lan) {
			var dst Position
			if p.MakeMove(mv, &dst) {
				return dst, true
			}
			return Position{}, false
		}
	}
	return Position{}, false
}

// pieceBoard returns the bitboard field holding piece, or nil for Empty.
// Centralizing the piece->field mapping here means toggle and relocate
// below share one dispatch instead of each carrying its own copy.
func (p *Position) pieceBoard(piece int) *uint64 {
	switch piece {
	case Pawn:
		return &p.Pawns
	case Knight:
		return &p.Knights
	case Bishop:
		return &p.Bishops
	case Rook:
		return &p.Rooks
	case Queen:
		return &p.Queens
	case King:
		return &p.Kings
	}
	return nil
}

// toggle flips piece's presence on square for the given color and keeps
// the color bitboard and Zobrist key in sync with it.
func (p *Position) toggle(piece int, white bool, square int) {
	var mask = SquareMask[square]
	if bb := p.pieceBoard(piece); bb != nil {
		*bb ^= mask
	}
	if white {
		p.White ^= mask
	} else {
		p.Black ^= mask
	}
	p.Key ^= PieceSquareKey(piece, white, square)
}

// relocate moves piece from one square to another as two toggles, which
// is one board write more than a single combined XOR mask but keeps the
// single-square case (promotion, capture) and the two-square case
// (an ordinary move) built from the same primitive.
func (p *Position) relocate(piece int, white bool, from, to int) {
	p.toggle(piece, white, from)
	p.toggle(piece, white, to)
}

func (p *Position) isAttackedBySide(sq int, byWhite bool) bool {
	var enemy = p.PiecesByColor(byWhite)
	if (PawnAttacks(sq, !byWhite) & p.Pawns & enemy) != 0 {
		return true
	}
	if (KnightAttacks[sq] & p.Knights & enemy) != 0 {
		return true
	}
	if (KingAttacks[sq] & p.Kings & enemy) != 0 {
		return true
	}
	var occ = p.White | p.Black
	if (BishopAttacks(sq, occ) & (p.Bishops | p.Queens) & enemy) != 0 {
		return true
	}
	if (RookAttacks(sq, occ) & (p.Rooks | p.Queens) & enemy) != 0 {
		return true
	}
	return false
}

// AttackersTo returns every piece of either color attacking sq.
func (p *Position) AttackersTo(sq int) uint64 {
	var occ = p.White | p.Black
	return (blackPawnAttacks[sq] & p.Pawns & p.White) |
		(whitePawnAttacks[sq] & p.Pawns & p.Black) |
		(KnightAttacks[sq] & p.Knights) |
		(BishopAttacks(sq, occ) & (p.Bishops | p.Queens)) |
		(RookAttacks(sq, occ) & (p.Rooks | p.Queens)) |
		(KingAttacks[sq] & p.Kings)
}

func (p *Position) computeCheckers() uint64 {
	if p.WhiteMove {
		return p.AttackersTo(FirstOne(p.Kings&p.White)) & p.Black
	}
	return p.AttackersTo(FirstOne(p.Kings&p.Black)) & p.White
}

func (p *Position) isLegal() bool {
	var kingSq = FirstOne(p.Kings & p.PiecesByColor(!p.WhiteMove))
	return !p.isAttackedBySide(kingSq, p.WhiteMove)
}

// InCheck reports whether the side to move is currently in check.
func (p *Position) InCheck() bool {
	return p.Checkers != 0
}

var (
	sideKey        uint64
	enpassantKey   [8]uint64
	castlingKey    [16]uint64
	pieceSquareKey [7 * 2 * 64]uint64
)

// PieceSquareKey exposes the Zobrist feature key for (piece, side, square);
// toggle and computeKey build the position key from it one feature at a
// time.
func PieceSquareKey(piece int, white bool, square int) uint64 {
	return pieceSquareKey[MakePiece(piece, white)*64+square]
}

func (p *Position) computeKey() uint64 {
	var result = uint64(0)
	if p.WhiteMove {
		result ^= sideKey
	}
	result ^= castlingKey[p.CastleRights]
	if p.EpSquare != SquareNone {
		result ^= enpassantKey[File(p.EpSquare)]
	}
	for i := 0; i < 64; i++ {
		var piece = p.WhatPiece(i)
		if piece != Empty {
			var white = (p.White & SquareMask[i]) != 0
			result ^= PieceSquareKey(piece, white, i)
		}
	}
	return result
}

func initKeys() {
	var r = rand.New(rand.NewSource(0))
	sideKey = r.Uint64()
	for i := range enpassantKey {
		enpassantKey[i] = r.Uint64()
	}
	for i := range pieceSquareKey {
		pieceSquareKey[i] = r.Uint64()
	}

	var castle [4]uint64
	for i := range castle {
		castle[i] = r.Uint64()
	}
	for i := range castlingKey {
		for j := 0; j < 4; j++ {
			if (i & (1 << uint(j))) != 0 {
				castlingKey[i] ^= castle[j]
			}
		}
	}
}

func init() {
	initKeys()
	for i := range castleMask {
		castleMask[i] = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
	}
	castleMask[SquareA1] &^= WhiteQueenSide
	castleMask[SquareE1] &^= WhiteQueenSide | WhiteKingSide
	castleMask[SquareH1] &^= WhiteKingSide
	castleMask[SquareA8] &^= BlackQueenSide
	castleMask[SquareE8] &^= BlackQueenSide | BlackKingSide
	castleMask[SquareH8] &^= BlackKingSide
}
