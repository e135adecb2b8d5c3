package board

// Move packs from/to/moving-piece/captured-piece/promotion plus a two-bit
// special tag (normal/castle/en-passant) into a 32-bit value. The special
// tag exists so Flags can classify a move without touching the Position it
// came from: a plain from-to-piece decode can't otherwise tell a king's
// castling hop from an ordinary two-square slide, or an en-passant capture
// from a normal pawn capture of a pawn.
type Move int32

const MoveEmpty Move = 0

const (
	specialNormal = iota
	specialCastle
	specialEnPassant
)

func makeMove(from, to, movingPiece, capturedPiece int) Move {
	return Move(from ^ (to << 6) ^ (movingPiece << 12) ^ (capturedPiece << 15))
}

func makeSpecialMove(from, to, movingPiece, capturedPiece, special int) Move {
	return makeMove(from, to, movingPiece, capturedPiece) ^ Move(special<<21)
}

func makePawnMove(from, to, capturedPiece, promotion int) Move {
	return Move(from ^ (to << 6) ^ (Pawn << 12) ^ (capturedPiece << 15) ^ (promotion << 18))
}

func (m Move) From() int          { return int(m & 63) }
func (m Move) To() int            { return int((m >> 6) & 63) }
func (m Move) MovingPiece() int   { return int((m >> 12) & 7) }
func (m Move) CapturedPiece() int { return int((m >> 15) & 7) }
func (m Move) Promotion() int     { return int((m >> 18) & 7) }
func (m Move) special() int       { return int((m >> 21) & 3) }

func (m Move) IsNull() bool {
	return m == MoveEmpty
}

func (m Move) IsCapture() bool {
	return m.CapturedPiece() != Empty || m.special() == specialEnPassant
}

func (m Move) IsPromotion() bool {
	return m.Promotion() != Empty
}

// MoveFlag classifies a move without reference to a Position.
type MoveFlag int

const (
	QUIET MoveFlag = iota
	CAPTURE
	EN_PASSANT
	CASTLE
	PROMOTION
	PROMOTION_CAPTURE
)

func (m Move) Flags() MoveFlag {
	switch m.special() {
	case specialCastle:
		return CASTLE
	case specialEnPassant:
		return EN_PASSANT
	}
	if m.Promotion() != Empty {
		if m.CapturedPiece() != Empty {
			return PROMOTION_CAPTURE
		}
		return PROMOTION
	}
	if m.CapturedPiece() != Empty {
		return CAPTURE
	}
	return QUIET
}

func (m Move) String() string {
	if m == MoveEmpty {
		return "0000"
	}
	var sPromotion = ""
	if m.Promotion() != Empty {
		sPromotion = string("nbrq"[m.Promotion()-Knight])
	}
	return SquareName(m.From()) + SquareName(m.To()) + sPromotion
}
