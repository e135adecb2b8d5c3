package book

import (
	s "strings"

	"github.com/Bobsaggetismine/BlackQuartz/board"
)

const pieceNames = "NBRQK"

// san renders mv in short algebraic notation relative to the legal move
// list ml, disambiguating by file, then rank, then the full source square
// when two moves of the same piece type share a destination. Check/mate
// suffixes are not produced: the book file format strips them before
// comparison.
func san(pos *board.Position, ml []board.Move, mv board.Move) string {
	if isCastle(mv, pos) {
		if board.File(mv.To()) == board.FileG {
			return "O-O"
		}
		return "O-O-O"
	}

	var strPiece, strCapture, strFrom string
	if mv.MovingPiece() != board.Pawn {
		strPiece = string(pieceNames[mv.MovingPiece()-board.Knight])
	}
	var strTo = board.SquareName(mv.To())
	if mv.CapturedPiece() != board.Empty {
		strCapture = "x"
		if mv.MovingPiece() == board.Pawn {
			strFrom = board.SquareName(mv.From())[:1]
		}
	}
	var promotion string
	if mv.Promotion() != board.Empty {
		promotion = "=" + string(pieceNames[mv.Promotion()-board.Knight])
	}

	var ambiguity, uniqCol, uniqRow = false, true, true
	for _, other := range ml {
		if other.From() == mv.From() || other.To() != mv.To() || other.MovingPiece() != mv.MovingPiece() {
			continue
		}
		ambiguity = true
		if board.File(other.From()) == board.File(mv.From()) {
			uniqCol = false
		}
		if board.Rank(other.From()) == board.Rank(mv.From()) {
			uniqRow = false
		}
	}
	if ambiguity {
		switch {
		case uniqCol:
			strFrom = board.SquareName(mv.From())[:1]
		case uniqRow:
			strFrom = board.SquareName(mv.From())[1:2]
		default:
			strFrom = board.SquareName(mv.From())
		}
	}

	return strPiece + strFrom + strCapture + strTo + promotion
}

func isCastle(mv board.Move, pos *board.Position) bool {
	return mv.MovingPiece() == board.King &&
		(mv.From()-mv.To() == 2 || mv.To()-mv.From() == 2)
}

// stripSuffix removes trailing check/mate/annotation glyphs a book file
// might carry even though san never produces them.
func stripSuffix(token string) string {
	var idx = s.IndexAny(token, "+#?!")
	if idx >= 0 {
		return token[:idx]
	}
	return token
}
