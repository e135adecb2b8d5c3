package eval

import (
	"testing"

	"github.com/Bobsaggetismine/BlackQuartz/board"
)

func mustPosition(t *testing.T, fen string) board.Position {
	t.Helper()
	var p, err = board.NewPositionFromFEN(fen)
	if err != nil {
		t.Fatalf("bad fen %q: %v", fen, err)
	}
	return p
}

func TestTempoSymmetryAtStartPosition(t *testing.T) {
	var white = mustPosition(t, board.InitialPositionFen)
	var black = mustPosition(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1")

	var scoreWhiteToMove = Evaluate(&white, true)
	var scoreBlackToMove = Evaluate(&black, false)

	if scoreWhiteToMove != scoreBlackToMove {
		t.Errorf("tempo symmetry broken: white-to-move eval %d != black-to-move eval %d",
			scoreWhiteToMove, scoreBlackToMove)
	}
}

func TestMaterialUpScoresPositive(t *testing.T) {
	var p = mustPosition(t, "4k3/8/8/8/8/8/3Q4/4K3 w - - 0 1")
	if Evaluate(&p, true) <= 0 {
		t.Errorf("material-up side should score > 0, got %d", Evaluate(&p, true))
	}
}

func TestPassedPawnBeatsBlockedPawn(t *testing.T) {
	var passed = mustPosition(t, "4k3/8/8/4P3/8/8/8/4K3 w - - 0 1")
	var blocked = mustPosition(t, "4k3/8/4p3/4P3/8/8/8/4K3 w - - 0 1")

	if Evaluate(&passed, true) <= Evaluate(&blocked, true) {
		t.Errorf("passed pawn eval %d should exceed blocked pawn eval %d",
			Evaluate(&passed, true), Evaluate(&blocked, true))
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	var p = mustPosition(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	var a = Evaluate(&p, true)
	var b = Evaluate(&p, true)
	if a != b {
		t.Errorf("evaluate is not deterministic: %d != %d", a, b)
	}
}
