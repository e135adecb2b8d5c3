package search

import (
	"testing"

	"github.com/Bobsaggetismine/BlackQuartz/board"
	"github.com/Bobsaggetismine/BlackQuartz/tt"
)

func newSearcher() *Searcher {
	return NewSearcher(tt.New(1<<20), &StopFlag{})
}

func mustPosition(t *testing.T, fen string) board.Position {
	t.Helper()
	var p, err = board.NewPositionFromFEN(fen)
	if err != nil {
		t.Fatalf("bad fen %q: %v", fen, err)
	}
	return p
}

func TestOrderMovesPutsTTMoveFirst(t *testing.T) {
	var pos = mustPosition(t, board.InitialPositionFen)
	var buffer [board.MaxMoves]board.Move
	var ml = board.GenerateLegalMoves(&pos, buffer[:0])

	var chosen = ml[len(ml)-1]
	var ordered = OrderMoves(ml, chosen)
	if ordered[0] != chosen {
		t.Fatalf("expected tt move %v first, got %v", chosen, ordered[0])
	}
}

func TestOrderMovesRanksCapturesAboveQuiet(t *testing.T) {
	var pos = mustPosition(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	var buffer [board.MaxMoves]board.Move
	var ml = board.GenerateLegalMoves(&pos, buffer[:0])
	var ordered = OrderMoves(ml, board.MoveEmpty)

	if !ordered[0].IsCapture() {
		t.Fatalf("expected the only capture first, got %v", ordered[0])
	}
}

func TestPVSFindsMateInOne(t *testing.T) {
	var pos = mustPosition(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	var s = newSearcher()

	var score = s.PVS(&pos, 0, 3, -tt.MATE, tt.MATE, false)
	if score < tt.MATE-1000 {
		t.Fatalf("expected a mate score, got %d", score)
	}
}

func TestPVSStalemateScoresZero(t *testing.T) {
	var pos = mustPosition(t, "7k/5Q2/7K/8/8/8/8/8 b - - 0 1")
	var s = newSearcher()

	var score = s.PVS(&pos, 0, 2, -tt.MATE, tt.MATE, false)
	if score != 0 {
		t.Fatalf("expected stalemate score 0, got %d", score)
	}
}

func TestPVSCheckmateOnBoard(t *testing.T) {
	var pos = mustPosition(t, "7k/6Q1/7K/8/8/8/8/8 b - - 0 1")
	var s = newSearcher()

	var score = s.PVS(&pos, 0, 2, -tt.MATE, tt.MATE, false)
	if score != -tt.MATE {
		t.Fatalf("expected -MATE at ply 0, got %d", score)
	}
}

func TestQuiescenceHonorsStopFlag(t *testing.T) {
	var pos = mustPosition(t, board.InitialPositionFen)
	var stop = &StopFlag{}
	stop.Raise()
	var s = NewSearcher(tt.New(1<<20), stop)

	var score = s.Quiescence(&pos, 0, 0, -tt.MATE, tt.MATE)
	if score != -tt.MATE {
		t.Fatalf("expected quiescence to return alpha unchanged on a raised stop flag, got %d", score)
	}
}

func TestPVSNodeCountIncreasesWithDepth(t *testing.T) {
	var pos = mustPosition(t, board.InitialPositionFen)

	var s3 = newSearcher()
	s3.PVS(&pos, 0, 3, -tt.MATE, tt.MATE, false)

	var s4 = newSearcher()
	s4.PVS(&pos, 0, 4, -tt.MATE, tt.MATE, false)

	if s4.Nodes <= s3.Nodes {
		t.Fatalf("expected depth 4 to visit more nodes than depth 3: %d vs %d", s4.Nodes, s3.Nodes)
	}
}

func TestPVSReusesWarmTTWithFewerNodes(t *testing.T) {
	var pos = mustPosition(t, board.InitialPositionFen)
	var table = tt.New(1 << 20)

	var cold = NewSearcher(table, &StopFlag{})
	cold.PVS(&pos, 0, 4, -tt.MATE, tt.MATE, false)

	var warm = NewSearcher(table, &StopFlag{})
	warm.PVS(&pos, 0, 4, -tt.MATE, tt.MATE, false)

	if warm.Nodes >= cold.Nodes {
		t.Fatalf("expected warm TT search to visit fewer nodes: warm=%d cold=%d", warm.Nodes, cold.Nodes)
	}
}
