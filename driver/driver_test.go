package driver

import (
	"testing"

	"github.com/Bobsaggetismine/BlackQuartz/board"
	"github.com/Bobsaggetismine/BlackQuartz/search"
	"github.com/Bobsaggetismine/BlackQuartz/tt"
)

func newDriver() *Driver {
	return New(search.NewSearcher(tt.New(1<<20), &search.StopFlag{}))
}

func mustPosition(t *testing.T, fen string) board.Position {
	t.Helper()
	var p, err = board.NewPositionFromFEN(fen)
	if err != nil {
		t.Fatalf("bad fen %q: %v", fen, err)
	}
	return p
}

func TestThinkStartPositionDepth4(t *testing.T) {
	var pos = mustPosition(t, board.InitialPositionFen)
	var stats = newDriver().Think(&pos, 4)

	if stats.Nodes == 0 {
		t.Fatalf("expected nodes > 0")
	}
	if stats.SelectedMove.IsNull() {
		t.Fatalf("expected a legal selected move")
	}

	var buffer [board.MaxMoves]board.Move
	var ml = board.GenerateLegalMoves(&pos, buffer[:0])
	var found = false
	for _, m := range ml {
		if m == stats.SelectedMove {
			found = true
		}
	}
	if !found {
		t.Fatalf("selected move %v is not among legal moves", stats.SelectedMove)
	}
}

func TestThinkFindsMateInOneForBlack(t *testing.T) {
	var pos = mustPosition(t, "r3kb1r/ppp1pppp/5n2/1n3P2/6bP/4K3/PPq5/RNB2q2 b kq - 0 13")
	var stats = newDriver().Think(&pos, 7)

	if stats.SelectedMove.IsNull() {
		t.Fatalf("expected a mating move")
	}

	var after board.Position
	if !pos.MakeMove(stats.SelectedMove, &after) {
		t.Fatalf("selected move %v was illegal", stats.SelectedMove)
	}

	var buffer [board.MaxMoves]board.Move
	var replies = board.GenerateLegalMoves(&after, buffer[:0])
	if len(replies) != 0 {
		t.Fatalf("expected no legal replies after mate, got %d", len(replies))
	}
	if !after.InCheck() {
		t.Fatalf("expected the side to move to be in check after mate")
	}
}

func TestThinkStalemateReturnsNullMoveAndZeroScore(t *testing.T) {
	var pos = mustPosition(t, "7k/5Q2/7K/8/8/8/8/8 b - - 0 1")
	var stats = newDriver().Think(&pos, 3)

	if !stats.SelectedMove.IsNull() {
		t.Fatalf("expected a null move at stalemate, got %v", stats.SelectedMove)
	}
	if stats.Score != 0 {
		t.Fatalf("expected score 0 at stalemate, got %d", stats.Score)
	}
}

func TestThinkCheckmateOnBoard(t *testing.T) {
	var pos = mustPosition(t, "7k/6Q1/7K/8/8/8/8/8 b - - 0 1")
	var stats = newDriver().Think(&pos, 3)

	if !stats.SelectedMove.IsNull() {
		t.Fatalf("expected a null move at checkmate, got %v", stats.SelectedMove)
	}
	if stats.Score != -tt.MATE {
		t.Fatalf("expected score -MATE at checkmate, got %d", stats.Score)
	}
}

func TestDepthMonotonicNodeGrowth(t *testing.T) {
	var pos = mustPosition(t, board.InitialPositionFen)

	var d3 = newDriver()
	var s3 = d3.Think(&pos, 3)

	var d4 = newDriver()
	var s4 = d4.Think(&pos, 4)

	if s4.Nodes <= s3.Nodes {
		t.Fatalf("expected depth 4 to visit more nodes than depth 3: %d vs %d", s4.Nodes, s3.Nodes)
	}
}

func TestWarmTTReducesNodeCount(t *testing.T) {
	var pos = mustPosition(t, board.InitialPositionFen)
	var table = tt.New(1 << 20)

	var cold = New(search.NewSearcher(table, &search.StopFlag{}))
	var coldStats = cold.Think(&pos, 4)

	var warm = New(search.NewSearcher(table, &search.StopFlag{}))
	var warmStats = warm.Think(&pos, 4)

	if warmStats.Nodes >= coldStats.Nodes {
		t.Fatalf("expected warm TT search to visit fewer nodes: warm=%d cold=%d", warmStats.Nodes, coldStats.Nodes)
	}
}
