package board

import "testing"

func perft(p *Position, depth int) int64 {
	if depth == 0 {
		return 1
	}
	var buffer [MaxMoves]Move
	var ml = GenerateLegalMoves(p, buffer[:0])
	if depth == 1 {
		return int64(len(ml))
	}
	var nodes int64
	var child Position
	for _, m := range ml {
		p.MakeMove(m, &child)
		nodes += perft(&child, depth-1)
	}
	return nodes
}

func TestPerftStartPosition(t *testing.T) {
	var p, err = NewPositionFromFEN(InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var cases = []struct {
		depth int
		nodes int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, c := range cases {
		var got = perft(&p, c.depth)
		if got != c.nodes {
			t.Errorf("perft(%d) = %d, want %d", c.depth, got, c.nodes)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	// Standard perft stress position exercising castling, en passant and
	// promotions together.
	var p, err = NewPositionFromFEN(
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var cases = []struct {
		depth int
		nodes int64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}
	for _, c := range cases {
		var got = perft(&p, c.depth)
		if got != c.nodes {
			t.Errorf("perft(%d) = %d, want %d", c.depth, got, c.nodes)
		}
	}
}

func TestMakeMoveLeavesSourceUntouched(t *testing.T) {
	var p, _ = NewPositionFromFEN(InitialPositionFen)
	var before = p
	var buffer [MaxMoves]Move
	var ml = GenerateLegalMoves(&p, buffer[:0])
	var child Position
	for _, m := range ml {
		p.MakeMove(m, &child)
	}
	if p.Key != before.Key || p.White != before.White || p.Black != before.Black {
		t.Fatal("MakeMove mutated its source position")
	}
}

func TestFenRoundTrip(t *testing.T) {
	var p, err = NewPositionFromFEN(InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var again, err2 = NewPositionFromFEN(p.String())
	if err2 != nil {
		t.Fatal(err2)
	}
	if again.Key != p.Key {
		t.Fatal("re-parsing the printed FEN produced a different hash")
	}
}

func TestMoveFlags(t *testing.T) {
	var p, _ = NewPositionFromFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	var buffer [MaxMoves]Move
	var ml = GenerateLegalMoves(&p, buffer[:0])
	for _, m := range ml {
		if m.Flags() != QUIET {
			t.Errorf("opening move %v expected QUIET, got %v", m, m.Flags())
		}
	}

	var castlePos, _ = NewPositionFromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	var found = false
	for _, m := range GenerateLegalMoves(&castlePos, buffer[:0]) {
		if m.Flags() == CASTLE {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a legal castle move to be generated")
	}

	var epPos, _ = NewPositionFromFEN("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	found = false
	for _, m := range GenerateLegalMoves(&epPos, buffer[:0]) {
		if m.Flags() == EN_PASSANT {
			found = true
		}
	}
	if !found {
		t.Fatal("expected en passant to be generated")
	}
}

func TestSEEWinningCaptureIsPositive(t *testing.T) {
	// White pawn takes an undefended black knight.
	var p, _ = NewPositionFromFEN("4k3/8/8/3n4/4P3/8/8/4K3 w - - 0 1")
	var buffer [MaxMoves]Move
	var ml = GenerateLegalMoves(&p, buffer[:0])
	var found = false
	for _, m := range ml {
		if m.From() == SquareE4 && m.To() == SquareD5 {
			found = true
			if SEE(&p, m) <= 0 {
				t.Errorf("SEE(exd5 knight capture) = %d, want > 0", SEE(&p, m))
			}
			if !SEEGE(&p, m, 0) {
				t.Error("SEEGE(capture, 0) = false, want true")
			}
		}
	}
	if !found {
		t.Fatal("expected pawn capture of knight to be generated")
	}
}
