package book

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Bobsaggetismine/BlackQuartz/board"
)

func writeBookFile(t *testing.T, contents string) string {
	t.Helper()
	var dir = t.TempDir()
	var path = filepath.Join(dir, "book.txt")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write book file: %v", err)
	}
	return path
}

func TestLoadSkipsGamesWithoutResultToken(t *testing.T) {
	var path = writeBookFile(t, "e4 e5 Nf3\n")
	var b, err = Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b.Size() != 0 {
		t.Fatalf("expected 0 games without a result token, got %d", b.Size())
	}
}

func TestLoadParsesWinningGame(t *testing.T) {
	var path = writeBookFile(t, "e4 e5 Nf3 Nc6 1-0\n")
	var b, err = Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b.Size() != 1 {
		t.Fatalf("expected 1 game, got %d", b.Size())
	}
}

func TestMoveMatchesRecordedHistory(t *testing.T) {
	var path = writeBookFile(t, "e4 e5 Nf3 Nc6 1-0\n")
	var b, _ = Load(path)

	var pos, _ = board.NewPositionFromFEN(board.InitialPositionFen)
	var mv = b.Move(&pos)
	if mv.IsNull() {
		t.Fatalf("expected a book move for white from the start position")
	}
	if mv.String() != "e2e4" {
		t.Fatalf("expected e2e4, got %v", mv)
	}
}

func TestMoveReturnsNullWhenSideDidNotWin(t *testing.T) {
	var path = writeBookFile(t, "e4 e5 Nf3 Nc6 0-1\n")
	var b, _ = Load(path)

	var pos, _ = board.NewPositionFromFEN(board.InitialPositionFen)
	var mv = b.Move(&pos)
	if !mv.IsNull() {
		t.Fatalf("expected no book move: white did not win this game, got %v", mv)
	}
}

func TestResetClearsHistory(t *testing.T) {
	var path = writeBookFile(t, "e4 e5 Nf3 Nc6 1-0\n")
	var b, _ = Load(path)

	var pos, _ = board.NewPositionFromFEN(board.InitialPositionFen)
	b.AddMove(mustMoveLAN(t, &pos, "e2e4"))

	b.Reset()
	if len(b.history) != 0 {
		t.Fatalf("expected Reset to clear history")
	}
}

func mustMoveLAN(t *testing.T, pos *board.Position, lan string) board.Move {
	t.Helper()
	var buffer [board.MaxMoves]board.Move
	var ml = board.GenerateLegalMoves(pos, buffer[:0])
	for _, mv := range ml {
		if mv.String() == lan {
			return mv
		}
	}
	t.Fatalf("no legal move %s", lan)
	return board.MoveEmpty
}
