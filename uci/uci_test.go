package uci

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Bobsaggetismine/BlackQuartz/tt"
)

func newTestProtocol() (*Protocol, *bytes.Buffer) {
	var out bytes.Buffer
	return NewProtocol(&out), &out
}

func TestUciCommandPrintsIdAndOptionsAndUciok(t *testing.T) {
	var p, out = newTestProtocol()
	if err := p.handle("uci"); err != nil {
		t.Fatalf("handle uci: %v", err)
	}
	var text = out.String()
	if !strings.Contains(text, "id name") {
		t.Errorf("expected an id name line, got %q", text)
	}
	if !strings.Contains(text, "option name Hash") {
		t.Errorf("expected a Hash option line, got %q", text)
	}
	if !strings.HasSuffix(strings.TrimRight(text, "\n"), "uciok") {
		t.Errorf("expected output to end with uciok, got %q", text)
	}
}

func TestIsReadyRespondsReadyok(t *testing.T) {
	var p, out = newTestProtocol()
	if err := p.handle("isready"); err != nil {
		t.Fatalf("handle isready: %v", err)
	}
	if strings.TrimSpace(out.String()) != "readyok" {
		t.Errorf("expected readyok, got %q", out.String())
	}
}

func TestSetOptionUpdatesHashAndResizesTable(t *testing.T) {
	var p, _ = newTestProtocol()
	if err := p.handle("setoption name Hash value 32"); err != nil {
		t.Fatalf("setoption: %v", err)
	}
	if p.engine.hashMB != 32 {
		t.Errorf("expected hashMB=32, got %d", p.engine.hashMB)
	}
	if got, want := p.engine.searcher.TT.Len(), tt.New(32<<20).Len(); got != want {
		t.Errorf("expected the table resized to %d buckets, got %d", want, got)
	}
}

func TestSetOptionUnknownNameErrors(t *testing.T) {
	var p, _ = newTestProtocol()
	if err := p.handle("setoption name Nonsense value 1"); err == nil {
		t.Fatalf("expected an error for an unknown option")
	}
}

func TestSetOptionOutOfRangeErrors(t *testing.T) {
	var p, _ = newTestProtocol()
	if err := p.handle("setoption name Hash value 999999"); err == nil {
		t.Fatalf("expected an out-of-range error")
	}
}

func TestPositionStartposWithMoves(t *testing.T) {
	var p, _ = newTestProtocol()
	if err := p.handle("position startpos moves e2e4 e7e5"); err != nil {
		t.Fatalf("position: %v", err)
	}
	if p.engine.Position().WhiteMove != true {
		t.Errorf("expected white to move after two half-moves")
	}
}

func TestPositionRejectsIllegalMove(t *testing.T) {
	var p, _ = newTestProtocol()
	if err := p.handle("position startpos moves e2e5"); err == nil {
		t.Fatalf("expected an illegal-move error")
	}
}

func TestPositionFenWithoutMoves(t *testing.T) {
	var p, _ = newTestProtocol()
	var fen = "8/8/8/8/8/8/8/K6k w - - 0 1"
	if err := p.handle("position fen " + fen); err != nil {
		t.Fatalf("position fen: %v", err)
	}
}

func TestGoThenStopProducesBestmove(t *testing.T) {
	var p, out = newTestProtocol()
	if err := p.handle("position startpos"); err != nil {
		t.Fatalf("position: %v", err)
	}
	if err := p.handle("go movetime 20"); err != nil {
		t.Fatalf("go: %v", err)
	}
	if err := p.handle("stop"); err != nil {
		t.Fatalf("stop: %v", err)
	}
	<-p.done
	time.Sleep(10 * time.Millisecond)
	if !strings.Contains(out.String(), "bestmove") {
		t.Errorf("expected a bestmove line, got %q", out.String())
	}
}

func TestGoWhileSearchRunningErrors(t *testing.T) {
	var p, _ = newTestProtocol()
	_ = p.handle("position startpos")
	_ = p.handle("go movetime 200")
	if err := p.handle("go movetime 10"); err == nil {
		t.Fatalf("expected an error for a command sent while a search runs")
	}
	p.engine.Stop()
	<-p.done
}

func TestUciNewGameResetsPosition(t *testing.T) {
	var p, _ = newTestProtocol()
	_ = p.handle("position startpos moves e2e4")
	if err := p.handle("ucinewgame"); err != nil {
		t.Fatalf("ucinewgame: %v", err)
	}
	if !p.engine.Position().WhiteMove {
		t.Errorf("expected the start position to have white to move")
	}
}

func TestParseGoLimitsReadsAllFields(t *testing.T) {
	var limits = parseGoLimits(strings.Fields(
		"wtime 1000 btime 2000 winc 5 binc 10 movestogo 20 depth 6 movetime 500"))
	if limits.WTime != time.Second {
		t.Errorf("wtime: got %v", limits.WTime)
	}
	if limits.BTime != 2*time.Second {
		t.Errorf("btime: got %v", limits.BTime)
	}
	if limits.WInc != 5*time.Millisecond {
		t.Errorf("winc: got %v", limits.WInc)
	}
	if limits.BInc != 10*time.Millisecond {
		t.Errorf("binc: got %v", limits.BInc)
	}
	if limits.MovesToGo != 20 {
		t.Errorf("movestogo: got %d", limits.MovesToGo)
	}
	if limits.Depth != 6 {
		t.Errorf("depth: got %d", limits.Depth)
	}
	if limits.MoveTime != 500*time.Millisecond {
		t.Errorf("movetime: got %v", limits.MoveTime)
	}
}

func TestParseGoLimitsInfinite(t *testing.T) {
	var limits = parseGoLimits([]string{"infinite"})
	if !limits.Infinite {
		t.Errorf("expected Infinite to be set")
	}
}
