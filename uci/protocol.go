// Package uci implements the Universal Chess Interface text protocol over
// stdin/stdout: the "uci"/"isready"/"ucinewgame"/"position"/"go"/"stop"/
// "quit"/"setoption" command set, wired to an Engine.
package uci

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Bobsaggetismine/BlackQuartz/board"
	"github.com/Bobsaggetismine/BlackQuartz/driver"
	"github.com/Bobsaggetismine/BlackQuartz/tt"
)

// Protocol reads commands from in and writes responses to out. A search
// runs on its own goroutine; done is closed when it finishes, so "stop"
// and "quit" wait on it and every other command checks it to refuse
// running while a search is live.
type Protocol struct {
	engine *Engine
	out    io.Writer
	outMu  sync.Mutex

	done chan struct{}
}

// NewProtocol builds a Protocol around a fresh Engine.
func NewProtocol(out io.Writer) *Protocol {
	var p = &Protocol{engine: NewEngine(), out: out}
	p.done = make(chan struct{})
	close(p.done)
	return p
}

// LoadBook opens an opening book file for the underlying engine.
func (p *Protocol) LoadBook(path string) error {
	return p.engine.LoadBook(path)
}

// Run reads and dispatches commands from in until "quit" or EOF.
func (p *Protocol) Run(in io.Reader) {
	var scanner = bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		var line = scanner.Text()
		if strings.TrimSpace(line) == "quit" {
			break
		}
		if err := p.handle(line); err != nil {
			p.printf("info string %s\n", err.Error())
		}
	}
	<-p.done
}

func (p *Protocol) printf(format string, args ...any) {
	p.outMu.Lock()
	defer p.outMu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

func (p *Protocol) handle(line string) error {
	var fields = strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	var name, args = fields[0], fields[1:]

	if name == "stop" {
		p.engine.Stop()
		<-p.done
		return nil
	}

	select {
	case <-p.done:
	default:
		return errors.New("search still running")
	}

	switch name {
	case "uci":
		return p.uciCommand()
	case "isready":
		return p.isReadyCommand()
	case "ucinewgame":
		return p.newGameCommand()
	case "position":
		return p.positionCommand(args)
	case "go":
		return p.goCommand(args)
	case "setoption":
		return p.setOptionCommand(args)
	case "ponderhit":
		return nil
	}
	return fmt.Errorf("unknown command %q", name)
}

func (p *Protocol) uciCommand() error {
	var name, version, author = p.engine.Identify()
	p.printf("id name %s %s\n", name, version)
	p.printf("id author %s\n", author)
	for _, opt := range p.engine.Options() {
		p.printf("%s\n", opt.UciString())
	}
	p.printf("uciok\n")
	return nil
}

func (p *Protocol) isReadyCommand() error {
	p.printf("readyok\n")
	return nil
}

func (p *Protocol) newGameCommand() error {
	p.engine.NewGame()
	return nil
}

func (p *Protocol) setOptionCommand(args []string) error {
	var nameIdx = indexOf(args, "name")
	var valueIdx = indexOf(args, "value")
	if nameIdx == -1 {
		return errors.New("setoption missing name")
	}
	var nameEnd = len(args)
	if valueIdx != -1 {
		nameEnd = valueIdx
	}
	var name = strings.Join(args[nameIdx+1:nameEnd], " ")
	var value string
	if valueIdx != -1 {
		value = strings.Join(args[valueIdx+1:], " ")
	}
	for _, opt := range p.engine.Options() {
		if !strings.EqualFold(opt.UciName(), name) {
			continue
		}
		if err := opt.Set(value); err != nil {
			return err
		}
		p.engine.ApplyOption(opt.UciName())
		return nil
	}
	return fmt.Errorf("unhandled option %q", name)
}

func indexOf(args []string, token string) int {
	for i, a := range args {
		if a == token {
			return i
		}
	}
	return -1
}

func (p *Protocol) positionCommand(args []string) error {
	if len(args) == 0 {
		return errors.New("position missing arguments")
	}
	var movesIdx = indexOf(args, "moves")
	var fen string
	switch args[0] {
	case "startpos":
		fen = board.InitialPositionFen
	case "fen":
		var end = len(args)
		if movesIdx != -1 {
			end = movesIdx
		}
		if end <= 1 {
			return errors.New("position fen missing")
		}
		fen = strings.Join(args[1:end], " ")
	default:
		return errors.New("unknown position subcommand")
	}

	var pos, err = board.NewPositionFromFEN(fen)
	if err != nil {
		return err
	}

	var played []board.Move
	if movesIdx != -1 && movesIdx+1 < len(args) {
		for _, lan := range args[movesIdx+1:] {
			var mv, next, ok = findMoveLAN(&pos, lan)
			if !ok {
				return fmt.Errorf("illegal move %q", lan)
			}
			played = append(played, mv)
			pos = next
		}
	}

	p.engine.SetPosition(pos, played)
	return nil
}

func findMoveLAN(pos *board.Position, lan string) (board.Move, board.Position, bool) {
	var buffer [board.MaxMoves]board.Move
	var ml = board.GenerateLegalMoves(pos, buffer[:0])
	for _, mv := range ml {
		if !strings.EqualFold(mv.String(), lan) {
			continue
		}
		var next board.Position
		if !pos.MakeMove(mv, &next) {
			return board.MoveEmpty, board.Position{}, false
		}
		return mv, next, true
	}
	return board.MoveEmpty, board.Position{}, false
}

func (p *Protocol) goCommand(args []string) error {
	var limits = parseGoLimits(args)
	p.done = make(chan struct{})
	var done = p.done
	go func() {
		defer close(done)
		var stats = p.engine.Go(limits, p.printInfo)
		p.printBestMove(stats)
	}()
	return nil
}

func (p *Protocol) printInfo(st driver.Stats) {
	var pv strings.Builder
	for i, mv := range st.PV.Slice() {
		if i > 0 {
			pv.WriteString(" ")
		}
		pv.WriteString(mv.String())
	}
	var scoreField string
	if st.MateFound {
		scoreField = fmt.Sprintf("mate %d", mateDistancePlies(st.Score))
	} else {
		scoreField = fmt.Sprintf("cp %d", st.Score)
	}
	var elapsedMs = st.ElapsedMicros / 1000
	var nps = st.Nodes * 1000 / (elapsedMs + 1)
	p.printf("info depth %d score %s nodes %d time %d nps %d pv %s\n",
		st.Depth, scoreField, st.Nodes, elapsedMs, nps, pv.String())
}

func mateDistancePlies(score int) int {
	var pliesToMate = tt.MATE - abs(score)
	var moves = (pliesToMate + 1) / 2
	if score < 0 {
		return -moves
	}
	return moves
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (p *Protocol) printBestMove(st driver.Stats) {
	var mv = st.SelectedMove
	if mv.IsNull() {
		var pos = p.engine.Position()
		var buffer [board.MaxMoves]board.Move
		var ml = board.GenerateLegalMoves(&pos, buffer[:0])
		if len(ml) > 0 {
			mv = ml[0]
		}
	}
	if mv.IsNull() {
		p.printf("bestmove 0000\n")
		return
	}
	p.printf("bestmove %s\n", mv.String())
}

func parseGoLimits(args []string) GoLimits {
	var limits GoLimits
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "wtime":
			limits.WTime = millis(args, &i)
		case "btime":
			limits.BTime = millis(args, &i)
		case "winc":
			limits.WInc = millis(args, &i)
		case "binc":
			limits.BInc = millis(args, &i)
		case "movestogo":
			limits.MovesToGo = intArg(args, &i)
		case "depth":
			limits.Depth = intArg(args, &i)
		case "movetime":
			limits.MoveTime = millis(args, &i)
		case "infinite":
			limits.Infinite = true
		case "ponder":
			// Ponder search is not distinguished from a normal search; the
			// GUI is expected to send "stop" or "ponderhit" as usual.
		}
	}
	return limits
}

func millis(args []string, i *int) time.Duration {
	return time.Duration(intArg(args, i)) * time.Millisecond
}

func intArg(args []string, i *int) int {
	if *i+1 >= len(args) {
		return 0
	}
	*i++
	var v, _ = strconv.Atoi(args[*i])
	return v
}
