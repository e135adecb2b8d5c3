package uci

import (
	"time"

	"github.com/Bobsaggetismine/BlackQuartz/board"
	"github.com/Bobsaggetismine/BlackQuartz/book"
	"github.com/Bobsaggetismine/BlackQuartz/driver"
	"github.com/Bobsaggetismine/BlackQuartz/search"
	"github.com/Bobsaggetismine/BlackQuartz/timecontrol"
	"github.com/Bobsaggetismine/BlackQuartz/tt"
)

const (
	defaultHashMB       = 16
	minHashMB           = 1
	maxHashMB           = 2048
	defaultThreads      = 1
	minThreads          = 1
	maxThreads          = 256
	defaultOverheadMs   = 5
	maxOverheadMs       = 10000
	maxSearchDepth      = 64
	defaultGoTimeMillis = 100
)

// Engine wires the driver, its transposition table and stop flag, and an
// optional opening book behind the UCI option surface named in §6: Hash,
// Threads, Move Overhead, SyzygyPath, UCI_ShowWDL.
type Engine struct {
	pos      board.Position
	book     *book.Book
	stop     *search.StopFlag
	searcher *search.Searcher
	driver   *driver.Driver

	hashMB     int
	threads    int
	overheadMs int
	syzygyPath string
	showWDL    bool
}

// NewEngine builds an Engine at the start position with a fresh
// default-sized transposition table.
func NewEngine() *Engine {
	var e = &Engine{
		hashMB:     defaultHashMB,
		threads:    defaultThreads,
		overheadMs: defaultOverheadMs,
	}
	var initial, _ = board.NewPositionFromFEN(board.InitialPositionFen)
	e.pos = initial
	e.stop = &search.StopFlag{}
	e.searcher = search.NewSearcher(tt.New(e.hashMB<<20), e.stop)
	e.driver = driver.New(e.searcher)
	return e
}

// Identify returns the id lines printed in response to "uci".
func (e *Engine) Identify() (name, version, author string) {
	return "BlackQuartz", "1.0", "BlackQuartz contributors"
}

// Options returns every "setoption"-settable parameter in advertisement
// order.
func (e *Engine) Options() []Option {
	return []Option{
		&IntOption{Name: "Hash", Min: minHashMB, Max: maxHashMB, Value: &e.hashMB},
		&IntOption{Name: "Threads", Min: minThreads, Max: maxThreads, Value: &e.threads},
		&IntOption{Name: "Move Overhead", Min: 0, Max: maxOverheadMs, Value: &e.overheadMs},
		&StringOption{Name: "SyzygyPath", Value: &e.syzygyPath},
		&BoolOption{Name: "UCI_ShowWDL", Value: &e.showWDL},
	}
}

// ApplyOption acts on a "setoption" side effect that isn't just storing
// the value: resizing the table on a new Hash, nothing else needs one.
func (e *Engine) ApplyOption(name string) {
	if name == "Hash" {
		e.searcher.TT.Resize(e.hashMB << 20)
	}
}

// LoadBook opens an opening book file; a failure is reported by the
// caller as an informational line, the engine simply runs without one.
func (e *Engine) LoadBook(path string) error {
	var b, err = book.Load(path)
	if err != nil {
		return err
	}
	e.book = b
	return nil
}

// NewGame resets position history, clears the transposition table, and
// resets the book's move history, per the "ucinewgame" contract.
func (e *Engine) NewGame() {
	var initial, _ = board.NewPositionFromFEN(board.InitialPositionFen)
	e.pos = initial
	e.searcher.TT.Clear()
	if e.book != nil {
		e.book.Reset()
	}
}

// SetPosition replaces the current position and, if a book is loaded,
// replaces the book's history with every move played so history-prefix
// lookups stay correct across the game.
func (e *Engine) SetPosition(pos board.Position, moves []board.Move) {
	e.pos = pos
	if e.book != nil {
		e.book.Reset()
		for _, m := range moves {
			e.book.AddMove(m)
		}
	}
}

// Position returns the current position.
func (e *Engine) Position() board.Position {
	return e.pos
}

// GoLimits mirrors the "go" command's clock/depth fields verbatim,
// before §6's defaulting rules are applied.
type GoLimits struct {
	WTime, BTime time.Duration
	WInc, BInc   time.Duration
	MovesToGo    int
	Depth        int
	MoveTime     time.Duration
	Infinite     bool
}

// Go runs one think() call: it first tries the opening book, and only
// falls through to the search if the book has nothing for this position.
// progress is invoked once, with the final telemetry, after the search
// returns; it is not invoked per completed depth, nor for a book move.
func (e *Engine) Go(limits GoLimits, progress func(driver.Stats)) driver.Stats {
	if e.book != nil {
		if mv := e.book.Move(&e.pos); !mv.IsNull() {
			return driver.Stats{SelectedMove: mv}
		}
	}

	var tl = e.timeLimits(limits)
	var budget = timecontrol.Budget(tl)
	var maxDepth = limits.Depth
	if maxDepth <= 0 || maxDepth > maxSearchDepth {
		maxDepth = maxSearchDepth
	}

	e.stop.Reset()
	var stats driver.Stats
	timecontrol.Run(budget, e.stop, func() {
		stats = e.driver.Think(&e.pos, maxDepth)
	})
	if progress != nil {
		progress(stats)
	}
	return stats
}

// Stop raises the cooperative cancellation flag; Go's timer/search race
// observes it at the next node boundary.
func (e *Engine) Stop() {
	e.stop.Raise()
}

func (e *Engine) timeLimits(g GoLimits) timecontrol.Limits {
	var overhead = time.Duration(e.overheadMs) * time.Millisecond

	switch {
	case g.MoveTime > 0:
		return timecontrol.Limits{Time: g.MoveTime, MovesToGo: 1, Overhead: 0}
	case g.Infinite:
		return timecontrol.Limits{Time: 24 * time.Hour, MovesToGo: 1, Overhead: overhead}
	case g.WTime == 0 && g.BTime == 0:
		return timecontrol.Limits{Time: defaultGoTimeMillis * time.Millisecond, MovesToGo: 1, Overhead: overhead}
	}

	if e.pos.WhiteMove {
		return timecontrol.Limits{Time: g.WTime, Inc: g.WInc, MovesToGo: g.MovesToGo, Overhead: overhead}
	}
	return timecontrol.Limits{Time: g.BTime, Inc: g.BInc, MovesToGo: g.MovesToGo, Overhead: overhead}
}
