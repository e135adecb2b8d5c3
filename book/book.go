// Package book implements a file-backed opening-book lookup: newline
// separated games of SAN moves terminated by a result token, matched
// against the game's move history and filtered to games the side to move
// went on to win.
package book

import (
	"math/rand"
	"os"
	s "strings"

	"github.com/Bobsaggetismine/BlackQuartz/board"
)

type gameEntry struct {
	moves  []string // long-algebraic, resolved once at load time
	result int      // +1 white win, -1 black win, 0 draw
}

// Book holds the parsed games and the move history of the game in
// progress, mirroring the shape of an in-process opening book that is
// reset between games and fed moves as they're played.
type Book struct {
	games   []gameEntry
	history []string
}

// Load reads a book file, discarding any line that is empty or whose
// last whitespace-separated token isn't one of "1-0", "0-1", "1/2-1/2",
// and any line whose SAN tokens fail to resolve against legal moves from
// the start position — both cases are dropped silently, matching the
// format's own tolerance for corrupt entries.
func Load(path string) (*Book, error) {
	var data, err = os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var b = &Book{}
	for _, line := range s.Split(string(data), "\n") {
		line = s.TrimSpace(line)
		if line == "" {
			continue
		}
		var tokens = s.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		var result, ok = parseResultToken(tokens[len(tokens)-1])
		if !ok {
			continue
		}
		var moves = resolveTokensToMoves(tokens[:len(tokens)-1])
		if len(moves) == 0 {
			continue
		}
		b.games = append(b.games, gameEntry{moves: moves, result: result})
	}
	b.shuffle()
	return b, nil
}

func parseResultToken(token string) (int, bool) {
	switch token {
	case "1-0":
		return 1, true
	case "0-1":
		return -1, true
	case "1/2-1/2":
		return 0, true
	}
	return 0, false
}

// resolveTokensToMoves replays tokens from the start position, converting
// each SAN token to its long-algebraic form. A token that doesn't match
// any legal move discards the whole game (the original source
// leaves this case ambiguous; treating it as corrupt data is the
// conservative reading).
func resolveTokensToMoves(tokens []string) []string {
	var pos, err = board.NewPositionFromFEN(board.InitialPositionFen)
	if err != nil {
		return nil
	}
	var moves = make([]string, 0, len(tokens))
	var buffer [board.MaxMoves]board.Move

	for _, token := range tokens {
		var clean = stripSuffix(token)
		var ml = board.GenerateLegalMoves(&pos, buffer[:0])
		var found = false
		for _, mv := range ml {
			if san(&pos, ml, mv) != clean {
				continue
			}
			var next board.Position
			if !pos.MakeMove(mv, &next) {
				return nil
			}
			moves = append(moves, mv.String())
			pos = next
			found = true
			break
		}
		if !found {
			return nil
		}
	}
	return moves
}

func (b *Book) shuffle() {
	rand.Shuffle(len(b.games), func(i, j int) {
		b.games[i], b.games[j] = b.games[j], b.games[i]
	})
}

// Reset clears the move history for a new game and reshuffles, so the
// next lookup doesn't always prefer the same matching game.
func (b *Book) Reset() {
	b.history = b.history[:0]
	b.shuffle()
}

// AddMove records a move played in the game in progress, so future
// lookups match against the correct history prefix.
func (b *Book) AddMove(mv board.Move) {
	b.history = append(b.history, mv.String())
}

// Size reports the number of games loaded.
func (b *Book) Size() int {
	return len(b.games)
}

// Move returns a book move for pos given the recorded history, or
// board.MoveEmpty if no loaded game (won by the side now to move) has a
// matching prefix. The first matching game after shuffling stands in for
// "random pick among matches".
func (b *Book) Move(pos *board.Position) board.Move {
	var wantResult = -1
	if pos.WhiteMove {
		wantResult = 1
	}

	for _, g := range b.games {
		if g.result != wantResult {
			continue
		}
		if len(b.history) >= len(g.moves) {
			continue
		}
		var match = true
		for i, played := range b.history {
			if played != g.moves[i] {
				match = false
				break
			}
		}
		if !match {
			continue
		}

		var next = g.moves[len(b.history)]
		var buffer [board.MaxMoves]board.Move
		var ml = board.GenerateLegalMoves(pos, buffer[:0])
		for _, mv := range ml {
			if mv.String() == next {
				return mv
			}
		}
	}
	return board.MoveEmpty
}
