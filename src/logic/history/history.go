package history

import (
	"errors"
	"fmt"
	"hotseatchess/src/base"
	"hotseatchess/src/logic/rules"
	"strings"
)

// History is the log of a game in play: the starting board, every applied
// move with its SAN, and the position after it.
type History struct {
	start base.Board
	moves []MoveEntry
	seen  map[base.PositionKey]int
}

type MoveEntry struct {
	Move  base.Move
	SAN   string
	Board base.Board // copy board after the move
}

func NewHistory(start *base.Board) *History {
	h := &History{start: *start, seen: make(map[base.PositionKey]int)}
	h.seen[start.Key()]++
	return h
}

func (h *History) Len() int { return len(h.moves) }

// full moves as the game info panel shows them: ceil(plies/2)
func (h *History) MoveCount() int { return (len(h.moves) + 1) / 2 }

func (h *History) Moves() []MoveEntry {
	out := make([]MoveEntry, len(h.moves))
	copy(out, h.moves)
	return out
}

// Last returns the most recent entry.
func (h *History) Last() (MoveEntry, bool) {
	if len(h.moves) == 0 {
		return MoveEntry{}, false
	}
	return h.moves[len(h.moves)-1], true
}

// Occurrences implements rules.Repetitions.
func (h *History) Occurrences(key base.PositionKey) int {
	return h.seen[key]
}

// Check move, apply it and push to history. b is not modified; the returned
// board is the new position.
func (h *History) PushMove(b *base.Board, mv base.Move) (*base.Board, base.Move, error) {
	if b == nil {
		return nil, base.Move{}, errors.New("nil board")
	}
	resolved, ok := rules.Resolve(b, mv)
	if !ok {
		resolved = mv
	}
	nb, err := rules.Apply(b, resolved)
	if err != nil {
		return nil, base.Move{}, fmt.Errorf("push move: %w", err)
	}

	h.moves = append(h.moves, MoveEntry{Board: *nb, Move: resolved, SAN: rules.SAN(b, resolved)})
	h.seen[nb.Key()]++
	return nb, resolved, nil
}

// returned string with all moves
// example: "1. e4 e5 2. Nf3 Nc6 3. Bb5"
func (h *History) MovesAsPGN() string {
	if h == nil || h.Len() == 0 {
		return ""
	}

	var b strings.Builder
	moveNum := h.start.Fullmove
	i := 0
	if h.start.SideToMove == base.Black {
		b.WriteString(fmt.Sprintf("%d... %s", moveNum, h.moves[0].SAN))
		moveNum++
		i = 1
	}

	for ; i < h.Len(); i += 2 {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(fmt.Sprintf("%d. %s", moveNum, h.moves[i].SAN))
		if i+1 < h.Len() {
			b.WriteString(" ")
			b.WriteString(h.moves[i+1].SAN)
		}
		moveNum++
	}

	return b.String()
}

func (h *History) SAN() []string {
	out := make([]string, len(h.moves))
	for i, e := range h.moves {
		out[i] = e.SAN
	}
	return out
}
