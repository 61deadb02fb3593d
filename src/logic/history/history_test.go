package history

import (
	"errors"
	"hotseatchess/src/base"
	"hotseatchess/src/logic/convert/convfen"
	"hotseatchess/src/logic/rules"
	"strings"
	"testing"
)

func push(t *testing.T, h *History, b *base.Board, uci ...string) *base.Board {
	t.Helper()
	for _, s := range uci {
		mv := base.Move{From: base.MustSquare(s[:2]), To: base.MustSquare(s[2:4])}
		nb, _, err := h.PushMove(b, mv)
		if err != nil {
			t.Fatalf("push %s: %v", s, err)
		}
		b = nb
	}
	return b
}

func TestMovesAsPGN(t *testing.T) {
	b := base.StartPosition()
	h := NewHistory(b)
	if h.MovesAsPGN() != "" || h.MoveCount() != 0 {
		t.Fatal("empty history not empty")
	}

	push(t, h, b, "e2e4", "e7e5", "g1f3", "b8c6", "f1b5")
	if got, want := h.MovesAsPGN(), "1. e4 e5 2. Nf3 Nc6 3. Bb5"; got != want {
		t.Errorf("PGN = %q, want %q", got, want)
	}
	if h.Len() != 5 || h.MoveCount() != 3 {
		t.Errorf("len %d, move count %d", h.Len(), h.MoveCount())
	}
	if got := strings.Join(h.SAN(), " "); got != "e4 e5 Nf3 Nc6 Bb5" {
		t.Errorf("SAN = %q", got)
	}
	last, ok := h.Last()
	if !ok || last.SAN != "Bb5" || last.Board.SideToMove != base.Black {
		t.Errorf("last = %+v", last)
	}
}

func TestMovesAsPGNBlackStarts(t *testing.T) {
	b, err := convfen.ConvertFENToBoard("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	if err != nil {
		t.Fatal(err)
	}
	h := NewHistory(b)
	push(t, h, b, "c7c5", "g1f3", "d7d6")
	if got, want := h.MovesAsPGN(), "1... c5 2. Nf3 d6"; got != want {
		t.Errorf("PGN = %q, want %q", got, want)
	}
}

func TestPushMoveRejects(t *testing.T) {
	b := base.StartPosition()
	h := NewHistory(b)
	_, _, err := h.PushMove(b, base.Move{From: base.MustSquare("e2"), To: base.MustSquare("e5")})
	var ime *base.IllegalMoveError
	if !errors.As(err, &ime) {
		t.Fatalf("err = %v, want IllegalMoveError", err)
	}
	if h.Len() != 0 {
		t.Error("rejected move recorded")
	}
	if _, _, err := h.PushMove(nil, base.Move{}); err == nil {
		t.Error("nil board accepted")
	}
}

func TestPushMoveResolvesFlags(t *testing.T) {
	b := base.StartPosition()
	h := NewHistory(b)
	_, mv, err := h.PushMove(b, base.Move{From: base.MustSquare("e2"), To: base.MustSquare("e4")})
	if err != nil {
		t.Fatal(err)
	}
	if mv.Flag != base.MoveDoublePawnPush {
		t.Errorf("flag = %s", mv.Flag)
	}
}

func TestOccurrences(t *testing.T) {
	b := base.StartPosition()
	h := NewHistory(b)
	if h.Occurrences(b.Key()) != 1 {
		t.Fatal("start position not counted")
	}

	dance := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	b = push(t, h, b, dance...)
	if got := h.Occurrences(b.Key()); got != 2 {
		t.Errorf("after one cycle: %d", got)
	}
	if rules.DrawReasonOf(b, h) == base.DrawThreefold {
		t.Error("twofold reported as threefold")
	}

	b = push(t, h, b, dance...)
	if got := h.Occurrences(b.Key()); got != 3 {
		t.Errorf("after two cycles: %d", got)
	}
	if got := rules.GameStatusOf(b, h); got != base.Draw {
		t.Errorf("status = %s", got)
	}
	if got := rules.DrawReasonOf(b, h); got != base.DrawThreefold {
		t.Errorf("reason = %s", got)
	}
	// halfmove differs but the key does not
	if b.Halfmove != 8 {
		t.Errorf("halfmove = %d", b.Halfmove)
	}
}

func TestMovesReturnsCopy(t *testing.T) {
	b := base.StartPosition()
	h := NewHistory(b)
	push(t, h, b, "e2e4")
	m := h.Moves()
	m[0].SAN = "changed"
	if h.SAN()[0] != "e4" {
		t.Error("Moves exposes internal slice")
	}
}
