package cli

import (
	"bytes"
	"hotseatchess/src"
	"hotseatchess/src/base"
	"hotseatchess/src/logx"
	"strings"
	"testing"
)

func runScript(t *testing.T, s *src.Session, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	c := NewCLI(s, PrintView, Style{ASCII: true})
	c.SetIO(strings.NewReader(strings.Join(script, "\n")+"\n"), &out)
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	return out.String()
}

func TestRunMoves(t *testing.T) {
	s := src.NewSession(logx.NewNop())
	out := runScript(t, s, "e2", "e4", "e7e5", "g1f3", "quit")

	if !strings.Contains(out, "Quitting") {
		t.Error("quit not handled")
	}
	if got, want := s.PGNBody(), "1. e4 e5 2. Nf3"; got != want {
		t.Errorf("moves = %q, want %q", got, want)
	}
	if !strings.Contains(out, "Status: Black's turn") {
		t.Errorf("status line missing:\n%s", out)
	}
}

func TestRunReselectWithCoordinateMove(t *testing.T) {
	s := src.NewSession(logx.NewNop())
	runScript(t, s, "e2", "d2d4", "quit")
	if got := s.PGNBody(); got != "1. d4" {
		t.Errorf("moves = %q", got)
	}

	s = src.NewSession(logx.NewNop())
	runScript(t, s, "e2", "e2e4")
	if got := s.PGNBody(); got != "1. e4" {
		t.Errorf("moves = %q", got)
	}
}

func TestRunMessages(t *testing.T) {
	s := src.NewSession(logx.NewNop())
	out := runScript(t, s, "e5", "castle", "cancel", "moves")
	for _, want := range []string{
		"Nothing to select there",
		`Unknown command "castle", type 'help'`,
		"Nothing to cancel",
		"No moves yet",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRunPromotion(t *testing.T) {
	s := src.NewSession(logx.NewNop())
	if _, err := s.CreateFromFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1"); err != nil {
		t.Fatal(err)
	}
	out := runScript(t, s, "a7a8", "x", "cancel", "a7a8", "n")
	for _, want := range []string{
		"Promote to q, r, b or n? (or cancel)",
		"Choose q, r, b or n (or cancel)",
		"Promotion cancelled",
		"a7a8=? > ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if s.Board().At(base.MustSquare("a8")) != base.WKnight {
		t.Errorf("a8 = %v", s.Board().At(base.MustSquare("a8")))
	}
}

func TestRunMarksAndReset(t *testing.T) {
	s := src.NewSession(logx.NewNop())
	out := runScript(t, s, "m d4", "fen", "e2e4", "new")
	if !strings.Contains(out, "*.*") && !strings.Contains(out, "* *") {
		t.Errorf("mark not drawn:\n%s", out)
	}
	if s.FEN() != base.FEN_START_GAME || s.MoveCount() != 0 {
		t.Error("new did not reset the game")
	}
}

func TestPrintViewPlain(t *testing.T) {
	s := src.NewSession(logx.NewNop())
	s.Click(base.MustSquare("e2"))
	var out bytes.Buffer
	PrintView(&out, s.View(), Style{ASCII: true})
	text := out.String()
	if strings.Contains(text, "\033[") {
		t.Error("ANSI codes without color")
	}
	for _, want := range []string{"[P]", "( )", "r  n  b  q  k  b  n  r"} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}
}

func TestPrintViewColor(t *testing.T) {
	s := src.NewSession(logx.NewNop())
	var out bytes.Buffer
	PrintView(&out, s.View(), Style{Color: true})
	if !strings.Contains(out.String(), "♔") || !strings.Contains(out.String(), reset) {
		t.Error("color board lacks glyphs or ANSI reset")
	}
}

type memClipboard struct {
	text string
	err  error
}

func (m *memClipboard) ReadAll() (string, error) { return m.text, m.err }

func (m *memClipboard) WriteAll(text string) error {
	if m.err != nil {
		return m.err
	}
	m.text = text
	return nil
}

func TestCopyPaste(t *testing.T) {
	s := src.NewSession(logx.NewNop())
	clip := &memClipboard{}
	var out bytes.Buffer
	c := NewCLI(s, PrintView, Style{ASCII: true})
	c.SetClipboard(clip)
	c.SetIO(strings.NewReader("e2e4\ncopy\nnew\npaste\n"), &out)
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	if clip.text != want {
		t.Errorf("clipboard = %q", clip.text)
	}
	if s.FEN() != want {
		t.Errorf("pasted FEN = %q", s.FEN())
	}
	for _, msg := range []string{"FEN copied", "FEN loaded"} {
		if !strings.Contains(out.String(), msg) {
			t.Errorf("missing %q", msg)
		}
	}

	clip.text = "garbage"
	out.Reset()
	c.SetIO(strings.NewReader("paste\n"), &out)
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Invalid FEN") || s.FEN() != want {
		t.Errorf("bad paste changed the game:\n%s", out.String())
	}
}
