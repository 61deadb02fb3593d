package cli

import (
	"fmt"
	"hotseatchess/src"
	"hotseatchess/src/base"
	"hotseatchess/src/interact"
	"io"
)

type Style struct {
	Color bool // ANSI colors
	ASCII bool // letters instead of unicode glyphs
}

type DrawFunc func(w io.Writer, v src.View, st Style)

// ANSI-code
const (
	reset    = "\033[0m"
	lightBg  = "\033[47m"
	darkBg   = "\033[100m"
	originBg = "\033[43m"
	destBg   = "\033[42m"
	captBg   = "\033[41m"
	markBg   = "\033[44m"
	whiteF   = "\033[97m"
	blackF   = "\033[30m"
	dimF     = "\033[90m"
)

// Piece -> unicode glyph
func pieceGlyph(p base.Piece, ascii bool) string {
	if p.IsEmpty() {
		return " "
	}
	if ascii {
		return string(base.ConvertRuneFromPiece(p))
	}
	glyphs := [2][7]string{
		{"", "♙", "♘", "♗", "♖", "♕", "♔"},
		{"", "♟", "♞", "♝", "♜", "♛", "♚"},
	}
	return glyphs[p.Color()][p.Kind()]
}

// plain-text marker used when colors are off
func highlightMarker(k interact.HighlightKind) (string, string) {
	switch k {
	case interact.SelectedOrigin:
		return "[", "]"
	case interact.LegalCapture:
		return "x", "x"
	case interact.UserMarked:
		return "*", "*"
	default:
		return "(", ")"
	}
}

func highlightBg(k interact.HighlightKind) string {
	switch k {
	case interact.SelectedOrigin:
		return originBg
	case interact.LegalCapture:
		return captBg
	case interact.UserMarked:
		return markBg
	default:
		return destBg
	}
}

// PrintView draws the board from white's side with the highlight set.
func PrintView(w io.Writer, v src.View, st Style) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "   a  b  c  d  e  f  g  h")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(w, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			sq := base.Square{File: uint8(file), Rank: uint8(rank)}
			p := v.Board.At(sq)
			g := pieceGlyph(p, st.ASCII)
			hk, lit := v.Highlights[sq]

			if !st.Color {
				l, r := " ", " "
				if lit {
					l, r = highlightMarker(hk)
				}
				if g == " " && !lit && !sq.IsLight() {
					g = "."
				}
				fmt.Fprintf(w, "%s%s%s", l, g, r)
				continue
			}

			var bg, fg string
			if sq.IsLight() {
				bg = lightBg
			} else {
				bg = darkBg
			}
			if lit {
				bg = highlightBg(hk)
			}
			switch {
			case p.IsEmpty():
				fg = dimF
				if lit && hk == interact.LegalDestination {
					g = "·"
				}
			case p.Color() == base.White:
				fg = whiteF
			default:
				fg = blackF
			}
			fmt.Fprintf(w, "%s%s %s %s", bg, fg, g, reset)
		}
		fmt.Fprintf(w, " %d\n", rank+1)
	}
	fmt.Fprintln(w, "   a  b  c  d  e  f  g  h")
	fmt.Fprintln(w)
}
