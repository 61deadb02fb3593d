package interact

import (
	"hotseatchess/src/base"
	"hotseatchess/src/logic/rules/moves"
)

type HighlightKind uint8

const (
	LegalDestination HighlightKind = iota
	LegalCapture
	SelectedOrigin
	UserMarked
)

func (k HighlightKind) String() string {
	switch k {
	case LegalCapture:
		return "legal-destination-capture"
	case SelectedOrigin:
		return "selected-origin"
	case UserMarked:
		return "user-marked"
	default:
		return "legal-destination"
	}
}

type Highlights map[base.Square]HighlightKind

// Highlights derives the highlight set from the selection and the marks.
// User marks win over move hints on the same square.
func (m *Machine) Highlights() Highlights {
	h := make(Highlights)
	if m.sel.State != Idle {
		b := m.pos.Board()
		for _, mv := range moves.LegalMovesFrom(&b, m.sel.Origin) {
			if !b.At(mv.To).IsEmpty() || mv.Flag == base.MoveEnPassant {
				h[mv.To] = LegalCapture
			} else {
				h[mv.To] = LegalDestination
			}
		}
		h[m.sel.Origin] = SelectedOrigin
	}
	for sq := range m.marks {
		h[sq] = UserMarked
	}
	return h
}
