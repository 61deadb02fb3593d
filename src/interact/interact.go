// Package interact turns square clicks into selections and validated moves.
//
// The Machine owns only the selection state and the user's square marks. The
// board itself belongs to a Position, which applies moves; the machine never
// touches the board except through Position.Play, so a rejected move cannot
// leave a half-updated position behind.
package interact

import (
	"hotseatchess/src/base"
	"hotseatchess/src/logic/rules"
	"hotseatchess/src/logic/rules/moves"
	"slices"
)

// Position is the authoritative game the machine drives.
type Position interface {
	// Board returns a snapshot of the current position.
	Board() base.Board
	// Play applies mv; on error the position is unchanged.
	Play(mv base.Move) error
	// NewGame replaces the position with the initial one.
	NewGame()
}

type State uint8

const (
	Idle State = iota
	PieceSelected
	AwaitingPromotion
)

func (s State) String() string {
	switch s {
	case PieceSelected:
		return "piece-selected"
	case AwaitingPromotion:
		return "awaiting-promotion"
	default:
		return "idle"
	}
}

type Selection struct {
	State       State
	Origin      base.Square // valid unless Idle
	Destination base.Square // valid only in AwaitingPromotion
}

var idle = Selection{State: Idle, Origin: base.NoSquare, Destination: base.NoSquare}

// Outcome tells the caller what a single input event did.
type Outcome uint8

const (
	NoOp Outcome = iota
	Selected
	Deselected
	Moved
	PromotionPending
	PromotionCancelled
	PromotionFailed
	Marked
	Unmarked
	Reset
)

func (o Outcome) String() string {
	switch o {
	case Selected:
		return "selected"
	case Deselected:
		return "deselected"
	case Moved:
		return "moved"
	case PromotionPending:
		return "promotion-pending"
	case PromotionCancelled:
		return "promotion-cancelled"
	case PromotionFailed:
		return "promotion-failed"
	case Marked:
		return "marked"
	case Unmarked:
		return "unmarked"
	case Reset:
		return "reset"
	default:
		return "no-op"
	}
}

type Options struct {
	// AutoQueen plays promotions with the default queen instead of waiting
	// for a choice.
	AutoQueen bool
	// KeepMarks keeps user marks across left clicks.
	KeepMarks bool
}

type Machine struct {
	pos   Position
	opts  Options
	sel   Selection
	marks map[base.Square]bool
}

func NewMachine(pos Position, opts Options) *Machine {
	return &Machine{pos: pos, opts: opts, sel: idle, marks: make(map[base.Square]bool)}
}

func (m *Machine) Selection() Selection { return m.sel }

// Pending returns the move waiting for a promotion choice.
func (m *Machine) Pending() (origin, destination base.Square, ok bool) {
	if m.sel.State != AwaitingPromotion {
		return base.NoSquare, base.NoSquare, false
	}
	return m.sel.Origin, m.sel.Destination, true
}

// Click handles a left click on sq. Rejected clicks never fail; they leave
// the selection as is or fall back to idle.
func (m *Machine) Click(sq base.Square) Outcome {
	if m.sel.State == AwaitingPromotion || !sq.IsValid() {
		return NoOp
	}
	if !m.opts.KeepMarks {
		clear(m.marks)
	}

	b := m.pos.Board()
	if m.sel.State == Idle {
		return m.trySelect(&b, sq, NoOp)
	}

	origin := m.sel.Origin
	if sq == origin {
		m.sel = idle
		return Deselected
	}
	if !isDestination(&b, origin, sq) {
		// re-select another own piece, otherwise drop the selection
		return m.trySelect(&b, sq, Deselected)
	}

	mv := base.Move{From: origin, To: sq}
	if rules.IsPromotion(&b, origin, sq) {
		if !m.opts.AutoQueen {
			m.sel = Selection{State: AwaitingPromotion, Origin: origin, Destination: sq}
			return PromotionPending
		}
		mv.Promotion = rules.DefaultPromotion
	}
	if err := m.pos.Play(mv); err != nil {
		return m.trySelect(&b, sq, Deselected)
	}
	m.sel = idle
	return Moved
}

// trySelect selects sq when it holds a piece of the side to move with at
// least one legal move; otherwise it goes idle and returns fallback.
func (m *Machine) trySelect(b *base.Board, sq base.Square, fallback Outcome) Outcome {
	if b.At(sq).Is(b.SideToMove) && len(moves.LegalMovesFrom(b, sq)) > 0 {
		m.sel = Selection{State: PieceSelected, Origin: sq, Destination: base.NoSquare}
		return Selected
	}
	m.sel = idle
	return fallback
}

func isDestination(b *base.Board, from, to base.Square) bool {
	for _, mv := range moves.LegalMovesFrom(b, from) {
		if mv.To == to {
			return true
		}
	}
	return false
}

// ChoosePromotion completes the pending promotion with kind. On failure the
// machine stays in AwaitingPromotion and the applier's error is returned.
func (m *Machine) ChoosePromotion(kind base.Kind) (Outcome, error) {
	if m.sel.State != AwaitingPromotion {
		return NoOp, nil
	}
	mv := base.Move{From: m.sel.Origin, To: m.sel.Destination, Promotion: kind}
	if err := m.pos.Play(mv); err != nil {
		return PromotionFailed, err
	}
	m.sel = idle
	return Moved, nil
}

// CancelPromotion discards the pending move; the board is untouched.
func (m *Machine) CancelPromotion() Outcome {
	if m.sel.State != AwaitingPromotion {
		return NoOp
	}
	m.sel = idle
	return PromotionCancelled
}

// RightClick toggles a user mark on sq regardless of the selection.
func (m *Machine) RightClick(sq base.Square) Outcome {
	if !sq.IsValid() {
		return NoOp
	}
	if m.marks[sq] {
		delete(m.marks, sq)
		return Unmarked
	}
	m.marks[sq] = true
	return Marked
}

// Reset starts a new game from any state.
func (m *Machine) Reset() Outcome {
	m.pos.NewGame()
	m.Clear()
	return Reset
}

// Clear drops selection and marks without touching the position.
func (m *Machine) Clear() {
	m.sel = idle
	clear(m.marks)
}

func (m *Machine) Marks() []base.Square {
	out := make([]base.Square, 0, len(m.marks))
	for sq := range m.marks {
		out = append(out, sq)
	}
	slices.SortFunc(out, func(a, b base.Square) int { return a.Index() - b.Index() })
	return out
}
