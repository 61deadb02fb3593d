package rules

import (
	"hotseatchess/src/base"
	"hotseatchess/src/logic/rules/moves"
)

// DefaultPromotion is used when a promotion move carries no piece kind.
const DefaultPromotion = base.Queen

// Resolve finds the legal move matching mv by from, to and promotion kind.
// A promotion move without a kind resolves to DefaultPromotion.
func Resolve(b *base.Board, mv base.Move) (base.Move, bool) {
	legal := moves.LegalMovesFrom(b, mv.From)
	want := mv.Promotion
	for _, m := range legal {
		if m.To != mv.To {
			continue
		}
		if m.Promotion == base.NoKind && want == base.NoKind {
			return m, true
		}
		if m.Promotion != base.NoKind {
			if (want == base.NoKind && m.Promotion == DefaultPromotion) || m.Promotion == want {
				return m, true
			}
		}
	}
	return base.Move{}, false
}

// IsPromotion reports whether moving from -> to is a legal pawn promotion.
func IsPromotion(b *base.Board, from, to base.Square) bool {
	for _, m := range moves.LegalMovesFrom(b, from) {
		if m.To == to && m.Promotion != base.NoKind {
			return true
		}
	}
	return false
}

// Apply validates mv against the legal moves of b and returns the new board.
// b is never modified; on failure the error is *base.IllegalMoveError.
func Apply(b *base.Board, mv base.Move) (*base.Board, error) {
	if b == nil {
		return nil, &base.IllegalMoveError{Move: mv, Reason: "nil board"}
	}
	if !mv.From.IsValid() || !mv.To.IsValid() {
		return nil, &base.IllegalMoveError{Move: mv, Reason: "out of bounds move"}
	}
	pc := b.At(mv.From)
	if pc.IsEmpty() {
		return nil, &base.IllegalMoveError{Move: mv, Reason: "no piece at from"}
	}
	if !pc.Is(b.SideToMove) {
		return nil, &base.IllegalMoveError{Move: mv, Reason: "not side to move"}
	}
	resolved, ok := Resolve(b, mv)
	if !ok {
		return nil, &base.IllegalMoveError{Move: mv, Reason: "not in legal move set"}
	}

	nb := moves.MakeMove(b, resolved)
	if !nb.KingSquare(base.White).IsValid() || !nb.KingSquare(base.Black).IsValid() {
		return nil, &base.IllegalMoveError{Move: mv, Reason: "move removes a king"}
	}
	return &nb, nil
}
