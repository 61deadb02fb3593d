package base

import "fmt"

// IllegalMoveError is returned by the move applier for a move that is not in
// the legal move set of the board it was applied to. The board is unchanged.
type IllegalMoveError struct {
	Move   Move
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s: %s", e.Move, e.Reason)
}

// MalformedPositionError is returned when a position record violates the
// structural invariants of a board.
type MalformedPositionError struct {
	Record string
	Reason string
}

func (e *MalformedPositionError) Error() string {
	return fmt.Sprintf("malformed position %q: %s", e.Record, e.Reason)
}
