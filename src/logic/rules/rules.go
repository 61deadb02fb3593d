package rules

import (
	"hotseatchess/src/base"
	"hotseatchess/src/logic/rules/moves"
)

// Repetitions reports how often a position occurred in the game so far,
// the current one included.
type Repetitions interface {
	Occurrences(key base.PositionKey) int
}

// halfmoves without pawn move or capture that draw the game
const FiftyMoveLimit = 100

// true if the side to move is in check
func InCheck(b *base.Board) bool {
	king := b.KingSquare(b.SideToMove)
	if !king.IsValid() {
		// ??? king not found
		return false
	}
	return moves.IsSquareAttacked(b, king, b.SideToMove.Opponent())
}

func IsCheckmate(b *base.Board) bool {
	return InCheck(b) && !moves.HasLegalMoves(b)
}

func IsStalemate(b *base.Board) bool {
	return !InCheck(b) && !moves.HasLegalMoves(b)
}

func IsDraw(b *base.Board, reps Repetitions) bool {
	return DrawReasonOf(b, reps) != base.NoDraw
}

// DrawReasonOf classifies drawn positions. reps may be nil, which disables
// the repetition check.
func DrawReasonOf(b *base.Board, reps Repetitions) base.DrawReason {
	if IsStalemate(b) {
		return base.DrawStalemate
	}
	if IsCheckmate(b) {
		return base.NoDraw
	}
	// fifty-move rule: 100 halfmove == 50 move
	if b.Halfmove >= FiftyMoveLimit {
		return base.DrawFiftyMove
	}
	if reps != nil && reps.Occurrences(b.Key()) >= 3 {
		return base.DrawThreefold
	}
	if IsInsufficientMaterial(b) {
		return base.DrawInsufficientMaterial
	}
	return base.NoDraw
}

// return status: Normal, Check, Checkmate, Stalemate or Draw
func GameStatusOf(b *base.Board, reps Repetitions) base.GameStatus {
	inCheck := InCheck(b)
	if !moves.HasLegalMoves(b) {
		if inCheck {
			return base.Checkmate
		}
		return base.Stalemate
	}
	if DrawReasonOf(b, reps) != base.NoDraw {
		return base.Draw
	}
	if inCheck {
		return base.Check
	}
	return base.Normal
}

// K v K, K+minor v K, and K+B v K+B with bishops on same colored squares
func IsInsufficientMaterial(b *base.Board) bool {
	var (
		knights      int
		bishops      [2]int
		bishopSquare [2]base.Square
	)

	for idx := 0; idx < 64; idx++ {
		pc := b.Mailbox[idx]
		switch pc.Kind() {
		case base.Pawn, base.Rook, base.Queen:
			return false
		case base.Knight:
			knights++
		case base.Bishop:
			bishops[pc.Color()]++
			bishopSquare[pc.Color()] = base.SquareFromIndex(idx)
		}
	}

	totalMinor := knights + bishops[base.White] + bishops[base.Black]
	if totalMinor <= 1 {
		return true
	}
	if knights == 0 && bishops[base.White] == 1 && bishops[base.Black] == 1 {
		return bishopSquare[base.White].IsLight() == bishopSquare[base.Black].IsLight()
	}
	return false
}
