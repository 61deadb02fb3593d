package rules

import (
	"hotseatchess/src/base"
	"hotseatchess/src/logic/rules/moves"
	"strings"
)

// Standard Algebraic Notation

// SAN renders a legal move of b, e.g. "Nbd7", "exd6", "e8=Q+", "O-O", "Qh4#".
// mv must come from the legal move set of b so that its flag is set.
func SAN(b *base.Board, mv base.Move) string {
	var s strings.Builder
	pc := b.At(mv.From)

	switch {
	case mv.Flag == base.MoveKingSideCastle:
		s.WriteString("O-O")
	case mv.Flag == base.MoveQueenSideCastle:
		s.WriteString("O-O-O")
	default:
		capture := !b.At(mv.To).IsEmpty() || mv.Flag == base.MoveEnPassant
		if pc.Kind() == base.Pawn {
			if capture {
				s.WriteByte('a' + mv.From.File)
			}
		} else {
			s.WriteRune(base.ConvertRuneFromPiece(base.NewPiece(pc.Kind(), base.White)))
			s.WriteString(disambiguation(b, mv, pc))
		}
		if capture {
			s.WriteByte('x')
		}
		s.WriteString(mv.To.String())
		if mv.Promotion != base.NoKind {
			s.WriteByte('=')
			s.WriteRune(base.ConvertRuneFromPiece(base.NewPiece(mv.Promotion, base.White)))
		}
	}

	nb := moves.MakeMove(b, mv)
	if IsCheckmate(&nb) {
		s.WriteByte('#')
	} else if InCheck(&nb) {
		s.WriteByte('+')
	}
	return s.String()
}

// file, rank or full square of the origin when another piece of the same
// kind can reach the same destination
func disambiguation(b *base.Board, mv base.Move, pc base.Piece) string {
	var ambiguous, sameFile, sameRank bool
	for _, other := range moves.LegalMoves(b) {
		if other.To != mv.To || other.From == mv.From || b.At(other.From) != pc {
			continue
		}
		ambiguous = true
		if other.From.File == mv.From.File {
			sameFile = true
		}
		if other.From.Rank == mv.From.Rank {
			sameRank = true
		}
	}
	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string(rune('a' + mv.From.File))
	case !sameRank:
		return string(rune('1' + mv.From.Rank))
	default:
		return mv.From.String()
	}
}
