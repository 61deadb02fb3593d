package convfen

import (
	"hotseatchess/src/base"
	"hotseatchess/src/logic/rules/moves"
	"strconv"
	"strings"
)

func ConvertBoardToFEN(board base.Board) string {
	// pieces
	var b strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := board.Mailbox[rank*8+file]
			if pc.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			b.WriteRune(base.ConvertRuneFromPiece(pc))
		}
		if empty > 0 {
			b.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			b.WriteByte('/')
		}
	}

	// side to move
	if board.SideToMove == base.White {
		b.WriteString(" w ")
	} else {
		b.WriteString(" b ")
	}

	// castling
	cast := ""
	if board.Castling.WK {
		cast += "K"
	}
	if board.Castling.WQ {
		cast += "Q"
	}
	if board.Castling.BK {
		cast += "k"
	}
	if board.Castling.BQ {
		cast += "q"
	}
	if cast == "" {
		cast = "-"
	}
	b.WriteString(cast + " ")

	// en-passant
	b.WriteString(board.EnPassant.String() + " ")

	// moves
	b.WriteString(strconv.Itoa(board.Halfmove) + " ")
	b.WriteString(strconv.Itoa(board.Fullmove))

	return b.String()
}

// ConvertFENToBoard decodes a six-field position record. Every structural
// violation is reported as *base.MalformedPositionError; nothing is corrected.
func ConvertFENToBoard(fen string) (*base.Board, error) {
	bad := func(reason string) error {
		return &base.MalformedPositionError{Record: fen, Reason: reason}
	}
	board := &base.Board{EnPassant: base.NoSquare}

	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, bad("must be 6 fields, but there are " + strconv.Itoa(len(parts)))
	}

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return nil, bad("must be 8 rows, but there are " + strconv.Itoa(len(ranks)))
	}

	// pieces
	for r := 0; r < 8; r++ {
		count := 0
		for _, ch := range ranks[r] {
			if count >= 8 {
				return nil, bad("row overflow in row " + strconv.Itoa(r+1))
			}
			if ch >= '1' && ch <= '8' {
				empty := int(ch - '0')
				if empty+count > 8 {
					return nil, bad("row overflow in row " + strconv.Itoa(r+1))
				}
				count += empty
				continue
			}
			pc := base.ConvertPieceFromRune(ch)
			if pc.IsEmpty() {
				return nil, bad("invalid piece token " + strconv.QuoteRune(ch))
			}
			rank := 7 - r
			if pc.Kind() == base.Pawn && (rank == 0 || rank == 7) {
				return nil, bad("pawn on first or last rank")
			}
			board.Mailbox[rank*8+count] = pc
			count++
		}
		if count != 8 {
			return nil, bad("must be 8 fields in row " + strconv.Itoa(r+1) + ", but there are " + strconv.Itoa(count))
		}
	}
	if n := board.CountPiece(base.WKing); n != 1 {
		return nil, bad("white must have exactly one king, found " + strconv.Itoa(n))
	}
	if n := board.CountPiece(base.BKing); n != 1 {
		return nil, bad("black must have exactly one king, found " + strconv.Itoa(n))
	}

	// side to move
	switch parts[1] {
	case "w":
		board.SideToMove = base.White
	case "b":
		board.SideToMove = base.Black
	default:
		return nil, bad("invalid side to move " + parts[1])
	}

	// castling
	if err := parseCastling(board, parts[2]); err != "" {
		return nil, bad(err)
	}

	// en passant
	if ep := parts[3]; ep != "-" {
		sq, err := base.ParseSquare(ep)
		if err != nil {
			return nil, bad("invalid en-passant square " + ep)
		}
		if reason := checkEnPassant(board, sq); reason != "" {
			return nil, bad(reason)
		}
		board.EnPassant = sq
	}

	// halfmove
	var err error
	if board.Halfmove, err = strconv.Atoi(parts[4]); err != nil || board.Halfmove < 0 {
		return nil, bad("incorrect halfmove " + parts[4])
	}

	// fullmove
	if board.Fullmove, err = strconv.Atoi(parts[5]); err != nil || board.Fullmove < 1 {
		return nil, bad("incorrect fullmove " + parts[5])
	}

	// the side that just moved cannot be in check
	idle := board.SideToMove.Opponent()
	if moves.IsSquareAttacked(board, board.KingSquare(idle), board.SideToMove) {
		return nil, bad("side not to move is in check")
	}

	return board, nil
}

func parseCastling(board *base.Board, cast string) string {
	if cast == "-" {
		return ""
	}
	if cast == "" || len(cast) > 4 {
		return "invalid castling " + cast
	}
	home := func(c base.Color, rookFile uint8) bool {
		rank := uint8(0)
		if c == base.Black {
			rank = 7
		}
		return board.At(base.Square{File: 4, Rank: rank}) == base.NewPiece(base.King, c) &&
			board.At(base.Square{File: rookFile, Rank: rank}) == base.NewPiece(base.Rook, c)
	}
	for _, ch := range cast {
		var flag *bool
		var ok bool
		switch ch {
		case 'K':
			flag, ok = &board.Castling.WK, home(base.White, 7)
		case 'Q':
			flag, ok = &board.Castling.WQ, home(base.White, 0)
		case 'k':
			flag, ok = &board.Castling.BK, home(base.Black, 7)
		case 'q':
			flag, ok = &board.Castling.BQ, home(base.Black, 0)
		default:
			return "invalid castling token " + string(ch)
		}
		if *flag {
			return "duplicate castling token " + string(ch)
		}
		if !ok {
			return "castling right " + string(ch) + " without king and rook on home squares"
		}
		*flag = true
	}
	return ""
}

// target must be the square skipped by the pawn that just double-advanced
func checkEnPassant(board *base.Board, sq base.Square) string {
	rank, pawnRank, originRank := uint8(5), uint8(4), uint8(6)
	pawn := base.BPawn
	if board.SideToMove == base.Black {
		rank, pawnRank, originRank = 2, 3, 1
		pawn = base.WPawn
	}
	if sq.Rank != rank {
		return "en-passant square " + sq.String() + " on wrong rank"
	}
	if !board.At(sq).IsEmpty() || board.At(base.Square{File: sq.File, Rank: pawnRank}) != pawn {
		return "en-passant square " + sq.String() + " without double-pushed pawn"
	}
	if !board.At(base.Square{File: sq.File, Rank: originRank}).IsEmpty() {
		return "en-passant square " + sq.String() + " with occupied pawn origin"
	}
	return ""
}
