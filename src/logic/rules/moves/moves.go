package moves

import (
	"cmp"
	"hotseatchess/src/base"
	"slices"
)

var (
	knightOffsets  = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets    = [8][2]int{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
	rookDirs       = [][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	bishopDirs     = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs      = append(append([][2]int{}, rookDirs...), bishopDirs...)
	promotionKinds = base.PromotionKinds
)

// checks if the square is attacked by any piece of color by
func IsSquareAttacked(b *base.Board, sq base.Square, by base.Color) bool {
	mb := &b.Mailbox

	// for pawn: an attacking pawn stands one rank behind sq from its own side
	pawnRank := -1
	if by == base.Black {
		pawnRank = 1
	}
	for _, df := range []int{-1, 1} {
		if t, ok := sq.Offset(df, pawnRank); ok && mb.At(t) == base.NewPiece(base.Pawn, by) {
			return true
		}
	}

	// for knights
	for _, o := range knightOffsets {
		if t, ok := sq.Offset(o[0], o[1]); ok && mb.At(t) == base.NewPiece(base.Knight, by) {
			return true
		}
	}

	// for bishops/rooks/queens
	if rayAttacked(mb, sq, rookDirs, base.NewPiece(base.Rook, by), base.NewPiece(base.Queen, by)) ||
		rayAttacked(mb, sq, bishopDirs, base.NewPiece(base.Bishop, by), base.NewPiece(base.Queen, by)) {
		return true
	}

	// for king (adjacent)
	for _, o := range kingOffsets {
		if t, ok := sq.Offset(o[0], o[1]); ok && mb.At(t) == base.NewPiece(base.King, by) {
			return true
		}
	}
	return false
}

func rayAttacked(mb *base.Mailbox, sq base.Square, dirs [][2]int, slider, queen base.Piece) bool {
	for _, d := range dirs {
		t := sq
		for {
			var ok bool
			if t, ok = t.Offset(d[0], d[1]); !ok {
				break
			}
			p := mb.At(t)
			if p.IsEmpty() {
				continue
			}
			if p == slider || p == queen {
				return true
			}
			break
		}
	}
	return false
}

func PseudoLegalPawnMoves(b *base.Board, from base.Square, out *[]base.Move) {
	mb := &b.Mailbox
	p := mb.At(from)
	if p.Kind() != base.Pawn {
		return
	}
	c := p.Color()

	dir := 1
	startRank := uint8(1)
	promoRank := uint8(7)
	if c == base.Black {
		dir = -1
		startRank = 6
		promoRank = 0
	}

	push := func(to base.Square, flag base.MoveFlag) {
		if to.Rank == promoRank {
			// one move per promotion kind, queen first
			for _, k := range promotionKinds {
				*out = append(*out, base.Move{From: from, To: to, Promotion: k, Flag: flag})
			}
			return
		}
		*out = append(*out, base.Move{From: from, To: to, Flag: flag})
	}

	// single and double push
	if to, ok := from.Offset(0, dir); ok && mb.At(to).IsEmpty() {
		push(to, base.MoveNormal)
		if from.Rank == startRank {
			if to2, ok := from.Offset(0, 2*dir); ok && mb.At(to2).IsEmpty() {
				*out = append(*out, base.Move{From: from, To: to2, Flag: base.MoveDoublePawnPush})
			}
		}
	}

	// captures
	for _, df := range []int{-1, 1} {
		to, ok := from.Offset(df, dir)
		if !ok {
			continue
		}
		if mb.At(to).Is(c.Opponent()) {
			push(to, base.MoveNormal)
			continue
		}
		// if pawn can capture en-passant
		if to == b.EnPassant && c == b.SideToMove && mb.At(to).IsEmpty() {
			*out = append(*out, base.Move{From: from, To: to, Flag: base.MoveEnPassant})
		}
	}
}

func PseudoLegalKnightMoves(b *base.Board, from base.Square, out *[]base.Move) {
	genSteps(b, from, knightOffsets, out)
}

func genSteps(b *base.Board, from base.Square, offsets [8][2]int, out *[]base.Move) {
	mb := &b.Mailbox
	c := mb.At(from).Color()
	for _, o := range offsets {
		to, ok := from.Offset(o[0], o[1])
		if !ok || mb.At(to).Is(c) {
			continue
		}
		*out = append(*out, base.Move{From: from, To: to})
	}
}

func PseudoLegalKingMoves(b *base.Board, from base.Square, out *[]base.Move) {
	mb := &b.Mailbox
	p := mb.At(from)
	if p.Kind() != base.King {
		return
	}
	genSteps(b, from, kingOffsets, out)

	c := p.Color()
	home := uint8(0)
	kingSide, queenSide := b.Castling.WK, b.Castling.WQ
	if c == base.Black {
		home = 7
		kingSide, queenSide = b.Castling.BK, b.Castling.BQ
	}
	if from != (base.Square{File: 4, Rank: home}) {
		return
	}
	enemy := c.Opponent()
	rook := base.NewPiece(base.Rook, c)
	sq := func(file uint8) base.Square { return base.Square{File: file, Rank: home} }
	empty := func(files ...uint8) bool {
		for _, f := range files {
			if !mb.At(sq(f)).IsEmpty() {
				return false
			}
		}
		return true
	}
	safe := func(files ...uint8) bool {
		for _, f := range files {
			if IsSquareAttacked(b, sq(f), enemy) {
				return false
			}
		}
		return true
	}

	// king side: f and g empty, e f g not attacked
	if kingSide && mb.At(sq(7)) == rook && empty(5, 6) && safe(4, 5, 6) {
		*out = append(*out, base.Move{From: from, To: sq(6), Flag: base.MoveKingSideCastle})
	}
	// queen side: b c d empty, e d c not attacked
	if queenSide && mb.At(sq(0)) == rook && empty(1, 2, 3) && safe(4, 3, 2) {
		*out = append(*out, base.Move{From: from, To: sq(2), Flag: base.MoveQueenSideCastle})
	}
}

// genSliding for bishops/rooks/queens
func genSliding(b *base.Board, from base.Square, directions [][2]int, out *[]base.Move) {
	mb := &b.Mailbox
	c := mb.At(from).Color()
	for _, d := range directions {
		to := from
		for {
			var ok bool
			if to, ok = to.Offset(d[0], d[1]); !ok {
				break
			}
			q := mb.At(to)
			if q.IsEmpty() {
				*out = append(*out, base.Move{From: from, To: to})
				continue
			}
			// capture stops the ray, own piece blocks it
			if !q.Is(c) {
				*out = append(*out, base.Move{From: from, To: to})
			}
			break
		}
	}
}

func PseudoLegalRookMoves(b *base.Board, from base.Square, out *[]base.Move) {
	genSliding(b, from, rookDirs, out)
}
func PseudoLegalBishopMoves(b *base.Board, from base.Square, out *[]base.Move) {
	genSliding(b, from, bishopDirs, out)
}
func PseudoLegalQueenMoves(b *base.Board, from base.Square, out *[]base.Move) {
	genSliding(b, from, queenDirs, out)
}

// PseudoLegalMoves returns the moves of the piece on sq ignoring whether its
// own king is left in check.
func PseudoLegalMoves(b *base.Board, sq base.Square) []base.Move {
	moves := make([]base.Move, 0, 32)
	appendPseudoLegal(b, sq, &moves)
	return moves
}

func appendPseudoLegal(b *base.Board, sq base.Square, out *[]base.Move) {
	switch b.At(sq).Kind() {
	case base.Pawn:
		PseudoLegalPawnMoves(b, sq, out)
	case base.Knight:
		PseudoLegalKnightMoves(b, sq, out)
	case base.Bishop:
		PseudoLegalBishopMoves(b, sq, out)
	case base.Rook:
		PseudoLegalRookMoves(b, sq, out)
	case base.Queen:
		PseudoLegalQueenMoves(b, sq, out)
	case base.King:
		PseudoLegalKingMoves(b, sq, out)
	}
}

// all pseudo-legal moves of the side to move
func PseudoLegalAll(b *base.Board) []base.Move {
	moves := make([]base.Move, 0, 256)
	for i := 0; i < 64; i++ {
		if b.Mailbox[i].Is(b.SideToMove) {
			appendPseudoLegal(b, base.SquareFromIndex(i), &moves)
		}
	}
	return moves
}

// MakeMove plays mv without any legality check and returns the new board.
// b is not modified.
func MakeMove(b *base.Board, mv base.Move) base.Board {
	nb := *b
	mb := &nb.Mailbox
	pc := mb.At(mv.From)
	captured := mb.At(mv.To)

	// move piece
	mb.Set(mv.To, pc)
	mb.Set(mv.From, base.EmptyPiece)

	switch mv.Flag {
	case base.MoveEnPassant:
		// captured pawn stands beside the mover, not on the target square
		capSq := base.Square{File: mv.To.File, Rank: mv.From.Rank}
		captured = mb.At(capSq)
		mb.Set(capSq, base.EmptyPiece)
	case base.MoveKingSideCastle:
		r := mv.From.Rank
		mb.Set(base.Square{File: 5, Rank: r}, mb.At(base.Square{File: 7, Rank: r}))
		mb.Set(base.Square{File: 7, Rank: r}, base.EmptyPiece)
	case base.MoveQueenSideCastle:
		r := mv.From.Rank
		mb.Set(base.Square{File: 3, Rank: r}, mb.At(base.Square{File: 0, Rank: r}))
		mb.Set(base.Square{File: 0, Rank: r}, base.EmptyPiece)
	}

	if mv.Promotion != base.NoKind {
		mb.Set(mv.To, base.NewPiece(mv.Promotion, pc.Color()))
	}

	// any move from or onto a king or rook home square clears its right
	clearCastling(&nb.Castling, mv.From)
	clearCastling(&nb.Castling, mv.To)

	// en-passant target only right after a double push
	nb.EnPassant = base.NoSquare
	if mv.Flag == base.MoveDoublePawnPush {
		nb.EnPassant = base.Square{File: mv.From.File, Rank: (mv.From.Rank + mv.To.Rank) / 2}
	}

	// halfmove clock: reset on pawn move or capture
	if pc.Kind() == base.Pawn || !captured.IsEmpty() {
		nb.Halfmove = 0
	} else {
		nb.Halfmove++
	}

	// fullmove increment: after black move
	if nb.SideToMove == base.Black {
		nb.Fullmove++
	}
	nb.SideToMove = nb.SideToMove.Opponent()
	return nb
}

func clearCastling(c *base.Castling, sq base.Square) {
	switch sq {
	case base.Square{File: 4, Rank: 0}:
		c.WK, c.WQ = false, false
	case base.Square{File: 7, Rank: 0}:
		c.WK = false
	case base.Square{File: 0, Rank: 0}:
		c.WQ = false
	case base.Square{File: 4, Rank: 7}:
		c.BK, c.BQ = false, false
	case base.Square{File: 7, Rank: 7}:
		c.BK = false
	case base.Square{File: 0, Rank: 7}:
		c.BQ = false
	}
}

// leavesKingSafe tries mv on a copy and reports whether the mover's king is
// not attacked afterwards.
func leavesKingSafe(b *base.Board, mv base.Move) bool {
	mover := b.At(mv.From).Color()
	nb := MakeMove(b, mv)
	king := nb.KingSquare(mover)
	if !king.IsValid() {
		return true
	}
	return !IsSquareAttacked(&nb, king, mover.Opponent())
}

// LegalMovesFrom returns the legal moves of the piece on sq. Pieces of the
// side not to move have none.
func LegalMovesFrom(b *base.Board, sq base.Square) []base.Move {
	if !b.At(sq).Is(b.SideToMove) {
		return nil
	}
	pl := PseudoLegalMoves(b, sq)
	legal := pl[:0]
	for _, mv := range pl {
		if leavesKingSafe(b, mv) {
			legal = append(legal, mv)
		}
	}
	SortMoves(legal)
	return legal
}

// LegalMoves returns every legal move of the side to move.
func LegalMoves(b *base.Board) []base.Move {
	pl := PseudoLegalAll(b)
	legal := make([]base.Move, 0, len(pl))
	for _, mv := range pl {
		if leavesKingSafe(b, mv) {
			legal = append(legal, mv)
		}
	}
	SortMoves(legal)
	return legal
}

// HasLegalMoves stops at the first legal move found.
func HasLegalMoves(b *base.Board) bool {
	var buf []base.Move
	for i := 0; i < 64; i++ {
		if !b.Mailbox[i].Is(b.SideToMove) {
			continue
		}
		buf = buf[:0]
		appendPseudoLegal(b, base.SquareFromIndex(i), &buf)
		for _, mv := range buf {
			if leavesKingSafe(b, mv) {
				return true
			}
		}
	}
	return false
}

// SortMoves orders by origin file, origin rank, destination file,
// destination rank, then promotion queen, rook, bishop, knight.
func SortMoves(ms []base.Move) {
	slices.SortFunc(ms, func(a, b base.Move) int {
		return cmp.Or(
			cmp.Compare(a.From.File, b.From.File),
			cmp.Compare(a.From.Rank, b.From.Rank),
			cmp.Compare(a.To.File, b.To.File),
			cmp.Compare(a.To.Rank, b.To.Rank),
			cmp.Compare(b.Promotion, a.Promotion),
		)
	})
}

// Perft counts leaf nodes of the legal move tree to the given depth.
func Perft(b *base.Board, depth int) int64 {
	if depth == 0 {
		return 1
	}
	legal := LegalMoves(b)
	if depth == 1 {
		return int64(len(legal))
	}
	var nodes int64
	for _, mv := range legal {
		nb := MakeMove(b, mv)
		nodes += Perft(&nb, depth-1)
	}
	return nodes
}
