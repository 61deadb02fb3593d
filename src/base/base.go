package base

import "fmt"

// Forsyth–Edwards Notation
const FEN_START_GAME string = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

func (c Color) Opponent() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// promotion choices in the order they are offered
var PromotionKinds = [4]Kind{Queen, Rook, Bishop, Knight}

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// Piece packs color (bit 3) and kind (bits 0-2); zero is an empty square.
type Piece uint8

const (
	EmptyPiece Piece = 0

	WPawn   Piece = Piece(Pawn)
	WKnight Piece = Piece(Knight)
	WBishop Piece = Piece(Bishop)
	WRook   Piece = Piece(Rook)
	WQueen  Piece = Piece(Queen)
	WKing   Piece = Piece(King)

	BPawn   Piece = 8 | Piece(Pawn)
	BKnight Piece = 8 | Piece(Knight)
	BBishop Piece = 8 | Piece(Bishop)
	BRook   Piece = 8 | Piece(Rook)
	BQueen  Piece = 8 | Piece(Queen)
	BKing   Piece = 8 | Piece(King)
)

func NewPiece(k Kind, c Color) Piece {
	if k == NoKind {
		return EmptyPiece
	}
	return Piece(c)<<3 | Piece(k)
}

func (p Piece) Kind() Kind   { return Kind(p & 7) }
func (p Piece) Color() Color { return Color(p >> 3) }
func (p Piece) IsEmpty() bool {
	return p.Kind() == NoKind
}

// true if p is occupied by a piece of color c
func (p Piece) Is(c Color) bool {
	return !p.IsEmpty() && p.Color() == c
}

type GameStatus uint8

const (
	Normal GameStatus = iota
	Check
	Checkmate
	Stalemate
	Draw
)

func (gs GameStatus) String() string {
	switch gs {
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Draw:
		return "draw"
	default:
		return "normal"
	}
}

// Finished reports whether no further moves can be played.
func (gs GameStatus) Finished() bool {
	return gs == Checkmate || gs == Stalemate || gs == Draw
}

type DrawReason uint8

const (
	NoDraw DrawReason = iota
	DrawStalemate
	DrawFiftyMove
	DrawThreefold
	DrawInsufficientMaterial
)

func (dr DrawReason) String() string {
	switch dr {
	case DrawStalemate:
		return "stalemate"
	case DrawFiftyMove:
		return "fifty-move rule"
	case DrawThreefold:
		return "threefold repetition"
	case DrawInsufficientMaterial:
		return "insufficient material"
	default:
		return "none"
	}
}

type Mailbox [64]Piece

func (mb Mailbox) At(sq Square) Piece {
	if !sq.IsValid() {
		return EmptyPiece
	}
	return mb[sq.Index()]
}

func (mb *Mailbox) Set(sq Square, pc Piece) {
	if !sq.IsValid() {
		return
	}
	mb[sq.Index()] = pc
}

type MoveFlag uint8

const (
	MoveNormal MoveFlag = iota
	MoveDoublePawnPush
	MoveEnPassant
	MoveKingSideCastle
	MoveQueenSideCastle
)

func (f MoveFlag) String() string {
	switch f {
	case MoveDoublePawnPush:
		return "double-pawn-push"
	case MoveEnPassant:
		return "en-passant"
	case MoveKingSideCastle:
		return "king-side-castle"
	case MoveQueenSideCastle:
		return "queen-side-castle"
	default:
		return "normal"
	}
}

// Move is only meaningful relative to the board it was generated from.
type Move struct {
	From      Square
	To        Square
	Promotion Kind
	Flag      MoveFlag
}

// coordinate notation: e2e4, e7e8q
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != NoKind {
		s += string(ConvertRuneFromPiece(NewPiece(m.Promotion, Black)))
	}
	return s
}

func (m Move) IsCastle() bool {
	return m.Flag == MoveKingSideCastle || m.Flag == MoveQueenSideCastle
}

type Castling struct {
	WK bool
	WQ bool
	BK bool
	BQ bool
}

type Board struct {
	Mailbox    Mailbox
	SideToMove Color
	Castling   Castling
	EnPassant  Square // NoSquare when absent
	Halfmove   int
	Fullmove   int
}

// PositionKey identifies a position for repetition counting.
type PositionKey struct {
	Mailbox    Mailbox
	SideToMove Color
	Castling   Castling
	EnPassant  Square
}

func (b *Board) Key() PositionKey {
	return PositionKey{Mailbox: b.Mailbox, SideToMove: b.SideToMove, Castling: b.Castling, EnPassant: b.EnPassant}
}

func (b Board) At(sq Square) Piece {
	return b.Mailbox.At(sq)
}

// Clone returns an independent snapshot; Board holds no references.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

// returns NoSquare if the king is missing
func (b *Board) KingSquare(c Color) Square {
	target := NewPiece(King, c)
	for i := 0; i < 64; i++ {
		if b.Mailbox[i] == target {
			return SquareFromIndex(i)
		}
	}
	return NoSquare
}

func (b *Board) CountPiece(pc Piece) int {
	n := 0
	for i := 0; i < 64; i++ {
		if b.Mailbox[i] == pc {
			n++
		}
	}
	return n
}

func StartPosition() *Board {
	back := [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	b := &Board{
		SideToMove: White,
		Castling:   Castling{WK: true, WQ: true, BK: true, BQ: true},
		EnPassant:  NoSquare,
		Fullmove:   1,
	}
	for f := uint8(0); f < 8; f++ {
		b.Mailbox.Set(Square{File: f, Rank: 0}, NewPiece(back[f], White))
		b.Mailbox.Set(Square{File: f, Rank: 1}, WPawn)
		b.Mailbox.Set(Square{File: f, Rank: 6}, BPawn)
		b.Mailbox.Set(Square{File: f, Rank: 7}, NewPiece(back[f], Black))
	}
	return b
}

func ConvertPieceFromRune(p rune) Piece {
	switch p {
	case 'P':
		return WPawn
	case 'R':
		return WRook
	case 'N':
		return WKnight
	case 'B':
		return WBishop
	case 'Q':
		return WQueen
	case 'K':
		return WKing
	case 'p':
		return BPawn
	case 'r':
		return BRook
	case 'n':
		return BKnight
	case 'b':
		return BBishop
	case 'q':
		return BQueen
	case 'k':
		return BKing
	default:
		return EmptyPiece
	}
}

func ConvertRuneFromPiece(p Piece) rune {
	var r rune
	switch p.Kind() {
	case Pawn:
		r = 'P'
	case Knight:
		r = 'N'
	case Bishop:
		r = 'B'
	case Rook:
		r = 'R'
	case Queen:
		r = 'Q'
	case King:
		r = 'K'
	default:
		return '.'
	}
	if p.Color() == Black {
		r += 'a' - 'A'
	}
	return r
}

// KindFromRune accepts q/r/b/n in either case.
func KindFromRune(r rune) (Kind, error) {
	pc := ConvertPieceFromRune(r)
	switch pc.Kind() {
	case Queen, Rook, Bishop, Knight:
		return pc.Kind(), nil
	}
	return NoKind, fmt.Errorf("invalid promotion piece %q", r)
}
