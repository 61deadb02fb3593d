package base

import "fmt"

// Square is a (file, rank) pair, both in [0,7]; a1 is {0,0}.
type Square struct {
	File uint8
	Rank uint8
}

var NoSquare = Square{File: 0xff, Rank: 0xff}

func IsValidSquare(file, rank int) bool {
	return file >= 0 && file < 8 && rank >= 0 && rank < 8
}

func (s Square) IsValid() bool {
	return s.File < 8 && s.Rank < 8
}

func (s Square) Index() int {
	return int(s.Rank)*8 + int(s.File)
}

// Offset returns the square moved by (df, dr) and false if it leaves the board.
func (s Square) Offset(df, dr int) (Square, bool) {
	f := int(s.File) + df
	r := int(s.Rank) + dr
	if !IsValidSquare(f, r) {
		return NoSquare, false
	}
	return Square{File: uint8(f), Rank: uint8(r)}, true
}

// light squares have odd file+rank parity (h1 is light)
func (s Square) IsLight() bool {
	return (s.File+s.Rank)%2 == 1
}

func (s Square) String() string {
	if !s.IsValid() {
		return "-"
	}
	return string([]byte{'a' + s.File, '1' + s.Rank})
}

func SquareFromIndex(i int) Square {
	if i < 0 || i >= 64 {
		return NoSquare
	}
	return Square{File: uint8(i % 8), Rank: uint8(i / 8)}
}

func ParseSquare(pos string) (Square, error) {
	// 'a' ~ 'h' to 0-7
	// '1' ~ '8' to 0-7
	if len(pos) != 2 || pos[0] < 'a' || pos[0] > 'h' || pos[1] < '1' || pos[1] > '8' {
		return NoSquare, fmt.Errorf("invalid square %q", pos)
	}
	return Square{File: pos[0] - 'a', Rank: pos[1] - '1'}, nil
}

func MustSquare(pos string) Square {
	sq, err := ParseSquare(pos)
	if err != nil {
		panic(err)
	}
	return sq
}
