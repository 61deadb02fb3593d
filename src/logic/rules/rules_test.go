package rules_test

import (
	"errors"
	"hotseatchess/src/base"
	"hotseatchess/src/logic/convert/convfen"
	"hotseatchess/src/logic/rules"
	"hotseatchess/src/logic/rules/moves"
	"testing"
)

func mustBoard(t *testing.T, fen string) *base.Board {
	t.Helper()
	b, err := convfen.ConvertFENToBoard(fen)
	if err != nil {
		t.Fatalf("Failed to parse FEN %q: %v", fen, err)
	}
	return b
}

func mv(from, to string) base.Move {
	return base.Move{From: base.MustSquare(from), To: base.MustSquare(to)}
}

func applyAll(t *testing.T, b *base.Board, uci ...string) *base.Board {
	t.Helper()
	for _, s := range uci {
		m := mv(s[:2], s[2:4])
		if len(s) == 5 {
			k, err := base.KindFromRune(rune(s[4]))
			if err != nil {
				t.Fatal(err)
			}
			m.Promotion = k
		}
		nb, err := rules.Apply(b, m)
		if err != nil {
			t.Fatalf("apply %s: %v", s, err)
		}
		b = nb
	}
	return b
}

type fakeReps int

func (r fakeReps) Occurrences(base.PositionKey) int { return int(r) }

func TestFoolsMate(t *testing.T) {
	b := applyAll(t, base.StartPosition(), "f2f3", "e7e5", "g2g4", "d8h4")
	if b.SideToMove != base.White {
		t.Fatalf("side to move = %s", b.SideToMove)
	}
	if !rules.InCheck(b) || !rules.IsCheckmate(b) {
		t.Fatal("fool's mate not detected")
	}
	if rules.IsStalemate(b) || rules.IsDraw(b, nil) {
		t.Error("checkmate also reported as stalemate or draw")
	}
	if got := rules.GameStatusOf(b, nil); got != base.Checkmate {
		t.Errorf("status = %s", got)
	}
}

func TestGameStatus(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		reps   rules.Repetitions
		status base.GameStatus
		reason base.DrawReason
	}{
		{"start", base.FEN_START_GAME, nil, base.Normal, base.NoDraw},
		{"quiet endgame", "4k3/8/8/8/8/8/8/R3K3 b - - 0 1", nil, base.Normal, base.NoDraw},
		{"in check", "4k3/8/8/8/8/8/8/4RK2 b - - 0 1", nil, base.Check, base.NoDraw},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", nil, base.Stalemate, base.DrawStalemate},
		{"back rank mate", "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1", nil, base.Checkmate, base.NoDraw},
		{"fifty moves", "4k3/8/8/8/8/8/8/R3K3 w - - 100 60", nil, base.Draw, base.DrawFiftyMove},
		{"forty-nine and a half", "4k3/8/8/8/8/8/8/R3K3 w - - 99 60", nil, base.Normal, base.NoDraw},
		{"threefold", base.FEN_START_GAME, fakeReps(3), base.Draw, base.DrawThreefold},
		{"twofold", base.FEN_START_GAME, fakeReps(2), base.Normal, base.NoDraw},
		{"bare kings", "8/8/8/4k3/8/8/8/4K3 w - - 0 1", nil, base.Draw, base.DrawInsufficientMaterial},
		{"king and bishop", "8/8/8/4k3/8/8/8/2B1K3 w - - 0 1", nil, base.Draw, base.DrawInsufficientMaterial},
		{"king and knight", "8/8/8/4k3/8/8/8/1N2K3 w - - 0 1", nil, base.Draw, base.DrawInsufficientMaterial},
		{"same colored bishops", "5b2/8/8/4k3/8/8/8/2B1K3 w - - 0 1", nil, base.Draw, base.DrawInsufficientMaterial},
		{"opposite colored bishops", "2b5/8/8/4k3/8/8/8/2B1K3 w - - 0 1", nil, base.Normal, base.NoDraw},
		{"two knights", "8/8/8/4k3/8/8/8/1N2KN2 w - - 0 1", nil, base.Normal, base.NoDraw},
		{"lone pawn", "8/8/8/4k3/8/8/4P3/4K3 w - - 0 1", nil, base.Normal, base.NoDraw},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBoard(t, tc.fen)
			if got := rules.GameStatusOf(b, tc.reps); got != tc.status {
				t.Errorf("status = %s, want %s", got, tc.status)
			}
			if got := rules.DrawReasonOf(b, tc.reps); got != tc.reason {
				t.Errorf("draw reason = %s, want %s", got, tc.reason)
			}
			if rules.IsCheckmate(b) && rules.IsStalemate(b) {
				t.Error("checkmate and stalemate at once")
			}
		})
	}
}

func TestApplyRejects(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move base.Move
	}{
		{"empty origin", base.FEN_START_GAME, mv("e4", "e5")},
		{"opponent piece", base.FEN_START_GAME, mv("e7", "e5")},
		{"pawn triple push", base.FEN_START_GAME, mv("e2", "e5")},
		{"capture own piece", base.FEN_START_GAME, mv("d1", "d2")},
		{"off board", base.FEN_START_GAME, base.Move{From: base.MustSquare("e2"), To: base.NoSquare}},
		{"pinned piece", "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1", mv("e2", "d3")},
		{"ignores check", "4k3/8/8/8/8/8/8/r3K2R w K - 0 1", mv("h1", "h8")},
		{"promote to king", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1",
			base.Move{From: base.MustSquare("a7"), To: base.MustSquare("a8"), Promotion: base.King}},
		{"promotion on non-promoting move", base.FEN_START_GAME,
			base.Move{From: base.MustSquare("e2"), To: base.MustSquare("e4"), Promotion: base.Queen}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBoard(t, tc.fen)
			before := *b
			nb, err := rules.Apply(b, tc.move)
			var ime *base.IllegalMoveError
			if !errors.As(err, &ime) {
				t.Fatalf("err = %v, want IllegalMoveError", err)
			}
			if nb != nil {
				t.Error("board returned with error")
			}
			if *b != before {
				t.Error("rejected move changed the board")
			}
		})
	}
	if _, err := rules.Apply(nil, mv("e2", "e4")); err == nil {
		t.Error("nil board accepted")
	}
}

func TestApplyDoesNotMutate(t *testing.T) {
	b := base.StartPosition()
	before := *b
	nb, err := rules.Apply(b, mv("e2", "e4"))
	if err != nil {
		t.Fatal(err)
	}
	if *b != before {
		t.Error("input board modified")
	}
	if nb.At(base.MustSquare("e4")) != base.WPawn || nb.SideToMove != base.Black {
		t.Error("move not applied to the result")
	}
}

func TestPromotionDefaultsToQueen(t *testing.T) {
	b := mustBoard(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	if !rules.IsPromotion(b, base.MustSquare("a7"), base.MustSquare("a8")) {
		t.Fatal("a7a8 not seen as promotion")
	}
	nb := applyAll(t, b, "a7a8")
	if got := nb.At(base.MustSquare("a8")); got != base.WQueen {
		t.Errorf("a8 = %v, want queen", got)
	}
	nb = applyAll(t, b, "a7a8n")
	if got := nb.At(base.MustSquare("a8")); got != base.WKnight {
		t.Errorf("a8 = %v, want knight", got)
	}
	if rules.IsPromotion(b, base.MustSquare("e1"), base.MustSquare("e2")) {
		t.Error("king step seen as promotion")
	}
}

func TestEveryLegalMoveApplies(t *testing.T) {
	fens := []string{
		base.FEN_START_GAME,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		b := mustBoard(t, fen)
		for _, m := range moves.LegalMoves(b) {
			nb, err := rules.Apply(b, m)
			if err != nil {
				t.Fatalf("%s: legal move %s rejected: %v", fen, m, err)
			}
			if nb.SideToMove == b.SideToMove {
				t.Errorf("%s: side not flipped", m)
			}
			if m.Promotion == base.NoKind && nb.At(m.To) != b.At(m.From) {
				t.Errorf("%s: piece not moved", m)
			}
		}
	}
}

func TestSAN(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		uci  string
		want string
	}{
		{"pawn push", base.FEN_START_GAME, "e2e4", "e4"},
		{"knight", base.FEN_START_GAME, "g1f3", "Nf3"},
		{"mate", "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq g3 0 2", "d8h4", "Qh4#"},
		{"short castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", "O-O"},
		{"long castle", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8c8", "O-O-O"},
		{"en passant", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2", "e5d6", "exd6"},
		{"promotion check", "8/P7/8/8/8/8/8/k6K w - - 0 1", "a7a8q", "a8=Q+"},
		{"underpromotion", "8/P7/8/8/8/8/8/k6K w - - 0 1", "a7a8n", "a8=N"},
		{"file disambiguation", "1k6/8/8/8/8/8/8/R4R1K w - - 0 1", "a1d1", "Rad1"},
		{"rank disambiguation", "7k/8/8/R7/8/8/8/R6K w - - 0 1", "a1a3", "R1a3"},
		{"capture", "4k3/8/8/3p4/8/2N5/8/4K3 w - - 0 1", "c3d5", "Nxd5"},
		{"check", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", "a1a8", "Ra8+"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBoard(t, tc.fen)
			var found bool
			for _, m := range moves.LegalMoves(b) {
				if m.String() == tc.uci {
					found = true
					if got := rules.SAN(b, m); got != tc.want {
						t.Errorf("SAN(%s) = %q, want %q", tc.uci, got, tc.want)
					}
				}
			}
			if !found {
				t.Fatalf("%s not legal", tc.uci)
			}
		})
	}
}
