package src

import (
	"fmt"
	"hotseatchess/src/base"
	"hotseatchess/src/interact"
	"hotseatchess/src/logic/convert/convfen"
	"hotseatchess/src/logic/history"
	"hotseatchess/src/logic/rules"
	"hotseatchess/src/logx"

	"github.com/google/uuid"
)

// Session is one hotseat game: the single authoritative board, its history
// and the click state machine. Every move replaces the board with a new
// snapshot; nothing outside the session holds a reference into it.
type Session struct {
	id      string
	board   *base.Board
	history *history.History
	status  base.GameStatus
	machine *interact.Machine
	logger  logx.Logger
}

type Option func(*sessionOptions)

type sessionOptions struct {
	id      string
	machine interact.Options
}

func WithAutoQueen(on bool) Option {
	return func(o *sessionOptions) { o.machine.AutoQueen = on }
}

func WithKeepMarks(on bool) Option {
	return func(o *sessionOptions) { o.machine.KeepMarks = on }
}

func WithID(id string) Option {
	return func(o *sessionOptions) { o.id = id }
}

// NewSession starts with the classic initial position.
func NewSession(logger logx.Logger, opts ...Option) *Session {
	so := sessionOptions{id: uuid.NewString()}
	for _, opt := range opts {
		opt(&so)
	}
	s := &Session{id: so.id, logger: logger.With("session", so.id)}
	s.machine = interact.NewMachine(s, so.machine)
	s.CreateClassic()
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) CreateClassic() {
	s.logger.Debug("create classic game")
	s.setBoard(base.StartPosition())
}

// CreateFromFEN replaces the game with a decoded position record. On error
// the current game is kept.
func (s *Session) CreateFromFEN(fen string) (base.GameStatus, error) {
	s.logger.Debugf("create game by FEN: %v", fen)
	board, err := convfen.ConvertFENToBoard(fen)
	if err != nil {
		s.logger.Errorw("rejected position record", "fen", fen, "error", err)
		return s.status, fmt.Errorf("error parse FEN: %w", err)
	}
	s.setBoard(board)
	s.machine.Clear()
	return s.status, nil
}

func (s *Session) setBoard(b *base.Board) {
	s.board = b
	s.history = history.NewHistory(b)
	s.status = rules.GameStatusOf(s.board, s.history)
}

// Board implements interact.Position.
func (s *Session) Board() base.Board {
	return *s.board
}

// Play implements interact.Position. The board is replaced only after the
// move applier accepted the move.
func (s *Session) Play(mv base.Move) error {
	before := s.board
	nb, played, err := s.history.PushMove(before, mv)
	if err != nil {
		s.logger.Warnw("move rejected", "move", mv.String(), "error", err)
		return err
	}
	s.board = nb
	prev := s.status
	s.status = rules.GameStatusOf(s.board, s.history)

	last, _ := s.history.Last()
	s.logger.Infow("move",
		"uci", played.String(),
		"san", last.SAN,
		"fen", s.FEN(),
	)
	if s.status != prev && s.status != base.Normal {
		s.logger.Infow("status", "status", s.status.String(), "draw", s.DrawReason().String())
	}
	return nil
}

// NewGame implements interact.Position.
func (s *Session) NewGame() {
	s.CreateClassic()
}

// ---- renderer input ----

func (s *Session) Click(sq base.Square) interact.Outcome {
	out := s.machine.Click(sq)
	s.logger.Debugw("click", "square", sq.String(), "outcome", out.String())
	return out
}

func (s *Session) RightClick(sq base.Square) interact.Outcome {
	return s.machine.RightClick(sq)
}

func (s *Session) ChoosePromotion(kind base.Kind) (interact.Outcome, error) {
	out, err := s.machine.ChoosePromotion(kind)
	if err != nil {
		s.logger.Warnw("promotion rejected", "kind", kind.String(), "error", err)
	}
	return out, err
}

func (s *Session) CancelPromotion() interact.Outcome {
	return s.machine.CancelPromotion()
}

func (s *Session) Reset() interact.Outcome {
	s.logger.Info("reset")
	return s.machine.Reset()
}

// ---- renderer output ----

func (s *Session) Status() base.GameStatus { return s.status }

func (s *Session) DrawReason() base.DrawReason {
	return rules.DrawReasonOf(s.board, s.history)
}

// return FEN of this game
func (s *Session) FEN() string {
	return convfen.ConvertBoardToFEN(*s.board)
}

// all SAN moves
func (s *Session) PGNBody() string {
	return s.history.MovesAsPGN()
}

func (s *Session) MoveCount() int {
	return s.history.MoveCount()
}

type Pending struct {
	Active      bool
	Origin      base.Square
	Destination base.Square
}

// View is everything a renderer needs for one frame.
type View struct {
	Board      base.Board
	FEN        string
	Highlights interact.Highlights
	Selection  interact.Selection
	Status     base.GameStatus
	DrawReason base.DrawReason
	SideToMove base.Color
	InCheck    bool
	GameOver   bool
	Pending    Pending
	MoveCount  int
	Moves      string
	StatusText string
}

func (s *Session) View() View {
	origin, dest, ok := s.machine.Pending()
	return View{
		Board:      *s.board,
		FEN:        s.FEN(),
		Highlights: s.machine.Highlights(),
		Selection:  s.machine.Selection(),
		Status:     s.status,
		DrawReason: s.DrawReason(),
		SideToMove: s.board.SideToMove,
		InCheck:    rules.InCheck(s.board),
		GameOver:   s.status.Finished(),
		Pending:    Pending{Active: ok, Origin: origin, Destination: dest},
		MoveCount:  s.history.MoveCount(),
		Moves:      s.history.MovesAsPGN(),
		StatusText: s.StatusText(),
	}
}

// StatusText is the one-line game status shown to the players.
func (s *Session) StatusText() string {
	side := s.board.SideToMove
	switch s.status {
	case base.Checkmate:
		return fmt.Sprintf("Checkmate! %s wins!", side.Opponent())
	case base.Stalemate:
		return "Stalemate! Game is a draw."
	case base.Draw:
		return "Draw!"
	case base.Check:
		return fmt.Sprintf("%s is in check!", side)
	default:
		return fmt.Sprintf("%s's turn", side)
	}
}
