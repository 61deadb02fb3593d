package cli

import (
	"bufio"
	"fmt"
	"hotseatchess/src"
	"hotseatchess/src/base"
	"hotseatchess/src/interact"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const helpText = `Commands:
  e2          click a square (select, move, deselect)
  e2e4        two clicks in one line
  m e4        mark/unmark a square (right click)
  q r b n     choose the promotion piece when asked
  cancel      cancel a pending promotion
  new         start a new game
  fen         print the position record
  copy        copy the position record to the clipboard
  paste       start from the position record in the clipboard
  moves       print the move list
  help        this text
  quit        leave`

// CLIProcessing is the terminal renderer: it draws the session view and
// forwards typed squares as clicks.
type CLIProcessing struct {
	session *src.Session
	draw    DrawFunc
	style   Style
	in      io.Reader
	out     io.Writer
	clip    Clipboard
}

func NewCLI(s *src.Session, draw DrawFunc, style Style) *CLIProcessing {
	return &CLIProcessing{session: s, draw: draw, style: style, in: os.Stdin, out: os.Stdout, clip: systemClipboard{}}
}

// SetIO replaces stdin/stdout, used by tests and pipes.
func (c *CLIProcessing) SetIO(in io.Reader, out io.Writer) {
	c.in = in
	c.out = out
}

func (c *CLIProcessing) SetClipboard(clip Clipboard) {
	c.clip = clip
}

// DetectStyle enables colors only for an interactive terminal.
func DetectStyle(f *os.File, ascii bool) Style {
	color := term.IsTerminal(int(f.Fd()))
	if color {
		EnableANSI()
	}
	return Style{Color: color, ASCII: ascii}
}

// line mode processing
// - redraw board after every event that changed something
// - stop on quit or end of input
func (c *CLIProcessing) Run() error {
	scanner := bufio.NewScanner(c.in)
	c.redraw()
	fmt.Fprintln(c.out, "Type a square to click it, 'help' for commands.")
	c.prompt()
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "" {
			c.prompt()
			continue
		}
		if line == "quit" || line == "exit" {
			fmt.Fprintln(c.out, "Quitting")
			return nil
		}
		if msg := c.handle(line); msg != "" {
			fmt.Fprintln(c.out, msg)
		}
		c.prompt()
	}
	return scanner.Err()
}

// handle executes one command line and returns a message for the user.
func (c *CLIProcessing) handle(line string) string {
	fields := strings.Fields(line)
	v := c.session.View()

	switch {
	case line == "help":
		return helpText
	case line == "fen":
		return v.FEN
	case line == "moves":
		if v.Moves == "" {
			return "No moves yet"
		}
		return v.Moves
	case line == "copy":
		if err := c.clip.WriteAll(v.FEN); err != nil {
			return fmt.Sprintf("Clipboard write error: %v", err)
		}
		return "FEN copied"
	case line == "paste":
		text, err := c.clip.ReadAll()
		if err != nil {
			return fmt.Sprintf("Clipboard read error: %v", err)
		}
		if _, err := c.session.CreateFromFEN(strings.TrimSpace(text)); err != nil {
			return fmt.Sprintf("Invalid FEN: %v", err)
		}
		c.redraw()
		return "FEN loaded"
	case line == "new" || line == "reset":
		c.session.Reset()
		c.redraw()
		return ""
	case line == "cancel":
		if c.session.CancelPromotion() == interact.PromotionCancelled {
			c.redraw()
			return "Promotion cancelled"
		}
		return "Nothing to cancel"
	case v.Pending.Active && len(line) == 1:
		kind, err := base.KindFromRune(rune(line[0]))
		if err != nil {
			return "Choose q, r, b or n (or cancel)"
		}
		if _, err := c.session.ChoosePromotion(kind); err != nil {
			return fmt.Sprintf("Promotion failed: %v", err)
		}
		c.redraw()
		return ""
	case (fields[0] == "m" || fields[0] == "mark") && len(fields) == 2:
		sq, err := base.ParseSquare(fields[1])
		if err != nil {
			return err.Error()
		}
		c.session.RightClick(sq)
		c.redraw()
		return ""
	}

	var squares []base.Square
	switch len(line) {
	case 2:
		sq, err := base.ParseSquare(line)
		if err != nil {
			return fmt.Sprintf("Unknown command %q, type 'help'", line)
		}
		squares = append(squares, sq)
	case 4:
		from, err1 := base.ParseSquare(line[:2])
		to, err2 := base.ParseSquare(line[2:])
		if err1 != nil || err2 != nil {
			return fmt.Sprintf("Unknown command %q, type 'help'", line)
		}
		// the first click must select from
		squares = append(squares, from, to)
		if sel := v.Selection; sel.State == interact.PieceSelected {
			if sel.Origin == from {
				squares = squares[1:]
			} else {
				c.session.Click(sel.Origin)
			}
		}
	default:
		return fmt.Sprintf("Unknown command %q, type 'help'", line)
	}

	var out interact.Outcome
	for _, sq := range squares {
		out = c.session.Click(sq)
	}
	c.redraw()
	switch out {
	case interact.NoOp:
		return "Nothing to select there"
	case interact.PromotionPending:
		return "Promote to q, r, b or n? (or cancel)"
	}
	return ""
}

func (c *CLIProcessing) redraw() {
	v := c.session.View()
	c.draw(c.out, v, c.style)
	fmt.Fprintf(c.out, "FEN: %s\n", v.FEN)
	fmt.Fprintf(c.out, "Moves: %d  %s\n", v.MoveCount, v.Moves)
	fmt.Fprintf(c.out, "Status: %s\n", v.StatusText)
}

func (c *CLIProcessing) prompt() {
	v := c.session.View()
	if v.Pending.Active {
		fmt.Fprintf(c.out, "%s%s=? > ", v.Pending.Origin, v.Pending.Destination)
		return
	}
	fmt.Fprintf(c.out, "%s > ", v.SideToMove)
}
