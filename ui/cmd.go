package ui

import (
	"context"
	"fmt"
	"hotseatchess/src"
	"hotseatchess/src/base"
	"hotseatchess/src/config"
	"hotseatchess/src/logic/convert/convfen"
	"hotseatchess/src/logic/rules"
	"hotseatchess/src/logic/rules/moves"
	"hotseatchess/src/logx"
	clic "hotseatchess/ui/cli"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"
)

func GetLogger(w io.Writer, conf *config.Config) *logx.Logx {
	l := logx.NewLogx(
		logx.GetLoggerLevelByString(conf.LogLevel),
		conf.Dev,
		conf.Console,
	)
	l.InitLogger(w)
	return l
}

// loadConfig reads the config file and lets set flags win over it.
func loadConfig(c *cli.Command) (*config.Config, error) {
	conf, err := config.NewConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("level") && logx.IsLevelName(c.String("level")) {
		conf.LogLevel = c.String("level")
	}
	if c.IsSet("log") {
		conf.LogFile = c.String("log")
	}
	if c.IsSet("dev") {
		conf.Dev = c.Bool("dev")
	}
	if c.IsSet("console") {
		conf.Console = c.Bool("console")
	}
	if c.IsSet("auto-queen") {
		conf.AutoQueen = c.Bool("auto-queen")
	}
	if c.IsSet("keep-marks") {
		conf.KeepMarks = c.Bool("keep-marks")
	}
	if c.IsSet("ascii") {
		conf.ASCII = c.Bool("ascii")
	}
	return conf, nil
}

func RunPlay(c *cli.Command) error {
	conf, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("error load config: %w", err)
	}
	file, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("error open logfile: %w", err)
	}
	defer file.Close()
	logger := GetLogger(file, conf)
	defer logger.Sync() //nolint:errcheck

	s := src.NewSession(logger, src.WithAutoQueen(conf.AutoQueen), src.WithKeepMarks(conf.KeepMarks))
	if fen := c.String("fen"); fen != "" {
		if _, err := s.CreateFromFEN(fen); err != nil {
			return err
		}
	}
	if c.Bool("save-config") {
		if err := conf.Save(); err != nil {
			logger.Warnf("error save config: %v", err)
		}
	}

	cl := clic.NewCLI(s, clic.PrintView, clic.DetectStyle(os.Stdout, conf.ASCII))
	return cl.Run()
}

func RunStatus(c *cli.Command) error {
	fen := c.String("fen")
	b, err := convfen.ConvertFENToBoard(fen)
	if err != nil {
		return err
	}
	legal := moves.LegalMoves(b)
	fmt.Printf("FEN: %s\n", convfen.ConvertBoardToFEN(*b))
	fmt.Printf("Side to move: %s\n", b.SideToMove)
	fmt.Printf("Status: %s\n", rules.GameStatusOf(b, nil))
	if dr := rules.DrawReasonOf(b, nil); dr != base.NoDraw {
		fmt.Printf("Draw: %s\n", dr)
	}
	fmt.Printf("Legal moves (%d):", len(legal))
	for _, mv := range legal {
		fmt.Printf(" %s", rules.SAN(b, mv))
	}
	fmt.Println()
	return nil
}

func RunPerft(c *cli.Command) error {
	b, err := convfen.ConvertFENToBoard(c.String("fen"))
	if err != nil {
		return err
	}
	depth := c.Int("depth")
	if depth < 0 {
		return fmt.Errorf("depth must be >= 0, got %d", depth)
	}
	for d := 1; d <= depth; d++ {
		start := time.Now()
		nodes := moves.Perft(b, d)
		fmt.Printf("perft(%d) = %d (%v)\n", d, nodes, time.Since(start).Round(time.Millisecond))
	}
	return nil
}

func NewCommand() *cli.Command {
	ff := &cli.StringFlag{
		Name:  "fen",
		Usage: "start from a six-field position record",
	}
	cf := &cli.StringFlag{
		Name:  "config",
		Value: config.DefaultPath,
		Usage: "path to JSON config",
	}
	df := &cli.BoolFlag{
		Name:    "dev",
		Aliases: []string{"d"},
		Usage:   "dev encode log",
	}
	lf := &cli.StringFlag{
		Name:    "level",
		Aliases: []string{"l"},
		Usage:   "logger level: debug, info, warn, error",
	}
	logf := &cli.StringFlag{
		Name:  "log",
		Usage: "log file path",
	}
	conf := &cli.BoolFlag{
		Name:    "console",
		Aliases: []string{"c"},
		Usage:   "console logger encoding to stdout",
	}
	aq := &cli.BoolFlag{
		Name:  "auto-queen",
		Usage: "promote to queen without asking",
	}
	km := &cli.BoolFlag{
		Name:  "keep-marks",
		Usage: "keep square marks when clicking",
	}
	af := &cli.BoolFlag{
		Name:  "ascii",
		Usage: "draw pieces as letters",
	}
	sf := &cli.BoolFlag{
		Name:  "save-config",
		Usage: "write the effective config back to the config file",
	}
	playff := []cli.Flag{ff, cf, df, lf, logf, conf, aq, km, af, sf}

	return &cli.Command{
		Name:  "hotseat",
		Usage: "two-player chess on one terminal",
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "play a game",
				Flags: playff,
				Action: func(ctx context.Context, c *cli.Command) error {
					return RunPlay(c)
				},
			},
			{
				Name:  "status",
				Usage: "classify a position and list its legal moves",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "fen", Value: base.FEN_START_GAME, Usage: "position record"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return RunStatus(c)
				},
			},
			{
				Name:  "perft",
				Usage: "count legal move tree leaves",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "fen", Value: base.FEN_START_GAME, Usage: "position record"},
					&cli.IntFlag{Name: "depth", Value: 3, Usage: "maximum depth"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return RunPerft(c)
				},
			},
		},
		// no subcommand: play with config file values
		Action: func(ctx context.Context, c *cli.Command) error {
			return RunPlay(c)
		},
	}
}

func RunHotseat() error {
	return NewCommand().Run(context.Background(), os.Args)
}
