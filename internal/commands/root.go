// Package commands defines the CLI surface.
package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/davidesantangelo/nmri"
	"github.com/davidesantangelo/nmri/internal/config"
	"github.com/davidesantangelo/nmri/internal/repl"
	"github.com/davidesantangelo/nmri/internal/session"
)

// NewRootCommand returns the top-level CLI command. With no arguments it
// starts the interactive calculator; with arguments it evaluates them as a
// single expression and prints the result.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:      "nmri",
		Usage:     "Command-line calculator with variables, percentages, and memory",
		ArgsUsage: "[expression]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.Path(),
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Calculation log path (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "log",
				Usage: "Enable calculation logging from startup",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable styled output",
			},
		},
		Action: runRoot,
	}
}

func runRoot(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	if path := cmd.String("log-file"); path != "" {
		cfg.LogFile = path
	}
	if cmd.Bool("log") {
		cfg.Logging = true
	}
	if cmd.Bool("no-color") {
		cfg.NoColor = true
	}

	logger := session.New(cfg.LogFile)
	defer logger.Close()
	if cfg.Logging {
		if err := logger.Enable(); err != nil {
			return err
		}
	}

	if cmd.Args().Len() > 0 {
		expr := strings.Join(cmd.Args().Slice(), " ")
		out, err := EvalOnce(logger, expr)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}
		fmt.Println(out)
		return nil
	}

	return repl.Run(ctx, repl.Options{Logger: logger, Color: !cfg.NoColor})
}

// EvalOnce evaluates a single expression or assignment against a fresh
// calculator state and returns the printable result.
func EvalOnce(logger *session.Logger, expr string) (string, error) {
	st := nmri.NewState(
		nmri.WithLogger(logger.Logf),
		nmri.WithWarnings(func(msg string) {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", msg)
			logger.Warnf("%s", msg)
		}),
	)
	logger.Logf("input: %s", expr)

	var (
		r   float64
		err error
	)
	if name, rhs, ok := nmri.SplitAssignment(expr); ok {
		r, err = st.Assign(name, rhs)
		if err == nil {
			return fmt.Sprintf("%s = %g", name, nmri.CleanNearZero(r)), nil
		}
	} else {
		r, err = st.Evaluate(expr)
		if err == nil {
			return fmt.Sprintf("%g", nmri.CleanNearZero(r)), nil
		}
	}
	return "", err
}
