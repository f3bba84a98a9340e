package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/jacob-alan-henning/bfitui/internal/config"
	"github.com/jacob-alan-henning/bfitui/internal/driver"
	"github.com/jacob-alan-henning/bfitui/internal/logging"
	"github.com/jacob-alan-henning/bfitui/internal/source"
)

// ExitError carries a specific exit code for usage and configuration errors.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

type CLI struct {
	Steps   bool `short:"s" xor:"mode" help:"Execute step by step, showing console and memory."`
	All     bool `short:"a" xor:"mode" help:"Execute all at once, then show console and memory (default)."`
	Console bool `short:"c" xor:"mode" help:"Execute all at once, then show console only."`

	Config   string `help:"YAML configuration file. Flags override its values." type:"path"`
	Input    string `short:"i" help:"File supplying program input. Defaults to stdin." type:"path"`
	EOF      string `name:"eof" help:"Cell value on end of input: unchanged, zero or max."`
	TapeSize int    `help:"Number of tape cells."`
	Stream   bool   `help:"Write program output as it is produced."`
	LogLevel string `help:"Log level: debug, info, warn or error."`
	LogFile  string `help:"Also write JSON logs to this file." type:"path"`

	Program string `arg:"" name:"program" help:"Brainfuck program to run." type:"path"`
}

const description = `Simple brainfuck interpreter.

Runs a brainfuck program in one of three modes: step by step with a live view
of the console and memory (-s), all at once followed by a console and memory
dump (-a), or all at once printing only the console (-c).`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	// restore the default handler so a second interrupt kills the process
	context.AfterFunc(ctx, stop)

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "bfitui: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("bfitui"),
		kong.Description(description),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		return err
	}
	if _, err := parser.Parse(args); err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}

	cfg, err := cli.resolve()
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}

	var terminal io.Writer = stderr
	if cfg.Mode == config.ModeStep {
		terminal = nil
	}
	logger, closer, err := logging.New(logging.Options{
		Level:    cfg.LogLevel,
		Terminal: terminal,
		File:     cfg.LogFile,
	})
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}
	defer closer.Close()
	slog.SetDefault(logger)
	logger.Debug("configuration resolved", "config", cfg)

	src, err := source.Open(cli.Program)
	if err != nil {
		return err
	}
	prog, err := src.Program()
	if err != nil {
		return err
	}

	return driver.New(cfg, stdin, stdout, logger).Run(ctx, src.Name, prog)
}

// resolve layers the flags over the configuration file, or over the
// defaults when no file is given.
func (c *CLI) resolve() (config.Config, error) {
	cfg := config.Default()
	if c.Config != "" {
		var err error
		cfg, err = config.Load(c.Config)
		if err != nil {
			return cfg, err
		}
	}

	switch {
	case c.Steps:
		cfg.Mode = config.ModeStep
	case c.All:
		cfg.Mode = config.ModeAll
	case c.Console:
		cfg.Mode = config.ModeConsole
	}
	if c.Input != "" {
		cfg.Input = c.Input
	}
	if c.EOF != "" {
		cfg.EOF = c.EOF
	}
	if c.TapeSize != 0 {
		cfg.TapeSize = c.TapeSize
	}
	if c.Stream {
		cfg.Stream = true
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	if c.LogFile != "" {
		cfg.LogFile = c.LogFile
	}

	return cfg, cfg.Validate()
}
