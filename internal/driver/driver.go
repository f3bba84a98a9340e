// Package driver sequences a run in one of the three execution modes. All
// modes advance the machine through bf.Machine.Step, so they reach the same
// final state for the same program and input.
package driver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jacob-alan-henning/bfitui/internal/bf"
	"github.com/jacob-alan-henning/bfitui/internal/config"
	"github.com/jacob-alan-henning/bfitui/internal/ui"
)

type Driver struct {
	cfg    config.Config
	stdin  io.Reader
	stdout io.Writer
	logger *slog.Logger
}

func New(cfg config.Config, stdin io.Reader, stdout io.Writer, logger *slog.Logger) *Driver {
	return &Driver{
		cfg:    cfg,
		stdin:  stdin,
		stdout: stdout,
		logger: logger,
	}
}

// Run executes prog according to the configured mode. The final state is
// rendered even when the program stops with an error.
func (d *Driver) Run(ctx context.Context, name string, prog *bf.Program) error {
	input, closeInput, err := d.openInput()
	if err != nil {
		return err
	}
	defer closeInput()

	opts := bf.Options{
		TapeSize: d.cfg.TapeSize,
		EOF:      d.cfg.EOFPolicy(),
		Input:    bf.NewContextReader(ctx, input),
	}
	// the dump in all mode already shows the console
	if d.cfg.Stream && d.cfg.Mode == config.ModeConsole {
		opts.Output = d.stdout
	}
	machine := bf.NewMachine(prog, opts)

	d.logger.Info("program loaded", "program", name, "instructions", prog.Len(), "mode", d.cfg.Mode, "tape_size", d.cfg.TapeSize, "eof", opts.EOF)

	switch d.cfg.Mode {
	case config.ModeStep:
		err = ui.Run(name, machine)
	case config.ModeConsole:
		err = machine.RunContext(ctx)
		if !d.cfg.Stream {
			fmt.Fprintln(d.stdout, string(machine.Output()))
		}
	case config.ModeAll:
		err = machine.RunContext(ctx)
		fmt.Fprint(d.stdout, ui.BuildDump(machine))
	default:
		return fmt.Errorf("unknown mode %q", d.cfg.Mode)
	}

	d.logger.Info("program finished", "program", name, "steps", machine.Steps(), "output_bytes", len(machine.Output()), "halted", machine.Halted())
	if err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	return nil
}

func (d *Driver) openInput() (io.Reader, func(), error) {
	if d.cfg.Input != "" {
		f, err := os.Open(d.cfg.Input)
		if err != nil {
			return nil, nil, fmt.Errorf("open input: %w", err)
		}
		return f, func() { f.Close() }, nil
	}
	if d.cfg.Mode == config.ModeStep {
		d.logger.Warn("step mode reads the keyboard; program input is empty without an input file")
		return strings.NewReader(""), func() {}, nil
	}
	return d.stdin, func() {}, nil
}
