// Package main implements a text terminal host for the CHIP-8 virtual
// machine.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/massung/chip-8/chip8"
	"github.com/massung/chip-8/host"
	"github.com/massung/chip-8/options"
	"github.com/massung/chip-8/termui"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// refreshRate is how often the terminal is redrawn.
const refreshRate = 30

var errNoROM = errors.New("a ROM file is required")

func main() {
	opts, err := options.Parse("chip8term", os.Args[1:])
	if err == nil && opts.ROM == "" {
		err = errNoROM
	}
	if err != nil {
		var usage *options.UsageError
		if errors.As(err, &usage) {
			usage.ShowUsage(os.Stderr)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// anything but errors would scribble over the display
	logger := options.CreateLogger(opts.Debug, true)

	ctx, cancel := context.WithCancel(app.Context())
	defer cancel()

	if err := run(ctx, opts, logger); err != nil {
		logger.Fatal("Emulation failed", log.Err(err))
	}
}

func run(ctx context.Context, opts options.Program, logger *log.Logger) error {
	in, out := int(os.Stdin.Fd()), int(os.Stdout.Fd())
	if !term.IsTerminal(in) || !term.IsTerminal(out) {
		return errors.New("stdin and stdout must be a terminal")
	}

	if w, h, err := term.GetSize(out); err == nil && (w < termui.Cols || h < termui.Rows) {
		return fmt.Errorf("terminal is %dx%d, need at least %dx%d", w, h, termui.Cols, termui.Rows)
	}

	quirks, err := opts.VMQuirks()
	if err != nil {
		return err
	}

	program, err := opts.ReadROM()
	if err != nil {
		return err
	}

	vm, err := chip8.LoadROM(program, chip8.WithQuirks(quirks), chip8.WithLogger(logger))
	if err != nil {
		return err
	}

	runner := host.New(vm, host.Config{
		ClockRate: opts.ClockRate,
		TimerRate: opts.TimerRate,
		Paused:    opts.Paused,
	}, logger)

	state, err := term.MakeRaw(in)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	defer func() {
		fmt.Fprint(os.Stdout, termui.ShowCursor, "\r\n")
		_ = term.Restore(in, state)
	}()

	fmt.Fprint(os.Stdout, termui.HideCursor, termui.ClearScreen)

	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	done := make(chan error, 1)
	go func() {
		done <- runner.Run(runCtx)
	}()

	err = loop(runCtx, runner, os.Stdin, os.Stdout)

	stop()
	if rerr := <-done; err == nil {
		err = rerr
	}
	return err
}

// loop redraws the terminal and feeds it keys until quit.
func loop(ctx context.Context, runner *host.Runner, r io.Reader, w io.Writer) error {
	keys := termui.ReadKeys(ctx, r)
	input := termui.NewInput(runner, termui.DefaultHold)

	refresh := time.NewTicker(time.Second / refreshRate)
	defer refresh.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case b, ok := <-keys:
			if !ok {
				return nil
			}

			cmd, err := input.Feed(b, time.Now())
			if err != nil {
				return err
			}

			switch cmd {
			case termui.Quit:
				return nil
			case termui.Restart:
				err = runner.Restart(false)
			case termui.Pause:
				_, err = runner.TogglePause()
			}
			if err != nil {
				return err
			}

		case now := <-refresh.C:
			if err := input.Expire(now); err != nil {
				return err
			}
			if err := redraw(runner, w); err != nil {
				return err
			}
		}
	}
}

// redraw draws the display if it changed and always the status line.
func redraw(runner *host.Runner, w io.Writer) error {
	fb, changed, err := runner.Frame()
	if err != nil {
		return err
	}
	if changed {
		if err = termui.Render(w, &fb); err != nil {
			return err
		}
	}

	s, err := runner.Snapshot()
	if err != nil {
		return err
	}
	paused, err := runner.Paused()
	if err != nil {
		return err
	}

	return termui.RenderStatus(w, &s, paused)
}
