// Package options contains the command line options shared by the hosts.
package options

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/massung/chip-8/chip8"
	"github.com/massung/chip-8/host"
	"github.com/retroenv/retrogolib/log"
)

// Program options of an emulator host.
type Program struct {
	ROM       string // ROM file to load, empty for none
	ClockRate int    // instructions per second
	TimerRate int    // timer decrements per second
	Quirks    string // quirks preset name
	ShiftVY   bool   // override: shift instructions read VY
	Scale     int    // window pixels per CHIP-8 pixel
	Paused    bool   // start paused
	Debug     bool
	Quiet     bool
}

// Default clock and timer rates.
const (
	DefaultClockRate = host.DefaultClockRate
	DefaultTimerRate = host.DefaultTimerRate
)

// UsageError represents an error that should show usage information.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the flag defaults.
func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: %s [options] [ROM file]\n\n", e.flags.Name())
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	fmt.Fprintln(w)
}

// Parse reads the program options from command line arguments,
// not including the program name.
func Parse(name string, args []string) (Program, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts Program
	flags.IntVar(&opts.ClockRate, "hz", DefaultClockRate, "instructions executed per second")
	flags.IntVar(&opts.TimerRate, "timer", DefaultTimerRate, "delay and sound timer rate in Hz")
	flags.StringVar(&opts.Quirks, "quirks", "modern", "instruction set quirks (modern/cosmac/chip48)")
	flags.BoolVar(&opts.ShiftVY, "shift-vy", false, "shift instructions read VY instead of VX")
	flags.IntVar(&opts.Scale, "scale", 5, "window pixels per CHIP-8 pixel")
	flags.BoolVar(&opts.Paused, "paused", false, "start with emulation paused")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	switch rest := flags.Args(); len(rest) {
	case 0:
	case 1:
		opts.ROM = rest[0]
	default:
		return opts, &UsageError{flags: flags, msg: "only one ROM file can be loaded"}
	}

	if opts.ClockRate <= 0 || opts.TimerRate <= 0 {
		return opts, &UsageError{flags: flags, msg: "clock and timer rates must be positive"}
	}
	if opts.Scale <= 0 {
		return opts, &UsageError{flags: flags, msg: "scale must be positive"}
	}

	if _, err := opts.VMQuirks(); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	return opts, nil
}

// VMQuirks resolves the quirks preset and overrides.
func (p Program) VMQuirks() (chip8.Quirks, error) {
	q, err := chip8.ParseQuirks(p.Quirks)
	if err != nil {
		return q, err
	}

	if p.ShiftVY {
		q.ShiftUsesVY = true
	}

	return q, nil
}

// ReadROM reads the ROM file, rejecting files that can't fit in memory.
func (p Program) ReadROM() ([]byte, error) {
	if p.ROM == "" {
		return nil, nil
	}

	data, err := os.ReadFile(p.ROM)
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}

	if len(data) > chip8.MaxProgramSize {
		return nil, fmt.Errorf("%s: %d bytes: %w", p.ROM, len(data), chip8.ErrProgramTooLarge)
	}

	return data, nil
}

// CreateLogger creates a logger with appropriate settings.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
