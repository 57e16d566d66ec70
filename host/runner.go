// Package host drives a CHIP-8 virtual machine from its own goroutine.
//
// The virtual machine is not safe for concurrent use, so the Runner owns it
// and every other goroutine (window, input, terminal) talks to it by sending
// messages. Instructions and timers are clocked independently: instructions
// at the configured clock rate, timers at a fixed real-time rate.
package host

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/massung/chip-8/chip8"
	"github.com/retroenv/retrogolib/log"
)

// ErrStopped is returned by requests made after Run has returned.
var ErrStopped = errors.New("runner stopped")

// minPeriod is the shortest clock tick, faster clock rates step
// several instructions per tick.
const minPeriod = time.Millisecond

// Rates used when a Config leaves them unset.
const (
	DefaultClockRate = 500
	DefaultTimerRate = 60
)

// Config controls the runner clocks.
type Config struct {
	ClockRate int  // instructions per second
	TimerRate int  // timer decrements per second
	Paused    bool // start paused, and after Load or Reset
}

// Runner owns a virtual machine and steps it on a dedicated goroutine.
type Runner struct {
	vm     *chip8.CHIP_8
	cfg    Config
	logger *log.Logger

	cmds    chan func()
	stopped chan struct{}

	// only touched by the Run goroutine
	paused bool
	clock  *time.Ticker
	batch  int
}

// New creates a runner for vm. The runner takes ownership, vm must not be
// used directly afterwards. Non-positive rates are replaced by the defaults.
func New(vm *chip8.CHIP_8, cfg Config, logger *log.Logger) *Runner {
	if cfg.ClockRate <= 0 {
		cfg.ClockRate = DefaultClockRate
	}
	if cfg.TimerRate <= 0 {
		cfg.TimerRate = DefaultTimerRate
	}

	if logger == nil {
		lc := log.DefaultConfig()
		lc.Level = log.ErrorLevel
		logger = log.NewWithConfig(lc)
	}

	return &Runner{
		vm:      vm,
		cfg:     cfg,
		logger:  logger,
		cmds:    make(chan func()),
		stopped: make(chan struct{}),
		paused:  cfg.Paused,
	}
}

// Run steps the virtual machine until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.stopped)

	period, batch := clockPeriod(r.cfg.ClockRate)
	r.clock = time.NewTicker(period)
	r.batch = batch
	defer r.clock.Stop()

	timer := time.NewTicker(time.Second / time.Duration(r.cfg.TimerRate))
	defer timer.Stop()

	r.logger.Debug("Runner started",
		log.Int("clock_rate", r.cfg.ClockRate),
		log.Int("timer_rate", r.cfg.TimerRate))

	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-r.cmds:
			cmd()
		case <-timer.C:
			r.vm.Tick()
		case <-r.clock.C:
			if r.paused {
				continue
			}
			for i := 0; i < r.batch && !r.paused; i++ {
				r.step()
			}
		}
	}
}

// clockPeriod returns the ticker period and instructions per tick for
// a clock rate. The period is never shorter than minPeriod and batch
// instructions per period add up to exactly rate per second.
func clockPeriod(rate int) (time.Duration, int) {
	perTick := int(time.Second / minPeriod)
	batch := (rate + perTick - 1) / perTick

	return time.Second * time.Duration(batch) / time.Duration(rate), batch
}

// step executes one instruction, pausing on a fault.
func (r *Runner) step() {
	if err := r.vm.Step(); err != nil {
		r.paused = true
		r.logger.Error("Emulation halted", log.Err(err))
	}
}

// do runs fn on the Run goroutine and waits for it to finish.
func (r *Runner) do(fn func()) error {
	done := make(chan struct{})

	select {
	case r.cmds <- func() { fn(); close(done) }:
	case <-r.stopped:
		return ErrStopped
	}

	<-done
	return nil
}

// PressKey forwards a key press.
func (r *Runner) PressKey(key uint8) error {
	var err error
	if e := r.do(func() { err = r.vm.PressKey(key) }); e != nil {
		return e
	}
	return err
}

// ReleaseKey forwards a key release.
func (r *Runner) ReleaseKey(key uint8) error {
	var err error
	if e := r.do(func() { err = r.vm.ReleaseKey(key) }); e != nil {
		return e
	}
	return err
}

// Reset clears the virtual machine, including the program. Stepping
// resumes unless the runner is configured to start paused.
func (r *Runner) Reset() error {
	return r.do(func() {
		r.vm.Reset()
		r.paused = r.cfg.Paused
		r.logger.Info("Reset")
	})
}

// Restart resets the virtual machine and reloads the last program.
func (r *Runner) Restart(paused bool) error {
	return r.do(func() {
		r.vm.Restart()
		r.paused = paused
		r.logger.Info("Restarted", log.Int("size", len(r.vm.Program())))
	})
}

// Load resets the virtual machine and runs a new program. Like Reset it
// clears any pause, including one left by a fault, unless the runner is
// configured to start paused. A rejected program leaves everything as is.
func (r *Runner) Load(program []byte) error {
	var err error
	if e := r.do(func() {
		if len(program) > chip8.MaxProgramSize {
			err = fmt.Errorf("%d bytes: %w", len(program), chip8.ErrProgramTooLarge)
			return
		}

		r.vm.Reset()
		if err = r.vm.Load(program); err == nil {
			r.paused = r.cfg.Paused
			r.logger.Info("Loaded program", log.Int("size", len(program)))
		}
	}); e != nil {
		return e
	}

	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	return nil
}

// SetPaused pauses or resumes stepping. Timers keep running.
func (r *Runner) SetPaused(paused bool) error {
	return r.do(func() { r.paused = paused })
}

// TogglePause flips the paused state and returns the new one.
func (r *Runner) TogglePause() (bool, error) {
	var paused bool
	err := r.do(func() {
		r.paused = !r.paused
		paused = r.paused
	})
	return paused, err
}

// Paused reports whether stepping is paused.
func (r *Runner) Paused() (bool, error) {
	var paused bool
	err := r.do(func() { paused = r.paused })
	return paused, err
}

// StepOnce executes a single instruction while paused.
func (r *Runner) StepOnce() error {
	var err error
	if e := r.do(func() {
		if r.paused {
			err = r.vm.Step()
		}
	}); e != nil {
		return e
	}
	return err
}

// ChangeClockRate adjusts the instruction rate by delta and returns the
// new rate. The timer rate is not affected.
func (r *Runner) ChangeClockRate(delta int) (int, error) {
	var rate int
	err := r.do(func() {
		rate = r.cfg.ClockRate + delta
		if rate < 1 {
			rate = 1
		}
		r.cfg.ClockRate = rate

		period, batch := clockPeriod(rate)
		r.clock.Reset(period)
		r.batch = batch
	})
	return rate, err
}

// Snapshot returns a copy of the virtual machine state.
func (r *Runner) Snapshot() (chip8.State, error) {
	var s chip8.State
	err := r.do(func() { s = r.vm.Snapshot() })
	return s, err
}

// Frame returns the display and whether it changed since the previous
// call to Frame.
func (r *Runner) Frame() (chip8.Framebuffer, bool, error) {
	var (
		fb      chip8.Framebuffer
		changed bool
	)
	err := r.do(func() {
		fb, changed = r.vm.Frame()
		r.vm.MarkPresented()
	})
	return fb, changed, err
}
