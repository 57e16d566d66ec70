package host

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/massung/chip-8/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// startRunner runs a program until the test finishes.
func startRunner(t *testing.T, cfg Config, words ...uint16) *Runner {
	t.Helper()

	program := make([]byte, 0, len(words)*2)
	for _, w := range words {
		program = append(program, byte(w>>8), byte(w))
	}

	vm, err := chip8.LoadROM(program)
	assert.NoError(t, err)

	r := New(vm, cfg, log.NewTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- r.Run(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})

	return r
}

// eventually polls the runner state until cond holds.
func eventually(t *testing.T, r *Runner, cond func(chip8.State) bool) chip8.State {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for {
		s, err := r.Snapshot()
		assert.NoError(t, err)

		if cond(s) {
			return s
		}
		if time.Now().After(deadline) {
			t.Fatalf("condition not met, PC=%04X V=%v", s.PC, s.V)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestClockPeriod(t *testing.T) {
	tests := []struct {
		rate   int
		period time.Duration
		batch  int
	}{
		{500, 2 * time.Millisecond, 1},
		{1000, time.Millisecond, 1},
		{1050, 2 * time.Second / 1050, 2},
		{1500, 2 * time.Second / 1500, 2},
		{1999, 2 * time.Second / 1999, 2},
		{2500, 1200 * time.Microsecond, 3},
		{5000, time.Millisecond, 5},
		{60, time.Second / 60, 1},
		{1, time.Second, 1},
	}

	for _, tt := range tests {
		period, batch := clockPeriod(tt.rate)
		assert.Equal(t, tt.period, period)
		assert.Equal(t, tt.batch, batch)
		assert.True(t, period >= minPeriod)

		// instructions per second actually delivered
		effective := time.Duration(batch) * time.Second / period
		assert.Equal(t, tt.rate, int(effective))
	}
}

func TestNewDefaultsRates(t *testing.T) {
	r := New(chip8.New(), Config{}, nil)

	assert.Equal(t, DefaultClockRate, r.cfg.ClockRate)
	assert.Equal(t, DefaultTimerRate, r.cfg.TimerRate)

	r = New(chip8.New(), Config{ClockRate: -5, TimerRate: 30}, nil)
	assert.Equal(t, DefaultClockRate, r.cfg.ClockRate)
	assert.Equal(t, 30, r.cfg.TimerRate)
}

func TestRunnerWaitForKey(t *testing.T) {
	// LD V5, K; JP 202
	r := startRunner(t, Config{ClockRate: 1000, TimerRate: 60}, 0xF50A, 0x1202)

	eventually(t, r, func(s chip8.State) bool { return s.Waiting })

	assert.NoError(t, r.PressKey(0xC))

	s := eventually(t, r, func(s chip8.State) bool { return s.PC == 0x202 })
	assert.Equal(t, byte(0xC), s.V[5])
	assert.False(t, s.Waiting)

	assert.NoError(t, r.ReleaseKey(0xC))
	assert.True(t, errors.Is(r.PressKey(0x10), chip8.ErrKeyOutOfRange))
}

func TestRunnerClocksAreIndependent(t *testing.T) {
	// LD V0, 60; LD DT, V0; JP 204
	r := startRunner(t, Config{ClockRate: 2000, TimerRate: 60}, 0x603C, 0xF015, 0x1204)

	s := eventually(t, r, func(s chip8.State) bool { return s.Cycles > 200 })

	// hundreds of instructions, but only a handful of timer ticks
	assert.True(t, s.DT > 30)

	s = eventually(t, r, func(s chip8.State) bool { return s.DT == 0 })
	assert.True(t, s.Cycles > 500)
}

func TestRunnerPauseAndStep(t *testing.T) {
	r := startRunner(t, Config{ClockRate: 500, TimerRate: 60, Paused: true}, 0x6001, 0x6102)

	paused, err := r.Paused()
	assert.NoError(t, err)
	assert.True(t, paused)

	time.Sleep(20 * time.Millisecond)
	s, err := r.Snapshot()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x200), s.PC)

	assert.NoError(t, r.StepOnce())
	s, err = r.Snapshot()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x202), s.PC)
	assert.Equal(t, byte(1), s.V[0])

	paused, err = r.TogglePause()
	assert.NoError(t, err)
	assert.False(t, paused)

	eventually(t, r, func(s chip8.State) bool { return s.V[1] == 2 })
}

func TestRunnerFaultPauses(t *testing.T) {
	r := startRunner(t, Config{ClockRate: 1000, TimerRate: 60}, 0x00EE)

	s := eventually(t, r, func(s chip8.State) bool { return s.Fault != nil })
	assert.True(t, errors.Is(s.Fault, chip8.ErrStackUnderflow))

	paused, err := r.Paused()
	assert.NoError(t, err)
	assert.True(t, paused)

	assert.NoError(t, r.Restart(true))
	s, err = r.Snapshot()
	assert.NoError(t, err)
	assert.True(t, s.Fault == nil)
	assert.Equal(t, uint16(0x200), s.PC)
}

func TestRunnerLoad(t *testing.T) {
	r := startRunner(t, Config{ClockRate: 1000, TimerRate: 60, Paused: true})

	err := r.Load(make([]byte, chip8.MaxProgramSize+1))
	assert.True(t, errors.Is(err, chip8.ErrProgramTooLarge))

	assert.NoError(t, r.Load([]byte{0x63, 0x21, 0x12, 0x02}))

	// configured to start paused, so loading keeps it paused
	paused, err := r.Paused()
	assert.NoError(t, err)
	assert.True(t, paused)

	assert.NoError(t, r.SetPaused(false))
	eventually(t, r, func(s chip8.State) bool { return s.V[3] == 0x21 })
}

func TestRunnerLoadAfterFaultRuns(t *testing.T) {
	r := startRunner(t, Config{ClockRate: 1000, TimerRate: 60}, 0x00EE)

	eventually(t, r, func(s chip8.State) bool { return s.Fault != nil })

	// a load dialog pauses before loading
	assert.NoError(t, r.SetPaused(true))
	assert.NoError(t, r.Load([]byte{0x63, 0x21, 0x12, 0x02}))

	s := eventually(t, r, func(s chip8.State) bool { return s.V[3] == 0x21 })
	assert.True(t, s.Fault == nil)

	paused, err := r.Paused()
	assert.NoError(t, err)
	assert.False(t, paused)
}

func TestRunnerLoadRejectedKeepsProgram(t *testing.T) {
	r := startRunner(t, Config{ClockRate: 1000, TimerRate: 60, Paused: true}, 0x6307)

	err := r.Load(make([]byte, chip8.MaxProgramSize+1))
	assert.True(t, errors.Is(err, chip8.ErrProgramTooLarge))

	assert.NoError(t, r.StepOnce())
	s, err := r.Snapshot()
	assert.NoError(t, err)
	assert.Equal(t, byte(7), s.V[3])
}

func TestRunnerResetClearsFaultPause(t *testing.T) {
	r := startRunner(t, Config{ClockRate: 1000, TimerRate: 60}, 0x00EE)

	eventually(t, r, func(s chip8.State) bool { return s.Fault != nil })

	assert.NoError(t, r.Reset())

	paused, err := r.Paused()
	assert.NoError(t, err)
	assert.False(t, paused)

	// blank memory decodes as unknown instructions, which still step
	s := eventually(t, r, func(s chip8.State) bool { return s.Unknown > 0 })
	assert.True(t, s.Fault == nil)
}

func TestRunnerFrame(t *testing.T) {
	// LD I, 0; DRW V0, V0, 5; JP 204
	r := startRunner(t, Config{ClockRate: 1000, TimerRate: 60}, 0xA000, 0xD005, 0x1204)

	eventually(t, r, func(s chip8.State) bool { return s.PC == 0x204 })

	fb, changed, err := r.Frame()
	assert.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, fb.Pixel(0, 0))

	_, changed, err = r.Frame()
	assert.NoError(t, err)
	assert.False(t, changed)
}

func TestRunnerChangeClockRate(t *testing.T) {
	r := startRunner(t, Config{ClockRate: 500, TimerRate: 60, Paused: true})

	rate, err := r.ChangeClockRate(100)
	assert.NoError(t, err)
	assert.Equal(t, 600, rate)

	rate, err = r.ChangeClockRate(-1000)
	assert.NoError(t, err)
	assert.Equal(t, 1, rate)
}

func TestRunnerStopped(t *testing.T) {
	vm := chip8.New()
	r := New(vm, Config{ClockRate: 500, TimerRate: 60}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, r.Run(ctx))

	assert.True(t, errors.Is(r.PressKey(1), ErrStopped))
	_, err := r.Snapshot()
	assert.True(t, errors.Is(err, ErrStopped))
}
