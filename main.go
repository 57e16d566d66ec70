// Package main implements an SDL window host for the CHIP-8 virtual
// machine with a built-in debugger.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/massung/chip-8/chip8"
	"github.com/massung/chip-8/host"
	"github.com/massung/chip-8/options"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// The runner that owns the CHIP-8 virtual machine.
	///
	Runner *host.Runner

	/// The SDL Window and Renderer.
	///
	Window   *sdl.Window
	Renderer *sdl.Renderer

	/// Pane positions, set from the display scale.
	///
	Layout Panes
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts, err := options.Parse(os.Args[0], os.Args[1:])
	if err != nil {
		var usage *options.UsageError
		if errors.As(err, &usage) {
			usage.ShowUsage(os.Stderr)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := options.CreateLogger(opts.Debug, opts.Quiet)

	ctx, cancel := context.WithCancel(app.Context())
	defer cancel()

	if err := run(ctx, opts, logger); err != nil {
		logger.Fatal("Emulation failed", log.Err(err))
	}
}

func run(ctx context.Context, opts options.Program, logger *log.Logger) error {
	quirks, err := opts.VMQuirks()
	if err != nil {
		return err
	}

	program, err := opts.ReadROM()
	if err != nil {
		return err
	}

	// create a new CHIP-8 virtual machine, must happen early!
	vm, err := chip8.LoadROM(program, chip8.WithQuirks(quirks), chip8.WithLogger(logger))
	if err != nil {
		return err
	}

	Runner = host.New(vm, host.Config{
		ClockRate: opts.ClockRate,
		TimerRate: opts.TimerRate,
		Paused:    opts.Paused,
	}, logger)

	File = opts.ROM
	Paused = opts.Paused

	done := make(chan error, 1)
	go func() {
		done <- Runner.Run(ctx)
	}()

	// initialize SDL
	if err = sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("initializing SDL: %w", err)
	}
	defer sdl.Quit()

	Layout = NewPanes(int32(opts.Scale))

	Window, err = sdl.CreateWindow("CHIP-8", sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, Layout.W, Layout.H, sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer Window.Destroy()

	Renderer, err = sdl.CreateRenderer(Window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	defer Renderer.Destroy()

	// initialize subsystems
	if err = InitScreen(); err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err = InitFont(Layout.W, Layout.H); err != nil {
		return fmt.Errorf("creating font: %w", err)
	}

	if File != "" {
		Window.SetTitle("CHIP-8 - " + File)
		Log.Logf("Loaded %s (%d bytes)", File, len(program))
	}
	Log.Logf("Quirks %s, %d Hz", opts.Quirks, opts.ClockRate)
	Log.Log("Press F1 for help")

	// refresh rate
	video := time.NewTicker(time.Second / 60)
	defer video.Stop()

	// loop until window closed or user quit
	for ProcessEvents() {
		select {
		case <-ctx.Done():
			return <-done
		case <-video.C:
			if err = Refresh(); err != nil {
				if errors.Is(err, host.ErrStopped) {
					return <-done
				}
				return err
			}
		}
	}

	return nil
}

/// Refresh redraws the whole window.
///
func Refresh() error {
	s, err := Runner.Snapshot()
	if err != nil {
		return err
	}

	// a fault pauses the runner on its own
	if Paused, err = Runner.Paused(); err != nil {
		return err
	}

	Renderer.SetDrawColor(32, 42, 53, 255)
	Renderer.Clear()

	// frame various portions of the app
	Frame(Layout.Screen)
	Frame(Layout.Assembly)
	Frame(Layout.Registers)
	Frame(Layout.Log)

	// update the video screen and copy it
	if err = RefreshScreen(); err != nil {
		return err
	}
	CopyScreen(Layout.Screen.X+2, Layout.Screen.Y+2, Layout.Screen.W-4, Layout.Screen.H-4)

	// debug assembly, virtual registers and log
	Font.Clear()
	DebugAssembly(&s, int(Layout.Assembly.X+6), int(Layout.Assembly.Y+4), int(Layout.Assembly.W-8))
	DebugRegisters(&s, int(Layout.Registers.X+6), int(Layout.Registers.Y+4))
	DebugLog(int(Layout.Log.X+6), int(Layout.Log.Y+4), Layout.LogChars())

	if err = Font.Present(); err != nil {
		return err
	}

	// show the new frame
	Renderer.Present()

	return nil
}

/// Frame draws a sunken border around a pane.
///
func Frame(r sdl.Rect) {
	Renderer.SetDrawColor(0, 0, 0, 255)
	Renderer.DrawLine(r.X, r.Y, r.X+r.W, r.Y)
	Renderer.DrawLine(r.X, r.Y, r.X, r.Y+r.H)

	// highlight
	Renderer.SetDrawColor(95, 112, 120, 255)
	Renderer.DrawLine(r.X+r.W, r.Y, r.X+r.W, r.Y+r.H)
	Renderer.DrawLine(r.X, r.Y+r.H, r.X+r.W, r.Y+r.H)
}
