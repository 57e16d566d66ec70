package main

import (
	"errors"

	"github.com/massung/chip-8/host"
	"github.com/veandco/go-sdl2/sdl"
)

/// SpeedStep is how much the speed keys change the clock rate.
///
const SpeedStep = 50

var (
	/// Mapping of modern keyboard to CHIP-8 keys.
	///
	KeyMap = map[sdl.Scancode]uint8{
		sdl.SCANCODE_X: 0x0,
		sdl.SCANCODE_1: 0x1,
		sdl.SCANCODE_2: 0x2,
		sdl.SCANCODE_3: 0x3,
		sdl.SCANCODE_Q: 0x4,
		sdl.SCANCODE_W: 0x5,
		sdl.SCANCODE_E: 0x6,
		sdl.SCANCODE_A: 0x7,
		sdl.SCANCODE_S: 0x8,
		sdl.SCANCODE_D: 0x9,
		sdl.SCANCODE_Z: 0xA,
		sdl.SCANCODE_C: 0xB,
		sdl.SCANCODE_4: 0xC,
		sdl.SCANCODE_R: 0xD,
		sdl.SCANCODE_F: 0xE,
		sdl.SCANCODE_V: 0xF,
	}
)

/// ProcessEvents from SDL and map keys to the CHIP-8 VM. Returns false
/// once the window is closed or the runner has stopped.
///
func ProcessEvents() bool {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			return false
		case *sdl.KeyboardEvent:
			if err := processKey(ev); err != nil {
				if errors.Is(err, host.ErrStopped) {
					return false
				}
				Log.Log(err.Error())
			}
		}
	}

	return true
}

/// processKey handles a single key press or release.
///
func processKey(ev *sdl.KeyboardEvent) error {
	key, ok := KeyMap[ev.Keysym.Scancode]

	switch {
	case ok && ev.Type == sdl.KEYUP:
		return Runner.ReleaseKey(key)
	case ok && ev.Repeat == 0:
		return Runner.PressKey(key)
	case ok || ev.Type != sdl.KEYDOWN:
		return nil
	}

	var err error

	switch ev.Keysym.Scancode {
	case sdl.SCANCODE_ESCAPE:
		File = ""

		// go back to a blank machine, idle until a ROM is loaded
		Log.Log("Unloading ROM")
		if err = Runner.Reset(); err == nil {
			err = Runner.SetPaused(true)
		}
	case sdl.SCANCODE_BACKSPACE:
		// holding control during restart will reboot paused
		ctrl := ev.Keysym.Mod&sdl.KMOD_LCTRL == sdl.KMOD_LCTRL || ev.Keysym.Mod&sdl.KMOD_RCTRL == sdl.KMOD_RCTRL

		Log.Log("Restarting", File)
		err = Runner.Restart(ctrl)
		Paused = ctrl
	case sdl.SCANCODE_UP, sdl.SCANCODE_PAGEUP:
		Log.ScrollUp(logLines)
	case sdl.SCANCODE_DOWN, sdl.SCANCODE_PAGEDOWN:
		Log.ScrollDown(logLines)
	case sdl.SCANCODE_HOME:
		Log.Home()
	case sdl.SCANCODE_END:
		Log.End()
	case sdl.SCANCODE_F1, sdl.SCANCODE_H:
		DebugHelp()
	case sdl.SCANCODE_F3:
		err = LoadDialog()
	case sdl.SCANCODE_LEFTBRACKET:
		err = changeSpeed(-SpeedStep)
	case sdl.SCANCODE_RIGHTBRACKET:
		err = changeSpeed(SpeedStep)
	case sdl.SCANCODE_F5, sdl.SCANCODE_SPACE:
		Paused, err = Runner.TogglePause()
	case sdl.SCANCODE_F6, sdl.SCANCODE_F10:
		if Paused {
			err = Runner.StepOnce()
		}
	case sdl.SCANCODE_F12:
		err = Screenshot()
	}

	return err
}

/// changeSpeed adjusts the clock rate and logs the new one.
///
func changeSpeed(delta int) error {
	rate, err := Runner.ChangeClockRate(delta)
	if err == nil {
		Log.Logf("Clock rate %d Hz", rate)
	}
	return err
}
