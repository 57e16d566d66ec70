package main

import (
	"errors"
	"path/filepath"

	"github.com/massung/chip-8/options"
	"github.com/sqweek/dialog"
)

/// File is the path of the loaded ROM, empty when nothing is loaded.
///
var File string

/// LoadFile reads a ROM and runs it. Loading clears any pause unless
/// emulation was started with -paused.
///
func LoadFile(path string) error {
	program, err := options.Program{ROM: path}.ReadROM()
	if err != nil {
		return err
	}

	if err = Runner.Load(program); err != nil {
		return err
	}

	File = path

	Log.Logf("Loaded %s (%d bytes)", filepath.Base(path), len(program))
	Window.SetTitle("CHIP-8 - " + filepath.Base(path))

	return nil
}

/// LoadDialog pauses emulation and asks for a ROM to load.
///
func LoadDialog() error {
	paused, err := Runner.Paused()
	if err != nil {
		return err
	}

	// don't run behind the dialog
	if err = Runner.SetPaused(true); err != nil {
		return err
	}

	path, err := dialog.File().
		Filter("CHIP-8 ROM", "ch8", "c8").
		Filter("All files", "*").
		Title("Load ROM").
		Load()

	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			err = nil
		}

		// resume where we were
		if perr := Runner.SetPaused(paused); err == nil {
			err = perr
		}
		return err
	}

	// a loaded program runs, a failed one leaves things as they were
	if err = LoadFile(path); err != nil {
		if perr := Runner.SetPaused(paused); perr != nil {
			return perr
		}
	}
	return err
}
