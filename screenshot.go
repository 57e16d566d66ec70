package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/massung/chip-8/chip8"
	"golang.org/x/image/bmp"
)

/// WriteScreenshot encodes the display as a BMP image.
///
func WriteScreenshot(w io.Writer, fb *chip8.Framebuffer) error {
	return bmp.Encode(w, fb.Image(ScreenOff, ScreenOn))
}

/// Screenshot saves the display to a time stamped BMP file in the
/// current directory.
///
func Screenshot() error {
	s, err := Runner.Snapshot()
	if err != nil {
		return err
	}

	name := fmt.Sprintf("chip8-%s.bmp", time.Now().Format("20060102-150405"))

	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("creating screenshot: %w", err)
	}
	defer f.Close()

	if err = WriteScreenshot(f, &s.Video); err != nil {
		return fmt.Errorf("writing screenshot: %w", err)
	}

	Log.Log("Saved", name)

	return nil
}
