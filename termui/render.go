package termui

import (
	"fmt"
	"io"
	"strings"

	"github.com/massung/chip-8/chip8"
)

// Terminal control sequences.
const (
	ClearScreen = "\x1b[2J"
	CursorHome  = "\x1b[H"
	HideCursor  = "\x1b[?25l"
	ShowCursor  = "\x1b[?25h"
)

// Rows and Cols is the terminal area the display needs, one text row
// per two pixel rows plus a status line.
const (
	Rows = chip8.Height/2 + 1
	Cols = chip8.Width
)

// half blocks indexed by top | bottom<<1
var blocks = [4]string{" ", "▀", "▄", "█"}

// Render draws the display at the top left of the terminal. Lines end in
// CR LF since the terminal is in raw mode.
func Render(w io.Writer, fb *chip8.Framebuffer) error {
	var sb strings.Builder

	sb.WriteString(CursorHome)

	for y := 0; y < chip8.Height; y += 2 {
		for x := 0; x < chip8.Width; x++ {
			i := 0
			if fb.Pixel(x, y) {
				i |= 1
			}
			if fb.Pixel(x, y+1) {
				i |= 2
			}
			sb.WriteString(blocks[i])
		}
		sb.WriteString("\r\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Status formats the status line below the display.
func Status(s *chip8.State, paused bool) string {
	status := "running"
	switch {
	case s.Fault != nil:
		status = "halted: " + s.Fault.Error()
	case paused:
		status = "paused"
	case s.Waiting:
		status = "waiting for key"
	}

	line := fmt.Sprintf("PC %04X  I %04X  DT %02X  ST %02X  %s", s.PC, s.I, s.DT, s.ST, status)
	if len(line) > Cols {
		line = line[:Cols]
	}

	// erase what's left of a longer previous line
	return line + "\x1b[K"
}

// RenderStatus draws the status line on the last row.
func RenderStatus(w io.Writer, s *chip8.State, paused bool) error {
	_, err := fmt.Fprintf(w, "\x1b[%d;1H%s", Rows, Status(s, paused))
	return err
}
