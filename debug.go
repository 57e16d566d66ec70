package main

import (
	"fmt"
	"strings"

	"github.com/massung/chip-8/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// True if emulation is paused (single stepping).
	///
	Paused bool

	/// Log is the scrollable message pane.
	///
	Log = NewLog()
)

/// logLines is how many lines of the log are visible.
///
const logLines = 16

/// DebugHelp shows the help text in the log.
///
func DebugHelp() {
	fmt.Fprintln(Log, "Virtual keys:")
	fmt.Fprintln(Log, "  1-2-3-4")
	fmt.Fprintln(Log, "  Q-W-E-R")
	fmt.Fprintln(Log, "  A-S-D-F")
	fmt.Fprintln(Log, "  Z-X-C-V")
	fmt.Fprintln(Log, "")
	fmt.Fprintln(Log, "Emulation keys:")
	fmt.Fprintln(Log, "  ESC       - Unload ROM")
	fmt.Fprintln(Log, "  BS        - Restart (+CTRL paused)")
	fmt.Fprintln(Log, "  Up/Down   - Scroll log")
	fmt.Fprintln(Log, "  Home/End  - Log start/end")
	fmt.Fprintln(Log, "  [ ]       - Slower/faster")
	fmt.Fprintln(Log, "  F1        - Help")
	fmt.Fprintln(Log, "  F3        - Load ROM")
	fmt.Fprintln(Log, "  F5/Space  - Pause")
	fmt.Fprintln(Log, "  F6        - Step")
	fmt.Fprintln(Log, "  F12       - Screenshot")
}

/// DebugAssembly renders the disassembled instructions around the
/// program counter, highlighting the current instruction.
///
func DebugAssembly(s *chip8.State, x, y, w int) {
	pc := fmt.Sprintf("%04X ", s.PC)

	for i, line := range s.Listing {
		ly := y + i*LineHeight

		if strings.HasPrefix(line, pc) {
			if Paused || s.Fault != nil {
				Renderer.SetDrawColor(176, 32, 57, 255)
			} else {
				Renderer.SetDrawColor(57, 102, 176, 255)
			}

			// highlight the current instruction
			Renderer.FillRect(&sdl.Rect{
				X: int32(x - 2),
				Y: int32(ly),
				W: int32(w),
				H: int32(LineHeight),
			})
		}

		DrawText(line, x, ly)
	}
}

/// DebugRegisters shows the current value of all the CHIP-8 registers.
///
func DebugRegisters(s *chip8.State, x, y int) {
	for _, line := range RegisterLines(s) {
		DrawText(line, x, y)
		y += LineHeight
	}
}

/// RegisterLines formats the registers in two columns, V registers on
/// the left and the rest on the right.
///
func RegisterLines(s *chip8.State) []string {
	right := []string{
		fmt.Sprintf("PC - #%04X", s.PC),
		fmt.Sprintf("SP - #%02X", s.SP),
		fmt.Sprintf("I  - #%04X", s.I),
		fmt.Sprintf("DT - #%02X", s.DT),
		fmt.Sprintf("ST - #%02X", s.ST),
		"",
		fmt.Sprintf("CY - %d", s.Cycles),
		fmt.Sprintf("?? - %d", s.Unknown),
	}

	if s.Waiting {
		right = append(right, "", "WAITING KEY")
	}
	if s.Fault != nil {
		right = append(right, "", "HALTED")
	}

	lines := make([]string, len(s.V))
	for i, v := range s.V {
		lines[i] = fmt.Sprintf("V%X - #%02X", i, v)

		if i < len(right) && right[i] != "" {
			lines[i] = fmt.Sprintf("%-11s%s", lines[i], right[i])
		}
	}

	return lines
}

/// DebugLog shows the visible portion of the log, truncating long lines
/// to maxChars.
///
func DebugLog(x, y, maxChars int) {
	for _, line := range Log.Window(logLines) {
		if len(line) > maxChars {
			line = line[:maxChars-3] + "..."
		}

		DrawText(line, x, y)
		y += LineHeight
	}
}
