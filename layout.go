package main

import (
	"github.com/massung/chip-8/chip8"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/image/font/basicfont"
)

const (
	margin  = 8 // space between panes
	padding = 4 // space inside a pane border
)

/// Panes are the window regions, sized to fit the scaled display and
/// 16 lines of debug text.
///
type Panes struct {
	W, H int32

	Screen    sdl.Rect
	Assembly  sdl.Rect
	Registers sdl.Rect
	Log       sdl.Rect
}

/// NewPanes lays out the window for a display scale.
///
func NewPanes(scale int32) Panes {
	var p Panes

	glyph := int32(basicfont.Face7x13.Advance)
	text := int32(16*LineHeight + 2*padding)

	p.Screen = sdl.Rect{X: margin, Y: margin, W: chip8.Width*scale + padding, H: chip8.Height*scale + padding}

	// the disassembly sits right of the display
	p.Assembly = sdl.Rect{
		X: p.Screen.X + p.Screen.W + margin,
		Y: margin,
		W: 26*glyph + 2*padding,
		H: max(p.Screen.H, text),
	}

	p.W = p.Assembly.X + p.Assembly.W + margin

	// registers and log below both
	y := p.Assembly.Y + p.Assembly.H + margin

	p.Registers = sdl.Rect{X: margin, Y: y, W: 22*glyph + 2*padding, H: text}
	p.Log = sdl.Rect{
		X: p.Registers.X + p.Registers.W + margin,
		Y: y,
		W: p.W - p.Registers.W - 3*margin,
		H: text,
	}

	p.H = y + text + margin

	return p
}

/// LogChars is how many characters fit on a line of the log pane.
///
func (p Panes) LogChars() int {
	return int(p.Log.W-2*padding) / basicfont.Face7x13.Advance
}
