package main

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestTextDraw(t *testing.T) {
	text := NewText(64, 16)

	text.DrawText("#", 0, 0, TextColor)

	// something inside the first glyph cell is drawn
	drawn := false
	for y := 0; y < LineHeight; y++ {
		for x := 0; x < 7; x++ {
			if _, _, _, a := text.img.At(x, y).RGBA(); a != 0 {
				drawn = true
			}
		}
	}
	assert.True(t, drawn)

	// nothing past it
	_, _, _, a := text.img.At(20, 5).RGBA()
	assert.Equal(t, uint32(0), a)

	text.Clear()
	_, _, _, a = text.img.At(3, 6).RGBA()
	assert.Equal(t, uint32(0), a)
}

func TestTextWidth(t *testing.T) {
	text := NewText(8, 8)
	assert.Equal(t, 21, text.TextWidth("abc"))
}
