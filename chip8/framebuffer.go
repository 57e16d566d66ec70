package chip8

import (
	"image"
	"image/color"
	"math/bits"
)

const (
	/// Width of the CHIP-8 display in pixels.
	///
	Width = 64

	/// Height of the CHIP-8 display in pixels.
	///
	Height = 32
)

/// Framebuffer is the 64x32 monochrome CHIP-8 display. Each row is a
/// single 64-bit word with pixel <0,y> in the most significant bit.
///
type Framebuffer struct {
	rows [Height]uint64

	// set by any mutation until the host marks it presented
	changed bool
}

/// Clear turns every pixel off.
///
func (fb *Framebuffer) Clear() {
	fb.rows = [Height]uint64{}
	fb.changed = true
}

/// Draw XORs a sprite onto the display at <x,y>. Every sprite byte is one
/// row of 8 pixels, MSB first, and rows/columns wrap around the edges.
/// Returns true if any lit pixel was turned off.
///
func (fb *Framebuffer) Draw(x, y int, sprite []byte) bool {
	collision := false

	// origin wraps as well
	x = mod(x, Width)
	y = mod(y, Height)

	for i, s := range sprite {
		row := &fb.rows[(y+i)%Height]

		// place the sprite byte at column x, spilling over to column 0
		mask := bits.RotateLeft64(uint64(s)<<56, -x)

		if *row&mask != 0 {
			collision = true
		}

		*row ^= mask
	}

	fb.changed = true

	return collision
}

/// Pixel returns true if the pixel at <x,y> is on. Coordinates wrap.
///
func (fb *Framebuffer) Pixel(x, y int) bool {
	return fb.rows[mod(y, Height)]&(1<<(63-uint(mod(x, Width)))) != 0
}

/// Rows returns a copy of the display, one word per scan line.
///
func (fb *Framebuffer) Rows() [Height]uint64 {
	return fb.rows
}

/// Changed is true if the display was modified since last presented.
///
func (fb *Framebuffer) Changed() bool {
	return fb.changed
}

/// MarkPresented clears the changed flag once the host has shown a frame.
///
func (fb *Framebuffer) MarkPresented() {
	fb.changed = false
}

/// Image renders the display as a 2-color paletted image.
///
func (fb *Framebuffer) Image(off, on color.Color) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, Width, Height), color.Palette{off, on})

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if fb.Pixel(x, y) {
				img.SetColorIndex(x, y, 1)
			}
		}
	}

	return img
}

func mod(n, m int) int {
	n %= m
	if n < 0 {
		n += m
	}
	return n
}
