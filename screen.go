package main

import (
	"image/color"

	"github.com/massung/chip-8/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Texture the CHIP-8 video memory is streamed to.
	///
	Screen *sdl.Texture

	/// Pixel colors of the display.
	///
	ScreenOff = color.RGBA{143, 145, 133, 255}
	ScreenOn  = color.RGBA{17, 29, 43, 255}

	// ABGR8888 pixels, uploaded when the display changes
	screenPixels = make([]byte, chip8.Width*chip8.Height*4)
)

/// InitScreen creates the streaming texture for the CHIP-8 video memory.
///
func InitScreen() error {
	var err error

	Screen, err = Renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888), int(sdl.TEXTUREACCESS_STREAMING), chip8.Width, chip8.Height)
	return err
}

/// RefreshScreen uploads the CHIP-8 video memory if it changed.
///
func RefreshScreen() error {
	fb, changed, err := Runner.Frame()
	if err != nil || !changed {
		return err
	}

	RenderPixels(&fb, screenPixels)

	return Screen.Update(nil, screenPixels, chip8.Width*4)
}

/// RenderPixels converts the display to ABGR8888 bytes.
///
func RenderPixels(fb *chip8.Framebuffer, pixels []byte) {
	for y := 0; y < chip8.Height; y++ {
		for x := 0; x < chip8.Width; x++ {
			c := ScreenOff
			if fb.Pixel(x, y) {
				c = ScreenOn
			}

			// byte order in memory is R, G, B, A
			i := (y*chip8.Width + x) * 4
			pixels[i+0] = c.R
			pixels[i+1] = c.G
			pixels[i+2] = c.B
			pixels[i+3] = c.A
		}
	}
}

/// CopyScreen stretches the display texture to the renderer.
///
func CopyScreen(x, y, w, h int32) {
	Renderer.Copy(Screen, nil, &sdl.Rect{X: x, Y: y, W: w, H: h})
}
