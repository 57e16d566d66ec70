package main

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

/// Text is an overlay the debug panes are drawn to. Text is drawn into
/// an image and the image is streamed to a texture once per frame.
///
type Text struct {
	img  *image.RGBA
	tex  *sdl.Texture
	face font.Face
}

var (
	/// The debug text overlay.
	///
	Font *Text

	/// Default text color.
	///
	TextColor = color.RGBA{220, 224, 228, 255}
)

/// LineHeight is the pixel height of a line of debug text.
///
var LineHeight = basicfont.Face7x13.Height

/// NewText creates a text canvas covering w x h pixels.
///
func NewText(w, h int) *Text {
	return &Text{
		img:  image.NewRGBA(image.Rect(0, 0, w, h)),
		face: basicfont.Face7x13,
	}
}

/// InitFont creates the text overlay for the whole window.
///
func InitFont(w, h int32) error {
	var err error

	Font = NewText(int(w), int(h))

	Font.tex, err = Renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888), int(sdl.TEXTUREACCESS_STREAMING), w, h)
	if err != nil {
		return err
	}

	// overlay, only the glyphs are opaque
	return Font.tex.SetBlendMode(sdl.BLENDMODE_BLEND)
}

/// Clear erases all the text.
///
func (t *Text) Clear() {
	draw.Draw(t.img, t.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

/// DrawText with the top-left corner of the first glyph at x, y.
///
func (t *Text) DrawText(s string, x, y int, c color.Color) {
	d := font.Drawer{
		Dst:  t.img,
		Src:  image.NewUniform(c),
		Face: t.face,
		Dot:  fixed.P(x, y+t.face.Metrics().Ascent.Ceil()),
	}

	d.DrawString(s)
}

/// TextWidth returns the pixel width of s.
///
func (t *Text) TextWidth(s string) int {
	return font.MeasureString(t.face, s).Ceil()
}

/// Present uploads the text and copies it over the renderer.
///
func (t *Text) Present() error {
	if err := t.tex.Update(nil, t.img.Pix, t.img.Stride); err != nil {
		return err
	}

	return Renderer.Copy(t.tex, nil, nil)
}

/// DrawText to the overlay in the default color.
///
func DrawText(s string, x, y int) {
	Font.DrawText(s, x, y, TextColor)
}
