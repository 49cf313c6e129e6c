package ui

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/pikshare/internal/render"
	"github.com/example/pikshare/internal/theme"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

// Label is a text button drawn in the theme's button colours.
type Label struct {
	Text     string
	Theme    *theme.Theme
	OnSelect func()
	// Border draws a one pixel outline, used by the shortcut bar.
	Border bool
	rect   image.Rectangle
}

func (b *Label) Draw(dst *image.RGBA, state ButtonState) {
	th := b.Theme
	if th == nil {
		th = theme.Default()
	}
	bg := th.ButtonBackground
	switch state {
	case StateHover:
		bg = th.ButtonBackgroundHover
	case StatePressed:
		bg = th.ButtonBackgroundPress
	}
	draw.Draw(dst, b.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	if b.Border {
		render.DrawRect(dst, b.rect, th.ButtonBorder, 1)
	}
	drawLabel(dst, b.rect.Min.X+4, b.rect.Min.Y+(b.rect.Dy()+10)/2, b.Text, th.ButtonText)
}

func (b *Label) Rect() image.Rectangle { return b.rect }

func (b *Label) SetRect(r image.Rectangle) { b.rect = r }

func (b *Label) Activate() {
	if b.OnSelect != nil {
		b.OnSelect()
	}
}

// labelWidth measures s in the toolbar face.
func labelWidth(s string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(s).Ceil()
}

func drawLabel(dst *image.RGBA, x, baseline int, s string, col color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: basicfont.Face7x13,
		Dot: fixed.P(x, baseline)}
	d.DrawString(s)
}
