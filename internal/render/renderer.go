// Package render rasterizes a background image and its annotations onto an
// RGBA surface.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/example/pikshare/internal/shape"
)

// Style controls how shapes are painted.
type Style struct {
	// FillAlpha is the opacity of shape fills, between 0 and 1.
	FillAlpha float64
	// Stroke is the outline thickness in pixels.
	Stroke int
	// Highlight replaces the stroke colour of the selected shape.
	Highlight color.RGBA
	// Redact is the fill used for redaction boxes.
	Redact       color.RGBA
	HandleFill   color.RGBA
	HandleBorder color.RGBA
	// Backdrop is painted before the background image.
	Backdrop color.RGBA
}

// DefaultStyle returns the standard look: translucent fills, 2px strokes
// and a cyan selection highlight.
func DefaultStyle() Style {
	return Style{
		FillAlpha:    0.3,
		Stroke:       2,
		Highlight:    color.RGBA{0, 255, 255, 255},
		Redact:       color.RGBA{0, 0, 0, 242},
		HandleFill:   color.RGBA{255, 255, 255, 255},
		HandleBorder: color.RGBA{0, 0, 0, 255},
	}
}

// Renderer paints shape lists. It holds no per-frame state, so rendering
// the same input twice yields identical pixels.
type Renderer struct {
	style Style
}

// New creates a Renderer using style.
func New(style Style) *Renderer {
	if style.Stroke <= 0 {
		style.Stroke = 1
	}
	if style.FillAlpha < 0 {
		style.FillAlpha = 0
	}
	if style.FillAlpha > 1 {
		style.FillAlpha = 1
	}
	return &Renderer{style: style}
}

// Style returns the renderer's style.
func (r *Renderer) Style() Style { return r.style }

// Render clears dst, draws bg scaled to fill it, then every shape in list
// order followed by pending. selected is an index into shapes or -1.
func (r *Renderer) Render(dst *image.RGBA, bg image.Image, shapes []shape.Shape, pending *shape.Shape, selected int) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(r.style.Backdrop), image.Point{}, draw.Src)
	if bg != nil {
		if bg.Bounds().Size() == dst.Bounds().Size() {
			draw.Draw(dst, dst.Bounds(), bg, bg.Bounds().Min, draw.Over)
		} else {
			xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), bg, bg.Bounds(), draw.Over, nil)
		}
	}
	for i, s := range shapes {
		r.DrawShape(dst, s, i == selected)
	}
	if pending != nil {
		r.DrawShape(dst, *pending, false)
	}
}

// DrawShape paints a single shape.
func (r *Renderer) DrawShape(dst *image.RGBA, s shape.Shape, selected bool) {
	stroke := s.Color
	if selected {
		stroke = r.style.Highlight
	}
	thick := r.style.Stroke
	box := s.Bounds()
	rect := box.Rect()

	switch s.Kind {
	case shape.Rectangle:
		fillRect(dst, rect, r.fill(s.Color))
		drawRect(dst, rect, stroke, thick)
	case shape.Redact:
		fillRect(dst, rect, r.style.Redact)
		drawRect(dst, rect, stroke, thick)
	case shape.Circle:
		fillEllipse(dst, rect, r.fill(s.Color))
		cx := (rect.Min.X + rect.Max.X) / 2
		cy := (rect.Min.Y + rect.Max.Y) / 2
		drawEllipse(dst, cx, cy, rect.Dx()/2, rect.Dy()/2, stroke, thick)
	case shape.Line:
		x0, y0, x1, y1 := endpoints(s)
		drawLine(dst, x0, y0, x1, y1, stroke, thick)
	case shape.Arrow:
		x0, y0, x1, y1 := endpoints(s)
		drawArrow(dst, x0, y0, x1, y1, stroke, thick)
	case shape.Text:
		if err := DrawText(dst, round(s.X), round(s.Y), s.Label, s.Color, s.Size()); err != nil {
			log.Printf("draw text: %v", err)
		}
		if selected {
			drawRect(dst, rect.Inset(-2), stroke, 1)
		}
	}

	if selected && s.Kind.Resizable() {
		for _, hr := range handleRects(rect) {
			draw.Draw(dst, hr, image.NewUniform(r.style.HandleFill), image.Point{}, draw.Src)
			drawRect(dst, hr, r.style.HandleBorder, 1)
		}
	}
}

func (r *Renderer) fill(c color.RGBA) color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(r.style.FillAlpha*255 + 0.5)}
}

func endpoints(s shape.Shape) (x0, y0, x1, y1 int) {
	return round(s.X), round(s.Y), round(s.X + s.W), round(s.Y + s.H)
}

func round(v float64) int {
	return int(math.Round(v))
}
