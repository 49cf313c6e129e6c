package ui

import (
	"image"
	"math"

	"github.com/example/pikshare/internal/shape"
)

const (
	headerHeight = 24
	bottomHeight = 24
	buttonHeight = 24
	swatchSize   = 16
	swatchStep   = 18
	sizeHeight   = 20

	minZoom = 0.1
	maxZoom = 8
)

// fontSizes are offered in the toolbar while the text tool is active.
var fontSizes = []float64{12, 16, 20, 24, 32}

// tool is a toolbar entry.
type tool struct {
	label string
	kind  shape.Kind
	key   rune
}

var tools = []tool{
	{"R:Rect", shape.Rectangle, 'r'},
	{"O:Circle", shape.Circle, 'o'},
	{"L:Line", shape.Line, 'l'},
	{"A:Arrow", shape.Arrow, 'a'},
	{"X:Redact", shape.Redact, 'x'},
	{"T:Text", shape.Text, 't'},
}

// toolbarWidthFor fits the title and every tool label.
func toolbarWidthFor(title string) int {
	w := labelWidth(title) + 8
	for _, t := range tools {
		if lw := labelWidth(t.label) + 8; lw > w {
			w = lw
		}
	}
	return w
}

// layout maps between window and surface coordinates.
type layout struct {
	width, height int
	toolbar       int
	zoom          float64
}

// canvas is the window area available to the surface.
func (l layout) canvas() image.Rectangle {
	return image.Rect(l.toolbar, headerHeight, l.width, l.height-bottomHeight)
}

// fitZoom returns the largest zoom, at most 1, that shows all of size.
func (l layout) fitZoom(size image.Point) float64 {
	c := l.canvas()
	if size.X <= 0 || size.Y <= 0 || c.Dx() <= 0 || c.Dy() <= 0 {
		return 1
	}
	z := math.Min(float64(c.Dx())/float64(size.X), float64(c.Dy())/float64(size.Y))
	return clampZoom(math.Min(z, 1))
}

func clampZoom(z float64) float64 {
	return math.Max(minZoom, math.Min(maxZoom, z))
}

// imageRect is where a surface of the given size is drawn. It is anchored
// at the canvas origin so the image does not jump while the window
// resizes.
func (l layout) imageRect(size image.Point) image.Rectangle {
	c := l.canvas()
	w := int(float64(size.X) * l.zoom)
	h := int(float64(size.Y) * l.zoom)
	return image.Rect(c.Min.X, c.Min.Y, c.Min.X+w, c.Min.Y+h)
}

// toSurface converts window coordinates to surface coordinates. The result
// is not clamped to the surface.
func (l layout) toSurface(x, y float32) (float64, float64) {
	c := l.canvas()
	return (float64(x) - float64(c.Min.X)) / l.zoom, (float64(y) - float64(c.Min.Y)) / l.zoom
}

// toWindow is the inverse of toSurface.
func (l layout) toWindow(x, y float64) image.Point {
	c := l.canvas()
	return image.Pt(c.Min.X+int(math.Round(x*l.zoom)), c.Min.Y+int(math.Round(y*l.zoom)))
}

func (l layout) inToolbar(p image.Point) bool {
	return p.X < l.toolbar && p.Y >= headerHeight && p.Y < l.height-bottomHeight
}

func (l layout) inShortcuts(p image.Point) bool {
	return p.Y >= l.height-bottomHeight
}

func (l layout) inHeader(p image.Point) bool {
	return p.Y < headerHeight
}

// toolRects lays out the tool buttons from the top of the toolbar.
func (l layout) toolRects() []image.Rectangle {
	out := make([]image.Rectangle, len(tools))
	y := headerHeight
	for i := range tools {
		out[i] = image.Rect(0, y, l.toolbar, y+buttonHeight)
		y += buttonHeight
	}
	return out
}

// paletteRects lays out n swatches below the tools.
func (l layout) paletteRects(n int) []image.Rectangle {
	out := make([]image.Rectangle, n)
	y := headerHeight + len(tools)*buttonHeight + 4
	x := 4
	for i := range out {
		out[i] = image.Rect(x, y, x+swatchSize, y+swatchSize)
		x += swatchStep
		if x+swatchSize > l.toolbar {
			x = 4
			y += swatchStep
		}
	}
	return out
}

// sizeRects lays out the font size choices below the palette.
func (l layout) sizeRects(paletteLen int) []image.Rectangle {
	y := headerHeight + len(tools)*buttonHeight + 4
	if sw := l.paletteRects(paletteLen); len(sw) > 0 {
		y = sw[len(sw)-1].Max.Y
	}
	y += 8
	out := make([]image.Rectangle, len(fontSizes))
	for i := range out {
		out[i] = image.Rect(0, y, l.toolbar, y+sizeHeight)
		y += sizeHeight
	}
	return out
}

// shortcutRects lays out the bottom bar labels from left to right.
func (l layout) shortcutRects(labels []string) []image.Rectangle {
	out := make([]image.Rectangle, len(labels))
	x := l.toolbar + 4
	y := l.height - bottomHeight + 16
	for i, lbl := range labels {
		w := labelWidth(lbl)
		out[i] = image.Rect(x-2, y-14, x+w+2, y+4)
		x = out[i].Max.X + 8
	}
	return out
}

// hit returns the index of the first rect containing p, or -1.
func hit(rects []image.Rectangle, p image.Point) int {
	for i, r := range rects {
		if p.In(r) {
			return i
		}
	}
	return -1
}
