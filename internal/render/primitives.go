package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/example/pikshare/internal/shape"
)

const handleSize = int(shape.HandleSize)

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	r := thick / 2
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			px := x + dx
			py := y + dy
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
	}
}

// drawLine is Bresenham with a square brush.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func drawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	drawLine(img, rect.Min.X, rect.Min.Y, rect.Max.X-1, rect.Min.Y, col, thick)
	drawLine(img, rect.Max.X-1, rect.Min.Y, rect.Max.X-1, rect.Max.Y-1, col, thick)
	drawLine(img, rect.Max.X-1, rect.Max.Y-1, rect.Min.X, rect.Max.Y-1, col, thick)
	drawLine(img, rect.Min.X, rect.Max.Y-1, rect.Min.X, rect.Min.Y, col, thick)
}

func drawEllipse(img *image.RGBA, cx, cy, rx, ry int, col color.Color, thick int) {
	steps := int(math.Ceil(2 * math.Pi * math.Sqrt(float64(rx*rx+ry*ry))))
	if steps < 8 {
		steps = 8
	}
	var prevX, prevY int
	for i := 0; i <= steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		x := cx + int(math.Cos(angle)*float64(rx))
		y := cy + int(math.Sin(angle)*float64(ry))
		if i > 0 {
			drawLine(img, prevX, prevY, x, y, col, thick)
		} else {
			setThickPixel(img, x, y, thick, col)
		}
		prevX, prevY = x, y
	}
}

// drawArrow draws the shaft and a two stroke head at (x1, y1).
func drawArrow(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	drawLine(img, x0, y0, x1, y1, col, thick)
	angle := math.Atan2(float64(y1-y0), float64(x1-x0))
	size := float64(6 + thick*2)
	a1 := angle + math.Pi/6
	a2 := angle - math.Pi/6
	x2 := x1 - int(math.Cos(a1)*size)
	y2 := y1 - int(math.Sin(a1)*size)
	x3 := x1 - int(math.Cos(a2)*size)
	y3 := y1 - int(math.Sin(a2)*size)
	drawLine(img, x1, y1, x2, y2, col, thick)
	drawLine(img, x1, y1, x3, y3, col, thick)
}

// fillRect composites col over rect, honouring its alpha.
func fillRect(img *image.RGBA, rect image.Rectangle, col color.Color) {
	draw.Draw(img, rect, image.NewUniform(col), image.Point{}, draw.Over)
}

// fillEllipse composites col over the ellipse inscribed in rect.
func fillEllipse(img *image.RGBA, rect image.Rectangle, col color.Color) {
	rect = rect.Canon()
	if rect.Dx() == 0 || rect.Dy() == 0 {
		return
	}
	mask := image.NewAlpha(rect)
	rx := float64(rect.Dx()) / 2
	ry := float64(rect.Dy()) / 2
	cx := float64(rect.Min.X) + rx
	cy := float64(rect.Min.Y) + ry
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		ny := (float64(y) + 0.5 - cy) / ry
		if ny*ny > 1 {
			continue
		}
		span := rx * math.Sqrt(1-ny*ny)
		x0 := int(math.Round(cx - span))
		x1 := int(math.Round(cx + span))
		for x := x0; x < x1; x++ {
			mask.SetAlpha(x, y, color.Alpha{A: 0xff})
		}
	}
	draw.DrawMask(img, rect, image.NewUniform(col), image.Point{}, mask, rect.Min, draw.Over)
}

// handleRects returns the squares drawn over the four corners of rect.
func handleRects(rect image.Rectangle) []image.Rectangle {
	hs := handleSize / 2
	return []image.Rectangle{
		image.Rect(rect.Min.X-hs, rect.Min.Y-hs, rect.Min.X+hs, rect.Min.Y+hs),
		image.Rect(rect.Max.X-hs, rect.Min.Y-hs, rect.Max.X+hs, rect.Min.Y+hs),
		image.Rect(rect.Min.X-hs, rect.Max.Y-hs, rect.Min.X+hs, rect.Max.Y+hs),
		image.Rect(rect.Max.X-hs, rect.Max.Y-hs, rect.Max.X+hs, rect.Max.Y+hs),
	}
}

// DrawRect outlines rect with a stroke of the given thickness.
func DrawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	drawRect(img, rect, col, thick)
}

// DrawLine draws a straight segment.
func DrawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	drawLine(img, x0, y0, x1, y1, col, thick)
}
