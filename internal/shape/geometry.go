package shape

import (
	"image"
	"math"
)

const (
	// HandleSize is the side of the square drawn over each corner of a
	// selected shape.
	HandleSize = 8.0
	// HandleTolerance is how far, per axis, a pointer may be from a corner
	// and still grab it: the grab area is the handle square itself.
	HandleTolerance = HandleSize / 2
)

// Handle names a resize corner.
type Handle int

const (
	HandleNone Handle = iota
	HandleTopLeft
	HandleTopRight
	HandleBottomLeft
	HandleBottomRight
)

func (h Handle) String() string {
	switch h {
	case HandleTopLeft:
		return "top-left"
	case HandleTopRight:
		return "top-right"
	case HandleBottomLeft:
		return "bottom-left"
	case HandleBottomRight:
		return "bottom-right"
	}
	return "none"
}

// Box is an axis aligned bounding box with Min <= Max on both axes.
type Box struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Bounds returns the normalized bounding box of s.
func (s Shape) Bounds() Box {
	return Box{
		MinX: math.Min(s.X, s.X+s.W),
		MinY: math.Min(s.Y, s.Y+s.H),
		MaxX: math.Max(s.X, s.X+s.W),
		MaxY: math.Max(s.Y, s.Y+s.H),
	}
}

// Contains reports whether (x, y) lies in b. Edges are inclusive.
func (b Box) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Rect converts b to device pixels, rounding outwards.
func (b Box) Rect() image.Rectangle {
	return image.Rect(
		int(math.Floor(b.MinX)), int(math.Floor(b.MinY)),
		int(math.Ceil(b.MaxX)), int(math.Ceil(b.MaxY)),
	)
}

// Width and Height are never negative.
func (b Box) Width() float64  { return b.MaxX - b.MinX }
func (b Box) Height() float64 { return b.MaxY - b.MinY }

// PointInBox reports whether (x, y) is inside the bounding box of s.
func PointInBox(s Shape, x, y float64) bool {
	return s.Bounds().Contains(x, y)
}

// Corner returns the position of the given handle on s.
func Corner(s Shape, h Handle) (float64, float64) {
	switch h {
	case HandleTopLeft:
		return s.X, s.Y
	case HandleTopRight:
		return s.X + s.W, s.Y
	case HandleBottomLeft:
		return s.X, s.Y + s.H
	case HandleBottomRight:
		return s.X + s.W, s.Y + s.H
	}
	return s.X, s.Y
}

// HandleAt returns the corner of s within tol of (x, y) on both axes.
// Corners are checked in the order top-left, top-right, bottom-left,
// bottom-right.
func HandleAt(s Shape, x, y, tol float64) Handle {
	for _, h := range []Handle{HandleTopLeft, HandleTopRight, HandleBottomLeft, HandleBottomRight} {
		cx, cy := Corner(s, h)
		if math.Abs(x-cx) <= tol && math.Abs(y-cy) <= tol {
			return h
		}
	}
	return HandleNone
}

// Resize moves the given corner of s to (mx, my), keeping the opposite
// corner fixed. The result may have negative extents.
func Resize(s Shape, h Handle, mx, my float64) Shape {
	switch h {
	case HandleTopLeft:
		s.W += s.X - mx
		s.H += s.Y - my
		s.X = mx
		s.Y = my
	case HandleTopRight:
		s.W = mx - s.X
		s.H += s.Y - my
		s.Y = my
	case HandleBottomLeft:
		s.W += s.X - mx
		s.X = mx
		s.H = my - s.Y
	case HandleBottomRight:
		s.W = mx - s.X
		s.H = my - s.Y
	}
	return s
}

// TopmostAt returns the index of the last shape in list whose bounding box
// contains (x, y), or -1.
func TopmostAt(list []Shape, x, y float64) int {
	for i := len(list) - 1; i >= 0; i-- {
		if PointInBox(list[i], x, y) {
			return i
		}
	}
	return -1
}
