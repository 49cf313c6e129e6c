// Package shape defines the annotation primitives drawn over a background
// image and the geometry used to hit-test and resize them.
package shape

import (
	"fmt"
	"image/color"
	"strings"
)

// Kind identifies the type of annotation.
type Kind int

const (
	Rectangle Kind = iota
	Circle
	Line
	Arrow
	Redact
	Text
)

// DefaultFontSize is used for text shapes that do not carry a size.
const DefaultFontSize = 16.0

// MinExtent is the largest absolute width or height a drag may produce and
// still be discarded as accidental.
const MinExtent = 2.0

var kindNames = []string{"rectangle", "circle", "line", "arrow", "redact", "text"}

var kindAliases = map[string]Kind{
	"rect": Rectangle,
	"box":  Rectangle,
	"hide": Redact,
	"mask": Redact,
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	return []Kind{Rectangle, Circle, Line, Arrow, Redact, Text}
}

// ParseKind resolves a kind by name. Short aliases such as "rect" and
// "hide" are accepted.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	if k, ok := kindAliases[name]; ok {
		return k, nil
	}
	names := make([]string, 0, len(kindNames))
	for _, k := range Kinds() {
		names = append(names, k.String())
	}
	return 0, fmt.Errorf("unknown shape kind %q (want %s)", s, strings.Join(names, ", "))
}

// Resizable reports whether shapes of this kind expose corner handles.
func (k Kind) Resizable() bool {
	return k == Rectangle || k == Circle || k == Redact
}

// Shape is a single annotation. X and Y anchor the top-left corner of the
// drag that created it; W and H may be negative until the shape is
// normalized. Line and arrow shapes keep signed extents since the sign is
// their direction.
type Shape struct {
	Kind  Kind
	X, Y  float64
	W, H  float64
	Color color.RGBA

	// Label and FontSize are only meaningful for Text shapes.
	Label    string
	FontSize float64
}

// Clone returns an independent copy of s.
func (s Shape) Clone() Shape {
	return s
}

// CloneList deep-copies a shape list. The result is never nil.
func CloneList(list []Shape) []Shape {
	out := make([]Shape, len(list))
	for i, s := range list {
		out[i] = s.Clone()
	}
	return out
}

// Size returns the font size for text shapes, falling back to the default.
func (s Shape) Size() float64 {
	if s.FontSize <= 0 {
		return DefaultFontSize
	}
	return s.FontSize
}

// ValidSize reports whether s is large enough to be committed. Text shapes
// are exempt.
func (s Shape) ValidSize() bool {
	if s.Kind == Text {
		return true
	}
	return abs(s.W) > MinExtent && abs(s.H) > MinExtent
}

// Normalize returns s with non-negative extents. Only resizable kinds are
// rewritten.
func (s Shape) Normalize() Shape {
	if !s.Kind.Resizable() {
		return s
	}
	b := s.Bounds()
	s.X, s.Y = b.MinX, b.MinY
	s.W, s.H = b.MaxX-b.MinX, b.MaxY-b.MinY
	return s
}

// Translate returns s moved by dx, dy.
func (s Shape) Translate(dx, dy float64) Shape {
	s.X += dx
	s.Y += dy
	return s
}

func (s Shape) String() string {
	if s.Kind == Text {
		return fmt.Sprintf("%s %q at (%g,%g)", s.Kind, s.Label, s.X, s.Y)
	}
	return fmt.Sprintf("%s (%g,%g %gx%g)", s.Kind, s.X, s.Y, s.W, s.H)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
