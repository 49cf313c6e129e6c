// Package palette holds the annotation colours offered by the toolbar and
// resolves colour names given on the command line or in configuration.
package palette

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/colornames"
)

// Entry is a palette colour with its display name.
type Entry struct {
	Name  string
	Color color.RGBA
}

// DefaultIndex is the entry selected when nothing is configured (red).
const DefaultIndex = 2

var (
	mu      sync.RWMutex
	entries = []Entry{
		{"Black", color.RGBA{0, 0, 0, 255}},
		{"White", color.RGBA{255, 255, 255, 255}},
		{"Red", color.RGBA{255, 0, 0, 255}},
		{"Lime", color.RGBA{0, 255, 0, 255}},
		{"Blue", color.RGBA{0, 0, 255, 255}},
		{"Yellow", color.RGBA{255, 255, 0, 255}},
		{"Cyan", color.RGBA{0, 255, 255, 255}},
		{"Magenta", color.RGBA{255, 0, 255, 255}},
		{"Orange", color.RGBA{255, 165, 0, 255}},
		{"Green", color.RGBA{0, 128, 0, 255}},
		{"Navy", color.RGBA{0, 0, 128, 255}},
		{"Purple", color.RGBA{128, 0, 128, 255}},
		{"Gray", color.RGBA{128, 128, 128, 255}},
	}
)

// Entries returns a copy of the palette.
func Entries() []Entry {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Len returns the number of palette entries.
func Len() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(entries)
}

// At returns the colour at idx, clamped to the palette.
func At(idx int) color.RGBA {
	mu.RLock()
	defer mu.RUnlock()
	if idx < 0 {
		idx = 0
	}
	if idx >= len(entries) {
		idx = len(entries) - 1
	}
	return entries[idx].Color
}

// Index returns the position of col in the palette or -1.
func Index(col color.RGBA) int {
	mu.RLock()
	defer mu.RUnlock()
	for i, e := range entries {
		if e.Color == col {
			return i
		}
	}
	return -1
}

// Ensure makes sure col is present in the palette and returns its index.
func Ensure(col color.RGBA, name string) int {
	mu.Lock()
	defer mu.Unlock()
	for i, e := range entries {
		if e.Color == col {
			return i
		}
	}
	if name == "" {
		name = Hex(col)
	}
	entries = append(entries, Entry{Name: name, Color: col})
	return len(entries) - 1
}

// Name returns the palette name of col, or its hex form.
func Name(col color.RGBA) string {
	mu.RLock()
	defer mu.RUnlock()
	for _, e := range entries {
		if e.Color == col {
			return e.Name
		}
	}
	return Hex(col)
}

// Hex formats col as #RRGGBB, or #RRGGBBAA when it is translucent.
func Hex(col color.RGBA) string {
	if col.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", col.R, col.G, col.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", col.R, col.G, col.B, col.A)
}

// Parse resolves an SVG colour name, a palette name or a #RRGGBB[AA] value.
func Parse(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	for _, e := range Entries() {
		if strings.EqualFold(e.Name, spec) {
			return e.Color, nil
		}
	}
	hex, ok := strings.CutPrefix(spec, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 6 {
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
