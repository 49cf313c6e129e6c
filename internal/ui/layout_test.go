package ui

import (
	"image"
	"math"
	"testing"
)

func testLayout() layout {
	return layout{width: 400, height: 300, toolbar: 80, zoom: 1}
}

func TestSurfaceRoundTrip(t *testing.T) {
	l := testLayout()
	l.zoom = 2
	x, y := l.toSurface(100, 44)
	if x != 10 || y != 10 {
		t.Fatalf("toSurface = %v,%v want 10,10", x, y)
	}
	if got := l.toWindow(x, y); got != image.Pt(100, 44) {
		t.Fatalf("toWindow = %v", got)
	}
}

func TestToSurfaceNotClamped(t *testing.T) {
	l := testLayout()
	x, y := l.toSurface(0, 0)
	if x >= 0 || y >= 0 {
		t.Fatalf("expected negative coordinates, got %v,%v", x, y)
	}
}

func TestFitZoom(t *testing.T) {
	l := testLayout()
	if z := l.fitZoom(image.Pt(100, 100)); z != 1 {
		t.Fatalf("small image zoom = %v want 1", z)
	}
	// canvas is 320x252
	z := l.fitZoom(image.Pt(640, 252))
	if math.Abs(z-0.5) > 1e-9 {
		t.Fatalf("wide image zoom = %v want 0.5", z)
	}
	if z := l.fitZoom(image.Point{}); z != 1 {
		t.Fatalf("empty zoom = %v", z)
	}
	if z := l.fitZoom(image.Pt(100000, 10)); z != minZoom {
		t.Fatalf("zoom not clamped: %v", z)
	}
}

func TestRegions(t *testing.T) {
	l := testLayout()
	if !l.inHeader(image.Pt(200, 5)) {
		t.Error("header")
	}
	if !l.inToolbar(image.Pt(10, 100)) {
		t.Error("toolbar")
	}
	if l.inToolbar(image.Pt(10, 290)) {
		t.Error("bottom bar counted as toolbar")
	}
	if !l.inShortcuts(image.Pt(200, 290)) {
		t.Error("shortcuts")
	}
	if got := l.canvas(); got != image.Rect(80, 24, 400, 276) {
		t.Errorf("canvas = %v", got)
	}
}

func TestToolRectsHit(t *testing.T) {
	l := testLayout()
	rects := l.toolRects()
	if len(rects) != len(tools) {
		t.Fatalf("got %d rects", len(rects))
	}
	if i := hit(rects, image.Pt(5, headerHeight+buttonHeight+3)); i != 1 {
		t.Fatalf("hit = %d want 1", i)
	}
	if i := hit(rects, image.Pt(200, 200)); i != -1 {
		t.Fatalf("hit outside = %d", i)
	}
}

func TestPaletteRectsWrap(t *testing.T) {
	l := testLayout()
	rects := l.paletteRects(13)
	for _, r := range rects {
		if r.Max.X > l.toolbar {
			t.Fatalf("swatch %v overflows toolbar", r)
		}
	}
	if rects[0].Min.Y == rects[len(rects)-1].Min.Y {
		t.Fatal("expected swatches to wrap onto several rows")
	}
	sizes := l.sizeRects(13)
	if sizes[0].Min.Y <= rects[len(rects)-1].Max.Y {
		t.Fatalf("size rows %v overlap palette", sizes[0])
	}
}

func TestShortcutRectsOrdered(t *testing.T) {
	l := testLayout()
	rects := l.shortcutRects([]string{"^S Save", "^C Copy"})
	if !(rects[0].Max.X < rects[1].Min.X) {
		t.Fatalf("rects overlap: %v %v", rects[0], rects[1])
	}
	if !l.inShortcuts(rects[0].Min) {
		t.Fatalf("shortcut %v outside bottom bar", rects[0])
	}
}

func TestToolbarWidthFitsLabels(t *testing.T) {
	w := toolbarWidthFor("x")
	for _, tl := range tools {
		if labelWidth(tl.label) > w {
			t.Fatalf("label %q wider than toolbar %d", tl.label, w)
		}
	}
}
