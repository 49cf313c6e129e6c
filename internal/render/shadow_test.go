package render

import (
	"image"
	"image/color"
	"testing"
)

func TestApplyShadowGrowsCanvas(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	img.Set(5, 5, color.RGBA{R: 255, A: 255})

	opts := ShadowOptions{Radius: 4, Offset: image.Pt(8, 6), Opacity: 0.5}
	out := ApplyShadow(img, opts)
	if out.Image == nil {
		t.Fatal("expected output image")
	}
	if want := image.Rect(0, 0, 22, 20); !out.Image.Bounds().Eq(want) {
		t.Fatalf("bounds %v, want %v", out.Image.Bounds(), want)
	}
	if out.Offset != (image.Point{}) {
		t.Fatalf("offset %v, want origin", out.Offset)
	}
	if out.Image.RGBAAt(13, 11).A == 0 {
		t.Fatal("expected shadow alpha under the offset pixel")
	}
	if got := out.Image.RGBAAt(5, 5); got != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("source pixel changed: %+v", got)
	}
}

func TestApplyShadowZeroOpacityIsIdentity(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	out := ApplyShadow(img, ShadowOptions{Radius: 12, Offset: image.Pt(20, 10), Opacity: 0})
	if out.Image != img {
		t.Fatal("expected the input image back")
	}
}

func TestApplyShadowNegativeOffsetShiftsContent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{A: 255})
	out := ApplyShadow(img, ShadowOptions{Radius: 0, Offset: image.Pt(-3, -2), Opacity: 1})
	if want := image.Pt(3, 2); out.Offset != want {
		t.Fatalf("offset %v, want %v", out.Offset, want)
	}
	if out.Image.RGBAAt(0, 0).A == 0 {
		t.Fatal("expected unblurred shadow at the new origin")
	}
}
