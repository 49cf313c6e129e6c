//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"image/color"
	"testing"

	"github.com/jezek/xgb/xproto"
)

func TestZPixmapToRGBA(t *testing.T) {
	formats := []xproto.Format{{Depth: 1, BitsPerPixel: 1}, {Depth: 24, BitsPerPixel: 32}}
	// 2x2 BGRX with a padded stride of 12 bytes.
	data := []byte{
		0x10, 0x20, 0x30, 0x00, 0xff, 0x00, 0x00, 0x00, 0xaa, 0xaa, 0xaa, 0xaa,
		0x00, 0xff, 0x00, 0x00, 0x00, 0x00, 0xff, 0x00, 0xaa, 0xaa, 0xaa, 0xaa,
	}
	img, err := zpixmapToRGBA(formats, 24, data, 2, 2)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	cases := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, color.RGBA{0x30, 0x20, 0x10, 0xff}},
		{1, 0, color.RGBA{0, 0, 0xff, 0xff}},
		{0, 1, color.RGBA{0, 0xff, 0, 0xff}},
		{1, 1, color.RGBA{0xff, 0, 0, 0xff}},
	}
	for _, c := range cases {
		if got := img.RGBAAt(c.x, c.y); got != c.want {
			t.Fatalf("pixel (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestZPixmapToRGBARejects(t *testing.T) {
	formats := []xproto.Format{{Depth: 16, BitsPerPixel: 16}, {Depth: 24, BitsPerPixel: 32}}
	if _, err := zpixmapToRGBA(formats, 16, make([]byte, 8), 2, 2); err == nil {
		t.Fatal("expected 16bpp to be rejected")
	}
	if _, err := zpixmapToRGBA(formats, 24, make([]byte, 7), 2, 2); err == nil {
		t.Fatal("expected bad stride to be rejected")
	}
	if _, err := zpixmapToRGBA(formats, 24, nil, 0, 2); err == nil {
		t.Fatal("expected empty geometry to be rejected")
	}
}
