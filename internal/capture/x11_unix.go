//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// x11Screenshot reads the pixels of the default screen's root window.
func x11Screenshot() (*image.RGBA, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect X server: %w", err)
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	if setup == nil {
		return nil, errors.New("xproto setup unavailable")
	}
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		return nil, errors.New("xproto screen unavailable")
	}
	w, h := screen.WidthInPixels, screen.HeightInPixels
	reply, err := xproto.GetImage(conn, xproto.ImageFormatZPixmap, xproto.Drawable(screen.Root), 0, 0, w, h, ^uint32(0)).Reply()
	if err != nil {
		return nil, fmt.Errorf("root window pixels: %w", err)
	}
	if reply == nil {
		return nil, errors.New("root window pixels: missing reply")
	}
	log.Printf("x11 capture: %dx%d depth %d", w, h, reply.Depth)
	return zpixmapToRGBA(setup.PixmapFormats, reply.Depth, reply.Data, int(w), int(h))
}

// zpixmapToRGBA converts ZPixmap data in BGR(X) byte order. Depths packed
// into fewer than 24 bits per pixel are rejected.
func zpixmapToRGBA(formats []xproto.Format, depth byte, data []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("screen has empty geometry %dx%d", width, height)
	}
	if len(data) == 0 {
		return nil, errors.New("root window pixels: empty image data")
	}
	bpp := 0
	for _, f := range formats {
		if f.Depth == depth {
			bpp = int(f.BitsPerPixel) / 8
			break
		}
	}
	if bpp < 3 {
		return nil, fmt.Errorf("unsupported pixmap depth %d", depth)
	}
	stride := len(data) / height
	if stride*height != len(data) || stride < width*bpp {
		return nil, fmt.Errorf("root window pixels: unexpected stride for %d bytes", len(data))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := data[y*stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			src := row[x*bpp:]
			dst[x*4+0] = src[2]
			dst[x*4+1] = src[1]
			dst[x*4+2] = src[0]
			// The root window has no meaningful alpha channel.
			dst[x*4+3] = 0xff
		}
	}
	return img, nil
}
