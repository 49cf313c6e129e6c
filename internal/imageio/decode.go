// Package imageio loads background images and encodes the annotated
// surface for export.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode is returned when an input cannot be read as an image.
var ErrDecode = errors.New("image decode failed")

// Decoder reads images and fits them into a maximum size.
type Decoder struct {
	MaxWidth  int
	MaxHeight int
}

// NewDecoder returns a Decoder. A non-positive bound disables scaling on
// that axis.
func NewDecoder(maxWidth, maxHeight int) *Decoder {
	return &Decoder{MaxWidth: maxWidth, MaxHeight: maxHeight}
}

// Decode reads an image in any registered format and returns it scaled
// down, preserving aspect ratio, to fit the decoder's bounds. The result
// always has a zero origin.
func (d *Decoder) Decode(r io.Reader) (*image.RGBA, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if img.Bounds().Empty() {
		return nil, "", fmt.Errorf("%w: empty image", ErrDecode)
	}
	return d.Fit(img), format, nil
}

// DecodeFile opens and decodes path.
func (d *Decoder) DecodeFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := d.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Fit scales img down to the decoder's bounds and converts it to RGBA.
func (d *Decoder) Fit(img image.Image) *image.RGBA {
	b := img.Bounds()
	maxW, maxH := d.MaxWidth, d.MaxHeight
	if maxW <= 0 {
		maxW = b.Dx()
	}
	if maxH <= 0 {
		maxH = b.Dy()
	}
	if b.Dx() > maxW || b.Dy() > maxH {
		img = imaging.Fit(img, maxW, maxH, imaging.Lanczos)
	}
	return ToRGBA(img)
}

// ToRGBA copies img into a zero-origin RGBA image. An RGBA image that is
// already zero based is returned as is.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
