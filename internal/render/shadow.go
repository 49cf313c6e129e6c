package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
)

// ShadowOptions configures the drop shadow added to exported images.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// ShadowResult captures the output of ApplyShadow.
type ShadowResult struct {
	Image *image.RGBA
	// Offset is where the source image's top-left corner ended up on the
	// expanded canvas.
	Offset image.Point
}

// DefaultShadowOptions returns a soft shadow down and to the right.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  24,
		Offset:  image.Pt(16, 16),
		Opacity: 0.55,
	}
}

// ApplyShadow composites img over a blurred silhouette of itself. The
// canvas grows to fit the shadow and always starts at the origin.
func ApplyShadow(img *image.RGBA, opts ShadowOptions) ShadowResult {
	if img == nil {
		return ShadowResult{}
	}
	if img.Bounds().Empty() || opts.Opacity <= 0 {
		return ShadowResult{Image: img}
	}
	opacity := opts.Opacity
	if opacity > 1 {
		opacity = 1
	}
	radius := opts.Radius
	if radius < 0 {
		radius = 0
	}

	src := img.Bounds()
	padded := src.Inset(-radius)
	shadowBounds := padded.Add(opts.Offset)
	composite := src.Union(shadowBounds)
	shift := src.Min.Sub(composite.Min)

	silhouette := image.NewNRGBA(padded.Sub(padded.Min))
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			a := img.RGBAAt(x, y).A
			if a == 0 {
				continue
			}
			silhouette.SetNRGBA(x-padded.Min.X, y-padded.Min.Y, color.NRGBA{A: uint8(float64(a)*opacity + 0.5)})
		}
	}
	var blurred image.Image = silhouette
	if radius > 0 {
		blurred = imaging.Blur(silhouette, float64(radius)/2)
	}

	dst := image.NewRGBA(composite.Sub(composite.Min))
	draw.Draw(dst, blurred.Bounds().Add(shadowBounds.Min.Sub(composite.Min)), blurred, image.Point{}, draw.Over)
	draw.Draw(dst, src.Sub(composite.Min), img, src.Min, draw.Over)
	return ShadowResult{Image: dst, Offset: shift}
}
