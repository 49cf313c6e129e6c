// Package capture takes desktop screenshots so they can be loaded as a
// background image. The xdg-desktop-portal is tried first; plain X11
// sessions without a portal fall back to reading the root window.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
)

// Options configures a screenshot request.
type Options struct {
	// Interactive lets the user choose what to capture in the portal dialog.
	Interactive bool
}

// ErrCancelled is returned when the user dismissed the portal dialog.
var ErrCancelled = errors.New("screenshot cancelled")

var (
	screenshotFn     = portalScreenshot
	rootScreenshotFn = x11Screenshot
)

// Screenshot asks the desktop portal for a screenshot and waits for the
// result or for ctx to be done. When the portal is unavailable the whole X11
// screen is captured instead.
func Screenshot(ctx context.Context, opts Options) (*image.RGBA, error) {
	img, err := screenshotFn(ctx, opts)
	if err == nil {
		return img, nil
	}
	if errors.Is(err, ErrCancelled) || ctx.Err() != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}
	img, xerr := rootScreenshotFn()
	if xerr != nil {
		return nil, fmt.Errorf("capture screenshot: %w; x11 fallback: %v", err, xerr)
	}
	log.Printf("portal screenshot: %v; used x11 root window", err)
	return img, nil
}
