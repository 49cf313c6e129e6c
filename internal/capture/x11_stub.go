//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"errors"
	"image"
)

func x11Screenshot() (*image.RGBA, error) {
	return nil, errors.New("x11 capture is not supported on this platform")
}
