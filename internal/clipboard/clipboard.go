// Package clipboard reads and writes images on the desktop clipboard.
package clipboard

import "image"

// System is the desktop clipboard. It satisfies the editor's clipboard
// interface.
type System struct{}

// ReadImage returns the image currently on the clipboard.
func (System) ReadImage() (image.Image, error) { return ReadImage() }

// WriteImage places img on the clipboard as PNG.
func (System) WriteImage(img image.Image) error { return WriteImage(img) }

// WriteText places text on the clipboard.
func (System) WriteText(text string) error { return WriteText(text) }
