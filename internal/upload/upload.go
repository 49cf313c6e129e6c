// Package upload publishes exported images to cloud storage and returns a
// public link.
package upload

import (
	"context"
	"errors"
)

var (
	// ErrUpload wraps every failure to store or share an image.
	ErrUpload = errors.New("upload failed")
	// ErrAuth is returned when no access token can be obtained.
	ErrAuth = errors.New("authentication failed")
)

// Uploader stores blob under name and returns a publicly viewable URL.
type Uploader interface {
	Upload(ctx context.Context, blob []byte, name string) (string, error)
}

// Func adapts a function to the Uploader interface.
type Func func(ctx context.Context, blob []byte, name string) (string, error)

// Upload calls f.
func (f Func) Upload(ctx context.Context, blob []byte, name string) (string, error) {
	return f(ctx, blob, name)
}
