package editor

import (
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"path/filepath"

	"github.com/example/pikshare/internal/imageio"
	"github.com/example/pikshare/internal/render"
)

// Render paints the current state, including the pending shape and
// selection handles, onto dst.
func (s *Session) Render(dst *image.RGBA) {
	s.renderer.Render(dst, s.background, s.model.shapes, s.pending, s.model.Selected())
}

// Surface returns a freshly rendered surface, or nil when no image is
// loaded.
func (s *Session) Surface() *image.RGBA {
	if !s.Loaded() {
		return nil
	}
	dst := image.NewRGBA(image.Rectangle{Max: s.Size()})
	s.Render(dst)
	return dst
}

// Flatten renders the committed shapes without selection or pending
// state, adding the drop shadow when enabled.
func (s *Session) Flatten() (*image.RGBA, error) {
	if !s.Loaded() {
		return nil, ErrNoImage
	}
	dst := image.NewRGBA(image.Rectangle{Max: s.Size()})
	s.renderer.Render(dst, s.background, s.model.shapes, nil, -1)
	if s.shadow {
		dst = render.ApplyShadow(dst, render.DefaultShadowOptions()).Image
	}
	return dst, nil
}

// ExportPNG encodes the flattened surface.
func (s *Session) ExportPNG() ([]byte, error) {
	img, err := s.Flatten()
	if err != nil {
		return nil, err
	}
	return imageio.EncodePNG(img)
}

// ExportPDF writes the flattened surface as a single page PDF.
func (s *Session) ExportPDF(w io.Writer) error {
	img, err := s.Flatten()
	if err != nil {
		return err
	}
	return imageio.EncodePDF(w, img)
}

// SaveFile writes the flattened surface to path, choosing PNG or PDF by
// extension.
func (s *Session) SaveFile(path string) error {
	img, err := s.Flatten()
	if err != nil {
		return err
	}
	if err := imageio.WriteFile(path, img, imageio.FormatForPath(path)); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Save writes a PNG into dir named after the loaded file and returns its
// path.
func (s *Session) Save(dir string) (string, error) {
	path := filepath.Join(dir, imageio.SaveName(s.name))
	if err := s.SaveFile(path); err != nil {
		return "", err
	}
	return path, nil
}

// CopyToClipboard places the flattened surface on the clipboard.
func (s *Session) CopyToClipboard() error {
	if s.clipboard == nil {
		return ErrNoClipboard
	}
	img, err := s.Flatten()
	if err != nil {
		return err
	}
	if err := s.clipboard.WriteImage(img); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	return nil
}

// UploadResult is delivered to the UploadAsync callback.
type UploadResult struct {
	Name string
	URL  string
	Err  error
}

// UploadAsync encodes the surface on the calling goroutine and hands it
// to the uploader in the background. done runs on that background
// goroutine and must not touch the session. Encoding errors are returned
// directly and done is not called.
func (s *Session) UploadAsync(ctx context.Context, done func(UploadResult)) error {
	if s.uploader == nil {
		return ErrNoUploader
	}
	blob, err := s.ExportPNG()
	if err != nil {
		return err
	}
	name := imageio.UploadName(s.name, s.now())
	uploader := s.uploader
	id := s.id
	go func() {
		url, err := uploader.Upload(ctx, blob, name)
		if err != nil {
			log.Printf("session %s: upload %s: %v", id, name, err)
		}
		if done != nil {
			done(UploadResult{Name: name, URL: url, Err: err})
		}
	}()
	return nil
}
