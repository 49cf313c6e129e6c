package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// ErrEncode is returned when the surface cannot be serialized.
var ErrEncode = errors.New("image encode failed")

// Format selects an export encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// FormatForPath picks the format from a file extension, defaulting to PNG.
func FormatForPath(path string) Format {
	if filepath.Ext(path) == ".pdf" {
		return FormatPDF
	}
	return FormatPNG
}

// EncodePNG returns img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

// EncodePDF writes a single page PDF, sized in points to match the image
// pixels, with img placed at full bleed.
func EncodePDF(w io.Writer, img image.Image) error {
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}
	b := img.Bounds()
	width, height := float64(b.Dx()), float64(b.Dy())

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetCreator("pikshare", true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("surface", opts, bytes.NewReader(data))
	pdf.ImageOptions("surface", 0, 0, width, height, false, opts, 0, "")
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: pdf: %v", ErrEncode, err)
	}
	return nil
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPDF:
		return EncodePDF(w, img)
	case FormatPNG, "":
		data, err := EncodePNG(img)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("%w: unknown format %q", ErrEncode, format)
}

// WriteFile encodes img into path. The data is written to a temporary file
// in the same directory and renamed into place, so a failed export never
// leaves a partial file behind.
func WriteFile(path string, img image.Image, format Format) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".pikshare-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() {
		if err := os.Remove(tmpName); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("remove %s: %v", tmpName, err)
		}
	}
	if err := Encode(tmp, img, format); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
