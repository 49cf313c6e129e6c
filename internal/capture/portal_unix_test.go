//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestPortalScreenshotOptions(t *testing.T) {
	prevToken := portalHandleToken
	portalHandleToken = func() string { return "test-token" }
	t.Cleanup(func() { portalHandleToken = prevToken })

	for _, interactive := range []bool{false, true} {
		values := portalScreenshotOptions(Options{Interactive: interactive})
		if got := values["interactive"].Value(); got != interactive {
			t.Fatalf("interactive = %v, want %v", got, interactive)
		}
		if got := values["modal"].Value(); got != interactive {
			t.Fatalf("modal = %v, want %v", got, interactive)
		}
		if got := values["handle_token"].Value(); got != "test-token" {
			t.Fatalf("handle_token = %v", got)
		}
	}
}

func TestResponsePath(t *testing.T) {
	ok := []interface{}{uint32(0), map[string]dbus.Variant{"uri": dbus.MakeVariant("file:///tmp/Screenshot%20from%20now.png")}}
	path, err := responsePath(ok)
	if err != nil {
		t.Fatalf("response path: %v", err)
	}
	if path != "/tmp/Screenshot from now.png" {
		t.Fatalf("path = %q", path)
	}

	cancelled := []interface{}{uint32(1), map[string]dbus.Variant{}}
	if _, err := responsePath(cancelled); !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	missing := []interface{}{uint32(0), map[string]dbus.Variant{}}
	if _, err := responsePath(missing); err == nil {
		t.Fatal("expected missing uri error")
	}
}

func TestLoadPNGRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 3, 2))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := loadPNG(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected portal file to be removed, stat err = %v", err)
	}
}
