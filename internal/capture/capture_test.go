package capture

import (
	"context"
	"errors"
	"image"
	"testing"
)

func stubCapture(t *testing.T, portal func(context.Context, Options) (*image.RGBA, error), root func() (*image.RGBA, error)) {
	t.Helper()
	prevPortal, prevRoot := screenshotFn, rootScreenshotFn
	screenshotFn, rootScreenshotFn = portal, root
	t.Cleanup(func() { screenshotFn, rootScreenshotFn = prevPortal, prevRoot })
}

func TestScreenshotWrapsError(t *testing.T) {
	sentinel := errors.New("denied")
	stubCapture(t,
		func(context.Context, Options) (*image.RGBA, error) { return nil, sentinel },
		func() (*image.RGBA, error) { return nil, errors.New("no display") },
	)

	_, err := Screenshot(context.Background(), Options{})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped sentinel, got %v", err)
	}
}

func TestScreenshotFallsBackToX11(t *testing.T) {
	want := image.NewRGBA(image.Rect(0, 0, 4, 3))
	stubCapture(t,
		func(context.Context, Options) (*image.RGBA, error) { return nil, errors.New("no portal") },
		func() (*image.RGBA, error) { return want, nil },
	)

	got, err := Screenshot(context.Background(), Options{Interactive: true})
	if err != nil {
		t.Fatalf("screenshot: %v", err)
	}
	if got != want {
		t.Fatalf("expected the root window image")
	}
}

func TestScreenshotCancelledSkipsFallback(t *testing.T) {
	rootCalled := false
	stubCapture(t,
		func(context.Context, Options) (*image.RGBA, error) { return nil, ErrCancelled },
		func() (*image.RGBA, error) { rootCalled = true; return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil },
	)

	if _, err := Screenshot(context.Background(), Options{}); !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if rootCalled {
		t.Fatal("x11 capture should not run after the user cancelled")
	}
}

func TestScreenshotDoneContextSkipsFallback(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rootCalled := false
	stubCapture(t,
		func(ctx context.Context, _ Options) (*image.RGBA, error) { return nil, ctx.Err() },
		func() (*image.RGBA, error) { rootCalled = true; return nil, nil },
	)

	if _, err := Screenshot(ctx, Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if rootCalled {
		t.Fatal("x11 capture should not run after ctx is done")
	}
}
