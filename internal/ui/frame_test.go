package ui

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"testing"
	"time"

	"github.com/example/pikshare/internal/shape"
	"github.com/example/pikshare/internal/theme"
)

func testTheme() *theme.Theme {
	th := theme.Default()
	th.Background = color.RGBA{10, 10, 10, 255}
	th.StatusBackground = color.RGBA{20, 20, 20, 255}
	th.ToolbarBackground = color.RGBA{30, 30, 30, 255}
	th.ButtonBackgroundPress = color.RGBA{40, 40, 40, 255}
	th.Caret = color.RGBA{250, 0, 250, 255}
	return th
}

func testPaintState() paintState {
	th := testTheme()
	buttons := make([]*CacheButton, len(tools))
	for i, tl := range tools {
		buttons[i] = &CacheButton{Button: &Label{Text: tl.label, Theme: th}}
	}
	return paintState{
		layout:        layout{width: 400, height: 300, toolbar: 80, zoom: 1},
		theme:         th,
		title:         "pikshare",
		tool:          shape.Rectangle,
		fontSize:      16,
		toolButtons:   buttons,
		hoverTool:     -1,
		hoverPalette:  -1,
		hoverSize:     -1,
		hoverShortcut: -1,
	}
}

func TestComposeFrameDrawsSurface(t *testing.T) {
	st := testPaintState()
	surface := image.NewRGBA(image.Rect(0, 0, 50, 40))
	green := color.RGBA{0, 200, 0, 255}
	draw.Draw(surface, surface.Bounds(), &image.Uniform{green}, image.Point{}, draw.Src)
	st.surface = surface

	dst := image.NewRGBA(image.Rect(0, 0, 400, 300))
	composeFrame(context.Background(), dst, st)

	c := st.layout.canvas()
	if got := dst.RGBAAt(c.Min.X+5, c.Min.Y+5); got != green {
		t.Fatalf("surface pixel = %v", got)
	}
	if got := dst.RGBAAt(c.Min.X+60, c.Min.Y+5); got != st.theme.Background {
		t.Fatalf("outside surface = %v", got)
	}
	if got := dst.RGBAAt(200, 1); got != st.theme.StatusBackground {
		t.Fatalf("header = %v", got)
	}
}

func TestComposeFrameScalesSurface(t *testing.T) {
	st := testPaintState()
	st.layout.zoom = 2
	surface := image.NewRGBA(image.Rect(0, 0, 10, 10))
	red := color.RGBA{200, 0, 0, 255}
	draw.Draw(surface, surface.Bounds(), &image.Uniform{red}, image.Point{}, draw.Src)
	st.surface = surface

	dst := image.NewRGBA(image.Rect(0, 0, 400, 300))
	composeFrame(context.Background(), dst, st)
	c := st.layout.canvas()
	if got := dst.RGBAAt(c.Min.X+15, c.Min.Y+15); got != red {
		t.Fatalf("scaled pixel = %v", got)
	}
	if got := dst.RGBAAt(c.Min.X+25, c.Min.Y+5); got != st.theme.Background {
		t.Fatalf("past scaled surface = %v", got)
	}
}

func TestComposeFrameMarksActiveTool(t *testing.T) {
	st := testPaintState()
	st.tool = shape.Circle
	dst := image.NewRGBA(image.Rect(0, 0, 400, 300))
	composeFrame(context.Background(), dst, st)

	rects := st.layout.toolRects()
	if got := dst.RGBAAt(rects[1].Min.X+1, rects[1].Min.Y+1); got != st.theme.ButtonBackgroundPress {
		t.Fatalf("active tool = %v", got)
	}
	if got := dst.RGBAAt(rects[0].Min.X+1, rects[0].Min.Y+1); got != st.theme.ButtonBackground {
		t.Fatalf("inactive tool = %v", got)
	}
}

func TestComposeFrameCaret(t *testing.T) {
	st := testPaintState()
	st.surface = image.NewRGBA(image.Rect(0, 0, 100, 100))
	st.caret = true
	st.caretAt = image.Pt(150, 60)
	st.caretSize = 16
	dst := image.NewRGBA(image.Rect(0, 0, 400, 300))
	composeFrame(context.Background(), dst, st)
	if got := dst.RGBAAt(150, 68); got != st.theme.Caret {
		t.Fatalf("caret pixel = %v", got)
	}
}

func TestComposeFrameStopsWhenCancelled(t *testing.T) {
	st := testPaintState()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dst := image.NewRGBA(image.Rect(0, 0, 400, 300))
	composeFrame(ctx, dst, st)
	if got := dst.RGBAAt(200, 1); got != st.theme.Background {
		t.Fatalf("header drawn after cancel: %v", got)
	}
}

func TestComposeFrameExpiredMessage(t *testing.T) {
	st := testPaintState()
	st.message = "saved"
	st.messageUntil = time.Now().Add(-time.Second)
	dst := image.NewRGBA(image.Rect(0, 0, 400, 300))
	composeFrame(context.Background(), dst, st)
	if got := dst.RGBAAt(200, 150); got != st.theme.Background {
		t.Fatalf("expired message drawn: %v", got)
	}
}
