package ui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	xdraw "golang.org/x/image/draw"

	"golang.org/x/exp/shiny/screen"

	"github.com/example/pikshare/internal/palette"
	"github.com/example/pikshare/internal/render"
	"github.com/example/pikshare/internal/shape"
	"github.com/example/pikshare/internal/theme"
)

const messageSize = 24

// shortcut is a label in the bottom bar bound to a session action.
type shortcut struct {
	label  string
	action string
}

// paintState is everything drawFrame needs. It is captured on the event
// loop and handed to the paint goroutine.
type paintState struct {
	layout  layout
	theme   *theme.Theme
	title   string
	status  string
	surface *image.RGBA

	tool     shape.Kind
	color    color.RGBA
	fontSize float64

	// toolButtons are only drawn from the paint goroutine.
	toolButtons   []*CacheButton
	hoverTool     int
	hoverPalette  int
	hoverSize     int
	hoverShortcut int
	shortcuts     []shortcut

	caret     bool
	caretAt   image.Point
	caretSize int

	message      string
	messageUntil time.Time
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.layout.width, st.layout.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	composeFrame(ctx, b.RGBA(), st)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// composeFrame paints the whole window into dst. It stops early when ctx
// is cancelled by a newer frame.
func composeFrame(ctx context.Context, dst *image.RGBA, st paintState) {
	th := st.theme
	draw.Draw(dst, dst.Bounds(), &image.Uniform{th.Background}, image.Point{}, draw.Src)

	if st.surface != nil {
		rect := st.layout.imageRect(st.surface.Bounds().Size())
		if st.layout.zoom == 1 {
			draw.Draw(dst, rect, st.surface, image.Point{}, draw.Src)
		} else {
			xdraw.ApproxBiLinear.Scale(dst, rect, st.surface, st.surface.Bounds(), draw.Src, nil)
		}
	} else {
		c := st.layout.canvas()
		drawLabel(dst, c.Min.X+8, c.Min.Y+20, "No image loaded. Ctrl+V pastes, Ctrl+N captures the screen.", th.Foreground)
	}
	if ctx.Err() != nil {
		return
	}

	if st.caret {
		top := st.caretAt
		render.DrawLine(dst, top.X, top.Y, top.X, top.Y+st.caretSize, th.Caret, 1)
	}

	drawHeader(dst, st)
	drawToolbar(dst, st)
	drawShortcuts(dst, st)
	if ctx.Err() != nil {
		return
	}

	if st.message != "" && time.Now().Before(st.messageUntil) {
		drawMessage(dst, st)
	}
}

func drawHeader(dst *image.RGBA, st paintState) {
	th := st.theme
	draw.Draw(dst, image.Rect(0, 0, dst.Bounds().Dx(), headerHeight),
		&image.Uniform{th.StatusBackground}, image.Point{}, draw.Src)
	drawLabel(dst, 4, 16, st.title, th.Foreground)
	if st.status != "" {
		drawLabel(dst, st.layout.toolbar+4, 16, st.status, th.Foreground)
	}
}

func drawToolbar(dst *image.RGBA, st paintState) {
	th := st.theme
	l := st.layout
	draw.Draw(dst, image.Rect(0, headerHeight, l.toolbar, l.height-bottomHeight),
		&image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)

	for i, r := range l.toolRects() {
		if i >= len(st.toolButtons) {
			break
		}
		b := st.toolButtons[i]
		b.SetRect(r)
		state := StateDefault
		if tools[i].kind == st.tool {
			state = StatePressed
		} else if i == st.hoverTool {
			state = StateHover
		}
		b.Draw(dst, state)
	}

	entries := palette.Entries()
	for i, r := range l.paletteRects(len(entries)) {
		draw.Draw(dst, r, &image.Uniform{entries[i].Color}, image.Point{}, draw.Src)
		if i == st.hoverPalette {
			draw.Draw(dst, r, &image.Uniform{color.RGBA{255, 255, 255, 80}}, image.Point{}, draw.Over)
		}
		if entries[i].Color == st.color {
			render.DrawRect(dst, r.Inset(-1), th.ButtonBorder, 1)
			render.DrawRect(dst, r, color.White, 1)
		}
	}

	if st.tool != shape.Text {
		return
	}
	for i, r := range l.sizeRects(len(entries)) {
		b := &Label{Text: fmt.Sprintf("%gpt", fontSizes[i]), Theme: th}
		b.SetRect(r)
		state := StateDefault
		if fontSizes[i] == st.fontSize {
			state = StatePressed
		} else if i == st.hoverSize {
			state = StateHover
		}
		b.Draw(dst, state)
	}
}

func drawShortcuts(dst *image.RGBA, st paintState) {
	th := st.theme
	l := st.layout
	draw.Draw(dst, image.Rect(0, l.height-bottomHeight, l.width, l.height),
		&image.Uniform{th.StatusBackground}, image.Point{}, draw.Src)
	labels := make([]string, len(st.shortcuts))
	for i, sc := range st.shortcuts {
		labels[i] = sc.label
	}
	for i, r := range l.shortcutRects(labels) {
		b := &Label{Text: labels[i], Theme: th, Border: true}
		b.SetRect(r)
		state := StateDefault
		if i == st.hoverShortcut {
			state = StateHover
		}
		b.Draw(dst, state)
	}
}

func drawMessage(dst *image.RGBA, st paintState) {
	th := st.theme
	w, h, _, err := render.MeasureText(st.message, messageSize)
	if err != nil {
		log.Printf("measure message: %v", err)
		return
	}
	px := (st.layout.width - w) / 2
	py := (st.layout.height - h) / 2
	rect := image.Rect(px-8, py-8, px+w+8, py+h+8)
	draw.Draw(dst, rect, &image.Uniform{th.MessageBackground}, image.Point{}, draw.Over)
	render.DrawRect(dst, rect, th.ButtonBorder, 2)
	if err := render.DrawText(dst, px, py, st.message, th.Foreground, messageSize); err != nil {
		log.Printf("draw message: %v", err)
	}
}
