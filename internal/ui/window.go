// Package ui hosts an editor session in a shiny window.
package ui

import (
	"context"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/pikshare/internal/capture"
	"github.com/example/pikshare/internal/editor"
	"github.com/example/pikshare/internal/imageio"
	"github.com/example/pikshare/internal/notify"
	"github.com/example/pikshare/internal/palette"
	"github.com/example/pikshare/internal/render"
	"github.com/example/pikshare/internal/shape"
	"github.com/example/pikshare/internal/theme"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

const messageDuration = 2 * time.Second

// LinkWriter receives the public link of a finished upload.
type LinkWriter interface {
	WriteText(text string) error
}

// loadedEvent carries an image decoded or captured off the event loop.
type loadedEvent struct {
	img    *image.RGBA
	name   string
	source string
	err    error
}

type uploadedEvent struct {
	editor.UploadResult
}

// Window is a single editor session shown in a desktop window.
type Window struct {
	session  *editor.Session
	theme    *theme.Theme
	notifier *notify.Notifier
	decoder  *imageio.Decoder
	links    LinkWriter
	saveDir  string
	title    string

	startupFile    string
	startupCapture *capture.Options
	startupPaste   bool
}

// Option configures a Window.
type Option func(*Window)

func WithTheme(t *theme.Theme) Option { return func(w *Window) { w.theme = t } }

func WithNotifier(n *notify.Notifier) Option { return func(w *Window) { w.notifier = n } }

// WithSaveDir sets the directory Ctrl+S writes into. Empty means the
// working directory.
func WithSaveDir(dir string) Option { return func(w *Window) { w.saveDir = dir } }

func WithTitle(title string) Option { return func(w *Window) { w.title = title } }

func WithDecoder(d *imageio.Decoder) Option { return func(w *Window) { w.decoder = d } }

// WithStartupFile loads path once the window is open.
func WithStartupFile(path string) Option { return func(w *Window) { w.startupFile = path } }

// WithStartupCapture requests a screenshot once the window is open.
func WithStartupCapture(interactive bool) Option {
	return func(w *Window) { w.startupCapture = &capture.Options{Interactive: interactive} }
}

// WithStartupPaste loads the clipboard image once the window is open.
func WithStartupPaste() Option { return func(w *Window) { w.startupPaste = true } }

// WithLinkClipboard copies upload links to lw.
func WithLinkClipboard(lw LinkWriter) Option { return func(w *Window) { w.links = lw } }

// New wraps session in a window. Nothing is shown until Run.
func New(session *editor.Session, opts ...Option) *Window {
	w := &Window{
		session: session,
		theme:   theme.Default(),
		decoder: imageio.NewDecoder(0, 0),
		title:   "pikshare",
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run executes the UI loop using shiny's driver.
func (w *Window) Run() { driver.Main(w.Main) }

// Main runs the window on s until it is closed.
func (w *Window) Main(s screen.Screen) {
	sess := w.session
	toolbar := toolbarWidthFor(w.title)

	width, height := 1024, 768
	if sess.Loaded() {
		sz := sess.Size()
		width = sz.X + toolbar
		height = sz.Y + headerHeight + bottomHeight
	}
	win, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: w.title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer win.Release()

	ctx, cancelAll := context.WithCancel(context.Background())
	defer cancelAll()

	l := layout{width: width, height: height, toolbar: toolbar, zoom: 1}
	l.zoom = l.fitZoom(sess.Size())

	var message string
	var messageUntil time.Time
	var confirmDelete bool
	var closing bool
	hoverTool, hoverPalette, hoverSize, hoverShortcut := -1, -1, -1, -1

	setMessage := func(msg string) {
		message = msg
		log.Print(msg)
		messageUntil = time.Now().Add(messageDuration)
	}

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	go func() {
		for st := range paintCh {
			pctx, cancel := context.WithCancel(ctx)
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(pctx, s, win, st)
			paintMu.Lock()
			paintCancel = nil
			if pctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	defer close(paintCh)

	sess.SetOnRedraw(func() { win.Send(paint.Event{}) })
	defer sess.SetOnRedraw(nil)

	toolButtons := make([]*CacheButton, len(tools))
	for i, t := range tools {
		k := t.kind
		toolButtons[i] = &CacheButton{Button: &Label{Text: t.label, Theme: w.theme, OnSelect: func() {
			sess.SetTool(k)
		}}}
	}

	loadAsync := func(source string, fn func() (*image.RGBA, string, error)) {
		go func() {
			img, name, err := fn()
			win.Send(loadedEvent{img: img, name: name, source: source, err: err})
		}()
	}
	loadFile := func(path string) {
		loadAsync(path, func() (*image.RGBA, string, error) {
			img, err := w.decoder.DecodeFile(path)
			return img, path, err
		})
	}
	captureScreen := func(opts capture.Options) {
		setMessage("capturing screen")
		loadAsync("screenshot", func() (*image.RGBA, string, error) {
			img, err := capture.Screenshot(ctx, opts)
			return img, "screenshot.png", err
		})
	}

	sess.Register("save", editor.Shortcuts{{Rune: 's', Modifiers: key.ModControl}}, func() {
		path, err := sess.Save(w.saveDirFor())
		if err != nil {
			log.Printf("save: %v", err)
			setMessage(fmt.Sprintf("save failed: %v", err))
			return
		}
		setMessage(fmt.Sprintf("saved %s", path))
		w.notifier.Save(path)
	})
	sess.Register("copy", editor.Shortcuts{{Rune: 'c', Modifiers: key.ModControl}}, func() {
		if err := sess.CopyToClipboard(); err != nil {
			log.Printf("copy: %v", err)
			return
		}
		setMessage("image copied to clipboard")
		w.notifier.Copy("image")
	})
	sess.Register("paste", editor.Shortcuts{{Rune: 'v', Modifiers: key.ModControl}}, func() {
		if err := sess.PasteImage(); err != nil {
			log.Printf("paste: %v", err)
			return
		}
		l.zoom = l.fitZoom(sess.Size())
		setMessage("pasted image")
	})
	sess.Register("capture", editor.Shortcuts{{Rune: 'n', Modifiers: key.ModControl}}, func() {
		captureScreen(capture.Options{})
	})
	sess.Register("upload", editor.Shortcuts{{Rune: 'u', Modifiers: key.ModControl}}, func() {
		err := sess.UploadAsync(ctx, func(res editor.UploadResult) {
			win.Send(uploadedEvent{res})
		})
		if err != nil {
			log.Printf("upload: %v", err)
			setMessage(fmt.Sprintf("upload failed: %v", err))
			return
		}
		setMessage("uploading")
	})
	sess.Register("clear", editor.Shortcuts{{Rune: 'l', Modifiers: key.ModControl}}, func() {
		if sess.Clear() {
			setMessage("cleared annotations")
		}
	})
	sess.Register("delete-image", editor.Shortcuts{{Rune: 'd', Modifiers: key.ModControl}}, func() {
		if !sess.Loaded() {
			return
		}
		if !confirmDelete {
			confirmDelete = true
			setMessage("press Ctrl+D again to delete the image")
			return
		}
		confirmDelete = false
		sess.DeleteImage()
		setMessage("image deleted")
	})
	sess.Register("zoom-in", editor.Shortcuts{{Rune: '+'}, {Rune: '='}}, func() {
		l.zoom = clampZoom(l.zoom * 1.25)
	})
	sess.Register("zoom-out", editor.Shortcuts{{Rune: '-'}}, func() {
		l.zoom = clampZoom(l.zoom / 1.25)
	})
	sess.Register("zoom-fit", editor.Shortcuts{{Rune: '0'}}, func() {
		l.zoom = l.fitZoom(sess.Size())
	})
	for _, t := range tools {
		k := t.kind
		sess.Register("tool-"+k.String(), editor.Shortcuts{{Rune: t.key}}, func() { sess.SetTool(k) })
	}
	sess.Register("quit", editor.Shortcuts{{Rune: 'q'}, {Rune: 'q', Modifiers: key.ModControl}}, func() {
		closing = true
	})

	shortcuts := []shortcut{
		{"^S Save", "save"},
		{"^C Copy", "copy"},
		{"^V Paste", "paste"},
		{"^N Capture", "capture"},
		{"^U Upload", "upload"},
		{"^Z Undo", "undo"},
		{"^Y Redo", "redo"},
		{"^L Clear", "clear"},
		{"Q Quit", "quit"},
	}
	shortcutLabels := make([]string, len(shortcuts))
	for i, sc := range shortcuts {
		shortcutLabels[i] = sc.label
	}

	keys := &editor.KeyDispatcher{}
	sess.Attach(keys)
	defer sess.Close()

	switch {
	case w.startupFile != "":
		loadFile(w.startupFile)
	case w.startupCapture != nil:
		captureScreen(*w.startupCapture)
	case w.startupPaste:
		sess.Trigger("paste")
	}

	for !closing {
		e := win.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			fit := l.zoom == l.fitZoom(sess.Size())
			l.width, l.height = e.WidthPx, e.HeightPx
			if fit {
				l.zoom = l.fitZoom(sess.Size())
			}
			win.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := paintState{
				layout:        l,
				theme:         w.theme,
				title:         w.title,
				status:        statusText(sess),
				surface:       sess.Surface(),
				tool:          sess.Tool(),
				color:         sess.Color(),
				fontSize:      sess.FontSize(),
				toolButtons:   toolButtons,
				hoverTool:     hoverTool,
				hoverPalette:  hoverPalette,
				hoverSize:     hoverSize,
				hoverShortcut: hoverShortcut,
				shortcuts:     shortcuts,
				message:       message,
				messageUntil:  messageUntil,
			}
			st.caret, st.caretAt, st.caretSize = caretFor(sess, l)
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case loadedEvent:
			if e.err != nil {
				log.Printf("load %s: %v", e.source, e.err)
				setMessage(fmt.Sprintf("could not load %s", filepath.Base(e.source)))
				win.Send(paint.Event{})
				continue
			}
			sess.SetImage(e.img, e.name)
			l.zoom = l.fitZoom(sess.Size())
			setMessage(fmt.Sprintf("loaded %s", filepath.Base(e.name)))
		case uploadedEvent:
			if e.Err != nil {
				setMessage(fmt.Sprintf("upload failed: %v", e.Err))
				w.notifier.UploadFailed(e.Err)
				win.Send(paint.Event{})
				continue
			}
			msg := fmt.Sprintf("uploaded %s", e.URL)
			if w.links != nil {
				if err := w.links.WriteText(e.URL); err != nil {
					log.Printf("copy link: %v", err)
				} else {
					msg = fmt.Sprintf("link copied: %s", e.URL)
				}
			}
			setMessage(msg)
			w.notifier.Upload(e.URL)
			win.Send(paint.Event{})
		case key.Event:
			if e.Direction == key.DirRelease {
				continue
			}
			if name, ok := sess.ActionFor(e); !ok || name != "delete-image" || sess.State() == editor.TextEntry {
				confirmDelete = false
			}
			keys.Dispatch(e)
			win.Send(paint.Event{})
		case mouse.Event:
			p := image.Point{int(e.X), int(e.Y)}
			if message != "" && time.Now().Before(messageUntil) && e.Direction == mouse.DirPress {
				messageUntil = time.Time{}
				win.Send(paint.Event{})
				continue
			}
			if e.Button == mouse.ButtonWheelUp || e.Button == mouse.ButtonWheelDown {
				if e.Modifiers&key.ModControl != 0 {
					if e.Button == mouse.ButtonWheelUp {
						l.zoom = clampZoom(l.zoom * 1.1)
					} else {
						l.zoom = clampZoom(l.zoom / 1.1)
					}
					win.Send(paint.Event{})
				}
				continue
			}

			if gestureActive(sess.State()) {
				w.routeCanvas(l, e)
				continue
			}

			prevHover := [4]int{hoverTool, hoverPalette, hoverSize, hoverShortcut}
			hoverTool, hoverPalette, hoverSize, hoverShortcut = -1, -1, -1, -1
			press := e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress
			switch {
			case l.inShortcuts(p):
				hoverShortcut = hit(l.shortcutRects(shortcutLabels), p)
				if press && hoverShortcut >= 0 {
					sess.Trigger(shortcuts[hoverShortcut].action)
				}
			case l.inToolbar(p):
				entries := palette.Entries()
				hoverTool = hit(l.toolRects(), p)
				hoverPalette = hit(l.paletteRects(len(entries)), p)
				if sess.Tool() == shape.Text {
					hoverSize = hit(l.sizeRects(len(entries)), p)
				}
				if press {
					switch {
					case hoverTool >= 0:
						toolButtons[hoverTool].Activate()
					case hoverPalette >= 0:
						sess.SetColor(entries[hoverPalette].Color)
					case hoverSize >= 0:
						sess.SetFontSize(fontSizes[hoverSize])
					}
				}
			case l.inHeader(p):
			default:
				w.routeCanvas(l, e)
			}
			if press || prevHover != [4]int{hoverTool, hoverPalette, hoverSize, hoverShortcut} {
				win.Send(paint.Event{})
			}
		}
	}
}

// routeCanvas forwards a mouse event to the session in surface
// coordinates.
func (w *Window) routeCanvas(l layout, e mouse.Event) {
	x, y := l.toSurface(e.X, e.Y)
	switch {
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		w.session.PointerDown(x, y)
	case e.Direction == mouse.DirRelease && e.Button == mouse.ButtonLeft:
		w.session.PointerUp(x, y)
	case e.Direction == mouse.DirNone:
		w.session.PointerMove(x, y)
	}
}

func (w *Window) saveDirFor() string {
	if w.saveDir != "" {
		return w.saveDir
	}
	return "."
}

func gestureActive(s editor.State) bool {
	return s == editor.Drawing || s == editor.Dragging || s == editor.Resizing
}

func statusText(sess *editor.Session) string {
	if !sess.Loaded() {
		return ""
	}
	undo, redo := sess.Model().History()
	undoText := fmt.Sprint(undo)
	if limit := sess.Model().HistoryLimit(); limit > 0 {
		undoText = fmt.Sprintf("%d/%d", undo, limit)
	}
	sz := sess.Size()
	return fmt.Sprintf("%dx%d  %s  shapes:%d  undo:%s redo:%d",
		sz.X, sz.Y, sess.State(), sess.Model().Len(), undoText, redo)
}

// caretFor returns where the text caret is drawn in window coordinates.
func caretFor(sess *editor.Session, l layout) (bool, image.Point, int) {
	if sess.State() != editor.TextEntry {
		return false, image.Point{}, 0
	}
	p, ok := sess.Pending()
	if !ok {
		return false, image.Point{}, 0
	}
	tw := 0
	if p.Label != "" {
		w, _, _, err := render.MeasureText(p.Label, p.FontSize)
		if err != nil {
			log.Printf("measure caret: %v", err)
		} else {
			tw = w
		}
	}
	at := l.toWindow(p.X+float64(tw), p.Y)
	return true, at, int(p.FontSize * l.zoom)
}
