// Package editor is the annotation engine: the shape model, its undo
// history and the pointer and keyboard state machine that edits it.
package editor

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"os"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/mobile/event/key"

	"github.com/example/pikshare/internal/history"
	"github.com/example/pikshare/internal/imageio"
	"github.com/example/pikshare/internal/palette"
	"github.com/example/pikshare/internal/render"
	"github.com/example/pikshare/internal/shape"
	"github.com/example/pikshare/internal/upload"
)

// State is the interaction state of a session.
type State int

const (
	Idle State = iota
	Drawing
	Dragging
	Resizing
	TextEntry
)

func (s State) String() string {
	switch s {
	case Drawing:
		return "drawing"
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	case TextEntry:
		return "text"
	}
	return "idle"
}

var (
	// ErrNoImage is returned by exports while no background is loaded.
	ErrNoImage = errors.New("no image loaded")
	// ErrNoUploader is returned by UploadAsync when no uploader is set.
	ErrNoUploader = errors.New("no uploader configured")
	// ErrNoClipboard is returned by clipboard operations when no clipboard
	// is set.
	ErrNoClipboard = errors.New("no clipboard configured")
)

// Decoder turns image bytes into a background bitmap that fits the
// surface.
type Decoder interface {
	Decode(r io.Reader) (*image.RGBA, string, error)
	Fit(img image.Image) *image.RGBA
}

// Clipboard reads and writes images on the system clipboard.
type Clipboard interface {
	ReadImage() (image.Image, error)
	WriteImage(img image.Image) error
}

// Option configures a Session.
type Option func(*Session)

// WithDecoder sets the image decoder.
func WithDecoder(d Decoder) Option { return func(s *Session) { s.decoder = d } }

// WithMaxImageSize bounds loaded images, scaling larger ones down.
func WithMaxImageSize(w, h int) Option {
	return func(s *Session) { s.decoder = imageio.NewDecoder(w, h) }
}

// WithClipboard sets the clipboard used by PasteImage and CopyToClipboard.
func WithClipboard(c Clipboard) Option { return func(s *Session) { s.clipboard = c } }

// WithUploader sets the collaborator used by UploadAsync.
func WithUploader(u upload.Uploader) Option { return func(s *Session) { s.uploader = u } }

// WithStyle sets the render style.
func WithStyle(st render.Style) Option {
	return func(s *Session) { s.renderer = render.New(st) }
}

// WithRenderer sets the renderer directly.
func WithRenderer(r *render.Renderer) Option { return func(s *Session) { s.renderer = r } }

// WithHistoryLimit bounds the number of undo steps.
func WithHistoryLimit(n int) Option { return func(s *Session) { s.historyLimit = n } }

// WithTool sets the initial drawing tool.
func WithTool(k shape.Kind) Option { return func(s *Session) { s.tool = k } }

// WithColor sets the initial drawing colour.
func WithColor(c color.RGBA) Option { return func(s *Session) { s.color = c } }

// WithFontSize sets the size of new text shapes.
func WithFontSize(size float64) Option { return func(s *Session) { s.fontSize = size } }

// WithShadow adds a drop shadow to exported images.
func WithShadow(on bool) Option { return func(s *Session) { s.shadow = on } }

// WithOnRedraw registers a callback invoked whenever the visible state
// changes.
func WithOnRedraw(fn func()) Option { return func(s *Session) { s.onRedraw = fn } }

// WithClock overrides the time source used for upload names.
func WithClock(now func() time.Time) Option { return func(s *Session) { s.now = now } }

// Session is one editing session over a single background image. All
// methods must be called from one goroutine, normally the window event
// loop.
type Session struct {
	id    string
	model *Model
	state State

	pending *shape.Shape
	handle  shape.Handle
	dragDX  float64
	dragDY  float64

	tool     shape.Kind
	color    color.RGBA
	fontSize float64
	shadow   bool

	background *image.RGBA
	name       string

	decoder      Decoder
	clipboard    Clipboard
	uploader     upload.Uploader
	renderer     *render.Renderer
	historyLimit int
	onRedraw     func()
	now          func() time.Time

	actions        map[string]func()
	keyboardAction map[KeyShortcut]string
	unsubscribe    []func()
}

// New creates a session with no image loaded.
func New(opts ...Option) *Session {
	s := &Session{
		id:             uuid.NewString(),
		tool:           shape.Rectangle,
		color:          palette.At(palette.DefaultIndex),
		fontSize:       shape.DefaultFontSize,
		historyLimit:   history.DefaultLimit,
		now:            time.Now,
		actions:        map[string]func(){},
		keyboardAction: map[KeyShortcut]string{},
	}
	for _, o := range opts {
		o(s)
	}
	if s.decoder == nil {
		s.decoder = imageio.NewDecoder(0, 0)
	}
	if s.renderer == nil {
		s.renderer = render.New(render.DefaultStyle())
	}
	if s.fontSize <= 0 {
		s.fontSize = shape.DefaultFontSize
	}
	s.model = NewModel(s.historyLimit)

	s.Register("undo", Shortcuts{
		{Rune: 'z', Modifiers: key.ModControl},
		{Code: key.CodeZ, Modifiers: key.ModControl},
	}, func() { s.Undo() })
	s.Register("redo", Shortcuts{
		{Rune: 'y', Modifiers: key.ModControl},
		{Code: key.CodeY, Modifiers: key.ModControl},
		{Rune: 'z', Modifiers: key.ModControl | key.ModShift},
		{Code: key.CodeZ, Modifiers: key.ModControl | key.ModShift},
	}, func() { s.Redo() })
	s.Register("delete", Shortcuts{
		{Code: key.CodeDeleteForward},
		{Code: key.CodeDeleteBackspace},
	}, func() { s.DeleteSelected() })
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// Model exposes the shape model.
func (s *Session) Model() *Model { return s.model }

// State returns the current interaction state.
func (s *Session) State() State { return s.state }

// Shapes returns a copy of the committed shapes.
func (s *Session) Shapes() []shape.Shape { return s.model.Shapes() }

// Selected returns the selected index or -1.
func (s *Session) Selected() int { return s.model.Selected() }

// Pending returns the shape being drawn or typed, if any.
func (s *Session) Pending() (shape.Shape, bool) {
	if s.pending == nil {
		return shape.Shape{}, false
	}
	return *s.pending, true
}

// Tool returns the active drawing tool.
func (s *Session) Tool() shape.Kind { return s.tool }

// SetTool changes the drawing tool. Leaving the text tool discards any
// text being typed.
func (s *Session) SetTool(k shape.Kind) {
	if s.state == TextEntry && k != shape.Text {
		s.CancelText()
	}
	s.tool = k
	s.redraw()
}

// Color returns the drawing colour.
func (s *Session) Color() color.RGBA { return s.color }

// SetColor changes the colour of new shapes.
func (s *Session) SetColor(c color.RGBA) {
	s.color = c
	if s.state == TextEntry && s.pending != nil {
		s.pending.Color = c
	}
	s.redraw()
}

// FontSize returns the size used for new text shapes.
func (s *Session) FontSize() float64 { return s.fontSize }

// SetFontSize changes the size of new text shapes. Non-positive sizes are
// ignored.
func (s *Session) SetFontSize(size float64) {
	if size <= 0 {
		return
	}
	s.fontSize = size
	if s.state == TextEntry && s.pending != nil {
		s.pending.FontSize = size
	}
	s.redraw()
}

// Renderer returns the renderer used for the surface and exports.
func (s *Session) Renderer() *render.Renderer { return s.renderer }

// SetOnRedraw replaces the redraw callback.
func (s *Session) SetOnRedraw(fn func()) { s.onRedraw = fn }

func (s *Session) redraw() {
	if s.onRedraw != nil {
		s.onRedraw()
	}
}

// Loaded reports whether a background image is present. Pointer input is
// ignored until it is.
func (s *Session) Loaded() bool { return s.background != nil }

// Name is the file name the current image was loaded from, if any.
func (s *Session) Name() string { return s.name }

// Background returns the loaded image or nil.
func (s *Session) Background() *image.RGBA { return s.background }

// Size returns the surface size, which matches the background.
func (s *Session) Size() image.Point {
	if s.background == nil {
		return image.Point{}
	}
	return s.background.Bounds().Size()
}

// LoadImage decodes r and installs it as the background. On failure the
// session is left as it was.
func (s *Session) LoadImage(r io.Reader, name string) error {
	img, _, err := s.decoder.Decode(r)
	if err != nil {
		return fmt.Errorf("load image: %w", err)
	}
	s.install(img, name)
	return nil
}

// LoadFile opens path and loads it with LoadImage.
func (s *Session) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load image: %w", err)
	}
	defer f.Close()
	return s.LoadImage(f, path)
}

// SetImage installs an already decoded image, scaling it to fit.
func (s *Session) SetImage(img image.Image, name string) {
	if img == nil {
		return
	}
	s.install(s.decoder.Fit(img), name)
}

// PasteImage replaces the background with the clipboard image.
func (s *Session) PasteImage() error {
	if s.clipboard == nil {
		return ErrNoClipboard
	}
	img, err := s.clipboard.ReadImage()
	if err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	if img == nil || img.Bounds().Empty() {
		return fmt.Errorf("paste: %w: clipboard image is empty", imageio.ErrDecode)
	}
	s.SetImage(img, "")
	return nil
}

func (s *Session) install(img *image.RGBA, name string) {
	s.abortGesture()
	s.background = img
	s.name = name
	s.redraw()
}

// DeleteImage removes the background and resets the shapes and history.
func (s *Session) DeleteImage() bool {
	if s.background == nil {
		return false
	}
	s.abortGesture()
	s.background = nil
	s.name = ""
	s.model.Reset()
	s.redraw()
	return true
}

// PointerDown starts a gesture at surface coordinates (x, y). It reports
// whether the event was accepted.
func (s *Session) PointerDown(x, y float64) bool {
	if !s.Loaded() {
		return false
	}
	switch s.state {
	case TextEntry:
		s.pending.X, s.pending.Y = x, y
		s.redraw()
		return true
	case Idle:
	default:
		return false
	}

	if s.tool == shape.Text {
		s.pending = &shape.Shape{Kind: shape.Text, X: x, Y: y, Color: s.color, FontSize: s.fontSize}
		s.state = TextEntry
		s.redraw()
		return true
	}

	if sel, ok := s.model.At(s.model.Selected()); ok && sel.Kind.Resizable() {
		if h := shape.HandleAt(sel, x, y, shape.HandleTolerance); h != shape.HandleNone {
			s.model.Snapshot()
			s.state = Resizing
			s.handle = h
			s.redraw()
			return true
		}
	}

	if i := shape.TopmostAt(s.model.shapes, x, y); i >= 0 {
		hit, _ := s.model.At(i)
		s.model.Select(i)
		s.model.Snapshot()
		s.state = Dragging
		s.dragDX, s.dragDY = x-hit.X, y-hit.Y
		s.redraw()
		return true
	}

	s.model.Select(-1)
	s.pending = &shape.Shape{Kind: s.tool, X: x, Y: y, Color: s.color}
	s.state = Drawing
	s.redraw()
	return true
}

// PointerMove updates the active gesture. It reports whether anything
// changed.
func (s *Session) PointerMove(x, y float64) bool {
	switch s.state {
	case Resizing:
		i := s.model.Selected()
		sel, ok := s.model.At(i)
		if !ok {
			return false
		}
		s.model.replace(i, shape.Resize(sel, s.handle, x, y))
	case Dragging:
		i := s.model.Selected()
		sel, ok := s.model.At(i)
		if !ok {
			return false
		}
		sel.X, sel.Y = x-s.dragDX, y-s.dragDY
		s.model.replace(i, sel)
	case Drawing:
		s.pending.W = x - s.pending.X
		s.pending.H = y - s.pending.Y
	default:
		return false
	}
	s.redraw()
	return true
}

// PointerUp finishes the active gesture at (x, y). Gestures finish even
// when the pointer has left the surface.
func (s *Session) PointerUp(x, y float64) bool {
	switch s.state {
	case Resizing, Dragging:
		s.PointerMove(x, y)
		s.finishTransform()
	case Drawing:
		s.PointerMove(x, y)
		p := *s.pending
		s.pending = nil
		s.state = Idle
		if p.ValidSize() {
			s.model.Snapshot()
			s.model.Commit(p)
		}
	default:
		return false
	}
	s.redraw()
	return true
}

// finishTransform ends a drag or resize, normalizing resized boxes.
func (s *Session) finishTransform() {
	if s.state == Resizing {
		i := s.model.Selected()
		if sel, ok := s.model.At(i); ok {
			s.model.replace(i, sel.Normalize())
		}
	}
	s.handle = shape.HandleNone
	s.state = Idle
}

// abortGesture drops any in-flight pointer or text gesture.
func (s *Session) abortGesture() {
	switch s.state {
	case Resizing, Dragging:
		s.finishTransform()
	case Drawing, TextEntry:
		s.pending = nil
		s.state = Idle
	}
}

// TextLabel returns the text typed so far.
func (s *Session) TextLabel() string {
	if s.state != TextEntry || s.pending == nil {
		return ""
	}
	return s.pending.Label
}

// TypeRune appends r to the pending text.
func (s *Session) TypeRune(r rune) bool {
	if s.state != TextEntry || !unicode.IsPrint(r) {
		return false
	}
	s.pending.Label += string(r)
	s.redraw()
	return true
}

// TypeText appends every printable rune of text.
func (s *Session) TypeText(text string) {
	for _, r := range text {
		s.TypeRune(r)
	}
}

// Backspace removes the last rune of the pending text.
func (s *Session) Backspace() bool {
	if s.state != TextEntry || s.pending.Label == "" {
		return false
	}
	_, n := utf8.DecodeLastRuneInString(s.pending.Label)
	s.pending.Label = s.pending.Label[:len(s.pending.Label)-n]
	s.redraw()
	return true
}

// CommitText ends text entry with label. A blank label is discarded
// without touching the history.
func (s *Session) CommitText(label string) bool {
	if s.state != TextEntry {
		return false
	}
	p := *s.pending
	s.pending = nil
	s.state = Idle
	defer s.redraw()
	if strings.TrimSpace(label) == "" {
		return false
	}
	p.Label = label
	w, h, _, err := render.MeasureText(label, p.Size())
	if err != nil {
		log.Printf("session %s: measure text: %v", s.id, err)
		w, h = int(float64(utf8.RuneCountInString(label))*p.Size()/2), int(p.Size())
	}
	p.W, p.H = float64(w), float64(h)
	s.model.Snapshot()
	return s.model.Commit(p)
}

// CancelText discards the pending text.
func (s *Session) CancelText() bool {
	if s.state != TextEntry {
		return false
	}
	s.pending = nil
	s.state = Idle
	s.redraw()
	return true
}

// AddShape commits a complete shape as one undo step.
func (s *Session) AddShape(sh shape.Shape) bool {
	if !s.Loaded() || !sh.ValidSize() {
		return false
	}
	s.abortGesture()
	s.model.Snapshot()
	ok := s.model.Commit(sh)
	s.redraw()
	return ok
}

// Undo aborts any gesture and restores the previous snapshot.
func (s *Session) Undo() bool {
	s.abortGesture()
	ok := s.model.Undo()
	s.redraw()
	return ok
}

// Redo aborts any gesture and re-applies the last undone step.
func (s *Session) Redo() bool {
	s.abortGesture()
	ok := s.model.Redo()
	s.redraw()
	return ok
}

// Clear aborts any gesture and removes every shape.
func (s *Session) Clear() bool {
	s.abortGesture()
	ok := s.model.Clear()
	s.redraw()
	return ok
}

// DeleteSelected removes the selected shape.
func (s *Session) DeleteSelected() bool {
	if s.state == TextEntry {
		return false
	}
	s.abortGesture()
	if !s.model.DeleteSelected() {
		return false
	}
	s.redraw()
	return true
}

// Register binds an action name to fn and to the given shortcuts.
// Registering an existing name replaces it.
func (s *Session) Register(name string, keys KeyboardShortcuts, fn func()) {
	s.actions[name] = fn
	if keys != nil {
		for _, sc := range keys.KeyboardShortcuts() {
			s.keyboardAction[sc] = name
		}
	}
}

// Trigger runs the named action.
func (s *Session) Trigger(name string) bool {
	fn, ok := s.actions[name]
	if !ok || fn == nil {
		return false
	}
	fn()
	return true
}

// ActionFor returns the action bound to e, if any.
func (s *Session) ActionFor(e key.Event) (string, bool) {
	for _, k := range lookupKeys(e) {
		if name, ok := s.keyboardAction[k]; ok {
			return name, true
		}
	}
	return "", false
}

// HandleKey applies a key press. While text is being typed every key goes
// to the text; otherwise registered shortcuts run.
func (s *Session) HandleKey(e key.Event) bool {
	if e.Direction == key.DirRelease {
		return false
	}
	if s.state == TextEntry {
		switch e.Code {
		case key.CodeReturnEnter, key.CodeKeypadEnter:
			s.CommitText(s.pending.Label)
			return true
		case key.CodeEscape:
			s.CancelText()
			return true
		case key.CodeDeleteBackspace:
			s.Backspace()
			return true
		}
		if e.Modifiers&(key.ModControl|key.ModAlt|key.ModMeta) == 0 && e.Rune > 0 {
			s.TypeRune(e.Rune)
		}
		return true
	}
	name, ok := s.ActionFor(e)
	if !ok {
		return false
	}
	return s.Trigger(name)
}

// Attach subscribes the session to d until Close.
func (s *Session) Attach(d *KeyDispatcher) {
	s.unsubscribe = append(s.unsubscribe, d.Subscribe(s.HandleKey))
}

// Close releases key subscriptions and drops any in-flight gesture.
func (s *Session) Close() {
	for _, fn := range s.unsubscribe {
		fn()
	}
	s.unsubscribe = nil
	s.abortGesture()
}
