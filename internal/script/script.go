// Package script replays recorded editing sessions described in YAML so
// annotations can be produced without a window.
//
//	image: screenshot.png
//	tool: rectangle
//	color: red
//	steps:
//	  - drag: {from: [10, 10], to: [120, 80]}
//	  - tool: text
//	  - down: [20, 100]
//	  - text: "look here"
//	  - key: enter
//	  - action: undo
package script

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/pikshare/internal/editor"
	"github.com/example/pikshare/internal/palette"
	"github.com/example/pikshare/internal/shape"
)

// ErrScript wraps every parse or replay failure.
var ErrScript = errors.New("script error")

// Point is an [x, y] pair in surface pixels.
type Point [2]float64

// Drag is a press, one intermediate move and a release.
type Drag struct {
	From Point `yaml:"from"`
	To   Point `yaml:"to"`
}

// Step is one replayed event. Exactly one field must be set.
type Step struct {
	Down     *Point   `yaml:"down,omitempty"`
	Move     *Point   `yaml:"move,omitempty"`
	Up       *Point   `yaml:"up,omitempty"`
	Drag     *Drag    `yaml:"drag,omitempty"`
	Text     *string  `yaml:"text,omitempty"`
	Key      string   `yaml:"key,omitempty"`
	Tool     string   `yaml:"tool,omitempty"`
	Color    string   `yaml:"color,omitempty"`
	FontSize *float64 `yaml:"font_size,omitempty"`
	Action   string   `yaml:"action,omitempty"`
}

// Script is a replayable editing session.
type Script struct {
	// Image is loaded before the steps run. Relative paths are resolved
	// against the script's directory.
	Image    string  `yaml:"image,omitempty"`
	Output   string  `yaml:"output,omitempty"`
	Tool     string  `yaml:"tool,omitempty"`
	Color    string  `yaml:"color,omitempty"`
	FontSize float64 `yaml:"font_size,omitempty"`
	Steps    []Step  `yaml:"steps"`

	dir string
}

// Parse reads a script. Unknown keys are rejected.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var sc Script
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty script", ErrScript)
		}
		return nil, fmt.Errorf("%w: %v", ErrScript, err)
	}
	for i, st := range sc.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("%w: step %d: %v", ErrScript, i+1, err)
		}
	}
	return &sc, nil
}

// Load parses the script at path.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sc.dir = filepath.Dir(path)
	return sc, nil
}

// ImagePath returns Image resolved against the script's directory.
func (sc *Script) ImagePath() string {
	if sc.Image == "" || filepath.IsAbs(sc.Image) || sc.dir == "" {
		return sc.Image
	}
	return filepath.Join(sc.dir, sc.Image)
}

// Marshal encodes the script back to YAML.
func (sc *Script) Marshal() ([]byte, error) {
	return yaml.Marshal(sc)
}

func (st Step) validate() error {
	set := 0
	for _, ok := range []bool{
		st.Down != nil, st.Move != nil, st.Up != nil, st.Drag != nil,
		st.Text != nil, st.Key != "", st.Tool != "", st.Color != "",
		st.FontSize != nil, st.Action != "",
	} {
		if ok {
			set++
		}
	}
	switch {
	case set == 0:
		return errors.New("empty step")
	case set > 1:
		return errors.New("a step must set exactly one field")
	}
	if st.Key != "" {
		if _, err := ParseKey(st.Key); err != nil {
			return err
		}
	}
	if st.Tool != "" {
		if _, err := shape.ParseKind(st.Tool); err != nil {
			return err
		}
	}
	if st.Color != "" {
		if _, err := palette.Parse(st.Color); err != nil {
			return err
		}
	}
	if st.Action != "" {
		if _, ok := actions[strings.ToLower(st.Action)]; !ok {
			return fmt.Errorf("unknown action %q", st.Action)
		}
	}
	return nil
}

var actions = map[string]func(*editor.Session) bool{
	"undo":         (*editor.Session).Undo,
	"redo":         (*editor.Session).Redo,
	"delete":       (*editor.Session).DeleteSelected,
	"clear":        (*editor.Session).Clear,
	"cancel":       (*editor.Session).CancelText,
	"delete-image": (*editor.Session).DeleteImage,
	"commit": func(s *editor.Session) bool {
		return s.CommitText(s.TextLabel())
	},
}

// Apply configures s with the script's initial tool, colour and font size.
func (sc *Script) Apply(s *editor.Session) error {
	if sc.Tool != "" {
		k, err := shape.ParseKind(sc.Tool)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrScript, err)
		}
		s.SetTool(k)
	}
	if sc.Color != "" {
		c, err := palette.Parse(sc.Color)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrScript, err)
		}
		s.SetColor(c)
	}
	if sc.FontSize > 0 {
		s.SetFontSize(sc.FontSize)
	}
	return nil
}

// Run applies the script's settings and replays every step on s. Pointer
// steps fail when s has no image.
func (sc *Script) Run(s *editor.Session) error {
	if err := sc.Apply(s); err != nil {
		return err
	}
	for i, st := range sc.Steps {
		if err := st.run(s); err != nil {
			return fmt.Errorf("%w: step %d: %v", ErrScript, i+1, err)
		}
	}
	return nil
}

var errRejected = errors.New("pointer event rejected: no image loaded")

func (st Step) run(s *editor.Session) error {
	switch {
	case st.Down != nil:
		if !s.PointerDown(st.Down[0], st.Down[1]) && !s.Loaded() {
			return errRejected
		}
	case st.Move != nil:
		s.PointerMove(st.Move[0], st.Move[1])
	case st.Up != nil:
		s.PointerUp(st.Up[0], st.Up[1])
	case st.Drag != nil:
		if !s.PointerDown(st.Drag.From[0], st.Drag.From[1]) && !s.Loaded() {
			return errRejected
		}
		s.PointerMove((st.Drag.From[0]+st.Drag.To[0])/2, (st.Drag.From[1]+st.Drag.To[1])/2)
		s.PointerUp(st.Drag.To[0], st.Drag.To[1])
	case st.Text != nil:
		if s.State() != editor.TextEntry {
			return errors.New("text step outside text entry")
		}
		s.TypeText(*st.Text)
	case st.Key != "":
		e, err := ParseKey(st.Key)
		if err != nil {
			return err
		}
		s.HandleKey(e)
	case st.Tool != "":
		k, err := shape.ParseKind(st.Tool)
		if err != nil {
			return err
		}
		s.SetTool(k)
	case st.Color != "":
		c, err := palette.Parse(st.Color)
		if err != nil {
			return err
		}
		s.SetColor(c)
	case st.FontSize != nil:
		s.SetFontSize(*st.FontSize)
	case st.Action != "":
		fn, ok := actions[strings.ToLower(st.Action)]
		if !ok {
			return fmt.Errorf("unknown action %q", st.Action)
		}
		fn(s)
	}
	return nil
}
