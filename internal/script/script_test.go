package script

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/event/key"

	"github.com/example/pikshare/internal/editor"
	"github.com/example/pikshare/internal/shape"
)

const sample = `
image: shot.png
tool: rectangle
color: red
steps:
  - drag: {from: [10, 10], to: [40, 30]}
  - tool: arrow
  - color: "#00ff00"
  - down: [60, 60]
  - move: [70, 65]
  - up: [90, 90]
  - tool: text
  - font_size: 24
  - down: [5, 80]
  - text: "hi there"
  - key: backspace
  - key: enter
`

func session(t *testing.T) *editor.Session {
	t.Helper()
	s := editor.New()
	s.SetImage(image.NewRGBA(image.Rect(0, 0, 100, 100)), "")
	return s
}

func TestRunSample(t *testing.T) {
	sc, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, sc.Steps, 12)

	s := session(t)
	require.NoError(t, sc.Run(s))

	list := s.Shapes()
	require.Len(t, list, 3)
	assert.Equal(t, shape.Rectangle, list[0].Kind)
	assert.Equal(t, [4]float64{10, 10, 30, 20}, [4]float64{list[0].X, list[0].Y, list[0].W, list[0].H})
	assert.Equal(t, uint8(255), list[0].Color.R)

	assert.Equal(t, shape.Arrow, list[1].Kind)
	assert.Equal(t, uint8(255), list[1].Color.G)
	assert.Equal(t, uint8(0), list[1].Color.R)

	assert.Equal(t, shape.Text, list[2].Kind)
	assert.Equal(t, "hi ther", list[2].Label)
	assert.Equal(t, 24.0, list[2].FontSize)
}

func TestRunActions(t *testing.T) {
	sc, err := Parse(strings.NewReader(`
steps:
  - drag: {from: [10, 10], to: [40, 40]}
  - drag: {from: [50, 50], to: [80, 80]}
  - action: undo
  - key: ctrl+shift+z
  - drag: {from: [20, 20], to: [20, 20]}
  - action: delete
`))
	require.NoError(t, err)
	s := session(t)
	require.NoError(t, sc.Run(s))
	list := s.Shapes()
	require.Len(t, list, 1)
	assert.Equal(t, 50.0, list[0].X)
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"empty":          ``,
		"unknown field":  "steps:\n  - jump: [1, 2]\n",
		"two fields":     "steps:\n  - down: [1, 2]\n    up: [3, 4]\n",
		"empty step":     "steps:\n  - {}\n",
		"bad tool":       "steps:\n  - tool: spiral\n",
		"bad color":      "steps:\n  - color: nope\n",
		"bad key":        "steps:\n  - key: hyper+z\n",
		"bad action":     "steps:\n  - action: explode\n",
		"unknown header": "title: x\nsteps: []\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(src))
			assert.ErrorIs(t, err, ErrScript)
		})
	}
}

func TestRunWithoutImageFails(t *testing.T) {
	sc, err := Parse(strings.NewReader("steps:\n  - down: [1, 2]\n"))
	require.NoError(t, err)
	err = sc.Run(editor.New())
	require.ErrorIs(t, err, ErrScript)
	assert.Contains(t, err.Error(), "step 1")
}

func TestTextOutsideEntryFails(t *testing.T) {
	sc, err := Parse(strings.NewReader("steps:\n  - text: hi\n"))
	require.NoError(t, err)
	assert.ErrorIs(t, sc.Run(session(t)), ErrScript)
}

func TestLoadResolvesImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "edit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("image: shot.png\nsteps: []\n"), 0o644))
	sc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "shot.png"), sc.ImagePath())

	sc.Image = "/abs/a.png"
	assert.Equal(t, "/abs/a.png", sc.ImagePath())
}

func TestMarshalRoundTrip(t *testing.T) {
	sc, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	out, err := sc.Marshal()
	require.NoError(t, err)
	again, err := Parse(strings.NewReader(string(out)))
	require.NoError(t, err)
	assert.Equal(t, sc.Steps, again.Steps)
}

func TestParseKey(t *testing.T) {
	e, err := ParseKey("Ctrl+Z")
	require.NoError(t, err)
	assert.Equal(t, key.Event{Rune: 'z', Code: key.CodeZ, Modifiers: key.ModControl, Direction: key.DirPress}, e)

	e, err = ParseKey("ctrl+shift+z")
	require.NoError(t, err)
	assert.Equal(t, 'Z', e.Rune)
	assert.Equal(t, key.ModControl|key.ModShift, e.Modifiers)

	e, err = ParseKey("delete")
	require.NoError(t, err)
	assert.Equal(t, key.CodeDeleteForward, e.Code)

	_, err = ParseKey("ctrl+")
	assert.Error(t, err)
	_, err = ParseKey("f13")
	assert.Error(t, err)
}
