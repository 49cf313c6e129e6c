package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/pikshare/internal/editor"
	"github.com/example/pikshare/internal/palette"
	"github.com/example/pikshare/internal/render"
	"github.com/example/pikshare/internal/shape"
)

// drawCmd adds a single annotation to an image without opening a window.
type drawCmd struct {
	file          string
	output        string
	fromClipboard bool
	toClipboard   bool
	colorSpec     string
	color         color.RGBA
	kind          shape.Kind
	coords        []int
	text          string
	textSize      float64
	*root
	fs *flag.FlagSet
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.file, "file", "", "input image file")
	fs.StringVar(&d.output, "output", "", "output file path, .png or .pdf (defaults to the input file)")
	fs.BoolVar(&d.fromClipboard, "from-clipboard", false, "read the input image from the clipboard")
	fs.BoolVar(&d.fromClipboard, "from-clip", false, "read the input image from the clipboard (alias)")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&d.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")
	fs.StringVar(&d.colorSpec, "color", r.cfg().Color, "color name or hex value")
	fs.Float64Var(&d.textSize, "text-size", r.cfg().FontSize, "text size in points")

	flagArgs, positionals, err := splitDrawArgs(args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) < 1 {
		return nil, &UsageError{of: d}
	}
	d.kind, err = shape.ParseKind(positionals[0])
	if err != nil {
		return nil, err
	}
	remaining := positionals[1:]
	if d.kind == shape.Text {
		if len(remaining) < 3 {
			return nil, fmt.Errorf("text requires x y and content")
		}
		d.coords, err = expectInts(remaining[:2], 2, "text")
		if err != nil {
			return nil, err
		}
		d.text = strings.Join(remaining[2:], " ")
		if strings.TrimSpace(d.text) == "" {
			return nil, fmt.Errorf("text content cannot be empty")
		}
	} else {
		d.coords, err = expectInts(remaining, 4, d.kind.String())
		if err != nil {
			return nil, err
		}
	}
	d.color, err = palette.Parse(d.colorSpec)
	if err != nil {
		return nil, err
	}
	if d.fromClipboard {
		if d.output == "" {
			if d.file == "" {
				return nil, fmt.Errorf("output file is required when reading from the clipboard")
			}
			d.output = d.file
		}
	} else {
		if d.file == "" {
			return nil, fmt.Errorf("input file is required")
		}
		if d.output == "" {
			d.output = d.file
		}
	}
	if d.textSize <= 0 {
		d.textSize = shape.DefaultFontSize
	}
	return d, nil
}

// annotation builds the shape described by the arguments.
func (d *drawCmd) annotation() (shape.Shape, error) {
	s := shape.Shape{Kind: d.kind, Color: d.color}
	if d.kind == shape.Text {
		w, h, _, err := render.MeasureText(d.text, d.textSize)
		if err != nil {
			return shape.Shape{}, err
		}
		s.X, s.Y = float64(d.coords[0]), float64(d.coords[1])
		s.W, s.H = float64(w), float64(h)
		s.Label = d.text
		s.FontSize = d.textSize
		return s, nil
	}
	s.X, s.Y = float64(d.coords[0]), float64(d.coords[1])
	s.W = float64(d.coords[2] - d.coords[0])
	s.H = float64(d.coords[3] - d.coords[1])
	if !s.ValidSize() {
		return shape.Shape{}, fmt.Errorf("%s must be wider and taller than %g pixels", d.kind, shape.MinExtent)
	}
	return s, nil
}

func (d *drawCmd) Run() error {
	sh, err := d.annotation()
	if err != nil {
		return err
	}
	sess := d.newSession(context.Background(), editor.WithColor(d.color))
	if err := d.load(sess); err != nil {
		return err
	}
	sess.AddShape(sh)
	if err := sess.SaveFile(d.output); err != nil {
		return err
	}
	saved := d.output
	if abs, err := filepath.Abs(d.output); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	d.notifySave(saved)
	if d.toClipboard {
		if err := sess.CopyToClipboard(); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		detail := filepath.Base(d.output)
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", detail)
		d.notifyCopy(detail)
	}
	return nil
}

func (d *drawCmd) load(sess *editor.Session) error {
	if d.fromClipboard {
		if err := sess.PasteImage(); err != nil {
			return fmt.Errorf("read clipboard image: %w", err)
		}
		return nil
	}
	return sess.LoadFile(d.file)
}

func expectInts(args []string, n int, shape string) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires %d integer arguments", shape, n)
	}
	vals := make([]int, n)
	for i, raw := range args {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		vals[i] = v
	}
	return vals, nil
}

var drawFlagNames = map[string]struct{}{
	"file":           {},
	"output":         {},
	"from-clipboard": {},
	"from-clip":      {},
	"to-clipboard":   {},
	"to-clip":        {},
	"color":          {},
	"text-size":      {},
}

var drawBoolFlags = map[string]struct{}{
	"from-clipboard": {},
	"from-clip":      {},
	"to-clipboard":   {},
	"to-clip":        {},
}

// splitDrawArgs separates known flags from positionals so flags may follow
// the shape arguments and negative coordinates are not read as flags.
func splitDrawArgs(args []string) ([]string, []string, error) {
	var flags []string
	var positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positionals = append(positionals, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if name == "" {
			positionals = append(positionals, arg)
			continue
		}
		parts := strings.SplitN(name, "=", 2)
		base := strings.ToLower(parts[0])
		if _, ok := drawFlagNames[base]; !ok {
			positionals = append(positionals, arg)
			continue
		}
		norm := "-" + base
		if len(parts) == 2 {
			flags = append(flags, norm+"="+parts[1])
			continue
		}
		if _, ok := drawBoolFlags[base]; ok {
			flags = append(flags, norm)
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, fmt.Errorf("flag %s requires a value", arg)
		}
		flags = append(flags, norm, args[i+1])
		i++
	}
	return flags, positionals, nil
}
