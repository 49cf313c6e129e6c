package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/example/pikshare/internal/config"
	"github.com/example/pikshare/internal/script"
	"github.com/example/pikshare/internal/upload"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

func readPNG(t *testing.T, path string) *image.RGBA {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba
}

func TestParseDrawClipboardRequiresOutput(t *testing.T) {
	_, err := parseDrawCmd([]string{"-from-clipboard", "line", "0", "0", "10", "10"}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "output file is required when reading from the clipboard"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseDrawRejects(t *testing.T) {
	cases := map[string][]string{
		"no file":     {"rect", "0", "0", "10", "10"},
		"bad shape":   {"-file", "a.png", "star", "0", "0", "10", "10"},
		"few coords":  {"-file", "a.png", "rect", "0", "0", "10"},
		"bad int":     {"-file", "a.png", "rect", "0", "0", "ten", "10"},
		"empty text":  {"-file", "a.png", "text", "0", "0", " "},
		"bad color":   {"-file", "a.png", "-color", "nope", "rect", "0", "0", "10", "10"},
		"missing val": {"-file", "a.png", "rect", "0", "0", "10", "10", "-color"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := parseDrawCmd(args, nil); err == nil {
				t.Fatalf("expected error for %v", args)
			}
		})
	}
}

func TestParseDrawNoShapeIsUsage(t *testing.T) {
	_, err := parseDrawCmd([]string{"-file", "a.png"}, nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if help := uerr.Error(); !strings.Contains(help, "pikshare draw") || !strings.Contains(help, "-text-size") {
		t.Fatalf("help missing program or flags:\n%s", help)
	}
}

func TestSplitDrawArgs(t *testing.T) {
	flags, pos, err := splitDrawArgs([]string{"arrow", "-5", "-6", "10", "10", "--color=blue", "-to-clip", "-file", "in.png"})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if want := []string{"-color=blue", "-to-clip", "-file", "in.png"}; !reflect.DeepEqual(flags, want) {
		t.Fatalf("flags = %v want %v", flags, want)
	}
	if want := []string{"arrow", "-5", "-6", "10", "10"}; !reflect.DeepEqual(pos, want) {
		t.Fatalf("positionals = %v want %v", pos, want)
	}
}

func TestDrawRunWritesRectangle(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	writePNG(t, in, 40, 40)

	cmd, err := parseDrawCmd([]string{"-file", in, "-output", out, "-color", "blue", "rect", "5", "5", "30", "30"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	img := readPNG(t, out)
	if got := img.RGBAAt(5, 15); got != (color.RGBA{0, 0, 255, 255}) {
		t.Fatalf("stroke pixel = %v", got)
	}
	if got := img.RGBAAt(38, 38); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("untouched pixel = %v", got)
	}
}

func TestDrawRunRejectsTinyShape(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writePNG(t, in, 20, 20)
	cmd, err := parseDrawCmd([]string{"-file", in, "rect", "5", "5", "6", "20"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "wider and taller") {
		t.Fatalf("expected size error, got %v", err)
	}
}

func TestDrawRunMissingFile(t *testing.T) {
	cmd, err := parseDrawCmd([]string{"-file", filepath.Join(t.TempDir(), "missing.png"), "rect", "0", "0", "10", "10"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "missing.png") {
		t.Fatalf("expected load error naming the file, got %v", err)
	}
}

func TestReplayRun(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "shot.png"), 60, 60)
	src := "image: shot.png\noutput: done.png\ncolor: \"#00ff00\"\nsteps:\n  - drag: {from: [10, 10], to: [50, 50]}\n"
	path := filepath.Join(dir, "edit.yaml")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cmd, err := parseReplayCmd([]string{path}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	img := readPNG(t, filepath.Join(dir, "done.png"))
	if got := img.RGBAAt(10, 30); got != (color.RGBA{0, 255, 0, 255}) {
		t.Fatalf("stroke pixel = %v", got)
	}
}

func TestReplayOutputPath(t *testing.T) {
	cmd, err := parseReplayCmd([]string{"-output", "x.png", "a.yaml"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	sc := &script.Script{Output: "out.png"}
	if got := cmd.outputPath(sc, "shot.png"); got != "x.png" {
		t.Fatalf("flag output = %q", got)
	}

	p := &replayCmd{path: filepath.Join("scripts", "a.yaml")}
	if got, want := p.outputPath(sc, "shot.png"), filepath.Join("scripts", "out.png"); got != want {
		t.Fatalf("script output = %q want %q", got, want)
	}
	if got, want := p.outputPath(&script.Script{}, filepath.Join("img", "shot.png")), filepath.Join("img", "annotated-shot.png"); got != want {
		t.Fatalf("derived output = %q want %q", got, want)
	}
	if _, err := parseReplayCmd(nil, nil); err == nil {
		t.Fatal("expected usage error without a script")
	}
}

func TestUploadRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "shot.png")
	writePNG(t, in, 10, 10)

	var gotName string
	var gotBlob []byte
	origUploader, origLink := newUploaderFn, writeLinkFn
	t.Cleanup(func() { newUploaderFn, writeLinkFn = origUploader, origLink })
	newUploaderFn = func(context.Context, config.Upload) upload.Uploader {
		return upload.Func(func(_ context.Context, blob []byte, name string) (string, error) {
			gotName, gotBlob = name, blob
			return "https://drive.example/view?id=1", nil
		})
	}
	var copied string
	writeLinkFn = func(s string) error { copied = s; return nil }

	cfg := config.New()
	cfg.Upload.AccessToken = "token"
	r := &root{program: "pikshare", config: cfg}
	cmd, err := parseUploadCmd([]string{"-copy-link", in}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if gotName != "shot.png" {
		t.Fatalf("uploaded name = %q", gotName)
	}
	if _, err := png.Decode(bytes.NewReader(gotBlob)); err != nil {
		t.Fatalf("uploaded blob is not a PNG: %v", err)
	}
	if copied != "https://drive.example/view?id=1" {
		t.Fatalf("copied link = %q", copied)
	}
}

func TestUploadRunFailure(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "shot.png")
	writePNG(t, in, 10, 10)

	orig := newUploaderFn
	t.Cleanup(func() { newUploaderFn = orig })
	newUploaderFn = func(context.Context, config.Upload) upload.Uploader {
		return upload.Func(func(context.Context, []byte, string) (string, error) {
			return "", upload.ErrAuth
		})
	}
	cfg := config.New()
	cfg.Upload.AccessToken = "token"
	cmd, err := parseUploadCmd([]string{in}, &root{config: cfg})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); !errors.Is(err, upload.ErrAuth) {
		t.Fatalf("expected auth error, got %v", err)
	}
}

func TestUploadRequiresConfig(t *testing.T) {
	cmd, err := parseUploadCmd([]string{"shot.png"}, &root{config: config.New()})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestColorsRun(t *testing.T) {
	cmd, err := parseColorsCmd(nil, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var buf bytes.Buffer
	cmd.out = &buf
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(buf.String(), "*  2: Red") {
		t.Fatalf("default color not marked:\n%s", buf.String())
	}
}

func TestConfigPrintAndSave(t *testing.T) {
	cfg := config.New()
	cfg.SaveDir = "/tmp/shots"
	r := &root{config: cfg}

	cmd, err := parseConfigCmd([]string{"print"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var buf bytes.Buffer
	cmd.out = &buf
	if err := cmd.Run(); err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.Contains(buf.String(), "/tmp/shots") {
		t.Fatalf("printed config missing save dir:\n%s", buf.String())
	}

	path := filepath.Join(t.TempDir(), "sub", "config.rc")
	cmd, err = parseConfigCmd([]string{"-path", path, "save"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("save: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open saved: %v", err)
	}
	defer f.Close()
	again, err := config.Parse(f)
	if err != nil {
		t.Fatalf("parse saved: %v", err)
	}
	if again.SaveDir != "/tmp/shots" {
		t.Fatalf("save dir = %q", again.SaveDir)
	}
}

func TestRootUnknownCommandIsUsage(t *testing.T) {
	r := &root{fs: flag.NewFlagSet("pikshare", flag.ContinueOnError), program: "pikshare", config: config.New()}
	err := r.Run([]string{"frobnicate"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(uerr.Error(), "Commands:") {
		t.Fatalf("root help not rendered:\n%s", uerr.Error())
	}
}

func TestParseEditSources(t *testing.T) {
	if _, err := parseEditCmd([]string{"-capture", "-from-clipboard"}, nil); err == nil {
		t.Fatal("expected error for two sources")
	}
	if _, err := parseEditCmd([]string{"-interactive"}, nil); err == nil {
		t.Fatal("expected error for -interactive without -capture")
	}
	cmd, err := parseEditCmd([]string{"shot.png"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.file != "shot.png" {
		t.Fatalf("file = %q", cmd.file)
	}
	if got := len(cmd.options()); got != 5 {
		t.Fatalf("options = %d want 5", got)
	}
}
