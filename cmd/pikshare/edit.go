package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/example/pikshare/internal/clipboard"
	"github.com/example/pikshare/internal/imageio"
	"github.com/example/pikshare/internal/ui"
)

// editCmd opens the editor window.
type editCmd struct {
	file          string
	capture       bool
	interactive   bool
	fromClipboard bool
	saveDir       string
	*root
	fs *flag.FlagSet
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.file, "file", "", "image file to open")
	fs.BoolVar(&e.capture, "capture", false, "start with a screenshot of the desktop")
	fs.BoolVar(&e.interactive, "interactive", false, "let the desktop portal ask what to capture")
	fs.BoolVar(&e.fromClipboard, "from-clipboard", false, "start with the image on the clipboard")
	fs.BoolVar(&e.fromClipboard, "from-clip", false, "start with the image on the clipboard (alias)")
	fs.StringVar(&e.saveDir, "save-dir", r.cfg().SaveDir, "directory Ctrl+S saves into")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() == 1 && e.file == "" {
		e.file = fs.Arg(0)
	} else if fs.NArg() > 0 {
		return nil, &UsageError{of: e}
	}
	sources := 0
	for _, on := range []bool{e.file != "", e.capture, e.fromClipboard} {
		if on {
			sources++
		}
	}
	if sources > 1 {
		return nil, fmt.Errorf("choose only one of -file, -capture and -from-clipboard")
	}
	if e.interactive && !e.capture {
		return nil, fmt.Errorf("-interactive requires -capture")
	}
	return e, nil
}

func (e *editCmd) options() []ui.Option {
	cfg := e.cfg()
	opts := []ui.Option{
		ui.WithTheme(e.theme()),
		ui.WithSaveDir(e.saveDir),
		ui.WithDecoder(imageio.NewDecoder(cfg.MaxWidth, cfg.MaxHeight)),
		ui.WithLinkClipboard(clipboard.System{}),
	}
	if e.root != nil {
		opts = append(opts, ui.WithNotifier(e.notifier))
	}
	switch {
	case e.file != "":
		opts = append(opts, ui.WithStartupFile(e.file))
	case e.capture:
		opts = append(opts, ui.WithStartupCapture(e.interactive))
	case e.fromClipboard:
		opts = append(opts, ui.WithStartupPaste())
	}
	return opts
}

func (e *editCmd) Run() error {
	sess := e.newSession(context.Background())
	ui.New(sess, e.options()...).Run()
	return nil
}
