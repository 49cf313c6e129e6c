package main

import (
	"context"
	"fmt"
	"os"

	"github.com/example/pikshare/internal/clipboard"
	"github.com/example/pikshare/internal/config"
	"github.com/example/pikshare/internal/editor"
	"github.com/example/pikshare/internal/palette"
	"github.com/example/pikshare/internal/render"
	"github.com/example/pikshare/internal/shape"
	"github.com/example/pikshare/internal/theme"
	"github.com/example/pikshare/internal/upload"
)

// newUploaderFn builds the uploader for the configured credentials.
// Tests replace it.
var newUploaderFn = func(_ context.Context, u config.Upload) upload.Uploader {
	auth := upload.NewGoogleAuth(upload.Credentials{
		ClientID:     u.ClientID,
		ClientSecret: u.ClientSecret,
		RefreshToken: u.RefreshToken,
		AccessToken:  u.AccessToken,
	})
	return upload.NewDrive(auth, upload.WithFolder(u.Folder))
}

func (r *root) cfg() *config.Config {
	if r == nil || r.config == nil {
		return config.New()
	}
	return r.config
}

func (r *root) theme() *theme.Theme {
	if r == nil || r.activeTheme == nil {
		return theme.Default()
	}
	return r.activeTheme
}

// uploader returns nil when no credentials are configured.
func (r *root) uploader(ctx context.Context) upload.Uploader {
	u := r.cfg().Upload
	if !u.Configured() {
		return nil
	}
	return newUploaderFn(ctx, u)
}

// style maps the config and theme onto renderer settings.
func (r *root) style() render.Style {
	cfg := r.cfg()
	th := r.theme()
	st := render.DefaultStyle()
	st.FillAlpha = cfg.FillAlpha
	st.Highlight = th.Selection
	st.HandleFill = th.HandleFill
	st.HandleBorder = th.HandleBorder
	st.Backdrop = th.CanvasBackdrop
	if cfg.Highlight != "" {
		if c, err := palette.Parse(cfg.Highlight); err == nil {
			st.Highlight = c
		} else {
			fmt.Fprintf(os.Stderr, "warning: highlight: %v\n", err)
		}
	}
	return st
}

// newSession creates a session configured from the loaded config. Invalid
// config values fall back to the defaults with a warning.
func (r *root) newSession(ctx context.Context, extra ...editor.Option) *editor.Session {
	cfg := r.cfg()
	opts := []editor.Option{
		editor.WithMaxImageSize(cfg.MaxWidth, cfg.MaxHeight),
		editor.WithHistoryLimit(cfg.HistoryLimit),
		editor.WithStyle(r.style()),
		editor.WithShadow(cfg.Shadow),
		editor.WithClipboard(clipboard.System{}),
	}
	if cfg.FontSize > 0 {
		opts = append(opts, editor.WithFontSize(cfg.FontSize))
	}
	if cfg.Color != "" {
		if c, err := palette.Parse(cfg.Color); err == nil {
			opts = append(opts, editor.WithColor(c))
		} else {
			fmt.Fprintf(os.Stderr, "warning: color: %v\n", err)
		}
	}
	if cfg.Tool != "" {
		if k, err := shape.ParseKind(cfg.Tool); err == nil {
			opts = append(opts, editor.WithTool(k))
		} else {
			fmt.Fprintf(os.Stderr, "warning: tool: %v\n", err)
		}
	}
	if u := r.uploader(ctx); u != nil {
		opts = append(opts, editor.WithUploader(u))
	}
	return editor.New(append(opts, extra...)...)
}
