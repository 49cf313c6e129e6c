package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/shots
color = #00FF00
tool = arrow
font_size = 24
fill_alpha = 0.5
history_limit = 20
max_width = 800

[notify]
save = false
copy = true
upload = true

[upload]
client_id = "abc.apps"
refresh_token = r-123
folder = shots

[theme.my_custom_theme]
Background = #111111
Selection = #FF00FF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("theme = %q", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/shots" {
		t.Errorf("save_dir = %q", cfg.SaveDir)
	}
	if cfg.Color != "#00FF00" || cfg.Tool != "arrow" {
		t.Errorf("color/tool = %q/%q", cfg.Color, cfg.Tool)
	}
	if cfg.FontSize != 24 || cfg.FillAlpha != 0.5 {
		t.Errorf("font_size/fill_alpha = %v/%v", cfg.FontSize, cfg.FillAlpha)
	}
	if cfg.HistoryLimit != 20 || cfg.MaxWidth != 800 || cfg.MaxHeight != New().MaxHeight {
		t.Errorf("limits = %d %d %d", cfg.HistoryLimit, cfg.MaxWidth, cfg.MaxHeight)
	}
	if cfg.Notify.Save || !cfg.Notify.Copy || !cfg.Notify.Upload {
		t.Errorf("notify = %+v", cfg.Notify)
	}
	if cfg.Upload.ClientID != "abc.apps" || cfg.Upload.RefreshToken != "r-123" || cfg.Upload.Folder != "shots" {
		t.Errorf("upload = %+v", cfg.Upload)
	}
	if !cfg.Upload.Configured() {
		t.Error("expected upload to be configured")
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Background.R != 0x11 || th.Background.G != 0x11 || th.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", th.Background)
	}
	if th.Selection.G != 0 || th.Selection.R != 0xFF {
		t.Errorf("Unexpected Selection color: %+v", th.Selection)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"bad bool":      "[notify]\nsave = maybe\n",
		"bad alpha":     "fill_alpha = 2\n",
		"bad font size": "font_size = -1\n",
		"bad int":       "history_limit = many\n",
		"bad color":     "[theme.x]\nBackground = blue\n",
	}
	for name, input := range cases {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/shots
shadow = true

[notify]
save = true
copy = false
upload = true

[upload]
access_token = tok

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
HandleFill = #10203040
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v\n%s", err, generated)
	}

	if cfg.Theme != cfg2.Theme || cfg.SaveDir != cfg2.SaveDir || cfg.Shadow != cfg2.Shadow {
		t.Errorf("root mismatch:\n%s", generated)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if cfg.Upload != cfg2.Upload {
		t.Errorf("Upload mismatch: %+v vs %+v", cfg.Upload, cfg2.Upload)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestLoaderOverridePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.rc")
	if err := os.WriteFile(path, []byte("tool = text\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := NewLoader("v1.0.0", path).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Tool != "text" {
		t.Errorf("tool = %q", cfg.Tool)
	}
}
