package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/example/pikshare/internal/history"
	"github.com/example/pikshare/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save   bool
	Copy   bool
	Upload bool
}

// Upload holds the cloud drive credentials.
type Upload struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	AccessToken  string
	Folder       string
}

// Configured reports whether enough is set to obtain a token.
func (u Upload) Configured() bool {
	return u.AccessToken != "" || (u.ClientID != "" && u.RefreshToken != "")
}

// Config holds the application configuration.
type Config struct {
	Theme     string
	SaveDir   string
	Color     string
	Tool      string
	Highlight string
	FontSize  float64
	FillAlpha float64
	Shadow    bool

	HistoryLimit int
	MaxWidth     int
	MaxHeight    int

	Notify Notify
	Upload Upload
	Themes map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:        "", // Empty allows fallback to Env/Default
		Color:        "red",
		Tool:         "rectangle",
		FontSize:     16,
		FillAlpha:    0.3,
		HistoryLimit: history.DefaultLimit,
		MaxWidth:     1920,
		MaxHeight:    1200,
		Themes:       make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "color = %s\n", c.Color)
	fmt.Fprintf(&sb, "tool = %s\n", c.Tool)
	if c.Highlight != "" {
		fmt.Fprintf(&sb, "highlight = %s\n", c.Highlight)
	}
	fmt.Fprintf(&sb, "font_size = %s\n", formatFloat(c.FontSize))
	fmt.Fprintf(&sb, "fill_alpha = %s\n", formatFloat(c.FillAlpha))
	fmt.Fprintf(&sb, "shadow = %v\n", c.Shadow)
	fmt.Fprintf(&sb, "history_limit = %d\n", c.HistoryLimit)
	fmt.Fprintf(&sb, "max_width = %d\n", c.MaxWidth)
	fmt.Fprintf(&sb, "max_height = %d\n", c.MaxHeight)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "upload = %v\n", c.Notify.Upload)
	sb.WriteString("\n")

	if c.Upload != (Upload{}) {
		sb.WriteString("[upload]\n")
		writeOptional(&sb, "client_id", c.Upload.ClientID)
		writeOptional(&sb, "client_secret", c.Upload.ClientSecret)
		writeOptional(&sb, "refresh_token", c.Upload.RefreshToken)
		writeOptional(&sb, "access_token", c.Upload.AccessToken)
		writeOptional(&sb, "folder", c.Upload.Folder)
		sb.WriteString("\n")
	}

	// Sorted for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, nc := range t.Colors() {
			fmt.Fprintf(&sb, "%s: %s\n", nc.Name, theme.FormatColor(nc.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeOptional(sb *strings.Builder, key, value string) {
	if value != "" {
		fmt.Fprintf(sb, "%s = %s\n", key, value)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
