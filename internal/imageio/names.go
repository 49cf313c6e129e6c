package imageio

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// DefaultSaveName is used when the image has no original file name.
const DefaultSaveName = "annotated-image.png"

// SaveName derives the export file name from the loaded file's name.
func SaveName(original string) string {
	if base := stem(original); base != "" {
		return base + ".png"
	}
	return DefaultSaveName
}

// UploadName is like SaveName but falls back to a timestamped name so
// repeated uploads do not collide.
func UploadName(original string, now time.Time) string {
	if base := stem(original); base != "" {
		return base + ".png"
	}
	return fmt.Sprintf("annotated-%d.png", now.UnixMilli())
}

func stem(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
