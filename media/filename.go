package media

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var (
	reFilenameJunk = regexp.MustCompile(`[^a-z0-9\s-]`)
	reWhitespace   = regexp.MustCompile(`\s+`)
)

// GenerateImageFilename builds "<clean-title>-<YYYY-MM-DD>" from a title and
// the capture or upload date.
func GenerateImageFilename(title string, date time.Time) string {
	clean := reFilenameJunk.ReplaceAllString(strings.ToLower(title), "")
	clean = reWhitespace.ReplaceAllString(clean, "-")
	return clean + "-" + date.UTC().Format("2006-01-02")
}

// TitleFromFilename strips the extension and turns separators into spaces.
func TitleFromFilename(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	return strings.NewReplacer("_", " ", ".", " ").Replace(base)
}

// UniqueFilename appends -2, -3, ... to base until <dir>/<candidate><ext>
// does not exist.
func UniqueFilename(dir, base, ext string) string {
	candidate := base + ext
	for n := 2; ; n++ {
		if _, err := os.Stat(filepath.Join(dir, candidate)); err != nil {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d%s", base, n, ext)
	}
}
