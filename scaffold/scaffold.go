// Package scaffold provides the embedded starter files written by
// `kodaklens new`.
package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

// Data holds the template variables passed to every scaffold template.
type Data struct {
	ProjectName string
	SiteName    string
	SiteURL     string
}

// NewData derives the template variables from a project directory name.
func NewData(dir string) Data {
	name := filepath.Base(filepath.Clean(dir))
	return Data{
		ProjectName: name,
		SiteName:    toTitle(name),
		SiteURL:     "http://localhost:3000",
	}
}

// Generate renders every template into dir, which must not exist yet. It
// returns the written paths in walk order.
func Generate(dir string, data Data) ([]string, error) {
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("directory %q already exists", dir)
	}

	const root = "templates"
	var written []string
	err := fs.WalkDir(Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, filepath.FromSlash(path))
		if err != nil {
			return err
		}
		out := strings.TrimSuffix(filepath.Join(dir, rel), ".tmpl")
		if filepath.Base(out) == "dotenv" {
			out = filepath.Join(filepath.Dir(out), ".env.example")
		}

		if d.IsDir() {
			return os.MkdirAll(out, 0o755)
		}

		content, err := Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		tmpl, err := template.New(filepath.Base(path)).Parse(string(content))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}
		if err := writeTemplate(out, tmpl, data); err != nil {
			return err
		}
		written = append(written, out)
		return nil
	})
	return written, err
}

func writeTemplate(out string, tmpl *template.Template, data Data) error {
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()
	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("execute template %s: %w", tmpl.Name(), err)
	}
	return nil
}

// toTitle converts a hyphenated name to title case: "my-photos" -> "My Photos".
func toTitle(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
