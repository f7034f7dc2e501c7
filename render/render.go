package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/hexforge/hexforge/naming"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// ErrUnknownTemplate is returned when Render is asked for a template ID
// that is not part of the embedded set.
var ErrUnknownTemplate = errors.New("render: unknown template")

// Renderer executes the embedded template set. It is immutable after New
// and safe for concurrent use.
type Renderer struct {
	templates *template.Template
}

// New parses the embedded template set and returns a ready renderer.
func New() (*Renderer, error) {
	root := template.New("root").Funcs(template.FuncMap{
		"pascal":     naming.Pascal,
		"camel":      naming.Camel,
		"kebab":      naming.Kebab,
		"snake":      naming.Snake,
		"upperSnake": naming.UpperSnake,
		"plural":     naming.Plural,
	})

	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("render: reading embedded templates: %w", err)
	}

	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".tmpl")
		content, err := templateFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("render: reading template %q: %w", name, err)
		}
		if _, err := root.New(name).Parse(string(content)); err != nil {
			return nil, fmt.Errorf("render: parsing template %q: %w", name, err)
		}
	}

	return &Renderer{templates: root}, nil
}

// NewWithOverrides parses the embedded template set and layers any .tmpl
// files found in dir over it. An override named entity.tmpl replaces the
// embedded entity template; files with new names become additional
// templates. An empty or missing dir leaves the embedded set untouched.
func NewWithOverrides(dir string) (*Renderer, error) {
	r, err := New()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return r, nil
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("render: reading template overrides: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".tmpl") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".tmpl")
		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("render: reading override %q: %w", name, err)
		}
		if _, err := r.templates.New(name).Parse(string(content)); err != nil {
			return nil, fmt.Errorf("render: parsing override %q: %w", name, err)
		}
	}
	return r, nil
}

// Render executes the template with the given ID over data and returns the
// rendered text.
func (r *Renderer) Render(templateID string, data any) (string, error) {
	tpl := r.templates.Lookup(templateID)
	if tpl == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, templateID)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render: executing template %q: %w", templateID, err)
	}
	return buf.String(), nil
}

// Templates returns the IDs of the embedded template set, sorted.
func (r *Renderer) Templates() []string {
	var out []string
	for _, tpl := range r.templates.Templates() {
		if tpl.Name() == "root" {
			continue
		}
		out = append(out, tpl.Name())
	}
	sort.Strings(out)
	return out
}
