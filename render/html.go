package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var (
	tmplOnce sync.Once
	tmpl     *template.Template
	tmplErr  error
)

// Templates returns the parsed page and profile templates. The set is
// parsed once and shared; html/template is safe for concurrent Execute.
func Templates() (*template.Template, error) {
	tmplOnce.Do(func() {
		tmpl, tmplErr = template.ParseFS(templateFS, "templates/*.html")
	})
	return tmpl, tmplErr
}

// Static returns the embedded static assets (placeholder image, stylesheet)
// rooted so that "placeholder.svg" is served at PlaceholderImage.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // the embed pattern guarantees the directory exists
	}
	return sub
}

// HTML renders the profile section of v as an HTML fragment.
// A nil view renders to the empty string.
func HTML(v *View) (string, error) {
	if v == nil {
		return "", nil
	}
	t, err := Templates()
	if err != nil {
		return "", fmt.Errorf("render: parse templates: %w", err)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "profile", v); err != nil {
		return "", fmt.Errorf("render: execute profile: %w", err)
	}
	return buf.String(), nil
}
