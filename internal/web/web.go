// Package web is the presentation layer: the embedded index page template
// and its stylesheet. It receives a resolved IP string and a GeoResult and
// renders them - no decisions are made here.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/evyataryagoni/whereami/internal/models"
)

//go:embed templates static
var assets embed.FS

// Renderer renders the index page from the embedded template
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded page template
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(assets, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// RenderIndex writes the index page for the given data
func (r *Renderer) RenderIndex(w io.Writer, data models.PageData) error {
	return r.tmpl.ExecuteTemplate(w, "index.html", data)
}

// StaticHandler serves the embedded static assets (mounted at /static/)
func StaticHandler() http.Handler {
	static, err := fs.Sub(assets, "static")
	if err != nil {
		// The static directory is embedded at compile time; a failure
		// here means the binary itself is broken
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(static)))
}
