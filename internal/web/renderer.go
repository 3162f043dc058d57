package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/message-board/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const timeLayout = "2006-01-02 15:04"

// Renderer produces the board page
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("board.html").Funcs(template.FuncMap{
		"timestamp": func(t time.Time) string { return t.UTC().Format(timeLayout) },
		"isotime":   func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the HTML page for the given data set
func (r *Renderer) Render(w io.Writer, page *models.Page) error {
	return r.tmpl.ExecuteTemplate(w, "board.html", page)
}
