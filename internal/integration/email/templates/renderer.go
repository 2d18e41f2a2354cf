// Package templates renders the embedded transactional email templates.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed *.html *.txt
var templateFS embed.FS

// Rendered is one email body in both formats.
type Rendered struct {
	HTML string
	Text string
}

// Renderer renders a named template pair. Every template must have an .html
// and a .txt variant, and every key it references must be present in the data.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.New("").Option("missingkey=error").ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}

	text, err := texttemplate.New("").Option("missingkey=error").ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}

	return &Renderer{html: html, text: text}, nil
}

// Render executes the name.html and name.txt templates with data.
func (r *Renderer) Render(name string, data map[string]string) (*Rendered, error) {
	var html, text bytes.Buffer

	if err := r.html.ExecuteTemplate(&html, name+".html", data); err != nil {
		return nil, fmt.Errorf("render %s.html: %w", name, err)
	}
	if err := r.text.ExecuteTemplate(&text, name+".txt", data); err != nil {
		return nil, fmt.Errorf("render %s.txt: %w", name, err)
	}

	return &Rendered{HTML: html.String(), Text: text.String()}, nil
}
