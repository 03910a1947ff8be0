// Package views renders the HTML pages. Each page template is parsed
// together with the shared layout and executed through its "base" block.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"Litreview/api/markup"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates
var templateFS embed.FS

const (
	layoutGlob = "templates/layout/*.tmpl"
	pageGlob   = "templates/pages/*.tmpl"
	entryPoint = "base"
)

var months = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FormatDate renders a timestamp the way the pages show it, e.g.
// "14:05, 3 mars 2024".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%02d:%02d, %d %s %d", t.Hour(), t.Minute(), t.Day(), months[t.Month()-1], t.Year())
}

func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		"markdown": markup.Render,
		"date":     FormatDate,
		"mediaURL": func(key string) string { return key },
		"ratings":  func() []int { return []int{0, 1, 2, 3, 4, 5} },
		"dict":     dict,
	}
}

// dict builds a map from alternating keys and values so partial templates
// can take more than one argument.
func dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", values[i])
		}
		m[key] = values[i+1]
	}
	return m, nil
}

type Renderer struct {
	templates map[string]*template.Template
}

// New parses every page. Entries in funcs override the defaults, which is
// how the server wires mediaURL to the configured media store.
func New(funcs template.FuncMap) (*Renderer, error) {
	merged := defaultFuncs()
	for name, fn := range funcs {
		merged[name] = fn
	}

	pages, err := fs.Glob(templateFS, pageGlob)
	if err != nil {
		return nil, err
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		name := strings.TrimSuffix(path.Base(page), ".tmpl")
		t, err := template.New(name).Funcs(merged).ParseFS(templateFS, layoutGlob, page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// Has reports whether a page with that name exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// Instance implements gin's render.HTMLRender.
func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.templates[name]
	if !ok {
		t = r.templates["error"]
	}
	return render.HTML{Template: t, Name: entryPoint, Data: data}
}
