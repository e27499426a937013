package dashboard

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/2beens/fitnessdash/internal/spreadsheet"
)

//go:embed templates/*.html templates/partials/*.html
var templateFS embed.FS

type Sidebar struct {
	SheetName       string
	RefreshInterval time.Duration
	Workouts        []string
	Connection      *spreadsheet.ConnectionStatus
	Notice          string
}

// PageData is the root value of every page template.
type PageData struct {
	Title            string
	State            State
	Sidebar          Sidebar
	Error            *PageError
	ShowErrorDetails bool
	NoData           bool
	LoadedAt         time.Time
	Cached           bool
	Content          any
}

type Templates struct {
	pages map[string]*template.Template
}

// LoadTemplates parses the layout and partials once, then clones them for each page so
// every page can define its own "content" block.
func LoadTemplates() (*Templates, error) {
	funcMap := template.FuncMap{
		"json":       toJS,
		"join":       strings.Join,
		"lower":      strings.ToLower,
		"add":        func(a, b int) int { return a + b },
		"sub":        func(a, b int) int { return a - b },
		"seconds":    func(d time.Duration) int { return int(d.Seconds()) },
		"formatTime": func(t time.Time) string { return t.Format("2006-01-02 15:04:05") },
		"selected":   contains,
		"workoutURL": WorkoutURL,
		"derefInt": func(p *int) int {
			if p == nil {
				return 0
			}
			return *p
		},
		"dateOrDash": func(t *time.Time) string {
			if t == nil {
				return "-"
			}
			return t.Format(queryDateLayout)
		},
	}

	base, err := template.New("base").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pageFiles, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob pages: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, f := range pageFiles {
		name := strings.TrimSuffix(path.Base(f), ".html")
		if name == "layout" {
			continue
		}
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		if _, err := clone.ParseFS(templateFS, f); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		pages[name] = clone
	}

	return &Templates{pages: pages}, nil
}

// Render executes the page into a buffer first, so a failing template never leaves a half written page.
func (t *Templates) Render(w io.Writer, name string, data PageData) error {
	tmpl, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}

	_, err := buf.WriteTo(w)
	return err
}

func toJS(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return template.JS("null")
	}
	return template.JS(b)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
