package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	layoutFile = "layout.html"

	TemplateHome    = "home"
	TemplateList    = "list"
	TemplateDetail  = "detail"
	TemplateForm    = "form"
	TemplateConfirm = "confirm"
	TemplateError   = "error"
)

// Renderer is a gin render.HTMLRender. Every page template is parsed together
// with the layout and defines the "content" block.
type Renderer struct {
	pages map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

func NewRenderer() (*Renderer, error) {
	layout, err := template.ParseFS(templateFS, "templates/"+layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(files))
	for _, f := range files {
		base := path.Base(f)
		if base == layoutFile {
			continue
		}
		t, err := template.Must(layout.Clone()).ParseFS(templateFS, f)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", base, err)
		}
		pages[strings.TrimSuffix(base, ".html")] = t
	}

	if _, ok := pages[TemplateError]; !ok {
		return nil, fmt.Errorf("missing %s template", TemplateError)
	}
	return &Renderer{pages: pages}, nil
}

// Instance implements render.HTMLRender. Unknown names fall back to the
// error page.
func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.pages[name]
	if !ok {
		t = r.pages[TemplateError]
	}
	return render.HTML{Template: t, Name: layoutFile, Data: data}
}
