package echoapi

import (
	"fmt"
	"html/template"
	"io"
	"path"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/rohitfewfer/attendance/core/attendance"
	appfs "github.com/rohitfewfer/attendance/fs"
)

const webTemplatesDir = "templates/web"

var pages = []string{"index", "attended", "summary", "admin", "error"}

type (
	templateRenderer struct {
		appName string
		pages   map[string]*template.Template
	}

	// view is what every page template receives.
	view struct {
		AppName string
		Flashes []string
		Data    interface{}
	}

	errorView struct {
		Code    int
		Message string
	}
)

var _ echo.Renderer = (*templateRenderer)(nil)

var templateFuncs = template.FuncMap{
	"isLab": attendance.IsLab,
	"pct":   func(f float64) string { return fmt.Sprintf("%.2f", f) },
	"inc":   func(i int) int { return i + 1 },
	"contains": func(list []string, s string) bool {
		for _, item := range list {
			if item == s {
				return true
			}
		}
		return false
	},
}

func newTemplateRenderer(appName string) *templateRenderer {
	r := &templateRenderer{appName: appName, pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		r.pages[name] = template.Must(
			template.New(name).Funcs(templateFuncs).ParseFS(
				appfs.FS,
				path.Join(webTemplatesDir, "_base.gohtml"),
				path.Join(webTemplatesDir, name+".gohtml"),
			),
		)
	}
	return r
}

// Render executes the page `name`; data must be a view (its AppName is filled in).
func (r *templateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return errors.Errorf("unknown page %q", name)
	}
	v, ok := data.(view)
	if !ok {
		v = view{Data: data}
	}
	v.AppName = r.appName
	return errors.Wrapf(tmpl.ExecuteTemplate(w, "base", v), "rendering %s", name)
}
