package httpadapter

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/couchcryptid/earthquake-dashboard/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

const notAvailable = "n/a"

var templateFuncs = template.FuncMap{
	"magnitude": func(m *float64) string {
		if m == nil {
			return notAvailable
		}
		return fmt.Sprintf("%.1f", *m)
	},
	"place": func(p *string) string {
		if p == nil || *p == "" {
			return "Unknown location"
		}
		return *p
	},
	"timestamp": func(ms *int64) string {
		if ms == nil {
			return notAvailable
		}
		return domain.FormatTimestamp(*ms) + " UTC"
	},
}

func mustParseTemplates() *template.Template {
	return template.Must(template.New("pages").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html"))
}
