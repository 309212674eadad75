package web

import (
	"embed"
	"html/template"
	"time"

	"github.com/dustin/go-humanize"
)

//go:embed templates/*.html
var templateFS embed.FS

// templateFuncs are the helpers available to all pages.
var templateFuncs = template.FuncMap{
	// bytesize renders an object size for humans ("1.2 MiB").
	"bytesize": func(size int64) string {
		if size < 0 {
			return "unknown"
		}
		return humanize.IBytes(uint64(size))
	},
	// reltime renders a timestamp relative to now ("3 days ago").
	"reltime": func(t time.Time) string {
		return humanize.Time(t)
	},
}

// parseTemplates parses every embedded page once at server construction.
func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}
