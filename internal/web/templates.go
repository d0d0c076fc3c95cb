package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var assetsFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))
