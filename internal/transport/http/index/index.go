package index

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/index.html
var templatesFS embed.FS

var page = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type pageData struct {
	Title string
}

// Index renders the landing page. The page talks to the JSON API from the browser.
func Index(w http.ResponseWriter, _ *http.Request, title string) error {
	var buf bytes.Buffer
	if err := page.Execute(&buf, pageData{Title: title}); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := buf.WriteTo(w)

	return err
}
