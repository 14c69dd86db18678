// Package views renders the embedded HTML pages.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates
var templatesFS embed.FS

// Pages rendered inside layout.html.
const (
	Home     = "home.html"
	Register = "register.html"
	Login    = "login.html"
	Predict  = "predict.html"
)

// Snippets rendered on their own, as inline responses to a form post.
const (
	UsernameExists     = "username_exists.html"
	InvalidCredentials = "invalid_credentials.html"
)

var (
	pages    = map[string]*template.Template{}
	snippets = map[string]*template.Template{}
)

func init() {
	layout := template.Must(template.ParseFS(templatesFS, "templates/layout.html"))
	for _, name := range []string{Home, Register, Login, Predict} {
		t := template.Must(layout.Clone())
		pages[name] = template.Must(t.ParseFS(templatesFS, "templates/"+name))
	}
	for _, name := range []string{UsernameExists, InvalidCredentials} {
		snippets[name] = template.Must(template.ParseFS(templatesFS, "templates/"+name))
	}
}

// Page renders a full page with the given status.
func Page(w http.ResponseWriter, status int, name string, data any) error {
	t, ok := pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return write(w, status, t, "layout", data)
}

// Snippet renders an inline HTML fragment with the given status.
func Snippet(w http.ResponseWriter, status int, name string) error {
	t, ok := snippets[name]
	if !ok {
		return fmt.Errorf("unknown snippet %q", name)
	}
	return write(w, status, t, name, nil)
}

// write executes into a buffer first so a template error never leaves a half-written page.
func write(w http.ResponseWriter, status int, t *template.Template, entry string, data any) error {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, entry, data); err != nil {
		return fmt.Errorf("render %s: %w", entry, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
