package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"sync"
)

// TemplateCache holds parsed templates
type TemplateCache struct {
	cache map[string]*template.Template
	mu    sync.RWMutex
	funcs template.FuncMap
}

func NewTemplateCache() *TemplateCache {
	return &TemplateCache{
		cache: make(map[string]*template.Template),
		funcs: make(template.FuncMap),
	}
}

func (tc *TemplateCache) AddFunc(name string, fn interface{}) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.funcs[name] = fn
}

// Load parses all templates in the templates/ dir
func (tc *TemplateCache) Load(dir string) error {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	files, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return err
	}
	for _, file := range files {
		name := filepath.Base(file)
		tmpl, err := template.New(name).Funcs(tc.funcs).ParseFiles(file)
		if err != nil {
			slog.Error("Failed to parse template", "file", file, "error", err)
			return err
		}
		tc.cache[name] = tmpl
		slog.Debug("Cached template", "name", name)
	}
	return nil
}

func (tc *TemplateCache) Get(name string) *template.Template {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.cache[name]
}

// Render writes the named template with the given status code. A missing
// template degrades to a bare status-text response rather than a blank page.
func (tc *TemplateCache) Render(w http.ResponseWriter, status int, name string, data map[string]interface{}) {
	tmpl := tc.Get(name)
	if tmpl == nil {
		http.Error(w, http.StatusText(status), status)
		return
	}
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		slog.Error("Failed to render template", "template", name, "error", err)
	}
}

// NotFound renders the dedicated 404 page.
func (tc *TemplateCache) NotFound(w http.ResponseWriter) {
	tc.Render(w, http.StatusNotFound, "404.html", nil)
}

// ServerError renders the dedicated 500 page.
func (tc *TemplateCache) ServerError(w http.ResponseWriter) {
	tc.Render(w, http.StatusInternalServerError, "500.html", nil)
}

// serverError logs an unexpected failure and shows the generic 500 page. The
// store layer has already rolled back any open transaction by the time an
// error reaches here; internal detail never leaks to the response.
func serverError(tc *TemplateCache, w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	tc.ServerError(w)
}
