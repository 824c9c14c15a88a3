package handlers

import (
	"net/http"
	"os"
	"path/filepath"
)

type UploadHandler struct {
	Templates *TemplateCache
	UploadDir string
}

// ServeUpload streams a stored image by its filename.
func (h *UploadHandler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	// Stored names never contain path separators; anything else is a traversal attempt.
	if name == "" || name != filepath.Base(name) {
		h.Templates.NotFound(w)
		return
	}

	path := filepath.Join(h.UploadDir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		h.Templates.NotFound(w)
		return
	}

	http.ServeFile(w, r, path)
}
