package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/qazasd2518995/furhub/internal/models"
	"github.com/qazasd2518995/furhub/internal/store"
	"github.com/qazasd2518995/furhub/internal/upload"
)

type ItemHandler struct {
	Store        *store.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
	UploadDir    string
}

// Index lists the catalog, optionally filtered by the q query parameter.
func (h *ItemHandler) Index(w http.ResponseWriter, r *http.Request) {
	// The "/" pattern also catches every unmatched path.
	if r.URL.Path != "/" {
		h.Templates.NotFound(w)
		return
	}

	q := r.URL.Query().Get("q")
	items, err := h.Store.SearchItems(q)
	if err != nil {
		serverError(h.Templates, w, "Failed to fetch items", err)
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Items":    items,
		"Query":    q,
		"Flashes":  GetFlash(session),
		"Username": session.Values["username"],
		"IsAdmin":  session.Values["is_admin"] == true,
	}
	session.Save(r, w)
	h.Templates.Render(w, http.StatusOK, "home.html", data)
}

func (h *ItemHandler) AddItemForm(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	h.Templates.Render(w, http.StatusOK, "add_item.html", data)
}

func (h *ItemHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)

	fail := func(msg string) {
		redirectWithFlash(w, r, session, FlashMessage{Type: "error", Message: msg}, "/add")
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		fail("File too large. Max 10MB.")
		return
	}

	content := strings.TrimSpace(r.FormValue("content"))
	storeName := strings.TrimSpace(r.FormValue("store"))
	price := strings.TrimSpace(r.FormValue("price"))

	if content == "" || storeName == "" || price == "" {
		fail("Please fill in all required fields.")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		fail("Please upload a product image.")
		return
	}
	defer file.Close()

	filename, err := upload.Save(file, header, h.UploadDir)
	switch {
	case errors.Is(err, upload.ErrNoFile):
		fail("Please choose an image file.")
		return
	case errors.Is(err, upload.ErrUnsupportedType):
		fail("Unsupported image format. Use PNG, JPG, JPEG, GIF or WebP.")
		return
	case err != nil:
		serverError(h.Templates, w, "Failed to store image", err)
		return
	}

	userID, _ := session.Values["user_id"].(int)
	item := &models.Item{
		Content:  content,
		Store:    storeName,
		Price:    price, // kept as opaque text
		Category: store.DefaultCategory,
		Image:    filename,
		UserID:   userID,
	}
	if err := h.Store.CreateItem(item); err != nil {
		serverError(h.Templates, w, "Failed to create item", err)
		return
	}

	redirectWithFlash(w, r, session,
		FlashMessage{Type: "success", Message: "Product listed!"}, "/")
}

func (h *ItemHandler) ItemDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.Templates.NotFound(w)
		return
	}

	item, err := h.Store.GetItemByID(id)
	if errors.Is(err, store.ErrNotFound) {
		h.Templates.NotFound(w)
		return
	}
	if err != nil {
		serverError(h.Templates, w, "Failed to fetch item", err)
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Item":      item,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	h.Templates.Render(w, http.StatusOK, "item_detail.html", data)
}

// DeleteItem removes the record and its stored image, then returns home.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.Templates.NotFound(w)
		return
	}

	item, err := h.Store.GetItemByID(id)
	if errors.Is(err, store.ErrNotFound) {
		h.Templates.NotFound(w)
		return
	}
	if err != nil {
		serverError(h.Templates, w, "Failed to fetch item", err)
		return
	}

	if item.Image != "" {
		path := filepath.Join(h.UploadDir, item.Image)
		if _, err := os.Stat(path); err == nil {
			os.Remove(path)
		}
	}

	if err := h.Store.DeleteItem(id); err != nil {
		serverError(h.Templates, w, "Failed to delete item", err)
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	redirectWithFlash(w, r, session,
		FlashMessage{Type: "success", Message: "Product deleted."}, "/")
}

// MyItems shows the full catalog to the administrator.
func (h *ItemHandler) MyItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.SearchItems("")
	if err != nil {
		serverError(h.Templates, w, "Failed to fetch items", err)
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Items":     items,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	h.Templates.Render(w, http.StatusOK, "my_items.html", data)
}
