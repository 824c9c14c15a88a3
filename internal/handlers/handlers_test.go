package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/qazasd2518995/furhub/internal/auth"
	"github.com/qazasd2518995/furhub/internal/models"
	"github.com/qazasd2518995/furhub/internal/store"
)

// testEnv wires the handlers onto a mux the way cmd/server does, minus the
// CSRF wrapper, against a throwaway database and upload directory.
type testEnv struct {
	db        *store.Store
	uploadDir string
	mux       *http.ServeMux
	uploads   *UploadHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	db, err := store.NewStore(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.InitSchema())
	t.Cleanup(func() { db.Close() })

	uploadDir := filepath.Join(dir, "uploads")
	require.NoError(t, os.MkdirAll(uploadDir, 0o755))

	templates := NewTemplateCache()
	require.NoError(t, templates.Load("../../templates"))

	sessionStore := sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"))

	authHandler := &AuthHandler{Store: db, SessionStore: sessionStore, Templates: templates}
	itemHandler := &ItemHandler{Store: db, SessionStore: sessionStore, Templates: templates, UploadDir: uploadDir}
	orderHandler := &OrderHandler{Store: db, SessionStore: sessionStore, Templates: templates}
	uploadHandler := &UploadHandler{Templates: templates, UploadDir: uploadDir}
	guard := &Guard{SessionStore: sessionStore}

	mux := http.NewServeMux()
	mux.HandleFunc("/", itemHandler.Index)
	mux.HandleFunc("GET /register", authHandler.RegisterForm)
	mux.HandleFunc("POST /register", authHandler.Register)
	mux.HandleFunc("GET /login", authHandler.LoginForm)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("GET /logout", authHandler.Logout)
	mux.HandleFunc("GET /item/{id}", itemHandler.ItemDetail)
	mux.HandleFunc("POST /buy/{id}", orderHandler.Buy)
	mux.HandleFunc("GET /uploads/{name}", uploadHandler.ServeUpload)
	mux.HandleFunc("GET /add", guard.RequireAdmin(itemHandler.AddItemForm))
	mux.HandleFunc("POST /add", guard.RequireAdmin(itemHandler.AddItem))
	mux.HandleFunc("GET /delete/{id}", guard.RequireAdmin(itemHandler.DeleteItem))
	mux.HandleFunc("POST /delete/{id}", guard.RequireAdmin(itemHandler.DeleteItem))
	mux.HandleFunc("GET /my-items", guard.RequireAdmin(itemHandler.MyItems))
	mux.HandleFunc("GET /orders", guard.RequireAdmin(orderHandler.ListOrders))

	return &testEnv{db: db, uploadDir: uploadDir, mux: mux, uploads: uploadHandler}
}

func (e *testEnv) createUser(t *testing.T, username, password string, isAdmin bool) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		IsAdmin:      isAdmin,
	}
	require.NoError(t, e.db.CreateUser(user))
	return user
}

// do sends a request through the mux, optionally with a urlencoded form body
// and session cookies from an earlier response.
func (e *testEnv) do(t *testing.T, method, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

// login authenticates through the real handler and returns the session cookies.
func (e *testEnv) login(t *testing.T, username, password string) []*http.Cookie {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/login", url.Values{
		"username": {username},
		"password": {password},
	}, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Result().Header.Get("Location"))
	return rec.Result().Cookies()
}

// multipartForm builds a multipart body with text fields and an optional image.
func multipartForm(t *testing.T, fields map[string]string, filename string, fileContent []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = fw.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func (e *testEnv) doMultipart(t *testing.T, target string, body io.Reader, contentType string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", contentType)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}
