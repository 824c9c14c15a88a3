package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/qazasd2518995/furhub/internal/auth"
	"github.com/qazasd2518995/furhub/internal/models"
	"github.com/qazasd2518995/furhub/internal/store"
)

type AuthHandler struct {
	Store        *store.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
}

func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	h.Templates.Render(w, http.StatusOK, "register.html", data)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)

	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")

	fail := func(msg string) {
		redirectWithFlash(w, r, session, FlashMessage{Type: "error", Message: msg}, "/register")
	}

	if username == "" || email == "" || password == "" {
		fail("Please fill in all fields.")
		return
	}
	if password != confirm {
		fail("Passwords do not match.")
		return
	}
	if len(password) < 6 {
		fail("Password must be at least 6 characters.")
		return
	}

	if _, err := h.Store.GetUserByUsername(username); err == nil {
		fail("Username already taken.")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		serverError(h.Templates, w, "Failed to check username", err)
		return
	}
	if _, err := h.Store.GetUserByEmail(email); err == nil {
		fail("Email already registered.")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		serverError(h.Templates, w, "Failed to check email", err)
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		serverError(h.Templates, w, "Failed to hash password", err)
		return
	}

	user := &models.User{Username: username, Email: email, PasswordHash: hash}
	if err := h.Store.CreateUser(user); err != nil {
		serverError(h.Templates, w, "Failed to create user", err)
		return
	}

	redirectWithFlash(w, r, session,
		FlashMessage{Type: "success", Message: "Registration successful! Please log in."}, "/login")
}

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	h.Templates.Render(w, http.StatusOK, "login.html", data)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	user, err := h.Store.GetUserByUsername(username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		serverError(h.Templates, w, "Failed to look up user", err)
		return
	}

	// One message for both unknown user and wrong password, so the form
	// cannot be used to enumerate accounts.
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		redirectWithFlash(w, r, session,
			FlashMessage{Type: "error", Message: "Invalid username or password."}, "/login")
		return
	}

	session.Values["user_id"] = user.ID
	session.Values["username"] = user.Username
	session.Values["is_admin"] = user.IsAdmin

	welcome := "Welcome back, " + user.Username + "!"
	if user.IsAdmin {
		welcome = "Welcome back, administrator " + user.Username + "!"
	}
	session.AddFlash(FlashMessage{Type: "success", Message: welcome})

	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
		serverError(h.Templates, w, "Failed to save session", err)
		return
	}

	slog.Info("Login successful", "user_id", user.ID, "is_admin", user.IsAdmin)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout drops every session value, whatever state the session was in.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	for key := range session.Values {
		delete(session.Values, key)
	}
	redirectWithFlash(w, r, session,
		FlashMessage{Type: "success", Message: "Logged out successfully."}, "/")
}
