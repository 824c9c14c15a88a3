package handlers

import (
	"encoding/gob"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

// sessionName is the single cookie session carrying auth state and flashes.
const sessionName = "furhub-session"

// Register types for gob encoding (used by sessions)
func init() {
	gob.Register(FlashMessage{})
}

// FlashMessage is a one-shot notice shown on the next rendered page.
type FlashMessage struct {
	Type    string // "error" or "success"
	Message string
}

// GetFlash consumes the pending flash messages from the session.
func GetFlash(session *sessions.Session) []FlashMessage {
	flashes := session.Flashes()
	var messages []FlashMessage
	for _, f := range flashes {
		if fm, ok := f.(FlashMessage); ok {
			messages = append(messages, fm)
		}
	}
	return messages
}

// redirectWithFlash queues a notice and sends the browser elsewhere. Used for
// every validation and authorization failure.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, session *sessions.Session, msg FlashMessage, target string) {
	session.AddFlash(msg)
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// LoggingMiddleware logs the details of each HTTP request
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		// Wrap ResponseWriter to capture status code
		ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(ww, r)
		slog.Info("HTTP request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.statusCode,
			"duration", time.Since(start),
			"ip", r.RemoteAddr,
		)
	})
}

// Custom ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// SecurityHeadersMiddleware adds standard security headers
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; script-src 'self'")
		next.ServeHTTP(w, r)
	})
}

// Guard holds the session store the auth checks read from.
type Guard struct {
	SessionStore *sessions.CookieStore
}

// RequireLogin redirects anonymous visitors to the login page.
func (g *Guard) RequireLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := g.SessionStore.Get(r, sessionName)
		if _, ok := session.Values["user_id"].(int); !ok {
			redirectWithFlash(w, r, session, FlashMessage{Type: "error", Message: "Please log in first."}, "/login")
			return
		}
		next(w, r)
	}
}

// RequireAdmin additionally checks the admin flag recorded at login time and
// sends non-admins back to the home page.
func (g *Guard) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return g.RequireLogin(func(w http.ResponseWriter, r *http.Request) {
		session, _ := g.SessionStore.Get(r, sessionName)
		if isAdmin, ok := session.Values["is_admin"].(bool); !ok || !isAdmin {
			redirectWithFlash(w, r, session, FlashMessage{Type: "error", Message: "You do not have permission to do that."}, "/")
			return
		}
		next(w, r)
	})
}
