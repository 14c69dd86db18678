package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/crucial707/loanapp/internal/auth"
	"github.com/crucial707/loanapp/internal/metrics"
	"github.com/crucial707/loanapp/internal/session"
	"github.com/crucial707/loanapp/internal/views"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Gate     *auth.Gate
	Sessions *session.Store
	Logger   *slog.Logger
}

func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, h.Logger, views.Register, nil)
}

// ==========================
// Register
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	in, err := parseCredentials(r)
	if err != nil {
		metrics.IncAuth("register", "error")
		JSONServerError(w, err)
		return
	}

	token, err := h.Gate.Register(r.Context(), in.Username, in.Password)
	switch {
	case errors.Is(err, auth.ErrDuplicateUsername):
		metrics.IncAuth("register", "duplicate")
		renderSnippet(w, h.Logger, views.UsernameExists)
	case err != nil:
		h.Logger.Error("register failed", "username", in.Username, "error", err)
		metrics.IncAuth("register", "error")
		JSONServerError(w, err)
	default:
		metrics.IncAuth("register", "ok")
		http.Redirect(w, r, "/login?token="+url.QueryEscape(token), http.StatusFound)
	}
}

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, h.Logger, views.Login, map[string]any{
		"Registered": r.URL.Query().Get("token") != "",
	})
}

// ==========================
// Login
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	in, err := parseCredentials(r)
	if err != nil {
		metrics.IncAuth("login", "error")
		JSONServerError(w, err)
		return
	}

	token, err := h.Gate.Login(r.Context(), in.Username, in.Password)
	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		metrics.IncAuth("login", "not_found")
		JSONMessage(w, MsgUserNotFound, http.StatusNotFound)
	case errors.Is(err, auth.ErrInvalidCredentials):
		metrics.IncAuth("login", "invalid")
		renderSnippet(w, h.Logger, views.InvalidCredentials)
	case err != nil:
		h.Logger.Error("login failed", "username", in.Username, "error", err)
		metrics.IncAuth("login", "error")
		JSONServerError(w, err)
	default:
		metrics.IncAuth("login", "ok")
		http.Redirect(w, r, "/predict?token="+url.QueryEscape(token), http.StatusFound)
	}
}

// ==========================
// Logout
// ==========================

// Logout drops whatever session the browser carries and always succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if id := session.ID(r); id != "" {
		h.Sessions.Pop(id, "id")
		h.Sessions.Clear(id)
		session.Expire(w)
	}
	JSONMessage(w, MsgLogoutSuccessful, http.StatusOK)
}

// LogoutRedirect answers non-POST requests to /logout.
func (h *AuthHandler) LogoutRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusFound)
}
