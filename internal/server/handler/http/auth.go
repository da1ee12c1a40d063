// Package http provides the HTTP handlers for authentication, interaction
// cycles, statement upload, and exports.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/optifin/optifin/internal/auth"
	"github.com/optifin/optifin/internal/credstore"
	"github.com/optifin/optifin/internal/middleware"
	"github.com/optifin/optifin/internal/models"
)

// AuthService defines the credential-store operations required by the
// HTTP handlers.
type AuthService interface {
	// Register creates a new user; credstore.ErrDuplicateUsername on conflict.
	Register(username, password string) error
	// Verify reports whether the password matches the stored credential.
	Verify(username, password string) bool
	// Profile returns the stored profile and whether the user exists.
	Profile(username string) (models.Profile, bool)
}

// AuthHandler handles HTTP requests for registration, login, and logout.
type AuthHandler struct {
	// AuthService performs the underlying credential operations.
	AuthService AuthService
	// Secret signs the auth cookie tokens.
	Secret []byte
	// TokenTTL is the validity window of issued tokens.
	TokenTTL time.Duration
}

// CredentialsRequest represents the JSON payload for registration and login.
type CredentialsRequest struct {
	// Username is the login name; case-sensitive.
	Username string `json:"username"`
	// Password is the plaintext password to hash or verify.
	Password string `json:"password"`
}

// consentAccepted reports whether the request's session has passed the
// consent gate. The gate covers the dedicated auth endpoints too: no
// account is created or signed in before consent.
func consentAccepted(r *http.Request) bool {
	state := middleware.StateFromContext(r.Context())
	if state == nil {
		return false
	}
	state.Lock()
	defer state.Unlock()
	return state.ConsentAccepted
}

// Register handles user registration requests. It expects a JSON body with
// non-empty "username" and "password" fields. Duplicate usernames yield
// 409 Conflict. Requires the session to have accepted consent.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if !consentAccepted(r) {
		http.Error(w, "consent required", http.StatusForbidden)
		return
	}

	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.AuthService.Register(req.Username, req.Password); err != nil {
		if errors.Is(err, credstore.ErrDuplicateUsername) {
			http.Error(w, "username already exists", http.StatusConflict)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"user":   req.Username,
	})
}

// Login verifies the submitted credentials, loads the stored profile into
// the session, and issues the auth cookie. Failed verification yields
// 401 Unauthorized, never an internal error. Requires the session to have
// accepted consent.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !consentAccepted(r) {
		http.Error(w, "consent required", http.StatusForbidden)
		return
	}

	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if !h.AuthService.Verify(req.Username, req.Password) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	if state := middleware.StateFromContext(r.Context()); state != nil {
		state.Lock()
		state.LoggedIn = true
		state.Username = req.Username
		if profile, ok := h.AuthService.Profile(req.Username); ok {
			state.Profile = profile
		}
		state.DraftGoals = nil
		state.CurrentPage = models.PageSegmentHub
		state.Unlock()
	}

	token, err := auth.GenerateToken(req.Username, h.Secret, h.TokenTTL)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, authCookie(token, int(h.TokenTTL.Seconds())))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"user":   req.Username,
	})
}

// Logout clears the auth cookie and resets the session's authentication.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if state := middleware.StateFromContext(r.Context()); state != nil {
		state.Lock()
		state.ResetAuth()
		state.CurrentPage = models.PageLogin
		state.Unlock()
	}
	http.SetCookie(w, authCookie("", -1))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// authCookie builds the auth cookie with the given value and max age.
func authCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.AuthCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
