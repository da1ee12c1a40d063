// Package middleware provides HTTP middlewares for session tracking,
// authentication, and logging.
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/optifin/optifin/internal/auth"
	"github.com/optifin/optifin/internal/models"
	"github.com/optifin/optifin/internal/session"
)

type ctxKey string

const stateKey ctxKey = "sessionState"

// SessionCookie names the cookie carrying the session ID.
const SessionCookie = "optifin_sid"

// AuthCookie names the cookie carrying the signed auth token.
const AuthCookie = "optifin_token"

// WithSession is a middleware that resolves the request's session from the
// session cookie, creating a new session (and setting the cookie) when the
// cookie is absent or stale. The session state is stored in the request
// context for handlers downstream.
func WithSession(m *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var state *session.State
			if c, err := r.Cookie(SessionCookie); err == nil {
				if s, ok := m.Get(c.Value); ok {
					state = s
				}
			}
			if state == nil {
				state = m.Create()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    state.ID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			state.Touch(time.Now())

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), state)))
		})
	}
}

// NewContext returns a context carrying the session state, as WithSession
// does for each request.
func NewContext(ctx context.Context, s *session.State) context.Context {
	return context.WithValue(ctx, stateKey, s)
}

// StateFromContext extracts the session state placed by WithSession.
// Returns nil if not found.
func StateFromContext(ctx context.Context) *session.State {
	val := ctx.Value(stateKey)
	if s, ok := val.(*session.State); ok {
		return s
	}
	return nil
}

// ProfileLoader loads stored profiles when a login is restored from the
// auth cookie.
type ProfileLoader interface {
	// Profile returns the stored profile and whether the user exists.
	Profile(username string) (models.Profile, bool)
}

// WithAuth is a middleware that syncs the session's authentication fields
// from the auth cookie each cycle. A valid token asserts the logged-in
// username and reloads the stored profile into the session, exactly as a
// fresh login does; an invalid or expired token logs the session out. An
// absent cookie is not an error.
func WithAuth(secret []byte, profiles ProfileLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := StateFromContext(r.Context())
			if state == nil {
				next.ServeHTTP(w, r)
				return
			}

			if c, err := r.Cookie(AuthCookie); err == nil {
				state.Lock()
				username, err := auth.GetUsernameFromToken(c.Value, secret)
				if err != nil {
					if state.LoggedIn {
						state.ResetAuth()
					}
				} else if !state.LoggedIn || state.Username != username {
					state.LoggedIn = true
					state.Username = username
					if profile, ok := profiles.Profile(username); ok {
						state.Profile = profile
					}
					state.DraftGoals = nil
				}
				state.Unlock()
			}

			next.ServeHTTP(w, r)
		})
	}
}
