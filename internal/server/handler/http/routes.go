package http

import (
	"net/http"

	"github.com/optifin/optifin/internal/middleware"
	"github.com/optifin/optifin/internal/session"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns the HTTP handler serving the OptiFin
// API. Every request carries a session; the auth middleware syncs the
// login state from the auth cookie before any handler runs.
//
// Routes:
//
//	POST /api/register         → authHandler.Register
//	POST /api/login            → authHandler.Login
//	POST /api/logout           → authHandler.Logout
//	POST /api/interact         → interactHandler.Interact (one cycle)
//	GET  /api/view             → interactHandler.View
//	POST /api/upload           → uploadHandler.Upload (multipart CSV)
//	GET  /api/export/dashboard → exportHandler.Dashboard
//
// Middleware chain (applied in order):
//  1. WithRequestLogging(logger) — logs each request
//  2. WithSession(sessions)      — resolves or creates the session
//  3. WithAuth(secret)           — syncs login state from the auth cookie
func NewRouter(
	authHandler *AuthHandler,
	interactHandler *InteractHandler,
	uploadHandler *UploadHandler,
	exportHandler *ExportHandler,
	sessions *session.Manager,
	secret []byte,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Resolve the session before anything touches state
	r.Use(middleware.WithSession(sessions))
	// Keep the session's login state aligned with the auth cookie,
	// reloading the stored profile when a login is restored
	r.Use(middleware.WithAuth(secret, authHandler.AuthService))

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		// JSON endpoints
		r.Group(func(r chi.Router) {
			r.Use(chiMiddleware.AllowContentType("application/json"))
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Post("/interact", interactHandler.Interact)
		})

		r.Get("/view", interactHandler.View)
		r.Post("/upload", uploadHandler.Upload)
		r.Get("/export/dashboard", exportHandler.Dashboard)
	})

	return r
}
