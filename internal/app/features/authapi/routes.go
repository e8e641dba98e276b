// internal/app/features/authapi/routes.go
package authapi

import (
	"github.com/drafthub/drafthub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the auth endpoints under the base path (typically "/auth"
// from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Open endpoints
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
	r.Post("/refresh", h.HandleRefresh)

	// Logout works with or without a valid access token; it clears cookies
	// either way.
	r.Post("/logout", h.HandleLogout)

	// Signed-in endpoints
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/me", h.ServeMe)
		pr.Patch("/me", h.HandleUpdateAccount)
		pr.Post("/change-password", h.HandleChangePassword)
	})

	return r
}
