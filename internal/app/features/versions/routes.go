// internal/app/features/versions/routes.go
package versions

import (
	"github.com/drafthub/drafthub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the version-by-ID endpoints under the base path (typically
// "/versions" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(auth.RequireSignedIn)

	r.Get("/{versionID}", h.ServeView)
	r.Patch("/{versionID}", h.HandleUpdate)
	r.Delete("/{versionID}", h.HandleDelete)
	r.Post("/{versionID}/approve", h.HandleApprove)

	return r
}

// ContentRoutes mounts the content-scoped version endpoints (typically
// "/contents/{contentID}/versions" from bootstrap).
func ContentRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)

	return r
}
