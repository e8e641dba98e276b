// internal/app/features/contents/routes.go
package contents

import (
	"github.com/drafthub/drafthub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the content-by-ID endpoints under the base path (typically
// "/contents" from bootstrap). versionRoutes is the content-scoped version
// subrouter, mounted under {contentID}/versions.
func Routes(h *Handler, versionRoutes chi.Router) chi.Router {
	r := chi.NewRouter()

	r.Use(auth.RequireSignedIn)

	r.Get("/{contentID}", h.ServeView)
	r.Patch("/{contentID}", h.HandleUpdate)
	r.Delete("/{contentID}", h.HandleDelete)

	r.Mount("/{contentID}/versions", versionRoutes)

	return r
}

// ProjectRoutes mounts the project-scoped content endpoints (typically
// "/projects/{projectID}/contents" from bootstrap).
func ProjectRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)

	return r
}
