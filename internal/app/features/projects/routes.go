// internal/app/features/projects/routes.go
package projects

import (
	"github.com/drafthub/drafthub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Project routes under the base path (typically
// "/projects" from bootstrap). Per-project role checks happen inside the
// handlers; the router only requires a signed-in user. contentRoutes is the
// project-scoped content subrouter, mounted under {projectID}/contents so
// the param names line up.
func Routes(h *Handler, contentRoutes chi.Router) chi.Router {
	r := chi.NewRouter()

	r.Use(auth.RequireSignedIn)

	r.Post("/", h.HandleCreate)
	r.Get("/", h.ServeList)
	r.Get("/{projectID}", h.ServeView)
	r.Patch("/{projectID}", h.HandleUpdate)
	r.Delete("/{projectID}", h.HandleDelete)
	r.Post("/{projectID}/members", h.HandleApproveMember)
	r.Delete("/{projectID}/members/{userID}", h.HandleRemoveMember)

	r.Mount("/{projectID}/contents", contentRoutes)

	return r
}
