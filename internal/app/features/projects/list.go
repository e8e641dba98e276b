// internal/app/features/projects/list.go
package projects

import (
	"context"
	"net/http"

	projectstore "github.com/drafthub/drafthub/internal/app/store/projects"
	"github.com/drafthub/drafthub/internal/app/system/apperr"
	"github.com/drafthub/drafthub/internal/app/system/httpapi"
	"github.com/drafthub/drafthub/internal/app/system/paging"
	"github.com/drafthub/drafthub/internal/app/system/timeouts"
)

// listResponse is the paginated project listing with joined member details.
type listResponse struct {
	Projects      []projectstore.ListedProject `json:"projects"`
	Page          int                          `json:"page"`
	Limit         int                          `json:"limit"`
	TotalPages    int64                        `json:"total_pages"`
	TotalProjects int64                        `json:"total_projects"`
}

// ServeList returns one page of projects with member identities joined from
// the users collection.
//
// Route: GET /projects?page=&limit=
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	page := paging.Parse(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	projects, err := h.Projects.ListWithMembers(ctx, page)
	if err != nil {
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not list projects", err))
		return
	}
	total, err := h.Projects.Count(ctx)
	if err != nil {
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not count projects", err))
		return
	}

	if projects == nil {
		projects = []projectstore.ListedProject{}
	}

	httpapi.Respond(w, http.StatusOK, listResponse{
		Projects:      projects,
		Page:          page.Number,
		Limit:         page.Limit,
		TotalPages:    paging.TotalPages(total, page.Limit),
		TotalProjects: total,
	}, "")
}
