// internal/app/features/projects/update.go
package projects

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/drafthub/drafthub/internal/app/policy/access"
	projectstore "github.com/drafthub/drafthub/internal/app/store/projects"
	"github.com/drafthub/drafthub/internal/app/system/apperr"
	"github.com/drafthub/drafthub/internal/app/system/authz"
	"github.com/drafthub/drafthub/internal/app/system/htmlsanitize"
	"github.com/drafthub/drafthub/internal/app/system/httpapi"
	"github.com/drafthub/drafthub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// updateProjectRequest uses pointers so omitted fields can be told apart
// from explicit empty values; omitted fields keep their stored values.
type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsReleased  *bool   `json:"is_released"`
}

// HandleUpdate updates a project's mutable fields. Owner only.
//
// Route: PATCH /projects/{projectID}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectID"))
	if err != nil {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "bad project id"))
		return
	}

	role := authz.ProjectRole(r, projectID)
	if err := access.Check(role, access.Project, access.Update); err != nil {
		h.Errs.WriteError(w, r, err)
		return
	}

	var req updateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	if req.Description != nil {
		clean := htmlsanitize.Sanitize(*req.Description)
		req.Description = &clean
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err = h.Projects.Apply(ctx, projectID, projectstore.Update{
		Name:        req.Name,
		Description: req.Description,
		IsReleased:  req.IsReleased,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Errs.WriteError(w, r, apperr.New(apperr.NotFound, "project not found"))
			return
		}
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not update project", err))
		return
	}

	httpapi.Respond(w, http.StatusOK, nil, "project updated")
}
