// internal/app/features/projects/delete.go
package projects

import (
	"context"
	"errors"
	"net/http"

	"github.com/drafthub/drafthub/internal/app/policy/access"
	"github.com/drafthub/drafthub/internal/app/system/apperr"
	"github.com/drafthub/drafthub/internal/app/system/authz"
	"github.com/drafthub/drafthub/internal/app/system/httpapi"
	"github.com/drafthub/drafthub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleDelete removes a project. Owner only. Contents and versions under
// the project are not cascaded; they remain retrievable by ID.
//
// Route: DELETE /projects/{projectID}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectID"))
	if err != nil {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "bad project id"))
		return
	}

	role := authz.ProjectRole(r, projectID)
	if err := access.Check(role, access.Project, access.Delete); err != nil {
		h.Errs.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Projects.Delete(ctx, projectID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Errs.WriteError(w, r, apperr.New(apperr.NotFound, "project not found"))
			return
		}
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not delete project", err))
		return
	}

	h.Log.Info("project deleted", zap.String("project_id", projectID.Hex()))
	httpapi.Respond(w, http.StatusOK, nil, "project deleted")
}
