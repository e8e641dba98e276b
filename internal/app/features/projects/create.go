// internal/app/features/projects/create.go
package projects

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/drafthub/drafthub/internal/app/system/apperr"
	"github.com/drafthub/drafthub/internal/app/system/authz"
	"github.com/drafthub/drafthub/internal/app/system/htmlsanitize"
	"github.com/drafthub/drafthub/internal/app/system/httpapi"
	"github.com/drafthub/drafthub/internal/app/system/normalize"
	"github.com/drafthub/drafthub/internal/app/system/timeouts"
	"github.com/drafthub/drafthub/internal/app/system/txn"
	"github.com/drafthub/drafthub/internal/domain/models"
	"go.uber.org/zap"
)

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HandleCreate creates a project. Any signed-in user may create one; the
// creator becomes its owner in both the embedded member list and their own
// role registry, written together in one transaction.
//
// Route: POST /projects
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		h.Errs.WriteError(w, r, apperr.New(apperr.Authentication, "authentication required"))
		return
	}

	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	if normalize.Name(req.Name) == "" {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "project name is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var created models.Project
	err := txn.Run(ctx, h.Projects.Client(), h.Log, func(ctx context.Context) error {
		p, err := h.Projects.Create(ctx, models.Project{
			Name:        req.Name,
			Description: htmlsanitize.Sanitize(req.Description),
			OwnerID:     userID,
		})
		if err != nil {
			return err
		}
		created = p
		return h.Users.SetProjectRole(ctx, userID, p.ID, models.RoleOwner)
	})
	if err != nil {
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not create project", err))
		return
	}

	h.Log.Info("project created",
		zap.String("project_id", created.ID.Hex()),
		zap.String("owner_id", userID.Hex()))

	httpapi.Respond(w, http.StatusCreated, toProjectResponse(&created), "project created")
}
