// internal/app/features/versions/approve.go
package versions

import (
	"context"
	"net/http"

	"github.com/drafthub/drafthub/internal/app/policy/access"
	"github.com/drafthub/drafthub/internal/app/system/apperr"
	"github.com/drafthub/drafthub/internal/app/system/authz"
	"github.com/drafthub/drafthub/internal/app/system/httpapi"
	"github.com/drafthub/drafthub/internal/app/system/timeouts"
	"github.com/drafthub/drafthub/internal/app/system/txn"
	"go.uber.org/zap"
)

// HandleApprove marks a version as the approved one for its content. Owner
// only. In one transaction: the version's reference moves to the front of
// the content's list, the approved flag is cleared on every version of the
// content, then set on the target. Afterwards exactly one version is
// approved and it sits at index 0. Approving an already-approved version
// reasserts that state and is a no-op.
//
// Route: POST /versions/{versionID}/approve
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	version, ok := h.loadVersion(ctx, w, r)
	if !ok {
		return
	}
	projectID, ok := h.projectFor(ctx, w, r, version)
	if !ok {
		return
	}

	role := authz.ProjectRole(r, projectID)
	if err := access.Check(role, access.Version, access.Approve); err != nil {
		h.Errs.WriteError(w, r, err)
		return
	}

	err := txn.Run(ctx, h.Versions.Client(), h.Log, func(ctx context.Context) error {
		if err := h.Contents.MoveVersionToFront(ctx, version.ContentID, version.ID); err != nil {
			return err
		}
		if err := h.Versions.ClearApproved(ctx, version.ContentID); err != nil {
			return err
		}
		return h.Versions.SetApproved(ctx, version.ID)
	})
	if err != nil {
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not approve version", err))
		return
	}

	h.Log.Info("version approved",
		zap.String("version_id", version.ID.Hex()),
		zap.String("content_id", version.ContentID.Hex()))

	httpapi.Respond(w, http.StatusOK, nil, "version approved")
}
