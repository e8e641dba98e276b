// internal/app/features/projects/members.go
package projects

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/drafthub/drafthub/internal/app/policy/access"
	"github.com/drafthub/drafthub/internal/app/system/apperr"
	"github.com/drafthub/drafthub/internal/app/system/authz"
	"github.com/drafthub/drafthub/internal/app/system/httpapi"
	"github.com/drafthub/drafthub/internal/app/system/normalize"
	"github.com/drafthub/drafthub/internal/app/system/timeouts"
	"github.com/drafthub/drafthub/internal/app/system/txn"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type approveMemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// HandleApproveMember grants or changes a user's role on a project. Owner
// only; the grantable roles are editor and member (ownership is set only at
// project creation). Writing the same user again overwrites the prior role,
// so the endpoint covers promotion and demotion alike.
//
// The role lands in two places: the target user's role registry (the
// authoritative copy consulted by the guard) and the project's embedded
// member list (denormalized for listings). Both writes run in one
// transaction.
//
// Route: POST /projects/{projectID}/members
func (h *Handler) HandleApproveMember(w http.ResponseWriter, r *http.Request) {
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectID"))
	if err != nil {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "bad project id"))
		return
	}

	// The permission check comes before any target lookup: a non-owner is
	// denied even when the target user or project does not exist.
	role := authz.ProjectRole(r, projectID)
	if err := access.Check(role, access.Project, access.ApproveUser); err != nil {
		h.Errs.WriteError(w, r, err)
		return
	}

	var req approveMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	req.Role = normalize.Role(req.Role)
	if !access.Assignable(req.Role) {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "role must be editor or member"))
		return
	}
	targetID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "bad user id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// Both target documents must exist before the dual write.
	if _, err := h.Projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Errs.WriteError(w, r, apperr.New(apperr.NotFound, "project not found"))
			return
		}
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not load project", err))
		return
	}
	if _, err := h.Users.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Errs.WriteError(w, r, apperr.New(apperr.NotFound, "user not found"))
			return
		}
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not load user", err))
		return
	}

	err = txn.Run(ctx, h.Projects.Client(), h.Log, func(ctx context.Context) error {
		if err := h.Users.SetProjectRole(ctx, targetID, projectID, req.Role); err != nil {
			return err
		}
		return h.Projects.UpsertMember(ctx, projectID, targetID, req.Role)
	})
	if err != nil {
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not assign role", err))
		return
	}

	h.Log.Info("project role assigned",
		zap.String("project_id", projectID.Hex()),
		zap.String("user_id", targetID.Hex()),
		zap.String("role", req.Role))

	httpapi.Respond(w, http.StatusOK, memberResponse{UserID: targetID.Hex(), Role: req.Role}, "role assigned")
}

// HandleRemoveMember takes a user's role on a project away. Owner only; the
// owner cannot be removed. The erase mirrors the dual write of
// HandleApproveMember: the target's registry entry is unset and the embedded
// member list entry is pulled in one transaction. Removing a user who holds
// no role is a no-op.
//
// Route: DELETE /projects/{projectID}/members/{userID}
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectID"))
	if err != nil {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "bad project id"))
		return
	}
	targetID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "bad user id"))
		return
	}

	role := authz.ProjectRole(r, projectID)
	if err := access.Check(role, access.Project, access.RemoveUser); err != nil {
		h.Errs.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	project, err := h.Projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Errs.WriteError(w, r, apperr.New(apperr.NotFound, "project not found"))
			return
		}
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not load project", err))
		return
	}
	if project.OwnerID == targetID {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "the project owner cannot be removed"))
		return
	}

	err = txn.Run(ctx, h.Projects.Client(), h.Log, func(ctx context.Context) error {
		if err := h.Users.UnsetProjectRole(ctx, targetID, projectID); err != nil {
			return err
		}
		return h.Projects.RemoveMember(ctx, projectID, targetID)
	})
	if err != nil {
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not remove member", err))
		return
	}

	h.Log.Info("project member removed",
		zap.String("project_id", projectID.Hex()),
		zap.String("user_id", targetID.Hex()))

	httpapi.Respond(w, http.StatusOK, nil, "member removed")
}
