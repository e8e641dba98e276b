// internal/app/features/contents/crud.go
package contents

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/drafthub/drafthub/internal/app/policy/access"
	"github.com/drafthub/drafthub/internal/app/system/apperr"
	"github.com/drafthub/drafthub/internal/app/system/authz"
	"github.com/drafthub/drafthub/internal/app/system/httpapi"
	"github.com/drafthub/drafthub/internal/app/system/timeouts"
	"github.com/drafthub/drafthub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type createContentRequest struct {
	Type string `json:"type"`
}

// HandleCreate adds a content item to a project. Owners and editors only.
//
// Route: POST /projects/{projectID}/contents
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectID"))
	if err != nil {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "bad project id"))
		return
	}

	role := authz.ProjectRole(r, projectID)
	if err := access.Check(role, access.Content, access.Create); err != nil {
		h.Errs.WriteError(w, r, err)
		return
	}

	var req createContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	req.Type = strings.TrimSpace(req.Type)
	if req.Type == "" {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "content type is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	content, err := h.Contents.Create(ctx, models.Content{
		ProjectID: projectID,
		Type:      req.Type,
	})
	if err != nil {
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not create content", err))
		return
	}

	httpapi.Respond(w, http.StatusCreated, toContentResponse(&content), "content created")
}

// ServeList returns all content items of a project. Any project role.
//
// Route: GET /projects/{projectID}/contents
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectID"))
	if err != nil {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "bad project id"))
		return
	}

	role := authz.ProjectRole(r, projectID)
	if err := access.Check(role, access.Content, access.List); err != nil {
		h.Errs.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Contents.ListByProject(ctx, projectID)
	if err != nil {
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not list contents", err))
		return
	}

	out := make([]contentResponse, 0, len(items))
	for i := range items {
		out = append(out, toContentResponse(&items[i]))
	}
	httpapi.Respond(w, http.StatusOK, out, "")
}

// ServeView returns a single content item. Any project role.
//
// Route: GET /contents/{contentID}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	content, ok := h.loadContent(ctx, w, r)
	if !ok {
		return
	}

	role := authz.ProjectRole(r, content.ProjectID)
	if err := access.Check(role, access.Content, access.Get); err != nil {
		h.Errs.WriteError(w, r, err)
		return
	}

	httpapi.Respond(w, http.StatusOK, toContentResponse(content), "")
}

type updateContentRequest struct {
	Type string `json:"type"`
}

// HandleUpdate overwrites a content item's mutable fields. Owner only.
// Unlike project updates there is no omitted-field fallback: the supplied
// value replaces the stored one even when empty.
//
// Route: PATCH /contents/{contentID}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	content, ok := h.loadContent(ctx, w, r)
	if !ok {
		return
	}

	role := authz.ProjectRole(r, content.ProjectID)
	if err := access.Check(role, access.Content, access.Update); err != nil {
		h.Errs.WriteError(w, r, err)
		return
	}

	var req updateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	if err := h.Contents.UpdateType(ctx, content.ID, strings.TrimSpace(req.Type)); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Errs.WriteError(w, r, apperr.New(apperr.NotFound, "content not found"))
			return
		}
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not update content", err))
		return
	}

	httpapi.Respond(w, http.StatusOK, nil, "content updated")
}

// HandleDelete removes a content item. Owner only. Its versions are not
// deleted and stay retrievable by ID.
//
// Route: DELETE /contents/{contentID}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	content, ok := h.loadContent(ctx, w, r)
	if !ok {
		return
	}

	role := authz.ProjectRole(r, content.ProjectID)
	if err := access.Check(role, access.Content, access.Delete); err != nil {
		h.Errs.WriteError(w, r, err)
		return
	}

	if err := h.Contents.Delete(ctx, content.ID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Errs.WriteError(w, r, apperr.New(apperr.NotFound, "content not found"))
			return
		}
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not delete content", err))
		return
	}

	httpapi.Respond(w, http.StatusOK, nil, "content deleted")
}
