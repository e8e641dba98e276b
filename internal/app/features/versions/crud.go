// internal/app/features/versions/crud.go
package versions

import (
	"context"
	"errors"
	"net/http"

	"github.com/drafthub/drafthub/internal/app/policy/access"
	"github.com/drafthub/drafthub/internal/app/system/apperr"
	"github.com/drafthub/drafthub/internal/app/system/authz"
	"github.com/drafthub/drafthub/internal/app/system/httpapi"
	"github.com/drafthub/drafthub/internal/app/system/timeouts"
	"github.com/drafthub/drafthub/internal/app/system/txn"
	"github.com/drafthub/drafthub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleCreate uploads a new version of a content item. Owners and editors
// only. The multipart "file" field is stored first; when it is absent the
// version is created with an empty file path. The version document and the
// reference on the content's versions list are written in one transaction.
//
// Route: POST /contents/{contentID}/versions
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	contentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "contentID"))
	if err != nil {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "bad content id"))
		return
	}

	_, userID, ok := authz.UserCtx(r)
	if !ok {
		h.Errs.WriteError(w, r, apperr.New(apperr.Authentication, "authentication required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	content, err := h.Contents.GetByID(ctx, contentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Errs.WriteError(w, r, apperr.New(apperr.NotFound, "content not found"))
			return
		}
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not load content", err))
		return
	}

	role := authz.ProjectRole(r, content.ProjectID)
	if err := access.Check(role, access.Version, access.Create); err != nil {
		h.Errs.WriteError(w, r, err)
		return
	}

	// Upload before any DB write so a storage failure leaves no mutation.
	filePath, err := h.receiveFile(ctx, r)
	if err != nil {
		h.Errs.WriteError(w, r, err)
		return
	}

	var created models.Version
	err = txn.Run(ctx, h.Versions.Client(), h.Log, func(ctx context.Context) error {
		v, err := h.Versions.Create(ctx, models.Version{
			ContentID:  contentID,
			UploadedBy: userID,
			FilePath:   filePath,
		})
		if err != nil {
			return err
		}
		created = v
		return h.Contents.AppendVersion(ctx, contentID, v.ID)
	})
	if err != nil {
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not create version", err))
		return
	}

	h.Log.Info("version created",
		zap.String("version_id", created.ID.Hex()),
		zap.String("content_id", contentID.Hex()))

	httpapi.Respond(w, http.StatusCreated, toVersionResponse(&created), "version created")
}

// ServeList returns all versions of a content item, newest first. Any
// project role.
//
// Route: GET /contents/{contentID}/versions
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	contentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "contentID"))
	if err != nil {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "bad content id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	content, err := h.Contents.GetByID(ctx, contentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Errs.WriteError(w, r, apperr.New(apperr.NotFound, "content not found"))
			return
		}
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not load content", err))
		return
	}

	role := authz.ProjectRole(r, content.ProjectID)
	if err := access.Check(role, access.Version, access.List); err != nil {
		h.Errs.WriteError(w, r, err)
		return
	}

	items, err := h.Versions.ListByContent(ctx, contentID)
	if err != nil {
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not list versions", err))
		return
	}

	out := make([]versionResponse, 0, len(items))
	for i := range items {
		out = append(out, toVersionResponse(&items[i]))
	}
	httpapi.Respond(w, http.StatusOK, out, "")
}

// ServeView returns a single version. Any project role.
//
// Route: GET /versions/{versionID}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
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
	if err := access.Check(role, access.Version, access.Get); err != nil {
		h.Errs.WriteError(w, r, err)
		return
	}

	httpapi.Respond(w, http.StatusOK, toVersionResponse(version), "")
}

// HandleUpdate replaces a version's file. Owners and editors only. The new
// upload result overwrites file_path unconditionally: a request without a
// file stores an empty path.
//
// Route: PATCH /versions/{versionID}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
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
	if err := access.Check(role, access.Version, access.Update); err != nil {
		h.Errs.WriteError(w, r, err)
		return
	}

	filePath, err := h.receiveFile(ctx, r)
	if err != nil {
		h.Errs.WriteError(w, r, err)
		return
	}

	if err := h.Versions.UpdateFilePath(ctx, version.ID, filePath); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Errs.WriteError(w, r, apperr.New(apperr.NotFound, "version not found"))
			return
		}
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not update version", err))
		return
	}

	httpapi.Respond(w, http.StatusOK, nil, "version updated")
}

// HandleDelete removes a version and pulls its reference from the owning
// content's list. Owner only.
//
// Route: DELETE /versions/{versionID}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
	if err := access.Check(role, access.Version, access.Delete); err != nil {
		h.Errs.WriteError(w, r, err)
		return
	}

	err := txn.Run(ctx, h.Versions.Client(), h.Log, func(ctx context.Context) error {
		if err := h.Contents.RemoveVersion(ctx, version.ContentID, version.ID); err != nil {
			return err
		}
		return h.Versions.Delete(ctx, version.ID)
	})
	if err != nil {
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not delete version", err))
		return
	}

	httpapi.Respond(w, http.StatusOK, nil, "version deleted")
}
