// internal/app/features/versions/handler.go
package versions

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/storage"
	contentstore "github.com/drafthub/drafthub/internal/app/store/contents"
	versionstore "github.com/drafthub/drafthub/internal/app/store/versions"
	"github.com/drafthub/drafthub/internal/app/system/apperr"
	"github.com/drafthub/drafthub/internal/app/system/httpapi"
	"github.com/drafthub/drafthub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// maxUploadBytes caps multipart version uploads.
const maxUploadBytes = 32 << 20 // 32 MB

// Handler is the feature-level entry point for Versions.
type Handler struct {
	Versions *versionstore.Store
	Contents *contentstore.Store
	Files    storage.Store
	Errs     *httpapi.ErrorWriter
	Log      *zap.Logger
}

// NewHandler constructs a Versions handler bound to a DB, file store, and logger.
func NewHandler(db *mongo.Database, files storage.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Versions: versionstore.New(db),
		Contents: contentstore.New(db),
		Files:    files,
		Errs:     httpapi.NewErrorWriter(logger),
		Log:      logger,
	}
}

// versionResponse is the JSON shape for a version.
type versionResponse struct {
	ID         string `json:"id"`
	ContentID  string `json:"content_id"`
	UploadedBy string `json:"uploaded_by"`
	FilePath   string `json:"file_path"`
	Approved   bool   `json:"approved"`
}

func toVersionResponse(v *models.Version) versionResponse {
	return versionResponse{
		ID:         v.ID.Hex(),
		ContentID:  v.ContentID.Hex(),
		UploadedBy: v.UploadedBy.Hex(),
		FilePath:   v.FilePath,
		Approved:   v.Approved,
	}
}

// loadVersion fetches the version named by the {versionID} URL parameter,
// writing the appropriate error envelope when it cannot.
func (h *Handler) loadVersion(ctx context.Context, w http.ResponseWriter, r *http.Request) (*models.Version, bool) {
	versionID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "versionID"))
	if err != nil {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "bad version id"))
		return nil, false
	}

	version, err := h.Versions.GetByID(ctx, versionID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Errs.WriteError(w, r, apperr.New(apperr.NotFound, "version not found"))
			return nil, false
		}
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not load version", err))
		return nil, false
	}
	return version, true
}

// projectFor resolves the owning project of a version via its content.
func (h *Handler) projectFor(ctx context.Context, w http.ResponseWriter, r *http.Request, v *models.Version) (primitive.ObjectID, bool) {
	content, err := h.Contents.GetByID(ctx, v.ContentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Errs.WriteError(w, r, apperr.New(apperr.NotFound, "content not found"))
			return primitive.NilObjectID, false
		}
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not load content", err))
		return primitive.NilObjectID, false
	}
	return content.ProjectID, true
}
