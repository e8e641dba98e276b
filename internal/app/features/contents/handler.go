// internal/app/features/contents/handler.go
package contents

import (
	"context"
	"errors"
	"net/http"

	contentstore "github.com/drafthub/drafthub/internal/app/store/contents"
	"github.com/drafthub/drafthub/internal/app/system/apperr"
	"github.com/drafthub/drafthub/internal/app/system/httpapi"
	"github.com/drafthub/drafthub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Contents.
type Handler struct {
	Contents *contentstore.Store
	Errs     *httpapi.ErrorWriter
	Log      *zap.Logger
}

// NewHandler constructs a Contents handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Contents: contentstore.New(db),
		Errs:     httpapi.NewErrorWriter(logger),
		Log:      logger,
	}
}

// contentResponse is the JSON shape for a content item. The versions array
// keeps its stored order: the head is the most recently approved version.
type contentResponse struct {
	ID        string   `json:"id"`
	ProjectID string   `json:"project_id"`
	Type      string   `json:"type"`
	Versions  []string `json:"versions"`
}

func toContentResponse(c *models.Content) contentResponse {
	versions := make([]string, 0, len(c.Versions))
	for _, v := range c.Versions {
		versions = append(versions, v.Hex())
	}
	return contentResponse{
		ID:        c.ID.Hex(),
		ProjectID: c.ProjectID.Hex(),
		Type:      c.Type,
		Versions:  versions,
	}
}

// loadContent fetches the content named by the {contentID} URL parameter,
// writing the appropriate error envelope when it cannot.
func (h *Handler) loadContent(ctx context.Context, w http.ResponseWriter, r *http.Request) (*models.Content, bool) {
	contentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "contentID"))
	if err != nil {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "bad content id"))
		return nil, false
	}

	content, err := h.Contents.GetByID(ctx, contentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Errs.WriteError(w, r, apperr.New(apperr.NotFound, "content not found"))
			return nil, false
		}
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not load content", err))
		return nil, false
	}
	return content, true
}
