// internal/app/features/projects/handler.go
package projects

import (
	projectstore "github.com/drafthub/drafthub/internal/app/store/projects"
	userstore "github.com/drafthub/drafthub/internal/app/store/users"
	"github.com/drafthub/drafthub/internal/app/system/httpapi"
	"github.com/drafthub/drafthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Projects.
type Handler struct {
	Projects *projectstore.Store
	Users    *userstore.Store
	Errs     *httpapi.ErrorWriter
	Log      *zap.Logger
}

// NewHandler constructs a Projects handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Projects: projectstore.New(db),
		Users:    userstore.New(db),
		Errs:     httpapi.NewErrorWriter(logger),
		Log:      logger,
	}
}

// memberResponse is one entry of a project's member list.
type memberResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// projectResponse is the JSON shape for a single project.
type projectResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	OwnerID     string           `json:"owner_id"`
	Members     []memberResponse `json:"members"`
	IsReleased  bool             `json:"is_released"`
}

func toProjectResponse(p *models.Project) projectResponse {
	members := make([]memberResponse, 0, len(p.Members))
	for _, m := range p.Members {
		members = append(members, memberResponse{UserID: m.UserID.Hex(), Role: m.Role})
	}
	return projectResponse{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID.Hex(),
		Members:     members,
		IsReleased:  p.IsReleased,
	}
}
