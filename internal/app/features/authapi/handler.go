// internal/app/features/authapi/handler.go
package authapi

import (
	userstore "github.com/drafthub/drafthub/internal/app/store/users"
	"github.com/drafthub/drafthub/internal/app/system/auth"
	"github.com/drafthub/drafthub/internal/app/system/httpapi"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for account and token endpoints.
type Handler struct {
	Users *userstore.Store
	Auth  *auth.Manager
	Errs  *httpapi.ErrorWriter
	Log   *zap.Logger
}

// NewHandler constructs an auth Handler bound to a DB, token manager, and logger.
func NewHandler(db *mongo.Database, mgr *auth.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		Users: userstore.New(db),
		Auth:  mgr,
		Errs:  httpapi.NewErrorWriter(logger),
		Log:   logger,
	}
}

// userResponse is the JSON shape for a user returned by the auth endpoints.
// The password hash and refresh token never leave the server.
type userResponse struct {
	ID           string            `json:"id"`
	FullName     string            `json:"full_name"`
	Email        string            `json:"email"`
	ProjectRoles map[string]string `json:"project_roles,omitempty"`
}
