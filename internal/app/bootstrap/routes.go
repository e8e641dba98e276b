// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	authfeature "github.com/drafthub/drafthub/internal/app/features/authapi"
	contentsfeature "github.com/drafthub/drafthub/internal/app/features/contents"
	healthfeature "github.com/drafthub/drafthub/internal/app/features/health"
	projectsfeature "github.com/drafthub/drafthub/internal/app/features/projects"
	versionsfeature "github.com/drafthub/drafthub/internal/app/features/versions"
	userstore "github.com/drafthub/drafthub/internal/app/store/users"
	"github.com/drafthub/drafthub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// DraftHub initializes the token manager, builds the upload storage backend,
// and mounts feature routers for auth, projects, contents, and versions.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the token manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	mgr, err := auth.NewManager(appCfg.TokenSecret, appCfg.AccessTokenTTL, appCfg.RefreshTokenTTL, secure, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the UserFetcher so LoadTokenUser fetches fresh user data on each
	// request. This ensures role changes and profile updates take effect
	// immediately, not at next sign-in.
	mgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	// Build the storage backend for version file uploads.
	storeCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	files, err := buildStorage(storeCtx, appCfg)
	if err != nil {
		logger.Error("storage init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Global auth middleware: loads the token user into context if signed in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(mgr.LoadTokenUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Uploaded version files, served from disk when local storage is in use.
	// The S3 backend hands out presigned URLs instead, so nothing to mount.
	if appCfg.StorageType == "local" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	// Authentication and account management
	authHandler := authfeature.NewHandler(deps.MongoDatabase, mgr, logger)
	r.Mount("/auth", authfeature.Routes(authHandler))

	// Versions: mounted both standalone and nested under contents.
	versionsHandler := versionsfeature.NewHandler(deps.MongoDatabase, files, logger)
	r.Mount("/versions", versionsfeature.Routes(versionsHandler))

	// Contents: mounted both standalone (with nested versions) and under projects.
	contentsHandler := contentsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/contents", contentsfeature.Routes(contentsHandler, versionsfeature.ContentRoutes(versionsHandler)))

	// Projects, with project-scoped content listing and creation nested inside.
	projectsHandler := projectsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/projects", projectsfeature.Routes(projectsHandler, contentsfeature.ProjectRoutes(contentsHandler)))

	return r, nil
}
