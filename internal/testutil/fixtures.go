package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/drafthub/drafthub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
// Calls chain: a request that already carries a route context gets the
// parameter added to it, so handlers reading several params work too.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	if rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context); ok {
		rctx.URLParams.Add(key, value)
		return r
	}
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given name and email.
// projectRoles maps project hex IDs to roles; pass nil for none.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email string, projectRoles map[string]string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     fullName,
		FullNameCI:   text.Fold(fullName),
		Email:        email,
		PasswordHash: "$2a$10$testhashtesthashtesthashtesthashtesthashtesthashtesth",
		ProjectRoles: projectRoles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateProject creates a test project owned by the given user, with the
// owner recorded in the members list and in the owner's role registry.
func (f *Fixtures) CreateProject(ctx context.Context, name string, ownerID primitive.ObjectID) models.Project {
	f.t.Helper()

	now := time.Now().UTC()
	project := models.Project{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		Description: "Test project description",
		OwnerID:     ownerID,
		Members: []models.ProjectMember{
			{UserID: ownerID, Role: models.RoleOwner},
		},
		Comments:  []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := f.db.Collection("projects").InsertOne(ctx, project)
	if err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}

	_, err = f.db.Collection("users").UpdateByID(ctx, ownerID,
		primitive.M{"$set": primitive.M{"project_roles." + project.ID.Hex(): models.RoleOwner}})
	if err != nil {
		f.t.Fatalf("failed to set owner role on test user: %v", err)
	}

	return project
}

// AddProjectMember adds a user to a project's member list with the given
// role and records the role in the user's role registry.
func (f *Fixtures) AddProjectMember(ctx context.Context, projectID, userID primitive.ObjectID, role string) {
	f.t.Helper()

	_, err := f.db.Collection("projects").UpdateByID(ctx, projectID,
		primitive.M{"$push": primitive.M{"members": models.ProjectMember{UserID: userID, Role: role}}})
	if err != nil {
		f.t.Fatalf("failed to add test project member: %v", err)
	}

	_, err = f.db.Collection("users").UpdateByID(ctx, userID,
		primitive.M{"$set": primitive.M{"project_roles." + projectID.Hex(): role}})
	if err != nil {
		f.t.Fatalf("failed to set member role on test user: %v", err)
	}
}

// CreateContent creates a test content item in the given project.
func (f *Fixtures) CreateContent(ctx context.Context, projectID primitive.ObjectID, contentType string) models.Content {
	f.t.Helper()

	now := time.Now().UTC()
	content := models.Content{
		ID:        primitive.NewObjectID(),
		ProjectID: projectID,
		Type:      contentType,
		Versions:  []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := f.db.Collection("contents").InsertOne(ctx, content)
	if err != nil {
		f.t.Fatalf("failed to create test content: %v", err)
	}

	return content
}

// CreateVersion creates a test version of a content item and appends its
// reference to the content's version list.
func (f *Fixtures) CreateVersion(ctx context.Context, contentID, uploadedBy primitive.ObjectID, filePath string) models.Version {
	f.t.Helper()

	now := time.Now().UTC()
	version := models.Version{
		ID:         primitive.NewObjectID(),
		ContentID:  contentID,
		UploadedBy: uploadedBy,
		FilePath:   filePath,
		Approved:   false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("versions").InsertOne(ctx, version)
	if err != nil {
		f.t.Fatalf("failed to create test version: %v", err)
	}

	_, err = f.db.Collection("contents").UpdateByID(ctx, contentID,
		primitive.M{"$push": primitive.M{"versions": version.ID}})
	if err != nil {
		f.t.Fatalf("failed to append test version reference: %v", err)
	}

	return version
}
