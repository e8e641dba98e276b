package contents_test

import (
	"net/http"
	"testing"

	"github.com/drafthub/drafthub/internal/app/features/contents"
	contentstore "github.com/drafthub/drafthub/internal/app/store/contents"
	"github.com/drafthub/drafthub/internal/domain/models"
	"github.com/drafthub/drafthub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*contents.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return contents.NewHandler(db, zap.NewNop()), db
}

func TestHandleCreate(t *testing.T) {
	handler, db := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@example.com", nil)
	project := fixtures.CreateProject(ctx, "Content Home", owner.ID)

	cases := []struct {
		name   string
		role   string
		status int
	}{
		{"owner", models.RoleOwner, http.StatusCreated},
		{"editor", models.RoleEditor, http.StatusCreated},
		{"member", models.RoleMember, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user := testutil.NewTestUser("Caller", "caller@example.com").WithRole(project.ID, tc.role)
			req := testutil.NewJSONRequest(t, "POST", "/projects/"+project.ID.Hex()+"/contents", map[string]string{
				"type": "document",
			})
			req = testutil.WithUser(req, user)
			req = testutil.WithChiURLParam(req, "projectID", project.ID.Hex())
			rec := testutil.NewRecorder()
			handler.HandleCreate(rec, req)
			rec.AssertStatus(t, tc.status)
		})
	}
}

func TestHandleCreate_RequiresType(t *testing.T) {
	handler, db := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@example.com", nil)
	project := fixtures.CreateProject(ctx, "Typed", owner.ID)

	user := testutil.NewTestUser("Editor", "editor@example.com").WithRole(project.ID, models.RoleEditor)
	req := testutil.NewJSONRequest(t, "POST", "/projects/"+project.ID.Hex()+"/contents", map[string]string{
		"type": "   ",
	})
	req = testutil.WithUser(req, user)
	req = testutil.WithChiURLParam(req, "projectID", project.ID.Hex())
	rec := testutil.NewRecorder()
	handler.HandleCreate(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestServeList(t *testing.T) {
	handler, db := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@example.com", nil)
	project := fixtures.CreateProject(ctx, "Listing", owner.ID)
	fixtures.CreateContent(ctx, project.ID, "document")
	fixtures.CreateContent(ctx, project.ID, "image")

	// Members may list.
	user := testutil.NewTestUser("Member", "member@example.com").WithRole(project.ID, models.RoleMember)
	req := testutil.NewAuthenticatedRequest("GET", "/projects/"+project.ID.Hex()+"/contents", user)
	req = testutil.WithChiURLParam(req, "projectID", project.ID.Hex())
	rec := testutil.NewRecorder()
	handler.ServeList(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Data []struct {
			Type string `json:"type"`
		} `json:"data"`
	}
	rec.DecodeJSON(t, &resp)
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(resp.Data))
	}

	// Non-members may not.
	outsider := testutil.NewTestUser("Outsider", "outsider@example.com")
	req = testutil.NewAuthenticatedRequest("GET", "/projects/"+project.ID.Hex()+"/contents", outsider)
	req = testutil.WithChiURLParam(req, "projectID", project.ID.Hex())
	rec = testutil.NewRecorder()
	handler.ServeList(rec, req)
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestServeView_RoleViaOwningProject(t *testing.T) {
	handler, db := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@example.com", nil)
	project := fixtures.CreateProject(ctx, "Viewing", owner.ID)
	content := fixtures.CreateContent(ctx, project.ID, "document")

	// The role is resolved through the content's project.
	user := testutil.NewTestUser("Member", "member@example.com").WithRole(project.ID, models.RoleMember)
	req := testutil.NewAuthenticatedRequest("GET", "/contents/"+content.ID.Hex(), user)
	req = testutil.WithChiURLParam(req, "contentID", content.ID.Hex())
	rec := testutil.NewRecorder()
	handler.ServeView(rec, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, content.ID.Hex())

	outsider := testutil.NewTestUser("Outsider", "outsider@example.com")
	req = testutil.NewAuthenticatedRequest("GET", "/contents/"+content.ID.Hex(), outsider)
	req = testutil.WithChiURLParam(req, "contentID", content.ID.Hex())
	rec = testutil.NewRecorder()
	handler.ServeView(rec, req)
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestServeView_NotFound(t *testing.T) {
	handler, _ := newTestHandler(t)

	missing := primitive.NewObjectID().Hex()
	req := testutil.NewAuthenticatedRequest("GET", "/contents/"+missing, testutil.NewTestUser("U", "u@example.com"))
	req = testutil.WithChiURLParam(req, "contentID", missing)
	rec := testutil.NewRecorder()
	handler.ServeView(rec, req)
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestHandleUpdate_OverwritesWithoutFallback(t *testing.T) {
	handler, db := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@example.com", nil)
	project := fixtures.CreateProject(ctx, "Overwrite", owner.ID)
	content := fixtures.CreateContent(ctx, project.ID, "document")

	// PATCH with no type field overwrites the stored value with "".
	user := testutil.TestUser{ID: owner.ID.Hex(), Name: owner.FullName, Email: owner.Email}.WithRole(project.ID, models.RoleOwner)
	req := testutil.NewJSONRequest(t, "PATCH", "/contents/"+content.ID.Hex(), map[string]string{})
	req = testutil.WithUser(req, user)
	req = testutil.WithChiURLParam(req, "contentID", content.ID.Hex())
	rec := testutil.NewRecorder()
	handler.HandleUpdate(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	stored, err := contentstore.New(db).GetByID(ctx, content.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.Type != "" {
		t.Errorf("type: got %q, want empty", stored.Type)
	}
}

func TestHandleUpdate_OwnerOnly(t *testing.T) {
	handler, db := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@example.com", nil)
	project := fixtures.CreateProject(ctx, "Guarded", owner.ID)
	content := fixtures.CreateContent(ctx, project.ID, "document")

	editor := testutil.NewTestUser("Editor", "editor@example.com").WithRole(project.ID, models.RoleEditor)
	req := testutil.NewJSONRequest(t, "PATCH", "/contents/"+content.ID.Hex(), map[string]string{"type": "image"})
	req = testutil.WithUser(req, editor)
	req = testutil.WithChiURLParam(req, "contentID", content.ID.Hex())
	rec := testutil.NewRecorder()
	handler.HandleUpdate(rec, req)
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestHandleDelete_KeepsVersions(t *testing.T) {
	handler, db := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@example.com", nil)
	project := fixtures.CreateProject(ctx, "Doomed", owner.ID)
	content := fixtures.CreateContent(ctx, project.ID, "document")
	version := fixtures.CreateVersion(ctx, content.ID, owner.ID, "versions/v1.pdf")

	user := testutil.TestUser{ID: owner.ID.Hex(), Name: owner.FullName, Email: owner.Email}.WithRole(project.ID, models.RoleOwner)
	req := testutil.NewAuthenticatedRequest("DELETE", "/contents/"+content.ID.Hex(), user)
	req = testutil.WithChiURLParam(req, "contentID", content.ID.Hex())
	rec := testutil.NewRecorder()
	handler.HandleDelete(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	if _, err := contentstore.New(db).GetByID(ctx, content.ID); err != mongo.ErrNoDocuments {
		t.Errorf("expected content gone, got %v", err)
	}

	// The version document survives the content delete.
	var v models.Version
	if err := db.Collection("versions").FindOne(ctx, primitive.M{"_id": version.ID}).Decode(&v); err != nil {
		t.Errorf("version should survive content delete: %v", err)
	}
}

func TestRoutes(t *testing.T) {
	handler, _ := newTestHandler(t)
	if contents.Routes(handler, chi.NewRouter()) == nil {
		t.Fatal("Routes() returned nil")
	}
	if contents.ProjectRoutes(handler) == nil {
		t.Fatal("ProjectRoutes() returned nil")
	}
}
