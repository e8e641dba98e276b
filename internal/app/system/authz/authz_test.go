package authz

import (
	"net/http/httptest"
	"testing"

	"github.com/drafthub/drafthub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserCtx_Anonymous(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)

	name, userID, ok := UserCtx(r)
	if ok {
		t.Error("expected ok=false for anonymous request")
	}
	if name != "" {
		t.Errorf("expected empty name, got %q", name)
	}
	if userID != primitive.NilObjectID {
		t.Errorf("expected NilObjectID, got %v", userID)
	}
}

func TestUserCtx_ValidUser(t *testing.T) {
	id := primitive.NewObjectID()
	r := httptest.NewRequest("GET", "/", nil)
	r = auth.WithTestUser(r, &auth.SessionUser{ID: id.Hex(), Name: "Ada"})

	name, userID, ok := UserCtx(r)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if name != "Ada" {
		t.Errorf("name: got %q, want %q", name, "Ada")
	}
	if userID != id {
		t.Errorf("userID: got %v, want %v", userID, id)
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r = auth.WithTestUser(r, &auth.SessionUser{ID: "not-an-object-id", Name: "Ada"})

	_, _, ok := UserCtx(r)
	if ok {
		t.Error("expected ok=false for malformed user ID")
	}
}

func TestProjectRole(t *testing.T) {
	projectID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()

	r := httptest.NewRequest("GET", "/", nil)
	r = auth.WithTestUser(r, &auth.SessionUser{
		ID:           primitive.NewObjectID().Hex(),
		ProjectRoles: map[string]string{projectID.Hex(): "editor"},
	})

	if got := ProjectRole(r, projectID); got != "editor" {
		t.Errorf("ProjectRole: got %q, want %q", got, "editor")
	}
	if got := ProjectRole(r, otherID); got != "" {
		t.Errorf("ProjectRole for unlisted project: got %q, want empty", got)
	}
}

func TestProjectRole_Anonymous(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if got := ProjectRole(r, primitive.NewObjectID()); got != "" {
		t.Errorf("ProjectRole for anonymous: got %q, want empty", got)
	}
}
