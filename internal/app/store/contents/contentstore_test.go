package contentstore_test

import (
	"testing"

	contentstore "github.com/drafthub/drafthub/internal/app/store/contents"
	"github.com/drafthub/drafthub/internal/domain/models"
	"github.com/drafthub/drafthub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	projectID := primitive.NewObjectID()
	created, err := store.Create(ctx, models.Content{
		ProjectID: projectID,
		Type:      "document",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.ProjectID != projectID {
		t.Errorf("ProjectID: got %v, want %v", created.ProjectID, projectID)
	}
	if created.Versions == nil {
		t.Error("expected Versions to be initialized")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_ListByProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	projectID := primitive.NewObjectID()
	otherProjectID := primitive.NewObjectID()

	first, err := store.Create(ctx, models.Content{ProjectID: projectID, Type: "document"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := store.Create(ctx, models.Content{ProjectID: projectID, Type: "image"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Content{ProjectID: otherProjectID, Type: "video"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	listed, err := store.ListByProject(ctx, projectID)
	if err != nil {
		t.Fatalf("ListByProject failed: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(listed))
	}

	// Oldest first
	if listed[0].ID != first.ID {
		t.Errorf("first listed: got %v, want %v", listed[0].ID, first.ID)
	}
	if listed[1].ID != second.ID {
		t.Errorf("second listed: got %v, want %v", listed[1].ID, second.ID)
	}
}

func TestStore_UpdateType_Overwrites(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Content{
		ProjectID: primitive.NewObjectID(),
		Type:      "document",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// An empty type overwrites the prior value; there is no omitted-field
	// fallback on content updates.
	if err := store.UpdateType(ctx, created.ID, ""); err != nil {
		t.Fatalf("UpdateType failed: %v", err)
	}

	found, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.Type != "" {
		t.Errorf("Type: got %q, want empty", found.Type)
	}
}

func TestStore_AppendAndRemoveVersion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Content{
		ProjectID: primitive.NewObjectID(),
		Type:      "document",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	v1 := primitive.NewObjectID()
	v2 := primitive.NewObjectID()

	if err := store.AppendVersion(ctx, created.ID, v1); err != nil {
		t.Fatalf("AppendVersion failed: %v", err)
	}
	if err := store.AppendVersion(ctx, created.ID, v2); err != nil {
		t.Fatalf("AppendVersion failed: %v", err)
	}

	found, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(found.Versions) != 2 || found.Versions[0] != v1 || found.Versions[1] != v2 {
		t.Fatalf("versions: got %v, want [%v %v]", found.Versions, v1, v2)
	}

	if err := store.RemoveVersion(ctx, created.ID, v1); err != nil {
		t.Fatalf("RemoveVersion failed: %v", err)
	}

	found, err = store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(found.Versions) != 1 || found.Versions[0] != v2 {
		t.Fatalf("versions after remove: got %v, want [%v]", found.Versions, v2)
	}

	// Removing an absent reference is a no-op, not an error.
	if err := store.RemoveVersion(ctx, created.ID, primitive.NewObjectID()); err != nil {
		t.Errorf("RemoveVersion of absent ref: %v", err)
	}
}

func TestStore_MoveVersionToFront(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Content{
		ProjectID: primitive.NewObjectID(),
		Type:      "document",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	v1 := primitive.NewObjectID()
	v2 := primitive.NewObjectID()
	v3 := primitive.NewObjectID()
	for _, v := range []primitive.ObjectID{v1, v2, v3} {
		if err := store.AppendVersion(ctx, created.ID, v); err != nil {
			t.Fatalf("AppendVersion failed: %v", err)
		}
	}

	if err := store.MoveVersionToFront(ctx, created.ID, v3); err != nil {
		t.Fatalf("MoveVersionToFront failed: %v", err)
	}

	found, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	want := []primitive.ObjectID{v3, v1, v2}
	if len(found.Versions) != 3 {
		t.Fatalf("versions: got %v, want %v", found.Versions, want)
	}
	for i := range want {
		if found.Versions[i] != want[i] {
			t.Fatalf("versions: got %v, want %v", found.Versions, want)
		}
	}

	// Moving the head again keeps the order and does not duplicate the ref.
	if err := store.MoveVersionToFront(ctx, created.ID, v3); err != nil {
		t.Fatalf("MoveVersionToFront (repeat) failed: %v", err)
	}

	found, err = store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(found.Versions) != 3 || found.Versions[0] != v3 {
		t.Fatalf("versions after repeat: got %v, want %v", found.Versions, want)
	}
}

func TestStore_Delete_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Delete(ctx, primitive.NewObjectID()); err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}
