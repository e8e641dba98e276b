package projectstore_test

import (
	"fmt"
	"testing"

	projectstore "github.com/drafthub/drafthub/internal/app/store/projects"
	"github.com/drafthub/drafthub/internal/app/system/paging"
	"github.com/drafthub/drafthub/internal/domain/models"
	"github.com/drafthub/drafthub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ownerID := primitive.NewObjectID()
	created, err := store.Create(ctx, models.Project{
		Name:        "  Launch   Plan  ",
		Description: "Q3 launch",
		OwnerID:     ownerID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Name != "Launch Plan" {
		t.Errorf("Name: got %q, want %q", created.Name, "Launch Plan")
	}
	if created.NameCI == "" {
		t.Error("expected NameCI to be set")
	}

	// The creator is recorded as the sole owner in the member list.
	if len(created.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(created.Members))
	}
	if created.Members[0].UserID != ownerID {
		t.Errorf("member UserID: got %v, want %v", created.Members[0].UserID, ownerID)
	}
	if created.Members[0].Role != models.RoleOwner {
		t.Errorf("member Role: got %q, want %q", created.Members[0].Role, models.RoleOwner)
	}

	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Apply_KeepsOmittedFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Project{
		Name:        "Original Name",
		Description: "Original description",
		OwnerID:     primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Only the name is supplied; description and is_released keep prior values.
	name := "Updated Name"
	if err := store.Apply(ctx, created.ID, projectstore.Update{Name: &name}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	found, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.Name != "Updated Name" {
		t.Errorf("Name: got %q, want %q", found.Name, "Updated Name")
	}
	if found.Description != "Original description" {
		t.Errorf("Description: got %q, want %q", found.Description, "Original description")
	}
	if found.IsReleased {
		t.Error("expected IsReleased to remain false")
	}

	released := true
	if err := store.Apply(ctx, created.ID, projectstore.Update{IsReleased: &released}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	found, err = store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !found.IsReleased {
		t.Error("expected IsReleased to be true")
	}
	if found.Name != "Updated Name" {
		t.Errorf("Name changed unexpectedly: got %q", found.Name)
	}
}

func TestStore_Apply_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	name := "Whatever"
	err := store.Apply(ctx, primitive.NewObjectID(), projectstore.Update{Name: &name})
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Project{
		Name:    "Delete Me",
		OwnerID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := store.GetByID(ctx, created.ID); err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments after delete, got %v", err)
	}

	// Deleting again reports not found.
	if err := store.Delete(ctx, created.ID); err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments on second delete, got %v", err)
	}
}

func TestStore_UpsertMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ownerID := primitive.NewObjectID()
	created, err := store.Create(ctx, models.Project{
		Name:    "Member Project",
		OwnerID: ownerID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// New user: appended to the member list.
	memberID := primitive.NewObjectID()
	if err := store.UpsertMember(ctx, created.ID, memberID, models.RoleMember); err != nil {
		t.Fatalf("UpsertMember failed: %v", err)
	}

	found, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(found.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(found.Members))
	}

	// Existing user: role updated in place, no duplicate entry.
	if err := store.UpsertMember(ctx, created.ID, memberID, models.RoleEditor); err != nil {
		t.Fatalf("UpsertMember (update) failed: %v", err)
	}

	found, err = store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(found.Members) != 2 {
		t.Fatalf("expected 2 members after role change, got %d", len(found.Members))
	}

	var role string
	for _, m := range found.Members {
		if m.UserID == memberID {
			role = m.Role
		}
	}
	if role != models.RoleEditor {
		t.Errorf("member role: got %q, want %q", role, models.RoleEditor)
	}
}

func TestStore_UpsertMember_ProjectNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.UpsertMember(ctx, primitive.NewObjectID(), primitive.NewObjectID(), models.RoleMember)
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestStore_RemoveMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ownerID := primitive.NewObjectID()
	created, err := store.Create(ctx, models.Project{
		Name:    "Shrinking Project",
		OwnerID: ownerID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	memberID := primitive.NewObjectID()
	if err := store.UpsertMember(ctx, created.ID, memberID, models.RoleMember); err != nil {
		t.Fatalf("UpsertMember failed: %v", err)
	}

	if err := store.RemoveMember(ctx, created.ID, memberID); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}

	found, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(found.Members) != 1 || found.Members[0].UserID != ownerID {
		t.Errorf("expected only the owner to remain, got %+v", found.Members)
	}

	// Removing a user who is not listed is a no-op.
	if err := store.RemoveMember(ctx, created.ID, memberID); err != nil {
		t.Errorf("RemoveMember (absent) failed: %v", err)
	}
}

func TestStore_RemoveMember_ProjectNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.RemoveMember(ctx, primitive.NewObjectID(), primitive.NewObjectID())
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestStore_ListWithMembers_Pagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Page Owner", "pageowner@example.com", nil)
	for i := 0; i < 25; i++ {
		if _, err := store.Create(ctx, models.Project{
			Name:    fmt.Sprintf("Project %02d", i),
			OwnerID: owner.ID,
		}); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	total, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if total != 25 {
		t.Errorf("Count: got %d, want 25", total)
	}
	if got := paging.TotalPages(total, 10); got != 3 {
		t.Errorf("TotalPages: got %d, want 3", got)
	}

	page2, err := store.ListWithMembers(ctx, paging.Page{Number: 2, Limit: 10})
	if err != nil {
		t.Fatalf("ListWithMembers failed: %v", err)
	}
	if len(page2) != 10 {
		t.Fatalf("page 2: got %d projects, want 10", len(page2))
	}

	// Oldest first: page 2 starts at the 11th created project.
	if page2[0].Name != "Project 10" {
		t.Errorf("page 2 first project: got %q, want %q", page2[0].Name, "Project 10")
	}

	page3, err := store.ListWithMembers(ctx, paging.Page{Number: 3, Limit: 10})
	if err != nil {
		t.Fatalf("ListWithMembers failed: %v", err)
	}
	if len(page3) != 5 {
		t.Errorf("page 3: got %d projects, want 5", len(page3))
	}
}

func TestStore_ListWithMembers_ResolvesMemberDetails(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Detail Owner", "detailowner@example.com", nil)
	project := fixtures.CreateProject(ctx, "Detail Project", owner.ID)
	editor := fixtures.CreateUser(ctx, "Detail Editor", "detaileditor@example.com", nil)
	fixtures.AddProjectMember(ctx, project.ID, editor.ID, models.RoleEditor)

	listed, err := store.ListWithMembers(ctx, paging.Page{Number: 1, Limit: 10})
	if err != nil {
		t.Fatalf("ListWithMembers failed: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 project, got %d", len(listed))
	}

	p := listed[0]
	if len(p.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(p.Members))
	}
	if len(p.MemberDetails) != 2 {
		t.Fatalf("expected 2 member details, got %d", len(p.MemberDetails))
	}

	names := map[string]bool{}
	for _, d := range p.MemberDetails {
		names[d.FullName] = true
	}
	if !names["Detail Owner"] || !names["Detail Editor"] {
		t.Errorf("member details missing expected users: %v", names)
	}
}
