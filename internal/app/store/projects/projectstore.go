package projectstore

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/drafthub/drafthub/internal/app/system/normalize"
	"github.com/drafthub/drafthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c     *mongo.Collection
	users *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("projects"),
		users: db.Collection("users"),
	}
}

// Client exposes the underlying client for transactional callers.
func (s *Store) Client() *mongo.Client { return s.c.Database().Client() }

// GetByID loads a project by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new project. The creator is written as the sole owner in
// the embedded member list; the caller writes the matching role registry
// entry in the same transaction.
func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	p.ID = primitive.NewObjectID()
	p.Name = normalize.Name(p.Name)
	p.NameCI = text.Fold(p.Name)
	p.Members = []models.ProjectMember{{UserID: p.OwnerID, Role: models.RoleOwner}}
	if p.Comments == nil {
		p.Comments = []primitive.ObjectID{}
	}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// Update holds the mutable project fields. Nil pointers mean "keep the prior
// value" - project updates explicitly fall back to the existing document for
// omitted fields.
type Update struct {
	Name        *string
	Description *string
	IsReleased  *bool
}

// Apply writes the non-nil fields of upd. Returns mongo.ErrNoDocuments when
// the project does not exist.
func (s *Store) Apply(ctx context.Context, id primitive.ObjectID, upd Update) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.IsReleased != nil {
		set["is_released"] = *upd.IsReleased
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes the project document. Contents and versions under it are NOT
// removed; they stay retrievable by ID, gated by the orphaned role lookup.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpsertMember writes {userID, role} into the project's embedded member list:
// the role is updated in place when the user is already listed, appended
// otherwise. This is the denormalized half of the dual write.
func (s *Store) UpsertMember(ctx context.Context, projectID, userID primitive.ObjectID, role string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": projectID, "members.user_id": userID},
		bson.M{"$set": bson.M{
			"members.$.role": role,
			"updated_at":     time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	res, err = s.c.UpdateOne(ctx,
		bson.M{"_id": projectID},
		bson.M{
			"$push": bson.M{"members": models.ProjectMember{UserID: userID, Role: role}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// RemoveMember pulls the user out of the project's embedded member list.
// Removing a user who is not listed is a no-op; a missing project is
// ErrNoDocuments.
func (s *Store) RemoveMember(ctx context.Context, projectID, userID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": projectID},
		bson.M{
			"$pull": bson.M{"members": bson.M{"user_id": userID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Count returns the total number of projects, independent of any paginated
// aggregation result.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
