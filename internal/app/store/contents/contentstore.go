package contentstore

import (
	"context"
	"time"

	"github.com/drafthub/drafthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("contents")}
}

// GetByID loads a content item by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Content, error) {
	var c models.Content
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new content item scoped permanently to its project.
func (s *Store) Create(ctx context.Context, c models.Content) (models.Content, error) {
	c.ID = primitive.NewObjectID()
	if c.Versions == nil {
		c.Versions = []primitive.ObjectID{}
	}

	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Content{}, err
	}
	return c, nil
}

// ListByProject returns all content items for a project, oldest first.
func (s *Store) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Content, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"project_id": projectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Content
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateType overwrites the content's type unconditionally - content updates
// carry no omitted-field fallback, so an empty input overwrites the prior
// value.
func (s *Store) UpdateType(ctx context.Context, id primitive.ObjectID, contentType string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"type":       contentType,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes the content document. Its versions are NOT removed.
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

// AppendVersion appends a version reference to the end of the content's
// ordered version list.
func (s *Store) AppendVersion(ctx context.Context, contentID, versionID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, contentID, bson.M{
		"$push": bson.M{"versions": versionID},
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

// RemoveVersion pulls a version reference from the content's list. Removing a
// reference that is not present is a no-op, not an error.
func (s *Store) RemoveVersion(ctx context.Context, contentID, versionID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, contentID, bson.M{
		"$pull": bson.M{"versions": versionID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// MoveVersionToFront pulls the version reference (a no-op when absent) and
// re-inserts it at position 0. The head of the list marks the most recently
// approved version.
func (s *Store) MoveVersionToFront(ctx context.Context, contentID, versionID primitive.ObjectID) error {
	if err := s.RemoveVersion(ctx, contentID, versionID); err != nil {
		return err
	}
	res, err := s.c.UpdateByID(ctx, contentID, bson.M{
		"$push": bson.M{"versions": bson.M{
			"$each":     bson.A{versionID},
			"$position": 0,
		}},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
