package versionstore

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
	return &Store{c: db.Collection("versions")}
}

// Client exposes the underlying client for transactional callers.
func (s *Store) Client() *mongo.Client { return s.c.Database().Client() }

// GetByID loads a version by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Version, error) {
	var v models.Version
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Create inserts a new version. The caller appends the reference to the
// owning content's version list in the same transaction.
func (s *Store) Create(ctx context.Context, v models.Version) (models.Version, error) {
	v.ID = primitive.NewObjectID()

	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, v); err != nil {
		return models.Version{}, err
	}
	return v, nil
}

// ListByContent returns all versions of a content item, newest first.
func (s *Store) ListByContent(ctx context.Context, contentID primitive.ObjectID) ([]models.Version, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"content_id": contentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Version
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateFilePath overwrites the version's file path unconditionally - version
// updates carry no omitted-field fallback, so "" (no file supplied)
// overwrites the prior value.
func (s *Store) UpdateFilePath(ctx context.Context, id primitive.ObjectID, filePath string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"file_path":  filePath,
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

// Delete removes the version document. The caller pulls the reference from
// the owning content's list in the same transaction.
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

// ClearApproved unsets the approved flag on every version of the content.
func (s *Store) ClearApproved(ctx context.Context, contentID primitive.ObjectID) error {
	_, err := s.c.UpdateMany(ctx,
		bson.M{"content_id": contentID},
		bson.M{"$set": bson.M{"approved": false, "updated_at": time.Now().UTC()}})
	return err
}

// SetApproved marks a single version approved.
func (s *Store) SetApproved(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"approved":   true,
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
