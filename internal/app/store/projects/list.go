package projectstore

import (
	"context"
	"time"

	"github.com/drafthub/drafthub/internal/app/system/paging"
	"github.com/drafthub/drafthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MemberDetail is a resolved user record joined onto a listed project.
type MemberDetail struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	FullName string             `bson:"full_name" json:"full_name"`
	Email    string             `bson:"email" json:"email"`
}

// ListedProject is one row of the members-joined project listing: the project
// document with a parallel array of resolved member identities.
type ListedProject struct {
	ID            primitive.ObjectID     `bson:"_id" json:"id"`
	Name          string                 `bson:"name" json:"name"`
	Description   string                 `bson:"description,omitempty" json:"description,omitempty"`
	OwnerID       primitive.ObjectID     `bson:"owner_id" json:"owner_id"`
	Members       []models.ProjectMember `bson:"members" json:"members"`
	MemberDetails []MemberDetail         `bson:"member_details" json:"member_details"`
	IsReleased    bool                   `bson:"is_released" json:"is_released"`
	CreatedAt     time.Time              `bson:"created_at" json:"created_at"`
}

// ListWithMembers returns one page of projects with member identities joined
// from the users collection. The pipeline unwinds each project's member list,
// looks up the user record, then regroups by project so each row regains a
// single members array and a parallel member_details array.
//
// The total count comes from Count (a separate full-collection count), so
// totals stay consistent even when the page itself reflects concurrent
// changes.
func (s *Store) ListWithMembers(ctx context.Context, page paging.Page) ([]ListedProject, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$members",
			"preserveNullAndEmptyArrays": true,
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "members.user_id",
			"foreignField": "_id",
			"as":           "member_detail",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$member_detail",
			"preserveNullAndEmptyArrays": true,
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":         "$_id",
			"name":        bson.M{"$first": "$name"},
			"description": bson.M{"$first": "$description"},
			"owner_id":    bson.M{"$first": "$owner_id"},
			"is_released": bson.M{"$first": "$is_released"},
			"created_at":  bson.M{"$first": "$created_at"},
			"members":     bson.M{"$push": "$members"},
			"member_details": bson.M{"$push": bson.M{
				"_id":       "$member_detail._id",
				"full_name": "$member_detail.full_name",
				"email":     "$member_detail.email",
			}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "created_at", Value: 1},
			{Key: "_id", Value: 1},
		}}},
		bson.D{{Key: "$skip", Value: page.Skip()}},
		bson.D{{Key: "$limit", Value: int64(page.Limit)}},
	}

	cur, err := s.c.Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []ListedProject
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
