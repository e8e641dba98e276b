// internal/domain/models/content.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Content is an item scoped permanently to one project. Versions holds an
// ordered list of version references; the head of the list is the most
// recently approved version.
type Content struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	ProjectID primitive.ObjectID   `bson:"project_id" json:"project_id"`
	Type      string               `bson:"type" json:"type"`
	Versions  []primitive.ObjectID `bson:"versions" json:"versions"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
