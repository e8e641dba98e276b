// internal/domain/models/version.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Version is one uploaded revision of a content item. At most one version per
// content has Approved=true; the approval workflow clears all flags before
// setting one and moves the approved reference to the head of the content's
// version list.
type Version struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ContentID  primitive.ObjectID `bson:"content_id" json:"content_id"`
	UploadedBy primitive.ObjectID `bson:"uploaded_by" json:"uploaded_by"`

	// FilePath is the storage path of the uploaded file, or "" when no file
	// was supplied.
	FilePath string `bson:"file_path" json:"file_path"`

	Approved bool `bson:"approved" json:"approved"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
