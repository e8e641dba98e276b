// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project roles. Exactly one owner is written at creation; approveUser can
// only assign editor or member.
const (
	RoleOwner  = "owner"
	RoleEditor = "editor"
	RoleMember = "member"
)

// ProjectMember is the denormalized {user, role} pair embedded on Project.
// The authoritative copy lives in User.ProjectRoles.
type ProjectMember struct {
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	Role   string             `bson:"role" json:"role"`
}

// Project is a collaboration workspace owning contents and their versions.
type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	OwnerID primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	Members []ProjectMember    `bson:"members" json:"members"`

	Comments   []primitive.ObjectID `bson:"comments,omitempty" json:"comments,omitempty"`
	IsReleased bool                 `bson:"is_released" json:"is_released"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
