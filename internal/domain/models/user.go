// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account.
//
// NOTE:
//   - ProjectRoles is the authoritative role registry: it maps a project's
//     hex ObjectID to the user's role in that project. The members array
//     embedded on Project is a denormalized copy kept for listing/display.
//     Role-mutating operations write both together.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email      string             `bson:"email" json:"email"`

	PasswordHash string `bson:"password_hash" json:"-"`
	RefreshToken string `bson:"refresh_token,omitempty" json:"-"`

	// ProjectRoles maps project hex ID -> "owner" | "editor" | "member".
	ProjectRoles map[string]string `bson:"project_roles,omitempty" json:"project_roles,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// RoleFor returns the user's role for the given project, or "" when the
// registry has no entry. An empty role matches no capability set.
func (u *User) RoleFor(projectID primitive.ObjectID) string {
	if u == nil || u.ProjectRoles == nil {
		return ""
	}
	return u.ProjectRoles[projectID.Hex()]
}
