// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/drafthub/drafthub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the caller's name, Mongo ObjectID, and a found flag.
// If no user is present in context or the user ID is malformed, it returns
// "", NilObjectID, false. This ensures callers can trust that ok=true means a
// valid, authenticated user with a valid ObjectID.
func UserCtx(r *http.Request) (name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in token - fail closed.
		return "", primitive.NilObjectID, false
	}
	return user.Name, userID, true
}

// ProjectRole returns the caller's role for the given project from the role
// registry carried on the request user, or "" when the caller is anonymous or
// has no entry. An empty role matches no capability set, so every guarded
// action denies.
func ProjectRole(r *http.Request, projectID primitive.ObjectID) string {
	user, ok := auth.CurrentUser(r)
	if !ok || user.ProjectRoles == nil {
		return ""
	}
	return user.ProjectRoles[projectID.Hex()]
}
