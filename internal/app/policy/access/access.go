// internal/app/policy/access/access.go

// Package access is the single authorization guard. Every guarded endpoint
// resolves the caller's role for the relevant project (directly for project
// actions, via the owning content's project for content/version actions) and
// checks it against one declarative capability table.
package access

import (
	"github.com/drafthub/drafthub/internal/app/system/apperr"
	"github.com/drafthub/drafthub/internal/domain/models"
)

// Resource names the three guarded resource types.
type Resource string

const (
	Project Resource = "project"
	Content Resource = "content"
	Version Resource = "version"
)

// Action names the operations the table covers. Project create/get/list take
// no role check (any authenticated user) and do not appear here.
type Action string

const (
	List        Action = "list"
	Get         Action = "get"
	Create      Action = "create"
	Update      Action = "update"
	Delete      Action = "delete"
	Approve     Action = "approve"
	ApproveUser Action = "approveUser"
	RemoveUser  Action = "removeUser"
)

// capabilities is the resource × action → allowed-roles table. A caller role
// of "" (no registry entry) is a member of no set, so lookups for users
// outside the project always deny.
var capabilities = map[Resource]map[Action][]string{
	Project: {
		Update:      {models.RoleOwner},
		Delete:      {models.RoleOwner},
		ApproveUser: {models.RoleOwner},
		RemoveUser:  {models.RoleOwner},
	},
	Content: {
		List:   {models.RoleOwner, models.RoleEditor, models.RoleMember},
		Get:    {models.RoleOwner, models.RoleEditor, models.RoleMember},
		Create: {models.RoleOwner, models.RoleEditor},
		Update: {models.RoleOwner},
		Delete: {models.RoleOwner},
	},
	Version: {
		List:    {models.RoleOwner, models.RoleEditor, models.RoleMember},
		Get:     {models.RoleOwner, models.RoleEditor, models.RoleMember},
		Create:  {models.RoleOwner, models.RoleEditor},
		Update:  {models.RoleOwner, models.RoleEditor},
		Delete:  {models.RoleOwner},
		Approve: {models.RoleOwner},
	},
}

// Allowed reports whether role may perform action on resource.
func Allowed(role string, resource Resource, action Action) bool {
	if role == "" {
		return false
	}
	for _, allowed := range capabilities[resource][action] {
		if role == allowed {
			return true
		}
	}
	return false
}

// Check returns a permission error when role may not perform action on
// resource. The message never discloses whether the target exists.
func Check(role string, resource Resource, action Action) error {
	if Allowed(role, resource, action) {
		return nil
	}
	return apperr.New(apperr.Permission, "you do not have permission to perform this action")
}

// Assignable reports whether role can be granted through the approveUser
// operation. Ownership is set only at project creation.
func Assignable(role string) bool {
	return role == models.RoleEditor || role == models.RoleMember
}
