package access

import (
	"errors"
	"testing"

	"github.com/drafthub/drafthub/internal/app/system/apperr"
)

func TestAllowed_CapabilityTable(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		resource Resource
		action   Action
		want     bool
	}{
		// Content reads: all three roles
		{"member lists content", "member", Content, List, true},
		{"editor gets content", "editor", Content, Get, true},
		{"owner lists content", "owner", Content, List, true},

		// Content writes
		{"editor creates content", "editor", Content, Create, true},
		{"member creates content", "member", Content, Create, false},
		{"editor updates content", "editor", Content, Update, false},
		{"owner updates content", "owner", Content, Update, true},
		{"editor deletes content", "editor", Content, Delete, false},
		{"owner deletes content", "owner", Content, Delete, true},

		// Version reads: all three roles
		{"member gets version", "member", Version, Get, true},

		// Version writes
		{"editor creates version", "editor", Version, Create, true},
		{"member creates version", "member", Version, Create, false},
		{"editor updates version", "editor", Version, Update, true},
		{"editor deletes version", "editor", Version, Delete, false},
		{"owner deletes version", "owner", Version, Delete, true},
		{"editor approves version", "editor", Version, Approve, false},
		{"owner approves version", "owner", Version, Approve, true},

		// Project mutations: owner only
		{"owner updates project", "owner", Project, Update, true},
		{"editor updates project", "editor", Project, Update, false},
		{"owner deletes project", "owner", Project, Delete, true},
		{"member deletes project", "member", Project, Delete, false},
		{"owner approves user", "owner", Project, ApproveUser, true},
		{"editor approves user", "editor", Project, ApproveUser, false},
		{"owner removes user", "owner", Project, RemoveUser, true},
		{"editor removes user", "editor", Project, RemoveUser, false},
		{"member removes user", "member", Project, RemoveUser, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allowed(tt.role, tt.resource, tt.action); got != tt.want {
				t.Errorf("Allowed(%q, %s, %s) = %v, want %v",
					tt.role, tt.resource, tt.action, got, tt.want)
			}
		})
	}
}

func TestAllowed_EmptyRoleAlwaysDenies(t *testing.T) {
	// A user with no registry entry for a project resolves to role "" and
	// must be denied every guarded action.
	for resource, actions := range capabilities {
		for action := range actions {
			if Allowed("", resource, action) {
				t.Errorf("Allowed(\"\", %s, %s) = true, want false", resource, action)
			}
		}
	}
}

func TestAllowed_UnknownRoleDenied(t *testing.T) {
	if Allowed("superuser", Version, Approve) {
		t.Error("unknown role should be denied")
	}
}

func TestCheck_ReturnsPermissionError(t *testing.T) {
	err := Check("member", Version, Approve)
	if err == nil {
		t.Fatal("expected error")
	}
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *apperr.Error, got %T", err)
	}
	if ae.Kind != apperr.Permission {
		t.Errorf("kind: got %v, want Permission", ae.Kind)
	}
}

func TestCheck_AllowedIsNil(t *testing.T) {
	if err := Check("owner", Version, Approve); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestAssignable(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{"editor", true},
		{"member", true},
		{"owner", false},
		{"admin", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Assignable(tt.role); got != tt.want {
			t.Errorf("Assignable(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}
