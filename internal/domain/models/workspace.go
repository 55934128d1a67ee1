package models

import (
	"time"
)

// Workspace is the top-level tenant. It owns its members, media, documents
// and comments; deleting it removes all of them.
type Workspace struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// WorkspaceMember binds a user to a workspace with a role.
// Unique on (workspace_id, user_id).
type WorkspaceMember struct {
	ID          int64 `json:"id" db:"id"`
	WorkspaceID int64 `json:"workspace_id" db:"workspace_id"`
	UserID      int64 `json:"user_id" db:"user_id"`
	Role        Role  `json:"role" db:"role"`
}

// IsOwner reports whether the membership carries the owner role
func (m *WorkspaceMember) IsOwner() bool {
	return NormalizeRole(string(m.Role)) == RoleOwner
}
