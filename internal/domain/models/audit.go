package models

import "time"

// Audit actions
const (
	AuditWorkspaceCreate  = "workspace.create"
	AuditWorkspaceUpdate  = "workspace.update"
	AuditWorkspaceDelete  = "workspace.delete"
	AuditMemberAdd        = "member.add"
	AuditMemberRoleChange = "member.role_change"
	AuditMemberRemove     = "member.remove"
	AuditMediaUpload      = "media.upload"
	AuditMediaUpdate      = "media.update"
	AuditMediaDelete      = "media.delete"
	AuditDocumentDelete   = "document.delete"
	AuditCommentDelete    = "comment.delete"
	AuditTeamAttach       = "team.attach_workspace"
)

// AuditLog is an append-only record of a security-relevant action
type AuditLog struct {
	ID          int64     `json:"id" db:"id"`
	WorkspaceID *int64    `json:"workspace_id" db:"workspace_id"`
	ActorID     *int64    `json:"actor_id" db:"actor_id"`
	Action      string    `json:"action" db:"action"`
	Detail      *string   `json:"detail" db:"detail"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
