package policy

import "vaultspace/internal/domain/models"

// Action names a protected workspace operation
type Action string

const (
	ActionWorkspaceRead   Action = "workspace.read"
	ActionWorkspaceUpdate Action = "workspace.update"
	ActionWorkspaceDelete Action = "workspace.delete"
	ActionMemberManage    Action = "member.manage"
	ActionMediaUpload     Action = "media.upload"
	ActionMediaUpdate     Action = "media.update"
	ActionMediaDelete     Action = "media.delete"
	ActionDocumentCreate  Action = "document.create"
	ActionDocumentUpdate  Action = "document.update"
	ActionDocumentDelete  Action = "document.delete"
	ActionCommentCreate   Action = "comment.create"
	ActionCommentModerate Action = "comment.moderate"
	ActionTeamAttach      Action = "team.attach_workspace"
)

// knownActions must each have an entry in the roles file
var knownActions = []Action{
	ActionWorkspaceRead,
	ActionWorkspaceUpdate,
	ActionWorkspaceDelete,
	ActionMemberManage,
	ActionMediaUpload,
	ActionMediaUpdate,
	ActionMediaDelete,
	ActionDocumentCreate,
	ActionDocumentUpdate,
	ActionDocumentDelete,
	ActionCommentCreate,
	ActionCommentModerate,
	ActionTeamAttach,
}

// RoleSet is a set of roles allowed to perform an action
type RoleSet map[models.Role]struct{}

// NewRoleSet builds a set from roles, normalizing each one
func NewRoleSet(roles ...models.Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[models.NormalizeRole(string(r))] = struct{}{}
	}
	return set
}

// Contains reports whether role is in the set, ignoring case and surrounding space
func (s RoleSet) Contains(role models.Role) bool {
	_, ok := s[models.NormalizeRole(string(role))]
	return ok
}

// Roles returns the members of the set ordered from most to least privileged
func (s RoleSet) Roles() []models.Role {
	out := make([]models.Role, 0, len(s))
	for _, r := range models.Roles {
		if s.Contains(r) {
			out = append(out, r)
		}
	}
	return out
}

type actionFile struct {
	Actions []actionEntry `yaml:"actions"`
}

type actionEntry struct {
	Name  string   `yaml:"name"`
	Roles []string `yaml:"roles"`
}
