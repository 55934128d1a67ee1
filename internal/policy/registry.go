package policy

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
	"vaultspace/internal/domain/models"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Preset role sets shared by services that check roles directly
var (
	ContentEditors = NewRoleSet(models.RoleOwner, models.RoleAdmin, models.RoleEditor)
	Administrators = NewRoleSet(models.RoleOwner, models.RoleAdmin)
	AnyMember      = NewRoleSet(models.Roles...)
)

// Registry maps actions to the role sets allowed to perform them.
// It is immutable after construction.
type Registry struct {
	actions map[Action]RoleSet
}

// NewRegistry loads the embedded role file
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/roles.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read roles.yaml: %w", err)
	}
	return Parse(data)
}

// Parse builds a registry from YAML. Every known action must be present and
// every role must be a known workspace role.
func Parse(data []byte) (*Registry, error) {
	var file actionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roles: %w", err)
	}

	r := &Registry{actions: make(map[Action]RoleSet, len(file.Actions))}
	for _, entry := range file.Actions {
		action := Action(entry.Name)
		if _, dup := r.actions[action]; dup {
			return nil, fmt.Errorf("action %s defined twice", entry.Name)
		}
		if len(entry.Roles) == 0 {
			return nil, fmt.Errorf("action %s has no roles", entry.Name)
		}

		set := make(RoleSet, len(entry.Roles))
		for _, raw := range entry.Roles {
			role, err := models.ParseRole(raw)
			if err != nil {
				return nil, fmt.Errorf("action %s: %w", entry.Name, err)
			}
			set[role] = struct{}{}
		}
		r.actions[action] = set
	}

	for _, a := range knownActions {
		if _, ok := r.actions[a]; !ok {
			return nil, fmt.Errorf("missing roles for action %s", a)
		}
	}
	return r, nil
}

// RolesFor returns the roles allowed to perform action
func (r *Registry) RolesFor(action Action) (RoleSet, error) {
	set, ok := r.actions[action]
	if !ok {
		return nil, fmt.Errorf("unknown action: %s", action)
	}
	return set, nil
}

// Allows reports whether role may perform action. Unknown actions are denied.
func (r *Registry) Allows(action Action, role models.Role) bool {
	set, ok := r.actions[action]
	return ok && set.Contains(role)
}
