package models

import (
	"time"
)

type Team struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	OwnerID   int64     `json:"owner_id" db:"owner_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TeamMember is unique on (team_id, user_id); default role is "member".
type TeamMember struct {
	ID     int64  `json:"id" db:"id"`
	TeamID int64  `json:"team_id" db:"team_id"`
	UserID int64  `json:"user_id" db:"user_id"`
	Role   string `json:"role" db:"role"`
}

// TeamMemberDetail is a team member joined with its user's identity
type TeamMemberDetail struct {
	TeamMember
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TeamWorkspace attaches a workspace to a team. Unique pair.
type TeamWorkspace struct {
	ID          int64 `json:"id" db:"id"`
	TeamID      int64 `json:"team_id" db:"team_id"`
	WorkspaceID int64 `json:"workspace_id" db:"workspace_id"`
}

// WorkspaceSync reports the outcome of attaching a workspace to a team
type WorkspaceSync struct {
	TeamID       int64   `json:"team_id"`
	WorkspaceID  int64   `json:"workspace_id"`
	AddedUserIDs []int64 `json:"added_user_ids"`
}
