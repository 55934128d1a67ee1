package models

import (
	"time"
)

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           int64      `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	Username     string     `json:"username" db:"username"`
	PasswordHash string     `json:"-" db:"hashed_password"`
	FirstName    *string    `json:"first_name" db:"first_name"`
	LastName     *string    `json:"last_name" db:"last_name"`
	AvatarURL    *string    `json:"avatar_url" db:"avatar_url"`
	DateOfBirth  *time.Time `json:"date_of_birth" db:"date_of_birth"`
	Bio          *string    `json:"bio" db:"bio"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// RecentWorkspace is a compact view of a workspace the user belongs to
type RecentWorkspace struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// UserProfile is the "me" view of a user
type UserProfile struct {
	User
	RecentWorkspaces []RecentWorkspace `json:"recent_workspaces"`
}
