package services

import (
	"context"

	"vaultspace/internal/domain/models"
)

// UpdateProfileRequest is a partial profile update; nil fields are left unchanged.
// DateOfBirth uses YYYY-MM-DD; an empty string clears it.
type UpdateProfileRequest struct {
	Username    *string `json:"username"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	AvatarURL   *string `json:"avatar_url"`
	DateOfBirth *string `json:"date_of_birth"`
	Bio         *string `json:"bio"`
}

// UserService exposes the caller's own profile
type UserService interface {
	GetMe(ctx context.Context, userID int64) (*models.UserProfile, error)
	UpdateMe(ctx context.Context, userID int64, req *UpdateProfileRequest) (*models.UserProfile, error)
}
