package services

import (
	"context"

	"vaultspace/internal/domain/models"
)

// CreateCommentRequest attaches a comment to a target
type CreateCommentRequest struct {
	TargetType string `json:"target_type"`
	TargetID   int64  `json:"target_id"`
	Body       string `json:"body"`
}

// ListCommentsRequest optionally narrows a listing to one target
type ListCommentsRequest struct {
	TargetType string
	TargetID   int64
}

// CommentService defines business logic operations for comments
type CommentService interface {
	CreateComment(ctx context.Context, userID, workspaceID int64, req *CreateCommentRequest) (*models.Comment, error)
	ListComments(ctx context.Context, userID, workspaceID int64, req *ListCommentsRequest) ([]models.Comment, error)

	// DeleteComment is allowed for the author and for owners/admins
	DeleteComment(ctx context.Context, userID, workspaceID, commentID int64) error
}
