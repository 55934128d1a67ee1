package models

import (
	"fmt"
	"strings"
	"time"
)

// CommentTarget is the kind of resource a comment is attached to
type CommentTarget string

const (
	TargetMedia    CommentTarget = "media"
	TargetDocument CommentTarget = "document"
	TargetMessage  CommentTarget = "message"
)

// ParseCommentTarget accepts the known target kinds; "doc" is an alias for document.
func ParseCommentTarget(s string) (CommentTarget, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "media":
		return TargetMedia, nil
	case "document", "doc":
		return TargetDocument, nil
	case "message":
		return TargetMessage, nil
	default:
		return "", fmt.Errorf("unknown target type %q", s)
	}
}

// Comment is attached to an arbitrary (target_type, target_id) pair.
// The target is not checked for existence.
type Comment struct {
	ID          int64         `json:"id" db:"id"`
	WorkspaceID int64         `json:"workspace_id" db:"workspace_id"`
	AuthorID    *int64        `json:"author_id" db:"author_id"`
	TargetType  CommentTarget `json:"target_type" db:"target_type"`
	TargetID    int64         `json:"target_id" db:"target_id"`
	Body        string        `json:"body" db:"body"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}

// CommentFilter narrows a comment listing. Zero values match everything.
type CommentFilter struct {
	WorkspaceID int64
	TargetType  CommentTarget
	TargetID    int64
}
