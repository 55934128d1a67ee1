package models

import (
	"time"
)

const (
	DocTypeText = "text"
	DocTypeFile = "file"
)

// Document is either free text or a pointer to a Media row.
// Version increments on every update.
type Document struct {
	ID          int64     `json:"id" db:"id"`
	WorkspaceID int64     `json:"workspace_id" db:"workspace_id"`
	Title       string    `json:"title" db:"title"`
	Content     string    `json:"content" db:"content"`
	MediaID     *int64    `json:"media_id" db:"media_id"`
	DocType     string    `json:"doc_type" db:"doc_type"`
	Version     int       `json:"version" db:"version"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// IsFileBacked reports whether the document content lives in a media blob
func (d *Document) IsFileBacked() bool {
	return d.MediaID != nil
}
