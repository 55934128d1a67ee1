package models

import (
	"strings"
	"time"
)

// Media is the metadata row of an uploaded file. The plaintext is never
// persisted; StoredPath locates the encrypted blob.
type Media struct {
	ID               int64     `json:"id" db:"id"`
	WorkspaceID      int64     `json:"workspace_id" db:"workspace_id"`
	UploadedBy       *int64    `json:"uploaded_by" db:"uploaded_by"` // NULL once the uploader is deleted
	OriginalFilename string    `json:"original_filename" db:"original_filename"`
	StoredFilename   string    `json:"stored_filename" db:"stored_filename"`
	StoredPath       string    `json:"-" db:"stored_path"`
	MimeType         string    `json:"mime_type" db:"mime_type"`
	SizeBytes        int64     `json:"size_bytes" db:"size_bytes"` // ciphertext length
	Description      *string   `json:"description" db:"description"`
	Tags             []string  `json:"tags" db:"-"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// TagSeparator joins tags in the stored column
const TagSeparator = ","

// JoinTags renders tags for storage. Empty lists store as NULL.
func JoinTags(tags []string) *string {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		return nil
	}
	joined := strings.Join(cleaned, TagSeparator)
	return &joined
}

// SplitTags parses the stored column back into a list
func SplitTags(stored *string) []string {
	if stored == nil || strings.TrimSpace(*stored) == "" {
		return []string{}
	}
	parts := strings.Split(*stored, TagSeparator)
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// MediaTypePrefixes are the mime-type families accepted by the list filter
var MediaTypePrefixes = []string{"image", "video", "audio", "application", "text"}

// MediaFilter narrows a media listing
type MediaFilter struct {
	WorkspaceID int64
	Page        int
	PageSize    int
	Filename    string // case-insensitive substring
	TypePrefix  string // one of MediaTypePrefixes, empty = any
	SortAsc     bool   // by created_at
}

// Offset returns the row offset for the current page
func (f *MediaFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// MediaPage is one page of a media listing
type MediaPage struct {
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
	Total    int     `json:"total"`
	Items    []Media `json:"items"`
}
