package config

const (
	// MaxNameLength bounds workspace and team names.
	MaxNameLength = 255

	// MaxFilenameLength bounds original filenames of uploaded media.
	MaxFilenameLength = 255

	// MaxDescriptionLength bounds media descriptions.
	MaxDescriptionLength = 2000

	// MaxTagLength bounds a single media tag; MaxTags bounds the tag count.
	MaxTagLength = 64
	MaxTags      = 32

	// MaxTitleLength bounds document titles.
	MaxTitleLength = 255

	// MaxCommentLength bounds comment bodies.
	MaxCommentLength = 2000

	// MaxBioLength bounds the profile bio.
	MaxBioLength = 1000

	// Username and password bounds. Passwords are capped by bcrypt's 72-byte input limit.
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 8
	MaxPasswordLength = 72

	// DefaultPageSize and MaxPageSize apply to media listings.
	DefaultPageSize = 10
	MaxPageSize     = 100

	// RecentWorkspaceCount is how many memberships the profile view shows.
	RecentWorkspaceCount = 5

	// DefaultMaxUploadBytes caps a single upload held in memory (50 MiB).
	DefaultMaxUploadBytes = 50 << 20
)
