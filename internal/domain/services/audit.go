package services

import "context"

// AuditEvent is one security-relevant action. Zero ids are stored as NULL.
type AuditEvent struct {
	WorkspaceID int64
	ActorID     int64
	Action      string
	Detail      string
}

// AuditSink records audit events on a best-effort basis. Record never
// returns an error and never panics; failures are logged and dropped.
type AuditSink interface {
	Record(ctx context.Context, event AuditEvent)
}
