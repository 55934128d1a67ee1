package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vaultspace/internal/domain/models"
	"vaultspace/internal/domain/repositories"
	"vaultspace/internal/domain/services"
)

const recordTimeout = 5 * time.Second

// Recorder implements AuditSink on top of the audit repository.
// It runs after the primary operation has committed and swallows every failure.
type Recorder struct {
	repo   repositories.AuditRepository
	logger *slog.Logger
}

// NewRecorder creates a new audit recorder
func NewRecorder(repo repositories.AuditRepository, logger *slog.Logger) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

var _ services.AuditSink = (*Recorder)(nil)

// Record appends an audit row. Errors and panics are logged and dropped.
func (r *Recorder) Record(ctx context.Context, event services.AuditEvent) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("audit record panicked", "action", event.Action, "panic", fmt.Sprint(rec))
		}
	}()

	// Outlives request cancellation
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	entry := &models.AuditLog{
		WorkspaceID: optionalID(event.WorkspaceID),
		ActorID:     optionalID(event.ActorID),
		Action:      event.Action,
	}
	if event.Detail != "" {
		detail := event.Detail
		entry.Detail = &detail
	}

	if err := r.repo.Create(ctx, entry); err != nil {
		r.logger.Warn("audit record failed",
			"action", event.Action,
			"workspace_id", event.WorkspaceID,
			"error", err,
		)
	}
}

func optionalID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
