package repositories

import (
	"context"

	"vaultspace/internal/domain/models"
)

// AuditRepository appends audit records. There is no read side.
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}
