package db

import (
	"context"
	"fmt"

	"nexta-backend-go/internal/models"
	"nexta-backend-go/pkg/database"
)

type auditRepository struct {
	store database.Store
}

// NewAuditRepository creates an AuditRepository writing to auditLogs.
func NewAuditRepository(store database.Store) AuditRepository {
	return &auditRepository{store: store}
}

func (r *auditRepository) Create(ctx context.Context, logEntry models.AuditLog) error {
	if _, err := r.store.Add(ctx, auditLogsCollection, logEntry); err != nil {
		return fmt.Errorf("failed to write audit log %s: %w", logEntry.Action, err)
	}
	return nil
}
