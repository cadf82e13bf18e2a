package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"nexta-backend-go/internal/db"
	"nexta-backend-go/internal/models"
)

// auditService implements the AuditService interface.
type auditService struct {
	auditRepo db.AuditRepository
}

// NewAuditService creates a new AuditService instance.
func NewAuditService(auditRepo db.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

// CreateAuditLog stores logEntry, stamping it if no timestamp is set.
func (s *auditService) CreateAuditLog(ctx context.Context, logEntry models.AuditLog) error {
	if s.auditRepo == nil {
		return fmt.Errorf("AuditRepository not initialized in AuditService")
	}
	if logEntry.Timestamp.IsZero() {
		logEntry.Timestamp = time.Now().UTC()
	}
	if err := s.auditRepo.Create(ctx, logEntry); err != nil {
		return fmt.Errorf("failed to create audit log via repository: %w", err)
	}
	return nil
}

// recorder bundles the best-effort side effects every workflow service
// performs after a successful write.
type recorder struct {
	auditor AuditService
	events  EventPublisher
	logger  *zap.Logger
}

func (r recorder) record(ctx context.Context, entry models.AuditLog) {
	if r.auditor == nil {
		return
	}
	if err := r.auditor.CreateAuditLog(ctx, entry); err != nil {
		r.logger.Warn("Failed to write audit log", zap.String("action", entry.Action), zap.Error(err))
	}
}

func (r recorder) publish(ctx context.Context, event models.Event) {
	if r.events == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if err := r.events.Publish(ctx, event); err != nil {
		r.logger.Warn("Failed to publish event", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
