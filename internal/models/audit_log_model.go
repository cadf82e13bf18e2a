package models

import "time"

// Audit actions recorded by the workflow services.
const (
	AuditUserInitialize    = "USER_INITIALIZE"
	AuditProfileCreate     = "PROFILE_CREATE"
	AuditJobCreate         = "JOB_CREATE"
	AuditJobDelete         = "JOB_DELETE"
	AuditApplicationSubmit = "APPLICATION_SUBMIT"
	AuditApplicationDecide = "APPLICATION_DECIDE"
	AuditApplicationCancel = "APPLICATION_WITHDRAW"
	AuditCheckout          = "BOOKING_CHECKOUT"
	AuditBookingDecide     = "BOOKING_LINE_DECIDE"
)

// AuditLog represents an audit trail event.
type AuditLog struct {
	ID         string                 `json:"id" firestore:"-"`
	Timestamp  time.Time              `json:"timestamp" firestore:"timestamp"`
	UserID     string                 `json:"userId" firestore:"userId"` // Who performed the action
	Action     string                 `json:"action" firestore:"action"`
	TargetType string                 `json:"targetType,omitempty" firestore:"targetType,omitempty"` // e.g. "JOB", "APPLICATION", "BOOKING"
	TargetID   string                 `json:"targetId,omitempty" firestore:"targetId,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty" firestore:"details,omitempty"`
}
