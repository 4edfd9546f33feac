package domain

import "time"

// AuditAction identifies the auth operation an audit event describes.
type AuditAction string

const (
	AuditRegister AuditAction = "register"
	AuditLogin    AuditAction = "login"
	AuditRefresh  AuditAction = "refresh"
)

const (
	AuditOutcomeSuccess = "success"
	AuditOutcomeFailure = "failure"
)

// AuditEvent records the outcome of an auth operation for the append-only
// audit trail. Reason is empty on success.
type AuditEvent struct {
	Action  AuditAction
	Email   string
	UserID  string
	Outcome string
	Reason  string
	At      time.Time
}
