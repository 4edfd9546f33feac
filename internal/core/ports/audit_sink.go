package ports

import (
	"context"

	"github.com/hydrostat/auth-service/internal/core/domain"
)

// AuditSink persists auth audit events. Implementations must tolerate being
// called from dispatcher workers after the originating request has finished.
type AuditSink interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

// AuditRecorder is the non-blocking front the auth engine emits into.
type AuditRecorder interface {
	Enqueue(event domain.AuditEvent)
}
