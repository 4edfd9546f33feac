package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hydrostat/auth-service/internal/core/domain"
)

const auditCollection = "auth_audit"

// MongoAuditRepository is the append-only sink for auth audit events.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEvent struct {
	Action  string `bson:"action"`
	Email   string `bson:"email,omitempty"`
	UserID  string `bson:"user_id,omitempty"`
	Outcome string `bson:"outcome"`
	Reason  string `bson:"reason,omitempty"`
	At      int64  `bson:"at"`
}

func (r *MongoAuditRepository) Record(ctx context.Context, event domain.AuditEvent) error {
	doc := mongoAuditEvent{
		Action:  string(event.Action),
		Email:   event.Email,
		UserID:  event.UserID,
		Outcome: event.Outcome,
		Reason:  event.Reason,
		At:      event.At.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
