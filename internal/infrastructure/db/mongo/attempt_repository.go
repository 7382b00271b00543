package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/loginguard/auth-system/internal/core/domain"
)

const attemptCollection = "login_attempts"

// MongoAttemptRepository stores the login attempt audit trail. The trail is
// append-only; nothing in the lockout decision reads it back.
type MongoAttemptRepository struct {
	coll *mongo.Collection
}

func NewAttemptRepository(db *mongo.Database) *MongoAttemptRepository {
	return &MongoAttemptRepository{coll: db.Collection(attemptCollection)}
}

type mongoAttempt struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Email      string             `bson:"email"`
	Outcome    string             `bson:"outcome"`
	OccurredAt int64              `bson:"occurred_at"`
}

func (r *MongoAttemptRepository) Record(ctx context.Context, attempt domain.LoginAttempt) error {
	doc := mongoAttempt{
		Email:      attempt.Email,
		Outcome:    string(attempt.Outcome),
		OccurredAt: attempt.OccurredAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert login attempt: %w", err)
	}
	return nil
}
