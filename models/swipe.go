package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ActionLike = "like"
	ActionPass = "pass"
)

// Swipe is an append-only log entry; the same user may swipe the same
// target any number of times and every decision is recorded separately.
type Swipe struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	TargetID  primitive.ObjectID `bson:"target_id" json:"target_id"`
	Action    string             `bson:"action" json:"action"` // like, pass
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
