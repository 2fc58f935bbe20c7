package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MatchID   primitive.ObjectID `bson:"match_id" json:"match_id"`
	SenderID  primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
