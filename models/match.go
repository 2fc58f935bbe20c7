package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Match is an undirected pair; UserA/UserB carry no ordering meaning and
// every lookup must check both orientations.
type Match struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserA     primitive.ObjectID `bson:"user_a" json:"user_a"`
	UserB     primitive.ObjectID `bson:"user_b" json:"user_b"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Other returns the counterpart of id within the pair.
func (m Match) Other(id primitive.ObjectID) primitive.ObjectID {
	if m.UserA == id {
		return m.UserB
	}
	return m.UserA
}
