package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OTP records are append-only; verification only ever looks at the newest
// record for an email, and codes are never marked used or expired.
type OTP struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Code      string             `bson:"code" json:"code"` // 6 digits, leading zeros allowed
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
