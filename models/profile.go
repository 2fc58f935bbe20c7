package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Profile struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email       string             `bson:"email" json:"email"`
	Name        string             `bson:"name" json:"name"`
	Age         *int               `bson:"age,omitempty" json:"age,omitempty"`
	Gender      string             `bson:"gender,omitempty" json:"gender,omitempty"` // male, female, non-binary, other
	Bio         string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Interests   []string           `bson:"interests,omitempty" json:"interests,omitempty"`
	Photos      []string           `bson:"photos,omitempty" json:"photos,omitempty"` // array of image URLs
	LocationLat *float64           `bson:"location_lat,omitempty" json:"location_lat,omitempty"`
	LocationLng *float64           `bson:"location_lng,omitempty" json:"location_lng,omitempty"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// ProfileUpdate carries a sparse profile edit. Pointer fields (and nil
// slices) distinguish "absent" from "set to the zero value".
type ProfileUpdate struct {
	Name        *string  `json:"name"`
	Age         *int     `json:"age" binding:"omitempty,gte=18,lte=100"`
	Gender      *string  `json:"gender" binding:"omitempty,oneof=male female non-binary other"`
	Bio         *string  `json:"bio"`
	Interests   []string `json:"interests"`
	Photos      []string `json:"photos"`
	LocationLat *float64 `json:"location_lat"`
	LocationLng *float64 `json:"location_lng"`
	IsActive    *bool    `json:"is_active"`
}

// SetDocument builds the $set payload containing only the fields the
// caller actually supplied. An empty result means no write should happen.
func (u ProfileUpdate) SetDocument() bson.M {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Age != nil {
		set["age"] = *u.Age
	}
	if u.Gender != nil {
		set["gender"] = *u.Gender
	}
	if u.Bio != nil {
		set["bio"] = *u.Bio
	}
	if u.Interests != nil {
		set["interests"] = u.Interests
	}
	if u.Photos != nil {
		set["photos"] = u.Photos
	}
	if u.LocationLat != nil {
		set["location_lat"] = *u.LocationLat
	}
	if u.LocationLng != nil {
		set["location_lng"] = *u.LocationLng
	}
	if u.IsActive != nil {
		set["is_active"] = *u.IsActive
	}
	return set
}

func (u ProfileUpdate) IsEmpty() bool {
	return len(u.SetDocument()) == 0
}
