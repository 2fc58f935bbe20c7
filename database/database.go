package database

import (
	"context"
	"log"
	"time"

	"sparkd/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store wraps the Mongo client and the collections the service uses. It is
// constructed once in main and handed to the handlers; there is no package
// level client.
type Store struct {
	client *mongo.Client
	db     *mongo.Database

	Profiles *mongo.Collection
	Swipes   *mongo.Collection
	Matches  *mongo.Collection
	Messages *mongo.Collection
	OTPs     *mongo.Collection
}

func Connect(uri, dbName string) (*Store, error) {
	if uri == "" {
		log.Println("MONGODB_URI not set, using default localhost")
		uri = "mongodb://127.0.0.1:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	s := &Store{
		client:   client,
		db:       db,
		Profiles: db.Collection("profiles"),
		Swipes:   db.Collection("swipes"),
		Matches:  db.Collection("matches"),
		Messages: db.Collection("messages"),
		OTPs:     db.Collection("otps"),
	}

	log.Println("Connected to MongoDB successfully")
	return s, nil
}

func (s *Store) Disconnect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.client.Disconnect(ctx); err != nil {
		return err
	}

	log.Println("Disconnected from MongoDB")
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) CollectionNames(ctx context.Context) ([]string, error) {
	return s.db.ListCollectionNames(ctx, bson.M{})
}

// CreateOTP appends a code record for the email. Older codes stay around;
// only recency decides which one verification looks at.
func (s *Store) CreateOTP(ctx context.Context, email, code string) (models.OTP, error) {
	otp := models.OTP{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Code:      code,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.OTPs.InsertOne(ctx, otp); err != nil {
		return models.OTP{}, err
	}
	return otp, nil
}

// LatestOTP returns the newest code record for the email, or
// mongo.ErrNoDocuments if none was ever issued.
func (s *Store) LatestOTP(ctx context.Context, email string) (models.OTP, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var otp models.OTP
	err := s.OTPs.FindOne(ctx, bson.M{"email": email}, opts).Decode(&otp)
	return otp, err
}

func (s *Store) ProfileByEmail(ctx context.Context, email string) (models.Profile, error) {
	var profile models.Profile
	err := s.Profiles.FindOne(ctx, bson.M{"email": email}).Decode(&profile)
	return profile, err
}

func (s *Store) ProfileByID(ctx context.Context, id primitive.ObjectID) (models.Profile, error) {
	var profile models.Profile
	err := s.Profiles.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	return profile, err
}

func (s *Store) CreateProfile(ctx context.Context, email, name string) (models.Profile, error) {
	profile := models.Profile{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Name:      name,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.Profiles.InsertOne(ctx, profile); err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

// UpdateProfile applies a sparse edit and returns the document as stored
// after the write. Callers skip the call entirely for empty edits.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd models.ProfileUpdate) (models.Profile, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var profile models.Profile
	err := s.Profiles.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": upd.SetDocument()},
		opts,
	).Decode(&profile)
	return profile, err
}

// ListProfiles returns up to limit profiles excluding the given id, in
// store-natural order. No activity, distance or preference filtering.
func (s *Store) ListProfiles(ctx context.Context, exclude primitive.ObjectID, limit int64) ([]models.Profile, error) {
	opts := options.Find().SetLimit(limit)

	cursor, err := s.Profiles.Find(ctx, bson.M{"_id": bson.M{"$ne": exclude}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []models.Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (s *Store) CreateSwipe(ctx context.Context, userID, targetID primitive.ObjectID, action string) (models.Swipe, error) {
	swipe := models.Swipe{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		TargetID:  targetID,
		Action:    action,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.Swipes.InsertOne(ctx, swipe); err != nil {
		return models.Swipe{}, err
	}
	return swipe, nil
}

// HasLikeSwipe reports whether userID has ever recorded a like for targetID.
func (s *Store) HasLikeSwipe(ctx context.Context, userID, targetID primitive.ObjectID) (bool, error) {
	count, err := s.Swipes.CountDocuments(ctx, bson.M{
		"user_id":   userID,
		"target_id": targetID,
		"action":    models.ActionLike,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MatchByPair looks up a match for the unordered pair {a, b}; both
// orientations are checked.
func (s *Store) MatchByPair(ctx context.Context, a, b primitive.ObjectID) (models.Match, error) {
	var match models.Match
	err := s.Matches.FindOne(ctx, bson.M{
		"$or": []bson.M{
			{"user_a": a, "user_b": b},
			{"user_a": b, "user_b": a},
		},
	}).Decode(&match)
	return match, err
}

func (s *Store) CreateMatch(ctx context.Context, a, b primitive.ObjectID) (models.Match, error) {
	match := models.Match{
		ID:        primitive.NewObjectID(),
		UserA:     a,
		UserB:     b,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.Matches.InsertOne(ctx, match); err != nil {
		return models.Match{}, err
	}
	return match, nil
}

// MatchesForUser returns the user's matches, newest first.
func (s *Store) MatchesForUser(ctx context.Context, id primitive.ObjectID) ([]models.Match, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.Matches.Find(ctx, bson.M{
		"$or": []bson.M{{"user_a": id}, {"user_b": id}},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var matches []models.Match
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *Store) CreateMessage(ctx context.Context, matchID, senderID primitive.ObjectID, text string) (models.Message, error) {
	msg := models.Message{
		ID:        primitive.NewObjectID(),
		MatchID:   matchID,
		SenderID:  senderID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.Messages.InsertOne(ctx, msg); err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

// MessagesForMatch returns up to limit messages for the match, newest
// first. Callers reverse the slice for chronological reading order.
func (s *Store) MessagesForMatch(ctx context.Context, matchID primitive.ObjectID, limit int64) ([]models.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.Messages.Find(ctx, bson.M{"match_id": matchID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
