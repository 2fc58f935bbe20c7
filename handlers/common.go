package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"sparkd/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const storeTimeout = 10 * time.Second

// Store is the document-store surface the handlers depend on. The Mongo
// implementation lives in the database package; tests use an in-memory one.
type Store interface {
	Ping(ctx context.Context) error
	CollectionNames(ctx context.Context) ([]string, error)

	CreateOTP(ctx context.Context, email, code string) (models.OTP, error)
	LatestOTP(ctx context.Context, email string) (models.OTP, error)

	ProfileByEmail(ctx context.Context, email string) (models.Profile, error)
	ProfileByID(ctx context.Context, id primitive.ObjectID) (models.Profile, error)
	CreateProfile(ctx context.Context, email, name string) (models.Profile, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, upd models.ProfileUpdate) (models.Profile, error)
	ListProfiles(ctx context.Context, exclude primitive.ObjectID, limit int64) ([]models.Profile, error)

	CreateSwipe(ctx context.Context, userID, targetID primitive.ObjectID, action string) (models.Swipe, error)
	HasLikeSwipe(ctx context.Context, userID, targetID primitive.ObjectID) (bool, error)
	MatchByPair(ctx context.Context, a, b primitive.ObjectID) (models.Match, error)
	CreateMatch(ctx context.Context, a, b primitive.ObjectID) (models.Match, error)
	MatchesForUser(ctx context.Context, id primitive.ObjectID) ([]models.Match, error)

	CreateMessage(ctx context.Context, matchID, senderID primitive.ObjectID, text string) (models.Message, error)
	MessagesForMatch(ctx context.Context, matchID primitive.ObjectID, limit int64) ([]models.Message, error)
}

type Handler struct {
	store Store
}

func New(store Store) *Handler {
	return &Handler{store: store}
}

func storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}

// objectIDQuery parses the named query parameter as an ObjectID, answering
// the request with a 400 itself when the value is missing or malformed.
func objectIDQuery(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Query(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return primitive.NilObjectID, false
	}
	return id, true
}

// limitQuery reads the limit query parameter, falling back to def when it
// is absent or unparsable.
func limitQuery(c *gin.Context, def int64) int64 {
	raw := c.Query("limit")
	if raw == "" {
		return def
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return limit
}

// toDoc converts a stored document to its wire form: _id becomes a string
// id, ObjectID references become hex strings and datetimes render as
// ISO-8601. Every endpoint goes through this one mapping.
func toDoc(v interface{}) gin.H {
	data, err := bson.Marshal(v)
	if err != nil {
		return nil
	}
	var m bson.M
	if err := bson.Unmarshal(data, &m); err != nil {
		return nil
	}

	doc := gin.H{}
	for k, val := range m {
		if k == "_id" {
			k = "id"
		}
		doc[k] = wireValue(val)
	}
	return doc
}

func wireValue(v interface{}) interface{} {
	switch tv := v.(type) {
	case primitive.ObjectID:
		return tv.Hex()
	case primitive.DateTime:
		return tv.Time().UTC().Format(time.RFC3339)
	case primitive.A:
		out := make([]interface{}, len(tv))
		for i, item := range tv {
			out[i] = wireValue(item)
		}
		return out
	case bson.M:
		out := map[string]interface{}{}
		for k, item := range tv {
			out[k] = wireValue(item)
		}
		return out
	default:
		return v
	}
}
