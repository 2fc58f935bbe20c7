package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"sparkd/handlers"
	"sparkd/models"
	"sparkd/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeStore is an in-memory stand-in for the Mongo store. Slices keep
// insertion order and a stepping clock makes created_at strictly
// increasing, so recency-based lookups behave like the real sorts.
type fakeStore struct {
	pingErr error

	otps     []models.OTP
	profiles []models.Profile
	swipes   []models.Swipe
	matches  []models.Match
	messages []models.Message

	clock time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{clock: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeStore) now() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeStore) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeStore) CollectionNames(ctx context.Context) ([]string, error) {
	return []string{"profiles", "swipes", "matches", "messages", "otps"}, nil
}

func (f *fakeStore) CreateOTP(ctx context.Context, email, code string) (models.OTP, error) {
	otp := models.OTP{ID: primitive.NewObjectID(), Email: email, Code: code, CreatedAt: f.now()}
	f.otps = append(f.otps, otp)
	return otp, nil
}

func (f *fakeStore) LatestOTP(ctx context.Context, email string) (models.OTP, error) {
	for i := len(f.otps) - 1; i >= 0; i-- {
		if f.otps[i].Email == email {
			return f.otps[i], nil
		}
	}
	return models.OTP{}, mongo.ErrNoDocuments
}

func (f *fakeStore) ProfileByEmail(ctx context.Context, email string) (models.Profile, error) {
	for _, p := range f.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return models.Profile{}, mongo.ErrNoDocuments
}

func (f *fakeStore) ProfileByID(ctx context.Context, id primitive.ObjectID) (models.Profile, error) {
	for _, p := range f.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Profile{}, mongo.ErrNoDocuments
}

func (f *fakeStore) CreateProfile(ctx context.Context, email, name string) (models.Profile, error) {
	profile := models.Profile{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Name:      name,
		IsActive:  true,
		CreatedAt: f.now(),
	}
	f.profiles = append(f.profiles, profile)
	return profile, nil
}

func (f *fakeStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd models.ProfileUpdate) (models.Profile, error) {
	for i := range f.profiles {
		if f.profiles[i].ID != id {
			continue
		}
		p := &f.profiles[i]
		if upd.Name != nil {
			p.Name = *upd.Name
		}
		if upd.Age != nil {
			age := *upd.Age
			p.Age = &age
		}
		if upd.Gender != nil {
			p.Gender = *upd.Gender
		}
		if upd.Bio != nil {
			p.Bio = *upd.Bio
		}
		if upd.Interests != nil {
			p.Interests = upd.Interests
		}
		if upd.Photos != nil {
			p.Photos = upd.Photos
		}
		if upd.LocationLat != nil {
			lat := *upd.LocationLat
			p.LocationLat = &lat
		}
		if upd.LocationLng != nil {
			lng := *upd.LocationLng
			p.LocationLng = &lng
		}
		if upd.IsActive != nil {
			p.IsActive = *upd.IsActive
		}
		return *p, nil
	}
	return models.Profile{}, mongo.ErrNoDocuments
}

func (f *fakeStore) ListProfiles(ctx context.Context, exclude primitive.ObjectID, limit int64) ([]models.Profile, error) {
	var out []models.Profile
	for _, p := range f.profiles {
		if p.ID == exclude {
			continue
		}
		out = append(out, p)
		if limit > 0 && int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeStore) CreateSwipe(ctx context.Context, userID, targetID primitive.ObjectID, action string) (models.Swipe, error) {
	swipe := models.Swipe{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		TargetID:  targetID,
		Action:    action,
		CreatedAt: f.now(),
	}
	f.swipes = append(f.swipes, swipe)
	return swipe, nil
}

func (f *fakeStore) HasLikeSwipe(ctx context.Context, userID, targetID primitive.ObjectID) (bool, error) {
	for _, s := range f.swipes {
		if s.UserID == userID && s.TargetID == targetID && s.Action == models.ActionLike {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) MatchByPair(ctx context.Context, a, b primitive.ObjectID) (models.Match, error) {
	for _, m := range f.matches {
		if (m.UserA == a && m.UserB == b) || (m.UserA == b && m.UserB == a) {
			return m, nil
		}
	}
	return models.Match{}, mongo.ErrNoDocuments
}

func (f *fakeStore) CreateMatch(ctx context.Context, a, b primitive.ObjectID) (models.Match, error) {
	match := models.Match{ID: primitive.NewObjectID(), UserA: a, UserB: b, CreatedAt: f.now()}
	f.matches = append(f.matches, match)
	return match, nil
}

func (f *fakeStore) MatchesForUser(ctx context.Context, id primitive.ObjectID) ([]models.Match, error) {
	var out []models.Match
	for i := len(f.matches) - 1; i >= 0; i-- {
		m := f.matches[i]
		if m.UserA == id || m.UserB == id {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateMessage(ctx context.Context, matchID, senderID primitive.ObjectID, text string) (models.Message, error) {
	msg := models.Message{
		ID:        primitive.NewObjectID(),
		MatchID:   matchID,
		SenderID:  senderID,
		Text:      text,
		CreatedAt: f.now(),
	}
	f.messages = append(f.messages, msg)
	return msg, nil
}

func (f *fakeStore) MessagesForMatch(ctx context.Context, matchID primitive.ObjectID, limit int64) ([]models.Message, error) {
	var out []models.Message
	for i := len(f.messages) - 1; i >= 0; i-- {
		if f.messages[i].MatchID != matchID {
			continue
		}
		out = append(out, f.messages[i])
		if limit > 0 && int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

// seedProfile inserts a profile directly, bypassing the OTP flow.
func (f *fakeStore) seedProfile(email, name string) models.Profile {
	profile, _ := f.CreateProfile(context.Background(), email, name)
	return profile
}

// seedOTP inserts a code record with a known value.
func (f *fakeStore) seedOTP(email, code string) models.OTP {
	otp, _ := f.CreateOTP(context.Background(), email, code)
	return otp
}

func newTestRouter() (*gin.Engine, *fakeStore) {
	gin.SetMode(gin.TestMode)
	store := newFakeStore()
	return routes.SetupRouter(handlers.New(store)), store
}

func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "unexpected status, body: %s", w.Body.String())
}
