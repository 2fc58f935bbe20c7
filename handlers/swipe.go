package handlers

import (
	"log"
	"net/http"

	"sparkd/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type SwipeInput struct {
	TargetID string `json:"target_id" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

// Swipe records a like/pass decision and detects a mutual like. The swipe
// itself is always appended, duplicates included. The mutual-like check,
// the match lookup and the match insert are separate store operations; two
// racing mutual likes can each miss the other's insert and produce two
// match records for the pair. That matches the original flow and is kept.
func (h *Handler) Swipe(c *gin.Context) {
	userID, ok := objectIDQuery(c, "profile_id")
	if !ok {
		return
	}

	var req SwipeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Reject before anything is persisted.
	if req.Action != models.ActionLike && req.Action != models.ActionPass {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
		return
	}

	targetID, err := primitive.ObjectIDFromHex(req.TargetID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target_id"})
		return
	}

	ctx, cancel := storeContext()
	defer cancel()

	if _, err := h.store.CreateSwipe(ctx, userID, targetID, req.Action); err != nil {
		log.Printf("[Swipe] insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record swipe"})
		return
	}

	matched := false
	var matchID *string

	if req.Action == models.ActionLike {
		likedBack, err := h.store.HasLikeSwipe(ctx, targetID, userID)
		if err != nil {
			log.Printf("[Swipe] like lookup error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check for match"})
			return
		}

		if likedBack {
			match, err := h.store.MatchByPair(ctx, userID, targetID)
			if err == mongo.ErrNoDocuments {
				match, err = h.store.CreateMatch(ctx, userID, targetID)
			}
			if err != nil {
				log.Printf("[Swipe] match error: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create match"})
				return
			}

			matched = true
			hex := match.ID.Hex()
			matchID = &hex
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "match": matched, "match_id": matchID})
}

// GetMatches lists the caller's matches newest first, each augmented with
// the counterpart profile under "other" (null if that profile is gone).
func (h *Handler) GetMatches(c *gin.Context) {
	userID, ok := objectIDQuery(c, "profile_id")
	if !ok {
		return
	}

	ctx, cancel := storeContext()
	defer cancel()

	matches, err := h.store.MatchesForUser(ctx, userID)
	if err != nil {
		log.Printf("[GetMatches] lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch matches"})
		return
	}

	docs := make([]gin.H, 0, len(matches))
	for _, m := range matches {
		doc := toDoc(m)

		other, err := h.store.ProfileByID(ctx, m.Other(userID))
		switch {
		case err == mongo.ErrNoDocuments:
			doc["other"] = nil
		case err != nil:
			log.Printf("[GetMatches] profile lookup error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch matched profile"})
			return
		default:
			doc["other"] = toDoc(other)
		}

		docs = append(docs, doc)
	}

	c.JSON(http.StatusOK, docs)
}
