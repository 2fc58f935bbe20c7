package handlers

import (
	"log"
	"net/http"

	"sparkd/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

func (h *Handler) GetMyProfile(c *gin.Context) {
	profileID, ok := objectIDQuery(c, "profile_id")
	if !ok {
		return
	}

	ctx, cancel := storeContext()
	defer cancel()

	profile, err := h.store.ProfileByID(ctx, profileID)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	if err != nil {
		log.Printf("[GetMyProfile] lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, toDoc(profile))
}

// UpdateMyProfile applies only the fields present in the request body. An
// empty edit performs no write and reports {"updated": false}.
func (h *Handler) UpdateMyProfile(c *gin.Context) {
	profileID, ok := objectIDQuery(c, "profile_id")
	if !ok {
		return
	}

	var upd models.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if upd.IsEmpty() {
		c.JSON(http.StatusOK, gin.H{"updated": false})
		return
	}

	ctx, cancel := storeContext()
	defer cancel()

	profile, err := h.store.UpdateProfile(ctx, profileID, upd)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	if err != nil {
		log.Printf("[UpdateMyProfile] update error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, toDoc(profile))
}
