package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const defaultDiscoverLimit = 10

// Discover lists candidate profiles: everyone except the caller, in
// store-natural order, with no ranking or filtering.
func (h *Handler) Discover(c *gin.Context) {
	profileID, ok := objectIDQuery(c, "profile_id")
	if !ok {
		return
	}
	limit := limitQuery(c, defaultDiscoverLimit)

	ctx, cancel := storeContext()
	defer cancel()

	profiles, err := h.store.ListProfiles(ctx, profileID, limit)
	if err != nil {
		log.Printf("[Discover] lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profiles"})
		return
	}

	docs := make([]gin.H, 0, len(profiles))
	for _, p := range profiles {
		docs = append(docs, toDoc(p))
	}
	c.JSON(http.StatusOK, docs)
}
