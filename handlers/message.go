package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const defaultMessageLimit = 50

type SendMessageInput struct {
	Text string `json:"text" binding:"required,min=1,max=2000"`
}

// GetMessages returns the most recent messages for a match in
// chronological reading order: the store yields them newest first and the
// slice is reversed on the way out.
func (h *Handler) GetMessages(c *gin.Context) {
	matchID, ok := objectIDQuery(c, "match_id")
	if !ok {
		return
	}
	limit := limitQuery(c, defaultMessageLimit)

	ctx, cancel := storeContext()
	defer cancel()

	messages, err := h.store.MessagesForMatch(ctx, matchID, limit)
	if err != nil {
		log.Printf("[GetMessages] lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	docs := make([]gin.H, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		docs = append(docs, toDoc(messages[i]))
	}
	c.JSON(http.StatusOK, docs)
}

// SendMessage appends a message to a match. The match and sender ids are
// trusted as supplied; there is no participant check.
func (h *Handler) SendMessage(c *gin.Context) {
	matchID, ok := objectIDQuery(c, "match_id")
	if !ok {
		return
	}
	senderID, ok := objectIDQuery(c, "sender_id")
	if !ok {
		return
	}

	var req SendMessageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := storeContext()
	defer cancel()

	msg, err := h.store.CreateMessage(ctx, matchID, senderID, req.Text)
	if err != nil {
		log.Printf("[SendMessage] insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, toDoc(msg))
}
