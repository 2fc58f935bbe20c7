package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TestDatabase reports store connectivity inline instead of failing the
// call, so a broken database still yields a readable diagnostic.
func (h *Handler) TestDatabase(c *gin.Context) {
	response := gin.H{
		"backend":  "running",
		"database": "not connected",
	}

	ctx, cancel := storeContext()
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		response["error"] = err.Error()
		c.JSON(http.StatusOK, response)
		return
	}
	response["database"] = "connected"

	if names, err := h.store.CollectionNames(ctx); err != nil {
		response["error"] = err.Error()
	} else {
		response["collections"] = names
	}

	c.JSON(http.StatusOK, response)
}
