package routes

import (
	"net/http"
	"time"

	"sparkd/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(h *handlers.Handler) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:   []string{"Content-Length", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Dating API running"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/test", h.TestDatabase)

	// Auth (email OTP for demo; the code comes back in the response)
	auth := router.Group("/auth")
	auth.POST("/request-otp", h.RequestOTP)
	auth.POST("/verify-otp", h.VerifyOTP)

	// Caller identity is a plain profile_id query parameter on every route
	// below; there is no token layer.
	router.GET("/profiles/me", h.GetMyProfile)
	router.PUT("/profiles/me", h.UpdateMyProfile)

	router.GET("/discover", h.Discover)

	router.POST("/swipe", h.Swipe)
	router.GET("/matches", h.GetMatches)

	router.GET("/messages", h.GetMessages)
	router.POST("/messages", h.SendMessage)

	return router
}
