package handlers

import (
	"crypto/rand"
	"log"
	"math/big"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

type RequestOTPInput struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyOTPInput struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// generateCode draws a uniform 6-digit code; leading zeros are allowed.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := n.String()
	return strings.Repeat("0", 6-len(code)) + code, nil
}

// RequestOTP issues a fresh code for the email. Demo behavior: the code is
// returned in the response instead of going out through a mail channel.
func (h *Handler) RequestOTP(c *gin.Context) {
	var req RequestOTPInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := generateCode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate code"})
		return
	}

	ctx, cancel := storeContext()
	defer cancel()

	otp, err := h.store.CreateOTP(ctx, req.Email, code)
	if err != nil {
		log.Printf("[RequestOTP] insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sent": true, "code": otp.Code})
}

// VerifyOTP checks the supplied code against the newest record for the
// email and provisions a profile shell on first success. Codes are never
// marked used, so replaying the latest code keeps working until a newer
// one is requested.
func (h *Handler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := storeContext()
	defer cancel()

	otp, err := h.store.LatestOTP(ctx, req.Email)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid code"})
		return
	}
	if err != nil {
		log.Printf("[VerifyOTP] lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if otp.Code != req.Code {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid code"})
		return
	}

	profile, err := h.store.ProfileByEmail(ctx, req.Email)
	if err == mongo.ErrNoDocuments {
		name := strings.SplitN(req.Email, "@", 2)[0]
		profile, err = h.store.CreateProfile(ctx, req.Email, name)
	}
	if err != nil {
		log.Printf("[VerifyOTP] profile error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "profile_id": profile.ID.Hex()})
}
