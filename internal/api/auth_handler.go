package api

import (
	"net/http"
	"strings"
	"time"

	"charmforge-be/internal/auth"
	"charmforge-be/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin checks the single configured admin credential and issues a
// short-lived token, both as a cookie and in the response body.
func (h *handlers) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	log := logger.FromCtx(c.Request.Context()).With(
		zap.String("layer", "handler"),
		zap.String("method", "AdminLogin"),
	)

	cfg := h.deps.Config
	if cfg.AdminEmail == "" || cfg.AdminPasswordHash == "" {
		log.Warn("admin login attempted without admin credentials configured")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	if !strings.EqualFold(req.Email, cfg.AdminEmail) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(req.Password)); err != nil {
		log.Warn("admin login rejected", zap.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, err := auth.GenerateAdminToken(cfg.AdminJWTSecret, cfg.AdminEmail)
	if err != nil {
		log.Error("failed to sign admin token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	secure := cfg.AppEnv == "production"
	c.SetCookie("access_token", token, int(12*time.Hour/time.Second), "/", "", secure, true)
	c.JSON(http.StatusOK, gin.H{"access_token": token})
}
