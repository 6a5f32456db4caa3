package controllers

import (
	"net/http"

	"conference-portal-api/middleware"
	"conference-portal-api/models"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token   string      `json:"token"`
	User    models.User `json:"user"`
	Message string      `json:"message"`
}

// Login handles user authentication
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.svc.Auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := middleware.GenerateToken(h.opts.JWTSecret, h.opts.JWTLifetime, user, h.opts.Now())
	if err != nil {
		h.log.ErrorContext(c.Request.Context(), "token signing failed", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:   token,
		User:    *user,
		Message: "Login successful",
	})
}

// Me returns the account behind the current token.
func (h *Handler) Me(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	user, err := h.svc.Auth.CurrentUser(c.Request.Context(), sess)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "session": sess})
}
