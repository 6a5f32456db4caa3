package controllers

import (
	"net/http"

	"conference-portal-api/services"

	"github.com/gin-gonic/gin"
)

// GET /api/v1/profile
func (h *Handler) GetProfile(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	profile, err := h.svc.Profiles.GetForOwner(c.Request.Context(), sess)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// PUT /api/v1/profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req services.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	profile, err := h.svc.Profiles.Upsert(c.Request.Context(), sess, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile saved", "profile": profile})
}
