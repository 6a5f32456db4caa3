package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/v1/admin/dashboard
func (h *Handler) AdminDashboard(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	stats, err := h.svc.Dashboard.AdminStats(c.Request.Context(), sess)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GET /api/v1/dashboard/me
func (h *Handler) UserDashboard(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	stats, err := h.svc.Dashboard.UserStats(c.Request.Context(), sess)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
