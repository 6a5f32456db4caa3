package controllers

import (
	"net/http"

	"conference-portal-api/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/v1/statuses
func (h *Handler) Statuses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"statuses": utils.StatusTables()})
}

// GET /api/v1/health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Conference Portal API is running",
	})
}
