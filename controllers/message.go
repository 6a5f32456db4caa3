package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"conference-portal-api/services"
	"conference-portal-api/utils"

	"github.com/gin-gonic/gin"
)

type ContactRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
	Category string `json:"category"`
}

type RespondRequest struct {
	Response string `json:"response"`
}

// POST /api/v1/messages (public contact form)
func (h *Handler) SubmitMessage(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	msg, err := h.svc.Inquiries.SubmitInquiry(c.Request.Context(), services.SubmitInquiryInput{
		Name:     req.Name,
		Email:    req.Email,
		Subject:  req.Subject,
		Body:     req.Message,
		Priority: req.Priority,
		Category: req.Category,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Message sent successfully", "id": msg.ID})
}

// GET /api/v1/admin/messages?unread=true&priority=urgent
func (h *Handler) AdminListMessages(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var filter services.InquiryFilter
	if raw := strings.TrimSpace(c.Query("unread")); raw != "" {
		unread, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unread must be true or false", "field": "unread"})
			return
		}
		filter.UnreadOnly = unread
	}
	if raw := strings.TrimSpace(c.Query("priority")); raw != "" {
		p, ok := utils.ParsePriority(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown priority", "field": "priority"})
			return
		}
		filter.Priority = p
	}

	messages, err := h.svc.Inquiries.ListAll(c.Request.Context(), sess, filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages, "total": len(messages)})
}

// GET /api/v1/admin/messages/counts
func (h *Handler) MessageCounts(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	counts, err := h.svc.Inquiries.Counts(c.Request.Context(), sess)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

// GET /api/v1/admin/messages/:id (marks the message read on first view)
func (h *Handler) OpenMessage(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	msg, err := h.svc.Inquiries.Open(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "priority_label": utils.PriorityLabel(msg.Priority)})
}

// POST /api/v1/admin/messages/:id/read
func (h *Handler) MarkMessageRead(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	msg, err := h.svc.Inquiries.MarkRead(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// POST /api/v1/admin/messages/:id/respond
func (h *Handler) RespondMessage(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	msg, err := h.svc.Inquiries.Respond(c.Request.Context(), sess, c.Param("id"), req.Response)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// DELETE /api/v1/admin/messages/:id?confirm=true
func (h *Handler) DeleteMessage(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	if err := h.svc.Inquiries.Remove(c.Request.Context(), sess, c.Param("id"), confirmed); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}
