package controllers

import (
	"net/http"
	"strings"

	"conference-portal-api/models"
	"conference-portal-api/services"
	"conference-portal-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// POST /api/v1/payments (multipart: amount, currency, payment_method, notes, slip)
func (h *Handler) RecordPayment(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(c.PostForm("amount")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be a number", "field": "amount"})
		return
	}

	upload, closer, err := readUpload(c, "slip")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file upload"})
		return
	}
	if closer != nil {
		defer closer.Close()
	}

	payment, err := h.svc.Payments.RecordPayment(c.Request.Context(), sess, services.RecordPaymentInput{
		Amount:   amount,
		Currency: c.PostForm("currency"),
		Method:   c.PostForm("payment_method"),
		Slip:     upload,
		Notes:    c.PostForm("notes"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Payment recorded successfully", "payment": payment})
}

// GET /api/v1/payments
func (h *Handler) ListMyPayments(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	payments, err := h.svc.Payments.ListForOwner(c.Request.Context(), sess.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments, "total": len(payments)})
}

// GET /api/v1/payments/:id
func (h *Handler) GetPayment(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	payment, err := h.svc.Payments.Get(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment, "status_label": utils.PaymentStatusLabel(payment.Status)})
}

// GET /api/v1/admin/payments?status=
func (h *Handler) AdminListPayments(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	payments, err := h.svc.Payments.ListAll(c.Request.Context(), sess)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, ok := utils.ParsePaymentStatus(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown payment status", "field": "status"})
			return
		}
		filtered := payments[:0]
		for _, p := range payments {
			if p.Status == status {
				filtered = append(filtered, p)
			}
		}
		payments = filtered
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments, "total": len(payments)})
}

// PUT /api/v1/admin/payments/:id/status
func (h *Handler) UpdatePaymentStatus(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, known := utils.ParsePaymentStatus(req.Status)
	if !known {
		status = models.PaymentStatus(req.Status)
	}

	payment, err := h.svc.Payments.UpdateStatus(c.Request.Context(), sess, c.Param("id"), status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment status updated", "payment": payment})
}
