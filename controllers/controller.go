package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"conference-portal-api/events"
	"conference-portal-api/middleware"
	"conference-portal-api/services"

	"github.com/gin-gonic/gin"
)

// Services are the workflow services the handlers call into.
type Services struct {
	Auth        *services.AuthService
	Submissions *services.SubmissionService
	Payments    *services.PaymentService
	Inquiries   *services.InquiryService
	Profiles    *services.ProfileService
	Dashboard   *services.DashboardService
}

// Options configure token issuance and the admin event stream.
type Options struct {
	JWTSecret   string
	JWTLifetime time.Duration
	Bus         *events.Bus
	Logger      *slog.Logger
	Now         func() time.Time
}

// Handler serves the /api/v1 endpoints.
type Handler struct {
	svc  Services
	opts Options
	log  *slog.Logger
}

func New(svc Services, opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.JWTLifetime <= 0 {
		opts.JWTLifetime = 24 * time.Hour
	}
	return &Handler{svc: svc, opts: opts, log: opts.Logger}
}

func (h *Handler) session(c *gin.Context) (services.Session, bool) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication context missing"})
		return services.Session{}, false
	}
	return sess, true
}

// respondError maps service errors onto HTTP statuses.
func (h *Handler) respondError(c *gin.Context, err error) {
	var validation *services.ValidationError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message, "field": validation.Field})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, services.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "The record was changed by someone else, reload and try again"})
	case errors.Is(err, services.ErrConfirmationRequired):
		c.JSON(http.StatusPreconditionRequired, gin.H{"error": "Deletion must be confirmed with confirm=true"})
	default:
		h.log.ErrorContext(c.Request.Context(), "request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
