package controllers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const eventKeepAlive = 25 * time.Second

// GET /api/v1/admin/events streams lifecycle events as server-sent events.
func (h *Handler) StreamEvents(c *gin.Context) {
	if h.opts.Bus == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event stream is not enabled"})
		return
	}

	feed, unsubscribe := h.opts.Bus.Subscribe()
	defer unsubscribe()

	ticker := time.NewTicker(eventKeepAlive)
	defer ticker.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case evt, ok := <-feed:
			if !ok {
				return false
			}
			c.SSEvent(evt.Type, evt)
			return true
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"at": h.opts.Now().UTC()})
			return true
		}
	})
}
