package controllers

import (
	"net/http"
	"strings"

	"conference-portal-api/models"
	"conference-portal-api/services"
	"conference-portal-api/utils"

	"github.com/gin-gonic/gin"
)

type ReviewPaperRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment"`
}

// splitKeywords accepts repeated "keywords" fields as well as one comma-separated value.
func splitKeywords(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.Split(v, ",")...)
	}
	return out
}

// POST /api/v1/papers (multipart: title, abstract, keywords, file)
func (h *Handler) SubmitPaper(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	upload, closer, err := readUpload(c, "file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file upload"})
		return
	}
	if closer != nil {
		defer closer.Close()
	}

	paper, err := h.svc.Submissions.Submit(c.Request.Context(), sess, services.SubmitPaperInput{
		Title:    c.PostForm("title"),
		Abstract: c.PostForm("abstract"),
		Keywords: splitKeywords(c.PostFormArray("keywords")),
		File:     upload,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Paper submitted successfully", "paper": paper})
}

// GET /api/v1/papers
func (h *Handler) ListMyPapers(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	papers, err := h.svc.Submissions.ListForOwner(c.Request.Context(), sess.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"papers": papers, "total": len(papers)})
}

// GET /api/v1/papers/:id
func (h *Handler) GetPaper(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	paper, err := h.svc.Submissions.Get(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"paper": paper, "status_label": utils.PaperStatusLabel(paper.Status)})
}

// GET /api/v1/papers/:id/history
func (h *Handler) PaperHistory(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	reviews, err := h.svc.Submissions.History(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// GET /api/v1/admin/papers?status=
func (h *Handler) AdminListPapers(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	papers, err := h.svc.Submissions.ListAll(c.Request.Context(), sess)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, ok := utils.ParsePaperStatus(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown paper status", "field": "status"})
			return
		}
		filtered := papers[:0]
		for _, p := range papers {
			if p.Status == status {
				filtered = append(filtered, p)
			}
		}
		papers = filtered
	}

	c.JSON(http.StatusOK, gin.H{"papers": papers, "total": len(papers)})
}

// PUT /api/v1/admin/papers/:id/review
func (h *Handler) ReviewPaper(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req ReviewPaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, known := utils.ParsePaperStatus(req.Status)
	if !known {
		status = models.PaperStatus(req.Status)
	}

	paper, err := h.svc.Submissions.Review(c.Request.Context(), sess, c.Param("id"), status, req.Comment)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Paper reviewed successfully", "paper": paper})
}
