package report

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fuelsmart/internal/core"
	"fuelsmart/internal/storage"
)

type Handler struct {
	service  *Service
	uploader *storage.EvidenceUploader
}

// NewHandler wires the lifecycle service; uploader may be nil when no
// object storage is configured (evidence uploads then 503).
func NewHandler(service *Service, uploader *storage.EvidenceUploader) *Handler {
	return &Handler{service: service, uploader: uploader}
}

func currentUser(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	return userID.(string), true
}

func renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrAlreadyVoted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrReportNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case core.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

//
// --------------------------------------------------
// POST /reports
// --------------------------------------------------
//

func (h *Handler) Submit() gin.HandlerFunc {
	return func(c *gin.Context) {
		reporterID, ok := currentUser(c)
		if !ok {
			return
		}

		var draft Draft
		if err := c.ShouldBindJSON(&draft); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		rep, err := h.service.Submit(c.Request.Context(), reporterID, draft)
		if err != nil {
			renderError(c, err)
			return
		}

		c.JSON(http.StatusCreated, rep)
	}
}

//
// --------------------------------------------------
// POST /reports/:id/votes
// --------------------------------------------------
//

func (h *Handler) Vote() gin.HandlerFunc {
	return func(c *gin.Context) {
		voterID, ok := currentUser(c)
		if !ok {
			return
		}

		var req struct {
			Confirm *bool `json:"confirm"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Confirm == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "confirm is required"})
			return
		}

		outcome, err := h.service.Vote(
			c.Request.Context(),
			c.Param("id"),
			voterID,
			*req.Confirm,
		)
		if err != nil {
			renderError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"outcome": outcome})
	}
}

//
// --------------------------------------------------
// DELETE /reports/:id
// --------------------------------------------------
//

func (h *Handler) Withdraw() gin.HandlerFunc {
	return func(c *gin.Context) {
		reporterID, ok := currentUser(c)
		if !ok {
			return
		}

		err := h.service.Withdraw(c.Request.Context(), c.Param("id"), reporterID)
		if err != nil {
			renderError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "report withdrawn"})
	}
}

//
// --------------------------------------------------
// GET /reports/mine
// --------------------------------------------------
//

func (h *Handler) Mine() gin.HandlerFunc {
	return func(c *gin.Context) {
		reporterID, ok := currentUser(c)
		if !ok {
			return
		}

		rep, err := h.service.PendingFor(c.Request.Context(), reporterID)
		if err != nil {
			renderError(c, err)
			return
		}
		if rep == nil {
			c.JSON(http.StatusOK, gin.H{"report": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"report": rep})
	}
}

//
// --------------------------------------------------
// GET /reports
// --------------------------------------------------
//

func (h *Handler) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		reports, err := h.service.ListPending(c.Request.Context())
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"reports": reports})
	}
}

//
// --------------------------------------------------
// POST /reports/:id/evidence
// --------------------------------------------------
//

func (h *Handler) UploadEvidence() gin.HandlerFunc {
	return func(c *gin.Context) {
		reporterID, ok := currentUser(c)
		if !ok {
			return
		}
		if h.uploader == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "evidence storage not configured"})
			return
		}

		file, err := c.FormFile("photo")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
			return
		}

		url, err := h.uploader.UploadEvidence(c.Request.Context(), c.Param("id"), file)
		if err != nil {
			if core.IsValidation(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		if err := h.service.AttachEvidence(c.Request.Context(), c.Param("id"), reporterID, url); err != nil {
			renderError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"photo_url": url})
	}
}
