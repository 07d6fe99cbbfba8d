package contributor

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fuelsmart/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

//
// --------------------------------------------------
// GET /contributors/:id
// --------------------------------------------------
//

func (h *Handler) GetProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := h.service.GetProfile(c.Request.Context(), c.Param("id"))
		if err != nil {
			status := http.StatusNotFound
			if core.IsRemote(err) {
				status = http.StatusBadGateway
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":            p.ID,
			"display_name":  p.Label(),
			"contributions": p.Contributions,
			"likes":         p.Likes,
			"dislikes":      p.Dislikes,
		})
	}
}

//
// --------------------------------------------------
// POST /contributors/:id/votes
// --------------------------------------------------
//

func (h *Handler) Vote() gin.HandlerFunc {
	return func(c *gin.Context) {
		voterID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req struct {
			Type VoteType `json:"type"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		tally, err := h.service.Vote(
			c.Request.Context(),
			voterID.(string),
			c.Param("id"),
			req.Type,
		)
		if errors.Is(err, ErrDuplicateVote) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if core.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, tally)
	}
}
