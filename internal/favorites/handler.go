package favorites

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
// GET /favorites
// --------------------------------------------------
//

func (h *Handler) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ids, err := h.service.List(c.Request.Context(), userID.(string))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		if ids == nil {
			ids = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"favorites": ids})
	}
}

//
// --------------------------------------------------
// POST /favorites/:stationId/toggle
// --------------------------------------------------
//

func (h *Handler) Toggle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ids, err := h.service.Toggle(
			c.Request.Context(),
			userID.(string),
			c.Param("stationId"),
		)
		if errors.Is(err, ErrCapacityExceeded) {
			c.JSON(http.StatusConflict, gin.H{
				"error":     err.Error(),
				"favorites": ids,
			})
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

		c.JSON(http.StatusOK, gin.H{"favorites": ids})
	}
}
