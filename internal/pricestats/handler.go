package pricestats

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

//
// --------------------------------------------------
// GET /stats/:municipality
// --------------------------------------------------
//

func (h *Handler) GetByMunicipality() gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshots, err := h.repo.GetByMunicipality(
			c.Request.Context(),
			c.Param("municipality"),
		)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		if len(snapshots) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "no price data for municipality"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
	}
}

//
// --------------------------------------------------
// POST /stats/recompute  (admin)
// --------------------------------------------------
//

func (h *Handler) Recompute() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.repo.Recompute(c.Request.Context()); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "snapshots recomputed"})
	}
}
