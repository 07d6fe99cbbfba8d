package station

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fuelsmart/internal/core"
)

type Handler struct {
	service *Service
	repo    Repository
	limit   int
}

func NewHandler(service *Service, repo Repository, queryLimit int) *Handler {
	return &Handler{service: service, repo: repo, limit: queryLimit}
}

//
// --------------------------------------------------
// GET /stations?minLat&maxLat&minLon&maxLon&limit
// --------------------------------------------------
//

func (h *Handler) ListInBoundingBox() gin.HandlerFunc {
	return func(c *gin.Context) {
		box, err := parseBox(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		limit := h.limit
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
				return
			}
			if n < limit {
				limit = n
			}
		}

		records, err := h.repo.ListInBoundingBox(c.Request.Context(), box, limit)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"stations": records})
	}
}

//
// --------------------------------------------------
// GET /stations/:id
// --------------------------------------------------
//

func (h *Handler) GetStation() gin.HandlerFunc {
	return func(c *gin.Context) {
		detail, err := h.service.GetStation(c.Request.Context(), c.Param("id"))
		if errors.Is(err, core.ErrStationGone) {
			// Degraded view state: the app shows a dismissible fetch
			// error instead of closing the sheet.
			c.JSON(http.StatusNotFound, gin.H{"error": "fetch error", "gone": true})
			return
		}
		if err != nil {
			status := http.StatusBadGateway
			if core.IsValidation(err) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, detail)
	}
}

//
// --------------------------------------------------
// POST /stations/:id/prices
// --------------------------------------------------
//

func (h *Handler) SubmitPrices() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req struct {
			Prices PriceMap `json:"prices"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		err := h.service.SubmitPriceReport(
			c.Request.Context(),
			c.Param("id"),
			userID.(string),
			req.Prices,
		)
		if errors.Is(err, core.ErrStationGone) {
			c.JSON(http.StatusNotFound, gin.H{"error": "station no longer exists"})
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

		c.JSON(http.StatusOK, gin.H{"message": "prices updated"})
	}
}

//
// --------------------------------------------------
// POST /stations  (admin direct seed)
// --------------------------------------------------
//

func (h *Handler) SeedStation() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Brand        string   `json:"brand"`
			Municipality string   `json:"municipality"`
			Lat          float64  `json:"lat"`
			Lon          float64  `json:"lon"`
			Prices       PriceMap `json:"prices"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		rec, err := h.service.SeedStation(
			c.Request.Context(),
			req.Brand,
			req.Municipality,
			req.Lat,
			req.Lon,
			req.Prices,
		)
		if core.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, rec)
	}
}

func parseBox(c *gin.Context) (BoundingBox, error) {
	var box BoundingBox
	fields := []struct {
		name string
		dst  *float64
	}{
		{"minLat", &box.MinLat},
		{"maxLat", &box.MaxLat},
		{"minLon", &box.MinLon},
		{"maxLon", &box.MaxLon},
	}
	for _, f := range fields {
		raw := c.Query(f.name)
		if raw == "" {
			return box, errors.New(f.name + " is required")
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return box, errors.New("invalid " + f.name)
		}
		*f.dst = v
	}
	if box.MinLat > box.MaxLat || box.MinLon > box.MaxLon {
		return box, errors.New("bounding box is inverted")
	}
	return box, nil
}
