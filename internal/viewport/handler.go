package viewport

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"fuelsmart/internal/filtersort"
	"fuelsmart/internal/geocache"
	"fuelsmart/internal/station"
)

type Handler struct {
	scheduler *Scheduler
	cache     *geocache.Cache
}

func NewHandler(scheduler *Scheduler, cache *geocache.Cache) *Handler {
	return &Handler{scheduler: scheduler, cache: cache}
}

//
// --------------------------------------------------
// POST /viewport/region
// --------------------------------------------------
//

func (h *Handler) RegionChanged() gin.HandlerFunc {
	return func(c *gin.Context) {
		var region Region
		if err := c.ShouldBindJSON(&region); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if region.LatSpan <= 0 || region.LonSpan <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "span must be positive"})
			return
		}

		h.scheduler.OnRegionChange(region)
		c.JSON(http.StatusAccepted, gin.H{"cached": h.cache.Len()})
	}
}

//
// --------------------------------------------------
// GET /map/stations  (filtered view over the cache)
// --------------------------------------------------
//

func (h *Handler) VisibleStations() gin.HandlerFunc {
	return func(c *gin.Context) {
		criteria, err := parseCriteria(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		records := filtersort.Apply(h.cache.All(), criteria)
		c.JSON(http.StatusOK, gin.H{"stations": records})
	}
}

func parseCriteria(c *gin.Context) (filtersort.Criteria, error) {
	var crit filtersort.Criteria

	if raw := c.Query("brands"); raw != "" {
		crit.Brands = strings.Split(raw, ",")
	}

	if raw := c.Query("subtype"); raw != "" {
		sub := station.FuelSubtype(raw)
		if !sub.Valid() {
			return crit, errInvalidParam("subtype")
		}
		crit.Subtype = &sub
	} else if raw := c.Query("category"); raw != "" {
		cat := station.FuelCategory(raw)
		if !cat.Valid() {
			return crit, errInvalidParam("category")
		}
		crit.Category = &cat
	}

	if raw := c.Query("ceiling"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			return crit, errInvalidParam("ceiling")
		}
		crit.PriceCeiling = &v
	}

	if raw := c.Query("radiusKm"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			return crit, errInvalidParam("radiusKm")
		}
		crit.RadiusKm = &v

		latRaw, lonRaw := c.Query("lat"), c.Query("lon")
		if latRaw != "" && lonRaw != "" {
			lat, latErr := strconv.ParseFloat(latRaw, 64)
			lon, lonErr := strconv.ParseFloat(lonRaw, 64)
			if latErr != nil || lonErr != nil {
				return crit, errInvalidParam("lat/lon")
			}
			crit.Origin = &station.Coordinate{Lat: lat, Lon: lon}
		}
		// Without lat/lon the radius criterion stays a no-op.
	}

	switch c.Query("sort") {
	case "":
	case "asc":
		crit.Order = filtersort.SortAsc
	case "desc":
		crit.Order = filtersort.SortDesc
	default:
		return crit, errInvalidParam("sort")
	}

	return crit, nil
}

type paramError string

func (e paramError) Error() string { return "invalid " + string(e) }

func errInvalidParam(name string) error { return paramError(name) }
