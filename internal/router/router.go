package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"fuelsmart/internal/auth"
	"fuelsmart/internal/contributor"
	"fuelsmart/internal/favorites"
	"fuelsmart/internal/middleware"
	"fuelsmart/internal/pricestats"
	"fuelsmart/internal/report"
	"fuelsmart/internal/station"
	"fuelsmart/internal/viewport"
)

// Deps holds the handlers the router wires up. The composition root
// in cmd/api builds them against Postgres; tests build them against
// the in-memory repositories.
type Deps struct {
	Auth         *auth.Handler
	Stations     *station.Handler
	Contributors *contributor.Handler
	Viewport     *viewport.Handler
	Reports      *report.Handler
	Favorites    *favorites.Handler
	Stats        *pricestats.Handler
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", deps.Auth.Register)
		authGroup.POST("/login", deps.Auth.Login)
	}

	// ───────────────────────── STATIONS ─────────────────────────
	stations := r.Group("/stations")
	{
		stations.GET("", deps.Stations.ListInBoundingBox())
		stations.GET("/:id", deps.Stations.GetStation())

		protected := stations.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/:id/prices", deps.Stations.SubmitPrices())
		}

		admin := stations.Group("")
		admin.Use(
			middleware.AuthMiddleware(),
			middleware.RequireRole(auth.RoleAdmin),
		)
		{
			admin.POST("", deps.Stations.SeedStation())
		}
	}

	// ───────────────────────── VIEWPORT ─────────────────────────
	r.POST("/viewport/region", deps.Viewport.RegionChanged())
	r.GET("/map/stations", deps.Viewport.VisibleStations())

	// ───────────────────────── REPORTS ─────────────────────────
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.POST("", deps.Reports.Submit())
		reports.GET("", deps.Reports.List())
		reports.GET("/mine", deps.Reports.Mine())
		reports.POST("/:id/votes", deps.Reports.Vote())
		reports.POST("/:id/evidence", deps.Reports.UploadEvidence())
		reports.DELETE("/:id", deps.Reports.Withdraw())
	}

	// ───────────────────────── FAVORITES ─────────────────────────
	favGroup := r.Group("/favorites")
	favGroup.Use(middleware.AuthMiddleware())
	{
		favGroup.GET("", deps.Favorites.List())
		favGroup.POST("/:stationId/toggle", deps.Favorites.Toggle())
	}

	// ───────────────────────── CONTRIBUTORS ─────────────────────────
	r.GET("/contributors/:id", deps.Contributors.GetProfile())

	contribVotes := r.Group("/contributors")
	contribVotes.Use(middleware.AuthMiddleware())
	{
		contribVotes.POST("/:id/votes", deps.Contributors.Vote())
	}

	// ───────────────────────── PRICE STATS ─────────────────────────
	r.GET("/stats/:municipality", deps.Stats.GetByMunicipality())

	statsAdmin := r.Group("/stats")
	statsAdmin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleAdmin),
	)
	{
		statsAdmin.POST("/recompute", deps.Stats.Recompute())
	}

	return r
}
