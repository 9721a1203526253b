package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pressfeed/pressfeed/app/cfg"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	setupRoutes(r, handler)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler) {
	// Feed state transitions, one route per control
	r.GET("/feed", handler.GetFeed)
	r.POST("/feed/tags/:slug/toggle", handler.ToggleTag)
	r.POST("/feed/sort/:mode", handler.SortBy)
	r.POST("/feed/page/:page", handler.GoToPage)

	// Read-only surfaces
	r.GET("/tags", handler.ListTags)
	r.GET("/articles/:slug", handler.GetArticle)
	r.GET("/rss", handler.GetRSS)
	r.GET("/health", handler.GetHealth)

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     cfg.Get().SiteTitle,
			"version":     cfg.Get().Version,
			"description": "Article feed with tag filtering, ranking and pagination",
			"endpoints": map[string]string{
				"feed":    "/feed",
				"toggle":  "/feed/tags/<slug>/toggle (POST)",
				"sort":    "/feed/sort/<recent|popular|trending> (POST)",
				"page":    "/feed/page/<n> (POST)",
				"tags":    "/tags",
				"article": "/articles/<slug>",
				"rss":     "/rss",
				"health":  "/health",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
