package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lyricverse-api/internal/auth"
	"github.com/lyricverse-api/internal/config"
	"github.com/lyricverse-api/internal/service"
	"github.com/lyricverse-api/internal/storage"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, sessions *auth.Sessions, allow *auth.Allowlist, provider auth.Provider, blobs storage.BlobStore, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	songHandler := NewSongHandler(services, log)
	artistHandler := NewArtistHandler(services, log)
	submissionHandler := NewSubmissionHandler(services, log)
	authHandler := NewAuthHandler(services, sessions, allow, provider, log)
	userHandler := NewUserHandler(services, log)
	uploadHandler := NewUploadHandler(blobs, cfg, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(services))

	// Uploaded images
	router.Static("/uploads", cfg.Storage.UploadDir)

	// OAuth login flow
	oauth := router.Group("/auth")
	{
		oauth.GET("/google/login", authHandler.Login)
		oauth.GET("/google/callback", authHandler.Callback)
		oauth.POST("/logout", authHandler.Logout)
		oauth.GET("/me", auth.RequireAdmin(sessions, allow), authHandler.Me)
	}

	// Public API v1
	v1 := router.Group("/v1")
	{
		songs := v1.Group("/songs")
		{
			songs.GET("", songHandler.List)
			songs.GET("/search", songHandler.Search)
			songs.GET("/:id", songHandler.Get)
		}

		artists := v1.Group("/artists")
		{
			artists.GET("", artistHandler.List)
			artists.GET("/:id", artistHandler.Get)
		}

		v1.GET("/contributors", userHandler.Leaderboard)
		v1.POST("/submissions", submissionHandler.Submit)
	}

	// Admin API v1, gated by session cookie and allow-list
	admin := router.Group("/v1/admin", auth.RequireAdmin(sessions, allow))
	{
		admin.POST("/songs", songHandler.Create)
		admin.PUT("/songs/:id", songHandler.Update)
		admin.DELETE("/songs/:id", songHandler.Delete)

		admin.POST("/artists", artistHandler.Create)
		admin.PUT("/artists/:id", artistHandler.Update)
		admin.DELETE("/artists/:id", artistHandler.Delete)

		admin.GET("/submissions", submissionHandler.ListPending)
		admin.GET("/submissions/:id", submissionHandler.Get)
		admin.POST("/submissions/:id/approve", submissionHandler.Approve)
		admin.POST("/submissions/:id/reject", submissionHandler.Reject)
		admin.DELETE("/submissions/:id", submissionHandler.Delete)

		admin.POST("/uploads", uploadHandler.Upload)
		admin.GET("/profile", userHandler.Profile)
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "lyricverse-api",
	})
}

// metricsHandler returns catalog counts
func metricsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		songCount, _ := services.Song.Count(ctx)
		artistCount, _ := services.Artist.Count(ctx)
		submissionCount, _ := services.Submission.Count(ctx)

		c.JSON(http.StatusOK, gin.H{
			"database": gin.H{
				"songs":       songCount,
				"artists":     artistCount,
				"submissions": submissionCount,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
