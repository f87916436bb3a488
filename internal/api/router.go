package api

import (
	"context"
	"net/http"
	"time"

	"github.com/dengue-surveillance-api/internal/config"
	"github.com/dengue-surveillance-api/internal/models"
	"github.com/dengue-surveillance-api/internal/realtime"
	"github.com/dengue-surveillance-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, hub *realtime.Hub, dbCheck func(context.Context) error, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.Server.CORSOrigin))

	// Handlers
	authHandler := NewAuthHandler(services, log)
	sightingHandler := NewSightingHandler(services, log)
	riskAreaHandler := NewRiskAreaHandler(services, log)
	caseHandler := NewCaseHandler(services, log)
	notificationHandler := NewNotificationHandler(services, log)
	wsHandler := NewWSHandler(services.Auth, hub, cfg, log)

	authenticated := authMiddleware(services.Auth)
	canWrite := requireRoles(models.RoleAdmin, models.RoleOperator)
	canDelete := requireRoles(models.RoleAdmin)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheck(dbCheck))
		api.GET("/ws", wsHandler.Connect)

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.GET("/verify", authHandler.Verify)
			// Registration is admin-only and sits behind authentication,
			// unlike the delivered system where the route skipped it.
			auth.POST("/register", authenticated, requireRoles(models.RoleAdmin), authHandler.Register)
		}

		sightings := api.Group("/sightings", authenticated)
		{
			sightings.GET("", sightingHandler.List)
			sightings.GET("/:id", sightingHandler.Get)
			sightings.POST("", canWrite, sightingHandler.Create)
			sightings.PUT("/:id", canWrite, sightingHandler.Update)
			sightings.DELETE("/:id", canDelete, sightingHandler.Delete)
		}

		riskAreas := api.Group("/risk-areas", authenticated)
		{
			riskAreas.GET("", riskAreaHandler.List)
			riskAreas.GET("/:id", riskAreaHandler.Get)
			riskAreas.POST("", canWrite, riskAreaHandler.Create)
			riskAreas.PUT("/:id", canWrite, riskAreaHandler.Update)
			riskAreas.DELETE("/:id", canDelete, riskAreaHandler.Delete)
		}

		cases := api.Group("/cases", authenticated)
		{
			cases.GET("", caseHandler.List)
			cases.GET("/stats/summary", caseHandler.Stats)
			cases.GET("/:id", caseHandler.Get)
			cases.POST("", canWrite, caseHandler.Create)
			cases.PUT("/:id", canWrite, caseHandler.Update)
			cases.DELETE("/:id", canDelete, caseHandler.Delete)
		}

		notifications := api.Group("/notifications", authenticated)
		{
			notifications.GET("", notificationHandler.List)
			notifications.GET("/unread-count", notificationHandler.UnreadCount)
			notifications.PUT("/read-all", notificationHandler.MarkAllRead)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(dbCheck func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"
		if dbCheck != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := dbCheck(ctx); err != nil {
				status = "degraded"
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    status,
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
					"error": "internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests with a per-request id
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		requestID := uuid.New().String()
		c.Writer.Header().Set("X-Request-ID", requestID)

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
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
