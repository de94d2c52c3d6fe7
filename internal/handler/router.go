package handler

import (
	"strings"

	"core/internal/config"
	"core/internal/metrics"
	"core/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by NewRouter
type Handlers struct {
	Chat      *ChatHandler
	Interpret *InterpretHandler
	Health    *HealthHandler
}

// NewRouter builds the gin engine with middleware and all routes
func NewRouter(cfg *config.Config, logger zerolog.Logger, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = splitList(cfg.Server.AllowedOrigins)
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{"*"}
	}
	corsConfig.AllowMethods = splitList(cfg.Server.AllowedMethods)
	corsConfig.AllowHeaders = splitList(cfg.Server.AllowedHeaders)
	router.Use(cors.New(corsConfig))

	router.GET("/health", h.Health.Health)
	router.GET("/version", h.Health.Version)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API routes
	apiV1 := router.Group("/api/v1")
	apiV1.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)))
	{
		// Session endpoints
		apiV1.POST("/sessions", h.Chat.CreateSession)
		apiV1.GET("/sessions/:id", h.Chat.GetSession)
		apiV1.DELETE("/sessions/:id", h.Chat.DeleteSession)
		apiV1.POST("/sessions/:id/messages", h.Chat.SendMessage)
		apiV1.POST("/sessions/:id/messages/stream", h.Chat.SendMessageStream) // Streaming turn

		// Stateless endpoints
		apiV1.POST("/interpret", h.Interpret.Interpret)
		apiV1.POST("/suggestions", h.Interpret.Suggest)
		apiV1.GET("/localities", h.Interpret.Localities)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "API endpoint not found"})
	})

	return router
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
