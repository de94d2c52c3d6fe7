package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"core/internal/cache"
	"core/internal/config"
	"core/internal/handler"
	"core/internal/logging"
	"core/internal/repository"
	"core/internal/service"
	"core/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging, "estatechat")
	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("EstateChat conversation service")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Vocabulary cache
	vocabCache := newVocabularyCache(cfg, logger)
	defer vocabCache.Close()

	// Optional turn audit log
	var (
		turnLog repository.TurnLogger = repository.NopTurnLogger{}
		dbCheck handler.Pinger
	)
	if cfg.PostgreSQL.Enabled {
		repo, err := repository.NewPostgresRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer repo.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = repo.EnsureSchema(ctx)
		cancel()
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to prepare turn log schema")
		}

		turnLog = repo
		dbCheck = repo
		logger.Info().Msg("turn audit log enabled (PostgreSQL)")
	} else {
		logger.Info().Msg("turn audit log disabled, set DATABASE_URL to enable")
	}

	// Initialize services
	analytics := service.NewHTTPAnalyticsClient(cfg.Analytics, logger)
	vocabulary := service.NewVocabularyLoader(analytics, vocabCache, cfg.VocabularyTTL(), logger)
	ranker := service.NewRanker(
		cfg.Ranking.WeightGrowth,
		cfg.Ranking.WeightDemand,
		cfg.Ranking.WeightRisk,
	)
	conversation := service.NewConversationService(analytics, ranker, turnLog, logger)
	sessions := session.NewStore(cfg.SessionTTL(), cfg.Session.MaxSessions)

	logger.Info().
		Str("analytics_base_url", cfg.Analytics.BaseURL).
		Dur("session_ttl", cfg.SessionTTL()).
		Msg("services initialized")

	// Initialize handlers
	router := handler.NewRouter(cfg, logger, handler.Handlers{
		Chat:      handler.NewChatHandler(sessions, conversation, vocabulary),
		Interpret: handler.NewInterpretHandler(conversation, vocabulary),
		Health: handler.NewHealthHandler(handler.BuildInfo{
			Version:   Version,
			BuildTime: BuildTime,
			GitCommit: GitCommit,
		}, analytics, dbCheck),
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
	logger.Info().Msg("server stopped")
}

// newVocabularyCache connects to Redis when enabled and falls back to an
// in-process cache otherwise
func newVocabularyCache(cfg *config.Config, logger zerolog.Logger) cache.Client {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryClient()
	}

	client, err := cache.NewRedisClient(cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
		Prefix:   cfg.Redis.Prefix,
	})
	if err != nil {
		logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, using in-process vocabulary cache")
		return cache.NewMemoryClient()
	}

	logger.Info().Str("addr", cfg.Redis.Addr).Msg("vocabulary cache connected (Redis)")
	return client
}
