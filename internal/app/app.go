package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/taskvault/taskvault/internal/config"
	v1 "github.com/taskvault/taskvault/internal/delivery/http/v1"
	"github.com/taskvault/taskvault/internal/identity"
	"github.com/taskvault/taskvault/internal/services"
	"github.com/taskvault/taskvault/internal/store"
)

// App is the application context: every dependency is constructed
// once here and injected, nothing lives in package-level state.
type App struct {
	cfg    *config.Config
	logger zerolog.Logger

	pgPool      *pgxpool.Pool
	redisClient *redis.Client

	router *gin.Engine
}

func New(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	pgPool, err := connectPostgres(logger, cfg.Postgres)
	if err != nil {
		return nil, err
	}

	redisClient, err := store.NewRedisClient(cfg.Redis)
	if err != nil {
		pgPool.Close()
		return nil, err
	}
	logger.Info().
		Str("addr", cfg.Redis.Addr).
		Msg("connected to redis")

	provider := identity.NewPostgresProvider(
		logger,
		pgPool,
		cfg.JWT.Issuer,
		cfg.JWT.SigningKey,
		cfg.JWT.TokenTTL,
	)
	if err := provider.Migrate(context.Background()); err != nil {
		redisClient.Close()
		pgPool.Close()
		return nil, err
	}

	docStore := store.NewRedisStore(logger, redisClient)
	taskService := services.NewTaskService(logger, docStore)
	userService := services.NewUserService(logger, provider, docStore)
	handler := v1.New(logger, provider, userService, taskService)

	a := &App{
		cfg:         cfg,
		logger:      logger,
		pgPool:      pgPool,
		redisClient: redisClient,
	}
	a.router = a.newRouter(handler)

	return a, nil
}

func (a *App) Close() {
	a.redisClient.Close()
	a.pgPool.Close()
	a.logger.Info().Msg("released application resources")
}
