package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taskvault/taskvault/internal/config"
	v1 "github.com/taskvault/taskvault/internal/delivery/http/v1"
)

func (a *App) newRouter(handler v1.Handler) *gin.Engine {
	if a.cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	registry := prometheus.NewRegistry()
	metrics := v1.NewMetrics(registry)
	router.Use(metrics.Middleware())
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	router.GET("/healthz", a.handleHealthz)

	router.POST("/signup", handler.HandleSignUp)
	router.POST("/login", handler.HandleLogIn)

	user := router.Group("/user", handler.HandleAuthMiddleware)
	user.GET("/me", handler.HandleGetProfile)
	user.PUT("/update", handler.HandleUpdateProfile)

	tasks := router.Group("/tasks", handler.HandleAuthMiddleware)
	tasks.POST("/", handler.HandleCreateTask)
	tasks.GET("/", handler.HandleGetTasks)
	tasks.GET("/:id", handler.HandleGetTask)
	tasks.PUT("/:id", handler.HandleUpdateTask)
	tasks.DELETE("/:id", handler.HandleDeleteTask)

	return router
}

func (a *App) handleHealthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, 2*time.Second)
	defer cancel()

	if err := a.pgPool.Ping(ctx); err != nil {
		a.logger.Error().
			Err(err).
			Msg("postgres health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "postgres unavailable"})
		return
	}
	if err := a.redisClient.Ping(ctx).Err(); err != nil {
		a.logger.Error().
			Err(err).
			Msg("redis health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "redis unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Run serves HTTP until SIGINT/SIGTERM, then shuts down gracefully
// within the configured timeout.
func (a *App) Run() error {
	httpCfg := a.cfg.HTTP

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: a.router,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		a.logger.Error().
			Err(err).
			Msg("failed to listen and serve http")
		return err
	case <-quit:
	}

	a.logger.Info().Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		a.logger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		return err
	}

	a.logger.Info().Msg("shut down http server")
	return nil
}
