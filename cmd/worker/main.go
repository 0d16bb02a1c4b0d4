package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Krushna-ai/GDVG/internal/config"
	"github.com/Krushna-ai/GDVG/pkg/container"
	"github.com/Krushna-ai/GDVG/pkg/logger"
)

var errNoRedis = errors.New("worker requires REDIS_HOST")

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("worker stopped with error")
	}
}

func run(cfg *config.Config) error {
	if cfg.Redis.Host == "" {
		return errNoRedis
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := container.NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer c.Cleanup()

	handlers := newHandlerRegistry(c)

	srv, err := startServer(c, cfg.Worker, handlers)
	if err != nil {
		return err
	}
	scheduler, err := startScheduler(c, cfg.Worker)
	if err != nil {
		srv.Shutdown()
		return err
	}

	logger.Info("worker running", map[string]interface{}{
		"concurrency":      cfg.Worker.Concurrency,
		"sitemap_interval": cfg.Worker.SitemapRefreshInterval.String(),
	})

	<-ctx.Done()

	logger.Info("worker shutting down", nil)
	scheduler.Shutdown()
	srv.Shutdown()
	logger.Info("worker stopped", nil)
	return nil
}
