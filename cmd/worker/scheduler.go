package main

import (
	"fmt"

	"github.com/Krushna-ai/GDVG/internal/config"
	"github.com/Krushna-ai/GDVG/internal/infrastructure/queue"
	"github.com/Krushna-ai/GDVG/pkg/container"
)

func startScheduler(c *container.Container, cfg config.WorkerConfig) (*queue.Scheduler, error) {
	scheduler := queue.NewScheduler(c.RedisOpt())

	if err := scheduler.RegisterSitemapRefresh(cfg.SitemapRefreshInterval); err != nil {
		return nil, err
	}
	if err := scheduler.Start(); err != nil {
		return nil, fmt.Errorf("start scheduler: %w", err)
	}
	return scheduler, nil
}
