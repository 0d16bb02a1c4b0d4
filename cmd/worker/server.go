package main

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"github.com/Krushna-ai/GDVG/internal/config"
	"github.com/Krushna-ai/GDVG/internal/infrastructure/queue"
	"github.com/Krushna-ai/GDVG/pkg/container"
)

func startServer(c *container.Container, cfg config.WorkerConfig, handlers *handlerRegistry) (*asynq.Server, error) {
	mux := asynq.NewServeMux()
	handlers.register(mux)

	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	srv := asynq.NewServer(c.RedisOpt(), asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue.QueueDefault: 6,
			queue.QueueLow:     2,
		},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			log.Error().Err(err).Str("type", task.Type()).Msg("task failed")
		}),
	})

	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("start task server: %w", err)
	}
	return srv, nil
}
