package queue

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Krushna-ai/GDVG/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(opt asynq.RedisClientOpt) *Scheduler {
	return &Scheduler{
		scheduler: asynq.NewScheduler(opt, &asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		}),
	}
}

// RegisterSitemapRefresh rebuilds the sitemap every interval. A non-positive
// interval leaves the job unregistered.
func (s *Scheduler) RegisterSitemapRefresh(interval time.Duration) error {
	if interval <= 0 {
		logger.Info("sitemap refresh schedule disabled", nil)
		return nil
	}

	task, err := NewRefreshSitemapTask(RefreshSitemapPayload{Reason: "scheduled"})
	if err != nil {
		return err
	}

	cronSpec := "@every " + interval.String()
	if _, err := s.scheduler.Register(cronSpec, task,
		asynq.Queue(QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	); err != nil {
		logger.Error("failed to register sitemap refresh", err)
		return fmt.Errorf("register sitemap refresh: %w", err)
	}

	logger.Info("registered sitemap refresh", map[string]interface{}{"every": interval.String()})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
