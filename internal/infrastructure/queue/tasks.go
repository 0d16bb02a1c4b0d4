package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

const (
	QueueDefault = "default"
	QueueLow     = "low"

	TypeRefreshSitemap = "sitemap:refresh"
)

// RefreshSitemapPayload is carried by TypeRefreshSitemap tasks.
type RefreshSitemapPayload struct {
	Reason      string `json:"reason"`
	RequestedBy string `json:"requested_by,omitempty"`
}

func NewRefreshSitemapTask(p RefreshSitemapPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap payload: %w", err)
	}
	return asynq.NewTask(TypeRefreshSitemap, payload), nil
}

func ParseRefreshSitemapPayload(t *asynq.Task) (RefreshSitemapPayload, error) {
	var p RefreshSitemapPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("unmarshal sitemap payload: %w", err)
	}
	return p, nil
}

// RedisOpt builds the asynq connection options from the shared Redis settings.
func RedisOpt(addr, password string, db int) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: addr, Password: password, DB: db}
}

// Client enqueues background tasks.
type Client struct {
	client *asynq.Client
}

func NewClient(opt asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(opt)}
}

// EnqueueSitemapRefresh schedules a rebuild. A refresh already waiting in the
// queue absorbs the request and an empty task ID is returned.
func (c *Client) EnqueueSitemapRefresh(ctx context.Context, p RefreshSitemapPayload) (string, error) {
	task, err := NewRefreshSitemapTask(p)
	if err != nil {
		return "", err
	}

	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueLow),
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
		asynq.Unique(time.Minute),
	)
	if err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) {
			log.Debug().Str("reason", p.Reason).Msg("sitemap refresh already queued")
			return "", nil
		}
		return "", fmt.Errorf("enqueue sitemap refresh: %w", err)
	}

	log.Info().Str("task_id", info.ID).Str("reason", p.Reason).Msg("sitemap refresh enqueued")
	return info.ID, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
