package sitemap

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"github.com/Krushna-ai/GDVG/internal/infrastructure/queue"
)

// RefreshHandler processes queue.TypeRefreshSitemap tasks on the worker.
type RefreshHandler struct {
	service *Service
}

func NewRefreshHandler(svc *Service) *RefreshHandler {
	return &RefreshHandler{service: svc}
}

func (h *RefreshHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	payload, err := queue.ParseRefreshSitemapPayload(task)
	if err != nil {
		// retrying cannot fix a malformed payload
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	_, summary, err := h.service.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh sitemap: %w", err)
	}

	log.Info().
		Str("reason", payload.Reason).
		Str("requested_by", payload.RequestedBy).
		Int("content", summary.Content).
		Int("people", summary.People).
		Int("skipped", summary.Skipped).
		Msg("sitemap refresh task done")
	return nil
}
