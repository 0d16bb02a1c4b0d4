package sitemap

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Krushna-ai/GDVG/internal/infrastructure/queue"
	"github.com/Krushna-ai/GDVG/internal/shared/middleware"
	"github.com/Krushna-ai/GDVG/internal/shared/response"
)

// Enqueuer hands a refresh to the background worker.
type Enqueuer interface {
	EnqueueSitemapRefresh(ctx context.Context, p queue.RefreshSitemapPayload) (string, error)
}

type Handler struct {
	service *Service
	queue   Enqueuer
}

// NewHandler builds the handler. A nil queue makes Refresh run inline.
func NewHandler(svc *Service, q Enqueuer) *Handler {
	return &Handler{service: svc, queue: q}
}

// Sitemap handles GET /sitemap.xml.
func (h *Handler) Sitemap(c *gin.Context) {
	body, err := h.service.XML(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Str("request_id", c.GetString(middleware.RequestIDKey)).Msg("sitemap generation failed")
		response.InternalServerError(c, "Failed to generate sitemap")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// Refresh handles POST /api/admin/sitemap/refresh.
func (h *Handler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()
	requestID := c.GetString(middleware.RequestIDKey)

	if h.queue == nil {
		_, summary, err := h.service.Refresh(ctx)
		if err != nil {
			log.Error().Err(err).Str("request_id", requestID).Msg("sitemap refresh failed")
			response.InternalServerError(c, "Failed to refresh sitemap")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "refreshed", "summary": summary})
		return
	}

	taskID, err := h.queue.EnqueueSitemapRefresh(ctx, queue.RefreshSitemapPayload{
		Reason:      "admin",
		RequestedBy: middleware.ViewerFrom(c).Username,
	})
	if err != nil {
		log.Error().Err(err).Str("request_id", requestID).Msg("sitemap refresh enqueue failed")
		response.ServiceUnavailable(c, "Background queue unavailable", nil)
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{"status": "queued", "task_id": taskID})
}
