package system

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	contentmodel "github.com/Krushna-ai/GDVG/internal/domains/content/model"
	"github.com/Krushna-ai/GDVG/internal/identifier"
	"github.com/Krushna-ai/GDVG/internal/shared/middleware"
	"github.com/Krushna-ai/GDVG/internal/shared/response"
)

const Banner = "Global Drama Verse Guide API"

type Pinger interface {
	HealthCheck(ctx context.Context) error
}

type CachePinger interface {
	Ping(ctx context.Context) error
}

type ContentStats interface {
	Stats(ctx context.Context) (*contentmodel.Stats, error)
}

type Handler struct {
	db      Pinger
	cache   CachePinger
	content ContentStats
	version string
	started time.Time
}

func NewHandler(db Pinger, cache CachePinger, content ContentStats, version string) *Handler {
	return &Handler{
		db:      db,
		cache:   cache,
		content: content,
		version: version,
		started: time.Now(),
	}
}

// Banner handles GET /api/.
func (h *Handler) Banner(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": Banner})
}

// Health handles GET /api/health. It never touches the database.
func (h *Handler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}

type check struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// DeepHealth handles GET /api/health/deep. Checks run concurrently and each
// one reports separately; any failure turns the response into a 503.
func (h *Handler) DeepHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var (
		dbCheck, cacheCheck, contentCheck check
		contentCount                      int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		dbCheck = toCheck(h.db.HealthCheck(gctx))
		return nil
	})
	g.Go(func() error {
		cacheCheck = toCheck(h.cache.Ping(gctx))
		return nil
	})
	g.Go(func() error {
		stats, err := h.content.Stats(gctx)
		if err == nil {
			contentCount = stats.Total
		}
		contentCheck = toCheck(err)
		return nil
	})
	_ = g.Wait()

	body := gin.H{
		"database":      dbCheck,
		"cache":         cacheCheck,
		"content":       contentCheck,
		"content_count": contentCount,
	}

	if dbCheck.Error != "" || cacheCheck.Error != "" || contentCheck.Error != "" {
		log.Warn().
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Interface("checks", body).
			Msg("deep health check failed")
		response.ErrorWithDetails(c, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "One or more dependencies are unhealthy", body)
		return
	}

	body["status"] = "ok"
	response.Success(c, http.StatusOK, body)
}

func toCheck(err error) check {
	if err != nil {
		return check{Status: "down", Error: err.Error()}
	}
	return check{Status: "up"}
}

// Resolve handles GET /api/resolve/:segment and shows how a segment is
// decoded, without looking anything up.
func (h *Handler) Resolve(c *gin.Context) {
	cand := identifier.Resolve(c.Param("segment"))

	out := gin.H{
		"kind": cand.Kind.String(),
		"key":  cand.Key(),
	}
	if cand.Kind == identifier.KindLegacyTitle {
		out["title_variants"] = cand.TitleVariants()
	}
	if id, ok := cand.PublicID(); ok {
		out["public_id"] = id
	}
	response.Success(c, http.StatusOK, out)
}
