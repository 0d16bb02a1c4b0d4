package main

import (
	"github.com/hibiken/asynq"

	"github.com/Krushna-ai/GDVG/internal/domains/sitemap"
	"github.com/Krushna-ai/GDVG/internal/infrastructure/queue"
	"github.com/Krushna-ai/GDVG/pkg/container"
)

// handlerRegistry holds every task handler the worker serves.
type handlerRegistry struct {
	refreshSitemap *sitemap.RefreshHandler
}

func newHandlerRegistry(c *container.Container) *handlerRegistry {
	return &handlerRegistry{
		refreshSitemap: sitemap.NewRefreshHandler(c.SitemapService),
	}
}

func (h *handlerRegistry) register(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TypeRefreshSitemap, h.refreshSitemap.ProcessTask)
}
