package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Krushna-ai/GDVG/internal/domains/content/model"
	"github.com/Krushna-ai/GDVG/internal/lookup"
)

// ServiceInterface is the content business layer used by the handlers.
// scope carries the caller's visibility, taken from the request context.
type ServiceInterface interface {
	List(ctx context.Context, req model.ListRequest, scope lookup.Scope) (*model.ListResponse, error)
	Featured(ctx context.Context, req model.FeaturedRequest) ([]model.ContentResponse, error)
	// GetBySegment resolves a URL segment in any supported identifier format.
	GetBySegment(ctx context.Context, segment string, scope lookup.Scope) (*model.ContentResponse, error)
	Countries(ctx context.Context) ([]model.CountryCount, error)

	Create(ctx context.Context, req model.CreateContentRequest) (*model.ContentResponse, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateContentRequest) (*model.ContentResponse, error)
}
