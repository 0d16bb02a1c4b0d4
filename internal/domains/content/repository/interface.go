package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Krushna-ai/GDVG/internal/domains/content/model"
	"github.com/Krushna-ai/GDVG/internal/lookup"
)

// RepositoryInterface is the content store. The embedded Finder is what the
// identifier dispatcher resolves URL segments against.
type RepositoryInterface interface {
	lookup.Finder[model.Content]

	List(ctx context.Context, filter model.ListFilter) ([]model.Content, int, error)
	Featured(ctx context.Context, category model.FeaturedCategory, limit int) ([]model.Content, error)
	Countries(ctx context.Context) ([]model.CountryCount, error)

	// ListPublished returns every published item, linkable or not.
	ListPublished(ctx context.Context) ([]model.Content, error)
	Stats(ctx context.Context) (*model.Stats, error)

	Create(ctx context.Context, c *model.Content) (*model.Content, error)
	// Update locks the row, lets apply mutate it, and writes it back.
	Update(ctx context.Context, id uuid.UUID, apply func(*model.Content) error) (*model.Content, error)
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
}
