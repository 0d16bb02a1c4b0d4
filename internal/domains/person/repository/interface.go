package repository

import (
	"context"

	"github.com/Krushna-ai/GDVG/internal/domains/person/model"
	"github.com/Krushna-ai/GDVG/internal/lookup"
)

type RepositoryInterface interface {
	lookup.Finder[model.Person]

	List(ctx context.Context, filter model.ListFilter) ([]model.Person, int, error)
	ListPublished(ctx context.Context) ([]model.Person, error)
	Count(ctx context.Context) (int, error)
}
