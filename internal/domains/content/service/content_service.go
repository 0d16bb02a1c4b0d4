package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Krushna-ai/GDVG/internal/domains/content/model"
	"github.com/Krushna-ai/GDVG/internal/domains/content/repository"
	"github.com/Krushna-ai/GDVG/internal/identifier"
	"github.com/Krushna-ai/GDVG/internal/lookup"
	"github.com/Krushna-ai/GDVG/internal/metrics"
)

type contentService struct {
	repo repository.RepositoryInterface
}

func NewContentService(repo repository.RepositoryInterface) ServiceInterface {
	return &contentService{repo: repo}
}

// CanonicalURL returns the canonical path of c, or "" when c has no
// public ID yet. Such records are counted as link failures.
func CanonicalURL(c *model.Content) string {
	url, err := identifier.BuildURL(string(c.ContentType), c)
	if err != nil {
		metrics.URLBuildFailures.WithLabelValues(model.EntityName).Inc()
		return ""
	}
	return url
}

func toResponse(c *model.Content, scope lookup.Scope) model.ContentResponse {
	return c.ToResponse(CanonicalURL(c), scope.IncludeHidden)
}

func (s *contentService) List(ctx context.Context, req model.ListRequest, scope lookup.Scope) (*model.ListResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	filter, page := req.Filter()
	filter.IncludeHidden = scope.IncludeHidden

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &model.ListResponse{
		Items: make([]model.ContentResponse, 0, len(items)),
		Total: total,
		Page:  page,
		Limit: filter.Limit,
	}
	for i := range items {
		resp.Items = append(resp.Items, toResponse(&items[i], scope))
	}
	return resp, nil
}

func (s *contentService) Featured(ctx context.Context, req model.FeaturedRequest) ([]model.ContentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = model.DefaultFeaturedLimit
	}

	items, err := s.repo.Featured(ctx, model.FeaturedCategory(req.Category), limit)
	if err != nil {
		return nil, err
	}

	out := make([]model.ContentResponse, 0, len(items))
	for i := range items {
		out = append(out, toResponse(&items[i], lookup.Scope{}))
	}
	return out, nil
}

// GetBySegment decodes segment and dispatches the matching lookup. Any
// not-found outcome is reported as ErrContentNotFound.
func (s *contentService) GetBySegment(ctx context.Context, segment string, scope lookup.Scope) (*model.ContentResponse, error) {
	candidate := identifier.Resolve(segment)

	c, err := lookup.Find[model.Content](ctx, model.EntityName, s.repo, candidate, scope)
	if err != nil {
		if errors.Is(err, lookup.ErrNotFound) {
			return nil, model.ErrContentNotFound
		}
		return nil, err
	}

	if !scope.IncludeHidden {
		if err := s.repo.IncrementViewCount(ctx, c.CanonicalID); err != nil {
			log.Warn().Err(err).Str("canonical_id", c.CanonicalID.String()).Msg("view count not recorded")
		}
	}

	resp := toResponse(c, scope)
	return &resp, nil
}

func (s *contentService) Countries(ctx context.Context) ([]model.CountryCount, error) {
	return s.repo.Countries(ctx)
}

func (s *contentService) Create(ctx context.Context, req model.CreateContentRequest) (*model.ContentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, req.ToContent())
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("canonical_id", created.CanonicalID.String()).
		Str("slug", created.Slug).
		Msg("content created")

	resp := toResponse(created, lookup.Scope{IncludeHidden: true})
	return &resp, nil
}

func (s *contentService) Update(ctx context.Context, id uuid.UUID, req model.UpdateContentRequest) (*model.ContentResponse, error) {
	if id == uuid.Nil {
		return nil, model.ErrInvalidID
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, func(c *model.Content) error {
		req.Apply(c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toResponse(updated, lookup.Scope{IncludeHidden: true})
	return &resp, nil
}
