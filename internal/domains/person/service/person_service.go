package service

import (
	"context"
	"errors"

	"github.com/Krushna-ai/GDVG/internal/domains/person/model"
	"github.com/Krushna-ai/GDVG/internal/domains/person/repository"
	"github.com/Krushna-ai/GDVG/internal/identifier"
	"github.com/Krushna-ai/GDVG/internal/lookup"
	"github.com/Krushna-ai/GDVG/internal/metrics"
)

type ServiceInterface interface {
	List(ctx context.Context, req model.ListRequest, scope lookup.Scope) (*model.ListResponse, error)
	GetBySegment(ctx context.Context, segment string, scope lookup.Scope) (*model.PersonResponse, error)
}

type personService struct {
	repo repository.RepositoryInterface
}

func NewPersonService(repo repository.RepositoryInterface) ServiceInterface {
	return &personService{repo: repo}
}

// CanonicalURL returns /people/{public_id}/{slug}, or "" for people
// without a public ID.
func CanonicalURL(p *model.Person) string {
	url, err := identifier.BuildURL(identifier.KindPerson, p)
	if err != nil {
		metrics.URLBuildFailures.WithLabelValues(model.EntityName).Inc()
		return ""
	}
	return url
}

func (s *personService) List(ctx context.Context, req model.ListRequest, scope lookup.Scope) (*model.ListResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	filter, page := req.Filter()
	filter.IncludeHidden = scope.IncludeHidden

	people, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &model.ListResponse{
		Items: make([]model.PersonResponse, 0, len(people)),
		Total: total,
		Page:  page,
		Limit: filter.Limit,
	}
	for i := range people {
		resp.Items = append(resp.Items, people[i].ToResponse(CanonicalURL(&people[i]), scope.IncludeHidden))
	}
	return resp, nil
}

func (s *personService) GetBySegment(ctx context.Context, segment string, scope lookup.Scope) (*model.PersonResponse, error) {
	p, err := lookup.Find[model.Person](ctx, model.EntityName, s.repo, identifier.Resolve(segment), scope)
	if err != nil {
		if errors.Is(err, lookup.ErrNotFound) {
			return nil, model.ErrPersonNotFound
		}
		return nil, err
	}

	resp := p.ToResponse(CanonicalURL(p), scope.IncludeHidden)
	return &resp, nil
}
