// Package sitemap renders the canonical URL set of the catalog.
package sitemap

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	contentmodel "github.com/Krushna-ai/GDVG/internal/domains/content/model"
	personmodel "github.com/Krushna-ai/GDVG/internal/domains/person/model"
	"github.com/Krushna-ai/GDVG/internal/identifier"
	"github.com/Krushna-ai/GDVG/internal/metrics"
	"github.com/Krushna-ai/GDVG/pkg/cache"
)

const cacheKey = "sitemap:xml"

type ContentSource interface {
	ListPublished(ctx context.Context) ([]contentmodel.Content, error)
}

type PersonSource interface {
	ListPublished(ctx context.Context) ([]personmodel.Person, error)
}

type Service struct {
	content ContentSource
	people  PersonSource
	cache   cache.Cache
	baseURL string
	ttl     time.Duration
}

func NewService(content ContentSource, people PersonSource, c cache.Cache, baseURL string, ttl time.Duration) *Service {
	return &Service{
		content: content,
		people:  people,
		cache:   c,
		baseURL: baseURL,
		ttl:     ttl,
	}
}

// XML returns the rendered sitemap, from cache when possible.
func (s *Service) XML(ctx context.Context) ([]byte, error) {
	var cached string
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
		log.Warn().Err(err).Msg("sitemap cache read failed")
	} else if found {
		metrics.CacheHits.WithLabelValues("sitemap", "hit").Inc()
		return []byte(cached), nil
	}
	metrics.CacheHits.WithLabelValues("sitemap", "miss").Inc()

	body, _, err := s.Refresh(ctx)
	return body, err
}

// Refresh regenerates the sitemap and overwrites the cached copy.
func (s *Service) Refresh(ctx context.Context) ([]byte, *Summary, error) {
	set, summary, err := s.Build(ctx)
	if err != nil {
		return nil, nil, err
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encode sitemap: %w", err)
	}
	body = append([]byte(xml.Header), body...)

	if err := s.cache.Set(ctx, cacheKey, string(body), s.ttl); err != nil {
		log.Warn().Err(err).Msg("sitemap cache write failed")
	}

	log.Info().
		Int("content", summary.Content).
		Int("people", summary.People).
		Int("skipped", summary.Skipped).
		Msg("sitemap generated")
	return body, summary, nil
}

// Build collects every linkable record. Records without a public ID are
// skipped and counted, never linked by canonical ID.
func (s *Service) Build(ctx context.Context) (*URLSet, *Summary, error) {
	var (
		items  []contentmodel.Content
		people []personmodel.Person
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.content.ListPublished(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		people, err = s.people.ListPublished(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("load sitemap records: %w", err)
	}

	set := &URLSet{XMLNS: sitemapNS}
	summary := &Summary{}

	for _, p := range staticPages {
		p.Loc = s.baseURL + p.Loc
		set.URLs = append(set.URLs, p)
	}

	for i := range items {
		c := &items[i]
		if s.add(set, summary, string(c.ContentType), contentmodel.EntityName, c, c.UpdatedAt, 0.7) {
			summary.Content++
		}
	}
	for i := range people {
		p := &people[i]
		if s.add(set, summary, identifier.KindPerson, personmodel.EntityName, p, p.UpdatedAt, 0.5) {
			summary.People++
		}
	}

	return set, summary, nil
}

func (s *Service) add(set *URLSet, summary *Summary, kind, entity string, rec identifier.Linkable, updated time.Time, priority float64) bool {
	path, err := identifier.BuildURL(kind, rec)
	if err != nil {
		if errors.Is(err, identifier.ErrMissingPublicID) {
			metrics.URLBuildFailures.WithLabelValues(entity).Inc()
			summary.Skipped++
			log.Debug().Str("entity", entity).Str("name", rec.DisplayName()).Msg("skipping record without public id")
			return false
		}
		log.Warn().Err(err).Str("entity", entity).Msg("skipping unlinkable record")
		summary.Skipped++
		return false
	}

	u := URL{Loc: s.baseURL + path, Priority: priority, ChangeFreq: "weekly"}
	if !updated.IsZero() {
		u.LastMod = updated.UTC().Format("2006-01-02")
	}
	set.URLs = append(set.URLs, u)
	return true
}
