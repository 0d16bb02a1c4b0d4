// Package lookup maps a decoded identifier candidate to the store query that
// can answer it.
package lookup

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Krushna-ai/GDVG/internal/identifier"
	"github.com/Krushna-ai/GDVG/internal/metrics"
)

// ErrNotFound is returned when no record matches any interpretation of a
// segment. Domain packages wrap it in their own sentinels.
var ErrNotFound = errors.New("not found")

// Scope carries the caller's visibility. Anonymous callers only see published
// records; the filter itself is applied by each Finder.
type Scope struct {
	IncludeHidden bool
}

// Finder is the store contract for one entity kind. Every method returns at
// most one record, and an error wrapping ErrNotFound when nothing matches.
type Finder[T any] interface {
	FindByPublicID(ctx context.Context, id int64, scope Scope) (*T, error)
	FindByCanonicalID(ctx context.Context, id uuid.UUID, scope Scope) (*T, error)
	// FindByCanonicalPrefix matches case-insensitively and returns the oldest
	// record when several share the prefix.
	FindByCanonicalPrefix(ctx context.Context, prefix string, scope Scope) (*T, error)
	// FindByTitle is an exact, case-insensitive title match.
	FindByTitle(ctx context.Context, title string, scope Scope) (*T, error)
}

// Find dispatches c to the matching Finder method. entity only labels metrics.
func Find[T any](ctx context.Context, entity string, f Finder[T], c identifier.Candidate, scope Scope) (*T, error) {
	rec, err := dispatch(ctx, f, c, scope)

	outcome := "found"
	switch {
	case errors.Is(err, ErrNotFound):
		outcome = "not_found"
	case err != nil:
		outcome = "error"
	}
	metrics.IdentifierLookups.WithLabelValues(entity, c.Kind.String(), outcome).Inc()

	return rec, err
}

func dispatch[T any](ctx context.Context, f Finder[T], c identifier.Candidate, scope Scope) (*T, error) {
	switch c.Kind {
	case identifier.KindPublicID:
		id, ok := c.PublicID()
		if !ok {
			return nil, ErrNotFound
		}
		return f.FindByPublicID(ctx, id, scope)

	case identifier.KindCanonicalID, identifier.KindEmbeddedCanonicalID:
		return f.FindByCanonicalID(ctx, c.CanonicalID, scope)

	case identifier.KindShortPrefix:
		return f.FindByCanonicalPrefix(ctx, c.Value, scope)

	case identifier.KindLegacyTitle:
		for _, title := range c.TitleVariants() {
			rec, err := f.FindByTitle(ctx, title, scope)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return rec, err
		}
		return nil, ErrNotFound
	}

	return nil, ErrNotFound
}
