package repository

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/Krushna-ai/GDVG/internal/domains/content/model"
	"github.com/Krushna-ai/GDVG/internal/lookup"
)

func TestBuildListQueryAnonymous(t *testing.T) {
	q := buildListQuery(model.ListFilter{
		Search:      "Crown",
		ContentType: model.TypeSeries,
		Genre:       model.GenreHistorical,
		Year:        2016,
		Sort:        model.SortRating,
		Offset:      20,
		Limit:       10,
	})

	assert.Equal(t,
		"SELECT count(*) FROM content WHERE status = 'published' AND "+
			"(title ILIKE $1 OR original_title ILIKE $2 OR synopsis ILIKE $3 OR $4 = ANY(tags)) AND "+
			"content_type = $5 AND $6 = ANY(genres) AND year = $7",
		q.countSQL)
	assert.True(t, strings.HasSuffix(q.selectSQL, "ORDER BY rating DESC, created_at DESC, canonical_id LIMIT $8 OFFSET $9"))
	assert.Equal(t, []any{"%Crown%", "%Crown%", "%Crown%", "crown", "series", "historical", 2016}, q.args)
	assert.Equal(t, []any{"%Crown%", "%Crown%", "%Crown%", "crown", "series", "historical", 2016, 10, 20}, q.pageArgs())
}

func TestBuildListQueryAdminSeesEverything(t *testing.T) {
	q := buildListQuery(model.ListFilter{IncludeHidden: true, Sort: "bogus", Limit: 20})

	assert.Equal(t, "SELECT count(*) FROM content ", q.countSQL)
	assert.Contains(t, q.selectSQL, "ORDER BY created_at DESC, canonical_id LIMIT $1 OFFSET $2")
	assert.Empty(t, q.args)
}

func TestBuildListQueryEscapesWildcards(t *testing.T) {
	q := buildListQuery(model.ListFilter{Search: "100%_real", Limit: 20})
	assert.Equal(t, `%100\%\_real%`, q.args[0])
}

func TestVisibility(t *testing.T) {
	assert.Equal(t, " AND status = 'published'", visibility(lookup.Scope{}))
	assert.Equal(t, "", visibility(lookup.Scope{IncludeHidden: true}))
}

func TestFinderQueries(t *testing.T) {
	anon := lookup.Scope{}
	admin := lookup.Scope{IncludeHidden: true}

	assert.Equal(t,
		"SELECT "+contentColumns+" FROM content WHERE public_id = $1 AND status = 'published'",
		finderQuery("public_id = $1", anon))
	assert.Equal(t,
		"SELECT "+contentColumns+" FROM content WHERE canonical_id = $1",
		finderQuery("canonical_id = $1", admin))

	prefix := finderQuery(canonicalPrefixMatch, anon) + firstMatch
	assert.True(t, strings.HasSuffix(prefix,
		"WHERE canonical_id::text LIKE $1 || '%' AND status = 'published' ORDER BY created_at, canonical_id LIMIT 1"), prefix)

	title := finderQuery(titleMatch, admin) + firstMatch
	assert.True(t, strings.HasSuffix(title,
		"WHERE lower(title) = lower($1) ORDER BY created_at, canonical_id LIMIT 1"), title)
	assert.NotContains(t, title, "status")
}

func TestListCacheKeyDistinguishesPages(t *testing.T) {
	a := listCacheKey(model.ListFilter{Sort: model.SortNewest, Offset: 0, Limit: 20})
	b := listCacheKey(model.ListFilter{Sort: model.SortNewest, Offset: 20, Limit: 20})
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, listKeyPrefix))
}

func TestMapWriteError(t *testing.T) {
	slugErr := &pgconn.PgError{Code: uniqueViolation, ConstraintName: slugConstraint}
	pkeyErr := &pgconn.PgError{Code: uniqueViolation, ConstraintName: "content_pkey"}
	other := errors.New("connection reset")

	assert.ErrorIs(t, mapWriteError("create", fmt.Errorf("insert: %w", slugErr)), model.ErrDuplicateSlug)
	assert.NotErrorIs(t, mapWriteError("create", pkeyErr), model.ErrDuplicateSlug)
	assert.ErrorIs(t, mapWriteError("create", pkeyErr), pkeyErr)
	assert.ErrorIs(t, mapWriteError("update", model.ErrContentNotFound), lookup.ErrNotFound)

	err := mapWriteError("update", other)
	assert.ErrorIs(t, err, other)
	assert.EqualError(t, err, "update: connection reset")
}
