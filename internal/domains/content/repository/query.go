package repository

import (
	"fmt"
	"strings"

	"github.com/Krushna-ai/GDVG/internal/domains/content/model"
	"github.com/Krushna-ai/GDVG/internal/lookup"
	"github.com/Krushna-ai/GDVG/internal/shared/utils"
)

const contentColumns = `canonical_id, public_id, slug, title, original_title, content_type,
	genres, country, year, rating, episodes, duration, synopsis, poster_url, banner_url,
	streaming_platforms, tags, status, view_count, created_at, updated_at`

const publishedOnly = "status = 'published'"

var sortClauses = map[string]string{
	model.SortNewest:  "created_at DESC, canonical_id",
	model.SortRating:  "rating DESC, created_at DESC, canonical_id",
	model.SortTitle:   "lower(title) ASC, canonical_id",
	model.SortPopular: "view_count DESC, rating DESC, canonical_id",
}

var featuredQueries = map[model.FeaturedCategory]struct {
	where string
	order string
}{
	model.FeaturedTrending:    {where: publishedOnly, order: "view_count DESC, rating DESC, created_at DESC"},
	model.FeaturedNewReleases: {where: publishedOnly, order: "year DESC NULLS LAST, created_at DESC"},
	model.FeaturedTopRated:    {where: publishedOnly + " AND rating > 0", order: "rating DESC, view_count DESC"},
}

// visibility returns the status filter for scope, prefixed with AND.
func visibility(scope lookup.Scope) string {
	if scope.IncludeHidden {
		return ""
	}
	return " AND " + publishedOnly
}

const (
	canonicalPrefixMatch = `canonical_id::text LIKE $1 || '%'`
	titleMatch           = `lower(title) = lower($1)`

	// firstMatch picks the oldest row when a prefix or title is shared.
	firstMatch = ` ORDER BY created_at, canonical_id LIMIT 1`
)

// finderQuery selects content matching where, restricted to scope.
func finderQuery(where string, scope lookup.Scope) string {
	return `SELECT ` + contentColumns + ` FROM content WHERE ` + where + visibility(scope)
}

type listQuery struct {
	selectSQL string
	countSQL  string
	// args bind the filter placeholders shared by both statements.
	args   []any
	limit  int
	offset int
}

func (q listQuery) pageArgs() []any {
	return append(append([]any{}, q.args...), q.limit, q.offset)
}

// buildListQuery renders the page and count statements for a listing.
func buildListQuery(f model.ListFilter) listQuery {
	var w utils.WhereBuilder
	if !f.IncludeHidden {
		w.Add(publishedOnly)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + utils.EscapeLike(s) + "%"
		w.AnyOf(
			[]string{"title ILIKE ?", "original_title ILIKE ?", "synopsis ILIKE ?", "? = ANY(tags)"},
			[]any{pattern}, []any{pattern}, []any{pattern}, []any{strings.ToLower(s)},
		)
	}
	if f.ContentType != "" {
		w.Add("content_type = ?", string(f.ContentType))
	}
	if f.Country != "" {
		w.Add("lower(country) = lower(?)", f.Country)
	}
	if f.Genre != "" {
		w.Add("? = ANY(genres)", string(f.Genre))
	}
	if f.Year > 0 {
		w.Add("year = ?", f.Year)
	}

	order, ok := sortClauses[f.Sort]
	if !ok {
		order = sortClauses[model.SortNewest]
	}

	return listQuery{
		selectSQL: fmt.Sprintf("SELECT %s FROM content %s ORDER BY %s LIMIT %s OFFSET %s",
			contentColumns, w.SQL(), order, w.Placeholder(1), w.Placeholder(2)),
		countSQL: fmt.Sprintf("SELECT count(*) FROM content %s", w.SQL()),
		args:     w.Args(),
		limit:    f.Limit,
		offset:   f.Offset,
	}
}

// listCacheKey identifies an anonymous listing page in the cache.
func listCacheKey(f model.ListFilter) string {
	return fmt.Sprintf("%s%s|%s|%s|%s|%d|%s|%d|%d",
		listKeyPrefix, strings.ToLower(strings.TrimSpace(f.Search)), f.ContentType,
		strings.ToLower(f.Country), f.Genre, f.Year, f.Sort, f.Offset, f.Limit)
}
