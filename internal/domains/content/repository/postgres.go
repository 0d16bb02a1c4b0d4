package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/Krushna-ai/GDVG/internal/domains/content/model"
	"github.com/Krushna-ai/GDVG/internal/identifier"
	"github.com/Krushna-ai/GDVG/internal/lookup"
	"github.com/Krushna-ai/GDVG/internal/metrics"
	"github.com/Krushna-ai/GDVG/internal/shared/utils"
	"github.com/Krushna-ai/GDVG/pkg/cache"
	"github.com/Krushna-ai/GDVG/pkg/database"
)

const (
	cacheNamespace    = "content"
	listKeyPrefix     = "content:list:"
	featuredKeyPrefix = "content:featured:"
	countriesKey      = "content:countries"
	sitemapKey        = "sitemap:xml"
	listCacheTTL      = 5 * time.Minute
	featuredCacheTTL  = 10 * time.Minute
	countriesCacheTTL = time.Hour
	maxSlugSuffix     = 1000
	uniqueViolation   = "23505"
	slugConstraint    = "content_slug_key"
)

// postgresRepository implements RepositoryInterface with pgxpool and a
// cache-aside layer for anonymous listings.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContent(row rowScanner) (*model.Content, error) {
	var (
		c           model.Content
		contentType string
		genres      []string
		status      string
	)
	err := row.Scan(
		&c.CanonicalID,
		&c.PublicID,
		&c.Slug,
		&c.Title,
		&c.OriginalTitle,
		&contentType,
		&genres,
		&c.Country,
		&c.Year,
		&c.Rating,
		&c.Episodes,
		&c.Duration,
		&c.Synopsis,
		&c.PosterURL,
		&c.BannerURL,
		&c.StreamingPlatforms,
		&c.Tags,
		&status,
		&c.ViewCount,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.ContentType = model.ContentType(contentType)
	c.Status = model.Status(status)
	c.Genres = make([]model.Genre, 0, len(genres))
	for _, g := range genres {
		c.Genres = append(c.Genres, model.Genre(g))
	}
	c.Normalize()
	return &c, nil
}

func (r *postgresRepository) queryOne(ctx context.Context, op, query string, args ...any) (*model.Content, error) {
	c, err := scanContent(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to get content by %s: %w", op, err)
	}
	return c, nil
}

func (r *postgresRepository) queryMany(ctx context.Context, op, query string, args ...any) ([]model.Content, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s query failed: %w", op, err)
	}
	defer rows.Close()

	items := make([]model.Content, 0)
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan failed: %w", op, err)
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows error: %w", op, err)
	}
	return items, nil
}

// ============================================
// Identifier finders
// ============================================

func (r *postgresRepository) FindByPublicID(ctx context.Context, id int64, scope lookup.Scope) (*model.Content, error) {
	return r.queryOne(ctx, "public id", finderQuery("public_id = $1", scope), id)
}

func (r *postgresRepository) FindByCanonicalID(ctx context.Context, id uuid.UUID, scope lookup.Scope) (*model.Content, error) {
	return r.queryOne(ctx, "canonical id", finderQuery("canonical_id = $1", scope), id)
}

// FindByCanonicalPrefix matches the textual UUID, which Postgres renders in
// lowercase. Several rows may share a prefix; the oldest wins.
func (r *postgresRepository) FindByCanonicalPrefix(ctx context.Context, prefix string, scope lookup.Scope) (*model.Content, error) {
	query := finderQuery(canonicalPrefixMatch, scope) + firstMatch
	return r.queryOne(ctx, "canonical prefix", query, utils.EscapeLike(strings.ToLower(prefix)))
}

func (r *postgresRepository) FindByTitle(ctx context.Context, title string, scope lookup.Scope) (*model.Content, error) {
	return r.queryOne(ctx, "title", finderQuery(titleMatch, scope)+firstMatch, title)
}

// ============================================
// Listings
// ============================================

type cachedPage struct {
	Items []model.Content `json:"items"`
	Total int             `json:"total"`
}

// List returns one page and the total match count. Only anonymous
// listings are cached.
func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Content, int, error) {
	key := listCacheKey(filter)
	if !filter.IncludeHidden {
		var page cachedPage
		if r.cacheGet(ctx, key, &page) {
			return page.Items, page.Total, nil
		}
	}

	q := buildListQuery(filter)

	var total int
	if err := r.pool.QueryRow(ctx, q.countSQL, q.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count content failed: %w", err)
	}

	items := make([]model.Content, 0)
	if total > filter.Offset {
		var err error
		items, err = r.queryMany(ctx, "list content", q.selectSQL, q.pageArgs()...)
		if err != nil {
			return nil, 0, err
		}
	}

	if !filter.IncludeHidden {
		r.cacheSet(ctx, key, cachedPage{Items: items, Total: total}, listCacheTTL)
	}
	return items, total, nil
}

func (r *postgresRepository) Featured(ctx context.Context, category model.FeaturedCategory, limit int) ([]model.Content, error) {
	fq, ok := featuredQueries[category]
	if !ok {
		return nil, fmt.Errorf("unknown featured category %q", category)
	}

	key := fmt.Sprintf("%s%s:%d", featuredKeyPrefix, category, limit)
	var items []model.Content
	if r.cacheGet(ctx, key, &items) {
		return items, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM content WHERE %s ORDER BY %s LIMIT $1`, contentColumns, fq.where, fq.order)
	items, err := r.queryMany(ctx, "featured "+string(category), query, limit)
	if err != nil {
		return nil, err
	}

	r.cacheSet(ctx, key, items, featuredCacheTTL)
	return items, nil
}

func (r *postgresRepository) Countries(ctx context.Context) ([]model.CountryCount, error) {
	var out []model.CountryCount
	if r.cacheGet(ctx, countriesKey, &out) {
		return out, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT country, count(*)
		FROM content
		WHERE `+publishedOnly+` AND country <> ''
		GROUP BY country
		ORDER BY count(*) DESC, country`)
	if err != nil {
		return nil, fmt.Errorf("countries query failed: %w", err)
	}
	defer rows.Close()

	out = make([]model.CountryCount, 0)
	for rows.Next() {
		var cc model.CountryCount
		if err := rows.Scan(&cc.Country, &cc.Count); err != nil {
			return nil, fmt.Errorf("countries scan failed: %w", err)
		}
		out = append(out, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("countries rows error: %w", err)
	}

	r.cacheSet(ctx, countriesKey, out, countriesCacheTTL)
	return out, nil
}

func (r *postgresRepository) ListPublished(ctx context.Context) ([]model.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM content WHERE ` + publishedOnly + ` ORDER BY public_id NULLS LAST, created_at`
	return r.queryMany(ctx, "list published content", query)
}

func (r *postgresRepository) Stats(ctx context.Context) (*model.Stats, error) {
	var s model.Stats
	err := r.pool.QueryRow(ctx, `
		SELECT
			count(*),
			count(*) FILTER (WHERE `+publishedOnly+`),
			count(DISTINCT country),
			(SELECT count(DISTINCT g) FROM content, unnest(genres) AS g)
		FROM content`).Scan(&s.Total, &s.Published, &s.Countries, &s.Genres)
	if err != nil {
		return nil, fmt.Errorf("content stats failed: %w", err)
	}
	return &s, nil
}

// ============================================
// Writes
// ============================================

// generateUniqueSlug returns base, or base-2, base-3 ... whichever is free.
func (r *postgresRepository) generateUniqueSlug(ctx context.Context, tx pgx.Tx, base string) (string, error) {
	for n := 1; n <= maxSlugSuffix; n++ {
		candidate := identifier.NumberedSlug(base, n)

		var exists bool
		err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM content WHERE slug = $1)`, candidate).Scan(&exists)
		if err != nil {
			return "", fmt.Errorf("check slug exists: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", model.ErrDuplicateSlug
}

func (r *postgresRepository) Create(ctx context.Context, c *model.Content) (*model.Content, error) {
	created, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Content, error) {
		slug, err := r.generateUniqueSlug(ctx, tx, identifier.StoredSlug(c.Title))
		if err != nil {
			return nil, err
		}

		row := tx.QueryRow(ctx, `
			INSERT INTO content (
				slug, title, original_title, content_type, genres, country, year, rating,
				episodes, duration, synopsis, poster_url, banner_url, streaming_platforms, tags, status
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
			RETURNING `+contentColumns,
			slug, c.Title, c.OriginalTitle, string(c.ContentType), genreStrings(c.Genres), c.Country, c.Year, c.Rating,
			c.Episodes, c.Duration, c.Synopsis, c.PosterURL, c.BannerURL, c.StreamingPlatforms, c.Tags, string(c.Status),
		)
		return scanContent(row)
	})
	if err != nil {
		return nil, mapWriteError("create content", err)
	}

	r.invalidateListCache(ctx)
	return created, nil
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, apply func(*model.Content) error) (*model.Content, error) {
	updated, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Content, error) {
		current, err := scanContent(tx.QueryRow(ctx,
			`SELECT `+contentColumns+` FROM content WHERE canonical_id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.ErrContentNotFound
			}
			return nil, fmt.Errorf("lock content: %w", err)
		}

		if err := apply(current); err != nil {
			return nil, err
		}

		row := tx.QueryRow(ctx, `
			UPDATE content SET
				title = $2, original_title = $3, content_type = $4, genres = $5, country = $6,
				year = $7, rating = $8, episodes = $9, duration = $10, synopsis = $11,
				poster_url = $12, banner_url = $13, streaming_platforms = $14, tags = $15,
				status = $16, updated_at = now()
			WHERE canonical_id = $1
			RETURNING `+contentColumns,
			id, current.Title, current.OriginalTitle, string(current.ContentType), genreStrings(current.Genres),
			current.Country, current.Year, current.Rating, current.Episodes, current.Duration, current.Synopsis,
			current.PosterURL, current.BannerURL, current.StreamingPlatforms, current.Tags, string(current.Status),
		)
		return scanContent(row)
	})
	if err != nil {
		return nil, mapWriteError("update content", err)
	}

	r.invalidateListCache(ctx)
	return updated, nil
}

func (r *postgresRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE content SET view_count = view_count + 1 WHERE canonical_id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	return nil
}

func genreStrings(genres []model.Genre) []string {
	out := make([]string, len(genres))
	for i, g := range genres {
		out[i] = string(g)
	}
	return out
}

// mapWriteError turns unique violations into domain conflicts.
func mapWriteError(op string, err error) error {
	if errors.Is(err, model.ErrContentNotFound) || errors.Is(err, model.ErrDuplicateSlug) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == slugConstraint {
		return model.ErrDuplicateSlug
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ============================================
// Cache helpers
// ============================================

func (r *postgresRepository) cacheGet(ctx context.Context, key string, dest any) bool {
	found, err := r.cache.Get(ctx, key, dest)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("content cache read failed")
		found = false
	}
	result := "miss"
	if found {
		result = "hit"
	}
	metrics.CacheHits.WithLabelValues(cacheNamespace, result).Inc()
	return found
}

func (r *postgresRepository) cacheSet(ctx context.Context, key string, value any, ttl time.Duration) {
	if err := r.cache.Set(ctx, key, value, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("content cache write failed")
	}
}

func (r *postgresRepository) invalidateListCache(ctx context.Context) {
	for _, pattern := range []string{listKeyPrefix + "*", featuredKeyPrefix + "*", countriesKey, sitemapKey} {
		if err := r.cache.DeletePattern(ctx, pattern); err != nil {
			log.Warn().Err(err).Str("pattern", pattern).Msg("content cache invalidation failed")
		}
	}
}
