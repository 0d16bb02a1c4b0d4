package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/Krushna-ai/GDVG/internal/domains/person/model"
	"github.com/Krushna-ai/GDVG/internal/lookup"
	"github.com/Krushna-ai/GDVG/internal/metrics"
	"github.com/Krushna-ai/GDVG/internal/shared/utils"
	"github.com/Krushna-ai/GDVG/pkg/cache"
)

const (
	listKeyPrefix  = "people:list:"
	cacheNamespace = "people"
	listCacheTTL   = 5 * time.Minute
)

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

func scanPerson(row rowScanner) (*model.Person, error) {
	var (
		p      model.Person
		status string
	)
	err := row.Scan(
		&p.CanonicalID,
		&p.PublicID,
		&p.Name,
		&p.Biography,
		&p.ProfileImageURL,
		&p.KnownFor,
		&status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Status = model.Status(status)
	p.Normalize()
	return &p, nil
}

func (r *postgresRepository) queryOne(ctx context.Context, op, query string, args ...any) (*model.Person, error) {
	p, err := scanPerson(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPersonNotFound
		}
		return nil, fmt.Errorf("failed to get person by %s: %w", op, err)
	}
	return p, nil
}

func (r *postgresRepository) queryMany(ctx context.Context, op, query string, args ...any) ([]model.Person, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s query failed: %w", op, err)
	}
	defer rows.Close()

	people := make([]model.Person, 0)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan failed: %w", op, err)
		}
		people = append(people, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows error: %w", op, err)
	}
	return people, nil
}

func (r *postgresRepository) FindByPublicID(ctx context.Context, id int64, scope lookup.Scope) (*model.Person, error) {
	return r.queryOne(ctx, "public id", finderQuery("public_id = $1", scope), id)
}

func (r *postgresRepository) FindByCanonicalID(ctx context.Context, id uuid.UUID, scope lookup.Scope) (*model.Person, error) {
	return r.queryOne(ctx, "canonical id", finderQuery("canonical_id = $1", scope), id)
}

func (r *postgresRepository) FindByCanonicalPrefix(ctx context.Context, prefix string, scope lookup.Scope) (*model.Person, error) {
	query := finderQuery(canonicalPrefixMatch, scope) + firstMatch
	return r.queryOne(ctx, "canonical prefix", query, utils.EscapeLike(strings.ToLower(prefix)))
}

func (r *postgresRepository) FindByTitle(ctx context.Context, name string, scope lookup.Scope) (*model.Person, error) {
	return r.queryOne(ctx, "name", finderQuery(nameMatch, scope)+firstMatch, name)
}

type cachedPage struct {
	Items []model.Person `json:"items"`
	Total int            `json:"total"`
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Person, int, error) {
	key := fmt.Sprintf("%s%s|%d|%d", listKeyPrefix, strings.ToLower(strings.TrimSpace(filter.Search)), filter.Offset, filter.Limit)
	if !filter.IncludeHidden {
		var page cachedPage
		found, err := r.cache.Get(ctx, key, &page)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("people cache read failed")
		}
		if found {
			metrics.CacheHits.WithLabelValues(cacheNamespace, "hit").Inc()
			return page.Items, page.Total, nil
		}
		metrics.CacheHits.WithLabelValues(cacheNamespace, "miss").Inc()
	}

	var w utils.WhereBuilder
	if !filter.IncludeHidden {
		w.Add(publishedOnly)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		w.Add("name ILIKE ?", "%"+utils.EscapeLike(s)+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM people "+w.SQL(), w.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count people failed: %w", err)
	}

	query := fmt.Sprintf("SELECT %s FROM people %s ORDER BY name, canonical_id LIMIT %s OFFSET %s",
		personColumns, w.SQL(), w.Placeholder(1), w.Placeholder(2))
	people, err := r.queryMany(ctx, "list people", query, append(w.Args(), filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, err
	}

	if !filter.IncludeHidden {
		if err := r.cache.Set(ctx, key, cachedPage{Items: people, Total: total}, listCacheTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("people cache write failed")
		}
	}
	return people, total, nil
}

func (r *postgresRepository) ListPublished(ctx context.Context) ([]model.Person, error) {
	return r.queryMany(ctx, "list published people",
		`SELECT `+personColumns+` FROM people WHERE `+publishedOnly+` ORDER BY public_id NULLS LAST, created_at`)
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM people`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count people failed: %w", err)
	}
	return n, nil
}
