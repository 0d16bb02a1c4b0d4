package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Krushna-ai/GDVG/internal/domains/admin/model"
)

type RepositoryInterface interface {
	FindByUsername(ctx context.Context, username string) (*model.Admin, error)
	// Create inserts the admin unless the username is taken, and reports
	// whether a row was written.
	Create(ctx context.Context, username, passwordHash string) (bool, error)
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) FindByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var a model.Admin
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, password_hash, created_at
		FROM admins
		WHERE lower(username) = lower($1)`, username).
		Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &a, nil
}

func (r *postgresRepository) Create(ctx context.Context, username, passwordHash string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO admins (username, password_hash)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, username, passwordHash)
	if err != nil {
		return false, fmt.Errorf("failed to create admin: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
