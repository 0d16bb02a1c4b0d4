package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/Krushna-ai/GDVG/internal/domains/admin/model"
	"github.com/Krushna-ai/GDVG/internal/domains/admin/repository"
	contentmodel "github.com/Krushna-ai/GDVG/internal/domains/content/model"
	"github.com/Krushna-ai/GDVG/internal/infrastructure/database"
	"github.com/Krushna-ai/GDVG/pkg/cache"
)

const (
	MaxFailedAttempts = 5
	AttemptWindow     = 15 * time.Minute
	bcryptCost        = 12
	failedLoginPrefix = "admin:failed_login:"
)

// dummyHash stands in for the stored hash of an unknown username so every
// login attempt pays for one bcrypt comparison.
var dummyHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("unknown-admin-placeholder"), bcryptCost)
	if err != nil {
		panic(fmt.Sprintf("generate placeholder hash: %v", err))
	}
	return hash
})

var compareHashAndPassword = bcrypt.CompareHashAndPassword

type TokenIssuer interface {
	GenerateAdminToken(username string) (string, time.Time, error)
}

type ContentStats interface {
	Stats(ctx context.Context) (*contentmodel.Stats, error)
}

type PeopleCounter interface {
	Count(ctx context.Context) (int, error)
}

type PoolStats interface {
	Stats() (*database.PoolStats, error)
}

type ServiceInterface interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	// EnsureAdmin creates the account if it does not exist yet.
	EnsureAdmin(ctx context.Context, username, password string) error
	Diagnostics(ctx context.Context) (*model.Diagnostics, error)
}

type adminService struct {
	repo    repository.RepositoryInterface
	tokens  TokenIssuer
	cache   cache.Cache
	content ContentStats
	people  PeopleCounter
	pool    PoolStats
}

func NewAdminService(
	repo repository.RepositoryInterface,
	tokens TokenIssuer,
	c cache.Cache,
	content ContentStats,
	people PeopleCounter,
	pool PoolStats,
) ServiceInterface {
	return &adminService{
		repo:    repo,
		tokens:  tokens,
		cache:   c,
		content: content,
		people:  people,
		pool:    pool,
	}
}

func attemptKey(username string) string {
	return failedLoginPrefix + strings.ToLower(strings.TrimSpace(username))
}

func (s *adminService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := attemptKey(req.Username)
	var attempts int64
	if found, err := s.cache.Get(ctx, key, &attempts); err != nil {
		log.Warn().Err(err).Msg("failed login counter unavailable")
	} else if found && attempts >= MaxFailedAttempts {
		return nil, model.ErrTooManyAttempts
	}

	admin, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, model.ErrAdminNotFound) {
		return nil, err
	}

	hash := dummyHash()
	if admin != nil {
		hash = []byte(admin.PasswordHash)
	}
	if err := compareHashAndPassword(hash, []byte(req.Password)); err != nil || admin == nil {
		s.recordFailure(ctx, key, req.Username)
		return nil, model.ErrInvalidCredentials
	}

	if err := s.cache.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Msg("failed to reset login counter")
	}

	token, expires, err := s.tokens.GenerateAdminToken(admin.Username)
	if err != nil {
		return nil, fmt.Errorf("generate admin token: %w", err)
	}

	log.Info().Str("username", admin.Username).Msg("admin logged in")
	return &model.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expires,
	}, nil
}

func (s *adminService) recordFailure(ctx context.Context, key, username string) {
	attempts, err := s.cache.Increment(ctx, key)
	if err != nil {
		log.Warn().Err(err).Msg("failed to count login failure")
		return
	}
	if attempts == 1 {
		if err := s.cache.Expire(ctx, key, AttemptWindow); err != nil {
			log.Warn().Err(err).Msg("failed to set login counter expiry")
		}
	}
	log.Warn().Str("username", username).Int64("attempts", attempts).Msg("admin login failed")
}

func (s *adminService) EnsureAdmin(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	created, err := s.repo.Create(ctx, username, string(hash))
	if err != nil {
		return err
	}
	if created {
		log.Info().Str("username", username).Msg("bootstrap admin created")
	}
	return nil
}

func (s *adminService) Diagnostics(ctx context.Context) (*model.Diagnostics, error) {
	d := &model.Diagnostics{
		GenresTotal: len(contentmodel.Genres),
		GeneratedAt: time.Now().UTC(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.content.Stats(gctx)
		if err != nil {
			return err
		}
		d.Content = *stats
		return nil
	})
	g.Go(func() error {
		n, err := s.people.Count(gctx)
		if err != nil {
			return err
		}
		d.People = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("collect diagnostics: %w", err)
	}

	if s.pool != nil {
		if stats, err := s.pool.Stats(); err == nil {
			d.Database = stats
		}
	}
	return d, nil
}
