package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"github.com/Krushna-ai/GDVG/internal/config"
	adminHandler "github.com/Krushna-ai/GDVG/internal/domains/admin/handler"
	adminRepo "github.com/Krushna-ai/GDVG/internal/domains/admin/repository"
	adminService "github.com/Krushna-ai/GDVG/internal/domains/admin/service"
	contentHandler "github.com/Krushna-ai/GDVG/internal/domains/content/handler"
	contentRepo "github.com/Krushna-ai/GDVG/internal/domains/content/repository"
	contentService "github.com/Krushna-ai/GDVG/internal/domains/content/service"
	personHandler "github.com/Krushna-ai/GDVG/internal/domains/person/handler"
	personRepo "github.com/Krushna-ai/GDVG/internal/domains/person/repository"
	personService "github.com/Krushna-ai/GDVG/internal/domains/person/service"
	"github.com/Krushna-ai/GDVG/internal/domains/sitemap"
	"github.com/Krushna-ai/GDVG/internal/domains/system"
	infraCache "github.com/Krushna-ai/GDVG/internal/infrastructure/cache"
	"github.com/Krushna-ai/GDVG/internal/infrastructure/database"
	"github.com/Krushna-ai/GDVG/internal/infrastructure/queue"
	"github.com/Krushna-ai/GDVG/internal/shared/middleware"
	"github.com/Krushna-ai/GDVG/pkg/cache"
	"github.com/Krushna-ai/GDVG/pkg/jwt"
	"github.com/Krushna-ai/GDVG/pkg/logger"
)

const tokenIssuer = "gdvg"

// Container is the root of the dependency graph. Build order matters:
// infrastructure, then repositories, services and handlers.
type Container struct {
	Config      *config.Config
	DB          *database.PostgresDB
	Redis       *infraCache.RedisClient // nil when running on the in-memory cache
	Cache       cache.Cache
	Queue       *queue.Client // nil without Redis; sitemap refreshes then run inline
	JWTManager  *jwt.Manager
	RateLimiter *middleware.RateLimiter

	// Repositories
	ContentRepo contentRepo.RepositoryInterface
	PersonRepo  personRepo.RepositoryInterface
	AdminRepo   adminRepo.RepositoryInterface

	// Services
	ContentService contentService.ServiceInterface
	PersonService  personService.ServiceInterface
	AdminService   adminService.ServiceInterface
	SitemapService *sitemap.Service

	// Handlers
	ContentHandler *contentHandler.ContentHandler
	PersonHandler  *personHandler.PersonHandler
	AdminHandler   *adminHandler.AdminHandler
	SitemapHandler *sitemap.Handler
	SystemHandler  *system.Handler
}

// NewContainer connects the infrastructure and wires every domain.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Msg("initializing container")

	c := &Container{Config: cfg}

	if err := c.initInfrastructure(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("container ready")
	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	db := database.NewPostgresDB(c.Config.Database)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.Connect(connectCtx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if c.Config.Redis.Host == "" {
		logger.Warn("REDIS_HOST not set, using in-process cache", map[string]interface{}{"queue": "disabled"})
		c.Cache = cache.NewMemoryCacheSize(c.Config.Redis.MemoryCacheMB * 1024 * 1024)
	} else {
		redisClient := infraCache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
		if err := redisClient.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.Redis = redisClient
		c.Cache = infraCache.NewRedisCache(redisClient)
		c.Queue = queue.NewClient(c.RedisOpt())
	}

	c.JWTManager = jwt.NewManager(c.Config.JWT.Secret, tokenIssuer, c.Config.JWT.TokenExpiry)
	c.RateLimiter = middleware.NewRateLimiter(c.Config.RateLimit.RPS, c.Config.RateLimit.Burst)
	return nil
}

func (c *Container) initRepositories() {
	c.ContentRepo = contentRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	c.PersonRepo = personRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	c.AdminRepo = adminRepo.NewPostgresRepository(c.DB.Pool)
}

func (c *Container) initServices() {
	c.ContentService = contentService.NewContentService(c.ContentRepo)
	c.PersonService = personService.NewPersonService(c.PersonRepo)
	c.AdminService = adminService.NewAdminService(
		c.AdminRepo,
		c.JWTManager,
		c.Cache,
		c.ContentRepo,
		c.PersonRepo,
		c.DB,
	)
	c.SitemapService = sitemap.NewService(
		c.ContentRepo,
		c.PersonRepo,
		c.Cache,
		c.Config.Site.BaseURL,
		c.Config.Site.SitemapCacheTTL,
	)
}

func (c *Container) initHandlers() {
	c.ContentHandler = contentHandler.NewContentHandler(c.ContentService)
	c.PersonHandler = personHandler.NewPersonHandler(c.PersonService)
	c.AdminHandler = adminHandler.NewAdminHandler(c.AdminService)
	var enqueuer sitemap.Enqueuer
	if c.Queue != nil {
		enqueuer = c.Queue
	}
	c.SitemapHandler = sitemap.NewHandler(c.SitemapService, enqueuer)
	c.SystemHandler = system.NewHandler(c.DB, c.Cache, c.ContentRepo, c.Config.App.Version)
}

// RedisOpt is the asynq view of the Redis settings.
func (c *Container) RedisOpt() asynq.RedisClientOpt {
	return queue.RedisOpt(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
}

// BootstrapAdmin creates the configured admin account if it is missing.
func (c *Container) BootstrapAdmin(ctx context.Context) error {
	if c.Config.Admin.BootstrapUsername == "" {
		return nil
	}
	return c.AdminService.EnsureAdmin(ctx, c.Config.Admin.BootstrapUsername, c.Config.Admin.BootstrapPassword)
}

// Cleanup releases infrastructure resources. Safe on a partially built container.
func (c *Container) Cleanup() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close queue client")
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
