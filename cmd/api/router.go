package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Krushna-ai/GDVG/internal/shared/middleware"
	"github.com/Krushna-ai/GDVG/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.HTTP.AllowedOrigins),
		middleware.Authenticate(c.JWTManager),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/sitemap.xml", c.RateLimiter.Middleware(), c.SitemapHandler.Sitemap)

	api := router.Group("/api")
	{
		api.GET("/", c.SystemHandler.Banner)
		api.GET("/health", c.SystemHandler.Health)
		api.GET("/health/deep", c.SystemHandler.DeepHealth)

		setupPublicRoutes(api, c)
		setupAdminRoutes(api, c)
	}

	return router
}

func setupPublicRoutes(api *gin.RouterGroup, c *container.Container) {
	public := api.Group("")
	public.Use(c.RateLimiter.Middleware())

	content := public.Group("/content")
	{
		content.GET("", c.ContentHandler.List)
		content.GET("/search", c.ContentHandler.List)
		content.GET("/featured", c.ContentHandler.Featured)
		content.GET("/:segment", c.ContentHandler.GetBySegment)
	}

	people := public.Group("/people")
	{
		people.GET("", c.PersonHandler.List)
		people.GET("/:segment", c.PersonHandler.GetBySegment)
	}

	public.GET("/trending", c.ContentHandler.Trending)
	public.GET("/countries", c.ContentHandler.Countries)
	public.GET("/genres", c.ContentHandler.Genres)
	public.GET("/content-types", c.ContentHandler.ContentTypes)
	public.GET("/resolve/:segment", c.SystemHandler.Resolve)
}

func setupAdminRoutes(api *gin.RouterGroup, c *container.Container) {
	admin := api.Group("/admin")

	admin.POST("/login", c.RateLimiter.Middleware(), c.AdminHandler.Login)

	protected := admin.Group("")
	protected.Use(middleware.RequireAdmin())
	{
		protected.GET("/diagnostics", c.AdminHandler.Diagnostics)
		protected.POST("/content", c.ContentHandler.Create)
		protected.PUT("/content/:id", c.ContentHandler.Update)
		protected.POST("/sitemap/refresh", c.SitemapHandler.Refresh)
	}
}
