package handler

import (
	"ProfileStore_Service/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type RouterOptions struct {
	// empty allows every origin
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func NewRouter(h *ProfileHandler, opts RouterOptions, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(log))

	config := cors.DefaultConfig()
	if len(opts.AllowedOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = opts.AllowedOrigins
	}
	config.AllowHeaders = append(config.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	config.ExposeHeaders = append(config.ExposeHeaders, middleware.RequestIDHeader)
	router.Use(cors.New(config))

	router.GET("/healthz", Health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/api/profile/default", h.DefaultProfile)

	// one bucket per client for the API and the feed, every feed upgrade loads the profile
	limiter := middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst)
	router.GET("/ws/profile", limiter, h.ProfileFeed)

	api := router.Group("/api/profile")
	api.Use(limiter)
	if h.issuer != nil {
		api.Use(middleware.AuthMiddleware(h.issuer))
	}
	{
		api.GET("", h.GetProfile)
		api.PUT("", h.SaveProfile)
		api.DELETE("", h.ResetProfile)
	}
	return router
}
