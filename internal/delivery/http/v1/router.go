package v1

import (
	"net/http"

	"skillmatch-backend/config"
	"skillmatch-backend/internal/delivery/http/middleware"
	"skillmatch-backend/internal/delivery/http/response"
	"skillmatch-backend/internal/domain"
	"skillmatch-backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	MarketplaceUC domain.MarketplaceUsecase
	PipelineUC    domain.PipelineUsecase
	ProfileUC     domain.ProfileUsecase
	ResumeUC      domain.ResumeUsecase
	TokenVerifier middleware.TokenVerifier
	UploadLimiter *security.UploadLimiter
	LoginGuard    *security.LoginGuard
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	cfg := deps.Config

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, cfg.RateLimitWindowSeconds)))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Register and login share a stricter limit
	authLimited := v1.Group("")
	authLimited.Use(middleware.RateLimitMiddleware(middleware.AuthRateLimitConfig(cfg.RateLimitAuthThreshold, cfg.RateLimitWindowSeconds)))

	optional := v1.Group("")
	optional.Use(middleware.OptionalAuth(deps.TokenVerifier, deps.AuthUC))

	protected := v1.Group("")
	protected.Use(middleware.RequireAuth(deps.TokenVerifier, deps.AuthUC))

	uploadLimit := middleware.UploadLimitMiddleware(deps.UploadLimiter)
	{
		NewAuthHandler(authLimited, protected, deps.AuthUC, deps.LoginGuard)
		NewMarketplaceHandler(v1, optional, protected, deps.MarketplaceUC)
		NewPipelineHandler(protected, deps.PipelineUC)
		NewProfileHandler(protected, deps.ProfileUC, deps.ResumeUC, uploadLimit, cfg.MaxUploadBytes)
		NewResumeHandler(protected, deps.ResumeUC, uploadLimit, cfg.MaxUploadBytes)
	}

	return r
}
