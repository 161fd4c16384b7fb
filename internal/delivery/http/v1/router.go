package v1

import (
	"net/http"
	"time"

	"github.com/Rayup0124/SCM-Career-Bridge/config"
	_ "github.com/Rayup0124/SCM-Career-Bridge/docs"
	"github.com/Rayup0124/SCM-Career-Bridge/internal/delivery/http/middleware"
	"github.com/Rayup0124/SCM-Career-Bridge/internal/delivery/http/response"
	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
	"github.com/Rayup0124/SCM-Career-Bridge/internal/usecase"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	AdminUC       domain.AdminUsecase
	InternshipUC  domain.InternshipUsecase
	ApplicationUC domain.ApplicationUsecase
	HealthUC      usecase.HealthUsecase
	Audit         *security.SecurityLogger
	RateLimiter   *middleware.RateLimiter
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL, deps.Config.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config.IsProduction()))
	r.Use(middleware.ErrorHandler())

	api := r.Group("/api")

	// Health Check
	health := deps.HealthUC
	if health == nil {
		health = usecase.NewHealthUsecase(nil)
	}
	api.GET("/health", func(c *gin.Context) {
		report := health.Check(c.Request.Context())
		code := http.StatusOK
		if !report.OK() {
			code = http.StatusServiceUnavailable
		}
		response.JSON(c, code, report)
	})

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	limiter := deps.RateLimiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(nil)
	}
	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second
	authLimit := limiter.Middleware(middleware.AuthRateLimitConfig(deps.Config.RateLimitAuthThreshold, window))

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.AuthUC, deps.Audit))
	{
		NewAuthHandler(api, protected, deps.AuthUC, authLimit)
		NewAdminHandler(protected, deps.AdminUC)
		NewInternshipHandler(protected, deps.InternshipUC, deps.ApplicationUC)
		NewApplicationHandler(protected, deps.ApplicationUC)
	}

	return r
}
