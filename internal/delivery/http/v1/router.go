package v1

import (
	"net/http"

	"go-ringside-backend/config"
	"go-ringside-backend/internal/delivery/http/middleware"
	"go-ringside-backend/internal/delivery/http/response"
	"go-ringside-backend/internal/domain"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	SubmissionUC domain.SubmissionUsecase
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler(deps.Config.IsDevelopment()))

	api := r.Group("/api")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Public form routes (no auth required, each behind its own limiter)
	NewContactHandler(api, deps.SubmissionUC, deps.Config)
	NewSubsidySupportHandler(api, deps.SubmissionUC, deps.Config)
	NewWebhookHandler(api)

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
