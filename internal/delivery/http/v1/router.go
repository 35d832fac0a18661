package v1

import (
	"net/http"
	"time"

	"yaake-backend/config"
	"yaake-backend/internal/delivery/http/middleware"
	"yaake-backend/internal/delivery/http/response"
	"yaake-backend/internal/domain"
	"yaake-backend/internal/usecase"
	"yaake-backend/pkg/auth"
	"yaake-backend/pkg/storage"
	"yaake-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC       domain.AuthUsecase
	InterviewUC  domain.InterviewUsecase
	JobUC        domain.JobPostUsecase
	CourseUC     domain.CourseUsecase
	QuestionUC   domain.QuestionSetUsecase
	OutreachUC   domain.OutreachUsecase
	AssistUC     domain.AssistUsecase
	HealthUC     *usecase.HealthUsecase
	Uploader     *storage.Uploader
	JWKSProvider *auth.Provider
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Custom validators for binding tags
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	rateWindow := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger()) // Use standard Gin logger
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CSRFMiddleware())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, rateWindow)))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		if err := deps.HealthUC.Ping(c.Request.Context()); err != nil {
			response.Error(c, http.StatusServiceUnavailable, "Database unreachable", nil)
			return
		}
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config, deps.AuthUC))
	{
		NewAuthHandler(protected, deps.AuthUC)
		NewInterviewHandler(protected, deps.InterviewUC)
		NewJobHandler(v1, protected, deps.JobUC)
		NewCourseHandler(v1, protected, deps.CourseUC)
		NewQuestionHandler(protected, deps.QuestionUC)
		NewOutreachHandler(protected, deps.OutreachUC)

		// AI endpoints get a stricter per-user budget
		aiLimited := protected.Group("")
		aiLimited.Use(middleware.RateLimitMiddleware(middleware.AIRateLimitConfig(deps.Config.RateLimitAIThreshold, rateWindow)))
		NewAssistHandler(aiLimited, deps.AssistUC)

		if deps.Uploader != nil {
			uploadLimited := protected.Group("")
			uploadLimited.Use(middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig()))
			NewUploadHandler(uploadLimited, deps.Uploader, deps.AuthUC)
		}
	}

	return r
}
