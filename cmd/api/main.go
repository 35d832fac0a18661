package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yaake-backend/config"
	_ "yaake-backend/docs" // Important for Swagger
	v1 "yaake-backend/internal/delivery/http/v1"
	"yaake-backend/internal/repository/postgres"
	"yaake-backend/internal/usecase"
	"yaake-backend/pkg/auth"
	"yaake-backend/pkg/database"
	"yaake-backend/pkg/email"
	"yaake-backend/pkg/genai"
	"yaake-backend/pkg/logger"
	"yaake-backend/pkg/redis"
	"yaake-backend/pkg/storage"
)

// @title           Yaake Recruiting API
// @version         1.0
// @description     Recruiting platform backend: interview scheduling, job posts, AI-assisted tooling.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting yaake backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (rate limiting; in-memory fallback when unavailable)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
		}
		defer redis.Close()
	}

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	interviewRepo := postgres.NewInterviewRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	courseRepo := postgres.NewCourseRepository(dbPool)
	questionRepo := postgres.NewQuestionRepository(dbPool)
	outreachRepo := postgres.NewOutreachRepository(dbPool)

	// 6. Setup Outbound Services
	mailer := email.NewService(cfg)
	if !mailer.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - outreach delivery will fail")
	}

	generator := genai.NewClient(cfg)

	var uploader *storage.Uploader
	if cfg.S3Bucket != "" {
		uploader, err = storage.NewUploader(context.Background(), cfg)
		if err != nil {
			logger.Log.Error("Failed to initialize object storage", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Log.Warn("S3_BUCKET not configured - upload endpoints disabled")
	}

	// 7. Setup UseCases
	authUC := usecase.NewAuthUsecase(userRepo)
	interviewUC := usecase.NewInterviewUsecase(interviewRepo, userRepo)
	jobUC := usecase.NewJobUsecase(jobRepo)
	courseUC := usecase.NewCourseUsecase(courseRepo)
	assistUC := usecase.NewAssistUsecase(generator)
	questionUC := usecase.NewQuestionUsecase(questionRepo, assistUC)
	outreachUC := usecase.NewOutreachUsecase(outreachRepo, userRepo, generator, mailer)
	healthUC := usecase.NewHealthUsecase(dbPool)

	// 8. Setup Auth Provider (JWKS, optional when only HS256 is used)
	var jwksProvider *auth.Provider
	if cfg.JWKSUrl != "" {
		jwksProvider = auth.NewProvider(cfg.JWKSUrl)
	}

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:       authUC,
		InterviewUC:  interviewUC,
		JobUC:        jobUC,
		CourseUC:     courseUC,
		QuestionUC:   questionUC,
		OutreachUC:   outreachUC,
		AssistUC:     assistUC,
		HealthUC:     healthUC,
		Uploader:     uploader,
		JWKSProvider: jwksProvider,
		Config:       cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
