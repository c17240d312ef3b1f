package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillmatch-backend/config"
	_ "skillmatch-backend/docs" // Important for Swagger
	v1 "skillmatch-backend/internal/delivery/http/v1"
	"skillmatch-backend/internal/repository/postgres"
	"skillmatch-backend/internal/usecase"
	"skillmatch-backend/pkg/auth"
	"skillmatch-backend/pkg/database"
	"skillmatch-backend/pkg/logger"
	"skillmatch-backend/pkg/redis"
	"skillmatch-backend/pkg/resumeparser"
	"skillmatch-backend/pkg/security"
	"skillmatch-backend/pkg/security/antivirus"
	"skillmatch-backend/pkg/storage"
	"skillmatch-backend/pkg/validation"
)

// @title           SkillMatch API
// @version         1.0
// @description     Job marketplace and application tracker backend.
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
	logger.Log.Info("Starting skillmatch backend", "port", cfg.Port)

	audit := security.NewAuditLogger("skillmatch-api", cfg.AppEnv)
	defer audit.Sync()

	// 3. Setup Database
	dbPool, err := database.Connect(context.Background(), cfg.DBUrl, database.PoolOptions{MaxConns: cfg.DBMaxConns, MinConns: cfg.DBMinConns})
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional, limiters fall back to memory)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
	} else {
		defer redis.Close()
	}

	// 5. Setup Object Storage
	files, err := storage.NewS3Storage(context.Background(), storage.Config{
		Endpoint:     cfg.StorageEndpoint,
		Region:       cfg.StorageRegion,
		Bucket:       cfg.StorageBucket,
		AccessKey:    cfg.StorageAccessKey,
		SecretKey:    cfg.StorageSecretKey,
		UsePathStyle: cfg.StoragePathStyle,
		SignedURLTTL: cfg.SignedURLTTL,
	})
	if err != nil {
		logger.Log.Error("Failed to configure object storage", "error", err)
		os.Exit(1)
	}
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := files.Ping(pingCtx); err != nil {
		logger.Log.Warn("Object storage bucket not reachable, uploads will fail", "bucket", cfg.StorageBucket, "error", err)
	}
	cancelPing()

	// 6. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	marketRepo := postgres.NewMarketplaceRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	pipelineRepo := postgres.NewPipelineRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)
	resumeRepo := postgres.NewResumeRepository(dbPool)

	// 7. Setup UseCases
	validate := validation.New()
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiresIn)
	parser := resumeparser.NewClient(cfg.ParserURL, cfg.ParserTimeout)
	pdfRules := security.PDFRules{MaxBytes: cfg.MaxUploadBytes, MaxPages: cfg.MaxResumePages}
	scanner := antivirus.New(cfg.ClamAVAddress, antivirus.WithTimeout(cfg.ClamAVTimeout))
	if cfg.ClamAVAddress == "" {
		logger.Log.Warn("CLAMAV_ADDRESS not configured, uploads are not scanned for malware")
	}

	authUC := usecase.NewAuthUsecase(userRepo, tokens, validate)
	marketplaceUC := usecase.NewMarketplaceUsecase(marketRepo, applicationRepo, profileRepo)
	pipelineUC := usecase.NewPipelineUsecase(pipelineRepo)
	profileUC := usecase.NewProfileUsecase(profileRepo, validate)
	resumeUC := usecase.NewResumeUsecase(resumeRepo, files, parser, scanner, pdfRules, audit)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		MarketplaceUC: marketplaceUC,
		PipelineUC:    pipelineUC,
		ProfileUC:     profileUC,
		ResumeUC:      resumeUC,
		TokenVerifier: tokens,
		UploadLimiter: security.NewUploadLimiter(cfg.UploadsPerMinute, cfg.UploadsPerDay),
		LoginGuard:    security.NewLoginGuard(cfg.LoginMaxAttempts, cfg.LoginBlockDuration, audit),
		Config:        cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
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
