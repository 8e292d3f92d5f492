package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"guidesync/internal/auth"
	"guidesync/internal/config"
	"guidesync/internal/domain/repositories"
	"guidesync/internal/handler"
	"guidesync/internal/handler/sse"
	"guidesync/internal/middleware"
	"guidesync/internal/repository/postgres"
	"guidesync/internal/repository/rediscache"
	serviceDocument "guidesync/internal/service/document"
	serviceExport "guidesync/internal/service/export"
	serviceGuideline "guidesync/internal/service/guideline"
	serviceReview "guidesync/internal/service/review"
	"guidesync/internal/service/transform"
	serviceWorkflow "guidesync/internal/service/workflow"
	"guidesync/internal/storage"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for the external auth issuer
	jwtVerifier, err := auth.NewJWTVerifier(cfg.AuthJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool and run migrations
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.Migrate(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	logger.Info("database connected")

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	docRepo := postgres.NewDocumentRepository(repoConfig)
	journalRepo := postgres.NewJournalRepository(repoConfig)

	// Redis guideline cache; the service degrades to resolver-only when
	// Redis is unavailable
	var guidelineCache repositories.GuidelineCache
	if cache, err := rediscache.NewGuidelineCache(cfg.RedisURL); err != nil {
		logger.Warn("guideline cache unavailable", "error", err)
	} else {
		defer cache.Close()
		guidelineCache = cache
	}

	// MinIO object store for uploaded sources and export artifacts
	objectStore, err := storage.NewMinioStore(ctx, storage.Options{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}

	// Setup transform providers
	providerRegistry, err := transform.SetupRegistry(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to setup transform providers: %v", err)
	}

	// Create services
	resolver := serviceGuideline.NewHTTPResolver(cfg.ResolverBaseURL, logger)
	guidelineSvc := serviceGuideline.NewService(journalRepo, resolver, guidelineCache, logger)
	docService := serviceDocument.NewService(docRepo, objectStore, logger)
	workflowService := serviceWorkflow.NewService(docRepo, providerRegistry, guidelineSvc, cfg, logger)
	reviewService := serviceReview.NewService(docService, logger)
	exportService := serviceExport.NewService(docService, objectStore, logger)

	logger.Info("services initialized")

	// Create handlers
	docHandler := handler.NewDocumentHandler(docService, exportService, logger)
	guidelineHandler := handler.NewGuidelineHandler(guidelineSvc, workflowService, logger)
	workflowHandler := handler.NewWorkflowHandler(workflowService, docService, sse.DefaultConfig(), logger)
	reviewHandler := handler.NewReviewHandler(reviewService, logger)

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", docHandler.HealthCheck)

	// Document routes
	mux.HandleFunc("POST /api/documents", docHandler.Upload)
	mux.HandleFunc("GET /api/documents", docHandler.ListDocuments)
	mux.HandleFunc("GET /api/documents/{id}", docHandler.GetDocument)
	mux.HandleFunc("GET /api/documents/{id}/download", docHandler.Download)

	// Guideline routes
	mux.HandleFunc("GET /api/journals", guidelineHandler.ListJournals)
	mux.HandleFunc("POST /api/guidelines/resolve", guidelineHandler.Resolve)
	mux.HandleFunc("GET /api/guidelines/resolve/{token}", guidelineHandler.ResolveResult)

	// Workflow routes
	mux.HandleFunc("POST /api/documents/{id}/submit", workflowHandler.Submit)
	mux.HandleFunc("GET /api/documents/{id}/progress", workflowHandler.Progress) // SSE

	// Review routes
	mux.HandleFunc("POST /api/documents/{id}/review/open", reviewHandler.Open)
	mux.HandleFunc("GET /api/reviews/{id}", reviewHandler.Snapshot)
	mux.HandleFunc("DELETE /api/reviews/{id}", reviewHandler.Close)
	mux.HandleFunc("POST /api/reviews/{id}/view-mode", reviewHandler.SetViewMode)
	mux.HandleFunc("POST /api/reviews/{id}/edit-toggle", reviewHandler.ToggleEdit)
	mux.HandleFunc("POST /api/reviews/{id}/diff-toggle", reviewHandler.ToggleDiffHighlight)
	mux.HandleFunc("POST /api/reviews/{id}/edit", reviewHandler.Edit)
	mux.HandleFunc("POST /api/reviews/{id}/undo", reviewHandler.Undo)
	mux.HandleFunc("POST /api/reviews/{id}/redo", reviewHandler.Redo)
	mux.HandleFunc("POST /api/reviews/{id}/save", reviewHandler.Save)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.AuthMiddleware(jwtVerifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "Last-Event-ID"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow long-lived SSE streams
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed: %v", err)
	}
}
