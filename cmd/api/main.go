package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/notegraph-dev/notegraph/pkg/validator"

	"github.com/notegraph-dev/notegraph/internal/adapter/handler"
	"github.com/notegraph-dev/notegraph/internal/adapter/repository"
	"github.com/notegraph-dev/notegraph/internal/infrastructure/cache"
	"github.com/notegraph-dev/notegraph/internal/infrastructure/database"
	"github.com/notegraph-dev/notegraph/internal/infrastructure/external/llm"
	"github.com/notegraph-dev/notegraph/internal/infrastructure/external/tracker"
	"github.com/notegraph-dev/notegraph/internal/infrastructure/storage"
	"github.com/notegraph-dev/notegraph/internal/usecase/analytics"
	"github.com/notegraph-dev/notegraph/internal/usecase/ingest"
	"github.com/notegraph-dev/notegraph/internal/usecase/query"
	"github.com/notegraph-dev/notegraph/pkg/config"
	"github.com/notegraph-dev/notegraph/pkg/nlp"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Running migrations (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize graph store. A failed connectivity check is fatal and is
	// never retried.
	log.Println("🕸️  Initializing graph store...")
	graphStore := repository.NewGraphStore(db)
	if err := graphStore.Ping(context.Background()); err != nil {
		log.Fatalf("Graph store is unavailable: %v", err)
	}
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Initialize cache: Redis when enabled, in-memory otherwise
	var cacheStore analytics.Cache
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisStore, err := cache.NewRedisStore(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisStore.Close()
		cacheStore = redisStore
	} else {
		log.Println("📦 Redis disabled, using in-memory cache")
		cacheStore = cache.NewMemoryStore()
	}

	// Initialize NLP engine
	log.Println("🧠 Initializing NLP engine...")
	var embedder nlp.Embedder
	if cfg.NLP.EmbeddingModel != "" {
		fastEmbedder, err := nlp.NewFastEmbedder(cfg.NLP.EmbeddingModel, cfg.NLP.ModelCacheDir)
		if err != nil {
			log.Fatalf("Failed to initialize embedding model: %v", err)
		}
		defer fastEmbedder.Close()
		embedder = fastEmbedder
		log.Printf("✅ Embedding model loaded: %s", cfg.NLP.EmbeddingModel)
	} else {
		log.Println("⚠️  No embedding model configured, using lexical fallback")
	}
	engine := nlp.NewEngine(embedder)

	// Initialize document archive (optional)
	var archiver ingest.Archiver
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to MinIO...")
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to connect to MinIO: %v", err)
		}
		archiver = minioClient
	}

	// Initialize LLM client (optional)
	var textGen analytics.TextGenerator
	if cfg.LLM.APIKey != "" {
		log.Println("🤖 Initializing LLM client...")
		openaiClient, err := llm.NewOpenAIClient(&cfg.LLM)
		if err != nil {
			log.Fatalf("Failed to initialize LLM client: %v", err)
		}
		textGen = openaiClient
	} else {
		log.Println("⚠️  No LLM configured, query translation disabled")
	}

	// Initialize usecases
	log.Println("⚙️  Initializing services...")
	ingestService := ingest.NewService(engine, graphStore, archiver, cfg.NLP.TopKeyphrases, logger)
	analyticsService := analytics.NewService(analyticsRepo, cacheStore, textGen, logger)

	// Initialize handlers
	ingestHandler := handler.NewIngestHandler(ingestService, logger)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, logger)

	var queryHandler *handler.Query
	if textGen != nil {
		queryService := query.NewService(textGen, analyticsRepo, logger)
		queryHandler = handler.NewQueryHandler(queryService, logger)
	}

	var issueCreator handler.IssueCreator
	if cfg.TrackerEnabled() {
		log.Println("🐙 Initializing issue tracker client...")
		issueCreator = tracker.NewClient(&cfg.Tracker)
	}
	trackerHandler := handler.NewTrackerHandler(analyticsService, issueCreator, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, ingestHandler, analyticsHandler, queryHandler, trackerHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
