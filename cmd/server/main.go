package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"propboard/internal/cache"
	"propboard/internal/config"
	"propboard/internal/handler"
	"propboard/internal/model"
	"propboard/internal/repository"
	"propboard/internal/service"
	"propboard/internal/source"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Print version info
	log.Printf("Propboard Dashboard Server")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database connection
	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	log.Println("✅ Connected to PostgreSQL database")

	// Optional Redis cache for address lookups
	var lookupCache service.LookupCache
	if cfg.Redis.Enabled {
		redisCache := cache.NewLookupCache(
			cfg.Redis.Addr,
			cfg.Redis.Password,
			cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLMinutes)*time.Minute,
		)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisCache.Ping(ctx); err != nil {
			log.Printf("⚠️  Redis unreachable, lookup cache disabled: %v", err)
		} else {
			lookupCache = redisCache
			defer redisCache.Close()
			log.Printf("✅ Redis lookup cache enabled (TTL %dm)", cfg.Redis.TTLMinutes)
		}
		cancel()
	} else {
		log.Println("⚠️  Redis is disabled - every lookup hits the upstream sources")
		log.Println("   Set REDIS_ADDR environment variable to enable caching")
	}

	// Aggregation sources. Every provider gets a chain entry even when it is
	// not configured: an unconfigured provider reports a diagnostic outcome
	// instead of silently vanishing from the response.
	coordinator := service.NewAggregationCoordinator(buildChains(cfg), lookupCache)

	// Command pipeline
	recognizer := service.NewAddressRecognizer()
	classifier := service.NewCommandClassifier(recognizer)
	executor := service.NewCommandExecutor(nil)

	propertyService := service.NewPropertyService(repo, coordinator)

	log.Println("✅ Services initialized")

	// Initialize handlers
	commandHandler := handler.NewCommandHandler(classifier, executor, repo)
	lookupHandler := handler.NewLookupHandler(propertyService)
	propertyHandler := handler.NewPropertyHandler(propertyService, cfg.Search.DefaultLimit, cfg.Search.MaxLimit)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "propboard",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		// Command bar
		apiV1.POST("/command", commandHandler.Execute)

		// Address lookup (aggregation preview)
		apiV1.POST("/lookup", lookupHandler.Lookup)

		// Portfolio
		apiV1.POST("/properties", propertyHandler.Create)
		apiV1.GET("/properties", propertyHandler.List)
		apiV1.GET("/properties/:id", propertyHandler.Get)
	}

	// Serve static files (frontend)
	// This function is implemented in embed.go (production) or static_dev.go (development)
	setupStaticFiles(router)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API Documentation: http://localhost:%d/api/v1", cfg.Server.Port)
	log.Printf("🌐 Dashboard: http://localhost:%d", cfg.Server.Port)

	// Graceful shutdown
	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}

// buildChains wires each data category to its provider attempts, in fallback
// order. Only tax data has a second source today.
func buildChains(cfg *config.Config) map[model.Category][]source.Attempt {
	timeout := time.Duration(cfg.Sources.TimeoutSeconds) * time.Second

	attom := source.NewAttomClient(&cfg.Sources.Attom, timeout)
	county := source.NewCountyClient(&cfg.Sources.County, timeout)
	census := source.NewCensusClient(&cfg.Sources.Census, timeout)
	schools := source.NewSchoolsClient(&cfg.Sources.Schools, timeout)
	crime := source.NewCrimeClient(&cfg.Sources.Crime, timeout)
	walkscore := source.NewWalkScoreClient(&cfg.Sources.WalkScore, timeout)
	fema := source.NewFemaClient(&cfg.Sources.Fema, timeout)

	for name, enabled := range map[string]bool{
		"ATTOM":     cfg.Sources.Attom.Enabled,
		"county":    cfg.Sources.County.Enabled,
		"census":    cfg.Sources.Census.Enabled,
		"schools":   cfg.Sources.Schools.Enabled,
		"crime":     cfg.Sources.Crime.Enabled,
		"walkscore": cfg.Sources.WalkScore.Enabled,
		"FEMA":      cfg.Sources.Fema.Enabled,
	} {
		if !enabled {
			log.Printf("⚠️  Source %s is not configured", name)
		}
	}

	return map[model.Category][]source.Attempt{
		model.CategoryTax: {
			source.NewAttempt("attom", attom.FetchTax),
			source.NewAttempt("county", county.FetchTax),
		},
		model.CategoryMarket: {
			source.NewAttempt("attom", attom.FetchMarket),
		},
		model.CategorySales: {
			source.NewAttempt("attom", attom.FetchSales),
		},
		model.CategoryPermits: {
			source.NewAttempt("county", county.FetchPermits),
		},
		model.CategoryViolations: {
			source.NewAttempt("county", county.FetchViolations),
		},
		model.CategoryZoning: {
			source.NewAttempt("county", county.FetchZoning),
		},
		model.CategoryDemographics: {
			source.NewAttempt("census", census.FetchDemographics),
		},
		model.CategorySchools: {
			source.NewAttempt("greatschools", schools.FetchSchools),
		},
		model.CategoryCrime: {
			source.NewAttempt("fbi-cde", crime.FetchCrime),
		},
		model.CategoryWalkScore: {
			source.NewAttempt("walkscore", walkscore.FetchWalkScore),
		},
		model.CategoryFloodZone: {
			source.NewAttempt("fema-nfhl", fema.FetchFloodZone),
		},
	}
}
