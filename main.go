package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/inventory-dashboard/config"
	"github.com/kendall-kelly/inventory-dashboard/controllers"
	"github.com/kendall-kelly/inventory-dashboard/middleware"
	"github.com/kendall-kelly/inventory-dashboard/services"
	"github.com/kendall-kelly/inventory-dashboard/session"
	"github.com/kendall-kelly/inventory-dashboard/utils"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := utils.NewLogger(os.Stdout, cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	logger.Info("Starting inventory dashboard", "env", cfg.GoEnv, "api", cfg.APIBaseURL)

	db, err := config.ConnectDatabase(cfg.SessionDatabaseURL, logger)
	if err != nil {
		logger.Error("Failed to connect to session database", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, cfg, db, logger)
	if err != nil {
		logger.Error("Failed to initialize dashboard", "error", err)
		os.Exit(1)
	}
	defer app.Shutdown()

	if err := app.Restore(ctx); err != nil {
		// A failed restore leaves the user logged out; the server still starts
		logger.Warn("Failed to restore session", "error", err)
	}

	router := setupRouter(app, cfg, db, logger)
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server is running", "addr", "http://localhost:"+cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
}

// newApp builds the dashboard application: session storage, token inspection
// and the snapshot archive, each enabled by configuration
func newApp(ctx context.Context, cfg *config.Config, db *gorm.DB, logger *slog.Logger) (*controllers.App, error) {
	store, err := session.NewStore(db)
	if err != nil {
		return nil, err
	}

	opts := controllers.Options{
		APIBaseURL:     cfg.APIBaseURL,
		RequestTimeout: cfg.RequestTimeout,
		PollInterval:   cfg.PollInterval,
		CurrencySymbol: cfg.CurrencySymbol,
		Log:            logger,
	}

	if cfg.TokenInspectionEnabled() {
		inspector, err := services.NewTokenInspector(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
		if err != nil {
			return nil, err
		}
		opts.Inspector = inspector
		logger.Info("Token inspection enabled", "issuer", cfg.JWTIssuer)
	}

	if cfg.SnapshotArchiveEnabled() {
		archive, err := services.NewS3SnapshotArchive(ctx, cfg)
		if err != nil {
			return nil, err
		}
		opts.Archive = archive
		logger.Info("Snapshot export enabled", "bucket", cfg.AWSS3Bucket)
	}

	return controllers.NewApp(store, opts), nil
}

// setupRouter creates the router with middleware and every route
func setupRouter(app *controllers.App, cfg *config.Config, db *gorm.DB, logger *slog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AddAllowHeaders(middleware.RequestIDHeader)
	corsConfig.AddExposeHeaders(middleware.RequestIDHeader)
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")
	{
		api.GET("/health", healthCheck)
		api.GET("/database/status", databaseStatus(db))
	}
	controllers.RegisterRoutes(api, app)

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Inventory dashboard is running",
	})
}

// databaseStatus checks the session database and lists its tables
func databaseStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to get database instance",
				},
			})
			return
		}

		if err := sqlDB.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_CONNECTION_ERROR",
					"message": "Database connection failed",
				},
			})
			return
		}

		tables, err := db.Migrator().GetTables()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_QUERY_ERROR",
					"message": "Failed to query tables",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Database connected",
			"tables":  tables,
		})
	}
}
