package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/invoice_form_app/internal/adapters/catalog"
	portsrepo "github.com/SscSPs/invoice_form_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_form_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_form_app/internal/core/services"
	"github.com/SscSPs/invoice_form_app/internal/handlers"
	"github.com/SscSPs/invoice_form_app/internal/middleware"
	"github.com/SscSPs/invoice_form_app/internal/platform/config"
	"github.com/SscSPs/invoice_form_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/invoice_form_app/internal/utils"
	"github.com/SscSPs/invoice_form_app/migrations"
	"github.com/SscSPs/invoice_form_app/pkg/database"
	"github.com/gin-gonic/gin"
)

// @title Invoice Form Backend API
// @version 1.0
// @description Server-side invoice line-item form: rows, catalog lookups and live totals.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := portsrepo.RepositoryProvider{}
	if cfg.DatabaseURL != "" {
		if cfg.RunMigrations {
			logger.Info("Running database migrations...")
			if err := database.RunMigrations(cfg.DatabaseURL, migrations.FS, logger); err != nil {
				logger.Error("Failed to run database migrations", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}

		dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)
		logger.Info("Database connection pool established.")

		repos = pgsql.NewRepositoryProvider(dbPool)
	}

	catalogClient, err := newCatalogClient(cfg, repos)
	if err != nil {
		logger.Error("Failed to create catalog client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	serviceContainer := services.NewServiceContainer(cfg, repos, catalogClient)
	defer serviceContainer.Shutdown()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.CORS(cfg.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
}

const catalogClientSubject = "invoice-form-catalog-client"

// newCatalogClient points the form at CATALOG_BASE_URL, or at this server's own catalog
// endpoints when only a database is configured. It returns nil when neither is available.
func newCatalogClient(cfg *config.Config, repos portsrepo.RepositoryProvider) (portssvc.ProductCatalogClient, error) {
	baseURL := cfg.CatalogBaseURL
	if baseURL == "" {
		if repos.ProductRepo == nil {
			slog.Warn("No product catalog configured; product lookups will fail")
			return nil, nil
		}
		baseURL = "http://127.0.0.1:" + cfg.Port + "/api/v1/products"
	}

	apiToken := cfg.CatalogAPIToken
	if apiToken == "" && cfg.CatalogBaseURL == "" && cfg.JWTSecret != "" {
		// Calling our own protected catalog: mint a non-expiring service token.
		token, err := utils.GenerateJWT(catalogClientSubject, cfg.JWTSecret, 0, "invoice-form-app")
		if err != nil {
			return nil, err
		}
		apiToken = token
	}

	client, err := catalog.NewClient(baseURL,
		catalog.WithHTTPClient(&http.Client{Timeout: cfg.CatalogTimeout}),
		catalog.WithAPIToken(apiToken),
		catalog.WithMinTermLength(cfg.SearchMinLength),
		catalog.WithCacheSize(cfg.SearchCacheSize),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}
