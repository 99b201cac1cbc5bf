package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/invoice_form_app/cmd/docs"
	portssvc "github.com/SscSPs/invoice_form_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_form_app/internal/middleware"
	"github.com/SscSPs/invoice_form_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	RegisterValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (only outside production)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	var v1 *gin.RouterGroup
	if cfg.JWTSecret != "" {
		v1 = r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	} else {
		slog.Warn("JWT_SECRET not set; /api/v1 is served without authentication")
		v1 = r.Group("/api/v1")
	}

	searchLimit := searchMiddleware(cfg)

	RegisterFormRoutes(v1, service.Form, searchLimit...)
	if service.Catalog != nil {
		RegisterCatalogRoutes(v1, service.Catalog, searchLimit...)
	}
}

// searchMiddleware rate-limits the type-ahead endpoints. One limiter is shared by both
// search routes so a client cannot double its budget.
func searchMiddleware(cfg *config.Config) []gin.HandlerFunc {
	if cfg.SearchRateLimit == "" {
		return nil
	}
	lim, err := middleware.NewMemoryLimiter(cfg.SearchRateLimit)
	if err != nil {
		slog.Error("Search rate limit disabled", slog.String("error", err.Error()))
		return nil
	}
	return []gin.HandlerFunc{middleware.RateLimit(lim)}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
