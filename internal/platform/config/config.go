package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	DatabaseURL   string // Optional; without it the catalog endpoints are not served
	EnableDBCheck bool
	RunMigrations bool
	JWTSecret     string // Optional; without it /api/v1 is unauthenticated

	// Remote catalog consumed by the form's lookups and type-ahead
	CatalogBaseURL  string
	CatalogAPIToken string
	CatalogTimeout  time.Duration

	SearchMinLength int
	SearchDebounce  time.Duration
	SearchCacheSize int
	SearchRateLimit string // limiter format, e.g. "20-S"

	FormIdleTimeout time.Duration // Open forms with no requests for this long are closed; 0 disables

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("CATALOG_BASE_URL", "")
	v.SetDefault("CATALOG_API_TOKEN", "")
	v.SetDefault("CATALOG_TIMEOUT", "10s")
	v.SetDefault("SEARCH_MIN_LENGTH", 1)
	v.SetDefault("SEARCH_DEBOUNCE", "250ms")
	v.SetDefault("SEARCH_CACHE_SIZE", 512)
	v.SetDefault("SEARCH_RATE_LIMIT", "20-S")
	v.SetDefault("FORM_IDLE_TIMEOUT", "30m")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:            v.GetString("PORT"),
		IsProduction:    v.GetBool("IS_PRODUCTION"),
		DatabaseURL:     v.GetString("PGSQL_URL"),
		EnableDBCheck:   v.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:   v.GetBool("RUN_MIGRATIONS"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		CatalogBaseURL:  strings.TrimRight(v.GetString("CATALOG_BASE_URL"), "/"),
		CatalogAPIToken: v.GetString("CATALOG_API_TOKEN"),
		SearchMinLength: v.GetInt("SEARCH_MIN_LENGTH"),
		SearchCacheSize: v.GetInt("SEARCH_CACHE_SIZE"),
		SearchRateLimit: v.GetString("SEARCH_RATE_LIMIT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	var err error
	if cfg.CatalogTimeout, err = duration(v, "CATALOG_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.SearchDebounce, err = duration(v, "SEARCH_DEBOUNCE"); err != nil {
		return nil, err
	}
	if cfg.FormIdleTimeout, err = duration(v, "FORM_IDLE_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.SearchMinLength < 0 {
		return nil, fmt.Errorf("SEARCH_MIN_LENGTH must not be negative, got %d", cfg.SearchMinLength)
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL not set. Product catalog endpoints are disabled.")
	}
	if cfg.CatalogBaseURL == "" {
		log.Println("Warning: CATALOG_BASE_URL not set. Using this server's catalog when a database is configured.")
	}
	if cfg.JWTSecret == "" && cfg.IsProduction {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	return cfg, nil
}

func duration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %s", key, raw)
	}
	return d, nil
}
