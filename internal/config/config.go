package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Search     SearchConfig
	Redis      RedisConfig
	Sources    SourcesConfig
	Logging    LoggingConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, takes precedence
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// SearchConfig holds paging limits for property list/search queries
type SearchConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// RedisConfig holds the optional aggregation-cache configuration. The cache
// is disabled entirely when REDIS_ADDR is unset.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	TTLMinutes int
	Enabled    bool
}

// SourcesConfig holds per-provider configuration for the public-data
// aggregation layer.
type SourcesConfig struct {
	TimeoutSeconds int
	Attom          SourceConfig
	County         SourceConfig
	Census         SourceConfig
	Schools        SourceConfig
	Crime          SourceConfig
	WalkScore      SourceConfig
	Fema           SourceConfig
}

// SourceConfig holds one provider's credential and endpoint. Enabled is
// derived at load time: open-data providers need only a base URL, the rest
// need an API key. A disabled provider fails fast without a network call.
type SourceConfig struct {
	APIKey  string
	BaseURL string
	Enabled bool
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			// Full DSN takes precedence (DATABASE_URL, POSTGRESQL_URI, PG_DSN)
			DSN:                getEnv("DATABASE_URL", getEnv("POSTGRESQL_URI", getEnv("PG_DSN", ""))),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "propboard"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS"),
			AllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type,Authorization"),
		},
		Search: SearchConfig{
			DefaultLimit: getEnvAsInt("SEARCH_DEFAULT_LIMIT", 20),
			MaxLimit:     getEnvAsInt("SEARCH_MAX_LIMIT", 100),
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", ""),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvAsInt("REDIS_DB", 0),
			TTLMinutes: getEnvAsInt("LOOKUP_CACHE_TTL_MINUTES", 60),
			Enabled:    getEnv("REDIS_ADDR", "") != "",
		},
		Sources: SourcesConfig{
			TimeoutSeconds: getEnvAsInt("SOURCE_TIMEOUT", 15),
			Attom: keyedSource(
				getEnv("ATTOM_API_KEY", ""),
				getEnv("ATTOM_API_BASE", "https://api.gateway.attomdata.com/propertyapi/v1.0.0"),
			),
			County: openSource(
				getEnv("COUNTY_DATA_BASE", "https://data.cityofboston.gov/resource"),
			),
			Census: keyedSource(
				getEnv("CENSUS_API_KEY", ""),
				getEnv("CENSUS_API_BASE", "https://api.census.gov/data"),
			),
			Schools: keyedSource(
				getEnv("SCHOOLS_API_KEY", ""),
				getEnv("SCHOOLS_API_BASE", "https://api.greatschools.org"),
			),
			Crime: keyedSource(
				getEnv("CRIME_API_KEY", ""),
				getEnv("CRIME_API_BASE", "https://api.usa.gov/crime/fbi/cde"),
			),
			WalkScore: keyedSource(
				getEnv("WALKSCORE_API_KEY", ""),
				getEnv("WALKSCORE_API_BASE", "https://api.walkscore.com"),
			),
			Fema: openSource(
				getEnv("FEMA_API_BASE", "https://hazards.fema.gov/gis/nfhl/rest"),
			),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	// Full DSN takes precedence
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	// Otherwise assemble from individual fields
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// keyedSource builds a provider config that requires an API key.
func keyedSource(apiKey, baseURL string) SourceConfig {
	return SourceConfig{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Enabled: apiKey != "",
	}
}

// openSource builds a provider config for open-data endpoints with no key.
func openSource(baseURL string) SourceConfig {
	return SourceConfig{
		BaseURL: baseURL,
		Enabled: baseURL != "",
	}
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}
