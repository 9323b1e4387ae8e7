package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers
const (
	DriverMemory  = "memory"
	DriverSurreal = "surreal"
)

// DevJWTSecret signs tokens when JWT_SECRET is unset outside production
const DevJWTSecret = "runningmate-development-secret"

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Client   ClientConfig
	Jobs     JobsConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// DatabaseConfig selects the storage driver and holds SurrealDB connection settings
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
	Seed      bool
}

// JWTConfig holds JWT signing settings
type JWTConfig struct {
	Secret         string
	ExpirationMins int
	Issuer         string
}

// ClientConfig holds settings of the API client
type ClientConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	IntentTimeout  time.Duration
	ToastDuration  time.Duration
	AuthHeader     string
	UseSampleBoard bool
}

// JobsConfig holds background job settings
type JobsConfig struct {
	BoardCloserInterval time.Duration
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is read first when present; variables
// already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(), nil
}

// LoadFiles is Load with explicit .env files, all of which must exist
func LoadFiles(files ...string) (*Config, error) {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return nil, fmt.Errorf("load env files: %w", err)
		}
	}
	return FromEnv(), nil
}

// FromEnv reads configuration from the process environment only
func FromEnv() *Config {
	env := getEnv("SERVER_ENV", "development")
	secret := getEnv("JWT_SECRET", "")
	if secret == "" && env != "production" {
		secret = DevJWTSecret
	}

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Env:            env,
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Driver:    getEnv("DB_DRIVER", DriverMemory),
			Host:      getEnv("DB_HOST", "localhost"),
			Port:      getEnv("DB_PORT", "8000"),
			Namespace: getEnv("DB_NAMESPACE", "runningmate"),
			Database:  getEnv("DB_DATABASE", "main"),
			User:      getEnv("DB_USER", "root"),
			Password:  getEnv("DB_PASSWORD", "root"),
			Seed:      getBoolEnv("DB_SEED", true),
		},
		JWT: JWTConfig{
			Secret:         secret,
			ExpirationMins: getIntEnv("JWT_EXPIRATION_MINS", 60),
			Issuer:         getEnv("JWT_ISSUER", "api.runningmate.dev"),
		},
		Client: ClientConfig{
			BaseURL:        getEnv("CLIENT_API_URL", "http://localhost:8080"),
			RequestTimeout: getDurationEnv("CLIENT_REQUEST_TIMEOUT", 10*time.Second),
			IntentTimeout:  getDurationEnv("CLIENT_INTENT_TIMEOUT", 15*time.Second),
			ToastDuration:  getDurationEnv("CLIENT_TOAST_DURATION", 5*time.Second),
			AuthHeader:     getEnv("CLIENT_AUTH_HEADER", "x-auth-token"),
			UseSampleBoard: getBoolEnv("CLIENT_SAMPLE_BOARD", false),
		},
		Jobs: JobsConfig{
			BoardCloserInterval: getDurationEnv("JOBS_BOARD_CLOSER_INTERVAL", 5*time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	// Database validation, connection settings only matter for surreal
	switch c.Database.Driver {
	case DriverMemory:
	case DriverSurreal:
		if c.Database.Host == "" {
			errs = append(errs, errors.New("DB_HOST is required"))
		}
		if c.Database.Port == "" {
			errs = append(errs, errors.New("DB_PORT is required"))
		}
		if c.Database.Namespace == "" {
			errs = append(errs, errors.New("DB_NAMESPACE is required"))
		}
		if c.Database.Database == "" {
			errs = append(errs, errors.New("DB_DATABASE is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be '%s' or '%s', got '%s'", DriverMemory, DriverSurreal, c.Database.Driver))
	}

	// JWT validation
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	} else if c.IsProduction() && c.JWT.Secret == DevJWTSecret {
		errs = append(errs, errors.New("JWT_SECRET must not be the development secret in production"))
	}
	if c.JWT.ExpirationMins <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION_MINS must be positive"))
	}

	if err := c.Client.Validate(); err != nil {
		errs = append(errs, err)
	}

	if c.Jobs.BoardCloserInterval <= 0 {
		errs = append(errs, errors.New("JOBS_BOARD_CLOSER_INTERVAL must be positive"))
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be 'json' or 'text', got '%s'", c.Log.Format))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Validate checks the client settings
func (c ClientConfig) Validate() error {
	var errs []error
	if c.BaseURL == "" {
		errs = append(errs, errors.New("CLIENT_API_URL is required"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("CLIENT_REQUEST_TIMEOUT must be positive"))
	}
	if c.IntentTimeout <= 0 {
		errs = append(errs, errors.New("CLIENT_INTENT_TIMEOUT must be positive"))
	}
	if c.ToastDuration <= 0 {
		errs = append(errs, errors.New("CLIENT_TOAST_DURATION must be positive"))
	}
	if c.AuthHeader == "" {
		errs = append(errs, errors.New("CLIENT_AUTH_HEADER is required"))
	}
	return errors.Join(errs...)
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
