package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"pdf-csv-extractor/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort         string
	UploadPath         string
	MaxFileSize        int64
	AllowedExtensions  []string
	LogLevel           string
	ExtractorBackend   string
	PageTimeout        time.Duration
	ExposeErrorDetails bool
	ShutdownTimeout    time.Duration
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// PaaS hosts provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:         getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8000")),
		UploadPath:         getEnvOrDefault("UPLOAD_PATH", "./uploads"),
		MaxFileSize:        getEnvInt64OrDefault("MAX_FILE_SIZE", 16*1024*1024), // 16MB default
		AllowedExtensions:  getEnvListOrDefault("ALLOWED_EXTENSIONS", []string{"pdf"}),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		ExtractorBackend:   strings.ToLower(getEnvOrDefault("EXTRACTOR_BACKEND", domain.BackendLedongthuc)),
		PageTimeout:        getEnvDurationOrDefault("PAGE_TIMEOUT", 90*time.Second),
		ExposeErrorDetails: getEnvBoolOrDefault("EXPOSE_ERROR_DETAILS", false),
		ShutdownTimeout:    getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetUploadPath returns the staging directory path
func (c *AppConfig) GetUploadPath() string {
	return c.UploadPath
}

// GetMaxFileSize returns the maximum accepted request body size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetAllowedExtensions returns the lower-case extension allow-list, without dots
func (c *AppConfig) GetAllowedExtensions() []string {
	return c.AllowedExtensions
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetExtractorBackend returns the name of the PDF text backend
func (c *AppConfig) GetExtractorBackend() string {
	return c.ExtractorBackend
}

// GetPageTimeout returns the per-page extraction timeout
func (c *AppConfig) GetPageTimeout() time.Duration {
	return c.PageTimeout
}

// GetExposeErrorDetails reports whether 500 responses carry the raw error text
func (c *AppConfig) GetExposeErrorDetails() bool {
	return c.ExposeErrorDetails
}

// GetShutdownTimeout returns how long graceful shutdown may take
func (c *AppConfig) GetShutdownTimeout() time.Duration {
	return c.ShutdownTimeout
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(item), "."))
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
