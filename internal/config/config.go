package config

import (
	"os"
	"strconv"
	"time"

	"sizhen/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Modality ModalityConfig
	Analysis AnalysisConfig
	Export   ExportConfig
}

// DatabaseConfig holds database connection settings. An empty URL selects
// the in-memory repository.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// ModalityConfig holds the per-stream service endpoints. An empty URL marks
// the stream as not deployed; the coordinator then treats it as absent.
type ModalityConfig struct {
	LookingURL   string
	SmellURL     string
	InquiryURL   string
	TouchURL     string
	FetchTimeout time.Duration
}

// AnalysisConfig holds analysis pipeline settings
type AnalysisConfig struct {
	RuleTablePath string // empty selects the embedded tables
	Timeout       time.Duration
}

// ExportConfig holds audit export settings
type ExportConfig struct {
	Dir string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:             getEnvOrDefault("DATABASE_URL", ""),
			MaxOpenConns:    getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDurationOrDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Server: ServerConfig{
			Port:            getEnvOrDefault("PORT", "8080"),
			ReadTimeout:     getEnvDurationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDurationOrDefault("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Modality: ModalityConfig{
			LookingURL:   getEnvOrDefault("LOOKING_SERVICE_URL", ""),
			SmellURL:     getEnvOrDefault("SMELL_SERVICE_URL", ""),
			InquiryURL:   getEnvOrDefault("INQUIRY_SERVICE_URL", ""),
			TouchURL:     getEnvOrDefault("TOUCH_SERVICE_URL", ""),
			FetchTimeout: getEnvDurationOrDefault("MODALITY_FETCH_TIMEOUT", 10*time.Second),
		},
		Analysis: AnalysisConfig{
			RuleTablePath: getEnvOrDefault("RULE_TABLE_PATH", ""),
			Timeout:       getEnvDurationOrDefault("ANALYSIS_TIMEOUT", 30*time.Second),
		},
		Export: ExportConfig{
			Dir: getEnvOrDefault("EXPORT_DIR", "./exports"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Modality.FetchTimeout <= 0 {
		return errors.ConfigInvalid("modality fetch timeout must be positive")
	}
	if config.Analysis.Timeout <= 0 {
		return errors.ConfigInvalid("analysis timeout must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
