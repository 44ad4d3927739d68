package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Growth   GrowthConfig
	Snapshot SnapshotConfig
	Secrets  SecretsConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// GrowthConfig holds growth-calculation defaults.
type GrowthConfig struct {
	// MinimumMonths is the minimum number of historical month-end points
	// required before a growth rate is considered meaningful.
	MinimumMonths int
}

// SnapshotConfig holds the month-end snapshot job configuration.
type SnapshotConfig struct {
	// Schedule is a cron expression; the default runs shortly after
	// midnight on the first of each month.
	Schedule string
}

// SecretsConfig holds keys for encrypting stored credentials.
type SecretsConfig struct {
	// FernetKey is the base64 fernet key used to encrypt the rate
	// provider API key at rest. Empty disables the provider-key endpoints.
	FernetKey string
}

// fileConfig mirrors the optional TOML configuration file. Environment
// variables take precedence over file values.
type fileConfig struct {
	Server struct {
		Host string `toml:"host"`
		Port string `toml:"port"`
	} `toml:"server"`
	Database struct {
		Path string `toml:"path"`
	} `toml:"database"`
	Growth struct {
		MinimumMonths int `toml:"minimum_months"`
	} `toml:"growth"`
	Snapshot struct {
		Schedule string `toml:"schedule"`
	} `toml:"snapshot"`
}

// Load reads configuration from an optional TOML file, a .env file, and
// environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	var file fileConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	minimumMonths, err := getEnvInt("GROWTH_MINIMUM_MONTHS", firstNonZero(file.Growth.MinimumMonths, 6))
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", firstNonEmpty(file.Server.Port, "5001")),
			Host: getEnv("SERVER_HOST", firstNonEmpty(file.Server.Host, "localhost")),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", firstNonEmpty(file.Database.Path, "./data/networth.db")),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Growth: GrowthConfig{
			MinimumMonths: minimumMonths,
		},
		Snapshot: SnapshotConfig{
			Schedule: getEnv("SNAPSHOT_SCHEDULE", firstNonEmpty(file.Snapshot.Schedule, "0 2 1 * *")),
		},
		Secrets: SecretsConfig{
			FernetKey: getEnv("FERNET_KEY", ""),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s=%q as integer: %w", key, value, err)
	}
	return parsed, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
