package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// EnvSessionToken переменная окружения с сессионным токеном клиента
	EnvSessionToken = "SHEETKEEPER_SESSION_TOKEN"
	// EnvSessionSecret переменная окружения с секретом подписи сессий шлюза
	EnvSessionSecret = "SHEETKEEPER_SESSION_SECRET"
)

// QueueConfig holds the bounds of the pending operation queue.
// A zero value disables the corresponding bound.
type QueueConfig struct {
	MaxAttempts int    `yaml:"max_attempts"`
	MaxAge      string `yaml:"max_age"`
}

// ClientConfig holds client-specific configurations.
type ClientConfig struct {
	ServerURL         string      `yaml:"server_url"`
	DBPath            string      `yaml:"db_path"`
	RequestTimeout    string      `yaml:"request_timeout"`
	StorageQuotaBytes int64       `yaml:"storage_quota_bytes"`
	CheckInterval     string      `yaml:"check_interval"`
	CheckTimeout      string      `yaml:"check_timeout"`
	OfflineHTTPCache  bool        `yaml:"offline_http_cache"`
	Queue             QueueConfig `yaml:"queue"`
}

// RateLimitConfig holds per-IP rate limit settings of the gateway.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requests_per_minute"`
}

// ServerConfig holds gateway-specific configurations.
type ServerConfig struct {
	ListenAddress   string          `yaml:"listen_address"`
	DBPath          string          `yaml:"db_path"`
	SessionSecret   string          `yaml:"session_secret"`
	SessionTTL      string          `yaml:"session_ttl"`
	SheetsBaseURL   string          `yaml:"sheets_base_url"`
	DriveBaseURL    string          `yaml:"drive_base_url"`
	UpstreamTimeout string          `yaml:"upstream_timeout"`
	ShutdownTimeout string          `yaml:"shutdown_timeout"`
	RateLimit       RateLimitConfig `yaml:"rate_limit"`
}

// LoggingConfig holds logging configurations.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // e.g., "debug", "info", "warn", "error"
	Output string `yaml:"output"` // e.g., "stdout", "stderr", "file", "none"
	Format string `yaml:"format"` // "json" or "text"
	File   string `yaml:"file"`   // Path to the log file, used if output is "file"
}

// TracingConfig holds configuration for distributed tracing.
type TracingConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"` // e.g., "localhost:4317" for gRPC OTLP collector
	Protocol string `yaml:"protocol"` // "grpc" or "http"
}

// Config is the top-level configuration struct.
type Config struct {
	Client  ClientConfig  `yaml:"client"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Tracing TracingConfig `yaml:"tracing"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Client: ClientConfig{
			ServerURL:         "http://localhost:8080",
			DBPath:            "sheetkeeper.db",
			RequestTimeout:    "30s",
			StorageQuotaBytes: 5 * 1024 * 1024, // 5 MiB
			CheckInterval:     "15s",
			CheckTimeout:      "5s",
			OfflineHTTPCache:  true,
			Queue: QueueConfig{
				MaxAttempts: 10,
				MaxAge:      "720h",
			},
		},
		Server: ServerConfig{
			ListenAddress:   ":8080",
			DBPath:          "sheetkeeper-server.db",
			SessionTTL:      "1h",
			SheetsBaseURL:   "https://sheets.googleapis.com",
			DriveBaseURL:    "https://www.googleapis.com",
			UpstreamTimeout: "30s",
			ShutdownTimeout: "10s",
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "stderr",
			Format: "text",
		},
		Tracing: TracingConfig{
			Enabled:  false,
			Endpoint: "localhost:4317",
			Protocol: "grpc",
		},
	}
}

// ParseDuration parses a duration string. Returns the default duration if the string is empty or invalid.
// Logs a warning if the string is invalid but not empty.
func ParseDuration(durationStr string, defaultDuration time.Duration, logger *slog.Logger) time.Duration {
	if durationStr == "" {
		return defaultDuration
	}
	if durationStr == "0" {
		return 0
	}
	d, err := time.ParseDuration(durationStr)
	if err != nil {
		if logger != nil {
			logger.Warn("Invalid duration format, using default", "input", durationStr, "default", defaultDuration.String(), "error", err)
		}
		return defaultDuration
	}
	return d
}

// Load reads configuration from an io.Reader.
// Defaults are applied first, then overridden by YAML and environment.
func Load(r io.Reader) (*Config, error) {
	cfg := Default()

	if r != nil {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read config data: %w", err)
		}

		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config yaml: %w", err)
			}
		}
	}

	// Приоритет: переменная окружения > файл
	if secret := os.Getenv(EnvSessionSecret); secret != "" {
		cfg.Server.SessionSecret = secret
	}

	return cfg, nil
}

// LoadConfig reads configuration from a YAML file by path.
// A missing file is not an error: the defaults are returned.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return Load(nil)
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Load(nil)
		}
		return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
	}
	defer file.Close()

	return Load(file)
}
