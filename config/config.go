package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Loki    LokiConfig
	Health  HealthConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	AllowOrigins []string
}

type LokiConfig struct {
	URL        string
	Timeout    time.Duration
	MaxRetries int
	MaxLimit   int
	PodLabel   string
}

type HealthConfig struct {
	Schedule string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Addr is the listen address of the HTTP surface.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

func NewConfig() (*Config, error) {
	// Configure Viper to read .env file
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// Enable automatic environment variable loading
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", "8000")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")
	viper.SetDefault("LOKI_TIMEOUT", "30s")
	viper.SetDefault("LOKI_MAX_RETRIES", 0)
	viper.SetDefault("LOKI_MAX_LIMIT", 5000)
	viper.SetDefault("LOKI_POD_LABEL", "pod")
	viper.SetDefault("HEALTH_CHECK_SCHEDULE", "*/30 * * * * *") // Every 30 seconds
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config
	config.Server.Host = viper.GetString("SERVER_HOST")
	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.AllowOrigins = splitList(viper.GetString("CORS_ALLOW_ORIGINS"))

	// --- Loki ---
	config.Loki.URL = strings.TrimSuffix(strings.TrimSpace(viper.GetString("LOKI_URL")), "/")
	config.Loki.Timeout = viper.GetDuration("LOKI_TIMEOUT")
	config.Loki.MaxRetries = viper.GetInt("LOKI_MAX_RETRIES")
	config.Loki.MaxLimit = viper.GetInt("LOKI_MAX_LIMIT")
	config.Loki.PodLabel = viper.GetString("LOKI_POD_LABEL")

	// --- Health ---
	config.Health.Schedule = viper.GetString("HEALTH_CHECK_SCHEDULE")

	// --- Logging ---
	config.Logging.Level = viper.GetString("LOG_LEVEL")
	config.Logging.Format = viper.GetString("LOG_FORMAT")

	if err := config.Validate(); err != nil {
		return nil, err
	}

	log.Info().Interface("config", config).Msg("Config loaded")
	return &config, nil
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	if c.Loki.URL == "" {
		return errors.New("LOKI_URL is required")
	}
	u, err := url.Parse(c.Loki.URL)
	if err != nil {
		return fmt.Errorf("invalid LOKI_URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid LOKI_URL %q: want http(s)://host[:port]", c.Loki.URL)
	}
	if c.Loki.Timeout <= 0 {
		return fmt.Errorf("LOKI_TIMEOUT must be positive, got %s", c.Loki.Timeout)
	}
	if c.Loki.MaxRetries < 0 {
		return fmt.Errorf("LOKI_MAX_RETRIES cannot be negative, got %d", c.Loki.MaxRetries)
	}
	if c.Loki.MaxLimit <= 0 {
		return fmt.Errorf("LOKI_MAX_LIMIT must be positive, got %d", c.Loki.MaxLimit)
	}
	if c.Server.Port == "" {
		return errors.New("SERVER_PORT cannot be empty")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
