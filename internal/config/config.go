package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	SourceURL       string
	RefreshInterval time.Duration
	RefreshTimeout  time.Duration
	FetchTimeout    time.Duration
	FetchAttempts   int

	NormalizeWorkers  int
	GazetteerFile     string
	ResolverCacheSize int

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Kafka snapshot publishing.
	KafkaEnabled   bool
	KafkaBrokers   []string
	KafkaSinkTopic string
}

// Load reads configuration from environment variables, applying defaults where
// unset. A .env file in the working directory is loaded first if present;
// variables already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	refreshInterval, err := parseDuration("REFRESH_INTERVAL", "10m")
	if err != nil {
		return nil, err
	}
	refreshTimeout, err := parseDuration("REFRESH_TIMEOUT", "2m")
	if err != nil {
		return nil, err
	}
	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	fetchAttempts, err := parsePositiveInt("FETCH_ATTEMPTS", 3)
	if err != nil {
		return nil, err
	}
	workers, err := parsePositiveInt("NORMALIZE_WORKERS", 4)
	if err != nil {
		return nil, err
	}
	cacheSize, err := parsePositiveInt("RESOLVER_CACHE_SIZE", 1000)
	if err != nil {
		return nil, err
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		SourceURL:       os.Getenv("SOURCE_CSV_URL"),
		RefreshInterval: refreshInterval,
		RefreshTimeout:  refreshTimeout,
		FetchTimeout:    fetchTimeout,
		FetchAttempts:   fetchAttempts,

		NormalizeWorkers:  workers,
		GazetteerFile:     os.Getenv("GAZETTEER_FILE"),
		ResolverCacheSize: cacheSize,

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KafkaEnabled:   kafkaEnabled,
		KafkaBrokers:   brokers,
		KafkaSinkTopic: sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "normalized-incidents"),
	}

	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}

	return cfg, nil
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}
