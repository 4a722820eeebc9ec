package config

import (
	"errors"
	"fmt"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/couchcryptid/storm-surge-verify/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	Verification VerificationConfig
}

// VerificationConfig controls station pair alignment and statistics.
// Variables carry the VERIFY_ prefix, e.g. VERIFY_STEP_MINUTES.
type VerificationConfig struct {
	StepMinutes      int           `envconfig:"STEP_MINUTES" default:"6" validate:"min=1,max=1440"`
	Extent           string        `envconfig:"EXTENT" default:"intersection" validate:"oneof=intersection union"`
	PublicationDelay time.Duration `envconfig:"PUBLICATION_DELAY" default:"5h20m" validate:"min=0,max=23h59m"`
	Concurrency      int           `envconfig:"CONCURRENCY" default:"4" validate:"min=1,max=64"`
}

// Options converts the settings into domain verification options.
func (v VerificationConfig) Options() (domain.Options, error) {
	ext, err := domain.ParseExtent(v.Extent)
	if err != nil {
		return domain.Options{}, err
	}
	return domain.Options{
		StepMinutes:      v.StepMinutes,
		Extent:           ext,
		PublicationDelay: v.PublicationDelay,
	}, nil
}

// Load reads configuration from environment variables, applying defaults where unset.
// A .env file in the working directory is loaded first if present; it never
// overrides variables already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	verification, err := loadVerification()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "station-series"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "verification-results"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "storm-surge-verify"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,
		Verification:       verification,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}

	return cfg, nil
}

func loadVerification() (VerificationConfig, error) {
	var v VerificationConfig
	if err := envconfig.Process("VERIFY", &v); err != nil {
		return VerificationConfig{}, fmt.Errorf("invalid VERIFY settings: %w", err)
	}
	if err := validator.New().Struct(v); err != nil {
		return VerificationConfig{}, fmt.Errorf("invalid VERIFY settings: %w", err)
	}
	return v, nil
}
