package config

import (
	"fmt"
	"os"
	"time"

	"file-ingest/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/wb-go/wbf/retry"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	Limits  LimitsConfig  `yaml:"limits"`
	Worker  WorkerConfig  `yaml:"worker"`
	Retries RetryConfig   `yaml:"retries"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"SERVER_ADDR" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type StorageConfig struct {
	Endpoint      string        `yaml:"endpoint" env:"STORAGE_ENDPOINT" env-default:"localhost:9000" validate:"required"`
	AccessKey     string        `yaml:"access_key" env:"STORAGE_ACCESS_KEY" validate:"required"`
	SecretKey     string        `yaml:"secret_key" env:"STORAGE_SECRET_KEY" validate:"required"`
	Bucket        string        `yaml:"bucket" env:"STORAGE_BUCKET" env-default:"input-files" validate:"required"`
	UseSSL        bool          `yaml:"use_ssl" env:"STORAGE_USE_SSL" env-default:"false"`
	PublicBaseURL string        `yaml:"public_base_url" env:"STORAGE_PUBLIC_BASE_URL"`
	CredentialTTL time.Duration `yaml:"credential_ttl" env:"STORAGE_CREDENTIAL_TTL" env-default:"15m" validate:"gt=0"`
}

type KafkaConfig struct {
	Brokers      []string `yaml:"brokers" env:"KAFKA_BROKERS" env-default:"localhost:9092" validate:"required,min=1"`
	SourcesTopic string   `yaml:"sources_topic" env:"KAFKA_SOURCES_TOPIC" env-default:"input-sources" validate:"required"`
	GroupID      string   `yaml:"group_id" env:"KAFKA_GROUP_ID" env-default:"input-source-consumers" validate:"required"`
}

type LimitsConfig struct {
	MaxFiles     int      `yaml:"max_files" env:"LIMITS_MAX_FILES" env-default:"5" validate:"gt=0"`
	MaxSizeMB    int64    `yaml:"max_size_mb" env:"LIMITS_MAX_SIZE_MB" env-default:"50" validate:"gt=0"`
	AllowedTypes []string `yaml:"allowed_types" env:"LIMITS_ALLOWED_TYPES"`
}

type WorkerConfig struct {
	Concurrency int `yaml:"concurrency" env:"WORKER_CONCURRENCY" env-default:"4" validate:"gt=0"`
}

type RetryConfig struct {
	Attempts int           `yaml:"attempts" env:"RETRY_ATTEMPTS" env-default:"3" validate:"gt=0"`
	Delay    time.Duration `yaml:"delay" env:"RETRY_DELAY" env-default:"200ms"`
	Backoff  float64       `yaml:"backoff" env:"RETRY_BACKOFF" env-default:"2"`
}

func MustLoad() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}

	var cfg Config
	var err error
	if _, statErr := os.Stat(path); statErr == nil {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if len(cfg.Limits.AllowedTypes) == 0 {
		cfg.Limits.AllowedTypes = domain.DefaultAllowedTypes
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) MaxSizeBytes() int64 {
	return c.Limits.MaxSizeMB << 20
}

// DefaultRetryStrategy covers infrastructure calls only (kafka publish,
// bucket bootstrap). The per-file credential and transfer flow never
// retries.
func (c *Config) DefaultRetryStrategy() retry.Strategy {
	return retry.Strategy{
		Attempts: c.Retries.Attempts,
		Delay:    c.Retries.Delay,
		Backoff:  c.Retries.Backoff,
	}
}
