// Package config loads docsearch configuration from an optional YAML file
// with DS_* environment-variable overrides. Every optional integration
// (Postgres, Redis, Kafka, metrics) is disabled by default.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/errors"
)

// Config is the top-level application configuration.
type Config struct {
	Search    SearchConfig    `yaml:"search"`
	Sources   SourcesConfig   `yaml:"sources"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// SearchConfig controls report output.
type SearchConfig struct {
	Format string `yaml:"format"`
}

// SourcesConfig names where documents and queries are read from.
type SourcesConfig struct {
	Docs       string `yaml:"docs"`
	Queries    string `yaml:"queries"`
	DocsSource string `yaml:"docsSource"`
}

// PostgresConfig holds PostgreSQL connection parameters and the table that
// stores the corpus, one document per row.
type PostgresConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Database        string        `yaml:"database"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"sslMode"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
	Table           string        `yaml:"table"`
	TextColumn      string        `yaml:"textColumn"`
	OrderColumn     string        `yaml:"orderColumn"`
}

// DSN returns a lib/pq-compatible data source name.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// RedisConfig holds Redis connection and result-cache parameters.
type RedisConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	PoolSize int           `yaml:"poolSize"`
	CacheTTL time.Duration `yaml:"cacheTTL"`
}

// KafkaConfig holds Kafka broker and topic settings.
type KafkaConfig struct {
	Brokers []string    `yaml:"brokers"`
	Topics  KafkaTopics `yaml:"topics"`
}

// KafkaTopics maps logical topic names to their Kafka topic strings.
type KafkaTopics struct {
	AnalyticsEvents string `yaml:"analyticsEvents"`
}

// AnalyticsConfig controls search event publishing.
type AnalyticsConfig struct {
	Enabled    bool `yaml:"enabled"`
	BufferSize int  `yaml:"bufferSize"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls Prometheus exposure. Textfile, when set, receives
// the final metric values at the end of a run.
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Port     int    `yaml:"port"`
	Textfile string `yaml:"textfile"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. Missing values keep their defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the CLI cannot act on.
func (c *Config) Validate() error {
	switch c.Search.Format {
	case "text", "json":
	default:
		return apperrors.Newf(apperrors.ErrInvalidConfig, apperrors.ExitUsage,
			"search.format must be text or json, got %q", c.Search.Format)
	}
	switch c.Sources.DocsSource {
	case "file", "postgres":
	default:
		return apperrors.Newf(apperrors.ErrInvalidConfig, apperrors.ExitUsage,
			"sources.docsSource must be file or postgres, got %q", c.Sources.DocsSource)
	}
	if c.Analytics.Enabled && len(c.Kafka.Brokers) == 0 {
		return apperrors.New(apperrors.ErrInvalidConfig, apperrors.ExitUsage,
			"analytics enabled but kafka.brokers is empty")
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Format: "text",
		},
		Sources: SourcesConfig{
			Docs:       "docs.txt",
			Queries:    "queries.txt",
			DocsSource: "file",
		},
		Postgres: PostgresConfig{
			Host:            "localhost",
			Port:            5432,
			Database:        "docsearch",
			User:            "docsearch",
			Password:        "localdev",
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5 * time.Minute,
			Table:           "documents",
			TextColumn:      "body",
			OrderColumn:     "id",
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			PoolSize: 4,
			CacheTTL: 10 * time.Minute,
		},
		Kafka: KafkaConfig{
			Brokers: []string{"localhost:9092"},
			Topics: KafkaTopics{
				AnalyticsEvents: "docsearch-analytics",
			},
		},
		Analytics: AnalyticsConfig{
			BufferSize: 1000,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Port: 9090,
		},
	}
}

// applyEnvOverrides reads DS_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DS_SEARCH_FORMAT"); v != "" {
		cfg.Search.Format = v
	}
	if v := os.Getenv("DS_SOURCES_DOCS"); v != "" {
		cfg.Sources.Docs = v
	}
	if v := os.Getenv("DS_SOURCES_QUERIES"); v != "" {
		cfg.Sources.Queries = v
	}
	if v := os.Getenv("DS_SOURCES_DOCS_SOURCE"); v != "" {
		cfg.Sources.DocsSource = v
	}
	if v := os.Getenv("DS_POSTGRES_HOST"); v != "" {
		cfg.Postgres.Host = v
	}
	if v := os.Getenv("DS_POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.Port = port
		}
	}
	if v := os.Getenv("DS_POSTGRES_DATABASE"); v != "" {
		cfg.Postgres.Database = v
	}
	if v := os.Getenv("DS_POSTGRES_USER"); v != "" {
		cfg.Postgres.User = v
	}
	if v := os.Getenv("DS_POSTGRES_PASSWORD"); v != "" {
		cfg.Postgres.Password = v
	}
	if v := os.Getenv("DS_POSTGRES_SSLMODE"); v != "" {
		cfg.Postgres.SSLMode = v
	}
	if v := os.Getenv("DS_REDIS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Redis.Enabled = enabled
		}
	}
	if v := os.Getenv("DS_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("DS_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("DS_KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("DS_ANALYTICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Analytics.Enabled = enabled
		}
	}
	if v := os.Getenv("DS_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("DS_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("DS_METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
	if v := os.Getenv("DS_METRICS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Metrics.Port = port
		}
	}
	if v := os.Getenv("DS_METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.Textfile = v
	}
}
