// Package config loads service settings from the environment through viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

var ErrMissingPostgresURL = errors.New("POSTGRES_URL environment variable is required")

type Config struct {
	ServiceVersion string
	Port           string

	PostgresURL    string
	PostgresSchema string
	MigrationsPath string

	KafkaBrokers  []string
	StockTopic    string
	ConsumerGroup string

	InventoryServiceURL string
	OTLPEndpoint        string
}

// Load reads configuration from environment variables, applying defaultPort
// when PORT is unset. An optional .env file in the working directory is read
// first; real environment variables take precedence.
func Load(defaultPort string) (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.AutomaticEnv()

	v.SetDefault("SERVICE_VERSION", "0.1.0")
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("POSTGRES_SCHEMA", "inventory")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("STOCK_TOPIC", "inventory.stock-adjusted")
	v.SetDefault("KAFKA_CONSUMER_GROUP", "stock-adjustment-worker")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")

	return &Config{
		ServiceVersion:      v.GetString("SERVICE_VERSION"),
		Port:                v.GetString("PORT"),
		PostgresURL:         v.GetString("POSTGRES_URL"),
		PostgresSchema:      v.GetString("POSTGRES_SCHEMA"),
		MigrationsPath:      v.GetString("MIGRATIONS_PATH"),
		KafkaBrokers:        splitList(v.GetString("KAFKA_BROKERS")),
		StockTopic:          v.GetString("STOCK_TOPIC"),
		ConsumerGroup:       v.GetString("KAFKA_CONSUMER_GROUP"),
		InventoryServiceURL: v.GetString("INVENTORY_SERVICE_URL"),
		OTLPEndpoint:        v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}, nil
}

// RequirePostgres returns ErrMissingPostgresURL when no database is configured.
func (c *Config) RequirePostgres() error {
	if c.PostgresURL == "" {
		return ErrMissingPostgresURL
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
