package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// ServerPort is the port the HTTP API listens on
	ServerPort int `env:"SERVER_PORT" envDefault:"8080"`

	// DatabasePath points at the sqlite comparables database
	DatabasePath string `env:"DATABASE_PATH" envDefault:"database/properties.db"`

	// ModelSchemaPath points at the JSON file declaring the scoring
	// model's input columns
	ModelSchemaPath string `env:"MODEL_SCHEMA_PATH" envDefault:"config/model_schema.json"`

	// ScoringURL is the base URL of the scoring model service
	ScoringURL string `env:"SCORING_URL" envDefault:"http://localhost:8081"`

	// GeocodeCacheDir is where resolved addresses are cached on disk
	GeocodeCacheDir string `env:"GEOCODE_CACHE_DIR"`

	// ReferenceIncome is the fixed income used for price-to-income ratios
	ReferenceIncome float64 `env:"REFERENCE_INCOME" envDefault:"50000"`

	// Ingest configuration
	Ingest struct {
		// Maximum number of records to accumulate before upserting
		MaxBatchSize int `env:"INGEST_MAX_BATCH_SIZE" envDefault:"100"`

		// Number of concurrent batch processors
		ProcessorCount int `env:"INGEST_PROCESSOR_COUNT" envDefault:"2"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"INGEST_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"INGEST_RETRY_DELAY" envDefault:"5"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
