package config

import "time"

type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Cache         CacheConfig             `mapstructure:"cache"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Server        ServerConfig            `mapstructure:"server"`
	Observability ObservabilityConfig     `mapstructure:"observability"`
	Catalog       CatalogConfig           `mapstructure:"catalog"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
	Plaintext      bool   `mapstructure:"plaintext"`
}

// CacheConfig configures the redis cache of resolved recommendations.
type CacheConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Address    string `mapstructure:"address"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
	KeyPrefix  string `mapstructure:"key_prefix"`
}

func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig is the health and metrics listener of the worker manager.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type ObservabilityConfig struct {
	ServiceName    string `mapstructure:"service_name"`
	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
	TracingEnabled bool   `mapstructure:"tracing_enabled"`
}

// CatalogConfig points at optional content overriding the embedded defaults.
type CatalogConfig struct {
	QuestionsPath string `mapstructure:"questions_path"`
}
