package config

import (
	"fmt"
	"strings"
	"time"
)

// Config - главная структура конфигурации
type Config struct {
	App       AppConfig       `koanf:"app"`
	Log       LogConfig       `koanf:"log"`
	Solver    SolverConfig    `koanf:"solver"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Cache     CacheConfig     `koanf:"cache"`
	Database  DatabaseConfig  `koanf:"database"`
	Tracing   TracingConfig   `koanf:"tracing"`
	Benchmark BenchmarkConfig `koanf:"benchmark"`
}

// AppConfig - общие настройки приложения
type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"` // development, staging, production
	Debug       bool   `koanf:"debug"`
}

// LogConfig - настройки логирования
type LogConfig struct {
	Level      string `koanf:"level"`
	Format     string `koanf:"format"` // json, text
	Output     string `koanf:"output"` // stdout, stderr, file
	FilePath   string `koanf:"file_path"`
	MaxSize    int    `koanf:"max_size"` // MB
	MaxBackups int    `koanf:"max_backups"`
	MaxAge     int    `koanf:"max_age"` // days
	Compress   bool   `koanf:"compress"`
}

// SolverConfig - настройки решателей
type SolverConfig struct {
	// MaxFlowAlgorithm - алгоритм максимального потока для драйверов
	MaxFlowAlgorithm string `koanf:"max_flow_algorithm"`
	// MinCostAlgorithm - алгоритм min-cost max-flow для драйверов
	MinCostAlgorithm string `koanf:"min_cost_algorithm"`
	// ShortestPathEngine - движок кратчайших путей
	ShortestPathEngine string `koanf:"shortest_path_engine"`
	// Verify - проверять инварианты потока после решения
	Verify bool `koanf:"verify"`
}

// MetricsConfig - настройки метрик Prometheus
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Port      int    `koanf:"port"`
	Path      string `koanf:"path"`
	Namespace string `koanf:"namespace"`
	Subsystem string `koanf:"subsystem"`
}

// CacheConfig - настройки кэша результатов
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	Driver     string        `koanf:"driver"` // memory, redis
	Host       string        `koanf:"host"`
	Port       int           `koanf:"port"`
	Password   string        `koanf:"password"`
	DB         int           `koanf:"db"`
	DefaultTTL time.Duration `koanf:"default_ttl"`
	MaxEntries int           `koanf:"max_entries"`
}

// Address возвращает адрес Redis
func (c *CacheConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig - настройки PostgreSQL
type DatabaseConfig struct {
	Enabled         bool          `koanf:"enabled"`
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Username        string        `koanf:"username"`
	Password        string        `koanf:"password"`
	Database        string        `koanf:"database"`
	SSLMode         string        `koanf:"ssl_mode"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
	AutoMigrate     bool          `koanf:"auto_migrate"`
}

// TracingConfig - настройки OpenTelemetry
type TracingConfig struct {
	Enabled    bool    `koanf:"enabled"`
	Endpoint   string  `koanf:"endpoint"`
	SampleRate float64 `koanf:"sample_rate"`
}

// BenchmarkConfig - настройки генератора бенчмарка
type BenchmarkConfig struct {
	Seed        int64   `koanf:"seed"`
	Nodes       int     `koanf:"nodes"`
	ArcsPerNode float64 `koanf:"arcs_per_node"`
	MaxCapacity int64   `koanf:"max_capacity"`
	MaxCost     int64   `koanf:"max_cost"`
	Repetitions int     `koanf:"repetitions"`
	ReportPath  string  `koanf:"report_path"` // путь к xlsx отчёту, пусто = не писать
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	var errs []string

	if c.App.Name == "" {
		errs = append(errs, "app.name is required")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q is invalid", c.Log.Level))
	}

	switch c.Cache.Driver {
	case "", "memory", "redis":
	default:
		errs = append(errs, fmt.Sprintf("cache.driver %q is invalid", c.Cache.Driver))
	}

	if c.Metrics.Enabled && (c.Metrics.Port <= 0 || c.Metrics.Port > 65535) {
		errs = append(errs, fmt.Sprintf("metrics.port %d is invalid", c.Metrics.Port))
	}

	if c.Database.Enabled {
		if c.Database.Host == "" {
			errs = append(errs, "database.host is required when database is enabled")
		}
		if c.Database.Database == "" {
			errs = append(errs, "database.database is required when database is enabled")
		}
	}

	if c.Benchmark.Nodes < 2 {
		errs = append(errs, "benchmark.nodes must be at least 2")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// IsProduction возвращает true для production окружения
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
