package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Поддерживаемые хранилища журнала бронирований
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// envPrefix префикс переменных окружения, переопределяющих config.toml
const envPrefix = "DOOH_"

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Storage   StorageConfig   `toml:"storage"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Logs      LogsConfig      `toml:"logs"`
	Catalog   ClientConfig    `toml:"catalog"`
	Playback  PlaybackConfig  `toml:"playback"`
	Booking   BookingConfig   `toml:"booking"`
	Lifecycle LifecycleConfig `toml:"lifecycle"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	CORS      CORSConfig      `toml:"cors"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// StorageConfig выбор хранилища и демо-данных
type StorageConfig struct {
	Driver   string `toml:"driver"`
	SeedDemo bool   `toml:"seed_demo"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// ClientConfig настройки HTTP клиента внешнего сервиса
// Пустой URL означает работу без внешнего сервиса
type ClientConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

type PlaybackConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
	Retries int    `toml:"retries"`
}

// BookingConfig таймаут резервирования в миллисекундах
type BookingConfig struct {
	ReserveTimeoutMs int `toml:"reserve_timeout_ms"`
}

// ReserveTimeout таймаут резервирования подслотов
func (b BookingConfig) ReserveTimeout() time.Duration {
	return time.Duration(b.ReserveTimeoutMs) * time.Millisecond
}

// LifecycleConfig расписание перевода статусов (cron с секундами)
type LifecycleConfig struct {
	Enabled    bool   `toml:"enabled"`
	Schedule   string `toml:"schedule"`
	RunTimeout int    `toml:"run_timeout"`
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Load читает config.toml, затем .env и переменные окружения DOOH_*
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	// .env необязателен, переменные окружения процесса имеют приоритет
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default значения по умолчанию для незаданных полей
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Storage:   StorageConfig{Driver: StorageMemory},
		Metrics:   MetricsConfig{Path: "/metrics", ServiceName: "dooh_inventory"},
		Logs:      LogsConfig{Level: "info"},
		Catalog:   ClientConfig{Timeout: 5},
		Playback:  PlaybackConfig{Timeout: 5, Retries: 2},
		Booking:   BookingConfig{ReserveTimeoutMs: 5000},
		Lifecycle: LifecycleConfig{Enabled: true, Schedule: "0 * * * * *", RunTimeout: 30},
		RateLimit: RateLimitConfig{RequestsPerSecond: 20, Burst: 40},
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port %d out of range", c.Server.HTTPPort))
	}

	switch c.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			problems = append(problems, "database.host and database.dbname are required for postgres storage")
		}
	default:
		problems = append(problems, fmt.Sprintf("storage.driver %q is not supported", c.Storage.Driver))
	}

	if c.Booking.ReserveTimeoutMs <= 0 {
		problems = append(problems, "booking.reserve_timeout_ms must be positive")
	}
	if c.Lifecycle.Enabled && strings.TrimSpace(c.Lifecycle.Schedule) == "" {
		problems = append(problems, "lifecycle.schedule is required when lifecycle is enabled")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		problems = append(problems, "rate_limit.requests_per_second and rate_limit.burst must be positive")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, "metrics.path must start with /")
	}
	if c.Playback.Retries < 0 {
		problems = append(problems, "playback.retries must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

type lookupFunc func(key string) (string, bool)

// applyEnv переопределяет порты, адреса и секреты из окружения
func (c *Config) applyEnv(lookup lookupFunc) error {
	strs := map[string]*string{
		"DB_HOST":        &c.Database.Host,
		"DB_USER":        &c.Database.User,
		"DB_PASSWORD":    &c.Database.Password,
		"DB_NAME":        &c.Database.DBName,
		"DB_SSLMODE":     &c.Database.SSLMode,
		"STORAGE_DRIVER": &c.Storage.Driver,
		"LOG_LEVEL":      &c.Logs.Level,
		"LOG_FILE":       &c.Logs.File,
		"CATALOG_URL":    &c.Catalog.URL,
		"PLAYBACK_URL":   &c.Playback.URL,
	}
	for key, dst := range strs {
		if v, ok := lookup(envPrefix + key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"HTTP_PORT":          &c.Server.HTTPPort,
		"DB_PORT":            &c.Database.Port,
		"RESERVE_TIMEOUT_MS": &c.Booking.ReserveTimeoutMs,
	}
	for key, dst := range ints {
		v, ok := lookup(envPrefix + key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not an integer", ErrInvalidConfig, envPrefix, key, v)
		}
		*dst = n
	}

	if v, ok := lookup(envPrefix + "METRICS_ENABLED"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sMETRICS_ENABLED=%q is not a boolean", ErrInvalidConfig, envPrefix, v)
		}
		c.Metrics.Enabled = enabled
	}

	return nil
}
