package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig возвращается, если конфигурация не прошла проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// dbPasswordEnv переопределяет пароль БД, чтобы не хранить его в config.toml
const dbPasswordEnv = "SMC_DB_PASSWORD"

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	SellerService SellerServiceConfig `toml:"seller_service"`
	Locker        LockerConfig        `toml:"locker"`
	Events        EventsConfig        `toml:"events"`
	Calendar      CalendarConfig      `toml:"calendar"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки PostgreSQL
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

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SellerServiceConfig адрес SellerService (timeout в секундах)
type SellerServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// LockerConfig блокировки календарей: local (один инстанс) или redis
type LockerConfig struct {
	Backend       string `toml:"backend"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	LeaseSeconds  int    `toml:"lease_seconds"`
	WaitSeconds   int    `toml:"wait_seconds"`
}

// EventsConfig публикация изменений в NATS
type EventsConfig struct {
	Enabled       bool   `toml:"enabled"`
	NATSURL       string `toml:"nats_url"`
	SubjectPrefix string `toml:"subject_prefix"`
}

// CalendarConfig настройки календаря по умолчанию, если у компании нет своих
type CalendarConfig struct {
	StepMinutes        int `toml:"step_minutes"`
	MinDurationMinutes int `toml:"min_duration_minutes"`
	HorizonDays        int `toml:"horizon_days"`
}

const (
	LockerBackendLocal = "local"
	LockerBackendRedis = "redis"
)

// Load читает конфигурацию из TOML файла, заполняет значения по умолчанию и проверяет ее
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if password := os.Getenv(dbPasswordEnv); password != "" {
		cfg.Database.Password = password
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
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
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smc_calendar_service",
		},
		SellerService: SellerServiceConfig{
			Timeout: 5,
		},
		Locker: LockerConfig{
			Backend:      LockerBackendLocal,
			LeaseSeconds: 10,
			WaitSeconds:  5,
		},
		Events: EventsConfig{
			SubjectPrefix: "calendar.availability",
		},
		Calendar: CalendarConfig{
			StepMinutes:        15,
			MinDurationMinutes: 15,
			HorizonDays:        90,
		},
	}
}

// Validate проверяет значения, без которых сервис не может стартовать
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be between 1 and 65535", ErrInvalidConfig)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.SellerService.URL == "" {
		return fmt.Errorf("%w: seller_service.url is required", ErrInvalidConfig)
	}

	switch c.Locker.Backend {
	case LockerBackendLocal:
	case LockerBackendRedis:
		if c.Locker.RedisAddr == "" {
			return fmt.Errorf("%w: locker.redis_addr is required for redis backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: locker.backend must be %q or %q", ErrInvalidConfig, LockerBackendLocal, LockerBackendRedis)
	}
	if c.Locker.LeaseSeconds <= 0 || c.Locker.WaitSeconds <= 0 {
		return fmt.Errorf("%w: locker lease_seconds and wait_seconds must be positive", ErrInvalidConfig)
	}

	if c.Events.Enabled && c.Events.NATSURL == "" {
		return fmt.Errorf("%w: events.nats_url is required when events are enabled", ErrInvalidConfig)
	}

	if c.Calendar.StepMinutes <= 0 || c.Calendar.MinDurationMinutes <= 0 || c.Calendar.HorizonDays < 0 {
		return fmt.Errorf("%w: calendar defaults must be positive", ErrInvalidConfig)
	}

	return nil
}
