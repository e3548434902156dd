package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SBS-SalonService/internal/domain"
)

// Config конфигурация сервиса, загружается из TOML файла
type Config struct {
	Server        ServerConfig      `toml:"server"`
	Database      DatabaseConfig    `toml:"database"`
	Logs          LogsConfig        `toml:"logs"`
	Metrics       MetricsConfig     `toml:"metrics"`
	Redis         RedisConfig       `toml:"redis"`
	RateLimit     RateLimitConfig   `toml:"rate_limit"`
	Scheduling    SchedulingConfig  `toml:"scheduling"`
	SalonService  IntegrationConfig `toml:"salon_service"`
	ClientService IntegrationConfig `toml:"client_service"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к postgres
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

// DSN возвращает строку подключения к postgres
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig настройки кэша справочных данных
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

// RateLimitConfig настройки rate limiting публичных эндпоинтов
type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

// SchedulingConfig параметры движка расписания
type SchedulingConfig struct {
	SlotDurationMinutes int `toml:"slot_duration_minutes"`
	MaxLookaheadDays    int `toml:"max_lookahead_days"`
	MaxQualifyingDays   int `toml:"max_qualifying_days"`
}

// IntegrationConfig настройки внешнего HTTP сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Load читает конфигурацию из TOML файла и проставляет значения по умолчанию
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Scheduling.SlotDurationMinutes == 0 {
		c.Scheduling.SlotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if c.Scheduling.MaxLookaheadDays == 0 {
		c.Scheduling.MaxLookaheadDays = domain.DefaultMaxLookaheadDays
	}
	if c.Scheduling.MaxQualifyingDays == 0 {
		c.Scheduling.MaxQualifyingDays = domain.DefaultMaxQualifyingDays
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database host and dbname are required")
	}
	if c.SalonService.URL == "" {
		return fmt.Errorf("config: salon_service.url is required")
	}
	if c.ClientService.URL == "" {
		return fmt.Errorf("config: client_service.url is required")
	}
	if c.Scheduling.SlotDurationMinutes <= 0 {
		return fmt.Errorf("config: scheduling.slot_duration_minutes must be positive")
	}
	return nil
}
