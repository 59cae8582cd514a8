package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

var (
	ErrReadConfig    = errors.New("config: failed to read config file")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Mongo     MongoConfig     `toml:"mongo"`
	Redis     RedisConfig     `toml:"redis"`
	RabbitMQ  RabbitMQConfig  `toml:"rabbitmq"`
	Stripe    StripeConfig    `toml:"stripe"`
	Firebase  FirebaseConfig  `toml:"firebase"`
	Booking   BookingConfig   `toml:"booking"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
}

type ServerConfig struct {
	HTTPPort        int    `toml:"http_port"`
	ReadTimeout     int    `toml:"read_timeout"`
	WriteTimeout    int    `toml:"write_timeout"`
	IdleTimeout     int    `toml:"idle_timeout"`
	ShutdownTimeout int    `toml:"shutdown_timeout"`
	InternalToken   string `toml:"internal_token"`
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
	// MigrateOnStart применять миграции при старте
	MigrateOnStart bool `toml:"migrate_on_start"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type MongoConfig struct {
	URI            string `toml:"uri"`
	Database       string `toml:"database"`
	ConnectTimeout int    `toml:"connect_timeout"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	// IdempotencyTTL время хранения обработанных событий webhook в часах
	IdempotencyTTL int `toml:"idempotency_ttl"`
}

type RabbitMQConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

type StripeConfig struct {
	SecretKey      string `toml:"secret_key"`
	WebhookSecret  string `toml:"webhook_secret"`
	RequestTimeout int    `toml:"request_timeout"`
	Retries        int    `toml:"retries"`
}

type FirebaseConfig struct {
	CredentialsFile string `toml:"credentials_file"`
	ProjectID       string `toml:"project_id"`
	WebAPIKey       string `toml:"web_api_key"`
	RequestTimeout  int    `toml:"request_timeout"`
}

type BookingConfig struct {
	// Timezone часовой пояс, в котором строятся слоты (IANA)
	Timezone string `toml:"timezone"`
}

// Location загружает часовой пояс бронирований
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `toml:"requests_per_minute"`
	Burst             int `toml:"burst"`
	// TrustedProxies адреса (IP или CIDR) прокси, чьему X-Forwarded-For можно верить
	TrustedProxies []string `toml:"trusted_proxies"`
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию,
// переопределения из окружения и валидирует результат
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Mongo: MongoConfig{
			Database:       "cleanmate",
			ConnectTimeout: 10,
		},
		Redis: RedisConfig{
			Addr:           "localhost:6379",
			IdempotencyTTL: 72,
		},
		RabbitMQ: RabbitMQConfig{
			Exchange: "cleanmate.bookings",
		},
		Stripe: StripeConfig{
			RequestTimeout: 10,
			Retries:        3,
		},
		Firebase: FirebaseConfig{
			RequestTimeout: 10,
		},
		Booking: BookingConfig{
			Timezone: "UTC",
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "cleanmate",
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 30,
			Burst:             10,
		},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("STRIPE_SECRET_KEY"); v != "" {
		cfg.Stripe.SecretKey = v
	}
	if v := os.Getenv("STRIPE_WEBHOOK_SECRET"); v != "" {
		cfg.Stripe.WebhookSecret = v
	}
	if v := os.Getenv("FIREBASE_WEB_API_KEY"); v != "" {
		cfg.Firebase.WebAPIKey = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	switch {
	case c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535:
		return fmt.Errorf("%w: server.http_port out of range: %d", ErrInvalidConfig, c.Server.HTTPPort)
	case c.Server.InternalToken == "":
		return fmt.Errorf("%w: server.internal_token is required", ErrInvalidConfig)
	case c.Database.Host == "" || c.Database.DBName == "":
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	case c.Mongo.URI == "":
		return fmt.Errorf("%w: mongo.uri is required", ErrInvalidConfig)
	case c.Stripe.SecretKey == "":
		return fmt.Errorf("%w: stripe.secret_key is required", ErrInvalidConfig)
	case c.Firebase.ProjectID == "" || c.Firebase.WebAPIKey == "":
		return fmt.Errorf("%w: firebase.project_id and firebase.web_api_key are required", ErrInvalidConfig)
	case c.RabbitMQ.Enabled && c.RabbitMQ.URL == "":
		return fmt.Errorf("%w: rabbitmq.url is required when rabbitmq is enabled", ErrInvalidConfig)
	case c.RateLimit.RequestsPerMinute <= 0:
		return fmt.Errorf("%w: ratelimit.requests_per_minute must be positive", ErrInvalidConfig)
	}

	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}

	return nil
}
