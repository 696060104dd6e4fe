package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	API      APIConfig      `mapstructure:"api"`
	Store    StoreConfig    `mapstructure:"store"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Host         string `mapstructure:"host"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	IdleTimeout  int    `mapstructure:"idle_timeout"`
	Environment  string `mapstructure:"environment"`
}

// DatabaseConfig holds configuration for the local state cache database
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"` // "sqlite", "postgres" or "memory"
	Path     string `mapstructure:"path"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	TimeZone string `mapstructure:"timezone"`
}

// APIConfig holds the sensor backend endpoints
type APIConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	StreamURL        string        `mapstructure:"stream_url"`
	APIToken         string        `mapstructure:"api_token"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
	HandshakeTimeout time.Duration `mapstructure:"handshake_timeout"`
}

// StoreConfig holds the tuning knobs of the real-time state store
type StoreConfig struct {
	PollInterval         time.Duration `mapstructure:"poll_interval"`
	FetchTimeout         time.Duration `mapstructure:"fetch_timeout"`
	HistorySize          int           `mapstructure:"history_size"`
	ArchiveRetention     time.Duration `mapstructure:"archive_retention"`
	RefreshInterval      time.Duration `mapstructure:"refresh_interval"`
	RefreshBurst         int           `mapstructure:"refresh_burst"`
	MaxReconnectAttempts int           `mapstructure:"max_reconnect_attempts"`
	InitialBackoff       time.Duration `mapstructure:"initial_backoff"`
	MaxBackoff           time.Duration `mapstructure:"max_backoff"`
	ExpirySchedule       string        `mapstructure:"expiry_schedule"`
}

// KafkaConfig holds Kafka configuration for the alert audit feed
type KafkaConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Brokers        string `mapstructure:"brokers"`
	Topic          string `mapstructure:"topic"`
	ConsumerGroup  string `mapstructure:"consumer_group"`
	SecurityEnable bool   `mapstructure:"security_enable"`
	SecurityUser   string `mapstructure:"security_user"`
	SecurityPass   string `mapstructure:"security_pass"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Production bool   `mapstructure:"production"`
}

// LoadConfig loads the application configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	var config Config

	if configPath == "" {
		configPath = "./config"
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	// LAKEWATCH_STORE_POLL_INTERVAL overrides store.poll_interval
	v.SetEnvPrefix("LAKEWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine, defaults and env vars still apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read configuration file: %w", err)
		}
	}

	v.AutomaticEnv()
	setDefaults(v)

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", 15)  // seconds
	v.SetDefault("server.write_timeout", 15) // seconds
	v.SetDefault("server.idle_timeout", 60)  // seconds
	v.SetDefault("server.environment", "development")

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "lakewatch.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.dbname", "lakewatch")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.timezone", "UTC")

	// Sensor backend defaults
	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.stream_url", "ws://localhost:8000/api/monitoring/ws")
	v.SetDefault("api.request_timeout", 10*time.Second)
	v.SetDefault("api.handshake_timeout", 10*time.Second)

	// Store defaults
	v.SetDefault("store.poll_interval", 5*time.Second)
	v.SetDefault("store.fetch_timeout", 10*time.Second)
	v.SetDefault("store.history_size", 100)
	v.SetDefault("store.archive_retention", 24*time.Hour)
	v.SetDefault("store.refresh_interval", time.Second)
	v.SetDefault("store.refresh_burst", 3)
	v.SetDefault("store.max_reconnect_attempts", 5)
	v.SetDefault("store.initial_backoff", time.Second)
	v.SetDefault("store.max_backoff", 30*time.Second)
	v.SetDefault("store.expiry_schedule", "@every 1m")

	// Kafka defaults
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", "kafka:9092")
	v.SetDefault("kafka.topic", "lakewatch-alerts")
	v.SetDefault("kafka.consumer_group", "lakewatch-audit")
	v.SetDefault("kafka.security_enable", false)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.production", false)
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case "sqlite", "postgres", "memory":
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	if config.Database.Driver == "postgres" && config.Database.Password == "" && !config.Server.IsDevelopment() {
		return fmt.Errorf("database password is required in non-development environments")
	}

	if config.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if config.API.StreamURL == "" {
		return fmt.Errorf("api.stream_url is required")
	}

	if config.Store.PollInterval <= 0 {
		return fmt.Errorf("store.poll_interval must be positive")
	}
	if config.Store.HistorySize <= 0 {
		return fmt.Errorf("store.history_size must be positive")
	}
	if config.Store.MaxReconnectAttempts < 0 {
		return fmt.Errorf("store.max_reconnect_attempts must not be negative")
	}

	if config.Kafka.Enabled && config.Kafka.Brokers == "" {
		return fmt.Errorf("kafka.brokers is required when kafka is enabled")
	}

	return nil
}

// GetDSN returns the postgres connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode, c.TimeZone)
}

// IsProduction returns true if the environment is production
func (c *ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

// IsDevelopment returns true if the environment is development
func (c *ServerConfig) IsDevelopment() bool {
	return c.Environment == "development"
}
