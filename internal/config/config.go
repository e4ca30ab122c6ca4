package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/corray333/backend-labs/storefront/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported span exporters.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterJaeger = "jaeger"
)

// Config is the process configuration. It is read once at startup and never mutated.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Postgres    PostgresConfig    `mapstructure:"postgres"`
	Log         LogConfig         `mapstructure:"log"`
	Otel        OtelConfig        `mapstructure:"otel"`
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics"`
}

type ServerConfig struct {
	HTTP HTTPConfig `mapstructure:"http"`
}

type HTTPConfig struct {
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORS            CORSConfig    `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// PostgresConfig holds the connection string and per-connection settings.
type PostgresConfig struct {
	URI            string        `mapstructure:"uri"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	PingOnStart    bool          `mapstructure:"ping_on_start"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type OtelConfig struct {
	Exporter       string `mapstructure:"exporter"`
	ServiceName    string `mapstructure:"service_name"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
}

type DiagnosticsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// MustLoad loads .env and config.yaml, validates the result and installs the default logger.
func MustLoad() *Config {
	if err := LoadEnvFile("./.env"); err != nil {
		panic("error while loading .env file: " + err.Error())
	}

	cfg, err := Load(viper.New())
	if err != nil {
		panic("error while loading config: " + err.Error())
	}

	SetupLogger(cfg.Log)

	return cfg
}

// LoadEnvFile loads environment variables from path. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

// Load reads configuration into a Config using v.
// Values come from defaults, then config.yaml, then the environment.
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/storefront")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("postgres.uri", "DATABASE_URI"); err != nil {
		return nil, fmt.Errorf("failed to bind DATABASE_URI: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.http.port", 4000)
	v.SetDefault("server.http.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.http.cors.allowed_origins", []string{"*"})
	v.SetDefault("server.http.cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("server.http.cors.allowed_headers", []string{"Accept", "Content-Type", "X-Request-Id"})
	v.SetDefault("server.http.cors.exposed_headers", []string{"X-Request-Id"})
	v.SetDefault("server.http.cors.allow_credentials", false)
	v.SetDefault("server.http.cors.max_age", 300)

	v.SetDefault("postgres.uri", "")
	v.SetDefault("postgres.connect_timeout", 5*time.Second)
	v.SetDefault("postgres.ping_on_start", true)

	v.SetDefault("log.level", "info")

	v.SetDefault("otel.exporter", ExporterNone)
	v.SetDefault("otel.service_name", "storefront")
	v.SetDefault("otel.jaeger_endpoint", "http://jaeger:14268/api/traces")

	v.SetDefault("diagnostics.enabled", false)
	v.SetDefault("diagnostics.port", 9090)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Postgres.URI == "" {
		return errors.New("DATABASE_URI is not set")
	}

	if c.Server.HTTP.Port <= 0 || c.Server.HTTP.Port > 65535 {
		return fmt.Errorf("invalid server.http.port %d", c.Server.HTTP.Port)
	}

	if c.Diagnostics.Enabled {
		if c.Diagnostics.Port <= 0 || c.Diagnostics.Port > 65535 {
			return fmt.Errorf("invalid diagnostics.port %d", c.Diagnostics.Port)
		}
		if c.Diagnostics.Port == c.Server.HTTP.Port {
			return errors.New("diagnostics.port must differ from server.http.port")
		}
	}

	switch c.Otel.Exporter {
	case ExporterNone, ExporterStdout, ExporterJaeger:
	default:
		return fmt.Errorf("unknown otel.exporter %q", c.Otel.Exporter)
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}

	return nil
}

// ParseLevel converts a textual log level into a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log.level %q: %w", s, err)
	}

	return level, nil
}

func SetupLogger(cfg LogConfig) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		level = slog.LevelInfo
	}

	handler := logger.NewHandler(&slog.HandlerOptions{Level: level})
	log := slog.New(handler)
	slog.SetDefault(log)
}
