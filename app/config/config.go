// Package config loads application settings from the environment.
//
// Variables use the BLOG_ prefix and a double underscore for nesting,
// e.g. BLOG_SERVER__PORT maps to Config.Server.Port. A .env file in the
// working directory is loaded first when present.
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	EnvPrefix = "BLOG_"
	EnvFile   = ".env"
)

// Config is the root configuration object.
type Config struct {
	Server  ServerConfig  `koanf:"server" validate:"required"`
	Storage StorageConfig `koanf:"storage" validate:"required"`
	Mail    MailConfig    `koanf:"mail" validate:"required"`
	Log     LogConfig     `koanf:"log" validate:"required"`
}

// ServerConfig groups settings for the HTTP server. Timeouts are seconds.
type ServerConfig struct {
	Port         string `koanf:"port" validate:"required"`
	ReadTimeout  int    `koanf:"read_timeout" validate:"gte=0"`
	WriteTimeout int    `koanf:"write_timeout" validate:"gte=0"`
	IdleTimeout  int    `koanf:"idle_timeout" validate:"gte=0"`
	// SiteURL overrides the request origin when building absolute links.
	SiteURL     string `koanf:"site_url" validate:"omitempty,url"`
	CORSOrigins string `koanf:"cors_allowed_origins"`
}

// StorageConfig describes the badger record store.
type StorageConfig struct {
	Path                 string `koanf:"path" validate:"required_without=InMemory"`
	InMemory             bool   `koanf:"in_memory"`
	EncryptionPassphrase string `koanf:"encryption_passphrase"`
	BackupDir            string `koanf:"backup_dir" validate:"required"`
}

// MailConfig selects and configures the outbound mail backend.
type MailConfig struct {
	Backend      string `koanf:"backend" validate:"required,oneof=console smtp resend"`
	From         string `koanf:"from" validate:"required,email"`
	FromName     string `koanf:"from_name"`
	SMTPHost     string `koanf:"smtp_host" validate:"required_if=Backend smtp"`
	SMTPPort     int    `koanf:"smtp_port" validate:"omitempty,gt=0,lte=65535"`
	SMTPUsername string `koanf:"smtp_username"`
	SMTPPassword string `koanf:"smtp_password"`
	SMTPTLS      bool   `koanf:"smtp_tls"`
	ResendAPIKey string `koanf:"resend_api_key" validate:"required_if=Backend resend"`
}

// LogConfig controls the zap logger and its optional rolling file.
type LogConfig struct {
	Level      string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
	Path       string `koanf:"path"`
	MaxSizeMB  int    `koanf:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `koanf:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `koanf:"max_age_days" validate:"gte=0"`
	Compress   bool   `koanf:"compress"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10,
			WriteTimeout: 30,
			IdleTimeout:  60,
		},
		Storage: StorageConfig{
			Path:      "data/badger",
			BackupDir: "data/backups",
		},
		Mail: MailConfig{
			Backend:  "console",
			From:     "webmaster@localhost.localdomain",
			SMTPPort: 587,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the .env file (if any) and the process environment on top
// of Default, then validates the result.
func Load() (*Config, error) {
	if _, err := os.Stat(EnvFile); err == nil {
		if err := godotenv.Load(EnvFile); err != nil {
			return nil, errors.Wrapf(err, "failed to load %s", EnvFile)
		}
	}

	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, "could not load env variables")
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags of every block.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "config validation failed")
	}
	return nil
}

// envKey maps BLOG_SERVER__PORT to server.port.
func envKey(key string) string {
	key = strings.TrimPrefix(key, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(key), "__", ".")
}

// AllowedOrigins splits the comma separated CORS origin list.
func (s ServerConfig) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(s.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Addr is the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return ":" + s.Port
}
