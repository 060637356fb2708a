package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lborres/tasklist/pkg/crypto"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	HasherBcrypt = crypto.HasherBcrypt
	HasherArgon2 = crypto.HasherArgon2
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
}

// Addr is the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Address, s.Port)
}

type DatabaseConfig struct {
	Driver  string `mapstructure:"driver"`
	URL     string `mapstructure:"url"`
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type SessionConfig struct {
	TTL          time.Duration `mapstructure:"ttl"`
	CookieName   string        `mapstructure:"cookie_name"`
	SecureCookie bool          `mapstructure:"secure_cookie"`
}

type SecurityConfig struct {
	PasswordHasher string `mapstructure:"password_hasher"`
	BcryptCost     int    `mapstructure:"bcrypt_cost"`
}

type NotifyConfig struct {
	SlackToken string        `mapstructure:"slack_token"`
	SlackURL   string        `mapstructure:"slack_url"`
	Channel    string        `mapstructure:"channel"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
	Security SecurityConfig `mapstructure:"security"`
	Notify   NotifyConfig   `mapstructure:"notify"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.url", "")
	v.SetDefault("database.path", "data/tasklist.db")
	v.SetDefault("database.log_mode", false)

	v.SetDefault("session.ttl", "30m")
	v.SetDefault("session.cookie_name", "SessionID")
	v.SetDefault("session.secure_cookie", false)

	v.SetDefault("security.password_hasher", HasherBcrypt)
	v.SetDefault("security.bcrypt_cost", bcrypt.DefaultCost)

	v.SetDefault("notify.slack_token", "")
	v.SetDefault("notify.slack_url", "https://slack.com/api/chat.postMessage")
	v.SetDefault("notify.channel", "task-notifications-demo")
	v.SetDefault("notify.timeout", "5s")
}

// Load reads configuration from path (e.g. "config.yaml") and the environment.
// If path is empty, "config.yaml" in the working directory is used when present.
// Environment overrides use the TASKLIST_ prefix, e.g. TASKLIST_SERVER_PORT=9000.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("TASKLIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("notify.slack_token", "TASKLIST_NOTIFY_SLACK_TOKEN", "SLACK_BOT_TOKEN"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.URL == "" {
			return errors.New("config: database.url is required for the postgres driver")
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("config: database.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("config: unknown database.driver %q", c.Database.Driver)
	}

	switch c.Security.PasswordHasher {
	case HasherBcrypt, HasherArgon2:
	default:
		return fmt.Errorf("config: unknown security.password_hasher %q", c.Security.PasswordHasher)
	}
	// zero falls back to bcrypt.DefaultCost in crypto.NewBcrypt
	if c.Security.BcryptCost != 0 && (c.Security.BcryptCost < bcrypt.MinCost || c.Security.BcryptCost > bcrypt.MaxCost) {
		return fmt.Errorf("config: security.bcrypt_cost must be between %d and %d, got %d",
			bcrypt.MinCost, bcrypt.MaxCost, c.Security.BcryptCost)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("config: session.ttl must be positive, got %s", c.Session.TTL)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid server.port %d", c.Server.Port)
	}
	return nil
}
