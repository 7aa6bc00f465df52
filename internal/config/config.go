package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Log    LogConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port            string `envconfig:"PORT" default:"3000"`
	ShutdownTimeout int    `envconfig:"SHUTDOWN_TIMEOUT" default:"30"` // seconds
}

// DBConfig holds database-related configuration.
// WARNING: Default password is for local development only.
// Set DB_REQUIRE_TLS=true (or DB_SSLMODE) when the database is reached over an untrusted network.
type DBConfig struct {
	Host           string `envconfig:"DB_HOST" default:"localhost"`
	Port           int    `envconfig:"DB_PORT" default:"5432"`
	User           string `envconfig:"DB_USER" default:"postgres"`
	Password       string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name           string `envconfig:"DB_NAME" default:"coupon_db"`
	SSLMode        string `envconfig:"DB_SSLMODE" default:"disable"`
	RequireTLS     bool   `envconfig:"DB_REQUIRE_TLS" default:"false"`
	MaxConns       int    `envconfig:"DB_MAX_CONNS" default:"10"`
	MinConns       int    `envconfig:"DB_MIN_CONNS" default:"1"`
	ConnectRetries int    `envconfig:"DB_CONNECT_RETRIES" default:"5"`
	AutoMigrate    bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

// EffectiveSSLMode returns the sslmode used in the DSN.
// RequireTLS upgrades "disable" (or an empty mode) to "require" and leaves stricter modes untouched.
func (c DBConfig) EffectiveSSLMode() string {
	if c.RequireTLS && (c.SSLMode == "" || c.SSLMode == "disable") {
		return "require"
	}
	if c.SSLMode == "" {
		return "disable"
	}
	return c.SSLMode
}

// DSN returns the PostgreSQL connection URL. Credentials are escaped, so
// passwords may contain URL delimiters. Pool sizing is not part of the DSN;
// see database.PoolConfig.
func (c DBConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {c.EffectiveSSLMode()}}.Encode(),
	}
	return u.String()
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Pretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// Load reads an optional .env file from the working directory, then parses
// environment variables into the Config struct. Variables already present in
// the environment win over the .env file.
func Load() (*Config, error) {
	return LoadWithEnvFile(".env")
}

// LoadWithEnvFile is Load with an explicit dotenv path. A missing file is not an error.
func LoadWithEnvFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
