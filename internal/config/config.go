// Package config manages environment variables.
//
// It reads variables from the `.env` file and the process environment,
// loads them into structured Go types (struct), and validates that
// required values are present so they can be reused across the
// application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional values (port, timeouts, observability).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: triggers godotenv's autoload feature.
	// If a `.env` file exists, it gets loaded into the process env
	// before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Key idea in this file:
	- Env vars are read using a prefix: BOOKSHELF_
	- Keys are normalized (lowercased, prefix removed)
	- A double underscore marks nesting, e.g.
	  BOOKSHELF_SERVER__PORT -> server.port -> Config.Server.Port
	- List values are comma-separated:
	  BOOKSHELF_SERVER__CORS_ALLOWED_ORIGINS=https://a.example,https://b.example
	- The variable names of the first deployment (MONGO_URL, MONGO_DB_NAME,
	  PORT) are still understood. Prefixed variables win over them.
*/

const (
	// EnvPrefix is the prefix every structured variable carries.
	EnvPrefix = "BOOKSHELF_"

	// nestingSeparator separates nested keys inside a variable name.
	nestingSeparator = "__"
)

// ServiceName is the name reported in logs, traces and APM dashboards.
const ServiceName = "bookshelf"

// legacyKeys maps the unprefixed variables of the first deployment
// to their koanf key.
var legacyKeys = map[string]string{
	"MONGO_URL":     "database.uri",
	"MONGO_DB_NAME": "database.name",
	"PORT":          "server.port",
}

// listKeys are the keys whose variables hold a comma-separated list.
var listKeys = map[string]bool{
	"server.cors_allowed_origins":        true,
	"observability.health_checks.checks": true,
}

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf should map values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimit is the number of requests per second allowed per client IP.
	// Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
}

// DatabaseConfig contains the MongoDB connection parameters.
type DatabaseConfig struct {
	// URI is the MongoDB connection string, e.g. mongodb://localhost:27017.
	URI string `koanf:"uri" validate:"required"`

	// Name is the database that holds the collections.
	Name string `koanf:"name" validate:"required"`

	// Collection is the collection books are stored in.
	Collection string `koanf:"collection" validate:"required"`

	// ConnectTimeout bounds the initial connect + ping, in seconds.
	ConnectTimeout int `koanf:"connect_timeout" validate:"min=1"`

	// MaxPoolSize caps the number of pooled connections. Zero keeps the driver default.
	MaxPoolSize uint64 `koanf:"max_pool_size"`
}

// defaultConfig returns the values used when a variable is not set.
//
// koanf unmarshals on top of this struct, so only the keys present in the
// environment overwrite a default.
func defaultConfig() *Config {
	return &Config{
		Primary: Primary{
			Env: "development",
		},
		Server: ServerConfig{
			Port:               "3000",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Collection:     "books",
			ConnectTimeout: 10,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, validates it, and returns the resulting config.
//
// Behavior summary:
//   - Loads the legacy unprefixed variables first
//   - Loads env vars with prefix BOOKSHELF_, overriding the legacy ones
//   - Unmarshals on top of the defaults
//   - Validates required config blocks/fields
//   - Forces the observability service name + environment
//   - Validates observability config as well
func LoadConfig() (*Config, error) {
	// The "." is the key-path delimiter koanf uses to represent nesting.
	k := koanf.New(".")

	// An empty prefix makes the provider see every variable; the callback
	// keeps only the legacy ones by returning "" for everything else.
	err := k.Load(env.Provider("", ".", func(s string) string {
		return legacyKeys[s]
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load legacy env variables: %w", err)
	}

	err = k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := defaultConfig()

	// Using "" means "unmarshal everything from the root".
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service naming is not configurable; the environment label always
	// follows primary.env so logs and traces agree.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// envKey turns BOOKSHELF_SERVER__CORS_ALLOWED_ORIGINS into
// server.cors_allowed_origins.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, nestingSeparator, ".")
}

// envValue maps a prefixed variable to its key and splits the value of list
// keys on commas.
func envValue(name, value string) (string, interface{}) {
	key := envKey(name)
	if !listKeys[key] {
		return key, value
	}

	items := make([]string, 0, strings.Count(value, ",")+1)
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}
