package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DevJWTSecret signs tokens when JWT_SECRET is unset. It is refused outside
// development.
const DevJWTSecret = "storefront-dev-secret"

const (
	AuthModeMock   = "mock"
	AuthModeStrict = "strict"

	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	JWTSecret string        `env:"JWT_SECRET, default=storefront-dev-secret"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	AuthMode  string        `env:"AUTH_MODE, default=mock"`

	Session  SessionConfig
	Catalog  CatalogConfig
	Shipping ShippingConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type SessionConfig struct {
	Backend string `env:"SESSION_BACKEND, default=file"`
	Dir     string `env:"SESSION_DIR,     default=.storefront"`
}

type CatalogConfig struct {
	Backend string `env:"CATALOG_BACKEND, default=memory"`
	Seed    bool   `env:"CATALOG_SEED,    default=true"`
}

type ShippingConfig struct {
	FreeThreshold float64 `env:"FREE_SHIPPING_THRESHOLD, default=500"`
	FlatFee       float64 `env:"FLAT_SHIPPING_FEE,       default=50"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=storefront"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate rejects unknown backends and modes.
func (c *Config) Validate() error {
	switch c.AuthMode {
	case AuthModeMock, AuthModeStrict:
	default:
		return fmt.Errorf("config: AUTH_MODE %q must be mock or strict", c.AuthMode)
	}
	switch c.Session.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("config: SESSION_BACKEND %q must be memory, file or redis", c.Session.Backend)
	}
	switch c.Catalog.Backend {
	case BackendMemory, BackendMongo:
	default:
		return fmt.Errorf("config: CATALOG_BACKEND %q must be memory or mongo", c.Catalog.Backend)
	}
	if c.Shipping.FreeThreshold < 0 || c.Shipping.FlatFee < 0 {
		return fmt.Errorf("config: shipping amounts must not be negative")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET must not be empty")
	}
	if c.IsProduction() && c.JWTSecret == DevJWTSecret {
		return fmt.Errorf("config: JWT_SECRET must be set in production")
	}
	return nil
}
