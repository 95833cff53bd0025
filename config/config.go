package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port      string `env:"PORT" envDefault:"5000"`
	DBType    string `env:"DB_TYPE" envDefault:"mongo"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	CORSAllowedOrigin string        `env:"CORS_ALLOWED_ORIGIN" envDefault:"*"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Mongo Mongo
	Auth  Auth
	Redis Redis

	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"file://db/migrations"`
	RunMigrations  bool   `env:"RUN_MIGRATIONS" envDefault:"true"`
}

// Mongo holds the document store connection settings.
type Mongo struct {
	URI      string        `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	Database string        `env:"MONGODB_DATABASE" envDefault:"reliefsupply"`
	Timeout  time.Duration `env:"MONGODB_TIMEOUT" envDefault:"10s"`
}

// Auth holds token signing and password hashing parameters.
type Auth struct {
	JWTSecret  string        `env:"JWT_SECRET"`
	ExpiresIn  time.Duration `env:"EXPIRES_IN" envDefault:"24h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`
}

// Redis configures the optional provider ranking cache. An empty Addr disables it.
type Redis struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL time.Duration `env:"PROVIDERS_CACHE_TTL" envDefault:"30s"`
}

const (
	DBTypeMongo  = "mongo"
	DBTypeMemory = "memory"
)

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	return Parse()
}

// Parse builds a Config from the current environment without touching .env files.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBType {
	case DBTypeMongo, DBTypeMemory:
	default:
		return fmt.Errorf("DB_TYPE %q not supported", c.DBType)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if c.Auth.ExpiresIn <= 0 {
		return errors.New("EXPIRES_IN must be positive")
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

// CacheEnabled reports whether the provider ranking should be cached in Redis.
func (c *Config) CacheEnabled() bool {
	return c.Redis.Addr != ""
}
