package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8000"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET, default=dev-secret-change-in-production"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	SessionTTL    time.Duration `env:"SESSION_TTL,    default=30m"`
	DefaultLocale string        `env:"DEFAULT_LOCALE, default=en"`

	// StoreDriver selects the repository backend: memory (mock store) or mongo.
	StoreDriver string `env:"STORE_DRIVER, default=memory"`
	// SessionBackend selects the session table: memory or redis.
	SessionBackend string `env:"SESSION_STORE, default=memory"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=webapi_starter"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
