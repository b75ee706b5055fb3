package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	LogPretty bool          `env:"LOG_PRETTY, default=false"`

	// StorageBackend holds the bookmark set and the session identity.
	StorageBackend string `env:"STORAGE_BACKEND,   default=memory"`
	// PromotionBackend holds the promotion log.
	PromotionBackend string `env:"PROMOTION_BACKEND, default=memory"`

	Mongo      MongoConfig
	Redis      RedisConfig
	Roster     RosterConfig
	Promotions PromotionConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=employee_directory"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type RosterConfig struct {
	BaseURL  string        `env:"ROSTER_BASE_URL,  default=https://dummyjson.com"`
	PageSize int           `env:"ROSTER_PAGE_SIZE, default=10"`
	Timeout  time.Duration `env:"ROSTER_TIMEOUT,   default=10s"`
	CacheTTL time.Duration `env:"ROSTER_CACHE_TTL, default=10m"`
}

type PromotionConfig struct {
	Workers int `env:"PROMOTION_WORKERS, default=4"`
}

// Load reads an optional .env file and then the environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return load(ctx, envconfig.OsLookuper())
}

// MustLoad is Load for main: any error panics.
func MustLoad(ctx context.Context) *Config {
	cfg, err := Load(ctx)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment reports whether the service runs with ENV=development.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Validate checks the combinations envconfig cannot express.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendMemory, BackendRedis, BackendMongo:
	default:
		return fmt.Errorf("config: unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	switch c.PromotionBackend {
	case BackendMemory, BackendMongo:
	default:
		return fmt.Errorf("config: unknown PROMOTION_BACKEND %q", c.PromotionBackend)
	}
	if c.JWTSecret == "" && !c.IsDevelopment() {
		return errors.New("config: JWT_SECRET is required outside development")
	}
	if c.Roster.PageSize <= 0 {
		return fmt.Errorf("config: ROSTER_PAGE_SIZE must be positive, got %d", c.Roster.PageSize)
	}
	return nil
}
