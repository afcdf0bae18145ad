package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/99minutos/community-board/internal/core/domain"
)

// Storage backends accepted by STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Community CommunityConfig
	Storage   StorageConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

// CommunityConfig is the global configuration consumed by the core.
type CommunityConfig struct {
	AllowedDomains        []string `env:"ALLOWED_DOMAINS,          default=@google.com" validate:"min=1,dive,required"`
	AdminEmailSeed        string   `env:"ADMIN_EMAIL_SEED,         default=mjeong23@outlook.com" validate:"omitempty,email"`
	ImageMaxMB            float64  `env:"IMAGE_MAX_MB,             default=1" validate:"gt=0"`
	ReadOnlyForUnapproved bool     `env:"READ_ONLY_FOR_UNAPPROVED, default=true"`
}

// AccessPolicy converts the flag into the domain policy value.
func (c CommunityConfig) AccessPolicy() domain.AccessPolicy {
	return domain.AccessPolicy{ReadOnlyForUnapproved: c.ReadOnlyForUnapproved}
}

type StorageConfig struct {
	Backend     string `env:"STORAGE_BACKEND, default=file" validate:"oneof=memory file sqlite postgres redis mongo"`
	Key         string `env:"STORAGE_KEY,     default=school-community-app" validate:"required"`
	Dir         string `env:"STORAGE_DIR,     default=.community"`
	SQLitePath  string `env:"SQLITE_PATH,     default=community.db"`
	PostgresDSN string `env:"POSTGRES_DSN,    default=postgres://localhost:5432/community"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=community_board"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// IsProduction reports whether ENV selects production behaviour.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads an optional .env file, then configuration from environment
// variables using go-envconfig, and validates the result.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}

	for i, d := range cfg.Community.AllowedDomains {
		cfg.Community.AllowedDomains[i] = strings.ToLower(strings.TrimSpace(d))
	}
	cfg.Community.AdminEmailSeed = strings.ToLower(strings.TrimSpace(cfg.Community.AdminEmailSeed))

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return &cfg, nil
}
