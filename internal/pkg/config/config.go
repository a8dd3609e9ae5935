package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	GraphQL GraphQLConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Minio   MinioConfig
	SignUp  SignUpConfig

	DispatcherWorkers int `env:"DISPATCHER_WORKERS, default=8"`
}

type GraphQLConfig struct {
	Endpoint    string        `env:"GRAPHQL_ENDPOINT,     default=http://localhost:8081/v1/graphql"`
	AdminSecret string        `env:"GRAPHQL_ADMIN_SECRET"`
	Timeout     time.Duration `env:"GRAPHQL_TIMEOUT,      default=10s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=photogram"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type MinioConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT,   default=localhost:9000"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	Bucket    string `env:"MINIO_BUCKET,     default=photogram"`
	UseSSL    bool   `env:"MINIO_USE_SSL,    default=false"`
	PublicURL string `env:"MINIO_PUBLIC_URL"`
}

type SignUpConfig struct {
	SessionTTL       time.Duration `env:"SIGNUP_SESSION_TTL, default=30m"`
	SweepInterval    time.Duration `env:"SIGNUP_SWEEP_INTERVAL, default=1m"`
	UsernameCacheTTL time.Duration `env:"USERNAME_CACHE_TTL, default=30s"`
	DefaultAvatarURL string        `env:"DEFAULT_AVATAR_URL, default=/static/default-avatar.png"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := Process(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// Process reads configuration through l; tests pass envconfig.MapLookuper.
func Process(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" && cfg.Env == "production" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}
	return &cfg, nil
}
