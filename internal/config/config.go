package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config is loaded by viper (mapstructure tags) and, in the maintenance
// scripts, by yaml.v3 directly (yaml tags). Keep both tag sets in step.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Redis     RedisConfig     `yaml:"redis"`
	Storage   StorageConfig   `yaml:"storage"`
	Scoring   ScoringConfig   `mapstructure:"scoring" yaml:"scoring"`
	Analytics AnalyticsConfig `mapstructure:"analytics" yaml:"analytics"`
	Tracing   TracingConfig   `mapstructure:"tracing" yaml:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors" yaml:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit"`

	// Runtime flags, set from the command line rather than the config file.
	ForceMigrate bool `mapstructure:"-" yaml:"-"`
	MigrateOnly  bool `mapstructure:"-" yaml:"-"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"`
}

type DatabaseConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	DBName    string `yaml:"dbname"`
	Charset   string `yaml:"charset"`
	ParseTime bool   `yaml:"parsetime"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret" yaml:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours" yaml:"expire_hours"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type" yaml:"type"`
	LocalPath     string `mapstructure:"local_path" yaml:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint" yaml:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key" yaml:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key" yaml:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket" yaml:"minio_bucket"`
}

// ScoringConfig holds the bucket fraction cut-points. These are deployment
// configuration, not code: a score at or above StableMinFraction of the
// maximum classifies Stable, at or above EmergingMinFraction classifies
// Emerging, below that SupportNeeded. Defaults are 0.75 / 0.40 pending
// confirmation from the product side.
type ScoringConfig struct {
	StableMinFraction   float64 `mapstructure:"stable_min_fraction" yaml:"stable_min_fraction"`
	EmergingMinFraction float64 `mapstructure:"emerging_min_fraction" yaml:"emerging_min_fraction"`
}

type AnalyticsConfig struct {
	RecentPageSize int `mapstructure:"recent_page_size" yaml:"recent_page_size"`
	CacheTTLSecs   int `mapstructure:"cache_ttl_seconds" yaml:"cache_ttl_seconds"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled" yaml:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint" yaml:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests" yaml:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes" yaml:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("JAAGRMIND")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")
	viper.BindEnv("server.port", "SERVER_PORT")

	// Storage
	viper.BindEnv("storage.type", "STORAGE_TYPE")
	viper.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Scoring
	viper.BindEnv("scoring.stable_min_fraction", "SCORING_STABLE_MIN_FRACTION")
	viper.BindEnv("scoring.emerging_min_fraction", "SCORING_EMERGING_MIN_FRACTION")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	viper.SetDefault("scoring.stable_min_fraction", 0.75)
	viper.SetDefault("scoring.emerging_min_fraction", 0.40)
	viper.SetDefault("analytics.recent_page_size", 50)
	viper.SetDefault("analytics.cache_ttl_seconds", 30)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	// A broken threshold table must never reach the classifier; fail the
	// boot instead of silently defaulting buckets.
	if err := cfg.Scoring.Validate(); err != nil {
		return nil, err
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}

func (c ScoringConfig) Validate() error {
	if c.EmergingMinFraction <= 0 || c.EmergingMinFraction >= 1 {
		return fmt.Errorf("scoring: emerging_min_fraction %v out of range (0,1)", c.EmergingMinFraction)
	}
	if c.StableMinFraction <= c.EmergingMinFraction || c.StableMinFraction > 1 {
		return fmt.Errorf("scoring: stable_min_fraction %v must be in (emerging_min_fraction, 1]", c.StableMinFraction)
	}
	return nil
}
