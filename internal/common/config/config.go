package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Matching MatchingConfig `mapstructure:"matching"`
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// MatchingConfig holds the batch run settings, including the default
// experience profile used when a broker has no stored profile.
type MatchingConfig struct {
	MinScore            int                  `mapstructure:"min_score"`
	ChunkSize           int                  `mapstructure:"chunk_size"`
	Workers             int                  `mapstructure:"workers"`
	SpaceTooSmallFactor float64              `mapstructure:"space_too_small_factor"`
	RunInterval         time.Duration        `mapstructure:"run_interval"`
	ProfileCacheTTL     time.Duration        `mapstructure:"profile_cache_ttl"`
	DefaultProfile      DefaultProfileConfig `mapstructure:"default_profile"`
}

type DefaultProfileConfig struct {
	GovernmentLeases    int  `mapstructure:"government_leases"`
	GovernmentCertified bool `mapstructure:"government_certified"`
	References          int  `mapstructure:"references"`
	BuildToSuit         bool `mapstructure:"build_to_suit"`
	TenantImprovements  bool `mapstructure:"tenant_improvements"`
}

// ServerConfig holds the metrics/health HTTP listener settings.
type ServerConfig struct {
	MetricsAddress string `mapstructure:"metrics_address"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
