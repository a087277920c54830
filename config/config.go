package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log       Logger    `mapstructure:"logger"`
	DB        Database  `mapstructure:"database"`
	API       API       `mapstructure:"api"`
	Upstox    Upstox    `mapstructure:"upstox"`
	Predict   Predict   `mapstructure:"predict"`
	Client    Client    `mapstructure:"client"`
	Scheduler Scheduler `mapstructure:"scheduler"`
	Cache     Cache     `mapstructure:"cache"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// Database is optional. An empty host disables prediction history.
type Database struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	TimeZone        string        `mapstructure:"time_zone"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LogLevel        string        `mapstructure:"log_level"`
}

func (d Database) Enabled() bool {
	return d.Host != ""
}

type API struct {
	Port             int      `mapstructure:"port"`
	RateLimitPerSec  float64  `mapstructure:"rate_limit_per_sec"`
	RateLimitBurst   int      `mapstructure:"rate_limit_burst"`
	AllowOrigins     []string `mapstructure:"allow_origins"`
	MetricsNamespace string   `mapstructure:"metrics_namespace"`
	MetricsSubsystem string   `mapstructure:"metrics_subsystem"`
}

type Upstox struct {
	BaseURL          string        `mapstructure:"base_url"`
	APIToken         string        `mapstructure:"api_token"`
	Exchange         string        `mapstructure:"exchange"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxRequestPerMin int           `mapstructure:"max_request_per_min"`
}

func (u Upstox) Configured() bool {
	return u.APIToken != ""
}

type Predict struct {
	DefaultStartDate string `mapstructure:"default_start_date"`
	DefaultInterval  string `mapstructure:"default_interval"`
	MinCandles       int    `mapstructure:"min_candles"`
}

// Client configures the predict command's submission client.
type Client struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type Scheduler struct {
	Enabled        bool          `mapstructure:"enabled"`
	CronExpression string        `mapstructure:"cron_expression"`
	Watchlist      []string      `mapstructure:"watchlist"`
	MaxConcurrency int           `mapstructure:"max_concurrency"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.log_level", "Warn")
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("api.port", 8000)
	v.SetDefault("api.rate_limit_per_sec", 10)
	v.SetDefault("api.rate_limit_burst", 30)
	v.SetDefault("api.allow_origins", []string{"*"})
	v.SetDefault("api.metrics_namespace", "algooee")
	v.SetDefault("api.metrics_subsystem", "api")

	v.SetDefault("upstox.base_url", "https://api.upstox.com")
	v.SetDefault("upstox.exchange", "NSE_EQ")
	v.SetDefault("upstox.timeout", 15*time.Second)
	v.SetDefault("upstox.max_request_per_min", 250)

	v.SetDefault("predict.default_start_date", "2025-01-01")
	v.SetDefault("predict.default_interval", "day")
	v.SetDefault("predict.min_candles", 10)

	v.SetDefault("client.endpoint", "http://localhost:8000")

	v.SetDefault("scheduler.cron_expression", "30 16 * * 1-5")
	v.SetDefault("scheduler.max_concurrency", 4)
	v.SetDefault("scheduler.timeout", 2*time.Minute)

	v.SetDefault("cache.default_expiration", 10*time.Minute)
	v.SetDefault("cache.cleanup_interval", 20*time.Minute)
}

// Load reads config.yaml from the working directory and the environment.
// A .env file, when present, is loaded into the environment first.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded environment from .env")
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AddConfigPath(".")
	v.AutomaticEnv()

	// Deployments usually set only UPSTOX_API_TOKEN in .env.
	_ = v.BindEnv("upstox.api_token", "UPSTOX_API_TOKEN")

	if err := v.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}
