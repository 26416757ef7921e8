package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Notification providers understood by the mail package.
const (
	NotificationProviderLog      = "log"
	NotificationProviderHTTP     = "http"
	NotificationProviderSendGrid = "sendgrid"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database       DatabaseConfig
	Redis          RedisConfig
	JWT            JWTConfig
	CORS           CORSConfig
	Log            LogConfig
	Cache          CacheConfig
	Docs           DocsConfig
	Notifications  NotificationConfig
	RateLimit      RateLimitConfig
	VolunteerHours VolunteerHoursConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig describes how tokens issued by the hosted auth platform are verified.
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CacheConfig governs the Redis-backed read cache.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// DocsConfig toggles the swagger UI.
type DocsConfig struct {
	Enabled bool
}

// NotificationConfig selects and tunes the outbound email provider.
type NotificationConfig struct {
	Provider       string
	ServiceURL     string
	SendGridAPIKey string
	FromName       string
	FromEmail      string
	SiteURL        string
	Timeout        time.Duration
	Workers        int
	BufferSize     int
	MaxRetries     int
	RetryDelay     time.Duration
}

// RateLimitRule is a fixed window allowance.
type RateLimitRule struct {
	Window      time.Duration
	MaxRequests int
}

// RateLimitConfig holds per-bucket allowances.
type RateLimitConfig struct {
	Enabled bool
	Rules   map[string]RateLimitRule
}

// VolunteerHoursConfig tunes the volunteer hours workflow.
type VolunteerHoursConfig struct {
	EligibleRoles   []string
	StatsCacheTTL   time.Duration
	PendingPageSize int
}

// rateLimitBuckets lists the buckets read from the environment.
var rateLimitBuckets = []string{"auth", "api", "upload", "messaging", "volunteer"}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:   v.GetString("JWT_SECRET"),
		Issuer:   v.GetString("JWT_ISSUER"),
		Audience: v.GetString("JWT_AUDIENCE"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Cache = CacheConfig{
		Enabled:    v.GetBool("ENABLE_CACHE"),
		DefaultTTL: parseDuration(v.GetString("CACHE_DEFAULT_TTL"), 5*time.Minute),
	}

	cfg.Docs = DocsConfig{Enabled: v.GetBool("ENABLE_DOCS")}

	cfg.Notifications = NotificationConfig{
		Provider:       strings.ToLower(strings.TrimSpace(v.GetString("NOTIFICATION_PROVIDER"))),
		ServiceURL:     strings.TrimRight(v.GetString("MAIL_SERVICE_URL"), "/"),
		SendGridAPIKey: v.GetString("SENDGRID_API_KEY"),
		FromName:       v.GetString("MAIL_FROM_NAME"),
		FromEmail:      v.GetString("MAIL_FROM_EMAIL"),
		SiteURL:        strings.TrimRight(v.GetString("SITE_URL"), "/"),
		Timeout:        parseDuration(v.GetString("MAIL_TIMEOUT"), 10*time.Second),
		Workers:        v.GetInt("NOTIFICATION_WORKERS"),
		BufferSize:     v.GetInt("NOTIFICATION_BUFFER_SIZE"),
		MaxRetries:     v.GetInt("NOTIFICATION_MAX_RETRIES"),
		RetryDelay:     parseDuration(v.GetString("NOTIFICATION_RETRY_DELAY"), 5*time.Second),
	}

	cfg.RateLimit = RateLimitConfig{
		Enabled: v.GetBool("ENABLE_RATE_LIMIT"),
		Rules:   make(map[string]RateLimitRule, len(rateLimitBuckets)),
	}
	for _, bucket := range rateLimitBuckets {
		prefix := "RATE_LIMIT_" + strings.ToUpper(bucket)
		cfg.RateLimit.Rules[bucket] = RateLimitRule{
			Window:      parseDuration(v.GetString(prefix+"_WINDOW"), time.Minute),
			MaxRequests: v.GetInt(prefix + "_MAX"),
		}
	}

	pageSize := v.GetInt("VOLUNTEER_PENDING_PAGE_SIZE")
	if pageSize <= 0 {
		pageSize = 100
	}
	cfg.VolunteerHours = VolunteerHoursConfig{
		EligibleRoles:   splitAndTrim(v.GetString("VOLUNTEER_ELIGIBLE_ROLES")),
		StatsCacheTTL:   parseDuration(v.GetString("VOLUNTEER_STATS_CACHE_TTL"), 2*time.Minute),
		PendingPageSize: pageSize,
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "stem_spark")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_ENABLED", true)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("JWT_AUDIENCE", "authenticated")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_CACHE", true)
	v.SetDefault("CACHE_DEFAULT_TTL", "5m")
	v.SetDefault("ENABLE_DOCS", true)

	v.SetDefault("NOTIFICATION_PROVIDER", NotificationProviderLog)
	v.SetDefault("MAIL_SERVICE_URL", "http://localhost:5000")
	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("MAIL_FROM_NAME", "STEM Spark Academy")
	v.SetDefault("MAIL_FROM_EMAIL", "no-reply@stemsparkacademy.com")
	v.SetDefault("SITE_URL", "http://localhost:3000")
	v.SetDefault("MAIL_TIMEOUT", "10s")
	v.SetDefault("NOTIFICATION_WORKERS", 2)
	v.SetDefault("NOTIFICATION_BUFFER_SIZE", 64)
	v.SetDefault("NOTIFICATION_MAX_RETRIES", 0)
	v.SetDefault("NOTIFICATION_RETRY_DELAY", "5s")

	v.SetDefault("ENABLE_RATE_LIMIT", true)
	v.SetDefault("RATE_LIMIT_AUTH_WINDOW", "15m")
	v.SetDefault("RATE_LIMIT_AUTH_MAX", 5)
	v.SetDefault("RATE_LIMIT_API_WINDOW", "1m")
	v.SetDefault("RATE_LIMIT_API_MAX", 100)
	v.SetDefault("RATE_LIMIT_UPLOAD_WINDOW", "1m")
	v.SetDefault("RATE_LIMIT_UPLOAD_MAX", 10)
	v.SetDefault("RATE_LIMIT_MESSAGING_WINDOW", "10s")
	v.SetDefault("RATE_LIMIT_MESSAGING_MAX", 50)
	v.SetDefault("RATE_LIMIT_VOLUNTEER_WINDOW", "1m")
	v.SetDefault("RATE_LIMIT_VOLUNTEER_MAX", 20)

	v.SetDefault("VOLUNTEER_ELIGIBLE_ROLES", "intern")
	v.SetDefault("VOLUNTEER_STATS_CACHE_TTL", "2m")
	v.SetDefault("VOLUNTEER_PENDING_PAGE_SIZE", 100)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
