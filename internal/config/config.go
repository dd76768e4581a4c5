package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultJWTSecret = "change-me-jwt-secret"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string
	Timezone    *time.Location

	JWTSecret string
	JWTTTL    time.Duration

	CORSAllowedOrigins []string

	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	DashboardCacheTTL time.Duration

	RabbitMQURL string
	EventsQueue string

	MongoURI string
	MongoDB  string

	Billing   BillingConfig
	Reconcile ReconcileConfig
	Stay      StayConfig
}

// BillingConfig overrides the hourly tariff and the monthly fallback multiplier.
type BillingConfig struct {
	HourlyFirstHour        float64
	HourlySecondHour       float64
	HourlyNextHours        float64
	MonthlyPriceMultiplier float64
}

type ReconcileConfig struct {
	// PreserveManual keeps maintenance/cleaning when no active booking exists.
	PreserveManual bool
}

// StayConfig holds the times used when a booking omits check-in/out times.
type StayConfig struct {
	DefaultCheckInTime  string
	DefaultCheckOutTime string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppEnv:      strings.ToLower(getEnv("APP_ENV", "dev")),
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL: getEnv("DATABASE_URL", "resort.db"),
		JWTSecret:   strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret)),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		RabbitMQURL: os.Getenv("RABBITMQ_URL"),
		EventsQueue: getEnv("EVENTS_QUEUE", "resort.events"),

		MongoURI: os.Getenv("MONGO_URI"),
		MongoDB:  getEnv("MONGO_DB", "resort"),

		Stay: StayConfig{
			DefaultCheckInTime:  getEnv("DEFAULT_CHECKIN_TIME", "14:00"),
			DefaultCheckOutTime: getEnv("DEFAULT_CHECKOUT_TIME", "12:00"),
		},
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	var err error
	if cfg.Timezone, err = time.LoadLocation(getEnv("TIMEZONE", "Local")); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE value: %w", err)
	}
	if cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", "24h"); err != nil {
		return nil, err
	}
	if cfg.DashboardCacheTTL, err = parseDurationEnv("DASHBOARD_CACHE_TTL", "30s"); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = parseIntEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.Billing.HourlyFirstHour, err = parseFloatEnv("HOURLY_FIRST_HOUR", 80000); err != nil {
		return nil, err
	}
	if cfg.Billing.HourlySecondHour, err = parseFloatEnv("HOURLY_SECOND_HOUR", 40000); err != nil {
		return nil, err
	}
	if cfg.Billing.HourlyNextHours, err = parseFloatEnv("HOURLY_NEXT_HOURS", 20000); err != nil {
		return nil, err
	}
	if cfg.Billing.MonthlyPriceMultiplier, err = parseFloatEnv("MONTHLY_PRICE_MULTIPLIER", 25); err != nil {
		return nil, err
	}
	cfg.Reconcile.PreserveManual = parseBoolEnv("RECONCILE_PRESERVE_MANUAL", "false")

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.DashboardCacheTTL < 0 {
		return fmt.Errorf("DASHBOARD_CACHE_TTL must be >= 0")
	}
	if cfg.Billing.HourlyFirstHour <= 0 || cfg.Billing.HourlySecondHour <= 0 || cfg.Billing.HourlyNextHours <= 0 {
		return fmt.Errorf("hourly tariff values must be > 0")
	}
	if cfg.Billing.MonthlyPriceMultiplier <= 0 {
		return fmt.Errorf("MONTHLY_PRICE_MULTIPLIER must be > 0")
	}
	for name, v := range map[string]string{
		"DEFAULT_CHECKIN_TIME":  cfg.Stay.DefaultCheckInTime,
		"DEFAULT_CHECKOUT_TIME": cfg.Stay.DefaultCheckOutTime,
	} {
		if _, err := time.Parse("15:04", v); err != nil {
			return fmt.Errorf("%s must be HH:MM, got %q", name, v)
		}
	}
	if cfg.IsProdLike() && isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func (c *Config) IsProdLike() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production" || c.AppEnv == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, raw, err)
	}
	return n, nil
}

func parseFloatEnv(name string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, raw, err)
	}
	return f, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
