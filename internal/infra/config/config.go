package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	HTTPPort             string
	LogLevel             string
	Environment          string
	SkillApplicationID   string // empty accepts requests for any skill
	ExpectedTimeZone     string
	GeoclientAppID       string
	GeoclientAppKey      string
	GeoclientBaseURL     string
	RoutingTimeURL       string
	HolidayURL           string
	HTTPClientTimeout    time.Duration
	OutboundRatePerSec   float64
	InboundRatePerMinute int
	TurnTimeout          time.Duration
	RedisAddr            string // empty disables the holiday cache
	RedisPassword        string
	CronSpecHolidayCheck string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.GeoclientAppID = os.Getenv("GEOCLIENT_APP_ID")
	if cfg.GeoclientAppID == "" {
		return nil, fmt.Errorf("GEOCLIENT_APP_ID is not set")
	}

	cfg.GeoclientAppKey = os.Getenv("GEOCLIENT_APP_KEY")
	if cfg.GeoclientAppKey == "" {
		return nil, fmt.Errorf("GEOCLIENT_APP_KEY is not set")
	}

	cfg.HTTPPort = envOrDefault("HTTP_PORT", "8080")
	cfg.LogLevel = strings.ToLower(envOrDefault("LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(envOrDefault("ENVIRONMENT", "development"))
	cfg.SkillApplicationID = os.Getenv("SKILL_APPLICATION_ID")
	cfg.ExpectedTimeZone = envOrDefault("EXPECTED_TIME_ZONE", "America/New_York")

	cfg.GeoclientBaseURL = envOrDefault("GEOCLIENT_BASE_URL", "https://api.cityofnewyork.us/geoclient/v1")
	cfg.RoutingTimeURL = envOrDefault("ROUTING_TIME_URL", "https://www1.nyc.gov/apps/311utils/routingTime")
	cfg.HolidayURL = envOrDefault("HOLIDAY_URL", "https://a827-donatenyc.nyc.gov/DSNYApi/api/Holidays/CheckSanitationHolidayToday")

	cfg.HTTPClientTimeout, err = time.ParseDuration(envOrDefault("HTTP_CLIENT_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_CLIENT_TIMEOUT: %w", err)
	}

	cfg.TurnTimeout, err = time.ParseDuration(envOrDefault("TURN_TIMEOUT", "7s"))
	if err != nil {
		return nil, fmt.Errorf("invalid TURN_TIMEOUT: %w", err)
	}

	cfg.OutboundRatePerSec, err = strconv.ParseFloat(envOrDefault("OUTBOUND_RATE_PER_SECOND", "5"), 64)
	if err != nil || cfg.OutboundRatePerSec <= 0 {
		return nil, fmt.Errorf("invalid OUTBOUND_RATE_PER_SECOND: %q", os.Getenv("OUTBOUND_RATE_PER_SECOND"))
	}

	cfg.InboundRatePerMinute, err = strconv.Atoi(envOrDefault("INBOUND_RATE_PER_MINUTE", "120"))
	if err != nil || cfg.InboundRatePerMinute <= 0 {
		return nil, fmt.Errorf("invalid INBOUND_RATE_PER_MINUTE: %q", os.Getenv("INBOUND_RATE_PER_MINUTE"))
	}

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.CronSpecHolidayCheck = envOrDefault("CRON_SPEC_HOLIDAY_REFRESH", "5 0 * * *") // Default: 00:05 daily

	return cfg, nil
}

// IsProduction reports whether structured logs should be emitted.
func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "staging"
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
