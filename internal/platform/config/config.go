package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string

	// Geofence validation service
	GeofenceValidatorURL string
	GeofenceTimeout      time.Duration

	// Downstream notification webhook (empty disables dispatching)
	NotifyWebhookURL string

	// Clock coordinator windows
	LocationMaxAge     time.Duration
	ClockDebounce      time.Duration
	MinShiftDuration   time.Duration
	EarlyClockInWindow time.Duration

	// Auto-approval tolerance between actual and scheduled hours, in hours
	AutoApprovalHoursTolerance float64

	// Requests per minute per client IP
	RateLimit int64

	PosthogAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("GEOFENCE_VALIDATOR_URL", "")
	viper.SetDefault("GEOFENCE_TIMEOUT", "5s")
	viper.SetDefault("NOTIFY_WEBHOOK_URL", "")
	viper.SetDefault("LOCATION_MAX_AGE", "60s")
	viper.SetDefault("CLOCK_DEBOUNCE_WINDOW", "2s")
	viper.SetDefault("MIN_SHIFT_DURATION", "15m")
	viper.SetDefault("EARLY_CLOCK_IN_WINDOW", "15m")
	viper.SetDefault("AUTO_APPROVAL_HOURS_TOLERANCE", 0.25)
	viper.SetDefault("RATE_LIMIT", 120)
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.GeofenceValidatorURL = viper.GetString("GEOFENCE_VALIDATOR_URL")
	if cfg.GeofenceValidatorURL == "" {
		log.Println("Warning: GEOFENCE_VALIDATOR_URL not set. Clock-in geofence checks will fail for consenting staff.")
	}
	cfg.GeofenceTimeout = parseDurationOr("GEOFENCE_TIMEOUT", 5*time.Second)

	cfg.NotifyWebhookURL = viper.GetString("NOTIFY_WEBHOOK_URL")
	if cfg.NotifyWebhookURL == "" {
		log.Println("Warning: NOTIFY_WEBHOOK_URL not set. Event notifications are disabled.")
	}

	cfg.LocationMaxAge = parseDurationOr("LOCATION_MAX_AGE", 60*time.Second)
	cfg.ClockDebounce = parseDurationOr("CLOCK_DEBOUNCE_WINDOW", 2*time.Second)
	cfg.MinShiftDuration = parseDurationOr("MIN_SHIFT_DURATION", 15*time.Minute)
	cfg.EarlyClockInWindow = parseDurationOr("EARLY_CLOCK_IN_WINDOW", 15*time.Minute)

	cfg.AutoApprovalHoursTolerance = viper.GetFloat64("AUTO_APPROVAL_HOURS_TOLERANCE")
	if cfg.AutoApprovalHoursTolerance <= 0 {
		log.Println("Warning: AUTO_APPROVAL_HOURS_TOLERANCE must be positive. Defaulting to 0.25.")
		cfg.AutoApprovalHoursTolerance = 0.25
	}

	cfg.RateLimit = viper.GetInt64("RATE_LIMIT")
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 120
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}

func parseDurationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
