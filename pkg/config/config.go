package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	MigrationsPath string
	RateLimit      string

	// Clinic opening hours, HH:MM wall-clock times.
	OpeningTime string
	ClosingTime string

	// Booking lead-time rules. Zero disables the corresponding check.
	MinBookingAdvanceMinutes int
	MaxBookingAdvanceDays    int

	// Availability suggestion tuning.
	SlotIncrementMinutes int
	MaxSuggestedSlots    int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("RATE_LIMIT", "60-M")
	viper.SetDefault("OPENING_TIME", "08:00")
	viper.SetDefault("CLOSING_TIME", "19:00")
	viper.SetDefault("MIN_BOOKING_ADVANCE_MINUTES", 0)
	viper.SetDefault("MAX_BOOKING_ADVANCE_DAYS", 180)
	viper.SetDefault("SLOT_INCREMENT_MINUTES", 30)
	viper.SetDefault("MAX_SUGGESTED_SLOTS", 5)

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:              viper.GetString("PGSQL_URL"),
		Port:                     viper.GetString("PORT"),
		IsProduction:             viper.GetBool("IS_PRODUCTION"),
		MigrationsPath:           viper.GetString("MIGRATIONS_PATH"),
		RateLimit:                viper.GetString("RATE_LIMIT"),
		OpeningTime:              viper.GetString("OPENING_TIME"),
		ClosingTime:              viper.GetString("CLOSING_TIME"),
		MinBookingAdvanceMinutes: viper.GetInt("MIN_BOOKING_ADVANCE_MINUTES"),
		MaxBookingAdvanceDays:    viper.GetInt("MAX_BOOKING_ADVANCE_DAYS"),
		SlotIncrementMinutes:     viper.GetInt("SLOT_INCREMENT_MINUTES"),
		MaxSuggestedSlots:        viper.GetInt("MAX_SUGGESTED_SLOTS"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	return cfg, nil
}
