package config

import (
	"fmt"
	"log"
	"time"

	"github.com/centsible/centsible_app/internal/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Single-operator credentials. The password is stored as a bcrypt hash.
	AuthUsername     string
	AuthPasswordHash string

	// Default horizon for recurring-instance generation.
	RecurrenceHorizonMonths int
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist.
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "centsible-backend")
	viper.SetDefault("AUTH_USERNAME", "")
	viper.SetDefault("AUTH_PASSWORD_HASH", "")
	viper.SetDefault("AUTH_PASSWORD", "")
	viper.SetDefault("RECURRENCE_HORIZON_MONTHS", 3)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.AuthUsername = viper.GetString("AUTH_USERNAME")
	cfg.AuthPasswordHash = viper.GetString("AUTH_PASSWORD_HASH")
	if cfg.AuthPasswordHash == "" {
		// Plaintext fallback for local setups; hashed once at startup so the
		// rest of the process only ever sees the bcrypt hash.
		if plain := viper.GetString("AUTH_PASSWORD"); plain != "" {
			hash, err := utils.HashPassword(plain)
			if err != nil {
				return nil, fmt.Errorf("failed to hash AUTH_PASSWORD: %w", err)
			}
			cfg.AuthPasswordHash = hash
			log.Println("Warning: AUTH_PASSWORD set in plaintext. Prefer AUTH_PASSWORD_HASH.")
		}
	}
	if cfg.AuthUsername == "" || cfg.AuthPasswordHash == "" {
		log.Println("Warning: AUTH_USERNAME/AUTH_PASSWORD_HASH not set. Login will not function.")
	}

	cfg.RecurrenceHorizonMonths = viper.GetInt("RECURRENCE_HORIZON_MONTHS")
	if cfg.RecurrenceHorizonMonths < 1 {
		cfg.RecurrenceHorizonMonths = 3
		log.Printf("Warning: RECURRENCE_HORIZON_MONTHS must be positive. Defaulting to %d.\n", cfg.RecurrenceHorizonMonths)
	}

	return cfg, nil
}
