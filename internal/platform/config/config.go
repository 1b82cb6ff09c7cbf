package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// SnapshotPath is the file the whole account table is persisted to.
	SnapshotPath string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Administrator bootstrap credentials. Used only when the snapshot does
	// not yet contain an administrator record.
	AdminUsername string
	AdminPassword string

	// LoginRateLimit is an ulule/limiter formatted rate (e.g. "10-M") for
	// the login endpoints.
	LoginRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("SNAPSHOT_PATH", "accounts.json")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "sarnath-banking-app")
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD", "")
	viper.SetDefault("LOGIN_RATE_LIMIT", "10-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.SnapshotPath = viper.GetString("SNAPSHOT_PATH")
	if cfg.SnapshotPath == "" {
		cfg.SnapshotPath = "accounts.json"
		log.Printf("Warning: SNAPSHOT_PATH not set. Defaulting to %s\n", cfg.SnapshotPath)
	}

	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 1
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}

	jwtIssuer := viper.GetString("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "sarnath-banking-app"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", jwtIssuer)
	}

	cfg.AdminUsername = viper.GetString("ADMIN_USERNAME")
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
		log.Printf("Warning: ADMIN_USERNAME not set. Defaulting to %s.\n", cfg.AdminUsername)
	}

	cfg.AdminPassword = viper.GetString("ADMIN_PASSWORD")
	if cfg.AdminPassword == "" {
		log.Println("Warning: ADMIN_PASSWORD not set. The administrator account will not be bootstrapped until it is.")
	}

	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")
	if cfg.LoginRateLimit == "" {
		cfg.LoginRateLimit = "10-M"
		log.Printf("Warning: LOGIN_RATE_LIMIT not set. Defaulting to %s.\n", cfg.LoginRateLimit)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.JWTSecret = jwtSecret
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = jwtIssuer

	return cfg, nil
}
