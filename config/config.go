package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Document store.
	StoreDriver  string `mapstructure:"STORE_DRIVER"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Firebase (Firestore store driver and ID token verification).
	FirebaseProjectID       string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Redis configuration.
	RedisAddr         string        `mapstructure:"REDIS_ADDR"`
	RedisPassword     string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB      int           `mapstructure:"REDIS_CACHE_DB"`
	DashboardCacheTTL time.Duration `mapstructure:"DASHBOARD_CACHE_TTL"`

	// RabbitMQ. Events are disabled when AMQPURL is empty.
	AMQPURL      string `mapstructure:"AMQP_URL"`
	AMQPExchange string `mapstructure:"AMQP_EXCHANGE"`

	IdentityMode string `mapstructure:"IDENTITY_MODE"`
	DoctorUserID string `mapstructure:"DOCTOR_USER_ID"`

	ClinicTimezone      string `mapstructure:"CLINIC_TIMEZONE"`
	EnforceWorkingHours bool   `mapstructure:"ENFORCE_WORKING_HOURS"`
}

const (
	StoreDriverMongo     = "mongo"
	StoreDriverFirestore = "firestore"

	IdentityModeStatic   = "static"
	IdentityModeFirebase = "firebase"
)

var AppConfig Config

var defaults = map[string]interface{}{
	"APP_PORT":                  "8080",
	"ENV":                       "development",
	"LOG_LEVEL":                 "info",
	"MAX_REQUESTS_PER_MIN":      100,
	"STORE_DRIVER":              StoreDriverMongo,
	"DATABASE_URL":              "mongodb://localhost:27017",
	"DATABASE_NAME":             "clinicdesk",
	"FIREBASE_PROJECT_ID":       "",
	"FIREBASE_CREDENTIALS_FILE": "",
	"REDIS_ADDR":                "localhost:6379",
	"REDIS_PASSWORD":            "",
	"REDIS_CACHE_DB":            0,
	"DASHBOARD_CACHE_TTL":       5 * time.Minute,
	"AMQP_URL":                  "",
	"AMQP_EXCHANGE":             "clinicdesk.events",
	"IDENTITY_MODE":             IdentityModeStatic,
	"DOCTOR_USER_ID":            "",
	"CLINIC_TIMEZONE":           "UTC",
	"ENFORCE_WORKING_HOURS":     false,
}

// LoadConfig reads .env, config.yaml and the environment into AppConfig.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, continuing")
	}

	cfg, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// Load applies defaults to v, reads an optional config file and validates the result.
func Load(v *viper.Viper) (Config, error) {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	cfg.IdentityMode = strings.ToLower(strings.TrimSpace(cfg.IdentityMode))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings that cannot produce a working server.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverMongo, StoreDriverFirestore:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	switch c.IdentityMode {
	case IdentityModeStatic:
		if c.DoctorUserID == "" {
			return fmt.Errorf("DOCTOR_USER_ID is required when IDENTITY_MODE is static")
		}
	case IdentityModeFirebase:
	default:
		return fmt.Errorf("unsupported IDENTITY_MODE %q", c.IdentityMode)
	}
	if _, err := time.LoadLocation(c.ClinicTimezone); err != nil {
		return fmt.Errorf("invalid CLINIC_TIMEZONE %q: %w", c.ClinicTimezone, err)
	}
	if c.MaxRequestsPerMin <= 0 {
		return fmt.Errorf("MAX_REQUESTS_PER_MIN must be positive")
	}
	return nil
}

// Location returns the clinic time zone. Validate guarantees it loads.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ClinicTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// UsesFirebase reports whether any component needs a Firebase app.
func (c Config) UsesFirebase() bool {
	return c.StoreDriver == StoreDriverFirestore || c.IdentityMode == IdentityModeFirebase
}
