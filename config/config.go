package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Port     int
	MongoURI string
	MongoDB  string
	JWTKey   string
	Debug    bool

	// Timezone is the IANA zone used for all calendar arithmetic
	// (trend buckets, time-of-day follow-up windows).
	Timezone string

	// Object storage for call recordings.
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	RecordingsBucket   string
	PresignTTL         time.Duration
}

var loaded *Config

// LoadConfig loads configuration from the environment. A local .env file
// is honoured when present.
func LoadConfig() *Config {
	if loaded != nil {
		return loaded
	}

	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	presignDays, _ := strconv.Atoi(getEnv("PRESIGN_TTL_DAYS", "7"))

	loaded = &Config{
		Port:     port,
		MongoURI: getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:  getEnv("MONGO_DB", "erp"),
		JWTKey:   getEnv("JWT_KEY", "your-secret-key"), // replace in real deployments
		Debug:    getEnv("GIN_MODE", "debug") == "debug",

		Timezone: getEnv("TIMEZONE", "Asia/Kolkata"),

		AWSRegion:          getEnv("AWS_REGION", "ap-south-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		RecordingsBucket:   getEnv("RECORDINGS_BUCKET", "erp-call-recordings"),
		PresignTTL:         time.Duration(presignDays) * 24 * time.Hour,
	}

	return loaded
}

// Location resolves the configured timezone, falling back to UTC when the
// name is not a valid IANA zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// getEnv returns the env var value or a default when unset.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
