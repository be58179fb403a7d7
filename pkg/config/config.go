package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Environment string

	// Dev marketplace API
	ServerPort         string
	JWTSecret          string
	JWTExpiry          int64
	UploadDir          string
	PublicBaseURL      string
	StorageBucket      string
	FirebaseProject    string
	CredentialsFile    string
	RateLimitPerSecond float64
	MaxUploadBytes     int64

	// Client workflows
	MarketplaceURL      string
	ChatURL             string
	HTTPTimeout         time.Duration
	SubmitRedirectDelay time.Duration
	ClientStateFile     string
	DevSeedUsername     string
	DevSeedPassword     string
}

func Load() (*Config, error) {
	godotenv.Load()

	port := getEnv("SERVER_PORT", "8001")

	config := &Config{
		Environment:         getEnv("ENVIRONMENT", EnvDevelopment),
		ServerPort:          port,
		JWTSecret:           getEnv("JWT_SECRET", "wardrobe101-dev-secret"),
		JWTExpiry:           getEnvAsInt64("JWT_EXPIRY", 600*60), // 10 hours
		UploadDir:           getEnv("UPLOAD_DIR", "./uploads"),
		PublicBaseURL:       getEnv("PUBLIC_BASE_URL", "http://localhost:"+port),
		StorageBucket:       getEnv("STORAGE_BUCKET", ""),
		FirebaseProject:     getEnv("FIREBASE_PROJECT_ID", ""),
		CredentialsFile:     getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		RateLimitPerSecond:  getEnvAsFloat("RATE_LIMIT_PER_SECOND", 20),
		MaxUploadBytes:      getEnvAsInt64("MAX_UPLOAD_BYTES", 5*1024*1024),
		MarketplaceURL:      getEnv("MARKETPLACE_URL", "http://localhost:"+port+"/api"),
		ChatURL:             getEnv("CHAT_URL", "ws://localhost:"+port+"/ws/chat"),
		HTTPTimeout:         getEnvAsDuration("HTTP_TIMEOUT", 15*time.Second),
		SubmitRedirectDelay: getEnvAsDuration("SUBMIT_REDIRECT_DELAY", 2*time.Second),
		ClientStateFile:     getEnv("CLIENT_STATE_FILE", defaultStateFile()),
		DevSeedUsername:     getEnv("DEV_SEED_USERNAME", "alex@example.com"),
		DevSeedPassword:     getEnv("DEV_SEED_PASSWORD", "password123"),
	}

	return config, nil
}

// IsDevelopment gates every dev-only path: seeded data, dev seed sessions.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wardrobe101-state.yaml"
	}
	return filepath.Join(home, ".wardrobe101", "state.yaml")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}
