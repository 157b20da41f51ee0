package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string
	ServerPort string
	LogMode    string

	AuthIssuer       string
	AuthAudience     string
	AuthHS256Secret  string
	AuthRSAPublicKey string

	SeedCategories bool
	ResetDrinks    bool

	Environment     string
	OtelEnabled     bool
	OtelEndpoint    string
	OtelHeaders     string
	OtelInsecure    bool
	OtelSampleRatio float64
}

// Load reads an optional .env file and then the process environment.
// defaultPort is the listen port used when SERVER_PORT is unset, so the
// trivia and coffee processes can share one .env.
func Load(defaultPort string) *Config {
	_ = godotenv.Load()

	return &Config{
		DBDriver:         strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "postgres"),
		DBPassword:       getEnv("DB_PASSWORD", "postgres"),
		DBName:           getEnv("DB_NAME", "trivia"),
		DBSSLMode:        getEnv("DB_SSLMODE", "disable"),
		SQLitePath:       getEnv("SQLITE_PATH", "database.db"),
		ServerPort:       getEnv("SERVER_PORT", defaultPort),
		LogMode:          getEnv("LOG_MODE", "dev"),
		AuthIssuer:       getEnv("AUTH_ISSUER", ""),
		AuthAudience:     getEnv("AUTH_AUDIENCE", ""),
		AuthHS256Secret:  getEnv("AUTH_HS256_SECRET", ""),
		AuthRSAPublicKey: getEnv("AUTH_RSA_PUBLIC_KEY", ""),
		SeedCategories:   getBool("SEED_CATEGORIES", true),
		ResetDrinks:      getBool("RESET_DRINKS", false),
		Environment:      getEnv("APP_ENV", "development"),
		OtelEnabled:      getBool("OTEL_ENABLED", false),
		OtelEndpoint:     strings.TrimSpace(getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "")),
		OtelHeaders:      getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
		OtelInsecure:     getBool("OTEL_EXPORTER_OTLP_INSECURE", false),
		OtelSampleRatio:  getFloat("OTEL_SAMPLER_RATIO", 0.1),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}

func getFloat(key string, fallback float64) float64 {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return f
}
