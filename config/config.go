package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	BaseURL  string
	AuthUser string
	AuthPass string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	DaysAhead           int
	MaxConcurrency      int
	RateLimitMs         int
	MaxRetries          int
	StableViewTimeoutMs int

	CSVOutputPath string
	ChromeBin     string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		BaseURL:  getEnv("BASE_URL", "https://backend.bam-karaokebox.com/index.php/login_backend?utm_source=bkb-website-tests&utm_medium=qa-bot&utm_campaign=monitoring"),
		AuthUser: getEnv("AUTH_USER_BACK", ""),
		AuthPass: getEnv("AUTH_PASS_BACK", ""),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "pricewatch"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "pricewatch123"),
		PostgresDB:       getEnv("POSTGRES_DB", "pricewatch_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		DaysAhead:           getEnvInt("DAYS_AHEAD", 60),
		MaxConcurrency:      getEnvInt("MAX_CONCURRENCY", 4),
		RateLimitMs:         getEnvInt("RATE_LIMIT_MS", 1000),
		MaxRetries:          getEnvInt("MAX_RETRIES", 3),
		StableViewTimeoutMs: getEnvInt("STABLE_VIEW_TIMEOUT_MS", 30000),

		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./PriceCSV/backoffice-prices.csv"),
		ChromeBin:     getEnv("CHROME_BIN", ""),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
