package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is the development signing secret. Rejected when Env is "prod".
const DefaultJWTSecret = "assignment-3"

type Config struct {
	Port string

	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	JWTSecret string

	// Env is "dev" (default) or "prod". When "prod", JWT_SECRET must be set and not the default.
	Env string

	// ModelPath points at the JSON model artifact used by the prediction page.
	ModelPath string

	// ModelReloadCron is a cron expression (e.g. "@every 10m") for re-reading the model artifact.
	// Empty disables reloading.
	ModelReloadCron string

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json".
	LogFormat string
	// LogLevel is debug, info (default), warn or error.
	LogLevel string
}

// Load reads configuration from the environment. A .env file in the working
// directory, when present, is applied first without overriding set variables.
func Load() Config {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	return Config{
		Port: getEnv("PORT", "8080"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBName: getEnv("DB_NAME", "loanpredictiondb"),
		DBUser: getEnv("DB_USER", "loanuser"),
		DBPass: getEnv("DB_PASS", "loanpass"),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		JWTSecret: getEnv("JWT_SECRET", DefaultJWTSecret),
		Env:       getEnv("ENV", "dev"),

		ModelPath:       getEnv("MODEL_PATH", "model/loan_model.json"),
		ModelReloadCron: getEnv("MODEL_RELOAD_CRON", ""),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFormat: getEnv("LOG_FORMAT", "text"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}
}

// Validate reports settings that must not reach production.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.Env == "prod" && c.JWTSecret == DefaultJWTSecret {
		return errors.New("JWT_SECRET must be set to a non-default value when ENV=prod")
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	return nil
}

// TLSEnabled reports whether both certificate and key are configured.
func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// DatabaseURL renders the postgres URL used by the migrator.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// String masks the database password and signing secret.
func (c Config) String() string {
	return fmt.Sprintf("Config{Port: %s, DB: %s@%s:%s/%s, Env: %s, Model: %s, Secret: ***}",
		c.Port, c.DBUser, c.DBHost, c.DBPort, c.DBName, c.Env, c.ModelPath)
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
