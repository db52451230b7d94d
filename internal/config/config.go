package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Env         string
	LogLevel    string
	DatabaseURL string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	// Load .env file if it exists (useful for local dev)
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		dsn, err := databaseURLFromParts()
		if err != nil {
			return nil, err
		}
		databaseURL = dsn
	}

	return &Config{
		ServerPort:  getenv("SERVER_PORT", "3000"),
		Env:         getenv("APP_ENV", "development"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		DatabaseURL: databaseURL,
	}, nil
}

// databaseURLFromParts builds a pgx DSN from the discrete DB_* variables.
func databaseURLFromParts() (string, error) {
	host := os.Getenv("DB_HOST")
	name := os.Getenv("DB_NAME")
	user := os.Getenv("DB_USER")
	if host == "" || name == "" || user == "" {
		return "", fmt.Errorf("DATABASE_URL or DB_HOST, DB_NAME and DB_USER must be set")
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, os.Getenv("DB_PASS")),
		Host:     host + ":" + getenv("DB_PORT", "5432"),
		Path:     "/" + name,
		RawQuery: url.Values{"sslmode": {getenv("DB_SSLMODE", "disable")}}.Encode(),
	}
	return u.String(), nil
}
