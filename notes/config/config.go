package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DBDriver   string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBSSLMode  string
	DBPath     string

	HTTPAddr       string
	APIPrefix      string
	CORSOrigins    []string
	RequestTimeout time.Duration

	LogDir string
}

var defaults = map[string]any{
	"DB_DRIVER":            "postgres",
	"DB_HOST":              "localhost",
	"DB_PORT":              "5432",
	"DB_USER":              "postgres",
	"DB_PASSWORD":          "",
	"DB_NAME":              "notes",
	"DB_SSLMODE":           "disable",
	"DB_PATH":              "notes.db",
	"HTTP_ADDR":            ":8000",
	"API_PREFIX":           "/api",
	"CORS_ALLOWED_ORIGINS": "*",
	"REQUEST_TIMEOUT":      "60s",
	"LOG_DIR":              "./logs",
}

// LoadConfig reads the process environment, after merging in a .env file
// from the working directory when one exists. Variables already set in the
// environment win over .env entries.
func LoadConfig() Config {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	timeout := v.GetDuration("REQUEST_TIMEOUT")
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return Config{
		DBDriver:       strings.ToLower(v.GetString("DB_DRIVER")),
		DBUser:         v.GetString("DB_USER"),
		DBPassword:     v.GetString("DB_PASSWORD"),
		DBHost:         v.GetString("DB_HOST"),
		DBPort:         v.GetString("DB_PORT"),
		DBName:         v.GetString("DB_NAME"),
		DBSSLMode:      v.GetString("DB_SSLMODE"),
		DBPath:         v.GetString("DB_PATH"),
		HTTPAddr:       v.GetString("HTTP_ADDR"),
		APIPrefix:      normalizePrefix(v.GetString("API_PREFIX")),
		CORSOrigins:    splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RequestTimeout: timeout,
		LogDir:         v.GetString("LOG_DIR"),
	}
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return "/"
	}
	return "/" + prefix
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
