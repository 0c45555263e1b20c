package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string
	WordListDir    string
	TrashDir       string
	SpeechBinary   string
	AdminFile      string
	TokenSecret    string
	TokenDuration  time.Duration
	AWSRegion      string
	ReportFrom     string
	ReportFromName string
	ReportTo       string
}

// Load reads configuration from the environment with sensible defaults.
// A .env file next to the binary is honoured when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./spellingaid.db"),
		DatabaseURL:    getEnv("DB_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		WordListDir:    getEnv("WORDLIST_DIR", "./wordlists"),
		TrashDir:       getEnv("TRASH_DIR", "./trash"),
		SpeechBinary:   getEnv("SPEECH_BINARY", "festival"),
		AdminFile:      getEnv("ADMIN_FILE", ".config"),
		TokenSecret:    getEnv("TOKEN_SECRET", "spellathon-dev-secret"),
		TokenDuration:  30 * time.Minute,
		AWSRegion:      getEnv("AWS_REGION", "eu-west-1"),
		ReportFrom:     getEnv("REPORT_FROM_EMAIL", ""),
		ReportFromName: getEnv("REPORT_FROM_NAME", "Spellathon"),
		ReportTo:       getEnv("REPORT_TO_EMAIL", ""),
	}
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
