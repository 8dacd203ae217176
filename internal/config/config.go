package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/cesargomez89/albumdays/internal/constants"
)

// Config holds all application configuration
type Config struct {
	Port           string
	DBPath         string
	MusicBrainzURL string
	MinMinutes     float64
	PauseSeconds   float64
	HorizonDays    int
	LogLevel       string
	LogFormat      string
	TelegramToken  string
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	home, _ := homedir.Dir()
	defaultDBPath := filepath.Join(home, constants.DefaultDataDirName, constants.DefaultDBName)

	return &Config{
		Port:           getEnv("PORT", constants.DefaultPort),
		DBPath:         getEnv("DB_PATH", defaultDBPath),
		MusicBrainzURL: getEnv("MUSICBRAINZ_URL", constants.DefaultMusicBrainzURL),
		MinMinutes:     getEnvFloat("MIN_MINUTES", constants.DefaultMinMinutes),
		PauseSeconds:   getEnvFloat("LOOKUP_PAUSE", constants.DefaultLookupPause.Seconds()),
		HorizonDays:    getEnvInt("HORIZON_DAYS", constants.DefaultHorizonDays),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		TelegramToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
	}
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	if c.Port == "" {
		errors = append(errors, "PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
		}
	}

	if c.DBPath == "" {
		errors = append(errors, "DB_PATH cannot be empty")
	}

	if c.MusicBrainzURL == "" {
		errors = append(errors, "MUSICBRAINZ_URL cannot be empty")
	} else {
		if _, err := url.Parse(c.MusicBrainzURL); err != nil {
			errors = append(errors, fmt.Sprintf("MUSICBRAINZ_URL is not a valid URL: %s", c.MusicBrainzURL))
		}
	}

	if c.MinMinutes < 0 {
		errors = append(errors, fmt.Sprintf("MIN_MINUTES cannot be negative, got: %v", c.MinMinutes))
	}

	if c.PauseSeconds < 0 {
		errors = append(errors, fmt.Sprintf("LOOKUP_PAUSE cannot be negative, got: %v", c.PauseSeconds))
	}

	if c.HorizonDays < 0 {
		errors = append(errors, fmt.Sprintf("HORIZON_DAYS cannot be negative, got: %d", c.HorizonDays))
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// EnsureDataDir creates the directory holding the database file.
func (c *Config) EnsureDataDir() error {
	dir := filepath.Dir(c.DBPath)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, constants.DirPermissions)
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
