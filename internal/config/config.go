// Package config reads server settings from the environment.
//
// Values come from process environment variables. LoadDotEnv additionally
// reads an optional .env file in the working directory; variables already
// set in the environment take precedence over the file.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ironsheep/image-encodings-mcp/internal/rosmsg"
)

// Environment variable names.
const (
	EnvLogLevel        = "IMAGE_ENCODINGS_LOG_LEVEL"
	EnvMaxMessageBytes = "IMAGE_ENCODINGS_MAX_MESSAGE_BYTES"
)

// Config holds runtime settings shared by the server and the CLI.
type Config struct {
	// LogLevel is "info" or "debug".
	LogLevel string

	// MaxMessageBytes bounds the size of a serialized image read from disk.
	MaxMessageBytes int
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

// LoadDotEnv loads .env if present. A missing file is not an error.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// Load builds a Config from the environment, applying defaults for unset
// or invalid values.
func Load() *Config {
	level := strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogLevel)))
	if level != "debug" {
		level = "info"
	}

	return &Config{
		LogLevel:        level,
		MaxMessageBytes: envInt(EnvMaxMessageBytes, rosmsg.DefaultMaxMessageBytes),
	}
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}
