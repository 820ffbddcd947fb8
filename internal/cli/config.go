package cli

import (
	"os"
)

// Config holds CLI configuration
type Config struct {
	ServerURL   string
	AdminSecret string
	Output      string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:   getEnvOrDefault("TONDROP_SERVER", "http://localhost:8080"),
		AdminSecret: os.Getenv("TONDROP_ADMIN_SECRET"),
		Output:      "text",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
