package config

import (
	"os"
	"strconv"
)

// Config holds the runtime settings, all read from the environment.
type Config struct {
	APIPort      string
	FeedPort     int
	Environment  string
	ReadTimeout  int
	WriteTimeout int
	CanvasWidth  int
	CanvasHeight int
	DBPath       string
	Advertise    bool
	Headless     bool
}

// Load reads the configuration from environment variables, falling back to
// defaults for anything unset or unparsable.
func Load() *Config {
	return &Config{
		APIPort:      getEnv("RECTBOARD_API_PORT", "8080"),
		FeedPort:     getEnvAsInt("RECTBOARD_FEED_PORT", 8888),
		Environment:  getEnv("RECTBOARD_ENV", "development"),
		ReadTimeout:  getEnvAsInt("RECTBOARD_READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("RECTBOARD_WRITE_TIMEOUT", 10),
		CanvasWidth:  getEnvAsInt("RECTBOARD_CANVAS_WIDTH", 1024),
		CanvasHeight: getEnvAsInt("RECTBOARD_CANVAS_HEIGHT", 768),
		DBPath:       getEnv("RECTBOARD_DB_PATH", "data/rectboard.db"),
		Advertise:    getEnvAsBool("RECTBOARD_ADVERTISE", true),
		Headless:     getEnvAsBool("RECTBOARD_HEADLESS", false),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}
