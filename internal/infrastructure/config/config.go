// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Metrics
	MetricsNamespace string

	// Action log sinks
	ActionLogFile string
	SinkTimeout   time.Duration

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// PostgreSQL
	PostgresURI string

	// Redis
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisActionKey string

	// RabbitMQ
	AMQPURL      string
	AMQPExchange string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MetricsNamespace: getEnv("METRICS_NAMESPACE", "flightdesk"),

		ActionLogFile: getEnvAllowEmpty("ACTION_LOG_FILE", "logfile.txt"),
		SinkTimeout:   time.Duration(getEnvAsPositiveInt("SINK_TIMEOUT", 5)) * time.Second,

		MongoURI:      getEnv("MONGODB_DSN", ""),
		MongoDB:       getEnv("MONGO_DB", "flightdesk"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),
		RedisActionKey: getEnv("REDIS_ACTION_KEY", "flightdesk:actions"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "flightdesk.events"),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAllowEmpty returns the default only when key is unset, so an
// explicitly empty value can switch a feature off.
func getEnvAllowEmpty(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsPositiveInt falls back to the default for zero or negative values
func getEnvAsPositiveInt(key string, defaultValue int) int {
	if value := getEnvAsInt(key, defaultValue); value > 0 {
		return value
	}
	return defaultValue
}
