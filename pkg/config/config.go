package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel string
	HTTPPort string

	// Provider WebSocket endpoint
	WSURL     string
	APIKey    string
	APISecret string

	// WebSocket transport tuning
	WSDialTimeout       time.Duration
	WSPongTimeout       time.Duration
	WSPingInterval      time.Duration
	WSMessageBufferSize int

	// Reconnect policy
	ReconnectPolicyName   string // "default", "aggressive", "conservative", "disabled"
	ReconnectInitialDelay time.Duration
	ReconnectMaxDelay     time.Duration
	ReconnectBackoffMult  float64
	ReconnectMaxAttempts  int

	// Order-book integrity monitor
	IntegrityEnabled             bool
	IntegrityCheckInterval       time.Duration
	IntegrityConsecutiveFailThreshold int

	// Channel-parameter cache
	ChannelCacheMaxItems int64
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		HTTPPort: getEnvOrDefault("HTTP_PORT", "8080"),

		WSURL:     getEnvOrDefault("KRAKEN_WS_URL", "wss://ws.kraken.com/v2"),
		APIKey:    os.Getenv("KRAKEN_API_KEY"),
		APISecret: os.Getenv("KRAKEN_API_SECRET"),

		WSDialTimeout:       getDurationOrDefault("WS_DIAL_TIMEOUT", 10*time.Second),
		WSPongTimeout:       getDurationOrDefault("WS_PONG_TIMEOUT", 15*time.Second),
		WSPingInterval:      getDurationOrDefault("WS_PING_INTERVAL", 30*time.Second),
		WSMessageBufferSize: getIntOrDefault("WS_MESSAGE_BUFFER_SIZE", 1000),

		ReconnectPolicyName:   getEnvOrDefault("RECONNECT_POLICY", "default"),
		ReconnectInitialDelay: getDurationOrDefault("RECONNECT_INITIAL_DELAY", 500*time.Millisecond),
		ReconnectMaxDelay:     getDurationOrDefault("RECONNECT_MAX_DELAY", 30*time.Second),
		ReconnectBackoffMult:  getFloat64OrDefault("RECONNECT_BACKOFF_MULTIPLIER", 2.0),
		ReconnectMaxAttempts:  getIntOrDefault("RECONNECT_MAX_ATTEMPTS", 0),

		IntegrityEnabled:                  getBoolOrDefault("INTEGRITY_ENABLED", true),
		IntegrityCheckInterval:            getDurationOrDefault("INTEGRITY_CHECK_INTERVAL", 5*time.Second),
		IntegrityConsecutiveFailThreshold: getIntOrDefault("INTEGRITY_CONSECUTIVE_FAIL_THRESHOLD", 3),

		ChannelCacheMaxItems: int64(getIntOrDefault("CHANNEL_CACHE_MAX_ITEMS", 10_000)),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return errors.New("HTTP_PORT cannot be empty")
	}
	if c.WSURL == "" {
		return errors.New("KRAKEN_WS_URL cannot be empty")
	}

	switch c.ReconnectPolicyName {
	case "default", "aggressive", "conservative", "disabled":
	default:
		return fmt.Errorf("RECONNECT_POLICY must be one of default/aggressive/conservative/disabled, got %q", c.ReconnectPolicyName)
	}

	if c.WSMessageBufferSize < 1 {
		return fmt.Errorf("WS_MESSAGE_BUFFER_SIZE must be at least 1, got %d", c.WSMessageBufferSize)
	}

	if c.ReconnectMaxAttempts < 0 {
		return fmt.Errorf("RECONNECT_MAX_ATTEMPTS must be non-negative, got %d", c.ReconnectMaxAttempts)
	}

	if c.IntegrityConsecutiveFailThreshold < 1 {
		return fmt.Errorf("INTEGRITY_CONSECUTIVE_FAIL_THRESHOLD must be at least 1, got %d", c.IntegrityConsecutiveFailThreshold)
	}

	return nil
}

// HasCredentials reports whether API key/secret were configured, which
// gates whether private channels and trading commands are usable.
func (c *Config) HasCredentials() bool {
	return c.APIKey != "" && c.APISecret != ""
}

func getEnvOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getFloat64OrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	floatVal, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}

	return floatVal
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolVal
}
