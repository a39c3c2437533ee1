package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the kiosk agent
type Config struct {
	// Server configuration (loopback UI API)
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int

	// Order backend bridge
	Bridge BridgeConfig

	// Redis configuration (menu snapshot cache)
	Redis RedisConfig

	// Kiosk flow timing budgets
	Kiosk KioskConfig

	// Logging
	LogLevel string
}

// BridgeConfig holds the RPC bridge connection settings
type BridgeConfig struct {
	BaseURL      string
	CallTimeout  time.Duration
	ReadyPoll    time.Duration
	ReadyTimeout time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string

	// Menu snapshot TTL
	MenuTTL time.Duration
}

// KioskConfig holds the fixed timing budgets of the ordering flow.
// These are configuration constants, not negotiated at runtime.
type KioskConfig struct {
	IdleTimeout    time.Duration // total idle budget on ordering pages
	WarnDuration   time.Duration // visible countdown before expiry
	TouchCooldown  time.Duration // heartbeat throttle window
	PaymentTimeout time.Duration // unpaid order budget on payment screens
	ReceiptReturn  time.Duration // receipt screen auto-return
	TickInterval   time.Duration // countdown tick resolution
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8090"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB

		// Bridge configuration
		Bridge: BridgeConfig{
			BaseURL:      getEnv("BRIDGE_BASE_URL", "http://localhost:8080"),
			CallTimeout:  getDurationEnv("BRIDGE_CALL_TIMEOUT", 10*time.Second),
			ReadyPoll:    getDurationEnv("BRIDGE_READY_POLL", 2*time.Second),
			ReadyTimeout: getDurationEnv("BRIDGE_READY_TIMEOUT", 60*time.Second),
		},

		// Redis configuration
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
			MenuTTL:  getDurationEnv("REDIS_MENU_TTL", 5*time.Minute),
		},

		// Kiosk timing budgets (idle 7m with a 10s warning, 500ms heartbeat
		// cooldown, 3m payment window, 15s receipt auto-return)
		Kiosk: KioskConfig{
			IdleTimeout:    getDurationEnv("KIOSK_IDLE_TIMEOUT", 7*time.Minute),
			WarnDuration:   getDurationEnv("KIOSK_WARN_DURATION", 10*time.Second),
			TouchCooldown:  getDurationEnv("KIOSK_TOUCH_COOLDOWN", 500*time.Millisecond),
			PaymentTimeout: getDurationEnv("KIOSK_PAYMENT_TIMEOUT", 180*time.Second),
			ReceiptReturn:  getDurationEnv("KIOSK_RECEIPT_RETURN", 15*time.Second),
			TickInterval:   getDurationEnv("KIOSK_TICK_INTERVAL", time.Second),
		},

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}

	// Build composite values
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}
