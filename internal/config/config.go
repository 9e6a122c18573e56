package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Player identity and storage
	PlayerID string
	DataDir  string
	DBPath   string

	// Table limits
	MinBet          int64
	MaxBet          int64
	BetStep         int64
	StartingBalance int64

	// Table rules
	HitSoft17        bool
	DoubleAfterSplit bool
	ResplitAces      bool
	SplitAceOneCard  bool
	LateSurrender    bool
	MaxHands         int

	// Environment
	Environment string // "development" or "production"
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	dataDir := getEnvWithDefault("DATA_DIR", filepath.Join(wd, "data"))

	cfg := &Config{
		PlayerID:         getEnvWithDefault("PLAYER_ID", "local"),
		DataDir:          dataDir,
		DBPath:           getEnvWithDefault("DB_PATH", filepath.Join(dataDir, "blackjack.db")),
		MinBet:           getEnvInt64("MIN_BET", 100),
		MaxBet:           getEnvInt64("MAX_BET", 10000),
		BetStep:          getEnvInt64("BET_STEP", 100),
		StartingBalance:  getEnvInt64("STARTING_BALANCE", 100000),
		HitSoft17:        getEnvBool("HIT_SOFT_17", false),
		DoubleAfterSplit: getEnvBool("DOUBLE_AFTER_SPLIT", true),
		ResplitAces:      getEnvBool("RESPLIT_ACES", false),
		SplitAceOneCard:  getEnvBool("SPLIT_ACE_ONE_CARD", true),
		LateSurrender:    getEnvBool("LATE_SURRENDER", true),
		MaxHands:         int(getEnvInt64("MAX_HANDS", 4)),
		Environment:      getEnvWithDefault("ENVIRONMENT", "development"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// validate checks if the configuration is playable. The engine validates
// limits and rules again at construction; failing here gives the clearer
// message.
func (c *Config) validate() error {
	if c.PlayerID == "" {
		return fmt.Errorf("PLAYER_ID must not be empty")
	}
	if c.BetStep <= 0 {
		return fmt.Errorf("BET_STEP must be positive")
	}
	if c.MinBet < c.BetStep || c.MaxBet < c.MinBet {
		return fmt.Errorf("bet limits are inconsistent: min %d, max %d, step %d", c.MinBet, c.MaxBet, c.BetStep)
	}
	if c.StartingBalance < c.MinBet {
		return fmt.Errorf("STARTING_BALANCE must cover at least one minimum bet")
	}
	if c.MaxHands < 1 {
		return fmt.Errorf("MAX_HANDS must be at least 1")
	}
	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
