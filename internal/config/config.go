package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Telegram (optional; notifications fall back to logging when unset)
	BotToken string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Application
	AppEnv   string
	LogLevel string

	// Queue
	QueueEnabled       bool
	QueueRetentionDays int

	// Matching
	MatchIntervalSeconds int
	MaxAgeGapYears       int

	// Scoring weights. Defaults reproduce the reference policy:
	// region 40/25/10, rank 30/20/10, age 30/25/15.
	RegionExactWeight int
	RegionSuperWeight int
	RegionBaseWeight  int
	RankCloseWeight   int
	RankNearWeight    int
	RankFarWeight     int
	AgeSameWeight     int
	AgeOneWeight      int
	AgeTwoWeight      int
	MinorSameAgeBonus int

	// SuperRegions groups fine-grained regions into buckets, e.g.
	// "west-eu=france,germany,netherlands;east-asia=japan,korea"
	SuperRegions string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		BotToken: getEnv("BOT_TOKEN", ""),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "matchmaker"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "matchmaker_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		QueueEnabled:       getEnvBool("QUEUE_ENABLED", true),
		QueueRetentionDays: getEnvInt("QUEUE_RETENTION_DAYS", 30),

		MatchIntervalSeconds: getEnvInt("MATCH_INTERVAL_SECONDS", 60),
		MaxAgeGapYears:       getEnvInt("MAX_AGE_GAP_YEARS", 2),

		RegionExactWeight: getEnvInt("REGION_EXACT_WEIGHT", 40),
		RegionSuperWeight: getEnvInt("REGION_SUPER_WEIGHT", 25),
		RegionBaseWeight:  getEnvInt("REGION_BASE_WEIGHT", 10),
		RankCloseWeight:   getEnvInt("RANK_CLOSE_WEIGHT", 30),
		RankNearWeight:    getEnvInt("RANK_NEAR_WEIGHT", 20),
		RankFarWeight:     getEnvInt("RANK_FAR_WEIGHT", 10),
		AgeSameWeight:     getEnvInt("AGE_SAME_WEIGHT", 30),
		AgeOneWeight:      getEnvInt("AGE_ONE_WEIGHT", 25),
		AgeTwoWeight:      getEnvInt("AGE_TWO_WEIGHT", 15),
		MinorSameAgeBonus: getEnvInt("MINOR_SAME_AGE_BONUS", 0),

		SuperRegions: getEnv("SUPER_REGIONS", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.MatchIntervalSeconds <= 0 {
		return fmt.Errorf("MATCH_INTERVAL_SECONDS must be positive")
	}
	if c.MaxAgeGapYears < 0 {
		return fmt.Errorf("MAX_AGE_GAP_YEARS must not be negative")
	}
	return nil
}

func (c *Config) ValidateProductionSecurity() error {
	if c.AppEnv != "production" {
		return nil
	}

	if c.DBSSLMode != "require" {
		return fmt.Errorf("DB_SSLMODE must be 'require' in production")
	}

	return nil
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) GetMatchInterval() time.Duration {
	return time.Duration(c.MatchIntervalSeconds) * time.Second
}

func (c *Config) GetRetentionWindow() time.Duration {
	return time.Duration(c.QueueRetentionDays) * 24 * time.Hour
}

// SuperRegionTable parses the SUPER_REGIONS setting into a map of
// region -> super-region bucket. Malformed fragments are skipped.
func (c *Config) SuperRegionTable() map[string]string {
	table := make(map[string]string)
	for _, group := range strings.Split(c.SuperRegions, ";") {
		parts := strings.SplitN(group, "=", 2)
		if len(parts) != 2 {
			continue
		}
		bucket := strings.TrimSpace(parts[0])
		if bucket == "" {
			continue
		}
		for _, region := range strings.Split(parts[1], ",") {
			region = strings.TrimSpace(region)
			if region != "" {
				table[region] = bucket
			}
		}
	}
	return table
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
