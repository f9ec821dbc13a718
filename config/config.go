package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	BusinessName      string `mapstructure:"BUSINESS_NAME"`

	// Session storage: "memory" or "redis".
	SessionBackend    string `mapstructure:"SESSION_BACKEND"`
	SessionTTLMinutes int    `mapstructure:"SESSION_TTL_MINUTES"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// Admin API.
	AdminJWTSecret string `mapstructure:"ADMIN_JWT_SECRET"`

	// Catalog seeding and upkeep.
	CatalogDays                int   `mapstructure:"CATALOG_DAYS"`
	CatalogSeed                int64 `mapstructure:"CATALOG_SEED"`
	SlotRefreshIntervalMinutes int   `mapstructure:"SLOT_REFRESH_INTERVAL_MINUTES"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("BUSINESS_NAME", "Jusbook")
	v.SetDefault("SESSION_BACKEND", "memory")
	v.SetDefault("SESSION_TTL_MINUTES", 0)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_SESSION_DB", 0)
	v.SetDefault("ADMIN_JWT_SECRET", "")
	v.SetDefault("CATALOG_DAYS", 14)
	v.SetDefault("CATALOG_SEED", 0)
	v.SetDefault("SLOT_REFRESH_INTERVAL_MINUTES", 60)
}

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// SessionTTL is zero when sessions never expire.
func (c Config) SessionTTL() time.Duration {
	if c.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// SlotRefreshInterval falls back to an hour when unset.
func (c Config) SlotRefreshInterval() time.Duration {
	if c.SlotRefreshIntervalMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.SlotRefreshIntervalMinutes) * time.Minute
}
