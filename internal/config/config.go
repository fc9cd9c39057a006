// internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Cache      CacheConfig
	Storage    StorageConfig
	Simulation SimulationConfig
	Engine     EngineConfig
	Log        LogConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

// DatabaseConfig selects the product/alert store. Driver "memory" keeps
// everything in process; "postgres" uses the connection fields below.
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the connection fields as a libpq keyword string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type CacheConfig struct {
	Enabled             bool
	RedisURL            string
	RedisHost           string
	RedisPort           string
	RedisPassword       string
	RedisDB             int
	DashboardTTLSeconds int
}

// StorageConfig points at the S3-compatible bucket used for report exports.
type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	ReportDir string
}

// SimulationConfig sizes the generated dataset.
type SimulationConfig struct {
	Seed          int64
	ProductCount  int
	StoreProducts int
	HistoryDays   int
	ForecastDays  int
	WeatherDays   int
	SentimentDays int
}

// EngineConfig holds the replenishment and alerting policy constants.
type EngineConfig struct {
	SafetyStockDays float64
	WeatherWeight   float64
	SocialWeight    float64
	ReorderBand     float64
	TrendingWindow  int
	TopN            int
	FactorAveraging string
}

type LogConfig struct {
	Level  string
	Format string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		v := viper.New()
		setDefaults(v)
		v.AutomaticEnv()

		instance = fromViper(v)
	})

	return instance
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_MODE", "debug")
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15)
	v.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})

	v.SetDefault("DB_DRIVER", "memory")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "inventory")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_DASHBOARD_TTL_SECONDS", 60)

	v.SetDefault("STORAGE_ENABLED", false)
	v.SetDefault("STORAGE_ENDPOINT", "localhost:9000")
	v.SetDefault("STORAGE_ACCESS_KEY", "")
	v.SetDefault("STORAGE_SECRET_KEY", "")
	v.SetDefault("STORAGE_BUCKET", "inventory-reports")
	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("STORAGE_USE_SSL", false)
	v.SetDefault("REPORT_DIR", "./data/reports")

	v.SetDefault("SIM_SEED", 42)
	v.SetDefault("SIM_PRODUCT_COUNT", 30)
	v.SetDefault("SIM_STORE_PRODUCTS", 15)
	v.SetDefault("SIM_HISTORY_DAYS", 90)
	v.SetDefault("SIM_FORECAST_DAYS", 30)
	v.SetDefault("SIM_WEATHER_DAYS", 7)
	v.SetDefault("SIM_SENTIMENT_DAYS", 30)

	v.SetDefault("ENGINE_SAFETY_STOCK_DAYS", 5.0)
	v.SetDefault("ENGINE_WEATHER_WEIGHT", 10.0)
	v.SetDefault("ENGINE_SOCIAL_WEIGHT", 15.0)
	v.SetDefault("ENGINE_REORDER_BAND", 1.2)
	v.SetDefault("ENGINE_TRENDING_WINDOW", 5)
	v.SetDefault("ENGINE_TOP_N", 5)
	v.SetDefault("ENGINE_FACTOR_AVERAGING", "total")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Mode:           v.GetString("SERVER_MODE"),
			ReadTimeout:    v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   v.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: v.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Cache: CacheConfig{
			Enabled:             v.GetBool("CACHE_ENABLED"),
			RedisURL:            v.GetString("REDIS_URL"),
			RedisHost:           v.GetString("REDIS_HOST"),
			RedisPort:           v.GetString("REDIS_PORT"),
			RedisPassword:       v.GetString("REDIS_PASSWORD"),
			RedisDB:             v.GetInt("REDIS_DB"),
			DashboardTTLSeconds: v.GetInt("CACHE_DASHBOARD_TTL_SECONDS"),
		},
		Storage: StorageConfig{
			Enabled:   v.GetBool("STORAGE_ENABLED"),
			Endpoint:  v.GetString("STORAGE_ENDPOINT"),
			AccessKey: v.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: v.GetString("STORAGE_SECRET_KEY"),
			Bucket:    v.GetString("STORAGE_BUCKET"),
			Region:    v.GetString("STORAGE_REGION"),
			UseSSL:    v.GetBool("STORAGE_USE_SSL"),
			ReportDir: v.GetString("REPORT_DIR"),
		},
		Simulation: SimulationConfig{
			Seed:          v.GetInt64("SIM_SEED"),
			ProductCount:  v.GetInt("SIM_PRODUCT_COUNT"),
			StoreProducts: v.GetInt("SIM_STORE_PRODUCTS"),
			HistoryDays:   v.GetInt("SIM_HISTORY_DAYS"),
			ForecastDays:  v.GetInt("SIM_FORECAST_DAYS"),
			WeatherDays:   v.GetInt("SIM_WEATHER_DAYS"),
			SentimentDays: v.GetInt("SIM_SENTIMENT_DAYS"),
		},
		Engine: EngineConfig{
			SafetyStockDays: v.GetFloat64("ENGINE_SAFETY_STOCK_DAYS"),
			WeatherWeight:   v.GetFloat64("ENGINE_WEATHER_WEIGHT"),
			SocialWeight:    v.GetFloat64("ENGINE_SOCIAL_WEIGHT"),
			ReorderBand:     v.GetFloat64("ENGINE_REORDER_BAND"),
			TrendingWindow:  v.GetInt("ENGINE_TRENDING_WINDOW"),
			TopN:            v.GetInt("ENGINE_TOP_N"),
			FactorAveraging: strings.ToLower(v.GetString("ENGINE_FACTOR_AVERAGING")),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
}

// Fresh builds a Config from the current environment without touching the
// process-wide instance. Used by the CLI and tests.
func Fresh() *Config {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return fromViper(v)
}
