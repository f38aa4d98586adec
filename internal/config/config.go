// internal/config/config.go
package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Stock period policies. See STOCK_PERIOD_POLICY.
const (
	StockCarryForward = "carry_forward"
	StockMonthlyReset = "monthly_reset"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Storage  StorageConfig
	MQTT     MQTTConfig
	Plant    PlantConfig
	Report   ReportConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	LogLevel       string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	URL      string
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
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

// StorageConfig points at an S3-compatible bucket used to archive exported reports.
type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

type MQTTConfig struct {
	Broker   string
	Topic    string
	ClientID string
	Username string
	Password string
	QoS      int
}

type PlantConfig struct {
	Name                 string
	CapacityM3H          float64
	ComplianceWindowDays int
	ScheduleDaysAhead    int
	StockPeriodPolicy    string
	Operators            []string
}

type ReportConfig struct {
	OutputDir string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("LOG_LEVEL", "info")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 30)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DATABASE_URL", "")
		viper.SetDefault("DB_DRIVER", "postgres")
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "ro_plant")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("DB_MAX_CONNS", 10)
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_DASHBOARD_TTL_SECONDS", 60)
		viper.SetDefault("STORAGE_ENABLED", false)
		viper.SetDefault("STORAGE_ENDPOINT", "localhost:9000")
		viper.SetDefault("STORAGE_ACCESS_KEY", "")
		viper.SetDefault("STORAGE_SECRET_KEY", "")
		viper.SetDefault("STORAGE_BUCKET", "ro-reports")
		viper.SetDefault("STORAGE_REGION", "us-east-1")
		viper.SetDefault("STORAGE_USE_SSL", false)
		viper.SetDefault("MQTT_BROKER", "tcp://localhost:1883")
		viper.SetDefault("MQTT_TOPIC", "ro/flowmeter")
		viper.SetDefault("MQTT_CLIENT_ID", "")
		viper.SetDefault("MQTT_USERNAME", "")
		viper.SetDefault("MQTT_PASSWORD", "")
		viper.SetDefault("MQTT_QOS", 1)
		viper.SetDefault("PLANT_NAME", "RO System - Um Qasr Port")
		viper.SetDefault("PLANT_CAPACITY_M3H", 10.0)
		viper.SetDefault("COMPLIANCE_WINDOW_DAYS", 30)
		viper.SetDefault("SCHEDULE_DAYS_AHEAD", 90)
		viper.SetDefault("STOCK_PERIOD_POLICY", StockCarryForward)
		viper.SetDefault("OPERATORS", []string{})
		viper.SetDefault("REPORT_OUTPUT_DIR", "./data/reports")

		// Read from environment variables
		viper.AutomaticEnv()

		ensureDir(viper.GetString("REPORT_OUTPUT_DIR"))

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				LogLevel:       viper.GetString("LOG_LEVEL"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				URL:      viper.GetString("DATABASE_URL"),
				Driver:   viper.GetString("DB_DRIVER"),
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
				MaxConns: viper.GetInt("DB_MAX_CONNS"),
			},
			Cache: CacheConfig{
				Enabled:             viper.GetBool("CACHE_ENABLED"),
				RedisURL:            viper.GetString("REDIS_URL"),
				RedisHost:           viper.GetString("REDIS_HOST"),
				RedisPort:           viper.GetString("REDIS_PORT"),
				RedisPassword:       viper.GetString("REDIS_PASSWORD"),
				RedisDB:             viper.GetInt("REDIS_DB"),
				DashboardTTLSeconds: viper.GetInt("CACHE_DASHBOARD_TTL_SECONDS"),
			},
			Storage: StorageConfig{
				Enabled:   viper.GetBool("STORAGE_ENABLED"),
				Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
				AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
				SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
				Bucket:    viper.GetString("STORAGE_BUCKET"),
				Region:    viper.GetString("STORAGE_REGION"),
				UseSSL:    viper.GetBool("STORAGE_USE_SSL"),
			},
			MQTT: MQTTConfig{
				Broker:   viper.GetString("MQTT_BROKER"),
				Topic:    viper.GetString("MQTT_TOPIC"),
				ClientID: viper.GetString("MQTT_CLIENT_ID"),
				Username: viper.GetString("MQTT_USERNAME"),
				Password: viper.GetString("MQTT_PASSWORD"),
				QoS:      viper.GetInt("MQTT_QOS"),
			},
			Plant: PlantConfig{
				Name:                 viper.GetString("PLANT_NAME"),
				CapacityM3H:          viper.GetFloat64("PLANT_CAPACITY_M3H"),
				ComplianceWindowDays: viper.GetInt("COMPLIANCE_WINDOW_DAYS"),
				ScheduleDaysAhead:    viper.GetInt("SCHEDULE_DAYS_AHEAD"),
				StockPeriodPolicy:    normalizePolicy(viper.GetString("STOCK_PERIOD_POLICY")),
				Operators:            splitList(viper.GetStringSlice("OPERATORS")),
			},
			Report: ReportConfig{
				OutputDir: viper.GetString("REPORT_OUTPUT_DIR"),
			},
		}
	})

	return instance
}

// DSN returns the connection string for the persistence backend. DATABASE_URL
// wins when set; otherwise it is assembled from the DB_* parts.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%s", c.Host, c.Port),
		Path:   "/" + c.DBName,
	}
	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// MonthlyReset reports whether chemical balances restart at zero every calendar month.
func (p PlantConfig) MonthlyReset() bool {
	return p.StockPeriodPolicy == StockMonthlyReset
}

func normalizePolicy(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case StockMonthlyReset:
		return StockMonthlyReset
	case "", StockCarryForward:
		return StockCarryForward
	default:
		log.Printf("unknown STOCK_PERIOD_POLICY %q, using %s", v, StockCarryForward)
		return StockCarryForward
	}
}

// splitList accepts both repeated values and a single comma separated value.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

func ensureDir(dir string) {
	if dir == "" {
		return
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}
