package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Config struct {
	Port     string
	DBDriver string
	DBDSN    string

	SlackToken string
	Hostname   string

	Timezone          string
	OrderCutoffHour   int
	OrderCutoffSecond int

	ReminderWorkers int
	ReminderQueue   int
}

// Load reads configuration from the environment, after loading .env when
// present. Every value has a development default except the Slack token.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:              getEnv("PORT", "8080"),
		DBDriver:          getEnv("DB_DRIVER", "sqlite"),
		DBDSN:             getEnv("DB_DSN", "mealshop.db"),
		SlackToken:        getEnv("SLACK_TOKEN", ""),
		Hostname:          getEnv("HOSTNAME", "http://localhost:8080"),
		Timezone:          getEnv("MEALSHOP_TZ", "America/Santiago"),
		OrderCutoffHour:   getEnvInt("ORDER_CUTOFF_HOUR", 11),
		OrderCutoffSecond: getEnvInt("ORDER_CUTOFF_SECOND", 0),
		ReminderWorkers:   getEnvInt("REMINDER_WORKERS", 5),
		ReminderQueue:     getEnvInt("REMINDER_QUEUE", 64),
	}
}

// Location resolves the configured time zone. All ordering windows are
// computed in this zone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "mysql":
		return gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(cfg.DBDSN), &gorm.Config{})
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
