package config

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

var (
	v    *viper.Viper
	once sync.Once
)

var defaults = map[string]any{
	"PORT":                   "3000",
	"JWT_TTL":                "72h",
	"ADMIN_FULL_NAME":        "Administrator",
	"EMAIL_SENDER_NAME":      "Edu Cooperative",
	"TIME_ZONE":              "UTC",
	"TUTORING_RATE":          "100",
	"IT_HOURLY_RATE":         "120",
	"MONTHLY_HOUR_CAP":       "8",
	"OVERPAYMENT_POLICY":     "allow",
	"LOCK_FINALIZED_REPORTS": false,
	"STRICT_MONTH_PARSING":   true,
	"ENABLE_JOBS":            true,
	"CACHE_TTL":              "5m",
}

func load() {
	once.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("Warning: .env file not found, reading from system environment variables")
		}
		v = viper.New()
		for key, value := range defaults {
			v.SetDefault(key, value)
		}
		v.AutomaticEnv()
	})
}

// Config returns the raw string value for key. Environment variables win
// over .env entries, which win over the built-in defaults.
func Config(key string) string {
	load()
	return strings.TrimSpace(v.GetString(key))
}

func Int(key string) int {
	load()
	return v.GetInt(key)
}

func Bool(key string) bool {
	load()
	return v.GetBool(key)
}

func Duration(key string) time.Duration {
	load()
	return v.GetDuration(key)
}

// Decimal parses key as a decimal, falling back to the default when the
// configured value is malformed.
func Decimal(key string) decimal.Decimal {
	load()
	d, err := decimal.NewFromString(Config(key))
	if err == nil {
		return d
	}
	log.Printf("⚠️ Invalid decimal for %s, using default", key)
	if def, ok := defaults[key].(string); ok {
		return decimal.RequireFromString(def)
	}
	return decimal.Zero
}
