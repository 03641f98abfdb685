package configs

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

var (
	JWTSecret        string
	JWTRefreshSecret string
	AppEnv           string
	CurrencySymbol   string

	// BaseRent is the fixed monthly rent every payment starts from.
	BaseRent = decimal.RequireFromString("1350.00")
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ .env not found, using system ENV")
		} else {
			log.Println("✅ .env loaded")
		}
	} else {
		log.Println("🚀 Running in Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")
	AppEnv = GetEnv("APP_ENV", "development")
	CurrencySymbol = GetEnv("CURRENCY_SYMBOL", "₱")

	if v := strings.TrimSpace(GetEnv("BASE_RENT")); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && !d.IsNegative() {
			BaseRent = d.Round(2)
		} else {
			log.Printf("❌ BASE_RENT %q invalid, keeping %s", v, BaseRent.StringFixed(2))
		}
	}

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	}
	if JWTRefreshSecret == "" {
		log.Println("❌ JWT_REFRESH_SECRET is not set!")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func IsProduction() bool {
	return strings.EqualFold(AppEnv, "production")
}
