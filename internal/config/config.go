package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                  string
	DBDSN                 string
	LogFile               string
	JWTSecret             string
	TokenTTLMinutes       int
	CartHoldMinutes       int
	ShippingFee           float64
	FreeShippingThreshold float64
}

func Load() Config {
	// .env is optional; deployments set real env vars.
	_ = godotenv.Load()

	cfg := Config{
		Port:                  getEnv("PORT", "8080"),
		DBDSN:                 getEnv("DB_DSN", "rewear.db"),
		LogFile:               getEnv("LOG_FILE", ""),
		JWTSecret:             getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTLMinutes:       getEnvInt("TOKEN_TTL_MINUTES", 12*60),
		CartHoldMinutes:       getEnvInt("CART_HOLD_MINUTES", 30),
		ShippingFee:           getEnvFloat("SHIPPING_FEE", 4.90),
		FreeShippingThreshold: getEnvFloat("FREE_SHIPPING_THRESHOLD", 75),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s CART_HOLD_MINUTES=%d", cfg.Port, cfg.DBDSN, cfg.CartHoldMinutes)
	return cfg
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
		log.Printf("[config] %s: not an integer, using default %d", key, def)
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("[config] %s: not a number, using default %v", key, def)
	}
	return def
}
