package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Backend (same origin serves API routes and uploaded assets)
	BaseURL string

	// Auth
	TokenCookieName string

	// HTTP
	Timeout    time.Duration
	MaxWorkers int

	// Price display locale (BCP 47), e.g. "de-DE" or "es-AR"
	DisplayLocale string
}

func Load() Config {
	// .env is optional; real env vars win.
	_ = godotenv.Load()

	return Config{
		BaseURL:         getenv("MARKET_BASE_URL", "http://localhost:3000"),
		TokenCookieName: getenv("MARKET_TOKEN_COOKIE", "token"),
		Timeout:         time.Duration(getenvInt("MARKET_HTTP_TIMEOUT_SECONDS", 120)) * time.Second,
		MaxWorkers:      getenvInt("MARKET_MAX_WORKERS", 10),
		DisplayLocale:   getenv("MARKET_DISPLAY_LOCALE", "de-DE"),
	}
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
