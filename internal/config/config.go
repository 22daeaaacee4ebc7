package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	HTTPPort          string
	DatabaseDSN       string
	CORSOrigins       string
	DefaultLocID      string // Terminalin bağlı olduğu satış noktası (ör: POS00001)
	LowStockThreshold int    // Düşük stok raporu için varsayılan eşik
	PostingTimeoutSec int    // Belge kayıt işlemi için transaction zaman aşımı
	LogLevel          string
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:       getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=pos port=5432 sslmode=disable"),
		CORSOrigins:       getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		DefaultLocID:      getEnv("DEFAULT_LOC_ID", "POS00001"),
		LowStockThreshold: getEnvInt("LOW_STOCK_THRESHOLD", 10),
		PostingTimeoutSec: getEnvInt("POSTING_TIMEOUT_SEC", 15),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}

	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=pos port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN varsayılan değer kullanılıyor, production için mutlaka kendi Postgres bağlantı bilgisini tanımla.")
	}
	if cfg.CORSOrigins == "http://localhost:3000" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS varsayılan değer kullanılıyor, production için mutlaka kendi domain'ini tanımla.")
	}

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
		log.Printf("[WARN] %s sayı değil, varsayılan kullanılıyor: %d", key, def)
	}
	return def
}
