package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string

	// İş saat dilimi, UTC'den saat cinsinden sapma (ör: 3 = UTC+3).
	// Ziyaret takvimi sunucunun saat dilimine göre DEĞİL, bu değere göre üretilir.
	BusinessTZOffset int
}

func Load() *Config {
	// .env varsa yükle (local development için; production'da env direkt verilir)
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:      getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=saha port=5432 sslmode=disable"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		CORSOrigins:      getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		BusinessTZOffset: getEnvInt("BUSINESS_TZ_OFFSET", 3),
	}

	// Production güvenlik kontrolleri
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET environment değişkeni tanımlanmamış! Production için zorunludur.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET en az 32 karakter olmalıdır! Güvenlik riski.")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=saha port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN varsayılan değer kullanılıyor, production için mutlaka kendi Postgres bağlantı bilgisini tanımla.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS varsayılan değer kullanılıyor, production için mutlaka kendi domain'ini tanımla.")
	}
	if cfg.BusinessTZOffset < -12 || cfg.BusinessTZOffset > 14 {
		log.Fatalf("[FATAL] BUSINESS_TZ_OFFSET geçersiz: %d (-12..14 arası olmalı)", cfg.BusinessTZOffset)
	}

	return cfg
}

// BusinessLocation: takvim hesapları için sabit iş saat dilimi.
func (c *Config) BusinessLocation() *time.Location {
	return time.FixedZone("business", c.BusinessTZOffset*3600)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("[FATAL] %s sayı olmalı, gelen değer: %q", key, v)
	}
	return n
}
