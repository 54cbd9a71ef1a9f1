// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, .env dosyasını da destekler.
//
// Config struct'ı tüm ayarları tek bir yerde toplar, böylece
// her yerde ayrı ayrı os.Getenv() çağırmak yerine tek bir Config nesnesi taşırız.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Rate limit backend isimleri (RATE_LIMIT_BACKEND).
const (
	RateLimitMemory = "memory"
	RateLimitRedis  = "redis"
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
// Her alt bölüm ayrı bir struct: her struct tek bir concern'ü temsil eder.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host string
	Port int
	// TrustProxy true ise client IP'si X-Forwarded-For'dan okunur.
	// Sadece güvenilir bir reverse proxy arkasında açılmalı.
	TrustProxy bool
}

// DatabaseConfig, credential store ayarları.
type DatabaseConfig struct {
	Driver string // "sqlite" | "postgres"
	Path   string // SQLite dosya yolu (ör: ./data/kushauth.db)
	URL    string // PostgreSQL DSN: driver postgres ise zorunlu
}

// JWTConfig, session token ayarları.
type JWTConfig struct {
	Secret string // Token imzalama anahtarı: GİZLİ TUTULMALI
	Expiry time.Duration
}

// AuthConfig, şifre hash ayarları.
type AuthConfig struct {
	BcryptCost int
}

// RateLimitConfig, /api/auth/ grubu için kota.
type RateLimitConfig struct {
	Backend string // "memory" | "redis"
	Max     int
	Window  time.Duration
}

// RedisConfig, RATE_LIMIT_BACKEND=redis iken kullanılır.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CORSConfig, izin verilen frontend origin'leri.
type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig, logrus ayarları.
type LogConfig struct {
	Level  string
	Format string // "text" | "json"
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler (development kolaylığı için).
func Load() (*Config, error) {
	// .env dosyasını yükle: dosya yoksa hata vermez, sessizce devam eder.
	// Production'da bu dosya olmaz, gerçek env variable'lar kullanılır.
	_ = godotenv.Load()

	port, err := getInt("SERVER_PORT", 5000)
	if err != nil {
		return nil, err
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid SERVER_PORT: %d out of range", port)
	}

	trustProxy, err := getBool("TRUST_PROXY", false)
	if err != nil {
		return nil, err
	}

	expiryHours, err := getInt("JWT_EXPIRY_HOURS", 24)
	if err != nil {
		return nil, err
	}
	if expiryHours <= 0 {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_HOURS: must be positive")
	}

	bcryptCost, err := getInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}

	rateMax, err := getInt("RATE_LIMIT_MAX", 10)
	if err != nil {
		return nil, err
	}
	windowMinutes, err := getInt("RATE_LIMIT_WINDOW_MINUTES", 15)
	if err != nil {
		return nil, err
	}
	if rateMax <= 0 || windowMinutes <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_MAX and RATE_LIMIT_WINDOW_MINUTES must be positive")
	}

	redisDB, err := getInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:       getEnv("SERVER_HOST", "0.0.0.0"),
			Port:       port,
			TrustProxy: trustProxy,
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(getEnv("DATABASE_DRIVER", "sqlite")),
			Path:   getEnv("DATABASE_PATH", "./data/kushauth.db"),
			URL:    getEnv("DATABASE_URL", ""),
		},
		JWT: JWTConfig{
			Secret: jwtSecret,
			Expiry: time.Duration(expiryHours) * time.Hour,
		},
		Auth: AuthConfig{
			BcryptCost: bcryptCost,
		},
		RateLimit: RateLimitConfig{
			Backend: strings.ToLower(getEnv("RATE_LIMIT_BACKEND", RateLimitMemory)),
			Max:     rateMax,
			Window:  time.Duration(windowMinutes) * time.Minute,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("FRONTEND_URL", "http://localhost:3000")),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite":
	case "postgres":
		if c.Database.URL == "" {
			return errors.New("DATABASE_URL is required when DATABASE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown DATABASE_DRIVER %q (want sqlite or postgres)", c.Database.Driver)
	}

	switch c.RateLimit.Backend {
	case RateLimitMemory, RateLimitRedis:
	default:
		return fmt.Errorf("unknown RATE_LIMIT_BACKEND %q (want memory or redis)", c.RateLimit.Backend)
	}

	return nil
}

// Addr, HTTP server'ın dinleyeceği adresi döner (ör: "0.0.0.0:5000").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv, environment variable'ı okur, yoksa veya boşsa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

// splitList, virgülle ayrılmış listeyi böler, boş elemanları atar.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
