// Package main: Service katmanı başlatma.
//
// initServices, hasher + token service + auth service'i oluşturur.
// initLimiter, RATE_LIMIT_BACKEND'e göre in-memory veya Redis limiter kurar.
package main

import (
	"context"
	"fmt"

	"github.com/akinalp/kushauth/config"
	"github.com/akinalp/kushauth/pkg/ratelimit"
	"github.com/akinalp/kushauth/services"
	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix, limiter key'lerinin Redis'teki namespace'i.
const redisKeyPrefix = "kushauth:ratelimit:"

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth services.AuthService
}

// initServices, token secret boşsa hata döner: startup fatal olur.
func initServices(repos *Repositories, cfg *config.Config) (*Services, error) {
	tokens, err := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.Expiry)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	hasher := services.NewBcryptHasher(cfg.Auth.BcryptCost)

	return &Services{
		Auth: services.NewAuthService(repos.Account, hasher, tokens),
	}, nil
}

// initLimiter, limiter'ı ve kapatma fonksiyonunu döner.
//
// Redis backend'de startup'ta ping atılır; erişilemezse servis başlamaz.
// Çalışma sırasındaki Redis hataları ise middleware'da fail-open davranır.
func initLimiter(ctx context.Context, cfg *config.Config) (ratelimit.Limiter, func(), error) {
	if cfg.RateLimit.Backend == config.RateLimitRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.WithField("addr", cfg.Redis.Addr).Info("redis rate limiter ready")

		limiter := ratelimit.NewRedisLimiter(client, redisKeyPrefix, cfg.RateLimit.Max, cfg.RateLimit.Window)
		return limiter, func() { _ = client.Close() }, nil
	}

	limiter := ratelimit.NewFixedWindowLimiter(cfg.RateLimit.Max, cfg.RateLimit.Window)
	return limiter, limiter.Stop, nil
}
