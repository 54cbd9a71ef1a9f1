package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixedWindowScript, kontrol + artırma işlemini Redis'te atomik yapar.
//
// KEYS[1] = pencere key'i, ARGV[1] = limit, ARGV[2] = pencere süresi (ms)
// Dönüş: {allowed (0/1), count, pttl}
//
// Neden Lua?
// GET + INCR + PEXPIRE ayrı komutlar olarak gönderilirse iki process aynı anda
// son kotayı tüketebilir. Script Redis'te tek seferde çalışır.
// Key TTL'i pencereyi temsil eder: key expire olunca sonraki istek count = 1 ile başlar.
var fixedWindowScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
if current >= tonumber(ARGV[1]) then
  return {0, current, redis.call('PTTL', KEYS[1])}
end
local count = redis.call('INCR', KEYS[1])
if count == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[2])
end
return {1, count, redis.call('PTTL', KEYS[1])}
`)

// RedisLimiter, Redis üzerinde fixed-window rate limiter.
// Birden fazla instance arkasında aynı kotayı paylaşmak için kullanılır.
type RedisLimiter struct {
	client redis.Scripter
	prefix string
	limit  int
	period time.Duration
}

// NewRedisLimiter, constructor.
// client: *redis.Client, *redis.ClusterClient vb.: redis.Scripter karşılayan her şey.
func NewRedisLimiter(client redis.Scripter, prefix string, limit int, period time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		period: period,
	}
}

// Allow, Limiter interface'ini karşılar.
func (rl *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	res, err := fixedWindowScript.Run(ctx, rl.client,
		[]string{rl.prefix + key},
		rl.limit, rl.period.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("failed to run rate limit script: %w", err)
	}
	if len(res) != 3 {
		return Decision{}, fmt.Errorf("unexpected rate limit script result: %v", res)
	}

	allowed, count, pttl := res[0] == 1, int(res[1]), res[2]

	remaining := rl.limit - count
	if remaining < 0 {
		remaining = 0
	}

	d := Decision{Allowed: allowed, Limit: rl.limit, Remaining: remaining}
	if !allowed {
		// pttl < 0: key TTL'siz kalmış (beklenmez): tam pencere süresi bekle
		if pttl < 0 {
			d.RetryAfter = rl.period
		} else {
			d.RetryAfter = time.Duration(pttl) * time.Millisecond
		}
	}
	return d, nil
}
