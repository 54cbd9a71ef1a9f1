// Package ratelimit: auth endpoint'lerini brute-force ve spam'e karşı koruyan
// client bazlı fixed-window rate limiting.
//
// Tasarım:
//   - Her client key (genelde IP) için bir pencere: count + windowStart.
//   - İlk istek pencereyi açar (count = 1).
//   - Pencere içinde count < limit ise count++ ve izin verilir.
//   - Limit dolduysa istek reddedilir ve state DEĞİŞMEZ.
//   - now >= windowStart + window olduğunda pencere sıfırlanır: count = 1, windowStart = now.
//
// Fixed window'un bilinen karakteristiği: pencere sınırında 2*limit'e kadar
// burst mümkündür. Bu kabul edilmiş bir trade-off, bug değil.
//
// İki implementasyon var:
//   - FixedWindowLimiter: in-memory, tek instance deploy için.
//   - RedisLimiter: birden fazla process aynı kotayı paylaşır.
//
// pkg/ratelimit hiçbir proje içi pakete bağımlı değildir (leaf dependency).
package ratelimit

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Decision, tek bir Allow çağrısının sonucu.
//
// RetryAfter sadece Allowed == false iken anlamlıdır:
// mevcut pencerenin bitmesine kalan süre.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter, middleware'ın bağımlı olduğu interface.
// Redis gibi uzak backend'ler hata dönebilir: bu yüzden error da var.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// window, bir client key için istek sayacı ve pencere başlangıç zamanı tutar.
type window struct {
	count int
	start time.Time
}

// FixedWindowLimiter, in-memory fixed-window rate limiter.
//
// Kullanım:
//
//	limiter := NewFixedWindowLimiter(10, 15*time.Minute)
//	defer limiter.Stop()
//	d, _ := limiter.Allow(ctx, ip)
//	if !d.Allowed { return 429 }
type FixedWindowLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
	now     func() time.Time

	stopOnce    sync.Once
	stopCleanup chan struct{}
}

// NewFixedWindowLimiter, yeni rate limiter oluşturur ve arka plan temizleme
// goroutine'ini başlatır.
//
// limit: Pencere başına izin verilen istek (ör: 10).
// period: Pencere süresi (ör: 15*time.Minute).
func NewFixedWindowLimiter(limit int, period time.Duration) *FixedWindowLimiter {
	rl := newFixedWindowLimiter(limit, period, time.Now)
	go rl.cleanupLoop(time.Minute)
	return rl
}

// newFixedWindowLimiter, cleanup goroutine'i olmadan oluşturur: testler saat enjekte eder.
func newFixedWindowLimiter(limit int, period time.Duration, now func() time.Time) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		windows:     make(map[string]*window),
		limit:       limit,
		period:      period,
		now:         now,
		stopCleanup: make(chan struct{}),
	}
}

// Allow, verilen key'in isteğine izin verilip verilmediğini kontrol eder.
// In-memory implementasyonda error her zaman nil'dir.
func (rl *FixedWindowLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, exists := rl.windows[key]
	if !exists || !now.Before(w.start.Add(rl.period)) {
		// İlk istek veya pencere dolmuş: yeni pencere başlat
		rl.windows[key] = &window{count: 1, start: now}
		return Decision{Allowed: true, Limit: rl.limit, Remaining: rl.limit - 1}, nil
	}

	if w.count >= rl.limit {
		// Kota dolmuş: state'e dokunma
		return Decision{
			Allowed:    false,
			Limit:      rl.limit,
			Remaining:  0,
			RetryAfter: w.start.Add(rl.period).Sub(now),
		}, nil
	}

	w.count++
	return Decision{Allowed: true, Limit: rl.limit, Remaining: rl.limit - w.count}, nil
}

// Stop, cleanup goroutine'ini durdurur. Birden fazla çağrı güvenlidir.
func (rl *FixedWindowLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCleanup) })
}

// cleanupLoop, arka planda süresi dolmuş pencereleri temizler (memory leak engeli).
func (rl *FixedWindowLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanup, süresi dolmuş tüm pencereleri siler.
// Silinen bir key'in sonraki isteği zaten yeni pencere açacağı için gözlemlenebilir fark yok.
func (rl *FixedWindowLimiter) cleanup() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, w := range rl.windows {
		if !now.Before(w.start.Add(rl.period)) {
			delete(rl.windows, key)
		}
	}
}

// size, aktif pencere sayısı (test için).
func (rl *FixedWindowLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.windows)
}

// ExtractIP, HTTP request'ten client IP adresini çıkarır.
//
// trustProxy false ise sadece RemoteAddr kullanılır: X-Forwarded-For header'ı
// client tarafından serbestçe yazılabilir, reverse proxy yoksa ona güvenmek
// rate limit'i bypass etmeyi mümkün kılar.
//
// trustProxy true ise öncelik sırası:
// 1. X-Forwarded-For header (ilk IP)
// 2. X-Real-IP header
// 3. RemoteAddr
func ExtractIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		// X-Forwarded-For: client, proxy1, proxy2: ilk değer gerçek client
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}

		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			return xri
		}
	}

	// Doğrudan bağlantı: host:port formatından host'u ayır
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RetryAfterSeconds, Retry-After header değeri: yukarı yuvarlanır,
// böylece client tam süreyi bekler.
func RetryAfterSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	seconds := int(d / time.Second)
	if d%time.Second != 0 {
		seconds++
	}
	return seconds
}

// FormatRetryMessage, kalan süreyi okunabilir formata çevirir.
// Örn: 120 → "2 minute(s)", 45 → "45 second(s)"
func FormatRetryMessage(seconds int) string {
	if seconds >= 60 {
		minutes := (seconds + 59) / 60
		return fmt.Sprintf("%d minute(s)", minutes)
	}
	return fmt.Sprintf("%d second(s)", seconds)
}
