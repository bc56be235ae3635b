package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// RateLimiter представляет rate limiter на основе токен-бакета.
// Используется для защиты /auth/login от перебора паролей
type RateLimiter struct {
	buckets  map[string]*bucket
	logger   *slog.Logger
	cleanupC chan struct{}
	rate     int
	window   time.Duration
	mu       sync.RWMutex
}

// bucket представляет bucket для конкретного IP
type bucket struct {
	lastRefill time.Time
	tokens     int
	mu         sync.Mutex
}

// NewRateLimiter создает новый rate limiter
// rate - максимальное количество запросов за окно window
func NewRateLimiter(rate int, window time.Duration, logger *slog.Logger) *RateLimiter {
	rl := &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		window:   window,
		logger:   logger,
		cleanupC: make(chan struct{}),
	}

	// Периодическая очистка неактивных buckets
	go rl.cleanup()

	return rl
}

// cleanup периодически удаляет неактивные buckets для экономии памяти
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupOldBuckets()
		case <-rl.cleanupC:
			return
		}
	}
}

func (rl *RateLimiter) cleanupOldBuckets() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, b := range rl.buckets {
		b.mu.Lock()
		if now.Sub(b.lastRefill) > rl.window*2 {
			delete(rl.buckets, key)
		}
		b.mu.Unlock()
	}
}

// Stop останавливает cleanup goroutine
func (rl *RateLimiter) Stop() {
	close(rl.cleanupC)
}

// Allow проверяет, разрешен ли запрос для данного ключа (IP адрес)
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.RLock()
	b, exists := rl.buckets[key]
	rl.mu.RUnlock()

	if !exists {
		b = &bucket{
			tokens:     rl.rate,
			lastRefill: time.Now(),
		}
		rl.mu.Lock()
		rl.buckets[key] = b
		rl.mu.Unlock()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()

	// Пополняем токены, если окно прошло
	if now.Sub(b.lastRefill) >= rl.window {
		b.tokens = rl.rate
		b.lastRefill = now
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}

	return false
}

// Limit оборачивает handler проверкой частоты запросов по IP клиента
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)

		if !rl.Allow(key) {
			rl.logger.Warn("Rate limit exceeded",
				"ip", key,
				"method", r.Method,
				"path", r.URL.Path,
			)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"rate limit exceeded, please try again later"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP извлекает IP адрес клиента из запроса.
// Проверяет заголовки X-Forwarded-For и X-Real-IP для прокси
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Берем первый IP из списка (реальный клиент)
		for idx := 0; idx < len(xff); idx++ {
			if xff[idx] == ',' {
				return xff[:idx]
			}
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	return r.RemoteAddr
}
