package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RateLimitConfig содержит настройки rate limiting
type RateLimitConfig struct {
	// MaxRequests - максимальное количество запросов за Window
	MaxRequests int
	// Window - временное окно для подсчёта запросов
	Window time.Duration
	// KeyPrefix - префикс для ключей в Redis
	KeyPrefix string
}

// SubmitRateLimitConfig возвращает лимит для отправки ответов на викторину
func SubmitRateLimitConfig(maxRequests int, window time.Duration) RateLimitConfig {
	if maxRequests <= 0 {
		maxRequests = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return RateLimitConfig{
		MaxRequests: maxRequests,
		Window:      window,
		KeyPrefix:   "rl:quiz:submit",
	}
}

// WindowCounter считает запросы в фиксированном окне (реализуется кешем Redis)
type WindowCounter interface {
	IncrementWindow(key string, window time.Duration) (int64, time.Duration, error)
}

// RateLimiter создаёт middleware для rate limiting на основе Redis
type RateLimiter struct {
	counter WindowCounter
}

// NewRateLimiter создает новый RateLimiter. При nil-счётчике лимит не применяется.
func NewRateLimiter(counter WindowCounter) *RateLimiter {
	return &RateLimiter{counter: counter}
}

// Limit возвращает Gin middleware с заданной конфигурацией.
// Ключ формируется из ID пользователя (или IP для анонимных запросов) и пути.
func (rl *RateLimiter) Limit(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.counter == nil {
			c.Next()
			return
		}

		subject, ok := GetUserID(c)
		if !ok {
			subject = c.ClientIP()
		}
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		key := fmt.Sprintf("%s:%s:%s", cfg.KeyPrefix, subject, path)

		count, ttl, err := rl.counter.IncrementWindow(key, cfg.Window)
		if err != nil {
			// При ошибке Redis пропускаем запрос (fail-open), но логируем
			log.Warn().Err(err).Str("key", key).Msg("[RateLimiter] Redis error, allowing request (fail-open)")
			c.Next()
			return
		}

		remaining := cfg.MaxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}
		retryAfter := int(ttl.Seconds())
		if retryAfter <= 0 {
			retryAfter = int(cfg.Window.Seconds())
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(retryAfter))

		if int(count) > cfg.MaxRequests {
			log.Info().Str("subject", subject).Str("path", path).Int64("count", count).Int("limit", cfg.MaxRequests).
				Msg("[RateLimiter] Rate limit exceeded")

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests. Please try again later.",
				"error_type":  "rate_limited",
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}
