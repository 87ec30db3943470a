package http

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/jhoicas/gestion-clients/internal/application/dto"
)

// RateLimitConfig límite por IP: RequestsPerWindow peticiones cada Window, con ráfaga Burst.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

// LoginLimit valor por defecto para /api/auth/login (fuerza bruta).
var LoginLimit = RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}

type ipLimiter struct {
	limiters    sync.Map // map[string]*rate.Limiter
	rate        rate.Limit
	burst       int
	mu          sync.Mutex
	lastCleanup time.Time
}

func (rl *ipLimiter) get(key string) *rate.Limiter {
	if l, ok := rl.limiters.Load(key); ok {
		return l.(*rate.Limiter)
	}
	actual, _ := rl.limiters.LoadOrStore(key, rate.NewLimiter(rl.rate, rl.burst))
	rl.maybeCleanup()
	return actual.(*rate.Limiter)
}

// maybeCleanup descarta cada 5 minutos los limitadores con el balde lleno (inactivos).
func (rl *ipLimiter) maybeCleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if time.Since(rl.lastCleanup) < 5*time.Minute {
		return
	}
	rl.lastCleanup = time.Now()
	rl.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(rl.burst) {
			rl.limiters.Delete(key)
		}
		return true
	})
}

// RateLimit devuelve un middleware que limita por IP de origen. Responde 429 con Retry-After.
func RateLimit(cfg RateLimitConfig) fiber.Handler {
	if cfg.RequestsPerWindow <= 0 || cfg.Window <= 0 {
		cfg = LoginLimit
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerWindow
	}
	rl := &ipLimiter{
		rate:        rate.Limit(float64(cfg.RequestsPerWindow) / cfg.Window.Seconds()),
		burst:       cfg.Burst,
		lastCleanup: time.Now(),
	}
	return func(c *fiber.Ctx) error {
		limiter := rl.get(c.IP())
		if limiter.Allow() {
			return c.Next()
		}
		r := limiter.Reserve()
		delay := r.Delay()
		r.Cancel()
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(max(int(delay.Seconds()), 1)))
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiadas peticiones, intente más tarde"})
	}
}
