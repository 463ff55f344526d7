package router

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"basix/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiterStore guarda um token bucket por IP.
type rateLimiterStore struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	r        rate.Limit
	b        int
	disabled bool
	stopCh   chan struct{}
	stopOnce sync.Once
}

// newRateLimiterStore: requestsPerMinute <= 0 desliga o limite.
func newRateLimiterStore(requestsPerMinute int) *rateLimiterStore {
	s := &rateLimiterStore{
		limiters: make(map[string]*ipLimiter),
		r:        rate.Limit(float64(requestsPerMinute) / 60.0),
		b:        requestsPerMinute,
		disabled: requestsPerMinute <= 0,
		stopCh:   make(chan struct{}),
	}
	if !s.disabled {
		go s.cleanup()
	}
	return s
}

func (s *rateLimiterStore) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			for ip, l := range s.limiters {
				if time.Since(l.lastSeen) > 10*time.Minute {
					delete(s.limiters, ip)
				}
			}
			s.mu.Unlock()
		case <-s.stopCh:
			return
		}
	}
}

func (s *rateLimiterStore) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.limiters[ip]
	if !ok {
		l = &ipLimiter{limiter: rate.NewLimiter(s.r, s.b)}
		s.limiters[ip] = l
	}
	l.lastSeen = time.Now()
	return l.limiter
}

// Stop encerra a limpeza em background. Pode ser chamado mais de uma vez.
func (s *rateLimiterStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// RateLimit responde 429 com Retry-After quando o IP estoura o limite.
func RateLimit(s *rateLimiterStore, l *logger.Logger) gin.HandlerFunc {
	rlLog := l.WithComponent(logger.ComponentRateLimit)
	return func(c *gin.Context) {
		if s.disabled {
			c.Next()
			return
		}
		ip := c.ClientIP()
		reservation := s.get(ip).Reserve()
		if d := reservation.Delay(); d > 0 {
			reservation.Cancel()
			retryAfter := int(math.Ceil(d.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			rlLog.Warn("rate limit exceeded", logger.FieldClientIP, ip, logger.FieldPath, c.Request.URL.Path)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "muitas requisições, tente novamente em instantes"})
			return
		}
		c.Next()
	}
}
