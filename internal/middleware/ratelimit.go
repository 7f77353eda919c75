package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"taskify/internal/logger"
	"time"

	"go.uber.org/zap"
)

// Decision - результат проверки лимита для одного запроса
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

type clientInfo struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter считает запросы в окне, открытом первым запросом клиента
type MemoryLimiter struct {
	rpm     int
	window  time.Duration
	clients map[string]*clientInfo
	mtx     sync.Mutex
	now     func() time.Time
}

func NewMemoryLimiter(rpm int, window time.Duration) *MemoryLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &MemoryLimiter{
		rpm:     rpm,
		window:  window,
		clients: make(map[string]*clientInfo),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := l.now()

	l.mtx.Lock()
	defer l.mtx.Unlock()

	info, exists := l.clients[key]
	if !exists || now.After(info.resetAt) {
		info = &clientInfo{resetAt: now.Add(l.window)}
		l.clients[key] = info
	}

	if info.count >= l.rpm {
		return Decision{Allowed: false, Limit: l.rpm, Remaining: 0, ResetAt: info.resetAt}, nil
	}

	info.count++
	return Decision{
		Allowed:   true,
		Limit:     l.rpm,
		Remaining: l.rpm - info.count,
		ResetAt:   info.resetAt,
	}, nil
}

// Sweep удаляет истёкшие окна и возвращает их количество
func (l *MemoryLimiter) Sweep(now time.Time) int {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	removed := 0
	for key, info := range l.clients {
		if now.After(info.resetAt) {
			delete(l.clients, key)
			removed++
		}
	}
	return removed
}

func (l *MemoryLimiter) Size() int {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return len(l.clients)
}

// RateLimit пропускает запрос, если хранилище лимитов недоступно
func RateLimit(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := getIp(r)

			decision, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				logger.Warn("RateLimit: ошибка хранилища лимитов", zap.Error(err), zap.String("client_ip", ip))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(decision.Remaining, 0)))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

			if !decision.Allowed {
				retryAfter := int(time.Until(decision.ResetAt).Seconds()) + 1
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				writeError(w, r, http.StatusTooManyRequests, "rate_limit_exceeded", "Слишком много запросов. Попробуйте позже.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func getIp(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
