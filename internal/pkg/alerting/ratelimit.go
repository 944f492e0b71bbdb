package alerting

import (
	"sync"
	"time"
)

// cleanupThreshold - число записей, после которого чистятся устаревшие ключи.
const cleanupThreshold = 100

// RateLimiter подавляет повторные алерты с одним ключом в пределах окна.
// Состояние хранится в памяти процесса, поэтому между запусками CLI не сохраняется:
// ограничение срабатывает только для повторов внутри одного прогона (например, --repeat).
type RateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	sent   map[string]time.Time
	now    func() time.Time
}

// NewRateLimiter создаёт RateLimiter с указанным окном.
func NewRateLimiter(window time.Duration) *RateLimiter {
	return &RateLimiter{
		window: window,
		sent:   make(map[string]time.Time),
		now:    time.Now,
	}
}

// Allow возвращает true и запоминает время, если ключ не отправлялся в пределах окна.
func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if len(r.sent) > cleanupThreshold {
		for k, at := range r.sent {
			if now.Sub(at) >= r.window {
				delete(r.sent, k)
			}
		}
	}

	if last, ok := r.sent[key]; ok && now.Sub(last) < r.window {
		return false
	}
	r.sent[key] = now
	return true
}

// SetNowFunc подменяет источник времени. Используется в тестах.
func (r *RateLimiter) SetNowFunc(fn func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = fn
}

// rateKey строит ключ rate limiting: один и тот же код в разных сценариях не подавляется.
func rateKey(alert Alert) string {
	return alert.Scenario + "/" + alert.ErrorCode
}
